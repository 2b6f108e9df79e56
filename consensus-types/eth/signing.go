package eth

import (
	fssz "github.com/ferranbt/fastssz"
)

var _ fssz.HashRoot = (*ForkData)(nil)
var _ fssz.HashRoot = (*SigningData)(nil)

// ForkData is hashed to derive the fork digest mixed into signature domains.
type ForkData struct {
	CurrentVersion        []byte `ssz-size:"4"`
	GenesisValidatorsRoot []byte `ssz-size:"32"`
}

// SigningData binds an object root to a signature domain.
type SigningData struct {
	ObjectRoot []byte `ssz-size:"32"`
	Domain     []byte `ssz-size:"32"`
}

// HashTreeRoot computes the SSZ hash tree root of the fork data.
func (f *ForkData) HashTreeRoot() ([32]byte, error) {
	return fssz.HashWithDefaultHasher(f)
}

// HashTreeRootWith hashes the fork data with the given hasher.
func (f *ForkData) HashTreeRootWith(hh *fssz.Hasher) error {
	indx := hh.Index()

	// Field (0) 'CurrentVersion'
	if size := len(f.CurrentVersion); size != 4 {
		return fssz.ErrBytesLength
	}
	hh.PutBytes(f.CurrentVersion)

	// Field (1) 'GenesisValidatorsRoot'
	if size := len(f.GenesisValidatorsRoot); size != 32 {
		return fssz.ErrBytesLength
	}
	hh.PutBytes(f.GenesisValidatorsRoot)

	hh.Merkleize(indx)
	return nil
}

// HashTreeRoot computes the SSZ hash tree root of the signing data.
func (s *SigningData) HashTreeRoot() ([32]byte, error) {
	return fssz.HashWithDefaultHasher(s)
}

// HashTreeRootWith hashes the signing data with the given hasher.
func (s *SigningData) HashTreeRootWith(hh *fssz.Hasher) error {
	indx := hh.Index()

	// Field (0) 'ObjectRoot'
	if size := len(s.ObjectRoot); size != 32 {
		return fssz.ErrBytesLength
	}
	hh.PutBytes(s.ObjectRoot)

	// Field (1) 'Domain'
	if size := len(s.Domain); size != 32 {
		return fssz.ErrBytesLength
	}
	hh.PutBytes(s.Domain)

	hh.Merkleize(indx)
	return nil
}
