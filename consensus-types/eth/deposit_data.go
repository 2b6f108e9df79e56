package eth

import (
	fssz "github.com/ferranbt/fastssz"
)

var _ fssz.HashRoot = (*DepositData)(nil)
var _ fssz.Marshaler = (*DepositData)(nil)

// DepositData is the content of a deposit: the depositing validator's key
// material, withdrawal commitment, amount, and proof-of-possession signature.
type DepositData struct {
	PublicKey             []byte `ssz-size:"48"`
	WithdrawalCredentials []byte `ssz-size:"32"`
	Amount                uint64
	Signature             []byte `ssz-size:"96"`
}

// SizeSSZ returns the size of the serialized object.
func (_ *DepositData) SizeSSZ() int {
	return 184
}

// MarshalSSZ marshals the deposit data into a serialized object.
func (d *DepositData) MarshalSSZ() ([]byte, error) {
	return d.MarshalSSZTo(make([]byte, 0, d.SizeSSZ()))
}

// MarshalSSZTo marshals the deposit data into the provided byte slice.
func (d *DepositData) MarshalSSZTo(dst []byte) ([]byte, error) {
	if size := len(d.PublicKey); size != 48 {
		return nil, fssz.ErrBytesLength
	}
	if size := len(d.WithdrawalCredentials); size != 32 {
		return nil, fssz.ErrBytesLength
	}
	if size := len(d.Signature); size != 96 {
		return nil, fssz.ErrBytesLength
	}
	dst = append(dst, d.PublicKey...)
	dst = append(dst, d.WithdrawalCredentials...)
	dst = fssz.MarshalUint64(dst, d.Amount)
	dst = append(dst, d.Signature...)
	return dst, nil
}

// UnmarshalSSZ deserializes the provided bytes buffer into the deposit data.
func (d *DepositData) UnmarshalSSZ(buf []byte) error {
	if len(buf) != d.SizeSSZ() {
		return fssz.ErrSize
	}
	d.PublicKey = append([]byte{}, buf[0:48]...)
	d.WithdrawalCredentials = append([]byte{}, buf[48:80]...)
	d.Amount = fssz.UnmarshallUint64(buf[80:88])
	d.Signature = append([]byte{}, buf[88:184]...)
	return nil
}

// HashTreeRoot computes the SSZ hash tree root of the deposit data. This is
// the leaf committed to by the deposit contract's Merkle trie.
func (d *DepositData) HashTreeRoot() ([32]byte, error) {
	return fssz.HashWithDefaultHasher(d)
}

// HashTreeRootWith hashes the deposit data with the given hasher.
func (d *DepositData) HashTreeRootWith(hh *fssz.Hasher) error {
	indx := hh.Index()

	// Field (0) 'PublicKey'
	if size := len(d.PublicKey); size != 48 {
		return fssz.ErrBytesLength
	}
	hh.PutBytes(d.PublicKey)

	// Field (1) 'WithdrawalCredentials'
	if size := len(d.WithdrawalCredentials); size != 32 {
		return fssz.ErrBytesLength
	}
	hh.PutBytes(d.WithdrawalCredentials)

	// Field (2) 'Amount'
	hh.PutUint64(d.Amount)

	// Field (3) 'Signature'
	if size := len(d.Signature); size != 96 {
		return fssz.ErrBytesLength
	}
	hh.PutBytes(d.Signature)

	hh.Merkleize(indx)
	return nil
}
