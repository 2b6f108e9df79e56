package herumi

import (
	bls12 "github.com/herumi/bls-eth-go-binary/bls"
	"github.com/pkg/errors"
	"github.com/strandlabs/strand/crypto/bls/common"
)

// publicKey used in the BLS signature scheme.
type publicKey struct {
	p *bls12.PublicKey
}

// PublicKeyFromBytes creates a BLS public key from a BigEndian byte slice.
func PublicKeyFromBytes(pubKey []byte) (common.PublicKey, error) {
	if len(pubKey) != 48 {
		return nil, errors.Errorf("public key must be %d bytes", 48)
	}
	if common.PublicKeyIsInfinite(pubKey) {
		return nil, common.ErrInfinitePubKey
	}
	p := &bls12.PublicKey{}
	if err := p.Deserialize(pubKey); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal bytes into public key")
	}
	return &publicKey{p: p}, nil
}

// Marshal a public key into a LittleEndian byte slice.
func (p *publicKey) Marshal() []byte {
	return p.p.Serialize()
}

// Copy the public key to a new pointer reference.
func (p *publicKey) Copy() common.PublicKey {
	np := *p.p
	return &publicKey{p: &np}
}

// Equals checks if the provided public key is equal to
// the current one.
func (p *publicKey) Equals(p2 common.PublicKey) bool {
	return p.p.IsEqual(p2.(*publicKey).p)
}
