package herumi

import (
	bls12 "github.com/herumi/bls-eth-go-binary/bls"
	"github.com/pkg/errors"
	"github.com/strandlabs/strand/crypto/bls/common"
)

// signature2 -- name collision with the bls12 package.
type signature2 struct {
	s *bls12.Sign
}

// SignatureFromBytes creates a BLS signature from a LittleEndian byte slice.
func SignatureFromBytes(sig []byte) (common.Signature, error) {
	if len(sig) != 96 {
		return nil, errors.Errorf("signature must be %d bytes", 96)
	}
	signature := &bls12.Sign{}
	if err := signature.Deserialize(sig); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal bytes into signature")
	}
	return &signature2{s: signature}, nil
}

// Verify a bls signature given a public key and a message.
//
// In IETF draft BLS specification:
// Verify(PK, message, signature) -> VALID or INVALID: a verification
//      algorithm that outputs VALID if signature is a valid signature of
//      message under public key PK, and INVALID otherwise.
func (s *signature2) Verify(pubKey common.PublicKey, msg []byte) bool {
	return s.s.VerifyByte(pubKey.(*publicKey).p, msg)
}

// Marshal a signature into a LittleEndian byte slice.
func (s *signature2) Marshal() []byte {
	return s.s.Serialize()
}

// Copy returns a full deep copy of a signature.
func (s *signature2) Copy() common.Signature {
	sign := *s.s
	return &signature2{s: &sign}
}
