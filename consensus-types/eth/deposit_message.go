package eth

import (
	fssz "github.com/ferranbt/fastssz"
)

var _ fssz.HashRoot = (*DepositMessage)(nil)

// DepositMessage is the signed portion of a deposit: everything in
// DepositData except the signature itself.
type DepositMessage struct {
	PublicKey             []byte `ssz-size:"48"`
	WithdrawalCredentials []byte `ssz-size:"32"`
	Amount                uint64
}

// SigningMessage returns the deposit message committed to by the deposit's
// proof-of-possession signature.
func (d *DepositData) SigningMessage() *DepositMessage {
	return &DepositMessage{
		PublicKey:             d.PublicKey,
		WithdrawalCredentials: d.WithdrawalCredentials,
		Amount:                d.Amount,
	}
}

// HashTreeRoot computes the SSZ hash tree root of the deposit message.
func (d *DepositMessage) HashTreeRoot() ([32]byte, error) {
	return fssz.HashWithDefaultHasher(d)
}

// HashTreeRootWith hashes the deposit message with the given hasher.
func (d *DepositMessage) HashTreeRootWith(hh *fssz.Hasher) error {
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

	hh.Merkleize(indx)
	return nil
}
