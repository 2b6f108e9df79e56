package eth

import (
	"testing"

	"github.com/strandlabs/strand/testing/assert"
	"github.com/strandlabs/strand/testing/require"
)

func validDepositData() *DepositData {
	pub := make([]byte, 48)
	pub[0] = 0xb0
	sig := make([]byte, 96)
	sig[0] = 0x90
	return &DepositData{
		PublicKey:             pub,
		WithdrawalCredentials: make([]byte, 32),
		Amount:                32 * 1e9,
		Signature:             sig,
	}
}

func TestDepositData_MarshalUnmarshal(t *testing.T) {
	d := validDepositData()
	enc, err := d.MarshalSSZ()
	require.NoError(t, err)
	require.Equal(t, d.SizeSSZ(), len(enc))

	decoded := &DepositData{}
	require.NoError(t, decoded.UnmarshalSSZ(enc))
	assert.DeepEqual(t, d, decoded)
}

func TestDepositData_MarshalRejectsBadFieldLengths(t *testing.T) {
	d := validDepositData()
	d.PublicKey = d.PublicKey[:47]
	if _, err := d.MarshalSSZ(); err == nil {
		t.Error("expected error for short public key")
	}
	if _, err := d.HashTreeRoot(); err == nil {
		t.Error("expected error for short public key")
	}
}

func TestDepositData_SigningMessageSharesRootFields(t *testing.T) {
	d := validDepositData()
	msg := d.SigningMessage()
	assert.DeepEqual(t, d.PublicKey, msg.PublicKey)
	assert.DeepEqual(t, d.WithdrawalCredentials, msg.WithdrawalCredentials)
	assert.Equal(t, d.Amount, msg.Amount)

	// The signature is excluded, so a different signature must not change
	// the message root.
	msgRoot, err := msg.HashTreeRoot()
	require.NoError(t, err)
	d.Signature[0] ^= 0xff
	msgRoot2, err := d.SigningMessage().HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, msgRoot, msgRoot2)

	dataRoot, err := d.HashTreeRoot()
	require.NoError(t, err)
	assert.NotEqual(t, msgRoot, dataRoot)
}
