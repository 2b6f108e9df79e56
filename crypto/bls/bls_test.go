package bls

import (
	"testing"

	"github.com/strandlabs/strand/crypto/bls/common"
	"github.com/strandlabs/strand/testing/assert"
	"github.com/strandlabs/strand/testing/require"
)

func TestSignVerify(t *testing.T) {
	priv, err := RandKey()
	require.NoError(t, err)
	pub := priv.PublicKey()
	msg := []byte("hello")
	sig := priv.Sign(msg)
	assert.Equal(t, true, sig.Verify(pub, msg), "signature did not verify")
	assert.Equal(t, false, sig.Verify(pub, []byte("world")), "signature verified against the wrong message")
}

func TestSignVerify_WrongPubkey(t *testing.T) {
	priv, err := RandKey()
	require.NoError(t, err)
	other, err := RandKey()
	require.NoError(t, err)
	msg := []byte("hello")
	sig := priv.Sign(msg)
	assert.Equal(t, false, sig.Verify(other.PublicKey(), msg))
}

func TestSecretKeyFromBytes_RoundTrip(t *testing.T) {
	priv, err := RandKey()
	require.NoError(t, err)
	enc := priv.Marshal()
	require.Equal(t, 32, len(enc))
	decoded, err := SecretKeyFromBytes(enc)
	require.NoError(t, err)
	assert.DeepEqual(t, enc, decoded.Marshal())
	assert.Equal(t, true, priv.PublicKey().Equals(decoded.PublicKey()))
}

func TestSecretKeyFromBytes_ZeroKey(t *testing.T) {
	_, err := SecretKeyFromBytes(make([]byte, 32))
	require.ErrorContains(t, common.ErrZeroKey.Error(), err)
}

func TestPublicKeyFromBytes_RoundTrip(t *testing.T) {
	priv, err := RandKey()
	require.NoError(t, err)
	enc := priv.PublicKey().Marshal()
	require.Equal(t, 48, len(enc))
	decoded, err := PublicKeyFromBytes(enc)
	require.NoError(t, err)
	assert.DeepEqual(t, enc, decoded.Marshal())
}

func TestPublicKeyFromBytes_Malformed(t *testing.T) {
	if _, err := PublicKeyFromBytes(make([]byte, 48)); err == nil {
		t.Error("expected error for all-zero public key bytes")
	}
	if _, err := PublicKeyFromBytes([]byte{0x01, 0x02}); err == nil {
		t.Error("expected error for truncated public key bytes")
	}
}

func TestSignatureFromBytes_RoundTrip(t *testing.T) {
	priv, err := RandKey()
	require.NoError(t, err)
	msg := []byte("hello")
	enc := priv.Sign(msg).Marshal()
	require.Equal(t, 96, len(enc))
	sig, err := SignatureFromBytes(enc)
	require.NoError(t, err)
	assert.Equal(t, true, sig.Verify(priv.PublicKey(), msg))
}
