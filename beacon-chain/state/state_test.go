package state

import (
	"testing"

	eth "github.com/strandlabs/strand/consensus-types/eth"
	"github.com/strandlabs/strand/encoding/bytesutil"
	"github.com/strandlabs/strand/testing/assert"
	"github.com/strandlabs/strand/testing/require"
)

func pubkey(b byte) []byte {
	key := make([]byte, 48)
	key[0] = b
	return key
}

func TestValidatorIndexByPubkey_BuildsCacheFromExistingRegistry(t *testing.T) {
	st := &BeaconState{
		Validators: []*eth.Validator{
			{PublicKey: pubkey(1)},
			{PublicKey: pubkey(2)},
		},
	}
	idx, ok := st.ValidatorIndexByPubkey(bytesutil.ToBytes48(pubkey(2)))
	require.Equal(t, true, ok)
	assert.Equal(t, uint64(1), idx)

	_, ok = st.ValidatorIndexByPubkey(bytesutil.ToBytes48(pubkey(9)))
	assert.Equal(t, false, ok)
}

func TestAppendValidator_KeepsCacheCurrent(t *testing.T) {
	st := &BeaconState{}
	_, ok := st.ValidatorIndexByPubkey(bytesutil.ToBytes48(pubkey(7)))
	require.Equal(t, false, ok)

	st.AppendValidator(&eth.Validator{PublicKey: pubkey(7)}, 32*1e9)
	idx, ok := st.ValidatorIndexByPubkey(bytesutil.ToBytes48(pubkey(7)))
	require.Equal(t, true, ok)
	assert.Equal(t, uint64(0), idx)
	require.Equal(t, 1, len(st.Balances))
	assert.Equal(t, uint64(32*1e9), st.Balances[0])
}
