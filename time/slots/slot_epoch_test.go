package slots

import (
	"testing"

	"github.com/strandlabs/strand/config/params"
	types "github.com/strandlabs/strand/consensus-types/primitives"
	"github.com/strandlabs/strand/testing/assert"
)

func TestToEpoch(t *testing.T) {
	tests := []struct {
		slot  types.Slot
		epoch types.Epoch
	}{
		{slot: 0, epoch: 0},
		{slot: 31, epoch: 0},
		{slot: 32, epoch: 1},
		{slot: 63, epoch: 1},
		{slot: 5000, epoch: 156},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.epoch, ToEpoch(tt.slot), "ToEpoch(%d)", tt.slot)
	}
}

func TestEpochStart(t *testing.T) {
	assert.Equal(t, types.Slot(0), EpochStart(0))
	assert.Equal(t, types.Slot(32), EpochStart(1))
	assert.Equal(t, params.BeaconConfig().SlotsPerEpoch*100, EpochStart(100))
}

func TestToEpoch_RespectsConfig(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	cfg := params.BeaconConfig().Copy()
	cfg.SlotsPerEpoch = 8
	params.OverrideBeaconConfig(cfg)
	assert.Equal(t, types.Epoch(4), ToEpoch(32))
	assert.Equal(t, types.Slot(8), EpochStart(1))
}

func TestEpochStart_RoundTripsWithToEpoch(t *testing.T) {
	for _, epoch := range []types.Epoch{0, 1, 2, 1000, 1 << 40} {
		assert.Equal(t, epoch, ToEpoch(EpochStart(epoch)))
	}
}
