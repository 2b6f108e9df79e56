// Package slots includes ubiquitous conversions between slots and epochs.
package slots

import (
	"github.com/strandlabs/strand/config/params"
	types "github.com/strandlabs/strand/consensus-types/primitives"
)

// ToEpoch returns the epoch number of the input slot.
//
// Spec pseudocode definition:
//  def compute_epoch_at_slot(slot: Slot) -> Epoch:
//    """
//    Return the epoch number at ``slot``.
//    """
//    return Epoch(slot // SLOTS_PER_EPOCH)
func ToEpoch(slot types.Slot) types.Epoch {
	return types.Epoch(slot / params.BeaconConfig().SlotsPerEpoch)
}

// EpochStart returns the first slot number of the given epoch.
func EpochStart(epoch types.Epoch) types.Slot {
	return types.Slot(uint64(epoch) * uint64(params.BeaconConfig().SlotsPerEpoch))
}
