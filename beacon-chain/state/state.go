// Package state defines the native beacon state surface consumed by deposit
// processing. Only the fields touched by deposit admission are modeled; the
// caller owns single-writer discipline for every mutating method.
package state

import (
	"github.com/pkg/errors"
	eth "github.com/strandlabs/strand/consensus-types/eth"
	types "github.com/strandlabs/strand/consensus-types/primitives"
	"github.com/strandlabs/strand/encoding/bytesutil"
)

// ErrNilState returns when a nil beacon state is passed to a state accessor.
var ErrNilState = errors.New("nil beacon state")

// BeaconState holds the subset of chain state read and mutated during deposit
// processing.
type BeaconState struct {
	Slot             types.Slot
	Fork             *eth.Fork
	Eth1Data         *eth.Eth1Data
	Eth1DepositIndex uint64
	Validators       []*eth.Validator
	Balances         []uint64

	valIdxMap map[[48]byte]uint64
}

// ValidatorIndexByPubkey looks the public key up in the registry's
// pubkey-to-index cache, building the cache on first use. The cache is kept
// current by AppendValidator; mutating Validators directly without going
// through it is a caller contract violation.
func (s *BeaconState) ValidatorIndexByPubkey(pubkey [48]byte) (uint64, bool) {
	if s.valIdxMap == nil {
		s.rebuildPubkeyCache()
	}
	idx, ok := s.valIdxMap[pubkey]
	return idx, ok
}

// AppendValidator adds a new validator and its starting balance to the
// registry, keeping the pubkey cache current.
func (s *BeaconState) AppendValidator(val *eth.Validator, balance uint64) {
	if s.valIdxMap == nil {
		s.rebuildPubkeyCache()
	}
	s.Validators = append(s.Validators, val)
	s.Balances = append(s.Balances, balance)
	s.valIdxMap[bytesutil.ToBytes48(val.PublicKey)] = uint64(len(s.Validators) - 1)
}

func (s *BeaconState) rebuildPubkeyCache() {
	m := make(map[[48]byte]uint64, len(s.Validators))
	for i, val := range s.Validators {
		m[bytesutil.ToBytes48(val.PublicKey)] = uint64(i)
	}
	s.valIdxMap = m
}
