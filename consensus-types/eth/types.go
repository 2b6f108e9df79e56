// Package eth defines the native consensus types consumed by state
// transition processing and the metadata store.
package eth

import (
	types "github.com/strandlabs/strand/consensus-types/primitives"
)

// Fork spanning an epoch boundary, carrying the version on either side of it.
type Fork struct {
	PreviousVersion []byte `ssz-size:"4"`
	CurrentVersion  []byte `ssz-size:"4"`
	Epoch           types.Epoch
}

// Checkpoint is an (epoch, root) pair used by pruning and finality bookkeeping.
type Checkpoint struct {
	Epoch types.Epoch
	Root  []byte `ssz-size:"32"`
}

// Eth1Data is the view of the eth1 deposit contract agreed on by the chain.
type Eth1Data struct {
	DepositRoot  []byte `ssz-size:"32"`
	DepositCount uint64
	BlockHash    []byte `ssz-size:"32"`
}

// Validator is a registry entry for a single validator.
type Validator struct {
	PublicKey             []byte `ssz-size:"48"`
	WithdrawalCredentials []byte `ssz-size:"32"`
	EffectiveBalance      uint64
}

// Deposit is a validator deposit consumed from the eth1 deposit contract,
// along with the Merkle branch proving its inclusion in the deposit trie
// and its position in the contract's deposit sequence.
type Deposit struct {
	Proof [][]byte `ssz-size:"?,32"`
	Index uint64
	Data  *DepositData
}
