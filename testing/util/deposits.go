// Package util defines fixtures shared by deposit and metadata tests.
package util

import (
	"sync"
	"testing"

	"github.com/strandlabs/strand/beacon-chain/core/signing"
	"github.com/strandlabs/strand/beacon-chain/state"
	"github.com/strandlabs/strand/config/params"
	eth "github.com/strandlabs/strand/consensus-types/eth"
	"github.com/strandlabs/strand/container/trie"
	"github.com/strandlabs/strand/crypto/bls"
)

var lock sync.Mutex

// Cached deposits and keys, extended as tests ask for more.
var cachedDeposits []*eth.Deposit
var privKeys []bls.SecretKey

// DepositsWithProofs returns the requested number of signed deposits with
// Merkle branches against the returned deposit trie root. Deposit i carries
// index i; keys are cached across calls.
func DepositsWithProofs(t testing.TB, numDeposits uint64) ([]*eth.Deposit, []bls.SecretKey, [32]byte) {
	lock.Lock()
	defer lock.Unlock()

	for i := uint64(len(cachedDeposits)); i < numDeposits; i++ {
		priv, err := bls.RandKey()
		if err != nil {
			t.Fatalf("could not generate random key: %v", err)
		}
		privKeys = append(privKeys, priv)

		creds := make([]byte, 32)
		creds[0] = params.BeaconConfig().BLSWithdrawalPrefixByte
		copy(creds[1:], []byte("testing"))
		depositData := &eth.DepositData{
			PublicKey:             priv.PublicKey().Marshal(),
			WithdrawalCredentials: creds,
			Amount:                params.BeaconConfig().MaxEffectiveBalance,
		}
		domain, err := signing.ComputeDomain(params.BeaconConfig().DomainDeposit, nil, nil)
		if err != nil {
			t.Fatalf("could not compute deposit domain: %v", err)
		}
		root, err := signing.ComputeSigningRoot(depositData.SigningMessage(), domain)
		if err != nil {
			t.Fatalf("could not compute signing root of deposit data: %v", err)
		}
		depositData.Signature = priv.Sign(root[:]).Marshal()
		cachedDeposits = append(cachedDeposits, &eth.Deposit{
			Index: i,
			Data:  depositData,
		})
	}

	deposits := make([]*eth.Deposit, numDeposits)
	for i := range deposits {
		// Copy so callers can tamper with proofs without poisoning the cache.
		d := *cachedDeposits[i]
		deposits[i] = &d
	}
	root := GenerateDepositProofs(t, deposits)
	return deposits, privKeys[0:numDeposits], root
}

// GenerateDepositProofs builds the deposit trie for the given deposits,
// attaches a Merkle branch to each, and returns the trie root.
func GenerateDepositProofs(t testing.TB, deposits []*eth.Deposit) [32]byte {
	encodedDeposits := make([][]byte, len(deposits))
	for i := 0; i < len(encodedDeposits); i++ {
		hashedDeposit, err := deposits[i].Data.HashTreeRoot()
		if err != nil {
			t.Fatalf("could not tree hash deposit data: %v", err)
		}
		encodedDeposits[i] = hashedDeposit[:]
	}

	depositTrie, err := trie.GenerateTrieFromItems(encodedDeposits, params.BeaconConfig().DepositContractTreeDepth)
	if err != nil {
		t.Fatalf("could not generate deposit trie: %v", err)
	}

	for i := range deposits {
		proof, err := depositTrie.MerkleProof(i)
		if err != nil {
			t.Fatalf("could not generate proof: %v", err)
		}
		deposits[i].Proof = proof
	}
	return depositTrie.Root()
}

// NewBeaconState returns a genesis-slot state carrying the given eth1 deposit
// root, ready for deposit admission.
func NewBeaconState(depositRoot [32]byte, depositCount uint64) *state.BeaconState {
	return &state.BeaconState{
		Slot: params.BeaconConfig().GenesisSlot,
		Fork: &eth.Fork{
			PreviousVersion: params.BeaconConfig().GenesisForkVersion,
			CurrentVersion:  params.BeaconConfig().GenesisForkVersion,
			Epoch:           params.BeaconConfig().GenesisEpoch,
		},
		Eth1Data: &eth.Eth1Data{
			DepositRoot:  depositRoot[:],
			DepositCount: depositCount,
			BlockHash:    make([]byte, 32),
		},
	}
}
