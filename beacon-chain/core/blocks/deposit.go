// Package blocks contains block operation processing for the beacon chain,
// currently scoped to validator deposit admission.
package blocks

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/strandlabs/strand/beacon-chain/core/signing"
	"github.com/strandlabs/strand/beacon-chain/state"
	"github.com/strandlabs/strand/config/params"
	eth "github.com/strandlabs/strand/consensus-types/eth"
	"github.com/strandlabs/strand/container/trie"
	"github.com/strandlabs/strand/encoding/bytesutil"
	"github.com/strandlabs/strand/time/slots"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrBadProofOfPossession returns when a deposit's signature does not
	// verify against its own deposit message.
	ErrBadProofOfPossession = errors.New("deposit proof of possession did not verify")
	// ErrBadMerkleProof returns when a deposit's Merkle branch does not
	// reproduce the eth1 deposit root recorded in the state.
	ErrBadMerkleProof = errors.New("deposit merkle branch did not verify")
	// ErrBadWithdrawalCredentials returns when a top-up deposit carries
	// withdrawal credentials that differ from the registered ones.
	ErrBadWithdrawalCredentials = errors.New("deposit withdrawal credentials do not match the registered validator")
	// ErrNilDeposit returns when a nil deposit or deposit data is processed.
	ErrNilDeposit = errors.New("nil deposit or deposit data")
)

// DepositIndexError returns when a deposit arrives out of order with respect
// to the state's deposit counter.
type DepositIndexError struct {
	Expected uint64
	Actual   uint64
}

func (e DepositIndexError) Error() string {
	return fmt.Sprintf("expected deposit index %d, received %d", e.Expected, e.Actual)
}

// VerifyDeposit performs the stateless checks on a single deposit: the BLS
// proof of possession over the deposit message, and optionally the Merkle
// branch against the state's eth1 deposit root.
//
// This function does not read or mutate state.Eth1DepositIndex and may
// therefore run in parallel across the deposits of a block. See
// VerifyDepositIndex for the sequential counterpart.
func VerifyDeposit(beaconState *state.BeaconState, deposit *eth.Deposit, verifyMerkleBranch bool) error {
	if beaconState == nil {
		return state.ErrNilState
	}
	if deposit == nil || deposit.Data == nil {
		return ErrNilDeposit
	}
	if err := verifyProofOfPossession(beaconState, deposit); err != nil {
		return err
	}
	if verifyMerkleBranch {
		if err := verifyDepositMerkleProof(beaconState, deposit); err != nil {
			return err
		}
	}
	return nil
}

// VerifyDepositIndex checks that the deposit carries exactly the index the
// state expects next. Each admission advances the counter by one, so this
// must run sequentially in deposit-arrival order.
func VerifyDepositIndex(beaconState *state.BeaconState, deposit *eth.Deposit) error {
	if beaconState == nil {
		return state.ErrNilState
	}
	if deposit == nil {
		return ErrNilDeposit
	}
	if deposit.Index != beaconState.Eth1DepositIndex {
		return DepositIndexError{Expected: beaconState.Eth1DepositIndex, Actual: deposit.Index}
	}
	return nil
}

// ExistingValidatorIndex returns the registry index for the deposit's pubkey
// if it is already registered. A registered pubkey whose stored withdrawal
// credentials differ from the deposit's is rejected, preventing credential
// override through a top-up deposit.
func ExistingValidatorIndex(beaconState *state.BeaconState, deposit *eth.Deposit) (uint64, bool, error) {
	if beaconState == nil {
		return 0, false, state.ErrNilState
	}
	if deposit == nil || deposit.Data == nil {
		return 0, false, ErrNilDeposit
	}
	idx, ok := beaconState.ValidatorIndexByPubkey(bytesutil.ToBytes48(deposit.Data.PublicKey))
	if !ok {
		return 0, false, nil
	}
	if !bytes.Equal(deposit.Data.WithdrawalCredentials, beaconState.Validators[idx].WithdrawalCredentials) {
		return 0, false, ErrBadWithdrawalCredentials
	}
	return idx, true, nil
}

// ProcessDeposits admits a block's deposits into the beacon state. The
// cryptography-bound checks run unordered across workers; the index and
// registry mutations then run in a single ordered pass, per deposit
// advancing the state's deposit counter.
func ProcessDeposits(ctx context.Context, beaconState *state.BeaconState, deposits []*eth.Deposit) error {
	if beaconState == nil {
		return state.ErrNilState
	}
	eg, _ := errgroup.WithContext(ctx)
	for _, deposit := range deposits {
		d := deposit
		eg.Go(func() error {
			return VerifyDeposit(beaconState, d, true)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	for _, deposit := range deposits {
		if err := applyDeposit(beaconState, deposit); err != nil {
			return errors.Wrapf(err, "could not process deposit %d", deposit.Index)
		}
	}
	return nil
}

// applyDeposit performs the sequential phase of admission for one deposit:
// index check, registry consistency check, then the registry/balance
// mutation and counter advancement.
func applyDeposit(beaconState *state.BeaconState, deposit *eth.Deposit) error {
	if err := VerifyDepositIndex(beaconState, deposit); err != nil {
		return err
	}
	idx, exists, err := ExistingValidatorIndex(beaconState, deposit)
	if err != nil {
		return err
	}
	if exists {
		beaconState.Balances[idx] += deposit.Data.Amount
	} else {
		beaconState.AppendValidator(&eth.Validator{
			PublicKey:             bytesutil.SafeCopyBytes(deposit.Data.PublicKey),
			WithdrawalCredentials: bytesutil.SafeCopyBytes(deposit.Data.WithdrawalCredentials),
			EffectiveBalance:      effectiveBalance(deposit.Data.Amount),
		}, deposit.Data.Amount)
	}
	beaconState.Eth1DepositIndex++
	return nil
}

func effectiveBalance(amount uint64) uint64 {
	cfg := params.BeaconConfig()
	balance := amount - amount%cfg.EffectiveBalanceIncrement
	if balance > cfg.MaxEffectiveBalance {
		return cfg.MaxEffectiveBalance
	}
	return balance
}

func verifyProofOfPossession(beaconState *state.BeaconState, deposit *eth.Deposit) error {
	epoch := slots.ToEpoch(beaconState.Slot)
	domain, err := signing.Domain(beaconState.Fork, epoch, params.BeaconConfig().DomainDeposit, params.BeaconConfig().ZeroHash[:])
	if err != nil {
		return err
	}
	if err := signing.VerifySigningRoot(deposit.Data.SigningMessage(), deposit.Data.PublicKey, deposit.Data.Signature, domain); err != nil {
		return ErrBadProofOfPossession
	}
	return nil
}

func verifyDepositMerkleProof(beaconState *state.BeaconState, deposit *eth.Deposit) error {
	leaf, err := deposit.Data.HashTreeRoot()
	if err != nil {
		return errors.Wrap(err, "could not tree hash deposit data")
	}
	if ok := trie.VerifyMerkleBranch(
		beaconState.Eth1Data.DepositRoot,
		leaf[:],
		deposit.Index,
		deposit.Proof,
		params.BeaconConfig().DepositContractTreeDepth,
	); !ok {
		return ErrBadMerkleProof
	}
	return nil
}
