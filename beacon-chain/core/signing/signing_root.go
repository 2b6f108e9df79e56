// Package signing includes the signature domain and signing root helpers
// shared by state transition processing.
package signing

import (
	fssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
	"github.com/strandlabs/strand/config/params"
	eth "github.com/strandlabs/strand/consensus-types/eth"
	types "github.com/strandlabs/strand/consensus-types/primitives"
	"github.com/strandlabs/strand/crypto/bls"
	"github.com/strandlabs/strand/encoding/bytesutil"
)

const (
	// ForkVersionByteLength length of fork version byte array.
	ForkVersionByteLength = 4
	// DomainByteLength length of domain byte array.
	DomainByteLength = 4
)

// ErrSigFailedToVerify returns when a signature of a block object(ie attestation, slashing, exit... etc)
// failed to verify.
var ErrSigFailedToVerify = errors.New("signature did not verify")

// ErrNilFork returns when a nil fork is used to compute a signature domain.
var ErrNilFork = errors.New("nil fork")

// ComputeSigningRoot computes the root of the object by calculating the hash tree root of the
// signing data with the given domain.
//
// Spec pseudocode definition:
//	def compute_signing_root(ssz_object: SSZObject, domain: Domain) -> Root:
//	    """
//	    Return the signing root for the corresponding signing data.
//	    """
//	    return hash_tree_root(SigningData(
//	        object_root=hash_tree_root(ssz_object),
//	        domain=domain,
//	    ))
func ComputeSigningRoot(object fssz.HashRoot, domain []byte) ([32]byte, error) {
	objRoot, err := object.HashTreeRoot()
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not hash the tree root of the object")
	}
	container := &eth.SigningData{
		ObjectRoot: objRoot[:],
		Domain:     domain,
	}
	return container.HashTreeRoot()
}

// VerifySigningRoot verifies the signing root of an object given its public key, signature and domain.
func VerifySigningRoot(object fssz.HashRoot, pub, signature, domain []byte) error {
	publicKey, err := bls.PublicKeyFromBytes(pub)
	if err != nil {
		return errors.Wrap(err, "could not convert bytes to public key")
	}
	sig, err := bls.SignatureFromBytes(signature)
	if err != nil {
		return errors.Wrap(err, "could not convert bytes to signature")
	}
	root, err := ComputeSigningRoot(object, domain)
	if err != nil {
		return errors.Wrap(err, "could not compute signing root")
	}
	if !sig.Verify(publicKey, root[:]) {
		return ErrSigFailedToVerify
	}
	return nil
}

// Domain returns the domain version for BLS private key to sign and verify with a previous
// version check.
//
// Spec pseudocode definition:
//	def get_domain(state: BeaconState, domain_type: DomainType, epoch: Epoch=None) -> Domain:
//	    """
//	    Return the signature domain (fork version concatenated with domain type) of a message.
//	    """
//	    epoch = get_current_epoch(state) if epoch is None else epoch
//	    fork_version = state.fork.previous_version if epoch < state.fork.epoch else state.fork.current_version
//	    return compute_domain(domain_type, fork_version, state.genesis_validators_root)
func Domain(fork *eth.Fork, epoch types.Epoch, domainType [DomainByteLength]byte, genesisRoot []byte) ([]byte, error) {
	if fork == nil {
		return []byte{}, ErrNilFork
	}
	var forkVersion []byte
	if epoch < fork.Epoch {
		forkVersion = fork.PreviousVersion
	} else {
		forkVersion = fork.CurrentVersion
	}
	if len(forkVersion) != ForkVersionByteLength {
		return []byte{}, errors.New("fork version length is not 4 byte")
	}
	forkVersionArray := bytesutil.ToBytes4(forkVersion)
	return ComputeDomain(domainType, forkVersionArray[:], genesisRoot)
}

// ComputeDomain returns the domain version for BLS private key to sign and verify.
//
// Spec pseudocode definition:
//	def compute_domain(domain_type: DomainType, fork_version: Version=None, genesis_validators_root: Root=None) -> Domain:
//	    """
//	    Return the domain for the ``domain_type`` and ``fork_version``.
//	    """
//	    if fork_version is None:
//	        fork_version = GENESIS_FORK_VERSION
//	    if genesis_validators_root is None:
//	        genesis_validators_root = Root()  # all bytes zero by default
//	    fork_data_root = compute_fork_data_root(fork_version, genesis_validators_root)
//	    return Domain(domain_type + fork_data_root[:28])
func ComputeDomain(domainType [DomainByteLength]byte, forkVersion, genesisValidatorsRoot []byte) ([]byte, error) {
	if forkVersion == nil {
		forkVersion = params.BeaconConfig().GenesisForkVersion
	}
	if genesisValidatorsRoot == nil {
		genesisValidatorsRoot = params.BeaconConfig().ZeroHash[:]
	}
	forkBytes := [ForkVersionByteLength]byte{}
	copy(forkBytes[:], forkVersion)

	forkDataRoot, err := computeForkDataRoot(forkBytes[:], genesisValidatorsRoot)
	if err != nil {
		return nil, err
	}

	return domain(domainType, forkDataRoot[:]), nil
}

// This returns the bls domain given by the domain type and fork data root.
func domain(domainType [DomainByteLength]byte, forkDataRoot []byte) []byte {
	var b []byte
	b = append(b, domainType[:4]...)
	b = append(b, forkDataRoot[:28]...)
	return b
}

// this returns the 32byte fork data root for the ``current_version`` and ``genesis_validators_root``.
// This is used primarily in signature domains to avoid collisions across forks/chains.
//
// Spec pseudocode definition:
//	def compute_fork_data_root(current_version: Version, genesis_validators_root: Root) -> Root:
//	    """
//	    Return the 32-byte fork data root for the ``current_version`` and ``genesis_validators_root``.
//	    This is used primarily in signature domains to avoid collisions across forks/chains.
//	    """
//	    return hash_tree_root(ForkData(
//	        current_version=current_version,
//	        genesis_validators_root=genesis_validators_root,
//	    ))
func computeForkDataRoot(version, root []byte) ([32]byte, error) {
	r, err := (&eth.ForkData{
		CurrentVersion:        version,
		GenesisValidatorsRoot: root,
	}).HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	return r, nil
}
