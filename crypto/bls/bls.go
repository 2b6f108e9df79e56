// Package bls implements a go-wrapper around a library implementing the
// BLS12-381 curve. This package exposes a public API for verifying and
// aggregating BLS signatures used by Ethereum consensus.
package bls

import (
	"github.com/strandlabs/strand/crypto/bls/common"
	"github.com/strandlabs/strand/crypto/bls/herumi"
)

// SecretKeyFromBytes creates a BLS private key from a BigEndian byte slice.
func SecretKeyFromBytes(privKey []byte) (SecretKey, error) {
	return herumi.SecretKeyFromBytes(privKey)
}

// PublicKeyFromBytes creates a BLS public key from a BigEndian byte slice.
func PublicKeyFromBytes(pubKey []byte) (PublicKey, error) {
	return herumi.PublicKeyFromBytes(pubKey)
}

// SignatureFromBytes creates a BLS signature from a LittleEndian byte slice.
func SignatureFromBytes(sig []byte) (Signature, error) {
	return herumi.SignatureFromBytes(sig)
}

// RandKey creates a new private key using a random input.
func RandKey() (common.SecretKey, error) {
	return herumi.RandKey()
}
