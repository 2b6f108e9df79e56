package common

import "bytes"

// ZeroSecretKey represents a zero secret key.
var ZeroSecretKey = [32]byte{}

// InfinitePublicKey represents an infinite public key (G1 point at infinity).
var InfinitePublicKey = [48]byte{0xC0}

// InfiniteSignature represents an infinite signature (G2 point at infinity).
var InfiniteSignature = [96]byte{0xC0}

// SecretKeyIsZero checks if the secret key is a zero key.
func SecretKeyIsZero(key []byte) bool {
	return bytes.Equal(key, ZeroSecretKey[:])
}

// PublicKeyIsInfinite checks if the public key is the point at infinity.
func PublicKeyIsInfinite(key []byte) bool {
	return bytes.Equal(key, InfinitePublicKey[:])
}

// SignatureIsInfinite checks if the signature is the point at infinity.
func SignatureIsInfinite(key []byte) bool {
	return bytes.Equal(key, InfiniteSignature[:])
}
