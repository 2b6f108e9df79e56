package trie

import "github.com/strandlabs/strand/crypto/hash"

// ZeroHashes is the hash of the zero subtree at every trie level:
// ZeroHashes[0] is the zero leaf, ZeroHashes[i+1] = hash(ZeroHashes[i] || ZeroHashes[i]).
var ZeroHashes [][32]byte

func init() {
	ZeroHashes = make([][32]byte, 64)
	for i := 0; i < len(ZeroHashes)-1; i++ {
		ZeroHashes[i+1] = hash.Hash(append(ZeroHashes[i][:], ZeroHashes[i][:]...))
	}
}
