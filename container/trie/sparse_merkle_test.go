package trie

import (
	"testing"

	"github.com/strandlabs/strand/testing/assert"
	"github.com/strandlabs/strand/testing/require"
)

func TestGenerateTrieFromItems_NoItemsProvided(t *testing.T) {
	if _, err := GenerateTrieFromItems(nil, 32); err == nil {
		t.Error("expected error when no items are provided, received nil")
	}
}

func TestVerifyMerkleBranch_KnownDepth3Tree(t *testing.T) {
	items := [][]byte{
		[]byte("short"),
		[]byte("eos"),
		[]byte("long"),
		[]byte("eth"),
	}
	m, err := GenerateTrieFromItems(items, 3)
	require.NoError(t, err)
	root := m.Root()

	for i := range items {
		proof, err := m.MerkleProof(i)
		require.NoError(t, err)
		require.Equal(t, 3, len(proof))
		require.Equal(t, true, VerifyMerkleBranch(root[:], items[i], uint64(i), proof, 3),
			"merkle proof for item %d failed to verify", i)
	}
}

func TestVerifyMerkleBranch_WrongRoot(t *testing.T) {
	items := [][]byte{[]byte("A"), []byte("B"), []byte("C"), []byte("D"), []byte("E")}
	m, err := GenerateTrieFromItems(items, 3)
	require.NoError(t, err)
	root := m.Root()
	proof, err := m.MerkleProof(2)
	require.NoError(t, err)
	require.Equal(t, true, VerifyMerkleBranch(root[:], items[2], 2, proof, 3))

	// Any single bit flipped in the root must fail verification.
	for byteIdx := 0; byteIdx < 32; byteIdx++ {
		for bit := 0; bit < 8; bit++ {
			tampered := make([]byte, 32)
			copy(tampered, root[:])
			tampered[byteIdx] ^= 1 << bit
			assert.Equal(t, false, VerifyMerkleBranch(tampered, items[2], 2, proof, 3))
		}
	}
}

func TestVerifyMerkleBranch_WrongIndex(t *testing.T) {
	items := [][]byte{[]byte("A"), []byte("B"), []byte("C"), []byte("D")}
	m, err := GenerateTrieFromItems(items, 3)
	require.NoError(t, err)
	root := m.Root()
	proof, err := m.MerkleProof(1)
	require.NoError(t, err)
	for _, wrongIndex := range []uint64{0, 2, 3, 7, 1 << 40} {
		assert.Equal(t, false, VerifyMerkleBranch(root[:], items[1], wrongIndex, proof, 3))
	}
}

func TestVerifyMerkleBranch_WrongProofLength(t *testing.T) {
	items := [][]byte{[]byte("A"), []byte("B")}
	m, err := GenerateTrieFromItems(items, 3)
	require.NoError(t, err)
	root := m.Root()
	proof, err := m.MerkleProof(0)
	require.NoError(t, err)
	assert.Equal(t, false, VerifyMerkleBranch(root[:], items[0], 0, proof[:2], 3))
	assert.Equal(t, false, VerifyMerkleBranch(root[:], items[0], 0, proof, 2))
}

func TestVerifyMerkleBranch_DepthOverflow(t *testing.T) {
	proof := make([][]byte, 64)
	for i := range proof {
		proof[i] = make([]byte, 32)
	}
	assert.Equal(t, false, VerifyMerkleBranch(make([]byte, 32), []byte("node"), 0, proof, 64))
}

func TestMerkleTrie_InsertRecomputesRoot(t *testing.T) {
	m, err := NewTrie(3)
	require.NoError(t, err)
	emptyRoot := m.Root()
	require.NoError(t, m.Insert([]byte("hello"), 0))
	insertedRoot := m.Root()
	if emptyRoot == insertedRoot {
		t.Error("expected root to change after insert")
	}
	proof, err := m.MerkleProof(0)
	require.NoError(t, err)
	require.Equal(t, true, VerifyMerkleBranch(insertedRoot[:], []byte("hello"), 0, proof, 3))
}

func TestMerkleTrie_Copy(t *testing.T) {
	items := [][]byte{[]byte("A"), []byte("B")}
	m, err := GenerateTrieFromItems(items, 3)
	require.NoError(t, err)
	cp := m.Copy()
	require.NoError(t, cp.Insert([]byte("C"), 2))
	if m.Root() == cp.Root() {
		t.Error("expected copied trie to diverge after insert")
	}
	assert.Equal(t, 2, m.NumOfItems())
	assert.Equal(t, 3, cp.NumOfItems())
}
