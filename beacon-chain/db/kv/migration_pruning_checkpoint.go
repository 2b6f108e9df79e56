package kv

import (
	eth "github.com/strandlabs/strand/consensus-types/eth"
	types "github.com/strandlabs/strand/consensus-types/primitives"
	"github.com/strandlabs/strand/encoding/bytesutil"
	bolt "go.etcd.io/bbolt"
)

// Schema v19 stored the pruning checkpoint as a bare 8-byte epoch. v20 stores
// a full (epoch, root) checkpoint. Legacy records are re-encoded with a zero
// root, the block root being unrecoverable at migration time.
func migratePruningCheckpointRoot(tx *bolt.Tx) error {
	bkt := tx.Bucket(metadataBucket)
	enc := bkt.Get(pruningCheckpointKey)
	if enc == nil || len(enc) != 8 {
		// Absent or already in the new layout.
		return nil
	}
	cp := &PruningCheckpoint{Checkpoint: &eth.Checkpoint{
		Epoch: types.Epoch(bytesutil.BytesToUint64LittleEndian(enc)),
		Root:  make([]byte, 32),
	}}
	return putItemTx(tx, cp)
}
