package kv

import (
	"context"
	"fmt"
	"path"
	"testing"
	"time"

	eth "github.com/strandlabs/strand/consensus-types/eth"
	types "github.com/strandlabs/strand/consensus-types/primitives"
	"github.com/strandlabs/strand/testing/assert"
	"github.com/strandlabs/strand/testing/require"
	bolt "go.etcd.io/bbolt"
)

func TestBackup(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	root := make([]byte, 32)
	root[5] = 0x2a
	require.NoError(t, db.SavePruningCheckpoint(ctx, &eth.Checkpoint{Epoch: 64, Root: root}))
	require.NoError(t, db.Backup(ctx))

	backupPath := path.Join(db.DatabasePath(), backupsDirectoryName,
		fmt.Sprintf("strand_beaconmeta_schema_v%d.backup", uint64(CurrentSchemaVersion)))

	// The backup is a complete bolt database carrying the saved records.
	backupDB, err := bolt.Open(backupPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	require.NoError(t, err)
	defer func() {
		require.NoError(t, backupDB.Close())
	}()
	err = backupDB.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(metadataBucket)
		require.NotNil(t, bkt, "metadata bucket missing from backup")

		var v SchemaVersion
		require.NoError(t, v.LoadStoreBytes(bkt.Get(schemaVersionKey)))
		assert.Equal(t, CurrentSchemaVersion, v)

		cp := &PruningCheckpoint{}
		require.NoError(t, cp.LoadStoreBytes(bkt.Get(pruningCheckpointKey)))
		assert.Equal(t, types.Epoch(64), cp.Checkpoint.Epoch)
		assert.DeepEqual(t, root, cp.Checkpoint.Root)
		return nil
	})
	require.NoError(t, err)
}
