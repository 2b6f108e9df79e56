package kv

import (
	"context"
	"fmt"
	"os"
	"path"

	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

const backupsDirectoryName = "backups"

// Backup the database to the datadir backup directory.
// Example for a backup taken at schema v21: $DATADIR/backups/strand_beaconmeta_schema_v21.backup
func (s *Store) Backup(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "BeaconDB.Backup")
	defer span.End()

	backupsDir := path.Join(s.databasePath, backupsDirectoryName)
	version, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	// Ensure the backups directory exists.
	if err := os.MkdirAll(backupsDir, 0700); err != nil {
		return err
	}
	backupPath := path.Join(backupsDir, fmt.Sprintf("strand_beaconmeta_schema_v%d.backup", uint64(version)))
	log.WithField("backup", backupPath).Info("Writing backup database")
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.CopyFile(backupPath, 0600)
	})
}
