package kv

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// CurrentSchemaVersion is the schema version this binary reads and writes.
// Any persisted database carries this value once the store is open.
const CurrentSchemaVersion = SchemaVersion(21)

// ErrSchemaDowngrade returns when the on-disk schema version is newer than
// this binary supports. Opening such a database is refused outright:
// downgrades are unrecoverable, unlike a failed forward migration.
var ErrSchemaDowngrade = errors.New("on-disk schema version is newer than this binary supports")

// MigrationError wraps the failure of a single forward-migration step. The
// node must not proceed with a partially migrated database.
type MigrationError struct {
	From SchemaVersion
	To   SchemaVersion
	Err  error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("schema migration from v%d to v%d failed: %v", e.From, e.To, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// A migration upgrades on-disk records from the previous schema version to
// its target version within the given transaction.
type migration func(*bolt.Tx) error

// migrations maps a target schema version to the step producing it. Steps
// never skip versions; a version with no registered step aborts the upgrade.
var migrations = map[SchemaVersion]migration{
	20: migratePruningCheckpointRoot,
	21: migrateSeedBlobInfo,
}

// ensureSchemaVersion runs the schema-check protocol once at store open:
// a fresh database is stamped with the current version, an equal version
// proceeds, an older version is migrated forward one step at a time, and a
// newer version refuses to open.
func (s *Store) ensureSchemaVersion(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "BeaconDB.ensureSchemaVersion")
	defer span.End()

	var onDisk SchemaVersion
	found, err := s.getItem(&onDisk)
	if err != nil {
		return err
	}
	if !found {
		log.WithField("version", uint64(CurrentSchemaVersion)).Debug("Initializing fresh database schema")
		version := CurrentSchemaVersion
		return s.db.Update(func(tx *bolt.Tx) error {
			if err := putItemTx(tx, &version); err != nil {
				return err
			}
			if err := putItemTx(tx, DefaultAnchorInfo()); err != nil {
				return err
			}
			return putItemTx(tx, &BlobInfo{OldestBlobSlot: nil, BlobsDB: true})
		})
	}
	switch {
	case onDisk == CurrentSchemaVersion:
		return nil
	case onDisk > CurrentSchemaVersion:
		return errors.Wrapf(ErrSchemaDowngrade, "on-disk version %d, supported version %d",
			uint64(onDisk), uint64(CurrentSchemaVersion))
	}
	return s.runMigrations(ctx, onDisk)
}

// runMigrations applies the registered migration steps from the on-disk
// version up to the current one, strictly in increasing order. Each step and
// its version bump commit in a single transaction, so a failed step leaves
// the on-disk version untouched.
func (s *Store) runMigrations(ctx context.Context, from SchemaVersion) error {
	for v := from + 1; v <= CurrentSchemaVersion; v++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		step, ok := migrations[v]
		if !ok {
			return &MigrationError{From: v - 1, To: v, Err: errors.New("no migration step registered")}
		}
		log.WithFields(logrus.Fields{
			"from": uint64(v - 1),
			"to":   uint64(v),
		}).Info("Migrating database schema")
		version := v
		if err := s.db.Update(func(tx *bolt.Tx) error {
			if err := step(tx); err != nil {
				return err
			}
			return putItemTx(tx, &version)
		}); err != nil {
			return &MigrationError{From: v - 1, To: v, Err: err}
		}
	}
	return nil
}
