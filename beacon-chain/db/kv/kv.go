// Package kv defines a persistent backend for the strand metadata schema,
// using BoltDB as the underlying key-value store.
package kv

import (
	"context"
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	prombbolt "github.com/prysmaticlabs/prombbolt"
	bolt "go.etcd.io/bbolt"
)

const (
	// DatabaseFileName is the name of the metadata database file.
	DatabaseFileName = "beaconmeta.db"
	// Specifies the initial mmap size of bolt.
	mmapSize = 10e6
)

// Store defines an implementation of the metadata store over BoltDB. It owns
// only the mapping between typed records and canonical bytes; higher-level
// pruning, migration and backfill orchestration serialize their writes
// outside of it.
type Store struct {
	db           *bolt.DB
	databasePath string
}

// NewKVStore initializes a new boltDB key-value store at the directory path
// specified, creates the metadata bucket, verifies the on-disk schema version
// (migrating forward where needed), and stores an open connection db object
// as a property of the Store struct.
func NewKVStore(ctx context.Context, dirPath string) (*Store, error) {
	if err := os.MkdirAll(dirPath, 0700); err != nil {
		return nil, err
	}
	datafile := path.Join(dirPath, DatabaseFileName)
	boltDB, err := bolt.Open(datafile, 0600, &bolt.Options{Timeout: 1 * time.Second, InitialMmapSize: mmapSize})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errors.New("cannot obtain database lock, database may be in use by another process")
		}
		return nil, err
	}

	kv := &Store{
		db:           boltDB,
		databasePath: dirPath,
	}
	if err := kv.db.Update(func(tx *bolt.Tx) error {
		return createBuckets(tx, metadataBucket)
	}); err != nil {
		return nil, err
	}
	if err := kv.ensureSchemaVersion(ctx); err != nil {
		if closeErr := boltDB.Close(); closeErr != nil {
			log.WithError(closeErr).Error("Could not close database after failed schema check")
		}
		return nil, err
	}
	if err := prometheus.Register(prombbolt.New("strand_db", kv.db)); err != nil {
		log.WithError(err).Debug("Could not register prometheus collector")
	}
	return kv, nil
}

// ClearDB removes the previously stored database in the data directory.
func (s *Store) ClearDB() error {
	if _, err := os.Stat(s.databasePath); os.IsNotExist(err) {
		return nil
	}
	prometheus.Unregister(prombbolt.New("strand_db", s.db))
	return os.Remove(path.Join(s.databasePath, DatabaseFileName))
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	prometheus.Unregister(prombbolt.New("strand_db", s.db))
	return s.db.Close()
}

// DatabasePath at which this database writes files.
func (s *Store) DatabasePath() string {
	return s.databasePath
}

func createBuckets(tx *bolt.Tx, buckets ...[]byte) error {
	for _, bucket := range buckets {
		if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
			return err
		}
	}
	return nil
}
