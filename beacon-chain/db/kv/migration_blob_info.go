package kv

import (
	bolt "go.etcd.io/bbolt"
)

// Schema v21 requires a blob info record to be present so that blob sync can
// distinguish "fork epoch unknown" from "record never written". Databases
// upgraded from v20 are seeded with the unknown-boundary default.
func migrateSeedBlobInfo(tx *bolt.Tx) error {
	bkt := tx.Bucket(metadataBucket)
	if bkt.Get(blobInfoKey) != nil {
		return nil
	}
	return putItemTx(tx, &BlobInfo{OldestBlobSlot: nil, BlobsDB: true})
}
