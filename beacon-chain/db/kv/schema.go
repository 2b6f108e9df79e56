package kv

import "bytes"

// The schema defines how to store and retrieve metadata records from the db.
// All node-local bookkeeping records live in a single metadata bucket under
// reserved 32-byte keys, one key per record type.
var (
	metadataBucket = []byte("chain-metadata")

	// Reserved keys within the metadata bucket. Each record type owns a
	// single repeat-byte key so the layout stays stable across schema
	// versions.
	schemaVersionKey       = metadataKey(0)
	configKey              = metadataKey(1)
	splitKey               = metadataKey(2)
	pruningCheckpointKey   = metadataKey(3)
	compactionTimestampKey = metadataKey(4)
	anchorInfoKey          = metadataKey(5)
	blobInfoKey            = metadataKey(6)
)

// metadataKey builds a reserved key by repeating the given byte across all
// 32 bytes of the key.
func metadataKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}
