package kv

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	eth "github.com/strandlabs/strand/consensus-types/eth"
	types "github.com/strandlabs/strand/consensus-types/primitives"
	"github.com/strandlabs/strand/encoding/bytesutil"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// StateUpperLimitNoRetain is the state upper limit value marking a node that
// retains no historical states at all.
const StateUpperLimitNoRetain = types.Slot(math.MaxUint64)

// errMalformedRecord indicates a metadata record failed to decode. The store
// treats this as corruption: fatal, never retried.
var errMalformedRecord = errors.New("malformed metadata record")

// errPruningCheckpointRegression returns when a pruning checkpoint save would
// move the pruned boundary backwards.
var errPruningCheckpointRegression = errors.New("pruning checkpoint epoch regression")

// errInvalidAnchorInfo returns when anchor info violates its slot ordering
// invariants.
var errInvalidAnchorInfo = errors.New("invalid anchor info")

// StoreItem is implemented by every metadata record type. Each record is
// bound to a fixed bucket and a fixed reserved key, and owns its canonical
// byte encoding. The store engine performs only raw get/put against
// (bucket, key).
type StoreItem interface {
	// Bucket is the single logical column the record lives in.
	Bucket() []byte
	// Key is the record's reserved 32-byte key.
	Key() []byte
	// StoreBytes returns the canonical encoding of the record.
	StoreBytes() ([]byte, error)
	// LoadStoreBytes decodes the record in place from its canonical encoding.
	LoadStoreBytes(enc []byte) error
}

func putItemTx(tx *bolt.Tx, item StoreItem) error {
	enc, err := item.StoreBytes()
	if err != nil {
		return err
	}
	return tx.Bucket(item.Bucket()).Put(item.Key(), enc)
}

// putItem writes the record in a single write transaction.
func (s *Store) putItem(item StoreItem) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return putItemTx(tx, item)
	})
}

// getItem reads the record into item, reporting whether it was present.
func (s *Store) getItem(item StoreItem) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		enc := tx.Bucket(item.Bucket()).Get(item.Key())
		if enc == nil {
			return nil
		}
		found = true
		return item.LoadStoreBytes(enc)
	})
	return found, err
}

// SchemaVersion is the on-disk schema version of the database, stored as a
// single little-endian uint64 under the schema version key.
type SchemaVersion uint64

// Bucket -- implements StoreItem.
func (v *SchemaVersion) Bucket() []byte {
	return metadataBucket
}

// Key -- implements StoreItem.
func (v *SchemaVersion) Key() []byte {
	return schemaVersionKey
}

// StoreBytes -- implements StoreItem.
func (v *SchemaVersion) StoreBytes() ([]byte, error) {
	return bytesutil.Uint64ToBytesLittleEndian(uint64(*v)), nil
}

// LoadStoreBytes -- implements StoreItem.
func (v *SchemaVersion) LoadStoreBytes(enc []byte) error {
	if len(enc) != 8 {
		return errors.Wrapf(errMalformedRecord, "schema version has %d bytes, wanted 8", len(enc))
	}
	*v = SchemaVersion(binary.LittleEndian.Uint64(enc))
	return nil
}

// PruningCheckpoint wraps the checkpoint of the most recently completed
// pruning pass. Its epoch never decreases once written.
type PruningCheckpoint struct {
	Checkpoint *eth.Checkpoint
}

// Bucket -- implements StoreItem.
func (c *PruningCheckpoint) Bucket() []byte {
	return metadataBucket
}

// Key -- implements StoreItem.
func (c *PruningCheckpoint) Key() []byte {
	return pruningCheckpointKey
}

// StoreBytes -- implements StoreItem.
func (c *PruningCheckpoint) StoreBytes() ([]byte, error) {
	if c.Checkpoint == nil || len(c.Checkpoint.Root) != 32 {
		return nil, errors.New("pruning checkpoint requires a 32-byte root")
	}
	enc := make([]byte, 0, 40)
	enc = append(enc, bytesutil.Uint64ToBytesLittleEndian(uint64(c.Checkpoint.Epoch))...)
	enc = append(enc, c.Checkpoint.Root...)
	return enc, nil
}

// LoadStoreBytes -- implements StoreItem.
func (c *PruningCheckpoint) LoadStoreBytes(enc []byte) error {
	if len(enc) != 40 {
		return errors.Wrapf(errMalformedRecord, "pruning checkpoint has %d bytes, wanted 40", len(enc))
	}
	c.Checkpoint = &eth.Checkpoint{
		Epoch: types.Epoch(binary.LittleEndian.Uint64(enc[0:8])),
		Root:  bytesutil.SafeCopyBytes(enc[8:40]),
	}
	return nil
}

// CompactionTimestamp is the UNIX timestamp of the last database compaction,
// used only to throttle future compactions.
type CompactionTimestamp uint64

// Bucket -- implements StoreItem.
func (t *CompactionTimestamp) Bucket() []byte {
	return metadataBucket
}

// Key -- implements StoreItem.
func (t *CompactionTimestamp) Key() []byte {
	return compactionTimestampKey
}

// StoreBytes -- implements StoreItem.
func (t *CompactionTimestamp) StoreBytes() ([]byte, error) {
	return bytesutil.Uint64ToBytesLittleEndian(uint64(*t)), nil
}

// LoadStoreBytes -- implements StoreItem.
func (t *CompactionTimestamp) LoadStoreBytes(enc []byte) error {
	if len(enc) != 8 {
		return errors.Wrapf(errMalformedRecord, "compaction timestamp has %d bytes, wanted 8", len(enc))
	}
	*t = CompactionTimestamp(binary.LittleEndian.Uint64(enc))
	return nil
}

// AnchorInfo tracks the database parameters relevant to weak subjectivity
// sync: the anchor the node started from and how far backfill has extended
// history below it.
type AnchorInfo struct {
	// AnchorSlot is the slot at which the anchor state is present and which we cannot revert.
	AnchorSlot types.Slot
	// OldestBlockSlot is the slot from which historical blocks are available (>=).
	OldestBlockSlot types.Slot
	// OldestBlockParent is the parent root of the oldest stored block, the
	// next block needed to fill in history. Zero iff we know all blocks back
	// to genesis.
	OldestBlockParent [32]byte
	// StateUpperLimit is the slot from which historical states are available (>=).
	StateUpperLimit types.Slot
	// StateLowerLimit is the slot before which historical states are available (<=).
	StateLowerLimit types.Slot
}

// BlockBackfillComplete returns true if the block backfill has completed for
// the given target slot, which is likely to be the closest weak subjectivity
// point.
func (a *AnchorInfo) BlockBackfillComplete(target types.Slot) bool {
	return a.OldestBlockSlot <= target
}

// Bucket -- implements StoreItem.
func (a *AnchorInfo) Bucket() []byte {
	return metadataBucket
}

// Key -- implements StoreItem.
func (a *AnchorInfo) Key() []byte {
	return anchorInfoKey
}

// StoreBytes -- implements StoreItem.
func (a *AnchorInfo) StoreBytes() ([]byte, error) {
	enc := make([]byte, 0, 64)
	enc = append(enc, bytesutil.Uint64ToBytesLittleEndian(uint64(a.AnchorSlot))...)
	enc = append(enc, bytesutil.Uint64ToBytesLittleEndian(uint64(a.OldestBlockSlot))...)
	enc = append(enc, a.OldestBlockParent[:]...)
	enc = append(enc, bytesutil.Uint64ToBytesLittleEndian(uint64(a.StateUpperLimit))...)
	enc = append(enc, bytesutil.Uint64ToBytesLittleEndian(uint64(a.StateLowerLimit))...)
	return enc, nil
}

// LoadStoreBytes -- implements StoreItem.
func (a *AnchorInfo) LoadStoreBytes(enc []byte) error {
	if len(enc) != 64 {
		return errors.Wrapf(errMalformedRecord, "anchor info has %d bytes, wanted 64", len(enc))
	}
	a.AnchorSlot = types.Slot(binary.LittleEndian.Uint64(enc[0:8]))
	a.OldestBlockSlot = types.Slot(binary.LittleEndian.Uint64(enc[8:16]))
	a.OldestBlockParent = bytesutil.ToBytes32(enc[16:48])
	a.StateUpperLimit = types.Slot(binary.LittleEndian.Uint64(enc[48:56]))
	a.StateLowerLimit = types.Slot(binary.LittleEndian.Uint64(enc[56:64]))
	return nil
}

// BlobInfo tracks the database parameters relevant to blob sync.
type BlobInfo struct {
	// OldestBlobSlot is the slot after which blobs are or *will be*
	// available (>=). Nil means the blob fork epoch is not yet known; a
	// future slot denotes a scheduled boundary.
	OldestBlobSlot *types.Slot
	// BlobsDB records whether a separate blobs database is in use.
	// Deprecated: retained only to decode legacy records, always written true.
	BlobsDB bool
}

// Bucket -- implements StoreItem.
func (b *BlobInfo) Bucket() []byte {
	return metadataBucket
}

// Key -- implements StoreItem.
func (b *BlobInfo) Key() []byte {
	return blobInfoKey
}

// StoreBytes encodes the record as an SSZ container: a 4-byte offset to the
// optional slot, the flag byte, then the optional slot as a legacy SSZ union,
// a 4-byte selector (0 absent, 1 present) followed by the slot bytes.
func (b *BlobInfo) StoreBytes() ([]byte, error) {
	enc := make([]byte, 0, 17)
	enc = append(enc, bytesutil.Uint32ToBytesLittleEndian(5)...)
	// The deprecated flag is always persisted as true.
	enc = append(enc, 1)
	if b.OldestBlobSlot != nil {
		enc = append(enc, bytesutil.Uint32ToBytesLittleEndian(1)...)
		enc = append(enc, bytesutil.Uint64ToBytesLittleEndian(uint64(*b.OldestBlobSlot))...)
	} else {
		enc = append(enc, bytesutil.Uint32ToBytesLittleEndian(0)...)
	}
	return enc, nil
}

// LoadStoreBytes -- implements StoreItem.
func (b *BlobInfo) LoadStoreBytes(enc []byte) error {
	if len(enc) != 9 && len(enc) != 17 {
		return errors.Wrapf(errMalformedRecord, "blob info has %d bytes, wanted 9 or 17", len(enc))
	}
	if offset := binary.LittleEndian.Uint32(enc[0:4]); offset != 5 {
		return errors.Wrapf(errMalformedRecord, "blob info offset %d, wanted 5", offset)
	}
	switch enc[4] {
	case 0:
		b.BlobsDB = false
	case 1:
		b.BlobsDB = true
	default:
		return errors.Wrapf(errMalformedRecord, "blob info flag byte %#x", enc[4])
	}
	selector := binary.LittleEndian.Uint32(enc[5:9])
	switch {
	case selector == 0 && len(enc) == 9:
		b.OldestBlobSlot = nil
	case selector == 1 && len(enc) == 17:
		slot := types.Slot(binary.LittleEndian.Uint64(enc[9:17]))
		b.OldestBlobSlot = &slot
	default:
		return errors.Wrapf(errMalformedRecord, "blob info selector %d with %d bytes", selector, len(enc))
	}
	return nil
}

// SchemaVersion returns the on-disk schema version. The version record is
// guaranteed present once the store is open.
func (s *Store) SchemaVersion(ctx context.Context) (SchemaVersion, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.SchemaVersion")
	defer span.End()
	var v SchemaVersion
	found, err := s.getItem(&v)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, errors.New("schema version record missing")
	}
	return v, nil
}

// PruningCheckpoint returns the most recent successfully pruned boundary, or
// the genesis checkpoint on a fresh database.
func (s *Store) PruningCheckpoint(ctx context.Context) (*eth.Checkpoint, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.PruningCheckpoint")
	defer span.End()
	cp := &PruningCheckpoint{}
	found, err := s.getItem(cp)
	if err != nil {
		return nil, err
	}
	if !found {
		return &eth.Checkpoint{Root: make([]byte, 32)}, nil
	}
	return cp.Checkpoint, nil
}

// SavePruningCheckpoint records the boundary of a completed pruning pass.
// The epoch is monotonically non-decreasing; a regression is rejected.
func (s *Store) SavePruningCheckpoint(ctx context.Context, checkpoint *eth.Checkpoint) error {
	_, span := trace.StartSpan(ctx, "BeaconDB.SavePruningCheckpoint")
	defer span.End()
	return s.db.Update(func(tx *bolt.Tx) error {
		prev := &PruningCheckpoint{}
		if enc := tx.Bucket(metadataBucket).Get(pruningCheckpointKey); enc != nil {
			if err := prev.LoadStoreBytes(enc); err != nil {
				return err
			}
			if checkpoint.Epoch < prev.Checkpoint.Epoch {
				return errors.Wrapf(errPruningCheckpointRegression, "saved epoch %d, new epoch %d",
					prev.Checkpoint.Epoch, checkpoint.Epoch)
			}
		}
		if err := putItemTx(tx, &PruningCheckpoint{Checkpoint: checkpoint}); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"epoch": checkpoint.Epoch,
			"root":  fmt.Sprintf("%#x", bytesutil.Trunc(checkpoint.Root)),
		}).Debug("Saved pruning checkpoint")
		return nil
	})
}

// CompactionTimestamp returns the UNIX timestamp of the last completed
// compaction, zero on a fresh database.
func (s *Store) CompactionTimestamp(ctx context.Context) (uint64, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.CompactionTimestamp")
	defer span.End()
	var t CompactionTimestamp
	if _, err := s.getItem(&t); err != nil {
		return 0, err
	}
	return uint64(t), nil
}

// SaveCompactionTimestamp records the completion time of a compaction.
func (s *Store) SaveCompactionTimestamp(ctx context.Context, timestamp uint64) error {
	_, span := trace.StartSpan(ctx, "BeaconDB.SaveCompactionTimestamp")
	defer span.End()
	t := CompactionTimestamp(timestamp)
	return s.putItem(&t)
}

// DefaultAnchorInfo describes a database with complete history starting from
// genesis, requiring no backfill.
func DefaultAnchorInfo() *AnchorInfo {
	return &AnchorInfo{}
}

// AnchorInfo returns the stored weak subjectivity sync parameters, or the
// no-backfill-needed default on a fresh database.
func (s *Store) AnchorInfo(ctx context.Context) (*AnchorInfo, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.AnchorInfo")
	defer span.End()
	info := &AnchorInfo{}
	found, err := s.getItem(info)
	if err != nil {
		return nil, err
	}
	if !found {
		return DefaultAnchorInfo(), nil
	}
	return info, nil
}

// SaveAnchorInfo records the backfill frontier. Saved incrementally as
// backfill extends OldestBlockSlot downward; the terminal state is a zero
// OldestBlockParent.
func (s *Store) SaveAnchorInfo(ctx context.Context, info *AnchorInfo) error {
	_, span := trace.StartSpan(ctx, "BeaconDB.SaveAnchorInfo")
	defer span.End()
	if info.OldestBlockSlot > info.AnchorSlot {
		return errors.Wrapf(errInvalidAnchorInfo, "oldest block slot %d above anchor slot %d",
			info.OldestBlockSlot, info.AnchorSlot)
	}
	if info.StateLowerLimit > info.StateUpperLimit {
		return errors.Wrapf(errInvalidAnchorInfo, "state lower limit %d above upper limit %d",
			info.StateLowerLimit, info.StateUpperLimit)
	}
	return s.putItem(info)
}

// BlobInfo returns the stored blob sync parameters. On a fresh database the
// blob fork boundary is not yet known.
func (s *Store) BlobInfo(ctx context.Context) (*BlobInfo, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.BlobInfo")
	defer span.End()
	info := &BlobInfo{}
	found, err := s.getItem(info)
	if err != nil {
		return nil, err
	}
	if !found {
		return &BlobInfo{OldestBlobSlot: nil, BlobsDB: true}, nil
	}
	return info, nil
}

// SaveBlobInfo records the blob availability boundary.
func (s *Store) SaveBlobInfo(ctx context.Context, info *BlobInfo) error {
	_, span := trace.StartSpan(ctx, "BeaconDB.SaveBlobInfo")
	defer span.End()
	return s.putItem(info)
}
