package kv

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	eth "github.com/strandlabs/strand/consensus-types/eth"
	types "github.com/strandlabs/strand/consensus-types/primitives"
	"github.com/strandlabs/strand/testing/assert"
	"github.com/strandlabs/strand/testing/require"
)

func TestSchemaVersion_FreshDatabase(t *testing.T) {
	db := setupDB(t)
	v, err := db.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, v)
}

func TestPruningCheckpoint_DefaultIsGenesis(t *testing.T) {
	db := setupDB(t)
	cp, err := db.PruningCheckpoint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.Epoch(0), cp.Epoch)
	assert.DeepEqual(t, make([]byte, 32), cp.Root)
}

func TestPruningCheckpoint_RoundTrip(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	root := make([]byte, 32)
	root[0] = 0xde
	root[31] = 0xad
	cp := &eth.Checkpoint{Epoch: 1024, Root: root}
	require.NoError(t, db.SavePruningCheckpoint(ctx, cp))

	got, err := db.PruningCheckpoint(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.Epoch(1024), got.Epoch)
	assert.DeepEqual(t, root, got.Root)
}

func TestSavePruningCheckpoint_RejectsRegression(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	require.NoError(t, db.SavePruningCheckpoint(ctx, &eth.Checkpoint{Epoch: 100, Root: make([]byte, 32)}))

	err := db.SavePruningCheckpoint(ctx, &eth.Checkpoint{Epoch: 99, Root: make([]byte, 32)})
	require.Equal(t, true, errors.Is(err, errPruningCheckpointRegression), "unexpected error: %v", err)

	// The stored checkpoint must be untouched by the rejected save.
	got, err := db.PruningCheckpoint(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.Epoch(100), got.Epoch)

	// Re-saving the same epoch is allowed, pruning passes may repeat.
	require.NoError(t, db.SavePruningCheckpoint(ctx, &eth.Checkpoint{Epoch: 100, Root: make([]byte, 32)}))
}

func TestSavePruningCheckpoint_RequiresRoot(t *testing.T) {
	db := setupDB(t)
	err := db.SavePruningCheckpoint(context.Background(), &eth.Checkpoint{Epoch: 1, Root: []byte{0x01}})
	assert.ErrorContains(t, "32-byte root", err)
}

func TestCompactionTimestamp_RoundTrip(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	ts, err := db.CompactionTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), ts, "fresh database must report a zero compaction timestamp")

	require.NoError(t, db.SaveCompactionTimestamp(ctx, 1719878400))
	ts, err = db.CompactionTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1719878400), ts)
}

func TestAnchorInfo_FreshDatabaseIsDefault(t *testing.T) {
	db := setupDB(t)
	info, err := db.AnchorInfo(context.Background())
	require.NoError(t, err)
	assert.DeepEqual(t, DefaultAnchorInfo(), info)
	assert.Equal(t, true, info.BlockBackfillComplete(0), "complete history must need no backfill")
}

func TestAnchorInfo_RoundTrip(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	var parent [32]byte
	parent[0] = 0xff
	info := &AnchorInfo{
		AnchorSlot:        types.Slot(8192),
		OldestBlockSlot:   types.Slot(4096),
		OldestBlockParent: parent,
		StateLowerLimit:   types.Slot(32),
		StateUpperLimit:   StateUpperLimitNoRetain,
	}
	require.NoError(t, db.SaveAnchorInfo(ctx, info))

	got, err := db.AnchorInfo(ctx)
	require.NoError(t, err)
	assert.DeepEqual(t, info, got)
}

func TestSaveAnchorInfo_RejectsInvalidSlots(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := db.SaveAnchorInfo(ctx, &AnchorInfo{AnchorSlot: 100, OldestBlockSlot: 101})
	require.Equal(t, true, errors.Is(err, errInvalidAnchorInfo), "unexpected error: %v", err)

	err = db.SaveAnchorInfo(ctx, &AnchorInfo{StateLowerLimit: 5, StateUpperLimit: 4})
	require.Equal(t, true, errors.Is(err, errInvalidAnchorInfo), "unexpected error: %v", err)
}

func TestAnchorInfo_BlockBackfillComplete(t *testing.T) {
	info := &AnchorInfo{OldestBlockSlot: 100}
	assert.Equal(t, false, info.BlockBackfillComplete(99))
	assert.Equal(t, true, info.BlockBackfillComplete(100))
	assert.Equal(t, true, info.BlockBackfillComplete(101))
}

func TestBlobInfo_FreshDatabase(t *testing.T) {
	db := setupDB(t)
	info, err := db.BlobInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, (*types.Slot)(nil), info.OldestBlobSlot, "fresh database must report an unknown blob boundary")
	assert.Equal(t, true, info.BlobsDB)
}

func TestBlobInfo_RoundTrip(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	slot := types.Slot(123456)
	require.NoError(t, db.SaveBlobInfo(ctx, &BlobInfo{OldestBlobSlot: &slot}))

	got, err := db.BlobInfo(ctx)
	require.NoError(t, err)
	require.NotNil(t, got.OldestBlobSlot)
	assert.Equal(t, slot, *got.OldestBlobSlot)
	assert.Equal(t, true, got.BlobsDB, "deprecated flag must always be written true")

	// Clearing the boundary round-trips too.
	require.NoError(t, db.SaveBlobInfo(ctx, &BlobInfo{OldestBlobSlot: nil}))
	got, err = db.BlobInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, (*types.Slot)(nil), got.OldestBlobSlot)
}

func TestStoreItem_EncodingRoundTrips(t *testing.T) {
	slot := types.Slot(42)
	items := []struct {
		name    string
		item    StoreItem
		decoded StoreItem
		size    int
	}{
		{"schema version", func() StoreItem { v := SchemaVersion(21); return &v }(), new(SchemaVersion), 8},
		{"compaction timestamp", func() StoreItem { c := CompactionTimestamp(1719878400); return &c }(), new(CompactionTimestamp), 8},
		{
			"pruning checkpoint",
			&PruningCheckpoint{Checkpoint: &eth.Checkpoint{Epoch: 7, Root: make([]byte, 32)}},
			&PruningCheckpoint{},
			40,
		},
		{
			"anchor info",
			&AnchorInfo{AnchorSlot: 2, OldestBlockSlot: 1, StateUpperLimit: StateUpperLimitNoRetain},
			&AnchorInfo{},
			64,
		},
		{"blob info without slot", &BlobInfo{BlobsDB: true}, &BlobInfo{}, 9},
		{"blob info with slot", &BlobInfo{OldestBlobSlot: &slot, BlobsDB: true}, &BlobInfo{}, 17},
	}
	for _, tt := range items {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := tt.item.StoreBytes()
			require.NoError(t, err)
			require.Equal(t, tt.size, len(enc))
			require.NoError(t, tt.decoded.LoadStoreBytes(enc))
			assert.DeepEqual(t, tt.item, tt.decoded)
		})
	}
}

func TestBlobInfo_EncodedLayout(t *testing.T) {
	enc, err := (&BlobInfo{BlobsDB: true}).StoreBytes()
	require.NoError(t, err)
	assert.DeepEqual(t, []byte{5, 0, 0, 0, 1, 0, 0, 0, 0}, enc)

	slot := types.Slot(42)
	enc, err = (&BlobInfo{OldestBlobSlot: &slot, BlobsDB: true}).StoreBytes()
	require.NoError(t, err)
	assert.DeepEqual(t, []byte{5, 0, 0, 0, 1, 1, 0, 0, 0, 42, 0, 0, 0, 0, 0, 0, 0}, enc)
}

func TestStoreItem_MalformedRecords(t *testing.T) {
	cases := []struct {
		name string
		item StoreItem
		enc  []byte
	}{
		{"schema version short", new(SchemaVersion), []byte{0x01}},
		{"schema version long", new(SchemaVersion), make([]byte, 9)},
		{"pruning checkpoint legacy length", &PruningCheckpoint{}, make([]byte, 8)},
		{"compaction timestamp empty", new(CompactionTimestamp), []byte{}},
		{"anchor info truncated", &AnchorInfo{}, make([]byte, 63)},
		{"blob info truncated", &BlobInfo{}, make([]byte, 8)},
		{"blob info bad offset", &BlobInfo{}, []byte{6, 0, 0, 0, 1, 0, 0, 0, 0}},
		{"blob info bad flag", &BlobInfo{}, []byte{5, 0, 0, 0, 2, 0, 0, 0, 0}},
		{"blob info none selector with slot bytes", &BlobInfo{}, []byte{5, 0, 0, 0, 1, 0, 0, 0, 0, 42, 0, 0, 0, 0, 0, 0, 0}},
		{"blob info some selector without slot bytes", &BlobInfo{}, []byte{5, 0, 0, 0, 1, 1, 0, 0, 0}},
		{"blob info garbage selector", &BlobInfo{}, []byte{5, 0, 0, 0, 1, 9, 0, 0, 0}},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.LoadStoreBytes(tt.enc)
			require.Equal(t, true, errors.Is(err, errMalformedRecord), "unexpected error: %v", err)
		})
	}
}
