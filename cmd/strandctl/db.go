package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/strandlabs/strand/beacon-chain/db/kv"
	"github.com/urfave/cli/v2"
)

var datadirFlag = &cli.StringFlag{
	Name:  "datadir",
	Usage: "Directory holding the metadata database",
	Value: ".",
}

var dbCommands = &cli.Command{
	Name:  "db",
	Usage: "Inspect and maintain the metadata database",
	Subcommands: []*cli.Command{
		{
			Name:   "inspect",
			Usage:  "Print every metadata record in the database",
			Flags:  []cli.Flag{datadirFlag},
			Action: inspectAction,
		},
		{
			Name:   "migrate",
			Usage:  "Open the database, migrating its schema forward where needed",
			Flags:  []cli.Flag{datadirFlag},
			Action: migrateAction,
		},
		{
			Name:   "backup",
			Usage:  "Write a hot backup of the database to the backups directory",
			Flags:  []cli.Flag{datadirFlag},
			Action: backupAction,
		},
	},
}

func inspectAction(cliCtx *cli.Context) error {
	store, err := kv.NewKVStore(cliCtx.Context, cliCtx.String(datadirFlag.Name))
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Error("Could not close database")
		}
	}()

	ctx := cliCtx.Context
	version, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("schema version: %d\n", uint64(version))

	checkpoint, err := store.PruningCheckpoint(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("pruning checkpoint: epoch=%d root=%s\n", checkpoint.Epoch, hexutil.Encode(checkpoint.Root))

	timestamp, err := store.CompactionTimestamp(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("compaction timestamp: %d\n", timestamp)

	anchor, err := store.AnchorInfo(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("anchor info: anchor_slot=%d oldest_block_slot=%d oldest_block_parent=%s state_upper_limit=%d state_lower_limit=%d\n",
		anchor.AnchorSlot, anchor.OldestBlockSlot, hexutil.Encode(anchor.OldestBlockParent[:]),
		anchor.StateUpperLimit, anchor.StateLowerLimit)

	blob, err := store.BlobInfo(ctx)
	if err != nil {
		return err
	}
	if blob.OldestBlobSlot != nil {
		fmt.Printf("blob info: oldest_blob_slot=%d\n", *blob.OldestBlobSlot)
	} else {
		fmt.Println("blob info: oldest_blob_slot=unknown")
	}
	return nil
}

func migrateAction(cliCtx *cli.Context) error {
	// Opening the store runs the schema check and any pending migrations.
	store, err := kv.NewKVStore(cliCtx.Context, cliCtx.String(datadirFlag.Name))
	if err != nil {
		return err
	}
	version, err := store.SchemaVersion(cliCtx.Context)
	if err != nil {
		return err
	}
	log.WithField("version", uint64(version)).Info("Database schema is current")
	return store.Close()
}

func backupAction(cliCtx *cli.Context) error {
	store, err := kv.NewKVStore(cliCtx.Context, cliCtx.String(datadirFlag.Name))
	if err != nil {
		return err
	}
	if err := store.Backup(cliCtx.Context); err != nil {
		if closeErr := store.Close(); closeErr != nil {
			log.WithError(closeErr).Error("Could not close database")
		}
		return err
	}
	return store.Close()
}
