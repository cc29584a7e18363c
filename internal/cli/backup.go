package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablasso/planbook/internal/backup"
	"github.com/pablasso/planbook/internal/config"
)

// backupStore is what push and pull need from the S3 client.
type backupStore interface {
	Push(ctx context.Context, data []byte) error
	Pull(ctx context.Context) ([]byte, error)
	Location() string
}

// openBackup is swapped out in tests.
var openBackup = func(ctx context.Context, cfg config.BackupConfig) (backupStore, error) {
	return backup.New(ctx, cfg)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Push or pull an export to S3",
	Long:  "Stores an export snapshot in the S3 bucket named by backup.s3_bucket, or merges one back in.",
}

var backupPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload an export of every plan",
	Args:  cobra.NoArgs,
	RunE:  runBackupPush,
}

var backupPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the backup and merge it like an import",
	Args:  cobra.NoArgs,
	RunE:  runBackupPull,
}

func init() {
	backupCmd.AddCommand(backupPushCmd, backupPullCmd)
}

func runBackupPush(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withPlanner(ctx, func(e *env) error {
		store, err := openBackup(ctx, e.cfg.Backup)
		if err != nil {
			return err
		}
		data, err := e.planner.ExportSnapshot()
		if err != nil {
			return err
		}
		if err := store.Push(ctx, data); err != nil {
			return err
		}
		e.log.Info("pushed backup", "location", store.Location(), "plans", e.planner.Len())
		fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d plan(s) to %s\n", e.planner.Len(), store.Location())
		return nil
	})
}

func runBackupPull(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withPlanner(ctx, func(e *env) error {
		store, err := openBackup(ctx, e.cfg.Backup)
		if err != nil {
			return err
		}
		data, err := store.Pull(ctx)
		if err != nil {
			return err
		}
		added, err := e.planner.ImportPayload(ctx, data)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d plan(s) from %s.\n", added, store.Location())
		return nil
	})
}
