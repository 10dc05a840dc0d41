// cmd/backups/backups.go

package backups

import (
	"fmt"

	"github.com/ferrytools/mongoferry/pkg/backup"
	"github.com/ferrytools/mongoferry/pkg/environment"
	"github.com/ferrytools/mongoferry/pkg/ferry_cli"
	"github.com/ferrytools/mongoferry/pkg/ferry_io"
	"github.com/spf13/cobra"
)

// BackupsCmd lists backup artifacts under the backup root. Backups are never
// pruned automatically, so this is how operators see what has accumulated.
var BackupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List backup artifacts",
	Long:  `List the backups taken before syncs, newest first. Set BACKUP_DIR to change where they are stored.`,
	RunE:  ferry_cli.Wrap(runBackups),
}

func runBackups(rc *ferry_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	settings, err := environment.LoadSettings()
	if err != nil {
		return err
	}

	manager := backup.NewManager(settings.BackupRoot(), nil)
	artifacts, err := manager.List()
	if err != nil {
		return err
	}

	fmt.Printf("Backup root: %s\n", settings.BackupRoot())
	if len(artifacts) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	for _, artifact := range artifacts {
		fmt.Printf("  %s  %s  %s\n",
			artifact.CreatedAt.Format("2006-01-02 15:04:05 UTC"),
			artifact.Database,
			artifact.Path)
	}
	return nil
}
