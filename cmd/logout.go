package cmd

import (
	"ctconn/internal/cli"
	"ctconn/internal/config"
	"ctconn/internal/record"

	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Delete the stored credential record",
		Long: `Delete the record file so that the next login asks for every value again.
Running logout when there is no record is not an error.`,
		Args: cobra.NoArgs,
		RunE: runLogout,
	}
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store := newRecordStore(cfg)
	if err := store.Delete(); err != nil {
		return err
	}
	printIfNotQuiet(cmd, "%s", cli.FormatSuccess("Removed "+store.Path()))
	return nil
}

// newRecordStore opens the record file cfg points at. Delete works
// regardless of the persistence mode.
func newRecordStore(cfg config.Config) *record.Store {
	return record.NewStore(cfg.RecordFile, cfg.Persistence)
}
