package cmd

import (
	"net/http"

	"ctconn/internal/cli"
	"ctconn/internal/validate"

	"github.com/spf13/cobra"
)

var statusProbe bool

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the configuration and the stored record",
		Long: `Show the effective configuration and, when persistence is enabled,
what the record file holds. The stored secret itself is never printed.

With --probe the stored host is checked for reachability over HTTPS.`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}
	cmd.Flags().BoolVar(&statusProbe, "probe", false, "Check whether the stored host is reachable")
	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := cli.Status{
		ConfigPath:  configPath,
		Retries:     cfg.Retries,
		Persistence: string(cfg.Persistence),
		RecordFile:  cfg.RecordFile,
	}

	rec, err := newRecordStore(cfg).Load()
	switch {
	case err != nil:
		st.RecordErr = err
	case rec != nil:
		st.RecordHost = rec.Host
		st.RecordAccount = rec.Account
		st.HasSecret = rec.Secret != nil && rec.Secret.Len() > 0
		rec.Release()
	}

	if statusProbe && st.RecordHost != "" {
		prober := validate.NewHTTPProber(&http.Client{Timeout: cfg.HTTPTimeout, Transport: httpTransport})
		reachable := prober.Reachable(cmd.Context(), st.RecordHost)
		st.Reachable = &reachable
	}

	cli.RenderStatus(cmd.OutOrStdout(), st)
	return nil
}
