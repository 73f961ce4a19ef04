package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"ctconn/internal/cli"
	"ctconn/internal/config"
	"ctconn/internal/flow"
	"ctconn/internal/record"
	"ctconn/internal/session"
	"ctconn/pkg/logging"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeAuthFailed indicates the login could not be completed: a field ran
	// out of attempts, the service rejected the credentials or was unreachable.
	ExitCodeAuthFailed = 3
	// ExitCodeRecordError indicates the credential record could not be read or written.
	ExitCodeRecordError = 4
	// ExitCodeInterrupted indicates the operator aborted with Ctrl+C.
	ExitCodeInterrupted = 130
)

var (
	configPath string
	logLevel   string
	quiet      bool
)

// rootCmd represents the base command for the ctconn application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ctconn",
	Short: "Sign in to a ChurchTools site from the terminal",
	Long: heredoc.Doc(`
		ctconn asks for the host of a ChurchTools site, the email address of a
		user and that user's password, checks each value and signs in.

		Every value gets a limited number of attempts (3 by default). The host
		must answer over HTTPS and the address must be able to receive mail
		before the password is asked for.

		Optionally the host, or all three values, are remembered in a record
		file so that the next run can skip the questions.`),
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	// Errors are printed by Execute so that they get the same formatting everywhere.
	SilenceErrors: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "ctconn version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	if errors.Is(err, cli.ErrInterrupted) || errors.Is(err, context.Canceled) {
		return ExitCodeInterrupted
	}

	if errors.Is(err, flow.ErrRetriesExhausted) {
		return ExitCodeAuthFailed
	}

	var rejected *session.AuthRejectedError
	if errors.As(err, &rejected) {
		return ExitCodeAuthFailed
	}

	var transport *session.TransportError
	if errors.As(err, &transport) {
		return ExitCodeAuthFailed
	}

	var parseErr *record.ParseError
	if errors.As(err, &parseErr) {
		return ExitCodeRecordError
	}

	var ioErr *record.IOError
	if errors.As(err, &ioErr) {
		return ExitCodeRecordError
	}

	return ExitCodeError
}

// loadConfig reads the configuration file, applies the global flag
// overrides and initializes logging. Every subcommand starts with it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid --log-level: %w", err)
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())
	logging.Debug("CLI", "Loaded configuration from %s", configPath)

	return cfg, nil
}

// printIfNotQuiet prints a line to the command's output unless --quiet is set.
func printIfNotQuiet(cmd *cobra.Command, format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
	}
}

// addGlobalFlags registers the flags shared by every subcommand on c.
func addGlobalFlags(c *cobra.Command, defaultConfigPath string) {
	c.PersistentFlags().StringVar(&configPath, "config-path", defaultConfigPath, "Configuration directory")
	c.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn or error")
	c.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")
}

func init() {
	addGlobalFlags(rootCmd, config.GetDefaultConfigPathOrPanic())

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newLogoutCmd())
}
