package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ctconn/internal/cli"
	"ctconn/internal/config"
	"ctconn/internal/flow"
	"ctconn/internal/record"
	"ctconn/internal/session"
	"ctconn/internal/validate"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

var (
	loginRetries       int
	loginPersist       string
	loginRecordFile    string
	loginStrictStatus  bool
	loginVerifySMTP    bool
	loginTimeout       time.Duration
	loginHost          string
	loginAccount       string
	loginPasswordStdin bool
)

// httpTransport is used by the liveness probe and the login request.
// Nil selects http.DefaultTransport.
var httpTransport http.RoundTripper

// openSource returns where interactive answers are read from, together with
// the function that releases it.
var openSource = func(cmd *cobra.Command) (flow.Source, func(), error) {
	if cli.IsTerminal() {
		src, err := cli.NewTerminalSource()
		if err != nil {
			return nil, nil, err
		}
		return src, func() { _ = src.Close() }, nil
	}
	return flow.NewReaderSource(cmd.InOrStdin(), cmd.OutOrStdout()), func() {}, nil
}

// newValidator builds the checks run on the host and account candidates.
var newValidator = func(cfg config.Config) flow.Validator {
	return validate.New(
		validate.NewHTTPProber(&http.Client{Timeout: cfg.HTTPTimeout, Transport: httpTransport}),
		validate.NewEmailVerifier(cfg.VerifySMTP),
	)
}

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to a ChurchTools site",
		Long: heredoc.Doc(`
			Ask for the host, the email address and the password and sign in.

			The host must answer over HTTPS and the address must be able to
			receive mail before the password is asked for. A rejected value is
			asked for again until --retries attempts are used up; a failed
			sign-in only asks for the password again.

			With --password-stdin the password is read from standard input and
			--host and --account must be given. Nothing is checked up front and
			the sign-in is tried exactly once.`),
		Example: heredoc.Doc(`
			# Answer the questions interactively
			ctconn login

			# Remember the host for the next run
			ctconn login --persist host

			# Non-interactive sign-in, for scripts
			printf '%s\n' "$PASSWORD" | ctconn login --host xxx.church.tools --account me@example.com --password-stdin`),
		Args: cobra.NoArgs,
		RunE: runLogin,
	}

	cmd.Flags().IntVar(&loginRetries, "retries", config.DefaultRetries, "Attempts per value, 0 for unbounded")
	cmd.Flags().StringVar(&loginPersist, "persist", string(record.ModeOff), "What to remember between runs: off, host or full")
	cmd.Flags().StringVar(&loginRecordFile, "record-file", "", "Where the record is kept (default <config-path>/credentials.yaml)")
	cmd.Flags().BoolVar(&loginStrictStatus, "strict-status", false, "Treat non-2xx login responses as a wrong password")
	cmd.Flags().BoolVar(&loginVerifySMTP, "verify-smtp", false, "Ask the account's mail server whether the mailbox exists")
	cmd.Flags().DurationVar(&loginTimeout, "timeout", 0, "Timeout for the reachability check and the login request")
	cmd.Flags().StringVar(&loginHost, "host", "", "Host of the site, for example xxx.church.tools")
	cmd.Flags().StringVar(&loginAccount, "account", "", "Email address of the user (requires --password-stdin)")
	cmd.Flags().BoolVar(&loginPasswordStdin, "password-stdin", false, "Read the password from standard input and sign in once")

	return cmd
}

// applyLoginFlags overrides cfg with the login flags the user actually set.
func applyLoginFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("retries") {
		cfg.Retries = loginRetries
	}
	if flags.Changed("persist") {
		cfg.Persistence = record.Mode(loginPersist)
	}
	if flags.Changed("record-file") {
		cfg.RecordFile = loginRecordFile
	}
	if flags.Changed("strict-status") {
		cfg.StrictStatus = loginStrictStatus
	}
	if flags.Changed("verify-smtp") {
		cfg.VerifySMTP = loginVerifySMTP
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = loginTimeout
	}
	return cfg.Validate()
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyLoginFlags(cmd, &cfg); err != nil {
		return err
	}

	auth := session.NewClient(session.ClientConfig{
		Transport:    httpTransport,
		Timeout:      cfg.HTTPTimeout,
		StrictStatus: cfg.StrictStatus,
	})

	var sess *session.Session
	if loginPasswordStdin {
		sess, err = loginDirect(cmd.Context(), cmd, auth)
	} else {
		sess, err = loginInteractive(cmd.Context(), cmd, cfg, auth)
	}
	if err != nil {
		return err
	}
	defer sess.Close()

	printIfNotQuiet(cmd, "%s", cli.FormatSuccess(fmt.Sprintf("Signed in to %s as %s", sess.Host(), sess.Account())))
	printIfNotQuiet(cmd, "Session: %s", sess.ID)
	return nil
}

func loginDirect(ctx context.Context, cmd *cobra.Command, auth flow.Authenticator) (*session.Session, error) {
	if loginHost == "" || loginAccount == "" {
		return nil, errors.New("--host and --account are required with --password-stdin")
	}

	sec, err := flow.NewReaderSource(cmd.InOrStdin(), nil).ReadSecret("")
	if err != nil {
		return nil, fmt.Errorf("failed to read the password from standard input: %w", err)
	}
	return flow.Direct(ctx, auth, loginHost, loginAccount, sec)
}

func loginInteractive(ctx context.Context, cmd *cobra.Command, cfg config.Config, auth flow.Authenticator) (*session.Session, error) {
	if loginAccount != "" {
		return nil, errors.New("--account can only be used with --password-stdin")
	}

	src, closeSource, err := openSource(cmd)
	if err != nil {
		return nil, err
	}
	defer closeSource()

	if cfg.Persistence == record.ModeFull {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(fmt.Sprintf("The password is stored in plain text in %s", cfg.RecordFile)))
	}

	f := flow.New(src, newValidator(cfg), auth, flow.Options{
		Retries:  cfg.Retries,
		Reporter: cli.NewProgressReporter(cmd.ErrOrStderr(), quiet),
		Store:    newRecordStore(cfg),
	})
	if loginHost != "" {
		f.Prefill(loginHost)
	}
	return f.Acquire(ctx)
}
