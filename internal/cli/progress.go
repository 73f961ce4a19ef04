package cli

import (
	"fmt"
	"io"
	"time"

	"ctconn/internal/flow"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ProgressReporter renders flow progress on a terminal: a spinner while a
// candidate is checked, a check mark when it is accepted and a short reason
// when it is rejected. Quiet mode keeps only the rejections.
type ProgressReporter struct {
	out     io.Writer
	quiet   bool
	spinner *spinner.Spinner
}

// NewProgressReporter creates a reporter writing to out.
func NewProgressReporter(out io.Writer, quiet bool) *ProgressReporter {
	return &ProgressReporter{out: out, quiet: quiet}
}

// Checking implements flow.Reporter.
func (p *ProgressReporter) Checking(field flow.Field, candidate string) {
	if p.quiet {
		return
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(p.out))
	s.Suffix = " " + checkingMessage(field, candidate)
	s.Start()
	p.spinner = s
}

// Checked implements flow.Reporter.
func (p *ProgressReporter) Checked(field flow.Field, accepted bool) {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
	if accepted && !p.quiet {
		fmt.Fprintln(p.out, FormatSuccess(acceptedMessage(field)))
	}
}

// Rejected implements flow.Reporter.
func (p *ProgressReporter) Rejected(_ flow.Field, err error, remaining int) {
	msg := text.FgRed.Sprint("✗ ") + Explain(err)
	if remaining > 0 {
		msg += text.FgHiBlack.Sprintf(" (%d %s left)", remaining, pluralize(remaining, "attempt", "attempts"))
	}
	fmt.Fprintln(p.out, msg)
}

func checkingMessage(field flow.Field, candidate string) string {
	switch field {
	case flow.FieldHost:
		return fmt.Sprintf("Checking that https://%s/ is reachable...", candidate)
	case flow.FieldAccount:
		return fmt.Sprintf("Checking that %s can receive mail...", candidate)
	default:
		return "Signing in..."
	}
}

func acceptedMessage(field flow.Field) string {
	switch field {
	case flow.FieldHost:
		return "Host is reachable"
	case flow.FieldAccount:
		return "Account looks deliverable"
	default:
		return "Signed in"
	}
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
