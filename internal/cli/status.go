package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Status is what `ctconn status` reports about the local setup.
type Status struct {
	ConfigPath  string
	Retries     int
	Persistence string
	RecordFile  string

	// RecordHost and RecordAccount come from the stored record, if any.
	RecordHost    string
	RecordAccount string
	// HasSecret reports whether the record holds a secret.
	HasSecret bool
	// RecordErr is set when the record could not be read.
	RecordErr error

	// Reachable is nil when no host was probed.
	Reachable *bool
}

// RenderStatus writes s as a table to w.
func RenderStatus(w io.Writer, s Status) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("SETTING"),
		text.FgHiCyan.Sprint("VALUE"),
	})

	retries := fmt.Sprintf("%d per field", s.Retries)
	if s.Retries == 0 {
		retries = "unbounded"
	}

	t.AppendRows([]table.Row{
		{"Config", s.ConfigPath},
		{"Retries", retries},
		{"Persistence", s.Persistence},
	})

	if s.Persistence == "off" {
		t.Render()
		return
	}

	t.AppendRow(table.Row{"Record file", s.RecordFile})
	switch {
	case s.RecordErr != nil:
		t.AppendRow(table.Row{"Record", text.FgRed.Sprint(s.RecordErr.Error())})
	case s.RecordHost == "":
		t.AppendRow(table.Row{"Record", text.FgHiBlack.Sprint("none")})
	default:
		t.AppendRow(table.Row{"Host", s.RecordHost})
		if s.RecordAccount != "" {
			t.AppendRow(table.Row{"Account", s.RecordAccount})
		}
		if s.HasSecret {
			t.AppendRow(table.Row{"Secret", text.FgYellow.Sprint("stored in plain text")})
		}
	}

	if s.Reachable != nil {
		reach := text.FgGreen.Sprint("reachable")
		if !*s.Reachable {
			reach = text.FgRed.Sprint("unreachable")
		}
		t.AppendRow(table.Row{"Host status", reach})
	}

	t.Render()
}
