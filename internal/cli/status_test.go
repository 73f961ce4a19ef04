package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
)

func TestRenderStatus(t *testing.T) {
	reachable := false
	tests := []struct {
		name     string
		status   Status
		contains []string
		absent   []string
	}{
		{
			name:     "persistence off",
			status:   Status{ConfigPath: "/home/u/.config/ctconn", Retries: 3, Persistence: "off"},
			contains: []string{"SETTING", "/home/u/.config/ctconn", "3 per field", "off"},
			absent:   []string{"Record file"},
		},
		{
			name: "host record",
			status: Status{
				ConfigPath: "/c", Retries: 0, Persistence: "host",
				RecordFile: "/c/credentials.yaml", RecordHost: "a.church.tools",
				Reachable: &reachable,
			},
			contains: []string{"unbounded", "/c/credentials.yaml", "a.church.tools", "unreachable"},
			absent:   []string{"Secret"},
		},
		{
			name: "full record",
			status: Status{
				ConfigPath: "/c", Retries: 3, Persistence: "full",
				RecordFile: "/c/credentials.yaml", RecordHost: "a.church.tools",
				RecordAccount: "user@example.com", HasSecret: true,
			},
			contains: []string{"user@example.com", "stored in plain text"},
		},
		{
			name: "no record",
			status: Status{
				ConfigPath: "/c", Retries: 3, Persistence: "host", RecordFile: "/c/credentials.yaml",
			},
			contains: []string{"none"},
		},
		{
			name: "broken record",
			status: Status{
				ConfigPath: "/c", Retries: 3, Persistence: "host", RecordFile: "/c/credentials.yaml",
				RecordErr: errors.New("parsing failed"),
			},
			contains: []string{"parsing failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			RenderStatus(&buf, tt.status)
			out := buf.String()
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tt.absent {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}

func TestRenderStatus_Style(t *testing.T) {
	var buf bytes.Buffer
	RenderStatus(&buf, Status{Persistence: "off"})
	assert.True(t, strings.HasPrefix(buf.String(), table.StyleRounded.Box.TopLeft))
}
