package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerPlain(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, false).With("request", "abc")

	log.Debug("hidden")
	log.Error("Error fetching book data", "query", "The Hobbit", "body", "line one\nline two")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "ERR Error fetching book data request=abc query=\"The Hobbit\"\n")
	assert.Contains(t, out, "  | line one\n  | line two\n")
}

func TestHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, false).WithGroup("discord").With("channel", "c1")

	log.Debug("Routing command", "author", "u1")
	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasSuffix(line, "DBG Routing command discord.channel=c1 discord.author=u1"), line)
}

func TestHandlerColor(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo, true).Warn("Discord rate limited")
	assert.Contains(t, buf.String(), ansiYellow+"WRN"+ansiReset)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
