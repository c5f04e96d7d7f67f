package cmd

import (
	"strings"
	"testing"
	"time"

	charmlog "github.com/charmbracelet/log/v2"
	"github.com/stretchr/testify/require"
)

func TestLastLines(t *testing.T) {
	t.Parallel()

	in := "a\nb\nc\nd\n"

	got, err := lastLines(strings.NewReader(in), 2)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "d"}, got)

	got, err = lastLines(strings.NewReader(in), 0)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c", "d"}, got)

	got, err = lastLines(strings.NewReader(""), 5)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestParseLogLine(t *testing.T) {
	t.Parallel()

	line := `{"time":"2026-01-02T03:04:05.000000006Z","level":"WARN","source":{"function":"f","file":"engine.go","line":12},"msg":"Engine rebuilt","count":3,"active":9}`
	entry, ok := parseLogLine(line)
	require.True(t, ok)
	require.Equal(t, charmlog.WarnLevel, entry.Level)
	require.Equal(t, "Engine rebuilt", entry.Message)
	require.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC), entry.Time)
	require.Equal(t, []any{"active", 9.0, "count", 3.0, "source", "engine.go:12"}, entry.Fields)

	_, ok = parseLogLine("not json")
	require.False(t, ok)

	entry, ok = parseLogLine(`{"msg":"hi","level":"bogus"}`)
	require.True(t, ok)
	require.Equal(t, charmlog.InfoLevel, entry.Level)
	require.True(t, entry.Time.IsZero())
}
