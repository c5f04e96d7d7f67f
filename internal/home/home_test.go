package home

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShortLong(t *testing.T) {
	t.Parallel()

	dir := Dir()
	if dir == "" {
		t.Skip("no home directory")
	}
	full := filepath.Join(dir, ".recycle", "logs")
	short := Short(full)
	require.Equal(t, filepath.Join("~", ".recycle", "logs"), short)
	require.Equal(t, full, Long(short))

	require.Equal(t, "/elsewhere/x", Short("/elsewhere/x"))
	require.Equal(t, "relative", Long("relative"))
}
