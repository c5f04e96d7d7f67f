package filepathext

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/recycle/internal/home"
)

// Resolve expands a leading ~ in path and anchors relative results at base.
func Resolve(base, path string) string {
	if path == "" {
		return base
	}
	return SmartJoin(base, home.Long(path))
}

// SmartJoin joins two paths, treating the second path as absolute if it is an
// absolute path.
func SmartJoin(one, two string) string {
	if SmartIsAbs(two) {
		return two
	}
	return filepath.Join(one, two)
}

// SmartIsAbs checks if a path is absolute, considering both OS-specific and
// Unix-style paths.
func SmartIsAbs(path string) bool {
	switch runtime.GOOS {
	case "windows":
		return filepath.IsAbs(path) || strings.HasPrefix(filepath.ToSlash(path), "/")
	default:
		return filepath.IsAbs(path)
	}
}
