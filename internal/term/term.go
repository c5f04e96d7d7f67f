// Package term inspects the terminal recycle runs in.
package term

import (
	"os"
	"strconv"
	"strings"
)

// SupportsProgressBar tries to determine whether the current terminal supports
// progress bars by looking into environment variables.
func SupportsProgressBar() bool {
	return supportsProgressBar(os.LookupEnv)
}

func supportsProgressBar(lookup func(string) (string, bool)) bool {
	if v, ok := lookup("RECYCLE_NO_PROGRESS"); ok {
		if off, _ := strconv.ParseBool(v); off {
			return false
		}
	}
	termProg, _ := lookup("TERM_PROGRAM")
	_, isWindowsTerminal := lookup("WT_SESSION")

	return isWindowsTerminal || strings.Contains(strings.ToLower(termProg), "ghostty")
}
