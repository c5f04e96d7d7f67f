package stringext

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var separators = strings.NewReplacer("-", " ", "_", " ")

func Capitalize(text string) string {
	return cases.Title(language.English, cases.Compact).String(text)
}

// Humanize turns an identifier such as "grid-vertical" into "Grid Vertical".
func Humanize(ident string) string {
	return Capitalize(separators.Replace(ident))
}
