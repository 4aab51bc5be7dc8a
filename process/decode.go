package process

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// decode converts child output to a string, replacing ill-formed UTF-8
// sequences with U+FFFD.
func decode(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out, _, err := transform.Bytes(runes.ReplaceIllFormed(), b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}
