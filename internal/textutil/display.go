package textutil

import (
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// DisplayName prepares a file name for the list: NFC-composed (macOS stores
// decomposed names) and sanitized.
func DisplayName(name string) string {
	if !norm.NFC.IsNormalString(name) {
		name = norm.NFC.String(name)
	}
	return SanitizeTerminalText(name)
}

// DisplayWidth reports the number of terminal columns text occupies.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}
