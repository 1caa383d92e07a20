package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rivo/uniseg"
)

// stripPolicy removes every HTML element; user text is stored as plain text
var stripPolicy = bluemonday.StrictPolicy()

// maxSanitizePasses bounds the decode/strip loop for nested entity encodings
const maxSanitizePasses = 8

// SanitizeText strips markup from user-supplied text and trims surrounding whitespace.
// Entities are decoded before stripping so encoded markup is removed too, and the
// entities bluemonday emits are decoded again afterwards. This repeats until the
// text no longer changes.
func SanitizeText(s string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(stripPolicy.Sanitize(html.UnescapeString(s)))
		if next == s {
			return strings.TrimSpace(s)
		}
		s = next
	}
	// Still changing: keep the escaped form rather than risk live markup
	return strings.TrimSpace(stripPolicy.Sanitize(s))
}

// GraphemeLen returns the number of user-perceived characters in s
func GraphemeLen(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
