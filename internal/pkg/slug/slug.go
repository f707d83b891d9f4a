// Package slug generates URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	hyphenRunRe  = regexp.MustCompile(`--+`)
)

// Make lower-cases name, strips characters that are not word characters,
// whitespace or hyphens, and collapses whitespace and hyphen runs into
// single hyphens
func Make(name string) string {
	s := strings.ToLower(name)
	s = nonWordRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
