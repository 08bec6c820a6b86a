package utils

import (
	"regexp"
	"strings"
)

var (
	markupPattern     = regexp.MustCompile(`<[^>]+>|\n|\r`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// ToPlainText replaces tags and line breaks with spaces and collapses whitespace
func ToPlainText(html string) string {
	text := markupPattern.ReplaceAllString(html, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// StripProtocolRelative removes a leading "//" from protocol-relative URLs
func StripProtocolRelative(src string) string {
	return strings.TrimPrefix(src, "//")
}
