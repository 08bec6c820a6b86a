package utils

import (
	"regexp"
	"strings"
)

var (
	fontFacePattern   = regexp.MustCompile(`@font-face\s*\{[^}]+\}`)
	fontURLPattern    = regexp.MustCompile(`url\((?:"((?:https?:)?//[^)"]+)"|'((?:https?:)?//[^)']+)')\)`)
	foregroundPattern = regexp.MustCompile(`--color-foreground:\s*([^;]+);`)
)

// FirstFontURL returns the first url() inside the first @font-face block.
// Later declarations are ignored; the first block stands for the theme font.
func FirstFontURL(css string) string {
	block := fontFacePattern.FindString(css)
	if block == "" {
		return ""
	}

	match := fontURLPattern.FindStringSubmatch(block)
	if match == nil {
		return ""
	}

	target := match[1]
	if target == "" {
		target = match[2]
	}
	return StripProtocolRelative(target)
}

// ForegroundColors returns every --color-foreground value in declaration order
func ForegroundColors(css string) []string {
	colors := []string{}
	for _, m := range foregroundPattern.FindAllStringSubmatch(css, -1) {
		colors = append(colors, strings.TrimSpace(m[1]))
	}
	return colors
}
