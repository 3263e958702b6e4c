package wikitext

import (
	"regexp"
	"strings"
)

var redirectRE = regexp.MustCompile(`(?i)^\s*#(?:redirect|redirection)\s*:?\s*\[\[([^\]|#]*)`)

// Redirect returns the target of a redirect page.
func Redirect(code string) (string, bool) {
	m := redirectRE.FindStringSubmatch(code)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
