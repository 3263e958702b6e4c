package wikitext

import (
	"regexp"
	"slices"

	"go.trai.ch/mirror/internal/core/domain"
)

var (
	templateStylesRE = regexp.MustCompile(`(?i)<templatestyles\b[^>]*>`)
	styleSourceRE    = regexp.MustCompile(`(?i)\ssrc\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

// Stylesheets returns the pages referenced by <templatestyles src="..."> tags in code,
// normalized into the template namespace, sorted and deduplicated. Tags inside comments are
// ignored.
func Stylesheets(code string, ns domain.Namespaces) []string {
	var titles []string
	for _, tag := range templateStylesRE.FindAllString(StripComments(code), -1) {
		m := styleSourceRE.FindStringSubmatch(tag)
		if m == nil {
			continue
		}
		src := m[1]
		if src == "" {
			src = m[2]
		}
		if src == "" {
			continue
		}
		titles = append(titles, ns.TemplateTitle(src))
	}
	slices.Sort(titles)
	return slices.Compact(titles)
}
