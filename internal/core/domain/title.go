package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultTemplateNamespace is the English name of the template namespace.
const DefaultTemplateNamespace = "Template"

// Namespaces describes the namespaces of the wiki needed to normalize titles.
type Namespaces struct {
	// Template is the local name of the template namespace, e.g. "Modèle".
	Template string
	// Names lists every non-main namespace name, the template namespace included.
	Names []string
}

// NormalizeTitle applies the wiki title rules: NFC, underscores as spaces, collapsed
// whitespace and an upper-case first letter for both the namespace and the page name.
func (n Namespaces) NormalizeTitle(title string) string {
	title = strings.TrimPrefix(cleanTitle(title), ":")
	ns, name, ok := n.split(title)
	if !ok {
		return upperFirst(title)
	}
	return ns + ":" + upperFirst(name)
}

// TemplateTitle normalizes name into the template namespace. A name that already carries a
// known namespace keeps it; a leading colon forces the main namespace.
func (n Namespaces) TemplateTitle(name string) string {
	name = cleanTitle(name)
	if strings.HasPrefix(name, ":") {
		return n.NormalizeTitle(name[1:])
	}
	if _, _, ok := n.split(name); ok {
		return n.NormalizeTitle(name)
	}
	return n.template() + ":" + upperFirst(name)
}

// IsMain reports whether title belongs to the main namespace.
func (n Namespaces) IsMain(title string) bool {
	_, _, ok := n.split(cleanTitle(title))
	return !ok
}

func (n Namespaces) template() string {
	if n.Template == "" {
		return DefaultTemplateNamespace
	}
	return n.Template
}

// split returns the canonical namespace name and the page name when title starts with a
// known namespace prefix.
func (n Namespaces) split(title string) (string, string, bool) {
	prefix, rest, found := strings.Cut(title, ":")
	if !found {
		return "", "", false
	}
	prefix = strings.TrimSpace(prefix)
	candidates := append([]string{n.template()}, n.Names...)
	for _, name := range candidates {
		if strings.EqualFold(name, prefix) {
			return name, strings.TrimSpace(rest), true
		}
	}
	return "", "", false
}

func cleanTitle(title string) string {
	title = norm.NFC.String(title)
	title = strings.ReplaceAll(title, "_", " ")
	return strings.Join(strings.Fields(title), " ")
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
