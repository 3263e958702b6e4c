package wikitext

import (
	"regexp"
	"strconv"
	"strings"
)

// Param is one argument of a template call. Positional arguments are named "1", "2", ...
type Param struct {
	Name  string
	Value string
}

// Template is a parsed template call.
type Template struct {
	Name   string
	Params []Param
}

// Param returns the trimmed value of the named argument.
func (t Template) Param(name string) (string, bool) {
	for i := len(t.Params) - 1; i >= 0; i-- {
		if t.Params[i].Name == name {
			return t.Params[i].Value, true
		}
	}
	return "", false
}

// ParseTemplates returns every template call of code, nested calls included, in order of
// their opening braces. Comments are ignored.
func ParseTemplates(code string) []Template {
	code = StripComments(code)
	var out []Template
	for i := 0; i+1 < len(code); i++ {
		if code[i] != '{' || code[i+1] != '{' {
			continue
		}
		end := matchBraces(code, i)
		if end < 0 {
			continue
		}
		body := code[i+2 : end]
		if strings.HasPrefix(body, "{") {
			// Template parameter, not a call.
			i += 2
			continue
		}
		if t, ok := parseTemplate(body); ok {
			out = append(out, t)
		}
	}
	return out
}

// matchBraces returns the offset of the "}}" closing the "{{" at start, or -1.
func matchBraces(code string, start int) int {
	depth := 0
	for i := start; i+1 < len(code); i++ {
		switch {
		case code[i] == '{' && code[i+1] == '{':
			depth++
			i++
		case code[i] == '}' && code[i+1] == '}':
			depth--
			if depth == 0 {
				return i
			}
			i++
		}
	}
	return -1
}

func parseTemplate(body string) (Template, bool) {
	parts := splitTopLevel(body)
	name := strings.TrimSpace(parts[0])
	if name == "" || strings.ContainsAny(name, "{}[]<>") {
		return Template{}, false
	}
	t := Template{Name: name}
	position := 0
	for _, part := range parts[1:] {
		if key, value, ok := cutTopLevel(part, '='); ok {
			t.Params = append(t.Params, Param{Name: strings.TrimSpace(key), Value: strings.TrimSpace(value)})
			continue
		}
		position++
		t.Params = append(t.Params, Param{Name: strconv.Itoa(position), Value: part})
	}
	return t, true
}

// splitTopLevel splits s on '|' outside nested templates and links.
func splitTopLevel(s string) []string {
	var parts []string
	depth, last := 0, 0
	for i := 0; i < len(s); i++ {
		switch {
		case i+1 < len(s) && (s[i:i+2] == "{{" || s[i:i+2] == "[["):
			depth++
			i++
		case i+1 < len(s) && (s[i:i+2] == "}}" || s[i:i+2] == "]]"):
			if depth > 0 {
				depth--
			}
			i++
		case s[i] == '|' && depth == 0:
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	return append(parts, s[last:])
}

func cutTopLevel(s string, sep byte) (string, string, bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch {
		case i+1 < len(s) && (s[i:i+2] == "{{" || s[i:i+2] == "[["):
			depth++
			i++
		case i+1 < len(s) && (s[i:i+2] == "}}" || s[i:i+2] == "]]"):
			if depth > 0 {
				depth--
			}
			i++
		case s[i] == sep && depth == 0:
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

var templateNameRE = regexp.MustCompile(`\{\{([^{}|]+)[|}]`)

// TemplateNames returns the raw names of the template calls found in code, deduplicated, in
// order of first appearance. Parser functions and magic words (names containing ':' or '#'
// after trimming) are included; callers normalize and filter them.
func TemplateNames(code string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, m := range templateNameRE.FindAllStringSubmatch(StripComments(code), -1) {
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// StripComments removes HTML comments from code. An unclosed comment extends to the end.
func StripComments(code string) string {
	if !strings.Contains(code, commentOpen) {
		return code
	}
	var b strings.Builder
	b.Grow(len(code))
	for {
		start := strings.Index(code, commentOpen)
		if start < 0 {
			b.WriteString(code)
			return b.String()
		}
		b.WriteString(code[:start])
		end := strings.Index(code[start+len(commentOpen):], commentClose)
		if end < 0 {
			return b.String()
		}
		code = code[start+len(commentOpen)+end+len(commentClose):]
	}
}
