// Package wikitext implements the few pieces of wikicode parsing the mirror needs: bot sections,
// include tags, template calls, stylesheet references and redirects.
package wikitext

import (
	"slices"
	"strings"
)

const (
	// BeginMarker opens the bot section of a page.
	BeginMarker = "<!-- BEGIN BOT SECTION -->"
	// EndMarker closes the bot section of a page.
	EndMarker = "<!-- END BOT SECTION -->"

	commentOpen  = "<!--"
	commentClose = "-->"
)

// SectionFlag alters the behavior of ReplaceBotSection.
type SectionFlag int

const (
	// MustExist makes ReplaceBotSection fail when the page has no begin marker instead of
	// appending a new bot section.
	MustExist SectionFlag = 1 << iota
	// Compact inserts the new content without surrounding newlines.
	Compact
)

var (
	beginComments = []string{"BEGIN BOT SECTION", "DÉBUT DE LA ZONE DE TRAVAIL DU BOT"}
	endComments   = []string{"END BOT SECTION", "FIN DE LA ZONE DE TRAVAIL DU BOT"}
)

type comment struct {
	start, end int
	text       string
}

// nextComment returns the first comment at or after pos and the position to resume from.
// When several "<!--" precede the first "-->", the comment starts at the last of them.
func nextComment(code string, pos int) (comment, int, bool) {
	start := indexFrom(code, commentOpen, pos)
	for start >= 0 {
		textStart := start + len(commentOpen)
		next := indexFrom(code, commentOpen, textStart)
		limit := len(code)
		if next >= 0 {
			limit = next
		}
		if rel := strings.Index(code[textStart:limit], commentClose); rel >= 0 {
			textEnd := textStart + rel
			return comment{
				start: start,
				end:   textEnd + len(commentClose),
				text:  strings.ToUpper(strings.TrimSpace(code[textStart:textEnd])),
			}, next, true
		}
		start = next
	}
	return comment{}, -1, false
}

func indexFrom(s, substr string, pos int) int {
	if pos < 0 || pos > len(s) {
		return -1
	}
	i := strings.Index(s[pos:], substr)
	if i < 0 {
		return -1
	}
	return pos + i
}

// boundaries returns the offsets of the bot section content. start is -1 without a begin
// marker; end is -1 when the section is not closed.
func boundaries(code string) (start, end int) {
	start, end = -1, -1
	pos := 0
	for {
		c, next, ok := nextComment(code, pos)
		if !ok {
			return start, end
		}
		pos = next
		if slices.Contains(beginComments, c.text) {
			start = c.end
			break
		}
	}
	for {
		c, next, ok := nextComment(code, pos)
		if !ok {
			return start, end
		}
		pos = next
		if slices.Contains(endComments, c.text) {
			end = c.start
		}
	}
}

// HasBotSection reports whether code contains a begin marker.
func HasBotSection(code string) bool {
	start, _ := boundaries(code)
	return start >= 0
}

// ReadBotSection returns the content of the bot section of code. An unclosed section extends
// to the end of the page. A newline right after the begin marker is not part of the content.
func ReadBotSection(code string) (string, bool) {
	start, end := boundaries(code)
	if start < 0 {
		return "", false
	}
	if end < 0 {
		end = len(code)
	}
	return strings.TrimPrefix(code[start:end], "\n"), true
}

// ReplaceBotSection replaces the content of the bot section of code with section. Without a
// begin marker, a new section is appended unless MustExist is set, in which case ok is false.
// A missing end marker is restored.
func ReplaceBotSection(code, section string, flags SectionFlag) (string, bool) {
	start, end := boundaries(code)
	if start < 0 && flags&MustExist != 0 {
		return code, false
	}

	after := EndMarker
	if end >= 0 {
		after = code[end:]
	}

	var b strings.Builder
	b.Grow(len(code) + len(section) + len(BeginMarker) + len(EndMarker) + 3)
	if start >= 0 {
		b.WriteString(code[:start])
	} else {
		b.WriteString(code)
		if code != "" && !strings.HasSuffix(code, "\n") {
			b.WriteByte('\n')
		}
		b.WriteString(BeginMarker)
	}
	if flags&Compact == 0 {
		b.WriteByte('\n')
	}
	b.WriteString(section)
	if flags&Compact == 0 && section != "" && !strings.HasSuffix(section, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(after)
	return b.String(), true
}
