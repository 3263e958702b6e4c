package wikitext

import "strings"

type tagName int

const (
	tagIncludeOnly tagName = iota
	tagNoInclude
	tagOnlyInclude
	tagNowiki
	tagPre
	tagComment
	tagCount
)

type tagKind int

const (
	tagOpening tagKind = iota
	tagClosing
	tagSelfClosing
)

type tag struct {
	name tagName
	kind tagKind
}

var tagNames = map[string]tagName{
	"includeonly": tagIncludeOnly,
	"noinclude":   tagNoInclude,
	"onlyinclude": tagOnlyInclude,
	"nowiki":      tagNowiki,
	"pre":         tagPre,
}

// findTag returns the next include, raw-text or comment tag at or after pos.
func findTag(code string, pos int) (begin, end int, t tag, ok bool) {
	for {
		begin = indexFrom(code, "<", pos)
		if begin < 0 {
			return -1, -1, tag{}, false
		}
		if strings.HasPrefix(code[begin:], commentOpen) {
			return begin, begin + len(commentOpen), tag{name: tagComment, kind: tagOpening}, true
		}
		rel := strings.IndexAny(code[begin+1:], "<>\n")
		if rel < 0 {
			return -1, -1, tag{}, false
		}
		last := begin + 1 + rel
		if code[last] != '>' {
			pos = last
			continue
		}
		end = last + 1
		kind := tagOpening
		switch {
		case code[begin+1] == '/':
			kind = tagClosing
		case code[last-1] == '/':
			kind = tagSelfClosing
		}
		nameStart := begin + 1
		if kind == tagClosing {
			nameStart++
		}
		nameEnd := nameStart + strings.IndexAny(code[nameStart:], " />")
		if name, found := tagNames[strings.ToLower(code[nameStart:nameEnd])]; found {
			return begin, end, tag{name: name, kind: kind}, true
		}
		pos = end
	}
}

// enumIncludeTags calls fn for every include tag and every run of text between them. Tags inside
// comments, <nowiki> and <pre> are treated as text.
func enumIncludeTags(code string, fn func(token string, t *tag)) {
	var ignoreOpening [tagCount]bool
	inRaw := false
	var rawName tagName
	rawEnd := 0
	tokenStart := 0

	pos := 0
	for {
		begin, end, t, ok := findTag(code, pos)
		if !ok && !inRaw {
			break
		}
		switch {
		case inRaw:
			if !ok {
				// An unclosed raw-text tag does not protect anything.
				ignoreOpening[rawName] = true
				end = rawEnd
				inRaw = false
			} else if t.name == rawName && t.kind == tagClosing {
				inRaw = false
			}
		case t.name == tagIncludeOnly || t.name == tagNoInclude || t.name == tagOnlyInclude:
			if tokenStart < begin {
				fn(code[tokenStart:begin], nil)
			}
			fn(code[begin:end], &t)
			tokenStart = end
		case t.name == tagComment:
			if closeAt := indexFrom(code, commentClose, end); closeAt >= 0 {
				end = closeAt
			} else {
				end = len(code)
			}
		case t.kind == tagOpening && !ignoreOpening[t.name]:
			inRaw = true
			rawName = t.name
			rawEnd = end
		}
		pos = end
	}
	if tokenStart < len(code) {
		fn(code[tokenStart:], nil)
	}
}

// parseIncludeTags computes the code as rendered on its own page and as transcluded.
func parseIncludeTags(code string) (page, transcluded string) {
	var open [tagCount]bool
	withOnlyInclude := false
	var pageB, transB strings.Builder

	enumIncludeTags(code, func(token string, t *tag) {
		asText := t == nil
		if t != nil {
			switch t.kind {
			case tagOpening:
				open[t.name] = true
				if t.name == tagOnlyInclude && !withOnlyInclude {
					transB.Reset()
					withOnlyInclude = true
				}
			case tagClosing:
				if open[t.name] {
					open[t.name] = false
				} else {
					asText = true
				}
			}
		}
		if !asText {
			return
		}
		if !open[tagIncludeOnly] {
			pageB.WriteString(token)
		}
		if !open[tagNoInclude] && (!withOnlyInclude || open[tagOnlyInclude]) {
			transB.WriteString(token)
		}
	})
	return pageB.String(), transB.String()
}

// Transclude returns code as it appears when transcluded: <noinclude> regions are removed,
// <includeonly> tags are dropped but their content kept, and <onlyinclude> regions, when
// present, are the only content kept.
func Transclude(code string) string {
	_, transcluded := parseIncludeTags(code)
	return transcluded
}

// StripIncludeOnly returns code as it appears on its own page, without <includeonly> regions.
func StripIncludeOnly(code string) string {
	page, _ := parseIncludeTags(code)
	return page
}
