// Package l10n renders displayable messages and day-dependent page titles in the language of
// the wiki.
package l10n

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go.trai.ch/zerr"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"go.trai.ch/mirror/internal/core/domain"
)

var supported = []language.Tag{language.French, language.English}

var months = map[string][12]string{
	"fr": {
		"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	},
	"en": {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

// Localizer renders messages and dates for one language.
type Localizer struct {
	lang    string
	printer *message.Printer
}

// New returns a Localizer for lang ("fr" or "en"). An empty lang selects French.
func New(lang string) (*Localizer, error) {
	if lang == "" {
		lang = "fr"
	}
	requested, err := language.Parse(lang)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedLanguage, err.Error()), "language", lang)
	}
	tag, _, confidence := language.NewMatcher(supported).Match(requested)
	if confidence < language.High {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedLanguage, "no catalog for language"), "language", lang)
	}
	base, _ := tag.Base()

	cat, err := newCatalog()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build message catalog")
	}
	return &Localizer{
		lang:    base.String(),
		printer: message.NewPrinter(language.Make(base.String()), message.Catalog(cat)),
	}, nil
}

// Language returns the base language of the localizer, "fr" or "en".
func (l *Localizer) Language() string {
	return l.lang
}

// Sprintf formats the translation of key.
func (l *Localizer) Sprintf(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Message renders a domain message.
func (l *Localizer) Message(m domain.Message) string {
	return l.printer.Sprintf(m.Key, m.Args...)
}

// Messages renders every message of a reportable error, joined with ", ".
func (l *Localizer) Messages(err domain.Reportable) string {
	msgs := err.Messages()
	parts := make([]string, len(msgs))
	for i, m := range msgs {
		parts[i] = l.Message(m)
	}
	return strings.Join(parts, ", ")
}

// FormatDate renders pattern for day. Placeholders: {day} (1), {dayOrdinal} (1er / 1st),
// {dd} (01), {month} (janvier), {Month} (Janvier) and {year} (2001).
func (l *Localizer) FormatDate(pattern string, day time.Time) string {
	month := months[l.lang][day.Month()-1]
	r := strings.NewReplacer(
		"{dayOrdinal}", l.ordinal(day.Day()),
		"{day}", strconv.Itoa(day.Day()),
		"{dd}", twoDigits(day.Day()),
		"{month}", month,
		"{Month}", upperFirst(month),
		"{year}", strconv.Itoa(day.Year()),
	)
	return r.Replace(pattern)
}

// LongDate renders day the way it is written in a sentence.
func (l *Localizer) LongDate(day time.Time) string {
	if l.lang == "en" {
		return l.FormatDate("{Month} {day}, {year}", day)
	}
	return l.FormatDate("{dayOrdinal} {month} {year}", day)
}

func (l *Localizer) ordinal(n int) string {
	if l.lang == "en" {
		suffix := "th"
		switch {
		case n%100 >= 11 && n%100 <= 13:
		case n%10 == 1:
			suffix = "st"
		case n%10 == 2:
			suffix = "nd"
		case n%10 == 3:
			suffix = "rd"
		}
		return strconv.Itoa(n) + suffix
	}
	if n == 1 {
		return "1er"
	}
	return strconv.Itoa(n)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
