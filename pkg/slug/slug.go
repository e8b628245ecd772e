package slug

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters that carry no combining mark under NFD and need an explicit ASCII form.
var foldTable = map[rune]string{
	'ß': "s",
	'ł': "l", 'Ł': "L",
	'đ': "d", 'Đ': "D",
	'ø': "o", 'Ø': "O",
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
	'þ': "th", 'Þ': "TH",
	'ı': "i",
}

// Make converts s to a slug.
func Make(s string, opts ...Option) string {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.stripTags {
		s = stripMarkup(s)
	}
	if o.stripChars != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(o.stripChars, r) {
				return -1
			}
			return r
		}, s)
	}
	if len(o.replace) > 0 {
		s = applyReplacements(s, o.replace)
	}

	s = fold(s)

	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if !isASCIIAlnum(r) {
			pending = true
			continue
		}
		if pending && b.Len() > 0 {
			b.WriteString(o.separator)
		}
		pending = false
		if o.lowercase {
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}

	out := b.String()
	if o.maxLength > 0 && len(out) > o.maxLength {
		out = out[:o.maxLength]
		if o.separator != "" {
			out = strings.TrimRight(out, o.separator)
		}
	}
	return out
}

func applyReplacements(s string, replace map[string]string) string {
	keys := make([]string, 0, len(replace))
	for k := range replace {
		if k != "" {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		// Padding keeps replacement words apart from their neighbours.
		pairs = append(pairs, k, " "+replace[k]+" ")
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// fold strips diacritics: NFD splits "é" into "e" + U+0301, the mark is dropped.
func fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := foldTable[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, b.String())
	if err != nil {
		return b.String()
	}
	return out
}

func isASCIIAlnum(r rune) bool {
	return r < unicode.MaxASCII && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
}
