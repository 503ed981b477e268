// markup.go - Inline <b> and <i> markup in localized strings.
package typeset

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

// variant selects a member of a font family.
type variant uint8

const (
	variantBold variant = 1 << iota
	variantItalic

	variantRegular    variant = 0
	variantBoldItalic         = variantBold | variantItalic
)

func (v variant) String() string {
	switch v {
	case variantBold:
		return "bold"
	case variantItalic:
		return "italic"
	case variantBoldItalic:
		return "bold italic"
	}
	return "regular"
}

// span is a stretch of text drawn in one variant.
type span struct {
	text string
	v    variant
}

// parseMarkup splits text at <b>, <strong>, <i> and <em> tags and their
// closing forms. A self-closing tag such as <i/> closes the style, <br> is a
// line break and entities are decoded. Anything else in angle brackets,
// like "1 < 3", is kept as text.
func parseMarkup(text string) []span {
	var (
		spans        []span
		buf          strings.Builder
		bold, italic int
	)
	current := func() variant {
		var v variant
		if bold > 0 {
			v |= variantBold
		}
		if italic > 0 {
			v |= variantItalic
		}
		return v
	}
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		s := html.UnescapeString(buf.String())
		v := current()
		if n := len(spans); n > 0 && spans[n-1].v == v {
			spans[n-1].text += s
		} else {
			spans = append(spans, span{text: s, v: v})
		}
		buf.Reset()
	}

	for i := 0; i < len(text); {
		if text[i] != '<' {
			j := strings.IndexByte(text[i:], '<')
			if j < 0 {
				j = len(text) - i
			}
			buf.WriteString(text[i : i+j])
			i += j
			continue
		}
		name, closing, n := scanTag(text[i:])
		if n == 0 {
			buf.WriteByte('<')
			i++
			continue
		}
		var counter *int
		switch name {
		case "b", "strong":
			counter = &bold
		case "i", "em":
			counter = &italic
		case "br":
			buf.WriteByte('\n')
			i += n
			continue
		default:
			buf.WriteString(text[i : i+n])
			i += n
			continue
		}
		flush()
		if closing {
			*counter = max(*counter-1, 0)
		} else {
			*counter++
		}
		i += n
	}
	flush()
	return spans
}

// scanTag reads a tag at the start of s. It returns the lowercased tag name,
// whether it closes (</b> or <b/>) and its length, or n == 0 if s does not
// start with a tag.
func scanTag(s string) (name string, closing bool, n int) {
	i := 1
	if i < len(s) && s[i] == '/' {
		closing = true
		i++
	}
	start := i
	for i < len(s) && (s[i] >= 'a' && s[i] <= 'z' || s[i] >= 'A' && s[i] <= 'Z') {
		i++
	}
	if i == start {
		return "", false, 0
	}
	name = strings.ToLower(s[start:i])
	for i < len(s) && s[i] == ' ' {
		i++
	}
	if i < len(s) && s[i] == '/' {
		closing = true
		i++
	}
	if i >= len(s) || s[i] != '>' {
		return "", false, 0
	}
	return name, closing, i + 1
}

// paragraphs splits styled text into paragraphs on newlines and each
// paragraph into whitespace separated words. A word such as "<b>un</b>fair"
// holds more than one span.
func paragraphs(spans []span) [][][]span {
	var (
		paras [][][]span
		words [][]span
		word  []span
	)
	endWord := func() {
		if len(word) > 0 {
			words = append(words, word)
			word = nil
		}
	}
	for _, s := range spans {
		start := 0
		for i, r := range s.text {
			if !unicode.IsSpace(r) {
				continue
			}
			if i > start {
				word = append(word, span{text: s.text[start:i], v: s.v})
			}
			endWord()
			if r == '\n' {
				paras = append(paras, words)
				words = nil
			}
			start = i + utf8.RuneLen(r)
		}
		if start < len(s.text) {
			word = append(word, span{text: s.text[start:], v: s.v})
		}
	}
	endWord()
	return append(paras, words)
}

// joinWords merges the words of a line into runs of one variant, with the
// separating spaces included.
func joinWords(words [][]span) []span {
	var runs []span
	for i, w := range words {
		for j, s := range w {
			n := len(runs)
			switch {
			case n > 0 && i > 0 && j == 0 && runs[n-1].v == s.v:
				runs[n-1].text += " " + s.text
			case n > 0 && i > 0 && j == 0:
				runs[n-1].text += " "
				runs = append(runs, s)
			case n > 0 && runs[n-1].v == s.v:
				runs[n-1].text += s.text
			default:
				runs = append(runs, s)
			}
		}
	}
	return runs
}
