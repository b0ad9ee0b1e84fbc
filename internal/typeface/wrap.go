package typeface

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Wrap breaks text into lines no wider than width. Whitespace stays attached
// to the end of the line it follows and "\n" forces a break, so
// strings.Join(lines, "") == text always holds. A word wider than width is
// split between runes.
func Wrap(style Style, size float64, text string, width float64) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for _, para := range strings.SplitAfter(text, "\n") {
		if para == "" {
			continue
		}
		lines = append(lines, wrapParagraph(style, size, para, width)...)
	}
	return lines
}

func wrapParagraph(style Style, size float64, para string, width float64) []string {
	lead, tokens := tokenize(para)
	var lines []string
	cur := lead
	for _, tok := range tokens {
		word := strings.TrimRightFunc(tok, unicode.IsSpace)
		if hasInk(cur) && Measure(style, size, cur+word) > width {
			lines = append(lines, cur)
			cur = ""
		}
		if Measure(style, size, cur+word) > width {
			pieces := splitRunes(style, size, cur+word, width)
			lines = append(lines, pieces[:len(pieces)-1]...)
			cur = pieces[len(pieces)-1] + tok[len(word):]
			continue
		}
		cur += tok
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// tokenize splits para into leading whitespace and word+trailing-space units.
func tokenize(para string) (string, []string) {
	i := strings.IndexFunc(para, func(r rune) bool { return !unicode.IsSpace(r) })
	if i < 0 {
		return para, nil
	}
	lead, rest := para[:i], para[i:]
	var tokens []string
	for rest != "" {
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			tokens = append(tokens, rest)
			break
		}
		next := strings.IndexFunc(rest[end:], func(r rune) bool { return !unicode.IsSpace(r) })
		if next < 0 {
			tokens = append(tokens, rest)
			break
		}
		tokens = append(tokens, rest[:end+next])
		rest = rest[end+next:]
	}
	return lead, tokens
}

// splitRunes cuts s into pieces that each fit width, keeping at least one
// rune per piece.
func splitRunes(style Style, size float64, s string, width float64) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); {
		_, n := utf8.DecodeRuneInString(s[i:])
		if i > start && Measure(style, size, s[start:i+n]) > width {
			out = append(out, s[start:i])
			start = i
		}
		i += n
	}
	return append(out, s[start:])
}

func hasInk(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Visible strips the trailing whitespace a wrapped line carries.
func Visible(line string) string {
	return strings.TrimRightFunc(line, unicode.IsSpace)
}

// Block is wrapped text with its measured extent.
type Block struct {
	Lines      []string
	Width      float64
	LineHeight float64
}

// Height is the block height in pixels.
func (b Block) Height() float64 {
	return float64(len(b.Lines)) * b.LineHeight
}

// Layout wraps text and measures the widest visible line. lineHeight is a
// multiple of size.
func Layout(style Style, size float64, text string, width, lineHeight float64) Block {
	b := Block{Lines: Wrap(style, size, text, width), LineHeight: size * lineHeight}
	for _, l := range b.Lines {
		if w := Measure(style, size, Visible(l)); w > b.Width {
			b.Width = w
		}
	}
	return b
}
