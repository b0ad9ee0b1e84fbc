// Package chunker condenses an ingested document into prompt text that fits
// a token budget.
package chunker

import (
	"strings"

	"github.com/dgallion1/infographic/internal/doctree"
)

// Condensed is the prompt-ready text of a document.
type Condensed struct {
	Title     string `json:"title"`
	Text      string `json:"text"`
	Tokens    int    `json:"tokens"`
	Truncated bool   `json:"truncated"`
}

// Condense flattens tree into text: each titled section is introduced by its
// heading path, followed by its paragraphs in order. Text is clipped at
// paragraph boundaries, then sentence boundaries, so that the estimated size
// stays within maxTokens. A non-positive maxTokens keeps everything.
func Condense(tree *doctree.DocTree, maxTokens int) Condensed {
	out := Condensed{Title: tree.Title}
	b := budget{max: maxTokens}

	tree.Walk(func(n *doctree.DocNode, bc []string) bool {
		if n.Title != "" && !b.add(strings.Join(bc, " > ")) {
			return false
		}
		for _, para := range splitByParagraphs(n.Text) {
			if b.add(para) {
				continue
			}
			b.addSentences(para)
			return false
		}
		return true
	})

	out.Text = strings.Join(b.blocks, "\n\n")
	out.Tokens = EstimateTokens(out.Text)
	out.Truncated = b.full
	return out
}

type budget struct {
	max    int
	used   int
	blocks []string
	full   bool
}

// add appends block if it fits. Once something has not fit, the budget is
// closed.
func (b *budget) add(block string) bool {
	if b.full {
		return false
	}
	n := EstimateTokens(block)
	if b.max > 0 && b.used+n > b.max {
		b.full = true
		return false
	}
	b.blocks = append(b.blocks, block)
	b.used += n
	return true
}

// addSentences appends the leading sentences of para that still fit.
func (b *budget) addSentences(para string) {
	var kept []string
	used := b.used
	for _, s := range splitSentences(para) {
		n := EstimateTokens(s)
		if used+n > b.max {
			break
		}
		kept = append(kept, s)
		used += n
	}
	if len(kept) > 0 {
		b.blocks = append(b.blocks, strings.Join(kept, " "))
		b.used = used
	}
	b.full = true
}

// splitByParagraphs splits on double-newlines.
func splitByParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// splitSentences does basic sentence splitting.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
