package chunker

import (
	"strings"
	"testing"

	"github.com/dgallion1/infographic/internal/doctree"
)

func TestCondense_SmallTreeKeepsEverything(t *testing.T) {
	tree := &doctree.DocTree{
		Title: "Onboarding",
		Children: []*doctree.DocNode{
			{
				Title: "Week One",
				Text:  "Meet the team.\n\nSet up your laptop.",
				Children: []*doctree.DocNode{
					{Title: "Day One", Text: "Collect your badge."},
				},
			},
			{Text: "Questions go to your manager."},
		},
	}

	got := Condense(tree, 1000)
	want := "Week One\n\nMeet the team.\n\nSet up your laptop.\n\nWeek One > Day One\n\nCollect your badge.\n\nQuestions go to your manager."
	if got.Text != want {
		t.Errorf("unexpected text:\n got %q\nwant %q", got.Text, want)
	}
	if got.Title != "Onboarding" {
		t.Errorf("expected title %q, got %q", "Onboarding", got.Title)
	}
	if got.Truncated {
		t.Error("expected no truncation")
	}
	if got.Tokens != EstimateTokens(want) {
		t.Errorf("expected %d tokens, got %d", EstimateTokens(want), got.Tokens)
	}
}

func TestCondense_ClipsAtParagraphBoundary(t *testing.T) {
	para := strings.TrimSpace(strings.Repeat("word ", 30)) // 39 tokens
	tree := &doctree.DocTree{
		Children: []*doctree.DocNode{
			{Text: para + "\n\n" + para + "\n\n" + para},
		},
	}

	got := Condense(tree, 80)
	if !got.Truncated {
		t.Fatal("expected truncation")
	}
	if got.Tokens > 80 {
		t.Errorf("expected at most 80 tokens, got %d", got.Tokens)
	}
	if n := strings.Count(got.Text, "\n\n"); n != 1 {
		t.Errorf("expected two whole paragraphs, got %d separators", n)
	}
}

func TestCondense_ClipsLongParagraphBySentence(t *testing.T) {
	sentence := "The quick brown fox jumps over the lazy dog."
	tree := &doctree.DocTree{
		Children: []*doctree.DocNode{
			{Text: strings.TrimSpace(strings.Repeat(sentence+" ", 20))},
		},
	}

	got := Condense(tree, 40)
	if !got.Truncated {
		t.Fatal("expected truncation")
	}
	if got.Text == "" {
		t.Fatal("expected leading sentences to be kept")
	}
	if !strings.HasSuffix(got.Text, "dog.") {
		t.Errorf("expected text to end on a sentence boundary, got %q", got.Text)
	}
	if got.Tokens > 40 {
		t.Errorf("expected at most 40 tokens, got %d", got.Tokens)
	}
}

func TestCondense_NoLimit(t *testing.T) {
	tree := &doctree.DocTree{
		Children: []*doctree.DocNode{{Text: strings.Repeat("many words here ", 2000)}},
	}
	got := Condense(tree, 0)
	if got.Truncated {
		t.Error("non-positive budget keeps everything")
	}
}

func TestCondense_EmptyTree(t *testing.T) {
	got := Condense(&doctree.DocTree{Title: "Empty"}, 100)
	if got.Text != "" || got.Tokens != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("One. Two! Three? Four")
	want := []string{"One.", "Two!", "Three?", "Four"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 1},
		{"one", 1},
		{"one two three", 3},
		{strings.Repeat("w ", 100), 133},
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.in); got != tt.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
