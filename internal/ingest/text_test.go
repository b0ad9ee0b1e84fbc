package ingest

import (
	"strings"
	"testing"
)

func TestText_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	tree, err := Read(strings.NewReader(input), "notes.txt", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", tree.Title)
	}
	want := []string{
		"First paragraph line one.\nFirst paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	if len(tree.Children) != len(want) {
		t.Fatalf("expected %d children, got %d", len(want), len(tree.Children))
	}
	for i, w := range want {
		if tree.Children[i].Text != w {
			t.Errorf("child[%d]: expected %q, got %q", i, w, tree.Children[i].Text)
		}
	}
}

func TestText_EmptyInput(t *testing.T) {
	tree, err := Read(strings.NewReader(""), "empty.txt", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", tree.Title)
	}
	if len(tree.Children) != 0 {
		t.Errorf("expected 0 children for empty input, got %d", len(tree.Children))
	}
}

func TestText_BlankAndWhitespaceLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"multiple blank lines", "Para one.\n\n\n\nPara two."},
		{"whitespace-only line", "Para one.\n   \nPara two."},
		{"crlf", "Para one.\r\n\r\nPara two.\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Read(strings.NewReader(tt.input), "gaps.txt", Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tree.Children) != 2 {
				t.Fatalf("expected 2 children, got %d", len(tree.Children))
			}
			if tree.Children[1].Text != "Para two." {
				t.Errorf("expected trailing whitespace trimmed, got %q", tree.Children[1].Text)
			}
		})
	}
}
