package ingest

import (
	"strings"
	"testing"
)

func TestMarkdown_HeadingHierarchy(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.

## Section B

Section B content.
`
	tree, err := Read(strings.NewReader(input), "doc.md", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", tree.Title)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 top-level child (h1), got %d", len(tree.Children))
	}

	h1 := tree.Children[0]
	if h1.Title != "Title" {
		t.Errorf("expected h1 title %q, got %q", "Title", h1.Title)
	}
	if h1.Text != "Intro text." {
		t.Errorf("expected h1 text %q, got %q", "Intro text.", h1.Text)
	}
	if len(h1.Children) != 2 {
		t.Fatalf("expected 2 h2 children, got %d", len(h1.Children))
	}

	secA := h1.Children[0]
	if secA.Title != "Section A" || secA.Text != "Section A content." {
		t.Errorf("unexpected section A: %q / %q", secA.Title, secA.Text)
	}
	if len(secA.Children) != 1 || secA.Children[0].Title != "Subsection A1" {
		t.Fatalf("expected Subsection A1 under Section A, got %+v", secA.Children)
	}
	if h1.Children[1].Title != "Section B" {
		t.Errorf("expected %q, got %q", "Section B", h1.Children[1].Title)
	}
}

func TestMarkdown_ListItemsAreParagraphs(t *testing.T) {
	input := "## Launch plan\n\n1. Define the *scope*\n2. Build the thing\n3. Ship it\n"
	tree, err := Read(strings.NewReader(input), "plan.md", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 section, got %d", len(tree.Children))
	}
	want := "Define the scope\n\nBuild the thing\n\nShip it"
	if tree.Children[0].Text != want {
		t.Errorf("expected %q, got %q", want, tree.Children[0].Text)
	}
}

func TestMarkdown_NoHeadings(t *testing.T) {
	input := "Just some plain text.\n\nAnother paragraph here."
	tree, err := Read(strings.NewReader(input), "plain.md", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 child for headingless markdown, got %d", len(tree.Children))
	}
	if tree.Children[0].Text != "Just some plain text.\n\nAnother paragraph here." {
		t.Errorf("unexpected text %q", tree.Children[0].Text)
	}
}

func TestMarkdown_TextBeforeFirstHeadingIsKept(t *testing.T) {
	input := "Preamble.\n\n# Body\n\nContent."
	tree, err := Read(strings.NewReader(input), "pre.md", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected preamble plus one section, got %d", len(tree.Children))
	}
	if tree.Children[0].Title != "" || tree.Children[0].Text != "Preamble." {
		t.Errorf("unexpected preamble node %+v", tree.Children[0])
	}
}

func TestMarkdown_CodeBlocks(t *testing.T) {
	input := "# API Reference\n\n## Endpoints\n\nList of endpoints:\n\n```\nGET /api/users\nPOST /api/users\n```\n\nMore text after code.\n"
	tree, err := Read(strings.NewReader(input), "api.md", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	endpoints := tree.Children[0].Children[0]
	if !strings.Contains(endpoints.Text, "GET /api/users\nPOST /api/users") {
		t.Errorf("expected code block content in text, got %q", endpoints.Text)
	}
	if !strings.HasSuffix(endpoints.Text, "More text after code.") {
		t.Errorf("expected post-code text, got %q", endpoints.Text)
	}
}

func TestMarkdown_EmptyInput(t *testing.T) {
	tree, err := Read(strings.NewReader(""), "empty.md", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 0 {
		t.Errorf("expected 0 children for empty input, got %d", len(tree.Children))
	}
}
