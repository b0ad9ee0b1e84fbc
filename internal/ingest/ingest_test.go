package ingest

import (
	"strings"
	"testing"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"/tmp/uploads/Q3 Plan.docx", "Q3 Plan"},
		{"archive.tar.csv", "archive.tar"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := Title(tt.filename); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestForFile(t *testing.T) {
	for _, ext := range Extensions() {
		if !IsSupportedExtension("file" + strings.ToUpper(ext)) {
			t.Errorf("expected %s to be supported", ext)
		}
		if _, err := ForFile("file"+ext, Options{}); err != nil {
			t.Errorf("ForFile(%s): %v", ext, err)
		}
	}
	if IsSupportedExtension("image.png") {
		t.Error("png is not an ingest format")
	}
	if _, err := ForFile("image.png", Options{}); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestRead_MaxBytes(t *testing.T) {
	_, err := Read(strings.NewReader(strings.Repeat("a", 11)), "big.txt", Options{MaxBytes: 10})
	if err == nil {
		t.Fatal("expected size error")
	}
	if _, err := Read(strings.NewReader(strings.Repeat("a", 10)), "ok.txt", Options{MaxBytes: 10}); err != nil {
		t.Fatalf("unexpected error at the limit: %v", err)
	}
}

func TestCSV_TitleColumn(t *testing.T) {
	input := "Step,Description,Owner\nPlan,Define scope,Ana\nBuild,Implement,\n,,\n"
	tree, err := Read(strings.NewReader(input), "steps.csv", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tree.Children))
	}
	first := tree.Children[0]
	if first.Title != "Plan" || first.Text != "Description: Define scope\nOwner: Ana" {
		t.Errorf("unexpected first row %q / %q", first.Title, first.Text)
	}
	if tree.Children[1].Text != "Description: Implement" {
		t.Errorf("empty cells should be skipped, got %q", tree.Children[1].Text)
	}
}

func TestCSV_NoTitleColumnAndRaggedRows(t *testing.T) {
	input := "Phase,Detail\nOne,First\nTwo,Second,extra\n"
	tree, err := Read(strings.NewReader(input), "phases.csv", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tree.Children))
	}
	if tree.Children[1].Title != "" || tree.Children[1].Text != "Phase: Two\nDetail: Second\nextra" {
		t.Errorf("unexpected row %+v", tree.Children[1])
	}
}

func TestHTML_SectionsAndChrome(t *testing.T) {
	input := `<html><head><title>Release Guide</title><style>p{}</style></head>
<body>
<nav><p>Home | Docs</p></nav>
<h1>Release</h1>
<p>Prepare   the
 branch.</p>
<h2>Checks</h2>
<ul><li>Run tests</li><li>Tag <b>the</b> build</li></ul>
<script>var x = 1;</script>
</body></html>`
	tree, err := Read(strings.NewReader(input), "guide.html", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "Release Guide" {
		t.Errorf("expected <title> to win, got %q", tree.Title)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 top-level section, got %d", len(tree.Children))
	}
	rel := tree.Children[0]
	if rel.Text != "Prepare the branch." {
		t.Errorf("expected collapsed whitespace, got %q", rel.Text)
	}
	if len(rel.Children) != 1 || rel.Children[0].Text != "Run tests\n\nTag the build" {
		t.Fatalf("unexpected checks section %+v", rel.Children)
	}
}
