package doctree

import (
	"strings"
	"testing"
)

func sample() *DocTree {
	return &DocTree{
		Title: "Guide",
		Children: []*DocNode{
			{Title: "Setup", Text: "Install.", Children: []*DocNode{
				{Title: "Keys", Text: "Add keys."},
			}},
			{Text: "Loose paragraph."},
			{Title: "Launch", Text: "Ship it."},
		},
	}
}

func TestWalk_OrderAndBreadcrumbs(t *testing.T) {
	var got []string
	sample().Walk(func(n *DocNode, bc []string) bool {
		got = append(got, strings.Join(bc, "/")+"="+n.Text)
		return true
	})
	want := []string{"Setup=Install.", "Setup/Keys=Add keys.", "=Loose paragraph.", "Launch=Ship it."}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("walk order:\n got %q\nwant %q", got, want)
	}
}

func TestWalk_Stop(t *testing.T) {
	n := 0
	sample().Walk(func(*DocNode, []string) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Errorf("expected walk to stop after 2 nodes, visited %d", n)
	}
}

func TestEmpty(t *testing.T) {
	if !(&DocTree{Title: "x"}).Empty() {
		t.Error("tree without nodes should be empty")
	}
	if !(&DocTree{Children: []*DocNode{{}}}).Empty() {
		t.Error("tree with blank nodes should be empty")
	}
	if sample().Empty() {
		t.Error("sample tree is not empty")
	}
}
