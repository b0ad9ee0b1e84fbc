package ingest

import (
	"strings"

	"github.com/dgallion1/infographic/internal/doctree"
)

// outline builds a DocTree from a flat stream of headings and paragraphs.
// Headings nest under the nearest preceding heading of a lower level.
type outline struct {
	root  *doctree.DocNode
	stack []level
	para  []string
}

type level struct {
	node  *doctree.DocNode
	depth int
}

func newOutline() *outline {
	root := &doctree.DocNode{}
	return &outline{root: root, stack: []level{{node: root}}}
}

func (o *outline) heading(depth int, title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	o.flush()
	n := &doctree.DocNode{Title: title}
	for len(o.stack) > 1 && o.stack[len(o.stack)-1].depth >= depth {
		o.stack = o.stack[:len(o.stack)-1]
	}
	parent := o.stack[len(o.stack)-1].node
	parent.Children = append(parent.Children, n)
	o.stack = append(o.stack, level{node: n, depth: depth})
}

func (o *outline) paragraph(text string) {
	if text = strings.TrimSpace(text); text != "" {
		o.para = append(o.para, text)
	}
}

func (o *outline) flush() {
	if len(o.para) == 0 {
		return
	}
	top := o.stack[len(o.stack)-1].node
	text := strings.Join(o.para, "\n\n")
	if top.Text != "" {
		text = top.Text + "\n\n" + text
	}
	top.Text = text
	o.para = o.para[:0]
}

// tree finishes the outline. Text before the first heading becomes a leading
// untitled node.
func (o *outline) tree(title string) *doctree.DocTree {
	o.flush()
	t := &doctree.DocTree{Title: title, Children: o.root.Children}
	if o.root.Text != "" {
		t.Children = append([]*doctree.DocNode{{Text: o.root.Text}}, t.Children...)
	}
	return t
}
