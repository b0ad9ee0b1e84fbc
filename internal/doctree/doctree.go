// Package doctree is the format-neutral outline of an ingested file.
package doctree

// DocTree is the root of a parsed document.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading (empty for leaf text)
	Text     string     // Paragraphs separated by blank lines (may be empty for container nodes)
	Page     int        // Source page (0 if N/A)
	Children []*DocNode // Subsections
}

// Walk visits every node depth-first in document order. The breadcrumb holds
// the titles of the node's ancestors and the node itself; it must not be
// retained. Returning false stops the walk.
func (t *DocTree) Walk(fn func(n *DocNode, breadcrumb []string) bool) {
	var bc []string
	var walk func(nodes []*DocNode) bool
	walk = func(nodes []*DocNode) bool {
		for _, n := range nodes {
			depth := len(bc)
			if n.Title != "" {
				bc = append(bc, n.Title)
			}
			if !fn(n, bc) || !walk(n.Children) {
				return false
			}
			bc = bc[:depth]
		}
		return true
	}
	walk(t.Children)
}

// Empty reports whether the tree holds no text at all.
func (t *DocTree) Empty() bool {
	empty := true
	t.Walk(func(n *DocNode, _ []string) bool {
		if n.Text != "" || n.Title != "" {
			empty = false
		}
		return empty
	})
	return empty
}
