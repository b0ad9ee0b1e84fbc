package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/infographic/internal/scene"
	"github.com/dgallion1/infographic/internal/theme"
)

// writeHTML emits a standalone page with the SVG inlined. Steps fade in with
// the delay their group carries; the page chrome follows opts.Theme.
func writeHTML(w io.Writer, s *scene.Scene, opts Options) error {
	doc := etree.NewDocument()
	doc.SetRoot(buildSVG(s))
	svg, err := doc.WriteToString()
	if err != nil {
		return fmt.Errorf("write svg: %w", err)
	}

	title := opts.Brand + " Infographic"
	if ts := s.Texts(scene.RoleTitle); len(ts) > 0 {
		title = ts[0].Content()
	}

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	htmlEl := element(atom.Html, "lang", "en")
	root.AppendChild(htmlEl)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))
	head.AppendChild(element(atom.Meta, "name", "viewport", "content", "width=device-width, initial-scale=1"))
	head.AppendChild(textElement(atom.Title, title))
	head.AppendChild(textElement(atom.Style, pageCSS(s, opts.Theme)))
	htmlEl.AppendChild(head)

	body := element(atom.Body, "class", opts.Theme.String())
	fig := element(atom.Figure)
	fig.AppendChild(&html.Node{Type: html.RawNode, Data: svg})
	fig.AppendChild(textElement(atom.Figcaption, opts.Brand))
	body.AppendChild(fig)
	htmlEl.AppendChild(body)

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func pageCSS(s *scene.Scene, t theme.Theme) string {
	ch := t.Chrome()
	var b strings.Builder
	fmt.Fprintf(&b, "body{margin:0;padding:48px 16px;background:%s;color:%s;font-family:%s}", theme.Hex(ch.Page), theme.Hex(ch.Text), fontFamily)
	fmt.Fprintf(&b, "figure{margin:0 auto;max-width:%spx}", num(s.Width))
	b.WriteString("figure svg{width:100%;height:auto;display:block}")
	fmt.Fprintf(&b, "figcaption{margin-top:16px;padding-top:16px;border-top:1px solid rgba(%d,%d,%d,%.2f);font-size:12px;letter-spacing:2px;text-transform:uppercase;text-align:center}",
		ch.Rule.R, ch.Rule.G, ch.Rule.B, theme.Opacity(ch.Rule))
	b.WriteString("@keyframes rise{from{opacity:0;transform:translateY(20px)}to{opacity:1;transform:none}}")
	b.WriteString("g.step{opacity:0;animation:rise .7s ease-out forwards}")
	for _, g := range s.Steps() {
		fmt.Fprintf(&b, `g.step[data-step-index="%d"]{animation-delay:%dms}`, g.StepIndex, g.Delay.Milliseconds())
	}
	b.WriteString("@media (prefers-reduced-motion:reduce){g.step{opacity:1;animation:none}}")
	return b.String()
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func textElement(a atom.Atom, text string) *html.Node {
	n := element(a)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
