// Package dom is the rendering target: a host page whose named slots are
// looked up by id and mutated in place.
package dom

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document exposes element lookup by id.
type Document interface {
	ElementByID(id string) (Element, bool)
	// ReplaceBody swaps the entire page content for markup.
	ReplaceBody(markup string) error
}

// Element is one addressable node of a Document.
type Element interface {
	ID() string
	Text() string
	SetText(text string)
	SetInnerHTML(markup string) error
	Attr(key string) string
	SetAttr(key, value string)
	Style(prop string) string
	SetStyle(prop, value string)
	Focus()
	ScrollIntoView()
}

//go:embed page.html
var defaultPage []byte

// HTMLDocument is a Document over a parsed HTML tree.
type HTMLDocument struct {
	root     *html.Node
	focused  string
	scrolled string
}

// Parse reads a full HTML page.
func Parse(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return &HTMLDocument{root: root}, nil
}

// Default returns the built-in host page that carries every slot.
func Default() *HTMLDocument {
	d, err := Parse(bytes.NewReader(defaultPage))
	if err != nil {
		panic(err)
	}
	return d
}

func (d *HTMLDocument) ElementByID(id string) (Element, bool) {
	n := findByID(d.root, id)
	if n == nil {
		return nil, false
	}
	return &htmlElement{doc: d, n: n}, true
}

func (d *HTMLDocument) ReplaceBody(markup string) error {
	body := findAtom(d.root, atom.Body)
	if body == nil {
		return errors.New("page has no body")
	}
	return setInner(body, markup)
}

// Render serializes the page.
func (d *HTMLDocument) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *HTMLDocument) String() string {
	var b strings.Builder
	_ = d.Render(&b)
	return b.String()
}

// Focused is the id of the last focused element.
func (d *HTMLDocument) Focused() string { return d.focused }

// ScrolledTo is the id of the last element scrolled into view.
func (d *HTMLDocument) ScrolledTo() string { return d.scrolled }

// Count returns how many elements carry class.
func (d *HTMLDocument) Count(class string) int {
	n := 0
	walk(d.root, func(node *html.Node) bool {
		if node.Type == html.ElementNode && hasClass(node, class) {
			n++
		}
		return true
	})
	return n
}

type htmlElement struct {
	doc *HTMLDocument
	n   *html.Node
}

func (e *htmlElement) ID() string { return getAttr(e.n, "id") }

func (e *htmlElement) Text() string {
	var b strings.Builder
	walk(e.n, func(node *html.Node) bool {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		return true
	})
	return b.String()
}

func (e *htmlElement) SetText(text string) {
	removeChildren(e.n)
	if text != "" {
		e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

func (e *htmlElement) SetInnerHTML(markup string) error {
	return setInner(e.n, markup)
}

func (e *htmlElement) Attr(key string) string { return getAttr(e.n, key) }

func (e *htmlElement) SetAttr(key, value string) {
	for i := range e.n.Attr {
		if e.n.Attr[i].Namespace == "" && e.n.Attr[i].Key == key {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: key, Val: value})
}

func (e *htmlElement) Style(prop string) string {
	for _, decl := range parseStyle(getAttr(e.n, "style")) {
		if decl[0] == prop {
			return decl[1]
		}
	}
	return ""
}

func (e *htmlElement) SetStyle(prop, value string) {
	decls := parseStyle(getAttr(e.n, "style"))
	found := false
	for i := range decls {
		if decls[i][0] == prop {
			decls[i][1] = value
			found = true
		}
	}
	if !found {
		decls = append(decls, [2]string{prop, value})
	}
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d[0]+":"+d[1])
	}
	e.SetAttr("style", strings.Join(parts, ";"))
}

func (e *htmlElement) Focus() { e.doc.focused = e.ID() }

func (e *htmlElement) ScrollIntoView() { e.doc.scrolled = e.ID() }

func setInner(n *html.Node, markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		return fmt.Errorf("parse fragment: %w", err)
	}
	removeChildren(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

func parseStyle(style string) [][2]string {
	var out [][2]string
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		out = append(out, [2]string{k, strings.TrimSpace(v)})
	}
	return out
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// walk visits n and its descendants depth-first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func findByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && getAttr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

func findAtom(root *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == a {
			found = n
			return false
		}
		return true
	})
	return found
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
