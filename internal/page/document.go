// Package page models the host page as a small DOM built on x/net/html.
package page

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

type Document struct {
	root *html.Node
}

// Element wraps an element node of a Document.
type Element struct {
	node *html.Node
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse host page: %w", err)
	}
	return &Document{root: root}, nil
}

// ElementByID returns the first element whose id attribute equals id, or nil.
func (d *Document) ElementByID(id string) *Element {
	if n := findByID(d.root, id); n != nil {
		return &Element{node: n}
	}
	return nil
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Namespace == "" && attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (e *Element) TextContent() string {
	var sb strings.Builder
	collectText(e.node, &sb)
	return sb.String()
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// SetTextContent replaces every child with a single text node.
func (e *Element) SetTextContent(text string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	if text != "" {
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// AppendText behaves like `el.textContent += text`.
func (e *Element) AppendText(text string) {
	e.SetTextContent(e.TextContent() + text)
}
