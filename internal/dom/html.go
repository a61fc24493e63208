package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"
	"golang.org/x/net/html"
)

const expandedAttr = "aria-expanded"

// element adapts an x/net/html element node to Node.
type element struct {
	n *html.Node
}

// ParseHTML parses a rendered page snapshot and returns its root element.
func ParseHTML(r io.Reader) (Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return &element{n: c}, nil
		}
	}
	return nil, fmt.Errorf("parse html: no root element")
}

func wrap(n *html.Node) Node {
	if n == nil {
		return nil
	}
	return &element{n: n}
}

func (e *element) Tag() string {
	return e.n.Data
}

// Text returns the text content with whitespace runs collapsed to one space, the
// way it reads when rendered.
func (e *element) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func (e *element) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e *element) Parent() Node {
	if p := e.n.Parent; p != nil && p.Type == html.ElementNode {
		return wrap(p)
	}
	return nil
}

func (e *element) Children() []Node {
	var out []Node
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, wrap(c))
		}
	}
	return out
}

func (e *element) PrevSibling() Node {
	for s := e.n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return wrap(s)
		}
	}
	return nil
}

func (e *element) NextSibling() Node {
	for s := e.n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return wrap(s)
		}
	}
	return nil
}

func (e *element) Find(match func(Node) bool) []Node {
	var out []Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if node := wrap(c); match(node) {
				out = append(out, node)
			}
			walk(c)
		}
	}
	walk(e.n)
	return out
}

// Activate toggles aria-expanded. A snapshot already holds the markup a click would
// reveal, so the attribute only records the expand/collapse state.
func (e *element) Activate() error {
	state := "true"
	if v, ok := e.Attr(expandedAttr); ok && v == "true" {
		state = "false"
	}
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == expandedAttr {
			e.n.Attr[i].Val = state
			glog.V(3).Infof("activate <%s>: %s=%s", e.n.Data, expandedAttr, state)
			return nil
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: expandedAttr, Val: state})
	glog.V(3).Infof("activate <%s>: %s=%s", e.n.Data, expandedAttr, state)
	return nil
}
