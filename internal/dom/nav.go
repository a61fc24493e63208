package dom

import "strings"

// Child returns the i-th element child of n, or nil.
func Child(n Node, i int) Node {
	if n == nil || i < 0 {
		return nil
	}
	children := n.Children()
	if i >= len(children) {
		return nil
	}
	return children[i]
}

// Path follows child indexes from n, returning nil as soon as a step is missing.
func Path(n Node, indexes ...int) Node {
	for _, i := range indexes {
		if n = Child(n, i); n == nil {
			return nil
		}
	}
	return n
}

// Next returns the next element sibling of n, or nil.
func Next(n Node) Node {
	if n == nil {
		return nil
	}
	return n.NextSibling()
}

// Up returns the parent of n, or nil.
func Up(n Node) Node {
	if n == nil {
		return nil
	}
	return n.Parent()
}

// FirstByTag returns the first descendant of n with the given tag, like querySelector.
func FirstByTag(n Node, tag string) Node {
	if n == nil {
		return nil
	}
	found := n.Find(HasTag(tag))
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// Closest returns n or its nearest ancestor with the given tag.
func Closest(n Node, tag string) Node {
	for ; n != nil; n = n.Parent() {
		if strings.EqualFold(n.Tag(), tag) {
			return n
		}
	}
	return nil
}

// TextOf returns the text of n, or "" when n is nil.
func TextOf(n Node) string {
	if n == nil {
		return ""
	}
	return n.Text()
}

// HasTag matches elements by tag name.
func HasTag(tag string) func(Node) bool {
	return func(n Node) bool {
		return strings.EqualFold(n.Tag(), tag)
	}
}

// HasAttr matches elements whose attribute name equals value.
func HasAttr(name, value string) func(Node) bool {
	return func(n Node) bool {
		v, ok := n.Attr(name)
		return ok && v == value
	}
}
