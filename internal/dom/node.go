// Package dom is the narrow view of a rendered page that transaction extraction needs:
// element navigation, text, attributes and an activation side effect.
package dom

//go:generate mockgen -destination=mock_dom/mock_dom.go github.com/rockstardevs/wsqfx/internal/dom Node,Settler

// Node is an element of a rendered document tree.
// Navigation methods return nil when there is no such element.
type Node interface {
	// Tag returns the lowercase element name.
	Tag() string
	// Text returns the trimmed text content of the element and its descendants.
	Text() string
	Attr(name string) (string, bool)
	Parent() Node
	// Children returns the element children in document order.
	Children() []Node
	PrevSibling() Node
	NextSibling() Node
	// Find returns every descendant element, in document order, for which match is true.
	Find(match func(Node) bool) []Node
	// Activate performs the element's primary action, like a click.
	Activate() error
}
