// Package extract recovers statement transactions from a rendered activity page and
// exports them as an OFX statement.
package extract

import (
	"context"

	"github.com/rockstardevs/wsqfx/internal/dom"
)

// Unknown stands in for a payee or type that is missing from the page.
const Unknown = "UNKNOWN"

// Candidate is a located node believed to anchor exactly one transaction.
type Candidate struct {
	Index    int
	Anchor   dom.Node
	Amount   dom.Node // Set when the amount text located the anchor.
	DateText string   // Text of the owning date header.
}

// Fields is the raw text read for one candidate.
type Fields struct {
	DateText   string
	Payee      string
	Type       string
	AmountText string
	Pending    bool
}

// Locator finds candidates in document order. All candidates are collected before
// any is read because reading may activate parts of the tree.
type Locator interface {
	Locate(root dom.Node) []Candidate
}

// FieldReader reads the fields of one candidate. It is the only place that knows
// where a layout keeps each field.
type FieldReader interface {
	Read(ctx context.Context, c Candidate) (Fields, error)
}
