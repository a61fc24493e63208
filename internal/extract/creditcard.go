package extract

import (
	"context"
	"errors"
	"strings"

	"github.com/rockstardevs/wsqfx/internal/dom"
)

// CreditCardReader reads credit card activity rows. Everything is visible without
// interaction; the amount sits in the element following the row.
//
//	<div data-fullstory="cash-activities">   anchor
//	  <div>…</div>
//	  <div><p>Payee</p><div><p>Type</p></div></div>
//	</div>
//	<div><p>$12.00 CAD</p><div><span>Pending</span></div></div>
type CreditCardReader struct{}

func (CreditCardReader) Read(_ context.Context, c Candidate) (Fields, error) {
	amount := dom.Child(dom.Next(c.Anchor), 0)
	if amount == nil {
		return Fields{}, errors.New("no amount after row")
	}

	details := dom.Child(c.Anchor, 1)
	f := Fields{
		DateText:   c.DateText,
		Payee:      dom.TextOf(dom.Child(details, 0)),
		Type:       dom.TextOf(dom.Path(details, 1, 0)),
		AmountText: amount.Text(),
		Pending:    strings.Contains(dom.TextOf(dom.FirstByTag(dom.Next(amount), "span")), "Pending"),
	}
	if f.Payee == "" {
		f.Payee = Unknown
	}
	if f.Type == "" {
		f.Type = Unknown
	}
	return f, nil
}
