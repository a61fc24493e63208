package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/rockstardevs/wsqfx/internal/dom"
)

// ChequingReader reads chequing activity rows. Counterparties are only rendered in
// a detail panel that appears after the row is clicked.
//
//	<div>
//	  <button>                      anchor
//	    <div><div>
//	      <div>…</div>
//	      <div><p>Type</p></div>
//	    </div>…<p>−$12.00 CAD</p></div>
//	  </button>
//	</div>
//	<div><div><div>                 detail panel
//	  <div><div/><div><div><p>From</p></div></div></div>
//	  <div><div/><div><div><p>To</p></div></div></div>
//	</div></div></div>
type ChequingReader struct {
	Settler       dom.Settler
	ExpandDelay   time.Duration
	CollapseDelay time.Duration
}

func (r *ChequingReader) Read(ctx context.Context, c Candidate) (Fields, error) {
	f := Fields{
		DateText:   c.DateText,
		AmountText: dom.TextOf(c.Amount),
		Type:       dom.TextOf(dom.FirstByTag(dom.Path(dom.FirstByTag(c.Anchor, "div"), 0, 1), "p")),
	}
	if f.Type == "" {
		f.Type = Unknown
	}

	label := strings.ToLower(f.Type)
	if strings.Contains(label, "credit card") || label == "interest" {
		f.Payee = f.Type
		return f, nil
	}

	from, to, err := r.readPanel(ctx, c.Anchor)
	if err != nil {
		return Fields{}, err
	}
	f.Payee = choosePayee(label, from, to, f.Type)
	return f, nil
}

// readPanel expands the anchor's detail panel, reads the from and to fields and
// collapses it again.
func (r *ChequingReader) readPanel(ctx context.Context, anchor dom.Node) (from, to string, err error) {
	parent := dom.Up(anchor)
	if parent == nil {
		return "", "", errors.New("anchor has no parent")
	}
	if err := anchor.Activate(); err != nil {
		return "", "", fmt.Errorf("expand: %w", err)
	}
	defer func() {
		if cerr := r.collapse(ctx, anchor); cerr != nil && err == nil {
			from, to, err = "", "", cerr
		}
	}()
	if err := r.Settler.Settle(ctx, r.ExpandDelay); err != nil {
		return "", "", err
	}

	fields := dom.Path(dom.Next(parent), 0, 0)
	from = panelField(dom.Child(fields, 0))
	to = panelField(dom.Child(fields, 1))
	glog.V(2).Infof("panel from=%q to=%q", from, to)
	return from, to, nil
}

func (r *ChequingReader) collapse(ctx context.Context, anchor dom.Node) error {
	if err := anchor.Activate(); err != nil {
		return fmt.Errorf("collapse: %w", err)
	}
	return r.Settler.Settle(ctx, r.CollapseDelay)
}

func panelField(n dom.Node) string {
	return dom.TextOf(dom.FirstByTag(dom.Path(n, 1, 0), "p"))
}

// choosePayee prefers the sender of incoming transfers and the recipient otherwise.
func choosePayee(label, from, to, fallback string) string {
	first, second := to, from
	if strings.Contains(label, "transfer in") {
		first, second = from, to
	}
	switch {
	case first != "":
		return first
	case second != "":
		return second
	}
	return fallback
}
