package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/rockstardevs/wsqfx/internal/dom"
	"github.com/rockstardevs/wsqfx/internal/fitid"
	"github.com/rockstardevs/wsqfx/internal/model"
	"github.com/rockstardevs/wsqfx/internal/normalize"
	"github.com/rockstardevs/wsqfx/ofx"
)

// Pipeline turns one rendered page into one OFX statement.
type Pipeline struct {
	Variant *Variant
	// Now is read once per run; it anchors relative dates and DTSERVER. Defaults to time.Now.
	Now func() time.Time
}

// Stats counts what happened to the candidates of a run.
type Stats struct {
	Located               int
	Extracted             int
	ExtractionFailures    int
	NormalizationFailures int
	Pending               int
	Exported              int
}

// Result is a finished export.
type Result struct {
	Transactions []model.Transaction
	Document     []byte
	Filename     string
	Stats        Stats
}

// Run locates, reads and normalizes every candidate in order, assigns ids and writes
// the statement. Failed candidates are logged and skipped. Only an empty result or a
// done ctx fail the run.
func (p *Pipeline) Run(ctx context.Context, root dom.Node) (*Result, error) {
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}

	txns, stats, err := p.Extract(ctx, root, now)
	if err != nil {
		return nil, err
	}
	txns = fitid.Assign(txns)

	doc, err := p.Statement(txns, now).Bytes()
	if err != nil {
		return nil, err
	}
	if err := ofx.Verify(doc, len(txns)); err != nil {
		return nil, err
	}
	stats.Exported = len(txns)

	for _, t := range txns {
		glog.V(1).Infof("%s | %-32s | %-24s | %10s | %s",
			ofx.FormatDate(t.Date), t.Payee, t.Type, t.Amount.StringFixed(2), t.FITID)
	}
	glog.Infof("%s: exported %d of %d located transactions (%d unreadable, %d unparsable, %d pending)",
		p.Variant.Name, stats.Exported, stats.Located, stats.ExtractionFailures, stats.NormalizationFailures, stats.Pending)

	return &Result{
		Transactions: txns,
		Document:     doc,
		Filename:     fmt.Sprintf("%s-%s.qfx", p.Variant.FilePrefix, ofx.FormatDate(now)),
		Stats:        stats,
	}, nil
}

// Extract returns the normalized transactions of root in document order, without ids.
func (p *Pipeline) Extract(ctx context.Context, root dom.Node, now time.Time) ([]model.Transaction, Stats, error) {
	var stats Stats
	candidates := p.Variant.Locator.Locate(root)
	stats.Located = len(candidates)
	if len(candidates) == 0 {
		return nil, stats, ErrNoCandidates
	}

	txns := make([]model.Transaction, 0, len(candidates))
	for i, c := range candidates {
		if i%10 == 0 {
			glog.V(1).Infof("Processing transaction %d of %d...", i+1, len(candidates))
		}

		fields, err := p.read(ctx, c)
		if err != nil {
			if ctx.Err() != nil {
				return nil, stats, ctx.Err()
			}
			stats.ExtractionFailures++
			glog.Warningf("Skipping transaction: %v", &ExtractionError{Index: c.Index, Text: dom.TextOf(c.Anchor), Err: err})
			continue
		}
		stats.Extracted++

		t, err := normalizeFields(c.Index, fields, now)
		if err != nil {
			stats.NormalizationFailures++
			glog.Warningf("Dropping transaction: %v", err)
			continue
		}
		if t.Pending && p.Variant.ExcludePending {
			stats.Pending++
			glog.V(1).Infof("Skipping pending transaction %d: %s %s", c.Index, t.Payee, t.Amount)
			continue
		}
		txns = append(txns, t)
	}

	glog.Infof("Extracted %d transactions", len(txns))
	if len(txns) == 0 {
		return nil, stats, ErrNoTransactions
	}
	return txns, stats, nil
}

// Statement maps transactions onto the variant's statement.
func (p *Pipeline) Statement(txns []model.Transaction, now time.Time) *ofx.Statement {
	v := p.Variant
	stmt := &ofx.Statement{
		Shape:        v.Shape,
		Currency:     v.Currency,
		BankID:       v.BankID,
		AccountID:    v.AccountID,
		AccountType:  v.AccountType,
		ServerTime:   now,
		Transactions: make([]ofx.Transaction, 0, len(txns)),
	}
	for _, t := range txns {
		stmt.Transactions = append(stmt.Transactions, ofx.Transaction{
			Type:   v.Categories.Classify(t.Type, t.Amount),
			Posted: ofx.FormatDate(t.Date),
			Amount: t.Amount,
			ID:     t.FITID,
			Name:   t.Payee,
		})
	}
	return stmt
}

// read isolates a single candidate so a malformed tree can't abort the batch.
func (p *Pipeline) read(ctx context.Context, c Candidate) (f Fields, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return p.Variant.Reader.Read(ctx, c)
}

func normalizeFields(index int, f Fields, now time.Time) (model.Transaction, error) {
	date, err := normalize.ParseDate(f.DateText, now)
	if err != nil {
		return model.Transaction{}, &NormalizationError{Index: index, Field: "date", Text: f.DateText, Err: err}
	}
	amount, err := normalize.ParseAmount(f.AmountText)
	if err != nil {
		return model.Transaction{}, &NormalizationError{Index: index, Field: "amount", Text: f.AmountText, Err: err}
	}
	payee := f.Payee
	if payee == "" {
		payee = Unknown
	}
	return model.Transaction{
		Date:    date,
		Payee:   payee,
		Type:    f.Type,
		Amount:  amount,
		Pending: f.Pending,
	}, nil
}
