// Package fitid assigns statement-unique transaction ids that are stable across runs.
package fitid

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rockstardevs/wsqfx/internal/model"
	"github.com/rockstardevs/wsqfx/ofx"
)

const payeeLength = 10

// Generate builds the id for the index-th transaction sharing date, payee and amount.
func Generate(date time.Time, payee string, amount decimal.Decimal, index int) string {
	var b strings.Builder
	b.WriteString(ofx.FormatDate(date))
	b.WriteString(payeeKey(payee))
	b.WriteString(amount.Shift(2).Round(0).Abs().String())
	if index > 0 {
		b.WriteString("-")
		b.WriteString(strconv.Itoa(index))
	}
	return b.String()
}

// Assign returns a copy of txns with FITIDs set. Transactions with the same day,
// payee and amount are numbered in order of appearance; the first gets no suffix.
// Payees that only differ past the truncated prefix continue the numbering so every
// id in the batch stays unique.
func Assign(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	next := make(map[string]int, len(txns))
	issued := make(map[string]struct{}, len(txns))
	for i, t := range txns {
		key := ofx.FormatDate(t.Date) + "|" + t.Payee + "|" + t.Amount.String()
		index := next[key]
		id := Generate(t.Date, t.Payee, t.Amount, index)
		for _, taken := issued[id]; taken; _, taken = issued[id] {
			index++
			id = Generate(t.Date, t.Payee, t.Amount, index)
		}
		issued[id] = struct{}{}
		next[key] = index + 1
		t.FITID = id
		out[i] = t
	}
	return out
}

func payeeKey(payee string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(payee) {
		if b.Len() == payeeLength {
			break
		}
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
