package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized statement line.
type Transaction struct {
	Date   time.Time       // Calendar day, at midnight.
	Payee  string          // Counterparty or description, never empty.
	Type   string          // Label as shown on the page, e.g. "Withdrawal".
	Amount decimal.Decimal // Negative for outflows.
	FITID  string          // Assigned after the batch is complete.
	// Pending is only detected on credit card pages.
	Pending bool
}
