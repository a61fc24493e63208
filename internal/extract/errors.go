package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCandidates means the page held nothing that looked like a transaction.
	ErrNoCandidates = errors.New("no transactions found")
	// ErrNoTransactions means candidates were found but none survived extraction.
	ErrNoTransactions = errors.New("no transactions could be extracted")
)

// ExtractionError reports a candidate whose fields could not be read from the tree.
type ExtractionError struct {
	Index int    // Position of the candidate in document order.
	Text  string // Anchor text, for diagnostics.
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("candidate %d (%q): %v", e.Index, e.Text, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NormalizationError reports a candidate whose date or amount text could not be parsed.
type NormalizationError struct {
	Index int
	Field string // "date" or "amount".
	Text  string
	Err   error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("candidate %d: %s %q: %v", e.Index, e.Field, e.Text, e.Err)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}
