package dom

import (
	"context"
	"time"
)

// Settler suspends the caller after a tree mutation so asynchronous rendering can
// complete before the tree is read again.
type Settler interface {
	Settle(ctx context.Context, d time.Duration) error
}

// Delay waits the full duration every time. It does not look at the tree.
type Delay struct{}

// Settle blocks for d, or until ctx is done.
func (Delay) Settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
