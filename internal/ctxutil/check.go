// Package ctxutil provides small context helpers shared across packages.
package ctxutil

import "context"

// Canceled reports whether ctx is already done, returning its error
// (context.Canceled or context.DeadlineExceeded) when it is and nil
// otherwise. Blocking operations call it at entry before doing any work.
//
// ctx.Err() is nil until Done is closed, so no select is needed.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}
