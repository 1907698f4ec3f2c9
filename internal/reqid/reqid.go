// Package reqid carries a per-search identifier on a context so that the
// start, advisory and finish events of one search can be correlated.
package reqid

import (
	"context"
	"math/rand/v2"
)

type key struct{}

// NewContext returns a copy of parent carrying a new random search ID, and
// the ID itself.
func NewContext(parent context.Context) (context.Context, int64) {
	id := rand.Int64()
	return context.WithValue(parent, key{}, id), id
}

// FromContext extracts the search ID from ctx.
func FromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(key{}).(int64)
	return id, ok
}

// Ensure returns ctx and its search ID, attaching a new ID when ctx has none.
// A caller that already tagged its context keeps its own ID.
func Ensure(ctx context.Context) (context.Context, int64) {
	if id, ok := FromContext(ctx); ok {
		return ctx, id
	}
	return NewContext(ctx)
}
