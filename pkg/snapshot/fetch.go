package snapshot

import (
	"context"

	"github.com/elishacook/microfun/pkg/flow"
)

// Fetch returns a command that reads the latest record from store.
func Fetch(ctx context.Context, store Store) flow.Command[Record] {
	return func(flow.Callback[Record]) flow.Thenable[Record] {
		return flow.Go(ctx, store.Latest)
	}
}

// Load returns a command that restores the latest model from store.
//
//	reload := flow.Task(s, snapshot.Load[Model](ctx, store),
//		func(_ Model, m Model) Model { return m },
//		func(m Model, err error) Model { m.Err = err.Error(); return m },
//		nil)
func Load[M any](ctx context.Context, store Store) flow.Command[M] {
	return func(flow.Callback[M]) flow.Thenable[M] {
		return flow.Go(ctx, func(ctx context.Context) (M, error) {
			return Restore[M](ctx, store)
		})
	}
}
