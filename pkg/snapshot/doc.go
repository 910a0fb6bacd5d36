// Package snapshot journals committed models and restores the latest one.
//
// A Journal is a flow.Observer: every committed root model is encoded as
// JSON and appended to a Store with a sequence number. Two stores are
// provided, a local bbolt file (BoltStore) and an S3 bucket (S3Store).
//
//	store, _ := snapshot.OpenBolt("microfun.db")
//	model, err := snapshot.Restore[Model](ctx, store)
//	journal := snapshot.NewJournal(store, snapshot.JournalConfig{})
//	app := flow.Mount(target, model, view, nil, flow.WithObserver(journal))
//	defer journal.Close()
//
// Fetch and Load return flow.Commands, so reading a snapshot can also be
// run as a task that dispatches into the model.
package snapshot
