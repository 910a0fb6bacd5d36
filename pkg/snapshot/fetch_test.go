package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/elishacook/microfun/pkg/flow"
)

type fetchModel struct {
	Restored testModel
	Err      string
}

func TestLoadTask(t *testing.T) {
	store := openTestBolt(t)
	ctx := context.Background()
	store.Append(ctx, []byte(`{"count":7}`))

	done := make(chan struct{})
	model := fetchModel{}
	s := flow.New(func() fetchModel { return model }, func(m fetchModel) { model = m })

	start := flow.Task(s, Load[testModel](ctx, store),
		func(m fetchModel, r testModel) fetchModel { m.Restored = r; return m },
		func(m fetchModel, err error) fetchModel { m.Err = err.Error(); return m },
		func(testModel, error) { close(done) })
	start()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not settle")
	}
	if model.Restored.Count != 7 || model.Err != "" {
		t.Errorf("model = %+v", model)
	}
}

func TestFetchEmptyStore(t *testing.T) {
	store := openTestBolt(t)
	ctx := context.Background()

	f, ok := Fetch(ctx, store)(nil).(*flow.Future[Record])
	if !ok {
		t.Fatal("Fetch did not return a future")
	}
	_, err := f.Await(ctx)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Await = %v, want ErrNotFound", err)
	}
}
