package flow

import (
	"context"
	stderrors "errors"
	"testing"
	"time"
)

func TestFutureSettlesOnce(t *testing.T) {
	f := NewFuture[string]()
	var got []string
	f.Then(func(s string) { got = append(got, s) })
	f.Catch(func(err error) { got = append(got, "err:"+err.Error()) })

	f.Resolve("a")
	f.Resolve("b")
	f.Reject(stderrors.New("late"))

	if len(got) != 1 || got[0] != "a" {
		t.Errorf("callbacks = %v, want [a]", got)
	}

	// Registered after settlement: runs immediately.
	f.Then(func(s string) { got = append(got, "again:"+s) })
	if len(got) != 2 || got[1] != "again:a" {
		t.Errorf("callbacks = %v", got)
	}
}

func TestFutureRejectNil(t *testing.T) {
	_, err := Rejected[int](nil).Await(context.Background())
	if err == nil {
		t.Error("Reject(nil) must still be a failure")
	}
}

func TestGo(t *testing.T) {
	ctx := context.Background()

	v, err := Go(ctx, func(context.Context) (int, error) { return 4, nil }).Await(ctx)
	if v != 4 || err != nil {
		t.Errorf("Await() = (%d, %v), want (4, nil)", v, err)
	}

	boom := stderrors.New("boom")
	_, err = Go(ctx, func(context.Context) (int, error) { return 0, boom }).Await(ctx)
	if !stderrors.Is(err, boom) {
		t.Errorf("Await() error = %v, want boom", err)
	}
}

func TestAwaitContextDone(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := NewFuture[int]().Await(ctx)
	if !stderrors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Await() error = %v, want deadline exceeded", err)
	}
}
