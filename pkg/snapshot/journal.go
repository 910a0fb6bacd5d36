package snapshot

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/elishacook/microfun/pkg/flow"
)

// DefaultJournalBuffer is the number of encoded models a Journal queues
// before it starts dropping.
const DefaultJournalBuffer = 64

// JournalConfig configures a Journal.
type JournalConfig struct {
	// Buffer is the queue length. Zero means DefaultJournalBuffer.
	Buffer int

	// Timeout bounds each Append. Zero means no timeout.
	Timeout time.Duration

	Logger *slog.Logger
}

// Journal is a flow.Observer that appends every committed model to a
// Store. Encoding happens on the dispatching goroutine; writes happen on
// the Journal's own goroutine, so a slow store never blocks dispatch.
// When the queue is full the model is dropped and a warning is logged.
type Journal struct {
	flow.NopObserver

	store   Store
	timeout time.Duration
	logger  *slog.Logger

	queue chan []byte
	wg    sync.WaitGroup
	once  sync.Once

	written atomic.Uint64
	dropped atomic.Uint64
	lastSeq atomic.Uint64
}

// NewJournal starts a journal writing to store.
func NewJournal(store Store, config JournalConfig) *Journal {
	if config.Buffer <= 0 {
		config.Buffer = DefaultJournalBuffer
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	j := &Journal{
		store:   store,
		timeout: config.Timeout,
		logger:  config.Logger.With("component", "snapshot"),
		queue:   make(chan []byte, config.Buffer),
	}
	j.wg.Add(1)
	go j.run()
	return j
}

// Committed implements flow.Observer.
func (j *Journal) Committed(model any) {
	data, err := json.Marshal(model)
	if err != nil {
		j.logger.Error("encode model", "error", err)
		return
	}
	select {
	case j.queue <- data:
	default:
		j.dropped.Add(1)
		j.logger.Warn("journal queue full, snapshot dropped")
	}
}

func (j *Journal) run() {
	defer j.wg.Done()
	for data := range j.queue {
		seq, err := j.append(data)
		if err != nil {
			j.logger.Error("append snapshot", "error", err)
			continue
		}
		j.written.Add(1)
		j.lastSeq.Store(seq)
		j.logger.Debug("snapshot written", "seq", seq, "bytes", len(data))
	}
}

func (j *Journal) append(data []byte) (uint64, error) {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}
	return j.store.Append(ctx, data)
}

// Written returns the number of snapshots stored.
func (j *Journal) Written() uint64 { return j.written.Load() }

// Dropped returns the number of snapshots dropped on a full queue.
func (j *Journal) Dropped() uint64 { return j.dropped.Load() }

// LastSeq returns the sequence of the most recent stored snapshot.
func (j *Journal) LastSeq() uint64 { return j.lastSeq.Load() }

// Close drains the queue and waits for pending writes. It does not close
// the store. Committed must not be called after Close.
func (j *Journal) Close() {
	j.once.Do(func() { close(j.queue) })
	j.wg.Wait()
}
