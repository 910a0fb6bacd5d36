package live

// history is a ring of recently broadcast patch messages, used to catch up
// a reconnecting client without resending the whole document. It is
// guarded by the hub's mutex.
type history struct {
	entries []historyEntry
	head    int // next write position
	count   int
}

type historyEntry struct {
	seq  uint64
	data []byte
}

func newHistory(capacity int) *history {
	return &history{entries: make([]historyEntry, capacity)}
}

// add records the message broadcast with seq. Sequences must increase.
func (h *history) add(seq uint64, data []byte) {
	if len(h.entries) == 0 {
		return
	}
	h.entries[h.head] = historyEntry{seq: seq, data: data}
	h.head = (h.head + 1) % len(h.entries)
	if h.count < len(h.entries) {
		h.count++
	}
}

// since returns the messages for sequences (after, upto] in order, or
// false if any of them has been overwritten or was never recorded.
func (h *history) since(after, upto uint64) ([][]byte, bool) {
	if upto <= after {
		return nil, true
	}
	out := make([][]byte, 0, upto-after)
	for i := 0; i < h.count; i++ {
		e := h.entries[(h.head-h.count+i+len(h.entries))%len(h.entries)]
		if e.seq <= after || e.seq > upto {
			continue
		}
		if e.seq != after+uint64(len(out))+1 {
			return nil, false
		}
		out = append(out, e.data)
	}
	if uint64(len(out)) != upto-after {
		return nil, false
	}
	return out, true
}
