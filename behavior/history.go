package behavior

import "time"

// DefaultHistorySize bounds the transition history unless overridden with
// WithHistorySize.
const DefaultHistorySize = 10

// Record is one entry in a machine's transition history. CameFrom is empty
// for the implicit entry performed at construction and after Reset.
type Record struct {
	State     StateID
	EnteredAt time.Time
	CameFrom  StateID
}

// historyRing is a fixed-capacity FIFO of Records. When full, a push evicts
// the oldest entry in place rather than growing the backing slice.
type historyRing struct {
	buf   []Record
	head  int
	count int
}

func newHistoryRing(capacity int) *historyRing {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &historyRing{buf: make([]Record, capacity)}
}

func (h *historyRing) push(r Record) {
	idx := (h.head + h.count) % len(h.buf)
	h.buf[idx] = r
	if h.count < len(h.buf) {
		h.count++
		return
	}
	h.head = (h.head + 1) % len(h.buf)
}

func (h *historyRing) clear() {
	h.head = 0
	h.count = 0
}

// snapshot returns the records oldest-first in a freshly allocated slice.
func (h *historyRing) snapshot() []Record {
	out := make([]Record, 0, h.count)
	for i := 0; i < h.count; i++ {
		out = append(out, h.buf[(h.head+i)%len(h.buf)])
	}
	return out
}
