package reporting

import (
	"sync"
	"time"
)

// Entry is one completed gateway call.
type Entry struct {
	Timestamp       time.Time `json:"timestamp"`
	Action          string    `json:"action"`
	MerchantAccount string    `json:"merchantAccount"`
	Success         bool      `json:"success"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency,omitempty"`
	Authorization   string    `json:"authorization,omitempty"`
	Message         string    `json:"message,omitempty"`
	// Error is set when the call returned an error instead of a result.
	Error string `json:"error,omitempty"`
}

// Journal keeps the most recent entries in memory. It is safe for
// concurrent use.
//
// A bounded journal is a ring: once full, entries[next] is the oldest entry
// and is overwritten by the next Record.
type Journal struct {
	mu       sync.Mutex
	entries  []Entry
	next     int
	capacity int
	now      func() time.Time
}

// NewJournal returns a Journal holding at most capacity entries; older
// entries are dropped first. A capacity <= 0 means unbounded.
func NewJournal(capacity int) *Journal {
	return &Journal{capacity: capacity, now: time.Now}
}

// Record appends e, stamping it with the current time when unset.
func (j *Journal) Record(e Entry) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if e.Timestamp.IsZero() {
		e.Timestamp = j.now()
	}
	if j.capacity <= 0 || len(j.entries) < j.capacity {
		j.entries = append(j.entries, e)
		return
	}
	j.entries[j.next] = e
	j.next = (j.next + 1) % j.capacity
}

// Entries returns a copy of the recorded entries, oldest first.
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Entry, 0, len(j.entries))
	out = append(out, j.entries[j.next:]...)
	return append(out, j.entries[:j.next]...)
}

// Len returns the number of entries held.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}
