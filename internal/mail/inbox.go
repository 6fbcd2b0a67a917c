package mail

import (
	"fmt"
	"sync"
)

// Inbox holds the records fetched for one session and applies optimistic
// mutations to them. The provider is never re-fetched after a mutation; the
// caller updates the local copy and the per-record sync state records whether
// that update has been confirmed.
type Inbox struct {
	mu      sync.Mutex
	records []Record
	index   map[string]int
}

// NewInbox builds an Inbox over a fetched record set, preserving order.
// Records keep the position of their first occurrence; duplicate ids are
// dropped so lookups stay unambiguous.
func NewInbox(records []Record) *Inbox {
	in := &Inbox{index: make(map[string]int, len(records))}
	for _, r := range records {
		if _, dup := in.index[r.ID]; dup {
			continue
		}
		in.index[r.ID] = len(in.records)
		in.records = append(in.records, r)
	}
	return in
}

// Records returns a copy of the current record set in fetch order.
func (in *Inbox) Records() []Record {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make([]Record, len(in.records))
	copy(out, in.records)
	return out
}

// Get returns the record with the given id.
func (in *Inbox) Get(id string) (Record, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	i, ok := in.index[id]
	if !ok {
		return Record{}, false
	}
	return in.records[i], true
}

// Len returns the number of records.
func (in *Inbox) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.records)
}

// Begin marks a record as having a mutation in flight. A second mutation on
// the same record while one is pending is rejected, which surfaces the
// interleaved-toggle race instead of letting the last response win silently.
func (in *Inbox) Begin(id string) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	i, ok := in.index[id]
	if !ok {
		return fmt.Errorf("no such message %q", id)
	}
	if in.records[i].SyncState == StatePending {
		return fmt.Errorf("message %q already has a mutation in flight", id)
	}
	in.records[i].SyncState = StatePending
	return nil
}

// Complete applies the optimistic update for a confirmed mutation and moves
// the record back to synced. The apply func sees the stored record.
func (in *Inbox) Complete(id string, apply func(*Record)) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	i, ok := in.index[id]
	if !ok {
		return fmt.Errorf("no such message %q", id)
	}
	if apply != nil {
		apply(&in.records[i])
	}
	in.records[i].SyncState = StateSynced
	return nil
}

// Fail marks a pending mutation as rejected; the local copy is left as it
// was and stays suspect until the next fetch replaces it.
func (in *Inbox) Fail(id string) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	i, ok := in.index[id]
	if !ok {
		return fmt.Errorf("no such message %q", id)
	}
	in.records[i].SyncState = StateFailed
	return nil
}

// Remove discards a record, e.g. after a successful trash call.
func (in *Inbox) Remove(id string) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	i, ok := in.index[id]
	if !ok {
		return false
	}
	in.records = append(in.records[:i], in.records[i+1:]...)
	delete(in.index, id)
	for j := i; j < len(in.records); j++ {
		in.index[in.records[j].ID] = j
	}
	return true
}
