package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []Record {
	return []Record{
		{ID: "a", Subject: "first", Read: false},
		{ID: "b", Subject: "second", Read: true, Starred: true},
		{ID: "c", Subject: "third", Read: true},
	}
}

func TestInboxPreservesOrder(t *testing.T) {
	in := NewInbox(testRecords())

	got := in.Records()
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
}

func TestInboxDropsDuplicateIDs(t *testing.T) {
	in := NewInbox([]Record{{ID: "a", Subject: "kept"}, {ID: "a", Subject: "dropped"}})

	assert.Equal(t, 1, in.Len())
	r, ok := in.Get("a")
	require.True(t, ok)
	assert.Equal(t, "kept", r.Subject)
}

func TestInboxMutationLifecycle(t *testing.T) {
	in := NewInbox(testRecords())

	require.NoError(t, in.Begin("a"))
	r, _ := in.Get("a")
	assert.Equal(t, StatePending, r.SyncState)

	// A second mutation on the same record must wait for the first.
	err := in.Begin("a")
	assert.ErrorContains(t, err, "already has a mutation in flight")

	require.NoError(t, in.Complete("a", func(r *Record) { r.Read = true }))
	r, _ = in.Get("a")
	assert.Equal(t, StateSynced, r.SyncState)
	assert.True(t, r.Read)

	// A new mutation is allowed once the previous one completed.
	require.NoError(t, in.Begin("a"))
	require.NoError(t, in.Fail("a"))
	r, _ = in.Get("a")
	assert.Equal(t, StateFailed, r.SyncState)

	// Failed records accept another attempt.
	assert.NoError(t, in.Begin("a"))
}

func TestInboxMutationUnknownID(t *testing.T) {
	in := NewInbox(testRecords())

	assert.Error(t, in.Begin("nope"))
	assert.Error(t, in.Complete("nope", nil))
	assert.Error(t, in.Fail("nope"))
}

func TestInboxRemove(t *testing.T) {
	in := NewInbox(testRecords())

	assert.True(t, in.Remove("b"))
	assert.False(t, in.Remove("b"))
	assert.Equal(t, 2, in.Len())

	// Index stays consistent after compaction.
	r, ok := in.Get("c")
	require.True(t, ok)
	assert.Equal(t, "third", r.Subject)
	got := in.Records()
	assert.Equal(t, []string{"a", "c"}, []string{got[0].ID, got[1].ID})
}

func TestInboxRecordsReturnsCopy(t *testing.T) {
	in := NewInbox(testRecords())

	got := in.Records()
	got[0].Subject = "mutated"

	fresh, _ := in.Get("a")
	assert.Equal(t, "first", fresh.Subject)
}
