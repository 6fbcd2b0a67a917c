// Package mail defines the canonical representation of a message and the
// in-memory collections built on top of it.
//
// A Record is produced once by normalization (see the gmail package) and is
// immutable apart from the read/starred flags, which the caller updates
// optimistically after a successful mutation call. The provider's label bag
// is modeled as a typed LabelSet, and the five inbox categories as a closed
// Category enumeration.
//
// Inbox is the per-session collection: it keeps fetch order, answers id
// lookups and tracks a small sync state machine per record so that the gap
// between issuing a mutation and the provider confirming it is explicit.
package mail
