package mail

import (
	"encoding/json"
	"fmt"
	"time"
)

// Display formats for the Date and Time fields of a Record.
const (
	DateFormat = "Jan 2, 2006"
	TimeFormat = "3:04 PM"
)

// SyncState tracks whether a record's local read/starred/trashed state has
// been confirmed by the provider. The provider is the source of truth; local
// mutations are optimistic and the state machine makes the window between
// issuing a mutation and hearing back explicit.
type SyncState int

const (
	// StateSynced means the record matches the last provider response.
	StateSynced SyncState = iota
	// StatePending means a mutation has been issued but not yet confirmed.
	StatePending
	// StateFailed means the last mutation was rejected or lost; the local
	// state may disagree with the provider until the next fetch.
	StateFailed
)

// String returns the state name for logging.
func (s SyncState) String() string {
	switch s {
	case StateSynced:
		return "synced"
	case StatePending:
		return "pending"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("SyncState(%d)", int(s))
	}
}

// MarshalJSON encodes the state as its name, which is what frontends
// render as a badge.
func (s SyncState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a state name.
func (s *SyncState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "synced", "":
		*s = StateSynced
	case "pending":
		*s = StatePending
	case "failed":
		*s = StateFailed
	default:
		return fmt.Errorf("unknown sync state %q", name)
	}
	return nil
}

// Attachment describes one attachment part of a message. Only metadata is
// kept; content stays with the provider.
type Attachment struct {
	Filename string `json:"name"`
	MimeType string `json:"type"`
	Size     int64  `json:"size"`
}

// Record is the canonical, provider-agnostic representation of one message.
// It is produced by normalization and only the Read, Starred and SyncState
// fields change afterwards, when the caller applies an optimistic mutation.
type Record struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId"`

	Sender      string `json:"sender"`
	SenderEmail string `json:"senderEmail"`
	Recipient   string `json:"recipient,omitempty"`

	Subject string `json:"subject"`
	Preview string `json:"preview"`
	Content string `json:"content"`

	// Time and Date are preformatted display strings; Timestamp carries the
	// raw parsed value for date-based filtering.
	Time      string    `json:"time"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`

	Read    bool   `json:"read"`
	Starred bool   `json:"starred"`
	Avatar  string `json:"avatar"`

	Category      Category     `json:"category"`
	HasAttachment bool         `json:"hasAttachment"`
	Attachments   []Attachment `json:"attachments,omitempty"`

	SyncState SyncState `json:"syncState"`
}

// ErrorRecord is the sentinel returned when a single message cannot be
// normalized, so one malformed message never aborts a batch fetch.
func ErrorRecord(id string) Record {
	return Record{
		ID:       id,
		Sender:   "Error",
		Subject:  "Could not load email",
		Preview:  "There was an error loading this email.",
		Read:     true,
		Avatar:   "ER",
		Category: CategoryPrimary,
	}
}

// IsError reports whether the record is the load-failure sentinel.
func (r Record) IsError() bool {
	return r.Sender == "Error" && r.Subject == "Could not load email"
}
