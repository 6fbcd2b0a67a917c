package filter

import (
	"strings"
	"time"

	"github.com/inboxd/inboxd/internal/mail"
)

// Field names a record attribute a criterion applies to.
type Field string

const (
	FieldFrom          Field = "from"
	FieldTo            Field = "to"
	FieldSubject       Field = "subject"
	FieldBody          Field = "body"
	FieldHasAttachment Field = "has_attachment"
	FieldCategory      Field = "category"
	FieldDate          Field = "date"
	FieldIsStarred     Field = "is_starred"
	FieldIsUnread      Field = "is_unread"
)

// Operator is the comparison applied to text and date fields.
//
// For dates the text operators are reused: equals means the same calendar
// day, contains means on or after, not_contains means on or before. All
// three include the boundary day.
type Operator string

const (
	OpContains    Operator = "contains"
	OpEquals      Operator = "equals"
	OpNotContains Operator = "not_contains"
	OpStartsWith  Operator = "starts_with"
	OpEndsWith    Operator = "ends_with"
)

// Criterion is one field/operator/value triple. Exactly one of Text, Flag,
// Date or Category carries the value, depending on the field. A criterion
// whose value is unset is always satisfied rather than matching nothing.
type Criterion struct {
	Field    Field
	Operator Operator

	Text     string
	Flag     bool
	Date     time.Time
	Category mail.Category

	// skip marks a criterion whose wire value was null or unparseable;
	// such criteria are treated as always satisfied.
	skip bool
}

// Evaluate returns the subset of records matching every criterion, in the
// input order. An empty criteria list matches everything.
func Evaluate(records []mail.Record, criteria []Criterion) []mail.Record {
	if len(criteria) == 0 {
		out := make([]mail.Record, len(records))
		copy(out, records)
		return out
	}

	out := make([]mail.Record, 0, len(records))
	for _, r := range records {
		if matchesAll(r, criteria) {
			out = append(out, r)
		}
	}
	return out
}

func matchesAll(r mail.Record, criteria []Criterion) bool {
	for _, c := range criteria {
		if !matches(r, c) {
			return false
		}
	}
	return true
}

func matches(r mail.Record, c Criterion) bool {
	if c.skip {
		return true
	}

	switch c.Field {
	case FieldFrom:
		return matchText(r.Sender+r.SenderEmail, c.Operator, c.Text)
	case FieldTo:
		return matchText(r.Recipient, c.Operator, c.Text)
	case FieldSubject:
		return matchText(r.Subject, c.Operator, c.Text)
	case FieldBody:
		return matchText(r.Content, c.Operator, c.Text)
	case FieldHasAttachment:
		return r.HasAttachment == c.Flag
	case FieldIsStarred:
		return r.Starred == c.Flag
	case FieldIsUnread:
		return !r.Read == c.Flag
	case FieldCategory:
		if c.Category == "" {
			return true
		}
		return r.Category == c.Category
	case FieldDate:
		return matchDate(r.Timestamp, c.Operator, c.Date)
	default:
		// Unknown fields over-match rather than emptying the result.
		return true
	}
}

func matchText(text string, op Operator, value string) bool {
	if value == "" {
		return true
	}
	text = strings.ToLower(text)
	value = strings.ToLower(value)

	switch op {
	case OpContains:
		return strings.Contains(text, value)
	case OpEquals:
		return text == value
	case OpNotContains:
		return !strings.Contains(text, value)
	case OpStartsWith:
		return strings.HasPrefix(text, value)
	case OpEndsWith:
		return strings.HasSuffix(text, value)
	default:
		return true
	}
}

func matchDate(ts time.Time, op Operator, value time.Time) bool {
	if value.IsZero() {
		return true
	}
	day := civilDay(ts)
	want := civilDay(value)

	switch op {
	case OpEquals:
		return day.Equal(want)
	case OpContains:
		return !day.Before(want)
	case OpNotContains:
		return !day.After(want)
	default:
		return true
	}
}

// civilDay strips the time of day, comparing dates as the user sees them in
// the timestamp's own zone.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
