package filter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/inboxd/inboxd/internal/mail"
)

// DateLayout is the wire format for date criterion values.
const DateLayout = "2006-01-02"

// criterionJSON is the wire shape of a criterion: {field, operator, value}.
type criterionJSON struct {
	Field    string          `json:"field"`
	Operator string          `json:"operator,omitempty"`
	Value    json.RawMessage `json:"value,omitempty"`
}

// Query is an ordered list of criteria combined with logical AND.
type Query struct {
	Criteria []Criterion `json:"criteria"`
}

// UnmarshalJSON decodes the wire form of a criterion. The value is typed by
// the field: strings for text fields, booleans for flag fields, a category
// name for category and a 2006-01-02 date for date. Values that are missing,
// null or of the wrong shape mark the criterion as always satisfied instead
// of failing the whole query.
func (c *Criterion) UnmarshalJSON(data []byte) error {
	var w criterionJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*c = Criterion{Field: Field(w.Field), Operator: Operator(w.Operator)}

	if len(w.Value) == 0 || string(w.Value) == "null" {
		c.skip = true
		return nil
	}

	switch c.Field {
	case FieldFrom, FieldTo, FieldSubject, FieldBody:
		if err := json.Unmarshal(w.Value, &c.Text); err != nil {
			c.skip = true
		}
	case FieldHasAttachment, FieldIsStarred, FieldIsUnread:
		if err := json.Unmarshal(w.Value, &c.Flag); err != nil {
			c.skip = true
		}
	case FieldCategory:
		var s string
		if err := json.Unmarshal(w.Value, &s); err != nil {
			c.skip = true
			return nil
		}
		cat, err := mail.ParseCategory(s)
		if err != nil {
			c.skip = true
			return nil
		}
		c.Category = cat
	case FieldDate:
		var s string
		if err := json.Unmarshal(w.Value, &s); err != nil {
			c.skip = true
			return nil
		}
		ts, err := time.Parse(DateLayout, s)
		if err != nil {
			c.skip = true
			return nil
		}
		c.Date = ts
	default:
		c.skip = true
	}
	return nil
}

// MarshalJSON encodes the criterion back into the {field, operator, value}
// wire form.
func (c Criterion) MarshalJSON() ([]byte, error) {
	w := criterionJSON{Field: string(c.Field), Operator: string(c.Operator)}

	var (
		value any
		has   bool
	)
	switch c.Field {
	case FieldFrom, FieldTo, FieldSubject, FieldBody:
		value, has = c.Text, c.Text != ""
	case FieldHasAttachment, FieldIsStarred, FieldIsUnread:
		value, has = c.Flag, !c.skip
	case FieldCategory:
		value, has = string(c.Category), c.Category != ""
	case FieldDate:
		value, has = c.Date.Format(DateLayout), !c.Date.IsZero()
	}

	if has && !c.skip {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode criterion value: %w", err)
		}
		w.Value = raw
	}
	return json.Marshal(w)
}
