package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/inboxd/inboxd/internal/mail"
)

// Parse converts the CLI form of a criterion into a Criterion.
//
// Accepted shapes:
//
//	field:value               text fields default to contains
//	field:operator:value      any field with an explicit operator
//
// Date operators additionally accept the aliases "on" (equals), "after"
// (on or after) and "before" (on or before).
func Parse(s string) (Criterion, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return Criterion{}, fmt.Errorf("criterion %q: want field:value or field:operator:value", s)
	}

	field := Field(strings.ToLower(strings.TrimSpace(parts[0])))
	var op Operator
	var value string
	if len(parts) == 3 {
		op = Operator(strings.ToLower(strings.TrimSpace(parts[1])))
		value = parts[2]
	} else {
		value = parts[1]
	}

	c := Criterion{Field: field, Operator: op}

	switch field {
	case FieldFrom, FieldTo, FieldSubject, FieldBody:
		if c.Operator == "" {
			c.Operator = OpContains
		}
		if !validTextOp(c.Operator) {
			return Criterion{}, fmt.Errorf("criterion %q: unknown operator %q", s, op)
		}
		c.Text = value

	case FieldHasAttachment, FieldIsStarred, FieldIsUnread:
		if op != "" {
			return Criterion{}, fmt.Errorf("criterion %q: %s takes no operator", s, field)
		}
		flag, err := strconv.ParseBool(value)
		if err != nil {
			return Criterion{}, fmt.Errorf("criterion %q: %s wants true or false", s, field)
		}
		c.Flag = flag

	case FieldCategory:
		if op != "" {
			return Criterion{}, fmt.Errorf("criterion %q: category takes no operator", s)
		}
		cat, err := mail.ParseCategory(strings.ToLower(value))
		if err != nil {
			return Criterion{}, fmt.Errorf("criterion %q: %w", s, err)
		}
		c.Category = cat

	case FieldDate:
		switch c.Operator {
		case "", "on":
			c.Operator = OpEquals
		case "after":
			c.Operator = OpContains
		case "before":
			c.Operator = OpNotContains
		case OpEquals, OpContains, OpNotContains:
		default:
			return Criterion{}, fmt.Errorf("criterion %q: unknown date operator %q", s, op)
		}
		ts, err := time.Parse(DateLayout, strings.TrimSpace(value))
		if err != nil {
			return Criterion{}, fmt.Errorf("criterion %q: date wants %s", s, DateLayout)
		}
		c.Date = ts

	default:
		return Criterion{}, fmt.Errorf("criterion %q: unknown field %q", s, field)
	}

	return c, nil
}

// ParseAll converts a list of CLI criteria, failing on the first bad one.
func ParseAll(specs []string) ([]Criterion, error) {
	criteria := make([]Criterion, 0, len(specs))
	for _, s := range specs {
		c, err := Parse(s)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, c)
	}
	return criteria, nil
}

func validTextOp(op Operator) bool {
	switch op {
	case OpContains, OpEquals, OpNotContains, OpStartsWith, OpEndsWith:
		return true
	}
	return false
}
