package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inboxd/inboxd/internal/mail"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Criterion
		wantErr string
	}{
		{
			name: "text field defaults to contains",
			in:   "from:alice",
			want: Criterion{Field: FieldFrom, Operator: OpContains, Text: "alice"},
		},
		{
			name: "explicit operator",
			in:   "subject:starts_with:Re",
			want: Criterion{Field: FieldSubject, Operator: OpStartsWith, Text: "Re"},
		},
		{
			name: "boolean field",
			in:   "is_starred:true",
			want: Criterion{Field: FieldIsStarred, Flag: true},
		},
		{
			name: "category field",
			in:   "category:Promotions",
			want: Criterion{Field: FieldCategory, Category: mail.CategoryPromotions},
		},
		{
			name: "date defaults to same day",
			in:   "date:2023-05-11",
			want: Criterion{Field: FieldDate, Operator: OpEquals, Date: time.Date(2023, 5, 11, 0, 0, 0, 0, time.UTC)},
		},
		{
			name: "date after alias",
			in:   "date:after:2023-05-10",
			want: Criterion{Field: FieldDate, Operator: OpContains, Date: time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)},
		},
		{
			name: "date before alias",
			in:   "date:before:2023-05-10",
			want: Criterion{Field: FieldDate, Operator: OpNotContains, Date: time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)},
		},
		{
			name: "body value containing a colon",
			in:   "body:contains:deadline: friday",
			want: Criterion{Field: FieldBody, Operator: OpContains, Text: "deadline: friday"},
		},
		{name: "missing value", in: "subject", wantErr: "want field:value"},
		{name: "unknown field", in: "size:100", wantErr: "unknown field"},
		{name: "unknown operator", in: "from:matches:alice", wantErr: "unknown operator"},
		{name: "bad boolean", in: "is_unread:maybe", wantErr: "wants true or false"},
		{name: "bad category", in: "category:spam", wantErr: "unknown category"},
		{name: "bad date", in: "date:May 11", wantErr: "date wants"},
		{name: "operator on boolean field", in: "is_starred:equals:true", wantErr: "takes no operator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAll(t *testing.T) {
	criteria, err := ParseAll([]string{"from:alice", "is_unread:true"})
	require.NoError(t, err)
	assert.Len(t, criteria, 2)

	_, err = ParseAll([]string{"from:alice", "broken"})
	assert.Error(t, err)
}
