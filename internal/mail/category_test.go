package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFromLabels(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   Category
	}{
		{
			name:   "no category markers defaults to primary",
			labels: []string{"INBOX", "UNREAD"},
			want:   CategoryPrimary,
		},
		{
			name:   "social marker",
			labels: []string{"INBOX", "CATEGORY_SOCIAL"},
			want:   CategorySocial,
		},
		{
			name:   "promotions marker",
			labels: []string{"CATEGORY_PROMOTIONS"},
			want:   CategoryPromotions,
		},
		{
			name:   "updates marker",
			labels: []string{"UNREAD", "CATEGORY_UPDATES"},
			want:   CategoryUpdates,
		},
		{
			name:   "forums marker",
			labels: []string{"CATEGORY_FORUMS"},
			want:   CategoryForums,
		},
		{
			name:   "multiple markers resolve by scan order",
			labels: []string{"CATEGORY_FORUMS", "CATEGORY_SOCIAL"},
			want:   CategorySocial,
		},
		{
			name:   "promotions beats updates and forums",
			labels: []string{"CATEGORY_UPDATES", "CATEGORY_PROMOTIONS", "CATEGORY_FORUMS"},
			want:   CategoryPromotions,
		},
		{
			name:   "empty label set",
			labels: nil,
			want:   CategoryPrimary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategoryFromLabels(NewLabelSet(tt.labels))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		assert.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCategory("spam")
	assert.Error(t, err)
	_, err = ParseCategory("")
	assert.Error(t, err)
}

func TestLabelSet(t *testing.T) {
	set := NewLabelSet([]string{"INBOX", "STARRED"})
	assert.True(t, set.Has(LabelInbox))
	assert.True(t, set.Has(LabelStarred))
	assert.False(t, set.Has(LabelUnread))
	assert.False(t, NewLabelSet(nil).Has(LabelInbox))
}
