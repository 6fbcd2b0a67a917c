package mail

// Label is a provider-assigned marker on a message. The provider encodes
// read state, starring, categories and attachment presence as labels.
type Label string

const (
	LabelInbox              Label = "INBOX"
	LabelUnread             Label = "UNREAD"
	LabelStarred            Label = "STARRED"
	LabelTrash              Label = "TRASH"
	LabelHasAttachment      Label = "HAS_ATTACHMENT"
	LabelCategorySocial     Label = "CATEGORY_SOCIAL"
	LabelCategoryPromotions Label = "CATEGORY_PROMOTIONS"
	LabelCategoryUpdates    Label = "CATEGORY_UPDATES"
	LabelCategoryForums     Label = "CATEGORY_FORUMS"
)

// LabelSet holds the labels attached to one message and answers membership
// queries. It replaces raw string-slice scans with typed lookups.
type LabelSet map[Label]struct{}

// NewLabelSet builds a LabelSet from the provider's raw label ids.
func NewLabelSet(ids []string) LabelSet {
	set := make(LabelSet, len(ids))
	for _, id := range ids {
		set[Label(id)] = struct{}{}
	}
	return set
}

// Has reports whether the label is present.
func (s LabelSet) Has(l Label) bool {
	_, ok := s[l]
	return ok
}
