package mail

import "fmt"

// Category is the inbox tab a message is sorted into.
type Category string

const (
	CategoryPrimary    Category = "primary"
	CategorySocial     Category = "social"
	CategoryPromotions Category = "promotions"
	CategoryUpdates    Category = "updates"
	CategoryForums     Category = "forums"
)

// Categories lists all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryPrimary,
		CategorySocial,
		CategoryPromotions,
		CategoryUpdates,
		CategoryForums,
	}
}

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPrimary, CategorySocial, CategoryPromotions, CategoryUpdates, CategoryForums:
		return true
	}
	return false
}

// ParseCategory converts a string to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// categoryScan maps the mutually exclusive provider category markers to
// categories. The scan order is fixed; the first marker present wins even
// when a message carries several.
var categoryScan = []struct {
	label    Label
	category Category
}{
	{LabelCategorySocial, CategorySocial},
	{LabelCategoryPromotions, CategoryPromotions},
	{LabelCategoryUpdates, CategoryUpdates},
	{LabelCategoryForums, CategoryForums},
}

// CategoryFromLabels derives the category from a provider label set.
// Absence of every category marker means primary.
func CategoryFromLabels(labels LabelSet) Category {
	for _, s := range categoryScan {
		if labels.Has(s.label) {
			return s.category
		}
	}
	return CategoryPrimary
}
