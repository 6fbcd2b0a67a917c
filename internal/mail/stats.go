package mail

// CategoryStat aggregates one category of a record set.
type CategoryStat struct {
	Category       Category `json:"category"`
	Total          int      `json:"total"`
	Unread         int      `json:"unread"`
	Starred        int      `json:"starred"`
	WithAttachment int      `json:"withAttachment"`
	// ReadRate is the percentage of read messages, 0 when the category is empty.
	ReadRate float64 `json:"readRate"`
}

// Stats computes per-category analytics over a record set. Every category is
// present in the result, in display order, even when empty.
func Stats(records []Record) []CategoryStat {
	byCat := make(map[Category]*CategoryStat, 5)
	out := make([]CategoryStat, 0, 5)
	for _, c := range Categories() {
		byCat[c] = &CategoryStat{Category: c}
	}

	for _, r := range records {
		s, ok := byCat[r.Category]
		if !ok {
			// Category invariant violated upstream; count it as primary
			// rather than dropping the record.
			s = byCat[CategoryPrimary]
		}
		s.Total++
		if !r.Read {
			s.Unread++
		}
		if r.Starred {
			s.Starred++
		}
		if r.HasAttachment {
			s.WithAttachment++
		}
	}

	for _, c := range Categories() {
		s := byCat[c]
		if s.Total > 0 {
			s.ReadRate = float64(s.Total-s.Unread) / float64(s.Total) * 100
		}
		out = append(out, *s)
	}
	return out
}
