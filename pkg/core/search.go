package core

// Query narrows a note set. The zero Query matches everything.
type Query struct {
	Text      string
	InContent bool   // match Text against content only
	Tag       string // exact tag filter
	Archived  *bool  // nil matches both states
}

// Match reports whether n satisfies every criterion of q.
func (q Query) Match(n Note) bool {
	if q.Tag != "" && !n.HasTag(q.Tag) {
		return false
	}
	if q.Archived != nil && n.IsArchived != *q.Archived {
		return false
	}
	if q.Text == "" {
		return true
	}
	if q.InContent {
		return n.MatchesContent(q.Text)
	}
	return n.MatchesSearch(q.Text)
}

// Filter returns the notes matching q, preserving their order.
// It is a linear scan; there is no index.
func Filter(notes []Note, q Query) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if q.Match(n) {
			out = append(out, n)
		}
	}
	return out
}

// truncate returns at most limit notes. A zero limit means no limit.
func truncate(notes []Note, limit int) []Note {
	if limit > 0 && len(notes) > limit {
		return notes[:limit]
	}
	return notes
}
