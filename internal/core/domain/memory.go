package domain

// InsightCategory classifies a long-term client memory entry.
type InsightCategory string

// Insight categories.
const (
	InsightPreference InsightCategory = "preference"
	InsightHistory    InsightCategory = "history"
	InsightNote       InsightCategory = "note"
	InsightMedical    InsightCategory = "medical"
)

// ClientMemory holds a client's long-term notes grouped by category.
type ClientMemory struct {
	Preferences []string `json:"preferences"`
	History     []string `json:"history"`
	Notes       []string `json:"notes"`
	Medical     []string `json:"medical"`
}

// Empty reports whether no memory entries are present.
func (m ClientMemory) Empty() bool {
	return len(m.Preferences) == 0 && len(m.History) == 0 &&
		len(m.Notes) == 0 && len(m.Medical) == 0
}
