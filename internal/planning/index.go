package planning

import (
	"time"

	"github.com/noah-isme/trainer-planning-api/internal/models"
	"github.com/noah-isme/trainer-planning-api/pkg/calendar"
)

// Index maps subject ID and day key to the entry recorded for that day.
// It is built once from a fetched window and never mutated afterwards.
type Index struct {
	bySubject map[string]map[string]models.AvailabilityEntry
	size      int
}

// NewIndex builds the lookup for a window of entries.
func NewIndex(entries []models.AvailabilityEntry) *Index {
	idx := &Index{bySubject: make(map[string]map[string]models.AvailabilityEntry)}
	for _, entry := range entries {
		days, ok := idx.bySubject[entry.SubjectID]
		if !ok {
			days = make(map[string]models.AvailabilityEntry)
			idx.bySubject[entry.SubjectID] = days
		}
		key := entry.DateKey()
		if _, exists := days[key]; exists {
			continue
		}
		days[key] = entry
		idx.size++
	}
	return idx
}

// Lookup returns the entry recorded for subjectID on day.
func (i *Index) Lookup(subjectID string, day time.Time) (models.AvailabilityEntry, bool) {
	if i == nil {
		return models.AvailabilityEntry{}, false
	}
	entry, ok := i.bySubject[subjectID][calendar.Key(day)]
	return entry, ok
}

// Has reports whether subjectID already has data on day.
func (i *Index) Has(subjectID string, day time.Time) bool {
	_, ok := i.Lookup(subjectID, day)
	return ok
}

// ForSubject returns a copy of the entries recorded for subjectID keyed by day.
func (i *Index) ForSubject(subjectID string) map[string]models.AvailabilityEntry {
	out := make(map[string]models.AvailabilityEntry)
	if i == nil {
		return out
	}
	for key, entry := range i.bySubject[subjectID] {
		out[key] = entry
	}
	return out
}

// Len is the number of indexed entries.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return i.size
}

// Summary counts a row's days per status.
type Summary struct {
	Available   int `json:"available"`
	Partial     int `json:"partial"`
	Unavailable int `json:"unavailable"`
	Empty       int `json:"empty"`
}

// Summary tallies subjectID's statuses over days.
func (i *Index) Summary(subjectID string, days []time.Time) Summary {
	var s Summary
	for _, day := range days {
		entry, ok := i.Lookup(subjectID, day)
		if !ok {
			s.Empty++
			continue
		}
		switch entry.Status {
		case models.StatusAvailable:
			s.Available++
		case models.StatusPartial:
			s.Partial++
		case models.StatusUnavailable:
			s.Unavailable++
		}
	}
	return s
}
