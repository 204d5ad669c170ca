package planning

import (
	"strings"
	"time"

	"github.com/noah-isme/trainer-planning-api/internal/models"
	"github.com/noah-isme/trainer-planning-api/pkg/calendar"
)

// ResolveGaps lists the days of r that have no entry for its owner in idx.
func ResolveGaps(idx *Index, r Range) []time.Time {
	days := r.Days()
	gaps := make([]time.Time, 0, len(days))
	for _, day := range days {
		if idx.Has(r.Owner, day) {
			continue
		}
		gaps = append(gaps, day)
	}
	return gaps
}

// BulkDraft is the editor opened for a resolved range. Status, period and
// notes apply uniformly to every date.
type BulkDraft struct {
	TrainerID   string                    `json:"trainer_id"`
	TrainerName string                    `json:"trainer_name"`
	SubjectID   string                    `json:"subject_id"`
	Dates       []time.Time               `json:"dates"`
	Status      models.AvailabilityStatus `json:"status"`
	Period      models.AvailabilityPeriod `json:"period"`
	Notes       string                    `json:"notes"`
}

// NewBulkDraft opens a draft with the default taxonomy values.
func NewBulkDraft(trainer models.Trainer, dates []time.Time) *BulkDraft {
	copied := make([]time.Time, len(dates))
	copy(copied, dates)
	return &BulkDraft{
		TrainerID:   trainer.ID,
		TrainerName: trainer.FullName,
		SubjectID:   trainer.SubjectID(),
		Dates:       copied,
		Status:      models.StatusAvailable,
		Period:      models.PeriodFullDay,
	}
}

// First is the earliest date of the draft.
func (d *BulkDraft) First() time.Time {
	if len(d.Dates) == 0 {
		return time.Time{}
	}
	return d.Dates[0]
}

// Last is the latest date of the draft.
func (d *BulkDraft) Last() time.Time {
	if len(d.Dates) == 0 {
		return time.Time{}
	}
	return d.Dates[len(d.Dates)-1]
}

// Label shows the single date or the first and last dates.
func (d *BulkDraft) Label() string {
	switch len(d.Dates) {
	case 0:
		return ""
	case 1:
		return calendar.Key(d.First())
	}
	return calendar.Key(d.First()) + " to " + calendar.Key(d.Last())
}

// Entries expands the draft to one payload per date.
func (d *BulkDraft) Entries() []models.AvailabilityEntry {
	var notes *string
	if trimmed := strings.TrimSpace(d.Notes); trimmed != "" {
		notes = &trimmed
	}
	entries := make([]models.AvailabilityEntry, 0, len(d.Dates))
	for _, day := range d.Dates {
		entries = append(entries, models.AvailabilityEntry{
			SubjectID: d.SubjectID,
			Date:      calendar.Day(day),
			Status:    d.Status,
			Period:    d.Period,
			Notes:     notes,
		})
	}
	return entries
}
