package planning

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/trainer-planning-api/internal/models"
	"github.com/noah-isme/trainer-planning-api/pkg/calendar"
	appErrors "github.com/noah-isme/trainer-planning-api/pkg/errors"
)

// memStore is an in-memory Store enforcing (subject_id, date) uniqueness.
type memStore struct {
	mu        sync.Mutex
	trainers  []models.Trainer
	entries   []models.AvailabilityEntry
	seq       int
	listCalls int
	bulkCalls [][]models.AvailabilityEntry
	creates   int
	updates   int
	deletes   int

	listErr   error
	createErr error
	bulkErr   error
}

func (s *memStore) ListTrainers(ctx context.Context) ([]models.Trainer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]models.Trainer, len(s.trainers))
	copy(out, s.trainers)
	return out, nil
}

func (s *memStore) ListAvailability(ctx context.Context, from, to time.Time, subjectIDs []string) ([]models.AvailabilityEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	wanted := make(map[string]bool, len(subjectIDs))
	for _, id := range subjectIDs {
		wanted[id] = true
	}
	var out []models.AvailabilityEntry
	for _, e := range s.entries {
		if !calendar.Between(e.Date, from, to) {
			continue
		}
		if len(wanted) > 0 && !wanted[e.SubjectID] {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *memStore) find(subjectID string, day time.Time) int {
	for i, e := range s.entries {
		if e.SubjectID == subjectID && calendar.Same(e.Date, day) {
			return i
		}
	}
	return -1
}

func (s *memStore) insert(entry models.AvailabilityEntry) models.AvailabilityEntry {
	s.seq++
	entry.ID = fmt.Sprintf("entry-%d", s.seq)
	entry.Date = calendar.Day(entry.Date)
	s.entries = append(s.entries, entry)
	return entry
}

func (s *memStore) CreateAvailability(ctx context.Context, entry models.AvailabilityEntry) (*models.AvailabilityEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.find(entry.SubjectID, entry.Date) >= 0 {
		return nil, appErrors.Clone(appErrors.ErrConflict, "availability already recorded for this date")
	}
	stored := s.insert(entry)
	return &stored, nil
}

func (s *memStore) UpdateAvailability(ctx context.Context, id string, fields models.AvailabilityUpdate) (*models.AvailabilityEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].Status = fields.Status
			s.entries[i].Period = fields.Period
			s.entries[i].Notes = fields.Notes
			cp := s.entries[i]
			return &cp, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "availability not found")
}

func (s *memStore) DeleteAvailability(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "availability not found")
}

func (s *memStore) BulkCreateAvailability(ctx context.Context, entries []models.AvailabilityEntry) (*models.BulkCreateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bulkCalls = append(s.bulkCalls, entries)
	if s.bulkErr != nil {
		return nil, s.bulkErr
	}
	result := &models.BulkCreateResult{}
	for _, entry := range entries {
		if s.find(entry.SubjectID, entry.Date) >= 0 {
			result.Rejected = append(result.Rejected, models.BulkRejection{Date: entry.Date, Reason: "already recorded"})
			continue
		}
		result.Created = append(result.Created, s.insert(entry))
	}
	return result, nil
}

func (s *memStore) seed(subjectID, day string, status models.AvailabilityStatus) {
	d, _ := calendar.ParseKey(day)
	s.insert(models.AvailabilityEntry{SubjectID: subjectID, Date: d, Status: status, Period: models.PeriodFullDay})
}

func d(t *testing.T, raw string) time.Time {
	t.Helper()
	day, err := calendar.ParseKey(raw)
	require.NoError(t, err)
	return day
}

func keys(days []time.Time) []string {
	out := make([]string, len(days))
	for i, day := range days {
		out[i] = calendar.Key(day)
	}
	return out
}

func strPtr(v string) *string { return &v }

// trainerX has a linked account; trainerY falls back to its catalog id.
func newFixtureStore() *memStore {
	return &memStore{trainers: []models.Trainer{
		{ID: "trainer-x", FullName: "Xavier", UserID: strPtr("user-x"), Active: true},
		{ID: "trainer-old", FullName: "Retired", Active: false},
		{ID: "trainer-y", FullName: "Yasmin", Active: true},
	}}
}
