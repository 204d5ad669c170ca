package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/trainer-planning-api/internal/models"
)

func TestIndexLookupBySubjectAndDay(t *testing.T) {
	idx := NewIndex([]models.AvailabilityEntry{
		{ID: "a", SubjectID: "user-x", Date: d(t, "2024-03-06"), Status: models.StatusAvailable},
		{ID: "b", SubjectID: "trainer-y", Date: d(t, "2024-03-06"), Status: models.StatusUnavailable},
	})

	entry, ok := idx.Lookup("user-x", d(t, "2024-03-06").Add(17*time.Hour))
	assert.True(t, ok)
	assert.Equal(t, "a", entry.ID)
	assert.False(t, idx.Has("user-x", d(t, "2024-03-07")))
	assert.False(t, idx.Has("nobody", d(t, "2024-03-06")))
	assert.Equal(t, 2, idx.Len())
}

func TestIndexForSubjectReturnsCopy(t *testing.T) {
	idx := NewIndex([]models.AvailabilityEntry{{ID: "a", SubjectID: "user-x", Date: d(t, "2024-03-06")}})
	view := idx.ForSubject("user-x")
	delete(view, "2024-03-06")
	assert.True(t, idx.Has("user-x", d(t, "2024-03-06")))
}

func TestNilIndexIsEmpty(t *testing.T) {
	var idx *Index
	assert.False(t, idx.Has("user-x", d(t, "2024-03-06")))
	assert.Zero(t, idx.Len())
	assert.Empty(t, idx.ForSubject("user-x"))
}

func TestIndexSummary(t *testing.T) {
	idx := NewIndex([]models.AvailabilityEntry{
		{SubjectID: "user-x", Date: d(t, "2024-03-04"), Status: models.StatusAvailable},
		{SubjectID: "user-x", Date: d(t, "2024-03-05"), Status: models.StatusPartial},
		{SubjectID: "user-x", Date: d(t, "2024-03-06"), Status: models.StatusUnavailable},
	})
	days := []time.Time{d(t, "2024-03-04"), d(t, "2024-03-05"), d(t, "2024-03-06"), d(t, "2024-03-07")}
	assert.Equal(t, Summary{Available: 1, Partial: 1, Unavailable: 1, Empty: 1}, idx.Summary("user-x", days))
}
