// Package planning holds the trainer availability planning grid: the lookup
// index, the drag-select state machine, gap resolution and the matrix and
// weekly controllers that drive them against a Store.
package planning

import (
	"context"
	"time"

	"github.com/noah-isme/trainer-planning-api/internal/models"
)

// Store is the availability data access layer consumed by the planning views.
type Store interface {
	ListTrainers(ctx context.Context) ([]models.Trainer, error)
	ListAvailability(ctx context.Context, from, to time.Time, subjectIDs []string) ([]models.AvailabilityEntry, error)
	CreateAvailability(ctx context.Context, entry models.AvailabilityEntry) (*models.AvailabilityEntry, error)
	UpdateAvailability(ctx context.Context, id string, fields models.AvailabilityUpdate) (*models.AvailabilityEntry, error)
	DeleteAvailability(ctx context.Context, id string) error
	BulkCreateAvailability(ctx context.Context, entries []models.AvailabilityEntry) (*models.BulkCreateResult, error)
}
