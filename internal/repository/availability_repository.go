package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/trainer-planning-api/internal/models"
	"github.com/noah-isme/trainer-planning-api/pkg/calendar"
	appErrors "github.com/noah-isme/trainer-planning-api/pkg/errors"
)

const (
	availabilityColumns = "id, subject_id, date, status, period, notes, created_at, updated_at"
	uniqueViolation     = "23505"
)

// AvailabilityRepository persists day-level trainer availability.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository constructs the repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// List returns entries within the inclusive date window, optionally restricted to subjects.
func (r *AvailabilityRepository) List(ctx context.Context, filter models.AvailabilityFilter) ([]models.AvailabilityEntry, error) {
	conditions := []string{"date >= $1", "date <= $2"}
	args := []interface{}{calendar.Day(filter.DateFrom), calendar.Day(filter.DateTo)}
	if len(filter.SubjectIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf("subject_id = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(filter.SubjectIDs))
	}

	query := fmt.Sprintf("SELECT %s FROM trainer_availability WHERE %s ORDER BY subject_id ASC, date ASC",
		availabilityColumns, strings.Join(conditions, " AND "))
	var entries []models.AvailabilityEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	for i := range entries {
		entries[i].Date = calendar.Day(entries[i].Date)
	}
	return entries, nil
}

// FindByID fetches a single entry.
func (r *AvailabilityRepository) FindByID(ctx context.Context, id string) (*models.AvailabilityEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM trainer_availability WHERE id = $1", availabilityColumns)
	var entry models.AvailabilityEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	entry.Date = calendar.Day(entry.Date)
	return &entry, nil
}

// Create inserts a new entry. An existing (subject_id, date) row yields a conflict error.
func (r *AvailabilityRepository) Create(ctx context.Context, entry *models.AvailabilityEntry) error {
	prepareEntry(entry, time.Now().UTC())

	const query = `INSERT INTO trainer_availability (id, subject_id, date, status, period, notes, created_at, updated_at)
		VALUES (:id, :subject_id, :date, :status, :period, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		if isUniqueViolation(err) {
			return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "availability already recorded for this date")
		}
		return fmt.Errorf("create availability: %w", err)
	}
	return nil
}

// Update stores the editable fields of an existing entry.
func (r *AvailabilityRepository) Update(ctx context.Context, entry *models.AvailabilityEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	const query = `UPDATE trainer_availability SET status = :status, period = :period, notes = :notes, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	return requireAffected(res)
}

// Delete removes an entry.
func (r *AvailabilityRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trainer_availability WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}
	return requireAffected(res)
}

// BulkCreate inserts entries inside one transaction. Rows whose (subject_id, date)
// already exists are skipped by the store and reported as rejections.
func (r *AvailabilityRepository) BulkCreate(ctx context.Context, entries []models.AvailabilityEntry) (*models.BulkCreateResult, error) {
	result := &models.BulkCreateResult{Created: []models.AvailabilityEntry{}, Rejected: []models.BulkRejection{}}
	if len(entries) == 0 {
		return result, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin bulk availability: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	query := fmt.Sprintf(`INSERT INTO trainer_availability (id, subject_id, date, status, period, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (subject_id, date) DO NOTHING
RETURNING %s`, availabilityColumns)

	now := time.Now().UTC()
	for i := range entries {
		entry := entries[i]
		prepareEntry(&entry, now)

		var stored models.AvailabilityEntry
		err := tx.GetContext(ctx, &stored, query,
			entry.ID, entry.SubjectID, entry.Date, entry.Status, entry.Period, entry.Notes, entry.CreatedAt, entry.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			result.Rejected = append(result.Rejected, models.BulkRejection{Date: entry.Date, Reason: "already recorded"})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("bulk insert availability %s: %w", calendar.Key(entry.Date), err)
		}
		stored.Date = calendar.Day(stored.Date)
		result.Created = append(result.Created, stored)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit bulk availability: %w", err)
	}
	return result, nil
}

func prepareEntry(entry *models.AvailabilityEntry, now time.Time) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.Date = calendar.Day(entry.Date)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
