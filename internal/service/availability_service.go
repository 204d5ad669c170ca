package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/noah-isme/trainer-planning-api/internal/dto"
	"github.com/noah-isme/trainer-planning-api/internal/models"
	"github.com/noah-isme/trainer-planning-api/pkg/calendar"
	appErrors "github.com/noah-isme/trainer-planning-api/pkg/errors"
)

const availabilityCachePattern = "availability:*"

type availabilityRepository interface {
	List(ctx context.Context, filter models.AvailabilityFilter) ([]models.AvailabilityEntry, error)
	FindByID(ctx context.Context, id string) (*models.AvailabilityEntry, error)
	Create(ctx context.Context, entry *models.AvailabilityEntry) error
	Update(ctx context.Context, entry *models.AvailabilityEntry) error
	Delete(ctx context.Context, id string) error
	BulkCreate(ctx context.Context, entries []models.AvailabilityEntry) (*models.BulkCreateResult, error)
}

type trainerRepository interface {
	List(ctx context.Context, filter models.TrainerFilter) ([]models.Trainer, error)
	FindByID(ctx context.Context, id string) (*models.Trainer, error)
	FindByUserID(ctx context.Context, userID string) (*models.Trainer, error)
}

// AvailabilityServiceConfig tunes availability reads.
type AvailabilityServiceConfig struct {
	CacheTTL     time.Duration
	MaxRangeDays int
}

// AvailabilityService is the availability store: trainer catalog reads, window
// reads and the single and bulk write paths. Rows are keyed by Trainer.SubjectID.
type AvailabilityService struct {
	repo      availabilityRepository
	trainers  trainerRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       AvailabilityServiceConfig
	loads     singleflight.Group

	// generation bumps on every write. It is part of the cache and flight keys,
	// so a read that started before a write can neither be joined nor cached under
	// the key later reads use.
	generation atomic.Uint64
}

// NewAvailabilityService constructs the service. cache and metrics may be nil.
func NewAvailabilityService(repo availabilityRepository, trainers trainerRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg AvailabilityServiceConfig) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.MaxRangeDays <= 0 {
		cfg.MaxRangeDays = 62
	}
	return &AvailabilityService{
		repo:      repo,
		trainers:  trainers,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

// ListTrainers returns the whole trainer catalog in store order.
func (s *AvailabilityService) ListTrainers(ctx context.Context) ([]models.Trainer, error) {
	trainers, err := s.trainers.List(ctx, models.TrainerFilter{})
	if err != nil {
		return nil, storeError(err, "failed to load trainers")
	}
	return trainers, nil
}

// ListAvailability returns entries dated within [from, to], optionally only for subjectIDs.
func (s *AvailabilityService) ListAvailability(ctx context.Context, from, to time.Time, subjectIDs []string) ([]models.AvailabilityEntry, error) {
	if from.IsZero() || to.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date_from and date_to are required")
	}
	from, to = calendar.Day(from), calendar.Day(to)
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date_to must not be before date_from")
	}
	if span := calendar.DaysBetween(from, to) + 1; span > s.cfg.MaxRangeDays {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("range of %d days exceeds the %d day limit", span, s.cfg.MaxRangeDays))
	}

	subjects := normalizeSubjects(subjectIDs)
	gen := s.generation.Load()
	key := availabilityCacheKey(gen, from, to, subjects)
	var cached []models.AvailabilityEntry
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	// Concurrent misses on one window share a single store read. The load runs
	// detached from the first caller so its cancellation does not fail the others.
	loadCtx := context.WithoutCancel(ctx)
	loaded, err, _ := s.loads.Do(key, func() (interface{}, error) {
		entries, err := s.repo.List(loadCtx, models.AvailabilityFilter{DateFrom: from, DateTo: to, SubjectIDs: subjects})
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []models.AvailabilityEntry{}
		}
		if s.generation.Load() == gen {
			_ = s.cache.Set(loadCtx, key, entries, s.cfg.CacheTTL)
		}
		return entries, nil
	})
	if err != nil {
		return nil, storeError(err, "failed to load availability")
	}
	return loaded.([]models.AvailabilityEntry), nil
}

// CreateAvailability stores a single entry. An occupied day yields a conflict.
func (s *AvailabilityService) CreateAvailability(ctx context.Context, entry models.AvailabilityEntry) (*models.AvailabilityEntry, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}
	entry.ID = ""
	if err := s.repo.Create(ctx, &entry); err != nil {
		return nil, storeError(err, "failed to create availability")
	}
	s.invalidate(ctx)
	s.metrics.RecordAvailabilityCreated("single", 1)
	return &entry, nil
}

// UpdateAvailability changes status, period and notes of an existing entry.
func (s *AvailabilityService) UpdateAvailability(ctx context.Context, id string, fields models.AvailabilityUpdate) (*models.AvailabilityEntry, error) {
	if strings.TrimSpace(id) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "availability id is required")
	}
	if fields.Period == "" {
		fields.Period = models.PeriodFullDay
	}
	if err := validateTaxonomy(fields.Status, fields.Period); err != nil {
		return nil, err
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "availability not found", "failed to load availability")
	}
	entry.Status = fields.Status
	entry.Period = fields.Period
	entry.Notes = fields.Notes
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, notFoundOr(err, "availability not found", "failed to update availability")
	}
	s.invalidate(ctx)
	return entry, nil
}

// DeleteAvailability removes an entry.
func (s *AvailabilityService) DeleteAvailability(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "availability id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "availability not found", "failed to delete availability")
	}
	s.invalidate(ctx)
	return nil
}

// BulkCreateAvailability stores every entry in one transaction. Days the store
// already holds are skipped and reported in Rejected.
func (s *AvailabilityService) BulkCreateAvailability(ctx context.Context, entries []models.AvailabilityEntry) (*models.BulkCreateResult, error) {
	if len(entries) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one date is required")
	}
	if len(entries) > s.cfg.MaxRangeDays {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%d dates exceed the %d day limit", len(entries), s.cfg.MaxRangeDays))
	}
	for i := range entries {
		if err := validateEntry(entries[i]); err != nil {
			return nil, err
		}
		entries[i].ID = ""
	}

	result, err := s.repo.BulkCreate(ctx, entries)
	if err != nil {
		return nil, storeError(err, "failed to create availability")
	}
	s.invalidate(ctx)
	s.metrics.RecordAvailabilityCreated("bulk", len(result.Created))
	s.metrics.RecordBulk(len(entries), len(result.Rejected))
	if result.Partial() {
		s.logger.Warn("bulk availability partially applied",
			zap.String("subject_id", entries[0].SubjectID),
			zap.Int("created", len(result.Created)),
			zap.Int("rejected", len(result.Rejected)))
	}
	return result, nil
}

// ResolveTrainer loads a trainer by catalog id.
func (s *AvailabilityService) ResolveTrainer(ctx context.Context, trainerID string) (*models.Trainer, error) {
	if strings.TrimSpace(trainerID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "trainer identifier is required")
	}
	trainer, err := s.trainers.FindByID(ctx, trainerID)
	if err != nil {
		return nil, notFoundOr(err, "trainer not found", "failed to load trainer")
	}
	if trainer.SubjectID() == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "trainer identifier could not be resolved")
	}
	return trainer, nil
}

// ResolveTrainerForUser loads the trainer linked to an account.
func (s *AvailabilityService) ResolveTrainerForUser(ctx context.Context, userID string) (*models.Trainer, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "trainer identifier is required")
	}
	trainer, err := s.trainers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "no trainer is linked to this account", "failed to load trainer")
	}
	return trainer, nil
}

// Trainers lists the catalog for the trainers endpoint.
func (s *AvailabilityService) Trainers(ctx context.Context, req dto.TrainerListRequest) ([]models.Trainer, error) {
	trainers, err := s.trainers.List(ctx, models.TrainerFilter{Search: strings.TrimSpace(req.Search), Active: req.Active})
	if err != nil {
		return nil, storeError(err, "failed to load trainers")
	}
	if trainers == nil {
		trainers = []models.Trainer{}
	}
	return trainers, nil
}

// List reads a window for the availability endpoint, resolving trainer ids to subjects.
func (s *AvailabilityService) List(ctx context.Context, req dto.AvailabilityListRequest) ([]models.AvailabilityEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability query")
	}
	from, err := calendar.ParseKey(req.DateFrom)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date_from")
	}
	to, err := calendar.ParseKey(req.DateTo)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date_to")
	}

	subjects := make([]string, 0, len(req.TrainerIDs))
	for _, id := range req.TrainerIDs {
		trainer, err := s.ResolveTrainer(ctx, id)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, trainer.SubjectID())
	}
	return s.ListAvailability(ctx, from, to, subjects)
}

// Create records one day for the trainer named in the request.
func (s *AvailabilityService) Create(ctx context.Context, req dto.CreateAvailabilityRequest) (*models.AvailabilityEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	trainer, err := s.ResolveTrainer(ctx, req.TrainerID)
	if err != nil {
		return nil, err
	}
	day, err := calendar.ParseKey(req.Date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date")
	}
	return s.CreateAvailability(ctx, models.AvailabilityEntry{
		SubjectID: trainer.SubjectID(),
		Date:      day,
		Status:    req.Status,
		Period:    defaultPeriod(req.Period),
		Notes:     notesPointer(req.Notes),
	})
}

// Update edits one entry from the request payload.
func (s *AvailabilityService) Update(ctx context.Context, id string, req dto.UpdateAvailabilityRequest) (*models.AvailabilityEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	return s.UpdateAvailability(ctx, id, models.AvailabilityUpdate{
		Status: req.Status,
		Period: defaultPeriod(req.Period),
		Notes:  notesPointer(req.Notes),
	})
}

// BulkCreate records the same values on every requested day of one trainer.
func (s *AvailabilityService) BulkCreate(ctx context.Context, req dto.BulkAvailabilityRequest) (*models.BulkCreateResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk availability payload")
	}
	if len(req.Dates) > s.cfg.MaxRangeDays {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%d dates exceed the %d day limit", len(req.Dates), s.cfg.MaxRangeDays))
	}
	trainer, err := s.ResolveTrainer(ctx, req.TrainerID)
	if err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = models.StatusAvailable
	}

	entries := make([]models.AvailabilityEntry, 0, len(req.Dates))
	for _, raw := range req.Dates {
		day, err := calendar.ParseKey(raw)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date")
		}
		entries = append(entries, models.AvailabilityEntry{
			SubjectID: trainer.SubjectID(),
			Date:      day,
			Status:    status,
			Period:    defaultPeriod(req.Period),
			Notes:     notesPointer(req.Notes),
		})
	}
	return s.BulkCreateAvailability(ctx, entries)
}

func (s *AvailabilityService) invalidate(ctx context.Context) {
	s.generation.Add(1)
	if err := s.cache.Invalidate(ctx, availabilityCachePattern); err != nil {
		s.logger.Warn("availability cache invalidation failed", zap.Error(err))
	}
}

func validateEntry(entry models.AvailabilityEntry) error {
	if strings.TrimSpace(entry.SubjectID) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "trainer identifier is required")
	}
	if entry.Date.IsZero() {
		return appErrors.Clone(appErrors.ErrValidation, "date is required")
	}
	return validateTaxonomy(entry.Status, entry.Period)
}

func validateTaxonomy(status models.AvailabilityStatus, period models.AvailabilityPeriod) error {
	if !status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", status))
	}
	if !period.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown period %q", period))
	}
	return nil
}

func defaultPeriod(p models.AvailabilityPeriod) models.AvailabilityPeriod {
	if p == "" {
		return models.PeriodFullDay
	}
	return p
}

func notesPointer(notes string) *string {
	trimmed := strings.TrimSpace(notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func normalizeSubjects(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func availabilityCacheKey(gen uint64, from, to time.Time, subjects []string) string {
	scope := "all"
	if len(subjects) > 0 {
		scope = strings.Join(subjects, ",")
	}
	return fmt.Sprintf("availability:g%d:%s:%s:%s", gen, calendar.Key(from), calendar.Key(to), scope)
}

func notFoundOr(err error, notFound, fallback string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return storeError(err, fallback)
}

// storeError maps repository failures onto the error taxonomy. Typed errors
// pass through; transport failures become network errors.
func storeError(err error, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, "the availability store could not be reached")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
