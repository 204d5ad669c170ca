package planning

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/trainer-planning-api/internal/models"
	"github.com/noah-isme/trainer-planning-api/pkg/calendar"
)

// Cell is one trainer/day intersection of the matrix.
type Cell struct {
	Date     time.Time                 `json:"date"`
	Entry    *models.AvailabilityEntry `json:"entry,omitempty"`
	Selected bool                      `json:"selected"`
}

// Row is one active trainer across the visible window.
type Row struct {
	Trainer models.Trainer `json:"trainer"`
	Cells   []Cell         `json:"cells"`
	Summary Summary        `json:"summary"`
}

// Matrix drives the multi-trainer grid: every active trainer as a row and
// every day of the visible window as a column. It keeps the last fetched
// window as its only source of truth and rebuilds the Index on every fetch.
// A Matrix is owned by a single goroutine.
type Matrix struct {
	store  Store
	logger *zap.Logger

	window   calendar.Window
	trainers []models.Trainer
	index    *Index
	loading  bool
	loaded   bool

	selection Selection
	draft     *BulkDraft
	notice    *Notice
}

// NewMatrix builds an empty matrix over store.
func NewMatrix(store Store, logger *zap.Logger) *Matrix {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matrix{store: store, logger: logger, index: NewIndex(nil)}
}

// Load fetches trainers and the window's availability in parallel and
// replaces the held snapshot. Any gesture or draft from a previous window is dropped.
func (m *Matrix) Load(ctx context.Context, window calendar.Window) error {
	if window.IsZero() {
		err := validationError("a visible window is required")
		m.setNotice(NoticeFromError(err))
		return err
	}
	if !m.window.IsZero() && !sameWindow(m.window, window) {
		m.draft = nil
	}
	m.selection.Cancel()
	m.window = window
	return m.refresh(ctx)
}

// Navigate moves the window by delta weeks or months and refetches.
func (m *Matrix) Navigate(ctx context.Context, delta int) error {
	if m.window.IsZero() {
		err := validationError("matrix has no window to navigate from")
		m.setNotice(NoticeFromError(err))
		return err
	}
	return m.Load(ctx, m.window.Shift(delta))
}

func (m *Matrix) refresh(ctx context.Context) error {
	m.loading = true
	defer func() { m.loading = false }()

	var (
		trainers []models.Trainer
		entries  []models.AvailabilityEntry
	)
	window := m.window
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := m.store.ListTrainers(gctx)
		if err != nil {
			return err
		}
		trainers = list
		return nil
	})
	g.Go(func() error {
		list, err := m.store.ListAvailability(gctx, window.Start, window.End, nil)
		if err != nil {
			return err
		}
		entries = list
		return nil
	})
	if err := g.Wait(); err != nil {
		m.logger.Warn("matrix fetch failed", zap.String("from", calendar.Key(window.Start)), zap.Error(err))
		m.loaded = false
		m.setNotice(NoticeFromError(err))
		return err
	}

	m.trainers = models.ActiveTrainers(trainers)
	m.index = NewIndex(entries)
	m.loaded = true
	return nil
}

// Loading reports whether a fetch is in flight or nothing was loaded yet.
func (m *Matrix) Loading() bool { return m.loading || !m.loaded }

// Window is the visible window.
func (m *Matrix) Window() calendar.Window { return m.window }

// Trainers are the rendered rows in store order.
func (m *Matrix) Trainers() []models.Trainer { return m.trainers }

// Index is the lookup built from the last fetch.
func (m *Matrix) Index() *Index { return m.index }

// Phase is the state of the drag gesture.
func (m *Matrix) Phase() Phase { return m.selection.Phase() }

// Draft is the open bulk editor, nil when closed.
func (m *Matrix) Draft() *BulkDraft { return m.draft }

// Notice is the last user-visible message.
func (m *Matrix) Notice() *Notice { return m.notice }

// ClearNotice dismisses the last message.
func (m *Matrix) ClearNotice() { m.notice = nil }

// PointerDown anchors a gesture on an empty cell. Occupied cells, unknown
// rows, days outside the window and presses while the editor is open are ignored.
func (m *Matrix) PointerDown(trainerID string, day time.Time) bool {
	if m.Loading() || m.draft != nil {
		return false
	}
	trainer, ok := m.trainer(trainerID)
	if !ok || !m.window.Contains(day) {
		return false
	}
	subject := trainer.SubjectID()
	if m.index.Has(subject, day) {
		return false
	}
	return m.selection.Begin(subject, day)
}

// PointerEnter extends the gesture when day belongs to the anchored row.
func (m *Matrix) PointerEnter(trainerID string, day time.Time) bool {
	trainer, ok := m.trainer(trainerID)
	if !ok || !m.window.Contains(day) {
		return false
	}
	return m.selection.Extend(trainer.SubjectID(), day)
}

// PointerUp releases the gesture and opens the bulk editor for the gap dates.
// It returns nil when nothing was selected or every day already had data.
func (m *Matrix) PointerUp() *BulkDraft {
	return m.release()
}

// PointerLeave resolves the gesture as if released when the pointer leaves the matrix.
func (m *Matrix) PointerLeave() *BulkDraft {
	return m.release()
}

// Click is a press and release on the same cell.
func (m *Matrix) Click(trainerID string, day time.Time) *BulkDraft {
	if !m.PointerDown(trainerID, day) {
		return nil
	}
	return m.PointerUp()
}

func (m *Matrix) release() *BulkDraft {
	r, ok := m.selection.Commit()
	if !ok {
		return nil
	}
	gaps := ResolveGaps(m.index, r)
	if len(gaps) == 0 {
		m.logger.Debug("gesture covered only recorded days", zap.String("subject_id", r.Owner))
		return nil
	}
	trainer, ok := m.trainerBySubject(r.Owner)
	if !ok {
		return nil
	}
	m.draft = NewBulkDraft(trainer, gaps)
	return m.draft
}

// Rows renders the matrix for the current snapshot and gesture.
func (m *Matrix) Rows() []Row {
	days := m.window.Days()
	rows := make([]Row, 0, len(m.trainers))
	for _, trainer := range m.trainers {
		subject := trainer.SubjectID()
		cells := make([]Cell, 0, len(days))
		for _, day := range days {
			cell := Cell{Date: day, Selected: m.selection.Highlighted(subject, day)}
			if entry, ok := m.index.Lookup(subject, day); ok {
				e := entry
				cell.Entry = &e
			}
			cells = append(cells, cell)
		}
		rows = append(rows, Row{Trainer: trainer, Cells: cells, Summary: m.index.Summary(subject, days)})
	}
	return rows
}

// UpdateDraft sets the values applied to every date of the open draft.
func (m *Matrix) UpdateDraft(status models.AvailabilityStatus, period models.AvailabilityPeriod, notes string) error {
	if m.draft == nil {
		return validationError("no range is selected")
	}
	if !status.Valid() {
		return validationError(fmt.Sprintf("unknown status %q", status))
	}
	if !period.Valid() {
		return validationError(fmt.Sprintf("unknown period %q", period))
	}
	m.draft.Status = status
	m.draft.Period = period
	m.draft.Notes = notes
	return nil
}

// CloseDraft discards the open editor.
func (m *Matrix) CloseDraft() { m.draft = nil }

// SubmitDraft issues one bulk create for the open draft. On success the window
// is refetched and the editor closes; on failure the editor stays open.
func (m *Matrix) SubmitDraft(ctx context.Context) (*models.BulkCreateResult, error) {
	draft := m.draft
	if draft == nil {
		err := validationError("no range is selected")
		m.setNotice(NoticeFromError(err))
		return nil, err
	}
	if draft.SubjectID == "" {
		err := validationError("trainer identifier could not be resolved")
		m.setNotice(NoticeFromError(err))
		return nil, err
	}

	result, err := m.store.BulkCreateAvailability(ctx, draft.Entries())
	if err != nil {
		m.logger.Warn("bulk availability failed", zap.String("subject_id", draft.SubjectID), zap.Int("dates", len(draft.Dates)), zap.Error(err))
		m.setNotice(NoticeFromError(err))
		return nil, err
	}
	m.draft = nil

	if err := m.refresh(ctx); err != nil {
		m.logger.Warn("matrix refetch after bulk write failed", zap.String("subject_id", draft.SubjectID), zap.Error(err))
		return result, nil
	}
	m.setNotice(bulkNotice(result))
	return result, nil
}

func bulkNotice(result *models.BulkCreateResult) Notice {
	if result == nil {
		return Notice{Kind: NoticeSuccess, Message: "availability saved"}
	}
	if result.Partial() {
		return Notice{
			Kind:    NoticeConflict,
			Message: fmt.Sprintf("%d days saved, %d already recorded", len(result.Created), len(result.Rejected)),
		}
	}
	return Notice{Kind: NoticeSuccess, Message: fmt.Sprintf("%d days saved", len(result.Created))}
}

func (m *Matrix) setNotice(n Notice) { m.notice = &n }

func (m *Matrix) trainer(id string) (models.Trainer, bool) {
	for _, t := range m.trainers {
		if t.ID == id {
			return t, true
		}
	}
	return models.Trainer{}, false
}

func (m *Matrix) trainerBySubject(subjectID string) (models.Trainer, bool) {
	for _, t := range m.trainers {
		if t.SubjectID() == subjectID {
			return t, true
		}
	}
	return models.Trainer{}, false
}

func sameWindow(a, b calendar.Window) bool {
	return a.Kind == b.Kind && a.Start.Equal(b.Start) && a.End.Equal(b.End)
}
