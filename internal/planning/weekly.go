package planning

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/trainer-planning-api/internal/models"
	"github.com/noah-isme/trainer-planning-api/pkg/calendar"
	appErrors "github.com/noah-isme/trainer-planning-api/pkg/errors"
)

// EditorMode tells whether the single-day editor creates or edits.
type EditorMode string

const (
	EditorCreate EditorMode = "create"
	EditorEdit   EditorMode = "edit"
)

// Editor is the single-day form opened from the weekly grid.
type Editor struct {
	Mode   EditorMode                `json:"mode"`
	Date   time.Time                 `json:"date"`
	Entry  *models.AvailabilityEntry `json:"entry,omitempty"`
	Status models.AvailabilityStatus `json:"status"`
	Period models.AvailabilityPeriod `json:"period"`
	Notes  string                    `json:"notes"`
}

// WeeklyCell is one day of a trainer's week.
type WeeklyCell struct {
	Date  time.Time                 `json:"date"`
	Entry *models.AvailabilityEntry `json:"entry,omitempty"`
}

// Weekly drives the single-trainer grid. Saves and deletes are confirmed by
// the store before the grid is re-read; nothing is mutated optimistically.
// A Weekly is owned by a single goroutine.
type Weekly struct {
	store  Store
	logger *zap.Logger

	trainer *models.Trainer
	window  calendar.Window
	index   *Index
	loaded  bool

	editor *Editor
	notice *Notice
}

// NewWeekly builds an empty weekly grid over store.
func NewWeekly(store Store, logger *zap.Logger) *Weekly {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Weekly{store: store, logger: logger, index: NewIndex(nil)}
}

// Load shows trainer's availability for window, closing any open editor.
func (w *Weekly) Load(ctx context.Context, trainer models.Trainer, window calendar.Window) error {
	if trainer.SubjectID() == "" {
		err := validationError("trainer identifier is required")
		w.setNotice(NoticeFromError(err))
		return err
	}
	if window.IsZero() {
		err := validationError("a visible window is required")
		w.setNotice(NoticeFromError(err))
		return err
	}
	t := trainer
	w.trainer = &t
	w.window = window
	w.editor = nil
	return w.refresh(ctx)
}

// Navigate moves the week by delta and refetches.
func (w *Weekly) Navigate(ctx context.Context, delta int) error {
	if w.trainer == nil {
		err := validationError("no trainer is loaded")
		w.setNotice(NoticeFromError(err))
		return err
	}
	return w.Load(ctx, *w.trainer, w.window.Shift(delta))
}

func (w *Weekly) refresh(ctx context.Context) error {
	subject := w.trainer.SubjectID()
	entries, err := w.store.ListAvailability(ctx, w.window.Start, w.window.End, []string{subject})
	if err != nil {
		w.logger.Warn("weekly fetch failed", zap.String("subject_id", subject), zap.Error(err))
		w.loaded = false
		w.setNotice(NoticeFromError(err))
		return err
	}
	w.index = NewIndex(entries)
	w.loaded = true
	return nil
}

// Loaded reports whether a week is on screen.
func (w *Weekly) Loaded() bool { return w.loaded }

// Window is the visible week.
func (w *Weekly) Window() calendar.Window { return w.window }

// Editor is the open editor, nil when closed.
func (w *Weekly) Editor() *Editor { return w.editor }

// Notice is the last user-visible message.
func (w *Weekly) Notice() *Notice { return w.notice }

// Cells lists the days of the week with their entries.
func (w *Weekly) Cells() []WeeklyCell {
	if w.trainer == nil {
		return nil
	}
	subject := w.trainer.SubjectID()
	days := w.window.Days()
	cells := make([]WeeklyCell, 0, len(days))
	for _, day := range days {
		cell := WeeklyCell{Date: day}
		if entry, ok := w.index.Lookup(subject, day); ok {
			e := entry
			cell.Entry = &e
		}
		cells = append(cells, cell)
	}
	return cells
}

// Click opens the editor for day: create mode on an empty day, edit mode
// prefilled from the recorded entry otherwise.
func (w *Weekly) Click(day time.Time) *Editor {
	if !w.loaded || !w.window.Contains(day) {
		return nil
	}
	d := calendar.Day(day)
	if entry, ok := w.index.Lookup(w.trainer.SubjectID(), d); ok {
		e := entry
		notes := ""
		if e.Notes != nil {
			notes = *e.Notes
		}
		w.editor = &Editor{Mode: EditorEdit, Date: d, Entry: &e, Status: e.Status, Period: e.Period, Notes: notes}
		return w.editor
	}
	w.editor = &Editor{Mode: EditorCreate, Date: d, Status: models.StatusAvailable, Period: models.PeriodFullDay}
	return w.editor
}

// Close dismisses the editor.
func (w *Weekly) Close() { w.editor = nil }

// Save creates or updates the edited day. The editor stays open on failure.
func (w *Weekly) Save(ctx context.Context, status models.AvailabilityStatus, period models.AvailabilityPeriod, notes string) (*models.AvailabilityEntry, error) {
	editor := w.editor
	if editor == nil {
		return nil, w.fail(validationError("no day is being edited"))
	}
	if w.trainer == nil || w.trainer.SubjectID() == "" {
		return nil, w.fail(validationError("trainer identifier is required"))
	}
	if !status.Valid() {
		return nil, w.fail(validationError(fmt.Sprintf("unknown status %q", status)))
	}
	if !period.Valid() {
		return nil, w.fail(validationError(fmt.Sprintf("unknown period %q", period)))
	}
	editor.Status, editor.Period, editor.Notes = status, period, notes

	var notesPtr *string
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		notesPtr = &trimmed
	}

	var (
		saved *models.AvailabilityEntry
		err   error
	)
	switch editor.Mode {
	case EditorEdit:
		saved, err = w.store.UpdateAvailability(ctx, editor.Entry.ID, models.AvailabilityUpdate{Status: status, Period: period, Notes: notesPtr})
	default:
		saved, err = w.store.CreateAvailability(ctx, models.AvailabilityEntry{
			SubjectID: w.trainer.SubjectID(),
			Date:      editor.Date,
			Status:    status,
			Period:    period,
			Notes:     notesPtr,
		})
	}
	if err != nil {
		if editor.Mode == EditorCreate && appErrors.Is(err, appErrors.ErrConflict) {
			// The day was recorded elsewhere; re-read so reopening it edits that entry.
			w.refetch(ctx, "conflict")
		}
		return nil, w.fail(err)
	}

	w.editor = nil
	w.setNotice(Notice{Kind: NoticeSuccess, Message: "availability saved"})
	w.refetch(ctx, "save")
	return saved, nil
}

// Delete removes the edited entry. Only reachable in edit mode.
func (w *Weekly) Delete(ctx context.Context) error {
	editor := w.editor
	if editor == nil || editor.Mode != EditorEdit || editor.Entry == nil {
		return w.fail(validationError("only a recorded day can be deleted"))
	}
	if err := w.store.DeleteAvailability(ctx, editor.Entry.ID); err != nil {
		return w.fail(err)
	}
	w.editor = nil
	w.setNotice(Notice{Kind: NoticeSuccess, Message: "availability deleted"})
	w.refetch(ctx, "delete")
	return nil
}

// refetch re-reads the week after a write. A failure is logged and left in the
// notice; the write itself already succeeded or failed on its own terms.
func (w *Weekly) refetch(ctx context.Context, after string) {
	if err := w.refresh(ctx); err != nil {
		w.logger.Warn("weekly refetch failed", zap.String("after", after), zap.Error(err))
	}
}

func (w *Weekly) fail(err error) error {
	w.setNotice(NoticeFromError(err))
	return err
}

func (w *Weekly) setNotice(n Notice) { w.notice = &n }
