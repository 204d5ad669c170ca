package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/trainer-planning-api/internal/dto"
	"github.com/noah-isme/trainer-planning-api/internal/models"
	"github.com/noah-isme/trainer-planning-api/internal/planning"
	"github.com/noah-isme/trainer-planning-api/pkg/calendar"
	appErrors "github.com/noah-isme/trainer-planning-api/pkg/errors"
	"github.com/noah-isme/trainer-planning-api/pkg/export"
)

type trainerResolver interface {
	ResolveTrainer(ctx context.Context, trainerID string) (*models.Trainer, error)
	ResolveTrainerForUser(ctx context.Context, userID string) (*models.Trainer, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// PlanningServiceConfig tunes the planning views.
type PlanningServiceConfig struct {
	WeekStart      time.Weekday
	ExportsEnabled bool
	ExportTitle    string
}

// ExportFile is a rendered planning sheet.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PlanningService renders the matrix and weekly views and replays grid
// gestures server-side. Each call drives a fresh controller over the store.
type PlanningService struct {
	store     planning.Store
	trainers  trainerResolver
	csv       csvRenderer
	pdf       pdfRenderer
	validator *validator.Validate
	logger    *zap.Logger
	cfg       PlanningServiceConfig
	now       func() time.Time
}

// NewPlanningService constructs a PlanningService. Nil renderers fall back to pkg/export.
func NewPlanningService(store planning.Store, trainers trainerResolver, csv csvRenderer, pdf pdfRenderer, validate *validator.Validate, logger *zap.Logger, cfg PlanningServiceConfig) *PlanningService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if cfg.ExportTitle == "" {
		cfg.ExportTitle = "Trainer availability"
	}
	return &PlanningService{
		store:     store,
		trainers:  trainers,
		csv:       csv,
		pdf:       pdf,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Matrix renders every active trainer across the requested window.
func (s *PlanningService) Matrix(ctx context.Context, req dto.MatrixRequest) (*dto.MatrixResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid matrix query")
	}
	window, err := s.window(req.View, req.Date)
	if err != nil {
		return nil, err
	}
	m := planning.NewMatrix(s.store, s.logger)
	if err := m.Load(ctx, window); err != nil {
		return nil, err
	}
	return &dto.MatrixResponse{Window: m.Window(), Rows: m.Rows()}, nil
}

// Weekly renders one trainer's week. Without a trainer id the caller's linked trainer is used.
func (s *PlanningService) Weekly(ctx context.Context, req dto.WeeklyRequest, actor *models.JWTClaims) (*dto.WeeklyResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid weekly query")
	}

	var (
		trainer *models.Trainer
		err     error
	)
	switch {
	case req.TrainerID != "":
		trainer, err = s.trainers.ResolveTrainer(ctx, req.TrainerID)
	case actor != nil:
		trainer, err = s.trainers.ResolveTrainerForUser(ctx, actor.UserID)
	default:
		err = appErrors.Clone(appErrors.ErrValidation, "trainer identifier is required")
	}
	if err != nil {
		return nil, err
	}

	window, err := s.window(string(calendar.WindowWeek), req.Date)
	if err != nil {
		return nil, err
	}
	w := planning.NewWeekly(s.store, s.logger)
	if err := w.Load(ctx, *trainer, window); err != nil {
		return nil, err
	}
	return &dto.WeeklyResponse{Trainer: *trainer, Window: w.Window(), Cells: w.Cells()}, nil
}

// ReplayGesture presses on the anchor day, drags to the release day and
// releases, then applies the draft values. Unless dry run, the draft is submitted.
func (s *PlanningService) ReplayGesture(ctx context.Context, req dto.GestureRequest) (*dto.GestureResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid gesture payload")
	}
	anchor, err := calendar.ParseKey(req.Anchor)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid anchor")
	}
	release := anchor
	if req.Release != "" {
		if release, err = calendar.ParseKey(req.Release); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid release")
		}
	}

	window, err := s.window(req.View, req.Anchor)
	if err != nil {
		return nil, err
	}
	if !window.Contains(release) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "release day is outside the visible window")
	}

	m := planning.NewMatrix(s.store, s.logger)
	if err := m.Load(ctx, window); err != nil {
		return nil, err
	}
	if !m.PointerDown(req.TrainerID, anchor) {
		return nil, s.pressRejected(m, req.TrainerID, anchor)
	}
	m.PointerEnter(req.TrainerID, release)
	draft := m.PointerUp()
	if draft == nil {
		return &dto.GestureResponse{Notice: &planning.Notice{Kind: planning.NoticeSuccess, Message: "every selected day already has availability"}}, nil
	}

	status := req.Status
	if status == "" {
		status = models.StatusAvailable
	}
	if err := m.UpdateDraft(status, defaultPeriod(req.Period), req.Notes); err != nil {
		return nil, err
	}

	resp := &dto.GestureResponse{Draft: m.Draft(), Label: draft.Label()}
	if req.DryRun {
		return resp, nil
	}

	result, err := m.SubmitDraft(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("gesture submitted",
		zap.String("trainer_id", req.TrainerID),
		zap.String("range", draft.Label()),
		zap.Int("created", len(result.Created)))
	resp.Result = result
	resp.Notice = m.Notice()
	return resp, nil
}

func (s *PlanningService) pressRejected(m *planning.Matrix, trainerID string, day time.Time) error {
	for _, trainer := range m.Trainers() {
		if trainer.ID != trainerID {
			continue
		}
		if m.Index().Has(trainer.SubjectID(), day) {
			return appErrors.Clone(appErrors.ErrConflict, "anchor day already has availability")
		}
		return appErrors.Clone(appErrors.ErrValidation, "anchor day cannot be selected")
	}
	return appErrors.Clone(appErrors.ErrNotFound, "trainer is not an active row of the planning matrix")
}

// Export renders the matrix of a window as a CSV or PDF planning sheet.
func (s *PlanningService) Export(ctx context.Context, req dto.ExportRequest) (*ExportFile, error) {
	if !s.cfg.ExportsEnabled {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "planning exports are disabled")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export query")
	}
	window, err := s.window(req.View, req.Date)
	if err != nil {
		return nil, err
	}
	m := planning.NewMatrix(s.store, s.logger)
	if err := m.Load(ctx, window); err != nil {
		return nil, err
	}

	dataset := matrixDataset(window, m.Rows())
	base := fmt.Sprintf("availability_%s_%s", calendar.Key(window.Start), calendar.Key(window.End))

	format := strings.ToLower(req.Format)
	if format == "" {
		format = "csv"
	}
	var payload []byte
	file := &ExportFile{}
	switch format {
	case "pdf":
		title := fmt.Sprintf("%s %s to %s", s.cfg.ExportTitle, calendar.Key(window.Start), calendar.Key(window.End))
		payload, err = s.pdf.Render(dataset, title)
		file.Filename, file.ContentType = base+".pdf", "application/pdf"
	default:
		payload, err = s.csv.Render(dataset)
		file.Filename, file.ContentType = base+".csv", "text/csv"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render planning sheet")
	}
	file.Data = payload
	return file, nil
}

func (s *PlanningService) window(view, date string) (calendar.Window, error) {
	anchor := calendar.Day(s.now())
	if date != "" {
		parsed, err := calendar.ParseKey(date)
		if err != nil {
			return calendar.Window{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date")
		}
		anchor = parsed
	}
	window, err := calendar.NewWindow(calendar.WindowKind(view), anchor, s.cfg.WeekStart)
	if err != nil {
		return calendar.Window{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid view")
	}
	return window, nil
}

// matrixDataset lays out one row per trainer and one column per day, followed by status counts.
func matrixDataset(window calendar.Window, rows []planning.Row) export.Dataset {
	days := window.Days()
	headers := make([]string, 0, len(days)+4)
	headers = append(headers, "Trainer")
	for _, day := range days {
		headers = append(headers, calendar.Key(day))
	}
	headers = append(headers, "Available", "Partial", "Unavailable")

	records := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		record := map[string]string{"Trainer": row.Trainer.FullName}
		for _, cell := range row.Cells {
			record[calendar.Key(cell.Date)] = cellLabel(cell)
		}
		record["Available"] = strconv.Itoa(row.Summary.Available)
		record["Partial"] = strconv.Itoa(row.Summary.Partial)
		record["Unavailable"] = strconv.Itoa(row.Summary.Unavailable)
		records = append(records, record)
	}
	return export.Dataset{Headers: headers, Rows: records}
}

func cellLabel(cell planning.Cell) string {
	if cell.Entry == nil {
		return ""
	}
	label := cell.Entry.Status.Label()
	if cell.Entry.Period != models.PeriodFullDay {
		label += " (" + cell.Entry.Period.Label() + ")"
	}
	return label
}
