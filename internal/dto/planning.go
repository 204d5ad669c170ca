package dto

import (
	"github.com/noah-isme/trainer-planning-api/internal/models"
	"github.com/noah-isme/trainer-planning-api/internal/planning"
	"github.com/noah-isme/trainer-planning-api/pkg/calendar"
)

// MatrixRequest selects the visible window of the planning matrix.
type MatrixRequest struct {
	View string `form:"view" validate:"omitempty,oneof=week month"`
	Date string `form:"date" validate:"omitempty,datetime=2006-01-02"`
}

// MatrixResponse is the rendered matrix for one window.
type MatrixResponse struct {
	Window calendar.Window `json:"window"`
	Rows   []planning.Row  `json:"rows"`
}

// WeeklyRequest selects a trainer's week. An empty trainer id means the caller.
type WeeklyRequest struct {
	TrainerID string `form:"trainer_id"`
	Date      string `form:"date" validate:"omitempty,datetime=2006-01-02"`
}

// WeeklyResponse is one trainer's week.
type WeeklyResponse struct {
	Trainer models.Trainer        `json:"trainer"`
	Window  calendar.Window       `json:"window"`
	Cells   []planning.WeeklyCell `json:"cells"`
}

// GestureRequest replays a press on anchor and a release on release for one
// trainer row. The window is the view containing anchor.
type GestureRequest struct {
	TrainerID string                    `json:"trainer_id" validate:"required"`
	View      string                    `json:"view" validate:"omitempty,oneof=week month"`
	Anchor    string                    `json:"anchor" validate:"required,datetime=2006-01-02"`
	Release   string                    `json:"release" validate:"omitempty,datetime=2006-01-02"`
	Status    models.AvailabilityStatus `json:"status" validate:"omitempty,oneof=available partial unavailable"`
	Period    models.AvailabilityPeriod `json:"period" validate:"omitempty,oneof=full_day morning afternoon"`
	Notes     string                    `json:"notes" validate:"max=500"`
	DryRun    bool                      `json:"dry_run"`
}

// GestureResponse reports the draft a gesture opened and, unless dry run, what was stored.
type GestureResponse struct {
	Draft  *planning.BulkDraft      `json:"draft,omitempty"`
	Label  string                   `json:"label,omitempty"`
	Result *models.BulkCreateResult `json:"result,omitempty"`
	Notice *planning.Notice         `json:"notice,omitempty"`
}

// ExportRequest selects the window and format of a planning sheet.
type ExportRequest struct {
	View   string `form:"view" validate:"omitempty,oneof=week month"`
	Date   string `form:"date" validate:"omitempty,datetime=2006-01-02"`
	Format string `form:"format" validate:"omitempty,oneof=csv pdf"`
}
