package dto

import "github.com/noah-isme/trainer-planning-api/internal/models"

// TrainerListRequest filters the trainer catalog.
type TrainerListRequest struct {
	Search string `form:"search"`
	Active *bool  `form:"active"`
}

// AvailabilityListRequest reads a window of availability, optionally for some trainers.
type AvailabilityListRequest struct {
	DateFrom   string   `form:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo     string   `form:"date_to" validate:"required,datetime=2006-01-02"`
	TrainerIDs []string `form:"trainer_id"`
}

// CreateAvailabilityRequest records one day for a trainer.
type CreateAvailabilityRequest struct {
	TrainerID string                    `json:"trainer_id" validate:"required"`
	Date      string                    `json:"date" validate:"required,datetime=2006-01-02"`
	Status    models.AvailabilityStatus `json:"status" validate:"required,oneof=available partial unavailable"`
	Period    models.AvailabilityPeriod `json:"period" validate:"omitempty,oneof=full_day morning afternoon"`
	Notes     string                    `json:"notes" validate:"max=500"`
}

// UpdateAvailabilityRequest changes the editable fields of one entry.
type UpdateAvailabilityRequest struct {
	Status models.AvailabilityStatus `json:"status" validate:"required,oneof=available partial unavailable"`
	Period models.AvailabilityPeriod `json:"period" validate:"omitempty,oneof=full_day morning afternoon"`
	Notes  string                    `json:"notes" validate:"max=500"`
}

// BulkAvailabilityRequest records the same values on several days of one trainer.
type BulkAvailabilityRequest struct {
	TrainerID string                    `json:"trainer_id" validate:"required"`
	Dates     []string                  `json:"dates" validate:"required,min=1,max=366,dive,datetime=2006-01-02"`
	Status    models.AvailabilityStatus `json:"status" validate:"omitempty,oneof=available partial unavailable"`
	Period    models.AvailabilityPeriod `json:"period" validate:"omitempty,oneof=full_day morning afternoon"`
	Notes     string                    `json:"notes" validate:"max=500"`
}
