package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/trainer-planning-api/internal/dto"
	"github.com/noah-isme/trainer-planning-api/internal/models"
	appErrors "github.com/noah-isme/trainer-planning-api/pkg/errors"
	"github.com/noah-isme/trainer-planning-api/pkg/response"
)

type availabilityService interface {
	List(ctx context.Context, req dto.AvailabilityListRequest) ([]models.AvailabilityEntry, error)
	Create(ctx context.Context, req dto.CreateAvailabilityRequest) (*models.AvailabilityEntry, error)
	Update(ctx context.Context, id string, req dto.UpdateAvailabilityRequest) (*models.AvailabilityEntry, error)
	DeleteAvailability(ctx context.Context, id string) error
	BulkCreate(ctx context.Context, req dto.BulkAvailabilityRequest) (*models.BulkCreateResult, error)
}

// AvailabilityHandler exposes the availability data access layer.
type AvailabilityHandler struct {
	service availabilityService
}

// NewAvailabilityHandler builds a new handler.
func NewAvailabilityHandler(service availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// List godoc
// @Summary List availability in a date window
// @Tags Availability
// @Produce json
// @Param date_from query string true "First day (YYYY-MM-DD)"
// @Param date_to query string true "Last day (YYYY-MM-DD)"
// @Param trainer_id query []string false "Restrict to trainers" collectionFormat(multi)
// @Success 200 {object} response.Envelope
// @Router /availability [get]
func (h *AvailabilityHandler) List(c *gin.Context) {
	var req dto.AvailabilityListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid availability query"))
		return
	}
	entries, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Create godoc
// @Summary Record availability for one day
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body dto.CreateAvailabilityRequest true "Availability payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /availability [post]
func (h *AvailabilityHandler) Create(c *gin.Context) {
	var req dto.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid availability payload"))
		return
	}
	entry, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Update godoc
// @Summary Update one availability entry
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Availability ID"
// @Param payload body dto.UpdateAvailabilityRequest true "Availability payload"
// @Success 200 {object} response.Envelope
// @Router /availability/{id} [put]
func (h *AvailabilityHandler) Update(c *gin.Context) {
	var req dto.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid availability payload"))
		return
	}
	entry, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Delete godoc
// @Summary Delete one availability entry
// @Tags Availability
// @Param id path string true "Availability ID"
// @Success 204
// @Router /availability/{id} [delete]
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteAvailability(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// BulkCreate godoc
// @Summary Record the same availability on several days
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body dto.BulkAvailabilityRequest true "Bulk payload"
// @Success 201 {object} response.Envelope
// @Router /availability/bulk [post]
func (h *AvailabilityHandler) BulkCreate(c *gin.Context) {
	var req dto.BulkAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bulk payload"))
		return
	}
	result, err := h.service.BulkCreate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{"created": len(result.Created), "rejected": len(result.Rejected)}
	response.JSON(c, http.StatusCreated, result, nil, meta)
}
