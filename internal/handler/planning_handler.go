package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/trainer-planning-api/internal/dto"
	"github.com/noah-isme/trainer-planning-api/internal/middleware"
	"github.com/noah-isme/trainer-planning-api/internal/models"
	"github.com/noah-isme/trainer-planning-api/internal/service"
	appErrors "github.com/noah-isme/trainer-planning-api/pkg/errors"
	"github.com/noah-isme/trainer-planning-api/pkg/response"
)

type planningService interface {
	Matrix(ctx context.Context, req dto.MatrixRequest) (*dto.MatrixResponse, error)
	Weekly(ctx context.Context, req dto.WeeklyRequest, actor *models.JWTClaims) (*dto.WeeklyResponse, error)
	ReplayGesture(ctx context.Context, req dto.GestureRequest) (*dto.GestureResponse, error)
	Export(ctx context.Context, req dto.ExportRequest) (*service.ExportFile, error)
}

// PlanningHandler exposes the planning grid views.
type PlanningHandler struct {
	service planningService
}

// NewPlanningHandler builds a new handler.
func NewPlanningHandler(service planningService) *PlanningHandler {
	return &PlanningHandler{service: service}
}

// Matrix godoc
// @Summary Planning matrix of active trainers
// @Tags Planning
// @Produce json
// @Param view query string false "week or month"
// @Param date query string false "Any day inside the window (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /planning/matrix [get]
func (h *PlanningHandler) Matrix(c *gin.Context) {
	var req dto.MatrixRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid matrix query"))
		return
	}
	resp, err := h.service.Matrix(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "rows", len(resp.Rows))
	response.JSON(c, http.StatusOK, resp, nil, middleware.ExtractMeta(c))
}

// Weekly godoc
// @Summary Weekly grid of one trainer
// @Tags Planning
// @Produce json
// @Param trainer_id query string false "Trainer ID, defaults to the caller"
// @Param date query string false "Any day inside the week (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /planning/weekly [get]
func (h *PlanningHandler) Weekly(c *gin.Context) {
	var req dto.WeeklyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid weekly query"))
		return
	}
	resp, err := h.service.Weekly(c.Request.Context(), req, middleware.Claims(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil, middleware.ExtractMeta(c))
}

// Gesture godoc
// @Summary Replay a click or drag on the planning matrix
// @Tags Planning
// @Accept json
// @Produce json
// @Param payload body dto.GestureRequest true "Gesture payload"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Router /planning/gestures [post]
func (h *PlanningHandler) Gesture(c *gin.Context) {
	var req dto.GestureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid gesture payload"))
		return
	}
	resp, err := h.service.ReplayGesture(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if resp.Result != nil {
		status = http.StatusCreated
	}
	response.JSON(c, status, resp, nil, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Download the planning matrix as CSV or PDF
// @Tags Planning
// @Produce text/csv
// @Produce application/pdf
// @Param view query string false "week or month"
// @Param date query string false "Any day inside the window (YYYY-MM-DD)"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /planning/export [get]
func (h *PlanningHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export query"))
		return
	}
	file, err := h.service.Export(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
