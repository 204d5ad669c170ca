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

type trainerService interface {
	Trainers(ctx context.Context, req dto.TrainerListRequest) ([]models.Trainer, error)
}

// TrainerHandler exposes the trainer catalog.
type TrainerHandler struct {
	service trainerService
}

// NewTrainerHandler builds a new handler.
func NewTrainerHandler(service trainerService) *TrainerHandler {
	return &TrainerHandler{service: service}
}

// List godoc
// @Summary List trainers
// @Tags Trainers
// @Produce json
// @Param active query bool false "Filter by active flag"
// @Param search query string false "Name or email fragment"
// @Success 200 {object} response.Envelope
// @Router /trainers [get]
func (h *TrainerHandler) List(c *gin.Context) {
	var req dto.TrainerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid trainer query"))
		return
	}
	trainers, err := h.service.Trainers(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trainers, nil)
}
