package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/trainer-planning-api/internal/dto"
	"github.com/noah-isme/trainer-planning-api/internal/middleware"
	"github.com/noah-isme/trainer-planning-api/internal/models"
	appErrors "github.com/noah-isme/trainer-planning-api/pkg/errors"
)

type availabilityServiceMock struct {
	listReq   dto.AvailabilityListRequest
	createReq dto.CreateAvailabilityRequest
	createErr error
	deleteErr error
	bulkResp  *models.BulkCreateResult
}

func (m *availabilityServiceMock) List(ctx context.Context, req dto.AvailabilityListRequest) ([]models.AvailabilityEntry, error) {
	m.listReq = req
	return []models.AvailabilityEntry{{ID: "av-1", SubjectID: "user-x", Status: models.StatusAvailable}}, nil
}

func (m *availabilityServiceMock) Create(ctx context.Context, req dto.CreateAvailabilityRequest) (*models.AvailabilityEntry, error) {
	m.createReq = req
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &models.AvailabilityEntry{ID: "av-2", SubjectID: "user-x", Status: req.Status}, nil
}

func (m *availabilityServiceMock) Update(ctx context.Context, id string, req dto.UpdateAvailabilityRequest) (*models.AvailabilityEntry, error) {
	return &models.AvailabilityEntry{ID: id, Status: req.Status}, nil
}

func (m *availabilityServiceMock) DeleteAvailability(ctx context.Context, id string) error {
	return m.deleteErr
}

func (m *availabilityServiceMock) BulkCreate(ctx context.Context, req dto.BulkAvailabilityRequest) (*models.BulkCreateResult, error) {
	if m.bulkResp != nil {
		return m.bulkResp, nil
	}
	return &models.BulkCreateResult{Created: []models.AvailabilityEntry{}, Rejected: []models.BulkRejection{}}, nil
}

func newAdminContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin", Role: models.RoleAdmin})
	return c, w
}

func TestAvailabilityHandlerListBindsRepeatedTrainerIDs(t *testing.T) {
	svc := &availabilityServiceMock{}
	handler := NewAvailabilityHandler(svc)
	c, w := newAdminContext(http.MethodGet, "/availability?date_from=2024-03-04&date_to=2024-03-10&trainer_id=a&trainer_id=b", nil)

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"a", "b"}, svc.listReq.TrainerIDs)
	assert.Equal(t, "2024-03-04", svc.listReq.DateFrom)
	assert.Contains(t, w.Body.String(), `"subject_id":"user-x"`)
}

func TestAvailabilityHandlerCreateConflict(t *testing.T) {
	svc := &availabilityServiceMock{createErr: appErrors.Clone(appErrors.ErrConflict, "availability already recorded for this date")}
	handler := NewAvailabilityHandler(svc)
	body, _ := json.Marshal(dto.CreateAvailabilityRequest{TrainerID: "trainer-x", Date: "2024-03-05", Status: models.StatusAvailable})
	c, w := newAdminContext(http.MethodPost, "/availability", body)

	handler.Create(c)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"CONFLICT"`)
	assert.Equal(t, "trainer-x", svc.createReq.TrainerID)
}

func TestAvailabilityHandlerCreateInvalidBody(t *testing.T) {
	handler := NewAvailabilityHandler(&availabilityServiceMock{})
	c, w := newAdminContext(http.MethodPost, "/availability", []byte(`invalid`))

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailabilityHandlerDelete(t *testing.T) {
	handler := NewAvailabilityHandler(&availabilityServiceMock{})
	c, w := newAdminContext(http.MethodDelete, "/availability/av-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "av-1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)

	missing := NewAvailabilityHandler(&availabilityServiceMock{deleteErr: appErrors.Clone(appErrors.ErrNotFound, "availability not found")})
	c, w = newAdminContext(http.MethodDelete, "/availability/none", nil)
	missing.Delete(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAvailabilityHandlerBulkReportsCounts(t *testing.T) {
	svc := &availabilityServiceMock{bulkResp: &models.BulkCreateResult{
		Created:  []models.AvailabilityEntry{{ID: "av-3"}, {ID: "av-4"}},
		Rejected: []models.BulkRejection{{Reason: "already recorded"}},
	}}
	handler := NewAvailabilityHandler(svc)
	body, _ := json.Marshal(dto.BulkAvailabilityRequest{TrainerID: "trainer-x", Dates: []string{"2024-03-04", "2024-03-05", "2024-03-06"}})
	c, w := newAdminContext(http.MethodPost, "/availability/bulk", body)

	handler.BulkCreate(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Meta map[string]int `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 2, envelope.Meta["created"])
	assert.Equal(t, 1, envelope.Meta["rejected"])
}
