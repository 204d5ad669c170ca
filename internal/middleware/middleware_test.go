package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/trainer-planning-api/internal/models"
	"github.com/noah-isme/trainer-planning-api/internal/service"
	appErrors "github.com/noah-isme/trainer-planning-api/pkg/errors"
)

type validatorStub struct {
	claims *models.JWTClaims
	err    error
}

func (v validatorStub) ValidateToken(token string) (*models.JWTClaims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func newSecuredRouter(v TokenValidator, roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secured", JWT(v), RequireRoles(roles...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func serve(r *gin.Engine, header string) int {
	req := httptest.NewRequest(http.MethodGet, "/secured", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestJWTAndRBAC(t *testing.T) {
	admin := validatorStub{claims: &models.JWTClaims{UserID: "u1", Role: models.RoleAdmin}}
	trainer := validatorStub{claims: &models.JWTClaims{UserID: "u2", Role: models.RoleTrainer}}
	rejected := validatorStub{err: appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")}

	assert.Equal(t, http.StatusUnauthorized, serve(newSecuredRouter(admin, models.RoleAdmin), ""))
	assert.Equal(t, http.StatusUnauthorized, serve(newSecuredRouter(admin, models.RoleAdmin), "Token abc"))
	assert.Equal(t, http.StatusUnauthorized, serve(newSecuredRouter(rejected, models.RoleAdmin), "Bearer abc"))
	assert.Equal(t, http.StatusForbidden, serve(newSecuredRouter(trainer, models.RoleAdmin), "Bearer abc"))
	assert.Equal(t, http.StatusOK, serve(newSecuredRouter(admin, models.RoleAdmin, models.RoleSuperAdmin), "bearer abc"))
}

func TestJWTWithAuthService(t *testing.T) {
	auth := service.NewAuthService(nil, service.AuthConfig{AccessTokenSecret: "secret"})
	token, _, err := auth.IssueToken("u1", models.RoleTrainer, "", "")
	require.NoError(t, err)

	r := newSecuredRouter(auth, models.RoleTrainer)
	assert.Equal(t, http.StatusOK, serve(r, "Bearer "+token))
}

func TestResponseMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var meta map[string]interface{}
	r.GET("/meta", WithResponseMeta(), func(c *gin.Context) {
		SetMeta(c, "view", "week")
		meta = ExtractMeta(c)
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/meta", nil))

	require.NotNil(t, meta)
	assert.Equal(t, "week", meta["view"])
	assert.Contains(t, meta, "processing_time_ms")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, ExtractMeta(c))
}

func TestMetricsMiddlewareRecordsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metrics))
	r.GET("/planning/matrix", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/planning/matrix", nil))
	require.Equal(t, http.StatusOK, w.Code)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/planning/unknown-42", nil))

	families, err := metrics.Registry().Gather()
	require.NoError(t, err)
	paths := map[string]bool{}
	for _, f := range families {
		if f.GetName() != "http_requests_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "path" {
					paths[label.GetValue()] = true
				}
			}
		}
	}
	assert.True(t, paths["/planning/matrix"])
	assert.True(t, paths[unmatchedRoute])
	assert.False(t, paths["/planning/unknown-42"])
}
