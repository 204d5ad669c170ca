package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/trainer-planning-api/internal/dto"
	"github.com/noah-isme/trainer-planning-api/internal/models"
	"github.com/noah-isme/trainer-planning-api/internal/planning"
	"github.com/noah-isme/trainer-planning-api/pkg/calendar"
	appErrors "github.com/noah-isme/trainer-planning-api/pkg/errors"
)

func newTestPlanningService(repo *availabilityRepoMock, exports bool) *PlanningService {
	store := newTestAvailabilityService(repo, nil, nil)
	svc := NewPlanningService(store, store, nil, nil, nil, nil, PlanningServiceConfig{WeekStart: time.Monday, ExportsEnabled: exports})
	svc.now = func() time.Time { return time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestPlanningServiceMatrixDefaultsToCurrentWeek(t *testing.T) {
	repo := &availabilityRepoMock{}
	repo.seed("user-x", "2024-03-06", models.StatusUnavailable)
	svc := newTestPlanningService(repo, false)

	resp, err := svc.Matrix(context.Background(), dto.MatrixRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", calendar.Key(resp.Window.Start))
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "trainer-x", resp.Rows[0].Trainer.ID)
	require.NotNil(t, resp.Rows[0].Cells[2].Entry)
	assert.Equal(t, 1, resp.Rows[0].Summary.Unavailable)

	month, err := svc.Matrix(context.Background(), dto.MatrixRequest{View: "month", Date: "2024-02-10"})
	require.NoError(t, err)
	assert.Len(t, month.Rows[0].Cells, 29)

	_, err = svc.Matrix(context.Background(), dto.MatrixRequest{View: "year"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestPlanningServiceGestureSkipsRecordedDays(t *testing.T) {
	repo := &availabilityRepoMock{}
	repo.seed("user-x", "2024-03-06", models.StatusUnavailable)
	svc := newTestPlanningService(repo, false)

	resp, err := svc.ReplayGesture(context.Background(), dto.GestureRequest{
		TrainerID: "trainer-x",
		Anchor:    "2024-03-08",
		Release:   "2024-03-04",
		Status:    models.StatusPartial,
		Notes:     "conference",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Result)
	assert.Len(t, resp.Result.Created, 4)
	assert.Equal(t, "2024-03-04 to 2024-03-08", resp.Label)
	assert.Equal(t, planning.NoticeSuccess, resp.Notice.Kind)

	entries, err := repo.List(context.Background(), models.AvailabilityFilter{DateFrom: day(t, "2024-03-04"), DateTo: day(t, "2024-03-10")})
	require.NoError(t, err)
	assert.Len(t, entries, 5)
	for _, e := range entries {
		if calendar.Key(e.Date) == "2024-03-06" {
			assert.Equal(t, models.StatusUnavailable, e.Status)
			continue
		}
		assert.Equal(t, models.StatusPartial, e.Status)
		require.NotNil(t, e.Notes)
		assert.Equal(t, "conference", *e.Notes)
	}
}

func TestPlanningServiceGestureDryRunDoesNotWrite(t *testing.T) {
	repo := &availabilityRepoMock{}
	svc := newTestPlanningService(repo, false)

	resp, err := svc.ReplayGesture(context.Background(), dto.GestureRequest{TrainerID: "trainer-y", Anchor: "2024-03-05", DryRun: true})
	require.NoError(t, err)
	require.NotNil(t, resp.Draft)
	assert.Equal(t, []time.Time{day(t, "2024-03-05")}, resp.Draft.Dates)
	assert.Equal(t, models.StatusAvailable, resp.Draft.Status)
	assert.Equal(t, models.PeriodFullDay, resp.Draft.Period)
	assert.Nil(t, resp.Result)
	assert.Empty(t, repo.entries)
}

func TestPlanningServiceGestureRejections(t *testing.T) {
	repo := &availabilityRepoMock{}
	repo.seed("user-x", "2024-03-05", models.StatusAvailable)
	svc := newTestPlanningService(repo, false)
	ctx := context.Background()

	_, err := svc.ReplayGesture(ctx, dto.GestureRequest{TrainerID: "trainer-x", Anchor: "2024-03-05"})
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))

	_, err = svc.ReplayGesture(ctx, dto.GestureRequest{TrainerID: "trainer-old", Anchor: "2024-03-06"})
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	_, err = svc.ReplayGesture(ctx, dto.GestureRequest{TrainerID: "trainer-x", Anchor: "2024-03-06", Release: "2024-03-12"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.ReplayGesture(ctx, dto.GestureRequest{TrainerID: "trainer-x"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestPlanningServiceWeeklyResolvesCaller(t *testing.T) {
	repo := &availabilityRepoMock{}
	repo.seed("user-x", "2024-03-05", models.StatusAvailable)
	svc := newTestPlanningService(repo, false)

	resp, err := svc.Weekly(context.Background(), dto.WeeklyRequest{}, &models.JWTClaims{UserID: "user-x", Role: models.RoleTrainer})
	require.NoError(t, err)
	assert.Equal(t, "trainer-x", resp.Trainer.ID)
	require.Len(t, resp.Cells, 7)
	assert.NotNil(t, resp.Cells[1].Entry)

	_, err = svc.Weekly(context.Background(), dto.WeeklyRequest{}, nil)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	other, err := svc.Weekly(context.Background(), dto.WeeklyRequest{TrainerID: "trainer-y", Date: "2024-03-12"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", calendar.Key(other.Window.Start))
}

func TestPlanningServiceExport(t *testing.T) {
	repo := &availabilityRepoMock{}
	repo.seed("user-x", "2024-03-05", models.StatusAvailable)
	d, _ := calendar.ParseKey("2024-03-06")
	repo.store(&models.AvailabilityEntry{SubjectID: "trainer-y", Date: d, Status: models.StatusPartial, Period: models.PeriodMorning})

	_, err := newTestPlanningService(repo, false).Export(context.Background(), dto.ExportRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	svc := newTestPlanningService(repo, true)
	file, err := svc.Export(context.Background(), dto.ExportRequest{Format: "csv"})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "availability_2024-03-04_2024-03-10.csv", file.Filename)
	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Trainer,2024-03-04,"))
	assert.True(t, strings.HasSuffix(lines[0], "Available,Partial,Unavailable"))
	assert.Contains(t, lines[1], "Xavier,,Available,")
	assert.Contains(t, lines[2], "Yasmin,,,Partially available (Morning),")

	pdf, err := svc.Export(context.Background(), dto.ExportRequest{Format: "pdf", View: "month"})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdf.ContentType)
	assert.True(t, strings.HasPrefix(string(pdf.Data), "%PDF"))
}
