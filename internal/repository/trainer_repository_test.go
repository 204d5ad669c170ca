package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/trainer-planning-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var trainerRowColumns = []string{"id", "user_id", "email", "full_name", "phone", "expertise", "active", "created_at", "updated_at"}

func TestTrainerRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(trainerRowColumns).
		AddRow("t1", "user-1", "a@example.com", "Trainer A", nil, nil, true, now, now).
		AddRow("t2", nil, "b@example.com", "Trainer B", nil, nil, true, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, email, full_name, phone, expertise, active, created_at, updated_at FROM trainers WHERE 1=1 AND active = $1 ORDER BY created_at ASC, full_name ASC")).
		WithArgs(true).
		WillReturnRows(rows)

	active := true
	list, err := repo.List(context.Background(), models.TrainerFilter{Active: &active})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "user-1", list[0].SubjectID())
	assert.Equal(t, "t2", list[1].SubjectID())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM trainers WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(trainerRowColumns))

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerRepositoryFindByUserID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM trainers WHERE user_id = $1")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(trainerRowColumns).AddRow("t1", "user-1", "a@example.com", "Trainer A", nil, nil, true, now, now))

	trainer, err := repo.FindByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "t1", trainer.ID)
	assert.Equal(t, "user-1", trainer.SubjectID())
	assert.NoError(t, mock.ExpectationsWereMet())
}
