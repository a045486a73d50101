package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/praharilabs/prahari-backend/internal/models"
	"github.com/praharilabs/prahari-backend/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSLAService(t *testing.T) (*SLAService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	return NewSLAService(db, policy.Default()), mock
}

func emptyReports() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"})
}

func TestSweepQueriesEveryCategoryWithItsOwnDeadline(t *testing.T) {
	svc, mock := testSLAService(t)
	tables := policy.Default()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, category := range tables.Categories() {
		cutoff := now.AddDate(0, 0, -tables.SLADays(category))
		mock.ExpectQuery(`SELECT (.+) FROM "reports"`).
			WithArgs(category, models.StatusVerified, cutoff).
			WillReturnRows(emptyReports())
	}

	svc.Sweep(context.Background(), now)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSweepFilesRTIForOverdueReports(t *testing.T) {
	svc, mock := testSLAService(t)
	tables := policy.Default()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	overdueID := uuid.New()

	for _, category := range tables.Categories() {
		cutoff := now.AddDate(0, 0, -tables.SLADays(category))
		rows := emptyReports()
		if category == "litter" {
			rows = sqlmock.NewRows([]string{"id", "category", "status", "city"}).
				AddRow(overdueID, "litter", models.StatusVerified, "Bengaluru")
		}
		mock.ExpectQuery(`SELECT (.+) FROM "reports"`).
			WithArgs(category, models.StatusVerified, cutoff).
			WillReturnRows(rows)
		if category == "litter" {
			mock.ExpectExec(`UPDATE "reports" SET (.+) WHERE id = \$\d+ AND rti_filed = false`).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
	}

	svc.Sweep(context.Background(), now)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSweepContinuesPastFailingCategory(t *testing.T) {
	svc, mock := testSLAService(t)
	tables := policy.Default()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	categories := tables.Categories()
	require.NotEmpty(t, categories)

	// First category blows up; every later one is still swept.
	mock.ExpectQuery(`SELECT (.+) FROM "reports"`).
		WillReturnError(errors.New("connection reset"))
	for range categories[1:] {
		mock.ExpectQuery(`SELECT (.+) FROM "reports"`).
			WillReturnRows(emptyReports())
	}

	svc.Sweep(context.Background(), now)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSweepSkipsWhenAlreadyRunning(t *testing.T) {
	svc, mock := testSLAService(t)

	// Simulate a sweep still in flight; no queries may run.
	require.True(t, svc.running.CompareAndSwap(false, true))
	defer svc.running.Store(false)

	svc.Sweep(context.Background(), time.Now().UTC())
	assert.NoError(t, mock.ExpectationsWereMet())
}
