package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/praharilabs/prahari-backend/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRewardService(t *testing.T) (*RewardService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	return NewRewardService(db, policy.Default()), mock
}

func TestRedeemDeductsPointsAndLogsRedemption(t *testing.T) {
	svc, mock := testRewardService(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "pts"=pts - \$1 WHERE id = \$2 AND pts >= \$3`).
		WithArgs(300, userID, 300).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "redemptions"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT "pts" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"pts"}).AddRow(150))
	mock.ExpectCommit()

	resp, err := svc.Redeem(context.Background(), userID, "r2")
	require.NoError(t, err)

	assert.Equal(t, "Metro Rides x3 redeemed!", resp.Message)
	assert.Equal(t, 150, resp.RemainingPts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemInsufficientPoints(t *testing.T) {
	svc, mock := testRewardService(t)

	mock.ExpectBegin()
	// Guarded update matched no row: balance below cost.
	mock.ExpectExec(`UPDATE "users" SET "pts"=pts - \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.Redeem(context.Background(), uuid.New(), "r5")
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemUnknownReward(t *testing.T) {
	svc, mock := testRewardService(t)

	// "r6" is a hole in the catalog; no SQL runs for it.
	_, err := svc.Redeem(context.Background(), uuid.New(), "r6")
	assert.ErrorIs(t, err, ErrInvalidReward)
	assert.NoError(t, mock.ExpectationsWereMet())
}
