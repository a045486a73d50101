package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaderboardColumns() []string {
	return []string{"id", "name", "city", "badge", "title", "pts", "total_reports", "resolved", "rank"}
}

func TestLeaderboardRanksByPoints(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	mock.ExpectQuery(`RANK\(\) OVER \(ORDER BY u.pts DESC\)`).
		WillReturnRows(sqlmock.NewRows(leaderboardColumns()).
			AddRow(uuid.New(), "Asha", "Bengaluru", "⚔️", "TRUTH WARRIOR", 1200, 9, 4, 1).
			AddRow(uuid.New(), "Ravi", "Pune", "⚔️", "TRUTH WARRIOR", 800, 6, 2, 2))

	resp, err := svc.Leaderboard(context.Background(), "", "all")
	require.NoError(t, err)

	require.Len(t, resp.Leaderboard, 2)
	assert.Equal(t, 1, resp.Leaderboard[0].Rank)
	assert.Equal(t, 1200, resp.Leaderboard[0].Pts)
	assert.Equal(t, "Ravi", resp.Leaderboard[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaderboardCityFilterIsParameterized(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	mock.ExpectQuery(`WHERE u.city ILIKE \$1`).
		WithArgs("Bengaluru").
		WillReturnRows(sqlmock.NewRows(leaderboardColumns()))

	resp, err := svc.Leaderboard(context.Background(), "Bengaluru", "all")
	require.NoError(t, err)
	assert.Empty(t, resp.Leaderboard)
	assert.NotNil(t, resp.Leaderboard)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaderboardPeriodWindows(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	mock.ExpectQuery(`INTERVAL '7 days'`).
		WillReturnRows(sqlmock.NewRows(leaderboardColumns()))
	mock.ExpectQuery(`INTERVAL '30 days'`).
		WillReturnRows(sqlmock.NewRows(leaderboardColumns()))

	_, err := svc.Leaderboard(context.Background(), "", "week")
	require.NoError(t, err)
	_, err = svc.Leaderboard(context.Background(), "", "month")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNationalStats(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	mock.ExpectQuery(`FROM reports WHERE is_deleted = false`).
		WillReturnRows(sqlmock.NewRows([]string{"total_reports", "resolved", "active_users", "total_pts_given"}).
			AddRow(412, 120, 88, 61800))

	stats, err := svc.National(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(412), stats.TotalReports)
	assert.Equal(t, int64(120), stats.Resolved)
	assert.Equal(t, int64(88), stats.ActiveUsers)
	assert.Equal(t, int64(61800), stats.TotalPtsGiven)
	assert.NoError(t, mock.ExpectationsWereMet())
}
