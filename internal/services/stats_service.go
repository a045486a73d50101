package services

import (
	"context"
	"fmt"

	"github.com/praharilabs/prahari-backend/internal/dto"
	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Leaderboard ranks the top 100 users by points. period filters the joined
// reports to the last week/month for the per-user report counts; "all"
// applies no date filter.
func (s *StatsService) Leaderboard(ctx context.Context, city, period string) (*dto.LeaderboardResponse, error) {
	dateFilter := ""
	switch period {
	case "week":
		dateFilter = "AND r.created_at > NOW() - INTERVAL '7 days'"
	case "month":
		dateFilter = "AND r.created_at > NOW() - INTERVAL '30 days'"
	}

	query := fmt.Sprintf(`
		SELECT u.id, u.name, u.city, u.badge, u.title, u.pts,
		       COUNT(r.id) AS total_reports,
		       COUNT(CASE WHEN r.status = 'resolved' THEN 1 END) AS resolved,
		       RANK() OVER (ORDER BY u.pts DESC) AS rank
		FROM users u
		LEFT JOIN reports r ON r.user_id = u.id AND r.is_deleted = false %s
		%s
		GROUP BY u.id
		ORDER BY u.pts DESC
		LIMIT 100`, dateFilter, cityClause(city))

	var entries []dto.LeaderboardEntry
	var err error
	if city != "" {
		err = s.db.WithContext(ctx).Raw(query, sanitize(city, 100)).Scan(&entries).Error
	} else {
		err = s.db.WithContext(ctx).Raw(query).Scan(&entries).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	if entries == nil {
		entries = []dto.LeaderboardEntry{}
	}
	return &dto.LeaderboardResponse{Leaderboard: entries}, nil
}

func cityClause(city string) string {
	if city == "" {
		return ""
	}
	return "WHERE u.city ILIKE ?"
}

// National returns the aggregate counters shown on the landing page.
func (s *StatsService) National(ctx context.Context) (*dto.NationalStatsResponse, error) {
	var stats dto.NationalStatsResponse
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_reports,
			COUNT(CASE WHEN status = 'resolved' THEN 1 END) AS resolved,
			COUNT(DISTINCT user_id) AS active_users,
			COALESCE(SUM(pts_awarded), 0) AS total_pts_given
		FROM reports WHERE is_deleted = false`).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch national stats: %w", err)
	}
	return &stats, nil
}
