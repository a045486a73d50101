package dto

import "github.com/google/uuid"

type MeResponse struct {
	User    UserResponse      `json:"user"`
	Reports []MyReportSummary `json:"reports"`
}

type UpdateProfileRequest struct {
	Name *string `json:"name"`
	City *string `json:"city"`
}

type LeaderboardEntry struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	City         string    `json:"city,omitempty"`
	Badge        string    `json:"badge"`
	Title        string    `json:"title"`
	Pts          int       `json:"pts"`
	TotalReports int       `json:"total_reports"`
	Resolved     int       `json:"resolved"`
	Rank         int       `json:"rank"`
}

type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

type NationalStatsResponse struct {
	TotalReports  int64 `json:"total_reports"`
	Resolved      int64 `json:"resolved"`
	ActiveUsers   int64 `json:"active_users"`
	TotalPtsGiven int64 `json:"total_pts_given"`
}

type RedeemRequest struct {
	RewardID string `json:"rewardId"`
}

type RedeemResponse struct {
	Message      string `json:"message"`
	RemainingPts int    `json:"remainingPts"`
}
