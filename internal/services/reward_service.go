package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/praharilabs/prahari-backend/internal/dto"
	"github.com/praharilabs/prahari-backend/internal/models"
	"github.com/praharilabs/prahari-backend/internal/policy"
	"gorm.io/gorm"
)

var (
	ErrInvalidReward      = errors.New("Invalid reward")
	ErrInsufficientPoints = errors.New("Insufficient points")
)

type RewardService struct {
	db     *gorm.DB
	tables *policy.Tables
}

func NewRewardService(db *gorm.DB, tables *policy.Tables) *RewardService {
	return &RewardService{db: db, tables: tables}
}

// Redeem deducts the reward cost and logs the redemption in one transaction.
// The deduction is a conditional update (pts >= cost in the WHERE clause), so
// two concurrent redemptions that are only jointly unaffordable can never
// drive the balance negative: the second one matches no row and fails.
func (s *RewardService) Redeem(ctx context.Context, userID uuid.UUID, rewardID string) (*dto.RedeemResponse, error) {
	reward, ok := s.tables.Reward(rewardID)
	if !ok {
		return nil, ErrInvalidReward
	}

	var remaining int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND pts >= ?", userID, reward.Pts).
			UpdateColumn("pts", gorm.Expr("pts - ?", reward.Pts))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientPoints
		}

		redemption := models.Redemption{
			ID:       uuid.New(),
			UserID:   userID,
			RewardID: rewardID,
			PtsSpent: reward.Pts,
		}
		if err := tx.Create(&redemption).Error; err != nil {
			return err
		}

		var pts []int
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Pluck("pts", &pts).Error; err != nil {
			return err
		}
		if len(pts) > 0 {
			remaining = pts[0]
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientPoints) {
			return nil, ErrInsufficientPoints
		}
		return nil, fmt.Errorf("failed to redeem reward: %w", err)
	}

	return &dto.RedeemResponse{
		Message:      reward.Label + " redeemed!",
		RemainingPts: remaining,
	}, nil
}
