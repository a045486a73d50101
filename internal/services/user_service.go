package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/praharilabs/prahari-backend/internal/dto"
	"github.com/praharilabs/prahari-backend/internal/models"
	"gorm.io/gorm"
)

var ErrNothingToUpdate = errors.New("Nothing to update")

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Me returns the user's profile with their latest 50 reports.
func (s *UserService) Me(ctx context.Context, user *models.User) (*dto.MeResponse, error) {
	var reports []models.Report
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_deleted = false", user.ID).
		Order("created_at DESC").Limit(50).Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}

	resp := &dto.MeResponse{
		User:    mapUserToResponse(user),
		Reports: make([]dto.MyReportSummary, len(reports)),
	}
	for i, r := range reports {
		resp.Reports[i] = dto.MyReportSummary{
			ID:         r.ID,
			Category:   r.Category,
			Title:      r.Title,
			Status:     r.Status,
			PtsAwarded: r.PtsAwarded,
			CreatedAt:  r.CreatedAt,
		}
	}
	return resp, nil
}

// UpdateProfile changes name and/or city, nothing else.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) error {
	updates := map[string]interface{}{}

	if req.Name != nil {
		name := sanitize(*req.Name, 80)
		if utf8.RuneCountInString(name) < 2 {
			return ErrNameLength
		}
		updates["name"] = name
	}
	if req.City != nil {
		updates["city"] = sanitize(*req.City, 100)
	}
	if len(updates) == 0 {
		return ErrNothingToUpdate
	}

	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
