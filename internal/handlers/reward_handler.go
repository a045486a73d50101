package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/praharilabs/prahari-backend/internal/dto"
	"github.com/praharilabs/prahari-backend/internal/middleware"
	"github.com/praharilabs/prahari-backend/internal/services"
)

type RewardHandler struct {
	rewardService *services.RewardService
}

func NewRewardHandler(rewardService *services.RewardService) *RewardHandler {
	return &RewardHandler{rewardService: rewardService}
}

func (h *RewardHandler) Redeem(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.RedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.rewardService.Redeem(c.Context(), user.ID, req.RewardID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidReward) || errors.Is(err, services.ErrInsufficientPoints) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("redemption failed", "action", "redeem_reward",
			"request_id", requestID(c), "user_id", user.ID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Redemption failed",
		})
	}
	return c.JSON(resp)
}
