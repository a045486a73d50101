package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/praharilabs/prahari-backend/internal/dto"
	"github.com/praharilabs/prahari-backend/internal/services"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) Leaderboard(c *fiber.Ctx) error {
	period := c.Query("period", "all")
	resp, err := h.statsService.Leaderboard(c.Context(), c.Query("city"), period)
	if err != nil {
		slog.Error("leaderboard failed", "action", "leaderboard",
			"request_id", requestID(c), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch leaderboard",
		})
	}
	return c.JSON(resp)
}

func (h *StatsHandler) National(c *fiber.Ctx) error {
	resp, err := h.statsService.National(c.Context())
	if err != nil {
		slog.Error("national stats failed", "action", "national_stats",
			"request_id", requestID(c), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch stats",
		})
	}
	return c.JSON(resp)
}
