package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/praharilabs/prahari-backend/internal/database"
	"github.com/praharilabs/prahari-backend/internal/dto"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := database.Ping(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{
			Status:    "error",
			DB:        "disconnected",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		DB:        "connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
