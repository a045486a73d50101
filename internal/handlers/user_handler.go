package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/praharilabs/prahari-backend/internal/dto"
	"github.com/praharilabs/prahari-backend/internal/middleware"
	"github.com/praharilabs/prahari-backend/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	resp, err := h.userService.Me(c.Context(), user)
	if err != nil {
		slog.Error("profile fetch failed", "action", "get_me",
			"request_id", requestID(c), "user_id", user.ID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch profile",
		})
	}
	return c.JSON(resp)
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.userService.UpdateProfile(c.Context(), user.ID, &req); err != nil {
		if errors.Is(err, services.ErrNothingToUpdate) || errors.Is(err, services.ErrNameLength) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("profile update failed", "action", "update_me",
			"request_id", requestID(c), "user_id", user.ID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Update failed",
		})
	}
	return c.JSON(fiber.Map{"message": "Profile updated"})
}
