package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/praharilabs/prahari-backend/internal/dto"
	"github.com/praharilabs/prahari-backend/internal/evidence"
	"github.com/praharilabs/prahari-backend/internal/middleware"
	"github.com/praharilabs/prahari-backend/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Create handles POST /reports - multipart submission with up to 5 evidence files.
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	req := dto.CreateReportRequest{
		Category:    c.FormValue("category"),
		Title:       c.FormValue("title"),
		Description: c.FormValue("desc"),
		Location:    c.FormValue("location"),
		City:        c.FormValue("city"),
		IsAnonymous: c.FormValue("is_anonymous", "true") == "true",
		IsUrgent:    c.FormValue("is_urgent") == "true",
	}
	if v := c.FormValue("lat"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.FieldErrorsResponse{
				Errors: []string{"Invalid latitude"},
			})
		}
		req.Lat = &lat
	}
	if v := c.FormValue("lng"); v != "" {
		lng, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.FieldErrorsResponse{
				Errors: []string{"Invalid longitude"},
			})
		}
		req.Lng = &lng
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["evidence"]
	}

	resp, err := h.reportService.Submit(c.Context(), user, &req, files)
	if err != nil {
		var fieldErrs services.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.FieldErrorsResponse{
				Errors: fieldErrs,
			})
		}
		if isEvidenceError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("report submission failed", "action", "submit_report",
			"request_id", requestID(c), "user_id", user.ID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to submit report. Please try again.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List handles GET /reports - the public feed.
func (h *ReportHandler) List(c *fiber.Ctx) error {
	q := dto.ListReportsQuery{
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 20),
		Category: c.Query("category"),
		City:     c.Query("city"),
		Status:   c.Query("status"),
	}

	resp, err := h.reportService.List(c.Context(), q)
	if err != nil {
		slog.Error("report feed failed", "action", "list_reports",
			"request_id", requestID(c), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}
	return c.JSON(resp)
}

// Get handles GET /reports/:id.
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	resp, err := h.reportService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Report not found",
			})
		}
		slog.Error("report fetch failed", "action", "get_report",
			"request_id", requestID(c), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch report",
		})
	}
	return c.JSON(resp)
}

// Vote handles POST /reports/:id/vote. Voting twice is a no-op.
func (h *ReportHandler) Vote(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	if err := h.reportService.Vote(c.Context(), id, user.ID); err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Report not found",
			})
		}
		slog.Error("vote failed", "action", "vote_report",
			"request_id", requestID(c), "user_id", user.ID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to record vote",
		})
	}
	return c.JSON(fiber.Map{"message": "Vote recorded"})
}

func isEvidenceError(err error) bool {
	return errors.Is(err, evidence.ErrTooManyFiles) ||
		errors.Is(err, evidence.ErrFileTooLarge) ||
		errors.Is(err, evidence.ErrUnsupportedType)
}
