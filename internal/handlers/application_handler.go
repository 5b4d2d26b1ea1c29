package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
	"github.com/yasmineajailia/ATS-AGENT/internal/repositories"
	"github.com/yasmineajailia/ATS-AGENT/internal/services"
)

type ApplicationHandler struct {
	appRepo         repositories.ApplicationRepository
	matchingService services.MatchingService
	worker          services.Worker
}

func NewApplicationHandler(
	appRepo repositories.ApplicationRepository,
	matchingService services.MatchingService,
	worker services.Worker,
) *ApplicationHandler {
	return &ApplicationHandler{
		appRepo:         appRepo,
		matchingService: matchingService,
		worker:          worker,
	}
}

// HandleApply handles POST /applications. The application is queued and
// scored by the worker; poll the result endpoint for the outcome.
func (h *ApplicationHandler) HandleApply(c *fiber.Ctx) error {
	var req models.ApplyRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.JobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_id is required",
		})
	}

	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	if req.ResumeDocumentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_document_id is required",
		})
	}

	// Parse UUIDs
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_id format",
		})
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user_id format",
		})
	}

	resumeDocID, err := uuid.Parse(req.ResumeDocumentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume_document_id format",
		})
	}

	app, err := h.matchingService.Apply(c.Context(), jobID, userID, resumeDocID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrAlreadyApplied):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, services.ErrJobNotActive):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	// Enqueue application for scoring
	h.worker.EnqueueJob(app.ID)

	// Return application ID immediately
	return c.Status(fiber.StatusAccepted).JSON(models.ApplyResponse{
		ID:     app.ID.String(),
		Status: string(models.StatusQueued),
	})
}

// HandleBatchApply handles POST /applications/batch. Unlike single
// apply it scores synchronously and returns ranked per-job outcomes.
func (h *ApplicationHandler) HandleBatchApply(c *fiber.Ctx) error {
	var req models.BatchApplyRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	if req.ResumeDocumentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_document_id is required",
		})
	}

	if len(req.JobIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_ids must not be empty",
		})
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user_id format",
		})
	}

	resumeDocID, err := uuid.Parse(req.ResumeDocumentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume_document_id format",
		})
	}

	jobIDs := make([]uuid.UUID, 0, len(req.JobIDs))
	for _, raw := range req.JobIDs {
		jobID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid job ID format: " + raw,
			})
		}
		jobIDs = append(jobIDs, jobID)
	}

	response, err := h.matchingService.BatchApply(c.Context(), userID, resumeDocID, jobIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(response)
}

// HandleUpdateStatus handles PATCH /applications/:id/status. Updates
// are last-write-wins; any valid status can follow any other.
func (h *ApplicationHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application ID format",
		})
	}

	var req models.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if !models.ValidReviewStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status. Must be one of: pending, reviewed, shortlisted, rejected, interviewed, hired",
		})
	}

	if err := h.appRepo.UpdateReviewStatus(appID, models.ReviewStatus(req.Status), req.Notes); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	return c.JSON(fiber.Map{
		"id":     appID.String(),
		"status": req.Status,
	})
}
