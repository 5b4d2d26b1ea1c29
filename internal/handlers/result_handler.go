package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
	"github.com/yasmineajailia/ATS-AGENT/internal/repositories"
)

type ResultHandler struct {
	appRepo repositories.ApplicationRepository
}

func NewResultHandler(appRepo repositories.ApplicationRepository) *ResultHandler {
	return &ResultHandler{
		appRepo: appRepo,
	}
}

// HandleGetResult handles GET /applications/:id/result.
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	// Parse ID from params
	idParam := c.Params("id")
	appID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application ID format",
		})
	}

	// Get application
	app, err := h.appRepo.FindByID(appID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	// Build response based on processing status
	response := models.ApplicationResultResponse{
		ID:         app.ID.String(),
		JobID:      app.JobID.String(),
		UserID:     app.UserID.String(),
		Processing: string(app.Processing),
		Status:     string(app.Status),
		AppliedAt:  app.AppliedAt,
	}

	// If completed, include scores
	if app.Processing == models.StatusCompleted {
		result := &models.ApplicationScore{}
		if app.MatchScore != nil {
			result.MatchScore = *app.MatchScore
		}
		if app.SkillsScore != nil {
			result.SkillsScore = *app.SkillsScore
		}
		if app.TextScore != nil {
			result.TextScore = *app.TextScore
		}
		result.ATSScore = app.ATSScore
		if app.MatchLevel != nil {
			result.MatchLevel = *app.MatchLevel
		}
		if app.MeetsThreshold != nil {
			result.MeetsThreshold = *app.MeetsThreshold
		}
		if app.Recommendation != nil {
			result.Recommendation = *app.Recommendation
		}
		if app.MatchedSkills != nil {
			json.Unmarshal([]byte(*app.MatchedSkills), &result.MatchedSkills)
		}
		if app.MissingSkills != nil {
			json.Unmarshal([]byte(*app.MissingSkills), &result.MissingSkills)
		}
		response.Result = result
	}

	// If failed, include error message
	if app.Processing == models.StatusFailed && app.ErrorMessage != nil {
		response.ErrorMessage = app.ErrorMessage
	}

	return c.JSON(response)
}
