package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/yasmineajailia/ATS-AGENT/internal/services"
)

type CandidateHandler struct {
	matchingService services.MatchingService
}

func NewCandidateHandler(matchingService services.MatchingService) *CandidateHandler {
	return &CandidateHandler{
		matchingService: matchingService,
	}
}

// HandleRankedCandidates handles GET /jobs/:id/candidates. Optional
// query params: min_score overrides the job's minimum score (use 0 to
// see every scored candidate), limit caps the list (default 50).
func (h *CandidateHandler) HandleRankedCandidates(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	var minScore *float64
	if raw := c.Query("min_score"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 100 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "min_score must be a number between 0 and 100",
			})
		}
		minScore = &parsed
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "limit must be a positive integer",
			})
		}
		limit = parsed
	}

	candidates, err := h.matchingService.RankedCandidates(jobID, minScore, limit)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	return c.JSON(fiber.Map{
		"job_id":     jobID.String(),
		"total":      len(candidates),
		"candidates": candidates,
	})
}

// HandleTopCandidates handles GET /jobs/:id/candidates/top. The n query
// param picks how many to return (default 10); the job's minimum score
// is ignored so the list is never empty while scored applications
// exist.
func (h *CandidateHandler) HandleTopCandidates(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	topN := 0
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "n must be a positive integer",
			})
		}
		topN = parsed
	}

	candidates, err := h.matchingService.TopCandidates(jobID, topN)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	return c.JSON(fiber.Map{
		"job_id":     jobID.String(),
		"total":      len(candidates),
		"candidates": candidates,
	})
}

// HandleJobStatistics handles GET /jobs/:id/statistics.
func (h *CandidateHandler) HandleJobStatistics(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	stats, err := h.matchingService.JobStatistics(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	return c.JSON(stats)
}
