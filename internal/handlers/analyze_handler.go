package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
	"github.com/yasmineajailia/ATS-AGENT/internal/repositories"
	"github.com/yasmineajailia/ATS-AGENT/internal/services"
)

type AnalyzeHandler struct {
	docRepo  repositories.DocumentRepository
	pipeline services.PipelineService
}

func NewAnalyzeHandler(
	docRepo repositories.DocumentRepository,
	pipeline services.PipelineService,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		docRepo:  docRepo,
		pipeline: pipeline,
	}
}

// HandleAnalyze handles POST /analyze. It scores an uploaded resume
// against an ad-hoc job description synchronously, without creating an
// application.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.ResumeDocumentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_document_id is required",
		})
	}

	if strings.TrimSpace(req.JobDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	docID, err := uuid.Parse(req.ResumeDocumentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume_document_id format",
		})
	}

	doc, err := h.docRepo.FindByID(docID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume document not found",
		})
	}

	result := h.pipeline.Analyze(c.Context(), doc.FilePath, req.JobDescription)
	if !result.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
	}

	return c.JSON(result)
}
