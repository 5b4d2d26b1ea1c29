package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
	"github.com/yasmineajailia/ATS-AGENT/internal/repositories"
)

type JobHandler struct {
	jobRepo      repositories.JobRepository
	employerRepo repositories.EmployerRepository
}

func NewJobHandler(
	jobRepo repositories.JobRepository,
	employerRepo repositories.EmployerRepository,
) *JobHandler {
	return &JobHandler{
		jobRepo:      jobRepo,
		employerRepo: employerRepo,
	}
}

// HandleCreateJob handles POST /jobs.
func (h *JobHandler) HandleCreateJob(c *fiber.Ctx) error {
	var req models.CreateJobRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.EmployerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "employer_id is required",
		})
	}

	if strings.TrimSpace(req.Title) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	if strings.TrimSpace(req.Description) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "description is required",
		})
	}

	employerID, err := uuid.Parse(req.EmployerID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid employer_id format",
		})
	}

	if _, err := h.employerRepo.FindByID(employerID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Employer not found",
		})
	}

	status := models.JobStatusActive
	if req.Status != "" {
		switch models.JobStatus(req.Status) {
		case models.JobStatusActive, models.JobStatusClosed, models.JobStatusDraft:
			status = models.JobStatus(req.Status)
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid status. Must be one of: active, closed, draft",
			})
		}
	}

	minimumScore := models.DefaultMinimumScore
	if req.MinimumScore != nil {
		if *req.MinimumScore < 0 || *req.MinimumScore > 100 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "minimum_score must be between 0 and 100",
			})
		}
		minimumScore = *req.MinimumScore
	}

	job := &models.Job{
		EmployerID:     employerID,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Requirements:   req.Requirements,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		MinimumScore:   minimumScore,
		Status:         status,
		ClosesAt:       req.ClosesAt,
	}

	if len(req.RequiredSkills) > 0 {
		skillsJSON, err := json.Marshal(req.RequiredSkills)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid required_skills",
			})
		}
		job.RequiredSkills = string(skillsJSON)
	}

	if err := h.jobRepo.Create(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create job",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleGetJob handles GET /jobs/:id.
func (h *JobHandler) HandleGetJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	return c.JSON(job)
}

// HandleListActiveJobs handles GET /jobs.
func (h *JobHandler) HandleListActiveJobs(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.FindActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list jobs",
		})
	}

	return c.JSON(fiber.Map{
		"total": len(jobs),
		"jobs":  jobs,
	})
}

// HandleUpdateJobStatus handles PATCH /jobs/:id/status.
func (h *JobHandler) HandleUpdateJobStatus(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	status := models.JobStatus(req.Status)
	switch status {
	case models.JobStatusActive, models.JobStatusClosed, models.JobStatusDraft:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status. Must be one of: active, closed, draft",
		})
	}

	if err := h.jobRepo.UpdateStatus(jobID, status); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	return c.JSON(fiber.Map{
		"id":     jobID.String(),
		"status": string(status),
	})
}
