package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
	"github.com/yasmineajailia/ATS-AGENT/internal/repositories"
)

type EmployerHandler struct {
	employerRepo repositories.EmployerRepository
	jobRepo      repositories.JobRepository
}

func NewEmployerHandler(
	employerRepo repositories.EmployerRepository,
	jobRepo repositories.JobRepository,
) *EmployerHandler {
	return &EmployerHandler{
		employerRepo: employerRepo,
		jobRepo:      jobRepo,
	}
}

// HandleRegister handles POST /employers.
func (h *EmployerHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterEmployerRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A valid email is required",
		})
	}

	if strings.TrimSpace(req.CompanyName) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "company_name is required",
		})
	}

	employer := &models.Employer{
		Email:       req.Email,
		CompanyName: strings.TrimSpace(req.CompanyName),
		Industry:    req.Industry,
		Location:    req.Location,
	}

	if err := h.employerRepo.Create(employer); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to register employer",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(employer)
}

// HandleGetEmployer handles GET /employers/:id.
func (h *EmployerHandler) HandleGetEmployer(c *fiber.Ctx) error {
	employerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid employer ID format",
		})
	}

	employer, err := h.employerRepo.FindByID(employerID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Employer not found",
		})
	}

	return c.JSON(employer)
}

// HandleEmployerJobs handles GET /employers/:id/jobs.
func (h *EmployerHandler) HandleEmployerJobs(c *fiber.Ctx) error {
	employerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid employer ID format",
		})
	}

	if _, err := h.employerRepo.FindByID(employerID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Employer not found",
		})
	}

	jobs, err := h.jobRepo.FindByEmployer(employerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list jobs",
		})
	}

	return c.JSON(fiber.Map{
		"employer_id": employerID.String(),
		"total":       len(jobs),
		"jobs":        jobs,
	})
}
