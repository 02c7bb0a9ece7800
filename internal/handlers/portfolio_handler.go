package handlers

import (
	"errors"

	"github.com/andrewa30/portfolio-backend/internal/config"
	"github.com/andrewa30/portfolio-backend/internal/dto"
	"github.com/andrewa30/portfolio-backend/internal/middleware"
	"github.com/andrewa30/portfolio-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// PortfolioHandler serves the public read path and the stateless JSON API.
// The API exposes ownership errors explicitly: a foreign resource is 403,
// an absent one 404.
type PortfolioHandler struct {
	portfolios *services.PortfolioService
	cfg        *config.Config
}

func NewPortfolioHandler(portfolios *services.PortfolioService, cfg *config.Config) *PortfolioHandler {
	return &PortfolioHandler{portfolios: portfolios, cfg: cfg}
}

// serviceError maps the service's sentinel errors onto API statuses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Resource not found",
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized for this resource",
		})
	case errors.Is(err, dto.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing or malformed required field",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: msg})
}

func paramID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// Index renders the site landing page.
func (h *PortfolioHandler) Index(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{})
}

// View renders the newest profile for the public portfolio page.
func (h *PortfolioHandler) View(c *fiber.Ctx) error {
	profile, err := h.portfolios.Latest()
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		return serviceError(c, err)
	}
	return c.Render("portfolio", fiber.Map{
		"Profile":      profile,
		"ContactEmail": h.cfg.ContactEmail,
		"GithubURL":    h.cfg.GithubURL,
		"LinkedinURL":  h.cfg.LinkedinURL,
	})
}

// ListAll returns every profile with eager-loaded children. No profiles is
// an empty array, not an error.
func (h *PortfolioHandler) ListAll(c *fiber.Ctx) error {
	profiles, err := h.portfolios.ListAll()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(profiles)
}

func (h *PortfolioHandler) Create(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req dto.CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return serviceError(c, err)
	}

	profile, err := h.portfolios.CreateProfile(user.ID, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (h *PortfolioHandler) Update(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid profile id")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	profile, err := h.portfolios.UpdateProfile(id, user.ID, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(profile)
}

func (h *PortfolioHandler) Delete(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid profile id")
	}

	if err := h.portfolios.DeleteProfile(id, user.ID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- Skills ---

func (h *PortfolioHandler) AddSkill(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req dto.CreateSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return serviceError(c, err)
	}

	skill, err := h.portfolios.AddSkill(user.ID, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(skill)
}

func (h *PortfolioHandler) UpdateSkill(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid skill id")
	}

	var req dto.UpdateSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	skill, err := h.portfolios.UpdateSkill(id, user.ID, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(skill)
}

func (h *PortfolioHandler) DeleteSkill(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid skill id")
	}

	if err := h.portfolios.DeleteSkill(id, user.ID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- Experiences ---

func (h *PortfolioHandler) AddExperience(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req dto.CreateExperienceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return serviceError(c, err)
	}

	experience, err := h.portfolios.AddExperience(user.ID, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(experience)
}

func (h *PortfolioHandler) UpdateExperience(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid experience id")
	}

	var req dto.UpdateExperienceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	experience, err := h.portfolios.UpdateExperience(id, user.ID, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(experience)
}

func (h *PortfolioHandler) DeleteExperience(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid experience id")
	}

	if err := h.portfolios.DeleteExperience(id, user.ID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- Projects ---

func (h *PortfolioHandler) AddProject(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return serviceError(c, err)
	}

	project, err := h.portfolios.AddProject(user.ID, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

func (h *PortfolioHandler) UpdateProject(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid project id")
	}

	var req dto.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	project, err := h.portfolios.UpdateProject(id, user.ID, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(project)
}

func (h *PortfolioHandler) DeleteProject(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid project id")
	}

	if err := h.portfolios.DeleteProject(id, user.ID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
