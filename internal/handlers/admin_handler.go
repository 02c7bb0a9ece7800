package handlers

import (
	"errors"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/andrewa30/portfolio-backend/internal/config"
	"github.com/andrewa30/portfolio-backend/internal/dto"
	"github.com/andrewa30/portfolio-backend/internal/middleware"
	"github.com/andrewa30/portfolio-backend/internal/services"
	"github.com/andrewa30/portfolio-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler serves the cookie-session admin UI. Resources that exist but
// belong to another user are reported as 404, indistinguishable from absent
// ones, so the UI never confirms foreign resources exist.
type AdminHandler struct {
	auth       *services.AuthService
	tokens     *services.TokenService
	portfolios *services.PortfolioService
	uploads    *storage.Uploads
	cfg        *config.Config
}

func NewAdminHandler(
	auth *services.AuthService,
	tokens *services.TokenService,
	portfolios *services.PortfolioService,
	uploads *storage.Uploads,
	cfg *config.Config,
) *AdminHandler {
	return &AdminHandler{auth: auth, tokens: tokens, portfolios: portfolios, uploads: uploads, cfg: cfg}
}

// adminError collapses ownership failures into 404.
func adminError(err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrForbidden):
		return fiber.ErrNotFound
	case errors.Is(err, storage.ErrImageTooLarge),
		errors.Is(err, storage.ErrUnsupportedImage),
		errors.Is(err, dto.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
	}
}

// --- Session ---

func (h *AdminHandler) LoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{})
}

func (h *AdminHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.auth.Authenticate(email, password)
	if err != nil {
		return c.Render("login", fiber.Map{"Error": "Invalid email or password"})
	}

	token, err := h.tokens.Issue(user.ID, h.cfg.AdminSessionExpiry)
	if err != nil {
		return adminError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   int(h.cfg.AdminSessionExpiry.Seconds()),
	})
	return c.Redirect("/admin/dashboard", fiber.StatusSeeOther)
}

func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		HTTPOnly: true,
		MaxAge:   -1,
	})
	return c.Redirect("/admin/login", fiber.StatusSeeOther)
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}

	profiles, err := h.portfolios.ListByOwner(user.ID)
	if err != nil {
		return adminError(err)
	}
	return c.Render("admin", fiber.Map{"Profiles": profiles})
}

// --- Profiles ---

func (h *AdminHandler) ProfileCreatePage(c *fiber.Ctx) error {
	return c.Render("profile_form", fiber.Map{"Profile": nil})
}

func (h *AdminHandler) ProfileCreate(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}

	req, err := profileForm(c)
	if err != nil {
		return adminError(err)
	}

	if file := formImage(c); file != nil {
		path, err := h.uploads.SaveImage(file)
		if err != nil {
			return adminError(err)
		}
		req.Image = &path
	}

	if _, err := h.portfolios.CreateProfile(user.ID, req); err != nil {
		return adminError(err)
	}
	return c.Redirect("/admin/dashboard", fiber.StatusSeeOther)
}

func (h *AdminHandler) ProfileEditPage(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	id, err := paramID(c)
	if err != nil {
		return fiber.ErrNotFound
	}

	profile, err := h.portfolios.GetOwned(id, user.ID)
	if err != nil {
		return adminError(err)
	}
	return c.Render("profile_form", fiber.Map{"Profile": profile})
}

func (h *AdminHandler) ProfileEdit(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	id, err := paramID(c)
	if err != nil {
		return fiber.ErrNotFound
	}

	profile, err := h.portfolios.GetOwned(id, user.ID)
	if err != nil {
		return adminError(err)
	}

	form, err := profileForm(c)
	if err != nil {
		return adminError(err)
	}
	update := dto.UpdateProfileRequest{
		Name:       &form.Name,
		Age:        &form.Age,
		Education:  &form.Education,
		University: &form.University,
		Biography:  &form.Biography,
	}

	if file := formImage(c); file != nil {
		path, err := h.uploads.SaveImage(file)
		if err != nil {
			return adminError(err)
		}
		if profile.Image != nil {
			h.uploads.Remove(*profile.Image)
		}
		update.Image = &path
	}

	if _, err := h.portfolios.UpdateProfile(id, user.ID, &update); err != nil {
		return adminError(err)
	}
	return c.Redirect("/admin/dashboard", fiber.StatusSeeOther)
}

func (h *AdminHandler) ProfileDelete(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	id, err := paramID(c)
	if err != nil {
		return fiber.ErrNotFound
	}

	profile, err := h.portfolios.GetOwned(id, user.ID)
	if err != nil {
		return adminError(err)
	}
	if err := h.portfolios.DeleteProfile(id, user.ID); err != nil {
		return adminError(err)
	}
	if profile.Image != nil {
		h.uploads.Remove(*profile.Image)
	}
	return c.Redirect("/admin/dashboard", fiber.StatusSeeOther)
}

func profileForm(c *fiber.Ctx) (*dto.CreateProfileRequest, error) {
	age, err := strconv.Atoi(c.FormValue("age"))
	if err != nil {
		return nil, dto.ErrValidation
	}
	req := &dto.CreateProfileRequest{
		Name:       c.FormValue("name"),
		Age:        age,
		Education:  c.FormValue("education"),
		University: c.FormValue("university"),
		Biography:  c.FormValue("biography"),
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// formImage returns the uploaded image, or nil when the field was left
// empty.
func formImage(c *fiber.Ctx) *multipart.FileHeader {
	file, err := c.FormFile("image")
	if err != nil || file == nil || file.Filename == "" {
		return nil
	}
	return file
}

// --- Skills ---

func (h *AdminHandler) Skills(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, err := paramID(c)
	if err != nil {
		return fiber.ErrNotFound
	}

	skills, err := h.portfolios.ListSkills(profileID, user.ID)
	if err != nil {
		return adminError(err)
	}
	return c.Render("skills", fiber.Map{"ProfileID": profileID, "Skills": skills})
}

func (h *AdminHandler) SkillCreatePage(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, err := paramID(c)
	if err != nil {
		return fiber.ErrNotFound
	}
	if _, err := h.portfolios.GetOwned(profileID, user.ID); err != nil {
		return adminError(err)
	}
	return c.Render("skill_form", fiber.Map{"ProfileID": profileID, "Skill": nil})
}

func (h *AdminHandler) SkillCreate(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, err := paramID(c)
	if err != nil {
		return fiber.ErrNotFound
	}

	req := dto.CreateSkillRequest{
		ProfileID: profileID,
		Category:  c.FormValue("category"),
		Skill:     c.FormValue("skill"),
	}
	if err := req.Validate(); err != nil {
		return adminError(err)
	}
	if _, err := h.portfolios.AddSkill(user.ID, &req); err != nil {
		return adminError(err)
	}
	return c.Redirect("/admin/profile/"+profileID.String()+"/skills", fiber.StatusSeeOther)
}

func (h *AdminHandler) SkillEditPage(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, skillID, err := paramChildIDs(c, "sid")
	if err != nil {
		return fiber.ErrNotFound
	}

	skill, err := h.portfolios.SkillInProfile(profileID, skillID, user.ID)
	if err != nil {
		return adminError(err)
	}
	return c.Render("skill_form", fiber.Map{"ProfileID": profileID, "Skill": skill})
}

func (h *AdminHandler) SkillEdit(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, skillID, err := paramChildIDs(c, "sid")
	if err != nil {
		return fiber.ErrNotFound
	}

	skill, err := h.portfolios.SkillInProfile(profileID, skillID, user.ID)
	if err != nil {
		return adminError(err)
	}

	category := c.FormValue("category")
	name := c.FormValue("skill")
	update := dto.UpdateSkillRequest{Category: &category, Skill: &name}
	if _, err := h.portfolios.UpdateSkill(skill.ID, user.ID, &update); err != nil {
		return adminError(err)
	}
	return c.Redirect("/admin/profile/"+profileID.String()+"/skills", fiber.StatusSeeOther)
}

func (h *AdminHandler) SkillDelete(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, skillID, err := paramChildIDs(c, "sid")
	if err != nil {
		return fiber.ErrNotFound
	}

	skill, err := h.portfolios.SkillInProfile(profileID, skillID, user.ID)
	if err != nil {
		return adminError(err)
	}
	if err := h.portfolios.DeleteSkill(skill.ID, user.ID); err != nil {
		return adminError(err)
	}
	return c.Redirect("/admin/profile/"+profileID.String()+"/skills", fiber.StatusSeeOther)
}

// --- Experiences ---

func (h *AdminHandler) Experiences(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, err := paramID(c)
	if err != nil {
		return fiber.ErrNotFound
	}

	experiences, err := h.portfolios.ListExperiences(profileID, user.ID)
	if err != nil {
		return adminError(err)
	}
	return c.Render("experiences", fiber.Map{"ProfileID": profileID, "Experiences": experiences})
}

func (h *AdminHandler) ExperienceCreatePage(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, err := paramID(c)
	if err != nil {
		return fiber.ErrNotFound
	}
	if _, err := h.portfolios.GetOwned(profileID, user.ID); err != nil {
		return adminError(err)
	}
	return c.Render("experience_form", fiber.Map{"ProfileID": profileID, "Experience": nil})
}

func (h *AdminHandler) ExperienceCreate(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, err := paramID(c)
	if err != nil {
		return fiber.ErrNotFound
	}

	req, err := experienceForm(c, profileID)
	if err != nil {
		return adminError(err)
	}
	if _, err := h.portfolios.AddExperience(user.ID, req); err != nil {
		return adminError(err)
	}
	return c.Redirect("/admin/profile/"+profileID.String()+"/experiences", fiber.StatusSeeOther)
}

func (h *AdminHandler) ExperienceEditPage(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, experienceID, err := paramChildIDs(c, "eid")
	if err != nil {
		return fiber.ErrNotFound
	}

	experience, err := h.portfolios.ExperienceInProfile(profileID, experienceID, user.ID)
	if err != nil {
		return adminError(err)
	}
	return c.Render("experience_form", fiber.Map{"ProfileID": profileID, "Experience": experience})
}

func (h *AdminHandler) ExperienceEdit(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, experienceID, err := paramChildIDs(c, "eid")
	if err != nil {
		return fiber.ErrNotFound
	}

	experience, err := h.portfolios.ExperienceInProfile(profileID, experienceID, user.ID)
	if err != nil {
		return adminError(err)
	}

	form, err := experienceForm(c, profileID)
	if err != nil {
		return adminError(err)
	}
	// The form replaces the whole record; a nil end date means the
	// position is current and must overwrite any stored date.
	update := dto.UpdateExperienceRequest{
		Company:     &form.Company,
		Position:    &form.Position,
		StartDate:   &form.StartDate,
		EndDate:     form.EndDate,
		EndDateSet:  true,
		Description: &form.Description,
	}
	if _, err := h.portfolios.UpdateExperience(experience.ID, user.ID, &update); err != nil {
		return adminError(err)
	}
	return c.Redirect("/admin/profile/"+profileID.String()+"/experiences", fiber.StatusSeeOther)
}

func (h *AdminHandler) ExperienceDelete(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, experienceID, err := paramChildIDs(c, "eid")
	if err != nil {
		return fiber.ErrNotFound
	}

	experience, err := h.portfolios.ExperienceInProfile(profileID, experienceID, user.ID)
	if err != nil {
		return adminError(err)
	}
	if err := h.portfolios.DeleteExperience(experience.ID, user.ID); err != nil {
		return adminError(err)
	}
	return c.Redirect("/admin/profile/"+profileID.String()+"/experiences", fiber.StatusSeeOther)
}

func experienceForm(c *fiber.Ctx, profileID uuid.UUID) (*dto.CreateExperienceRequest, error) {
	start, err := time.Parse("2006-01-02", c.FormValue("start_date"))
	if err != nil {
		return nil, dto.ErrValidation
	}

	// The "current position" checkbox wins over any end date.
	var end *time.Time
	if c.FormValue("is_current") == "" {
		if raw := c.FormValue("end_date"); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return nil, dto.ErrValidation
			}
			end = &parsed
		}
	}

	req := &dto.CreateExperienceRequest{
		ProfileID:   profileID,
		Company:     c.FormValue("company"),
		Position:    c.FormValue("position"),
		StartDate:   start,
		EndDate:     end,
		Description: c.FormValue("description"),
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// --- Projects ---

func (h *AdminHandler) Projects(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, err := paramID(c)
	if err != nil {
		return fiber.ErrNotFound
	}

	projects, err := h.portfolios.ListProjects(profileID, user.ID)
	if err != nil {
		return adminError(err)
	}
	return c.Render("projects", fiber.Map{"ProfileID": profileID, "Projects": projects})
}

func (h *AdminHandler) ProjectCreatePage(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, err := paramID(c)
	if err != nil {
		return fiber.ErrNotFound
	}
	if _, err := h.portfolios.GetOwned(profileID, user.ID); err != nil {
		return adminError(err)
	}
	return c.Render("project_form", fiber.Map{"ProfileID": profileID, "Project": nil})
}

func (h *AdminHandler) ProjectCreate(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, err := paramID(c)
	if err != nil {
		return fiber.ErrNotFound
	}

	req := dto.CreateProjectRequest{
		ProfileID:   profileID,
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Link:        optional(c.FormValue("link")),
	}
	if err := req.Validate(); err != nil {
		return adminError(err)
	}
	if _, err := h.portfolios.AddProject(user.ID, &req); err != nil {
		return adminError(err)
	}
	return c.Redirect("/admin/profile/"+profileID.String()+"/projects", fiber.StatusSeeOther)
}

func (h *AdminHandler) ProjectEditPage(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, projectID, err := paramChildIDs(c, "pid")
	if err != nil {
		return fiber.ErrNotFound
	}

	project, err := h.portfolios.ProjectInProfile(profileID, projectID, user.ID)
	if err != nil {
		return adminError(err)
	}
	return c.Render("project_form", fiber.Map{"ProfileID": profileID, "Project": project})
}

func (h *AdminHandler) ProjectEdit(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, projectID, err := paramChildIDs(c, "pid")
	if err != nil {
		return fiber.ErrNotFound
	}

	project, err := h.portfolios.ProjectInProfile(profileID, projectID, user.ID)
	if err != nil {
		return adminError(err)
	}

	name := c.FormValue("name")
	description := c.FormValue("description")
	update := dto.UpdateProjectRequest{
		Name:        &name,
		Description: &description,
		Link:        optional(c.FormValue("link")),
		LinkSet:     true,
	}
	if _, err := h.portfolios.UpdateProject(project.ID, user.ID, &update); err != nil {
		return adminError(err)
	}
	return c.Redirect("/admin/profile/"+profileID.String()+"/projects", fiber.StatusSeeOther)
}

func (h *AdminHandler) ProjectDelete(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	profileID, projectID, err := paramChildIDs(c, "pid")
	if err != nil {
		return fiber.ErrNotFound
	}

	project, err := h.portfolios.ProjectInProfile(profileID, projectID, user.ID)
	if err != nil {
		return adminError(err)
	}
	if err := h.portfolios.DeleteProject(project.ID, user.ID); err != nil {
		return adminError(err)
	}
	return c.Redirect("/admin/profile/"+profileID.String()+"/projects", fiber.StatusSeeOther)
}

func paramChildIDs(c *fiber.Ctx, childParam string) (uuid.UUID, uuid.UUID, error) {
	profileID, err := paramID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	childID, err := uuid.Parse(c.Params(childParam))
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return profileID, childID, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
