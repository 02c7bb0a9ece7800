package routes

import (
	"time"

	"github.com/andrewa30/portfolio-backend/internal/config"
	"github.com/andrewa30/portfolio-backend/internal/handlers"
	"github.com/andrewa30/portfolio-backend/internal/middleware"
	"github.com/andrewa30/portfolio-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	tokens *services.TokenService,
	authHandler *handlers.AuthHandler,
	portfolioHandler *handlers.PortfolioHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Static("/static", cfg.StaticDir)

	app.Get("/", portfolioHandler.Index)
	app.Get("/api/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit than the rest of the app
	auth := app.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/create", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Public read path
	portfolio := app.Group("/portfolio")
	portfolio.Get("/", portfolioHandler.View)
	portfolio.Get("/all", portfolioHandler.ListAll)

	// Stateless API — bearer token required
	api := portfolio.Group("", middleware.JWTProtected(cfg), middleware.LoadUser(db))
	api.Post("/create", portfolioHandler.Create)
	api.Put("/update/:id", portfolioHandler.Update)
	api.Delete("/delete/:id", portfolioHandler.Delete)

	api.Post("/skill", portfolioHandler.AddSkill)
	api.Put("/skill/:id", portfolioHandler.UpdateSkill)
	api.Delete("/skill/:id", portfolioHandler.DeleteSkill)

	api.Post("/experience", portfolioHandler.AddExperience)
	api.Put("/experience/:id", portfolioHandler.UpdateExperience)
	api.Delete("/experience/:id", portfolioHandler.DeleteExperience)

	api.Post("/project", portfolioHandler.AddProject)
	api.Put("/project/:id", portfolioHandler.UpdateProject)
	api.Delete("/project/:id", portfolioHandler.DeleteProject)

	// Admin UI — cookie session required past the login page
	admin := app.Group("/admin")
	admin.Get("/login", adminHandler.LoginPage)
	admin.Post("/login", adminHandler.Login)

	ui := admin.Group("", middleware.SessionProtected(tokens, db))
	ui.Get("/logout", adminHandler.Logout)
	ui.Get("/dashboard", adminHandler.Dashboard)

	ui.Get("/profile/create", adminHandler.ProfileCreatePage)
	ui.Post("/profile/create", adminHandler.ProfileCreate)
	ui.Get("/profile/:id/edit", adminHandler.ProfileEditPage)
	ui.Post("/profile/:id/edit", adminHandler.ProfileEdit)
	ui.Post("/profile/:id/delete", adminHandler.ProfileDelete)

	ui.Get("/profile/:id/skills", adminHandler.Skills)
	ui.Get("/profile/:id/skills/create", adminHandler.SkillCreatePage)
	ui.Post("/profile/:id/skills/create", adminHandler.SkillCreate)
	ui.Get("/profile/:id/skills/:sid/edit", adminHandler.SkillEditPage)
	ui.Post("/profile/:id/skills/:sid/edit", adminHandler.SkillEdit)
	ui.Post("/profile/:id/skills/:sid/delete", adminHandler.SkillDelete)

	ui.Get("/profile/:id/experiences", adminHandler.Experiences)
	ui.Get("/profile/:id/experiences/create", adminHandler.ExperienceCreatePage)
	ui.Post("/profile/:id/experiences/create", adminHandler.ExperienceCreate)
	ui.Get("/profile/:id/experiences/:eid/edit", adminHandler.ExperienceEditPage)
	ui.Post("/profile/:id/experiences/:eid/edit", adminHandler.ExperienceEdit)
	ui.Post("/profile/:id/experiences/:eid/delete", adminHandler.ExperienceDelete)

	ui.Get("/profile/:id/projects", adminHandler.Projects)
	ui.Get("/profile/:id/projects/create", adminHandler.ProjectCreatePage)
	ui.Post("/profile/:id/projects/create", adminHandler.ProjectCreate)
	ui.Get("/profile/:id/projects/:pid/edit", adminHandler.ProjectEditPage)
	ui.Post("/profile/:id/projects/:pid/edit", adminHandler.ProjectEdit)
	ui.Post("/profile/:id/projects/:pid/delete", adminHandler.ProjectDelete)
}
