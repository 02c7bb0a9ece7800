package middleware

import (
	"github.com/andrewa30/portfolio-backend/internal/models"
	"github.com/andrewa30/portfolio-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SessionCookie names the admin session cookie.
const SessionCookie = "admin_token"

// SessionProtected guards the interactive admin UI. Missing, invalid, or
// expired sessions redirect to the login page instead of answering 401.
func SessionProtected(tokens *services.TokenService, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(SessionCookie)
		if cookie == "" {
			return c.Redirect("/admin/login", fiber.StatusSeeOther)
		}

		id, err := tokens.Verify(cookie)
		if err != nil {
			return c.Redirect("/admin/login", fiber.StatusSeeOther)
		}

		var user models.User
		if err := db.First(&user, "id = ?", id).Error; err != nil {
			return c.Redirect("/admin/login", fiber.StatusSeeOther)
		}

		c.Locals(currentUserKey, &user)
		return c.Next()
	}
}
