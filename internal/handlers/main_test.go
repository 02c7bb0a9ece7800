package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/andrewa30/portfolio-backend/internal/config"
	"github.com/andrewa30/portfolio-backend/internal/database"
	"github.com/andrewa30/portfolio-backend/internal/handlers"
	"github.com/andrewa30/portfolio-backend/internal/routes"
	"github.com/andrewa30/portfolio-backend/internal/services"
	"github.com/andrewa30/portfolio-backend/internal/storage"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testApp struct {
	app       *fiber.App
	db        *gorm.DB
	uploadDir string
}

// newTestApp wires the full router against an in-memory database, the same
// composition main performs minus the listener.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	staticDir := t.TempDir()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTAlgorithm:       "HS256",
		AccessTokenExpiry:  15 * time.Minute,
		AdminSessionExpiry: 24 * time.Hour,
		StaticDir:          staticDir,
		UploadDir:          filepath.Join(staticDir, "uploads"),
		ContactEmail:       "me@example.com",
	}

	tokens, err := services.NewTokenService(cfg)
	if err != nil {
		t.Fatalf("failed to build token service: %v", err)
	}
	uploads, err := storage.NewUploads(cfg.UploadDir)
	if err != nil {
		t.Fatalf("failed to build upload store: %v", err)
	}

	authService := services.NewAuthService(db, tokens)
	portfolioService := services.NewPortfolioService(db)

	app := fiber.New(fiber.Config{
		Views:     html.New("../../views", ".html"),
		BodyLimit: 8 << 20,
	})
	routes.Setup(app, cfg, db, tokens,
		handlers.NewAuthHandler(authService),
		handlers.NewPortfolioHandler(portfolioService, cfg),
		handlers.NewAdminHandler(authService, tokens, portfolioService, uploads, cfg),
		handlers.NewHealthHandler(db),
	)

	return &testApp{app: app, db: db, uploadDir: cfg.UploadDir}
}

// jsonRequest performs a JSON API call; token, when non-empty, becomes the
// bearer credential.
func (ta *testApp) jsonRequest(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// formRequest posts url-encoded form fields, optionally with an admin
// session cookie.
func (ta *testApp) formRequest(t *testing.T, method, path string, form url.Values, cookie string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "admin_token", Value: cookie})
	}

	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

// registerAndLogin creates an account through the API and returns its bearer
// token.
func (ta *testApp) registerAndLogin(t *testing.T, email, password string) string {
	t.Helper()

	credentials := map[string]string{"email": email, "password": password}
	resp := ta.jsonRequest(t, fiber.MethodPost, "/auth/create", credentials, "")
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register %s: status %d", email, resp.StatusCode)
	}
	resp.Body.Close()

	resp = ta.jsonRequest(t, fiber.MethodPost, "/auth/login", credentials, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	token, ok := decodeJSON(t, resp)["access_token"].(string)
	if !ok || token == "" {
		t.Fatalf("login %s: no access_token in response", email)
	}
	return token
}

// createProfile makes a profile through the API and returns its id.
func (ta *testApp) createProfile(t *testing.T, token, name string) string {
	t.Helper()

	resp := ta.jsonRequest(t, fiber.MethodPost, "/portfolio/create", map[string]interface{}{
		"name":       name,
		"age":        30,
		"education":  "Computer Science",
		"university": "State University",
		"biography":  "Backend developer",
	}, token)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create profile: status %d", resp.StatusCode)
	}
	id, ok := decodeJSON(t, resp)["id"].(string)
	if !ok || id == "" {
		t.Fatal("create profile: no id in response")
	}
	return id
}

// adminLogin performs the form login and returns the session cookie value.
func (ta *testApp) adminLogin(t *testing.T, email, password string) string {
	t.Helper()

	resp := ta.formRequest(t, fiber.MethodPost, "/admin/login", url.Values{
		"email":    {email},
		"password": {password},
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("admin login: status %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "admin_token" && c.Value != "" {
			return c.Value
		}
	}
	t.Fatal("admin login: no session cookie set")
	return ""
}
