package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(svc *Service) *fiber.App {
	app := fiber.New()
	handler := NewHandler(svc)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/signup", handler.Signup)
	authGroup.Post("/login", handler.Login)
	authGroup.Post("/reset-password/:token", handler.ResetPassword)

	protected := app.Group("", JWTMiddleware("test-secret"))
	protected.Post("/api/auth/change-password", handler.ChangePassword)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, headers map[string]string) *http.Response {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestSignupHandler(t *testing.T) {
	svc := newTestService(newFakeUserStore(), newFakeResetStore(), &fakeProvider{}, &fakeMailer{})
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/auth/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret-pass",
	}, nil)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	// Same email again conflicts regardless of password.
	resp = postJSON(t, app, "/api/auth/signup", map[string]string{
		"username": "eve",
		"email":    "alice@example.com",
		"password": "different-pass",
	}, nil)
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestSignupHandlerRejectsShortPassword(t *testing.T) {
	svc := newTestService(newFakeUserStore(), newFakeResetStore(), &fakeProvider{}, &fakeMailer{})
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/auth/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "short",
	}, nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestLoginHandler(t *testing.T) {
	svc := newTestService(newFakeUserStore(), newFakeResetStore(), &fakeProvider{}, &fakeMailer{})
	app := newTestApp(svc)

	postJSON(t, app, "/api/auth/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret-pass",
	}, nil)

	resp := postJSON(t, app, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "secret-pass",
	}, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if out.Token == "" {
		t.Fatal("expected a session token")
	}
	if out.User.Username != "alice" {
		t.Fatalf("unexpected user payload: %+v", out.User)
	}

	resp = postJSON(t, app, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-pass",
	}, nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestChangePasswordRequiresToken(t *testing.T) {
	svc := newTestService(newFakeUserStore(), newFakeResetStore(), &fakeProvider{}, &fakeMailer{})
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/auth/change-password", map[string]string{
		"currentPassword": "secret-pass",
		"newPassword":     "brand-new-pass",
	}, nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without bearer token, got %d", resp.StatusCode)
	}
}

func TestChangePasswordWithToken(t *testing.T) {
	svc := newTestService(newFakeUserStore(), newFakeResetStore(), &fakeProvider{}, &fakeMailer{})
	app := newTestApp(svc)

	postJSON(t, app, "/api/auth/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret-pass",
	}, nil)
	session, err := svc.Login("alice@example.com", "secret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	resp := postJSON(t, app, "/api/auth/change-password", map[string]string{
		"currentPassword": "secret-pass",
		"newPassword":     "brand-new-pass",
	}, map[string]string{"Authorization": "Bearer " + session.Token})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if _, err := svc.Login("alice@example.com", "brand-new-pass"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestResetPasswordHandlerRejectsBadToken(t *testing.T) {
	svc := newTestService(newFakeUserStore(), newFakeResetStore(), &fakeProvider{}, &fakeMailer{})
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/auth/reset-password/garbage", map[string]string{
		"newPassword": "newpass123",
	}, nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
