package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"getwealthos-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthApp(t *testing.T) (*fiber.App, *Handlers) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	h := &Handlers{
		DB:        setupDB(t),
		Rdb:       rdb,
		Config:    middleware.SessionConfig{},
		JWTSecret: "test-secret",
	}
	app := fiber.New()
	app.Post("/register", h.Register)
	app.Post("/login", h.Login)
	app.Get("/me", h.Me)
	return app, h
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestRegisterThenLoginReturnsToken(t *testing.T) {
	app, _ := setupAuthApp(t)

	resp, body := postJSON(t, app, "/register", map[string]string{
		"fullname": "Amina Hassan",
		"email":    "amina@example.com",
		"password": "s3cret!pass",
		"country":  "EG",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "success", body["status"])

	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "EG", user["country"])
	assert.Equal(t, 0.0, user["balance"])

	resp2, body2 := postJSON(t, app, "/login", map[string]string{
		"email":    "amina@example.com",
		"password": "s3cret!pass",
	})
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	data2 := body2["data"].(map[string]interface{})
	assert.NotEmpty(t, data2["token"])
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	app, _ := setupAuthApp(t)
	payload := map[string]string{
		"fullname": "Amina Hassan",
		"email":    "amina@example.com",
		"password": "s3cret!pass",
	}
	resp, _ := postJSON(t, app, "/register", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp2, body := postJSON(t, app, "/register", payload)
	assert.Equal(t, http.StatusConflict, resp2.StatusCode)
	assert.Equal(t, "Email already registered", body["error"].(map[string]interface{})["message"])
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	app, h := setupAuthApp(t)
	_ = registerTestUser(t, h.DB)

	resp, body := postJSON(t, app, "/login", map[string]string{
		"email":    "amina@example.com",
		"password": "wrong-pass-1!",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Incorrect Password", body["error"].(map[string]interface{})["message"])
}

func TestMeWithoutSession(t *testing.T) {
	app, _ := setupAuthApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeWithBearerToken(t *testing.T) {
	_, h := setupAuthApp(t)
	user := registerTestUser(t, h.DB)
	token, err := IssueToken(h.JWTSecret, user)
	require.NoError(t, err)

	app := fiber.New()
	verify := func(tok string) (map[string]interface{}, error) {
		return ParseToken(h.JWTSecret, tok)
	}
	app.Get("/me", middleware.RequireAuth(verify), h.Me)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	me := body["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, user.UserID.String(), me["user_id"])
	assert.Equal(t, "EG", me["country"])
	assert.Equal(t, 0.0, me["balance"])
}

func TestMeReportsStoredBalance(t *testing.T) {
	_, h := setupAuthApp(t)
	user := registerTestUser(t, h.DB)
	require.NoError(t, h.DB.Model(user).Update("balance", 250.75).Error)
	token, err := IssueToken(h.JWTSecret, user)
	require.NoError(t, err)

	app := fiber.New()
	verify := func(tok string) (map[string]interface{}, error) {
		return ParseToken(h.JWTSecret, tok)
	}
	app.Get("/me", middleware.RequireAuth(verify), h.Me)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	me := body["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, 250.75, me["balance"])
}
