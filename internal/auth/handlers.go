package auth

import (
	"context"

	"getwealthos-backend/internal/domain"
	"getwealthos-backend/internal/middleware"
	"getwealthos-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const userSessionsPrefix = "user_sessions:"

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	DB        *gorm.DB
	Rdb       *redis.Client
	Config    middleware.SessionConfig
	JWTSecret string
}

// Register POST /api/v1/auth/register — create the account, open a
// session and return the user with a bearer token.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, ErrEmailPasswordRequired.Error(), fiber.StatusBadRequest, nil)
	}

	user, err := RegisterUser(h.DB, req)
	if err != nil {
		switch err {
		case ErrEmailPasswordRequired, ErrInvalidEmail, ErrInvalidFullname, ErrWeakPassword:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrEmailTaken:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			log.Error().Err(err).Msg("register failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	token, err := h.openSession(c, user)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Account created successfully", fiber.Map{
		"user":  h.userShape(user),
		"token": token,
	}, nil)
}

// Login POST /api/v1/auth/login — authenticate, create session, set
// cookie and return the user with a bearer token.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, ErrEmailPasswordRequired.Error(), fiber.StatusBadRequest, nil)
	}
	if req.Email == "" || req.Password == "" {
		return response.Error(c, ErrEmailPasswordRequired.Error(), fiber.StatusBadRequest, nil)
	}

	user, err := LoginUser(h.DB, req)
	if err != nil {
		switch err {
		case ErrEmailPasswordRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrInvalidEmail, ErrIncorrectPassword:
			return response.Error(c, err.Error(), fiber.StatusUnauthorized, nil)
		default:
			log.Error().Err(err).Msg("login failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	token, err := h.openSession(c, user)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Login successful", fiber.Map{
		"user":  h.userShape(user),
		"token": token,
	}, nil)
}

// Me GET /api/v1/auth/me — return current session user in standard success format.
// Session and token data carry no balance, so the stored row is re-read here.
func (h *Handlers) Me(c *fiber.Ctx) error {
	sessionUser, err := VerifyUser(middleware.GetUser(c))
	if err != nil {
		return response.Error(c, "Not authenticated", fiber.StatusUnauthorized, nil)
	}
	if h.DB != nil {
		if user, err := FindUserByID(h.DB, sessionUser.UserID); err == nil {
			return response.Success(c, "Authenticated", fiber.Map{"user": h.userShape(user)}, nil)
		}
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": sessionUser}, nil)
}

// Logout DELETE /api/v1/auth/logout — drop the session tracking entry,
// delete the session key and clear the cookie.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	sessionUser := middleware.GetUser(c)

	ctx := context.Background()

	if sessionUser != nil && sessionID != "" {
		if m, ok := sessionUser.(map[string]interface{}); ok {
			if userID, _ := m["user_id"].(string); userID != "" {
				_ = h.Rdb.SRem(ctx, userSessionsPrefix+userID, sessionID).Err()
			}
		}
	}
	if sessionID != "" {
		_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err()
	}

	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out successfully", nil, nil)
}

// openSession regenerates the session, tracks it in Redis, sets the
// cookie and issues the matching bearer token.
func (h *Handlers) openSession(c *fiber.Ctx, user *domain.User) (string, error) {
	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   user.UserID.String(),
		Fullname: user.Fullname,
		Email:    user.Email,
		Country:  user.CountryCode,
	})

	if h.Rdb != nil {
		if err := h.Rdb.SAdd(context.Background(), userSessionsPrefix+user.UserID.String(), sessionID).Err(); err != nil {
			return "", err
		}
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)

	return IssueToken(h.JWTSecret, user)
}

func (h *Handlers) userShape(user *domain.User) fiber.Map {
	return fiber.Map{
		"user_id":  user.UserID.String(),
		"fullname": user.Fullname,
		"email":    user.Email,
		"country":  user.CountryCode,
		"balance":  user.Balance,
	}
}
