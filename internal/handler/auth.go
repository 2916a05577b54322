package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/briochebrew/restaurant-reservation/internal/repository"
	"github.com/briochebrew/restaurant-reservation/internal/utils"
)

// AuthHandler authenticates staff accounts and issues access tokens for the
// admin surface.
type AuthHandler struct {
	Staff     *repository.StaffRepo
	JWTSecret string
	TokenTTL  int // minutes
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(staff *repository.StaffRepo, secret string, ttlMin int) *AuthHandler {
	if staff == nil {
		panic("nil repository passed to NewAuthHandler")
	}
	return &AuthHandler{Staff: staff, JWTSecret: secret, TokenTTL: ttlMin}
}

// Login handles POST /v1/auth/login.  Unknown emails and wrong passwords get
// the same response so the endpoint does not leak which accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	if body.Email == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	user, err := h.Staff.GetByEmail(c.Request().Context(), body.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !utils.VerifyPassword(user.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := utils.NewAccessToken(h.JWTSecret, user.ID, user.Role, h.TokenTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":      token.Token,
		"expires_at": token.Exp.Format(time.RFC3339),
		"role":       user.Role,
	})
}

// Me handles GET /v1/admin/me and returns the authenticated staff profile.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	user, err := h.Staff.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	})
}
