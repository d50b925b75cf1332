package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shoplite/catalog-system/internal/api/metrics"
	"github.com/shoplite/catalog-system/internal/core/domain"
	"github.com/shoplite/catalog-system/internal/core/ports"
)

// AuthHandler exposes the identity service over HTTP. It never maps errors
// itself: domain errors bubble up to the central error handler so every
// entry point converts them identically.
type AuthHandler struct {
	identity ports.IdentityService
	audit    ports.AuditService
}

func NewAuthHandler(identity ports.IdentityService, audit ports.AuditService) *AuthHandler {
	return &AuthHandler{identity: identity, audit: audit}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
}

type registerPrivilegedRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Role     string `json:"role" validate:"required,oneof=admin manager user"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	ExpiresAt time.Time `json:"expires_at"`
}

type userResponse struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Roles:    u.Roles,
	}
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.identity.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Token:     result.Token,
		Username:  result.User.Username,
		Roles:     result.User.Roles,
		ExpiresAt: result.ExpiresAt,
	})
}

// Register creates a new account with the default user role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.identity.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// RegisterPrivileged creates an account with a caller-specified role.
// The admin requirement is enforced by the route's gatekeeper middleware.
//
// @Summary      Register a user with an explicit role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerPrivilegedRequest  true  "Registration details"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/register-privileged [post]
func (h *AuthHandler) RegisterPrivileged(c echo.Context) error {
	var req registerPrivilegedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.identity.RegisterPrivileged(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Profile returns the account behind the presented token.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	id, err := requestIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.identity.GetByUsername(c.Request().Context(), id.Subject)
	if err != nil {
		// A valid token whose account has since been deactivated is an
		// authentication failure, not a missing resource.
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "account no longer active")
		}
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// GetUser returns a user by id. Admin only.
//
// @Summary      Get a user by id
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/users/{id} [get]
func (h *AuthHandler) GetUser(c echo.Context) error {
	user, err := h.identity.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// DeactivateUser disables an account. Admin only. Outstanding tokens keep
// working until expiry.
//
// @Summary      Deactivate a user
// @Tags         auth
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/users/{id} [delete]
func (h *AuthHandler) DeactivateUser(c echo.Context) error {
	if err := h.identity.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAudit returns the most recent auth events. Admin only.
//
// @Summary      Recent auth events
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of events"
// @Success      200    {array}   domain.AuthEvent
// @Failure      403    {object}  map[string]string
// @Router       /auth/audit [get]
func (h *AuthHandler) ListAudit(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	events, err := h.audit.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
