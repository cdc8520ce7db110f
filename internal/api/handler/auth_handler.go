package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cafehub/gateway/internal/api/middleware"
	"github.com/cafehub/gateway/internal/core/ports"
)

// AuthHandler handles login, registration, and logout.
type AuthHandler struct {
	aggregator  ports.Aggregator
	credentials ports.CredentialService
	tokenTTL    time.Duration
}

func NewAuthHandler(aggregator ports.Aggregator, credentials ports.CredentialService, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthHandler{aggregator: aggregator, credentials: credentials, tokenTTL: tokenTTL}
}

// Login authenticates against the core backend and installs the signed
// credential cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.aggregator.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	middleware.SetCredentialCookie(c, result.Token, int(h.tokenTTL.Seconds()))
	return c.JSON(http.StatusOK, loginResponse{Identity: result.Identity, Redirect: "/"})
}

// Register creates a new account. The password confirmation check is local;
// it never reaches the backend.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Password != req.Verify {
		return echo.NewHTTPError(http.StatusBadRequest, "passwords do not match")
	}

	err := h.aggregator.RegisterUser(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, statusResponse{Status: "registered"})
}

// Logout revokes the presented credential and clears the cookie. Revocation
// failures are not surfaced; the cookie is cleared either way.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.CredentialCookie); err == nil && cookie.Value != "" {
		_ = h.credentials.Revoke(c.Request().Context(), cookie.Value)
	}
	middleware.ClearCredentialCookie(c)
	return c.JSON(http.StatusOK, statusResponse{Status: "logged out"})
}
