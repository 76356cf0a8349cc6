package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/apiclient"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/dto"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/middleware"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/session"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/validation"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/pkg/logger"
)

const (
	msgLoggedOut        = "You have been logged out."
	msgNoRefreshToken   = "This session cannot be extended. Please log in again."
	msgResetFailed      = "Could not reset your password. Please try again."
	msgProfileFailed    = "Failed to update profile. Please try again."
	msgPictureFailed    = "Failed to upload picture. Please try again."
	msgFileRequired     = "Please choose a file to upload."
	msgRefreshFailed    = "Could not refresh your session. Please try again."
	msgProfileLoadError = "Failed to load your profile."
)

type AuthHandler struct {
	sessions   session.Manager
	cookies    middleware.Cookies
	loginLimit echo.MiddlewareFunc
	logger     *zap.Logger
}

// NewAuthHandler wires the login, signup and profile endpoints. loginLimit guards the
// credential-checking routes and may be nil.
func NewAuthHandler(sessions session.Manager, cookies middleware.Cookies, loginLimit echo.MiddlewareFunc, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		sessions:   sessions,
		cookies:    cookies,
		loginLimit: loginLimit,
		logger:     logger.OrNop(log).Named("auth"),
	}
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	var limited []echo.MiddlewareFunc
	if h.loginLimit != nil {
		limited = append(limited, h.loginLimit)
	}

	auth := g.Group("/auth")
	auth.POST("/login", h.Login, limited...)
	auth.POST("/signup", h.Signup, limited...)
	auth.POST("/logout", h.Logout)
	auth.POST("/refresh-token", h.RefreshToken, middleware.RequireAuth())
	auth.POST("/password-reset-request", h.RequestPasswordReset, limited...)
	auth.POST("/password-reset", h.ResetPassword, limited...)
	auth.GET("/session", h.Session)

	profile := g.Group("/profile", middleware.RequireAuth())
	profile.GET("", h.Profile)
	profile.PATCH("", h.UpdateProfile)
	profile.POST("/picture", h.UploadPicture)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var form validation.LoginForm
	if err := bind(c, &form); err != nil {
		return err
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	res := h.sessions.Login(c.Request().Context(), form.Email, form.Password, form.RememberMe)
	return h.respondLogin(c, res)
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var form validation.SignupForm
	if err := bind(c, &form); err != nil {
		return err
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	res := h.sessions.Register(c.Request().Context(), apiclient.SignupRequest{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Phone:    form.Phone,
	}, false)
	return h.respondLogin(c, res)
}

func (h *AuthHandler) respondLogin(c echo.Context, res session.LoginResult) error {
	if !res.Success {
		return c.JSON(http.StatusUnauthorized, dto.ToLoginResponse(res))
	}
	h.cookies.Set(c, res.Session)
	middleware.SetSession(c, res.Session)
	return c.JSON(http.StatusOK, dto.ToLoginResponse(res))
}

// Logout only forgets the credential on this side; the backend keeps no session to end.
func (h *AuthHandler) Logout(c echo.Context) error {
	s := middleware.CurrentSession(c)
	if err := h.sessions.Logout(c.Request().Context(), s); err != nil {
		h.logger.Warn("logout", zap.Error(err))
	}
	h.cookies.Clear(c)
	middleware.SetSession(c, session.Anonymous())
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: msgLoggedOut, Redirect: dto.LoginPath})
}

// Session re-validates the stored credential against the backend. The storefront calls it
// once at start-up.
func (h *AuthHandler) Session(c echo.Context) error {
	id := h.cookies.Read(c)
	s := h.sessions.Restore(c.Request().Context(), id)
	if id != "" && !s.IsAuthenticated() {
		h.cookies.Clear(c)
	}
	return c.JSON(http.StatusOK, dto.ToSessionResponse(s))
}

func (h *AuthHandler) RefreshToken(c echo.Context) error {
	s, err := h.sessions.RefreshToken(c.Request().Context(), middleware.CurrentSession(c))
	if err != nil {
		if errors.Is(err, session.ErrNoRefreshToken) {
			return echo.NewHTTPError(http.StatusBadRequest, msgNoRefreshToken)
		}
		return backendError(err, msgRefreshFailed)
	}
	h.cookies.Set(c, s)
	return c.JSON(http.StatusOK, dto.ToSessionResponse(s))
}

func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var form validation.PasswordResetRequestForm
	if err := bind(c, &form); err != nil {
		return err
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	msg, err := h.sessions.RequestPasswordReset(c.Request().Context(), form.Email)
	if err != nil {
		return backendError(err, msgResetFailed)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var form validation.PasswordResetForm
	if err := bind(c, &form); err != nil {
		return err
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	msg, err := h.sessions.ResetPassword(c.Request().Context(), form.Token, form.NewPassword)
	if err != nil {
		return backendError(err, msgResetFailed)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: msg, Redirect: dto.LoginPath})
}

func (h *AuthHandler) Profile(c echo.Context) error {
	s, err := h.sessions.Refresh(c.Request().Context(), middleware.CurrentSession(c))
	if err != nil {
		return backendError(err, msgProfileLoadError)
	}
	return c.JSON(http.StatusOK, dto.ToSessionResponse(s))
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var form validation.ProfileForm
	if err := bind(c, &form); err != nil {
		return err
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	s, err := h.sessions.UpdateProfile(c.Request().Context(), middleware.CurrentSession(c), apiclient.UpdateUserRequest{
		Name:     form.Name,
		Email:    form.Email,
		Phone:    form.Phone,
		Password: form.Password,
	})
	if err != nil {
		return backendError(err, msgProfileFailed)
	}
	return c.JSON(http.StatusOK, dto.ToSessionResponse(s))
}

func (h *AuthHandler) UploadPicture(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgFileRequired)
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgFileRequired)
	}
	defer src.Close()

	s, err := h.sessions.UploadProfilePicture(c.Request().Context(), middleware.CurrentSession(c), file.Filename, src)
	if err != nil {
		return backendError(err, msgPictureFailed)
	}
	return c.JSON(http.StatusOK, dto.ToSessionResponse(s))
}
