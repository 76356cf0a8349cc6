package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/apiclient"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/dto"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/middleware"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/session"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/validation"
)

func newAuthHandler(m session.Manager) *AuthHandler {
	return NewAuthHandler(m, middleware.Cookies{Name: "sid"}, nil, nil)
}

func TestLogin_Handler_Success(t *testing.T) {
	m := &mockManager{
		loginFn: func(ctx context.Context, email, password string, remember bool) session.LoginResult {
			assert.Equal(t, "admin@example.com", email)
			assert.True(t, remember)
			return session.LoginResult{Success: true, Session: &session.Session{
				ID:        "new-sid",
				State:     session.Authenticated,
				Token:     "tok",
				Remember:  true,
				ExpiresAt: time.Now().Add(24 * time.Hour),
				User:      &models.User{ID: 1, Role: models.RoleAdmin},
			}}
		},
	}
	c, rec := newCtx(http.MethodPost, "/api/auth/login", `{"email":"admin@example.com","password":"secret1","rememberMe":true}`)

	require.NoError(t, newAuthHandler(m).Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Admin)
	assert.Equal(t, "/admin", resp.Redirect)

	cookie := rec.Header().Get(echo.HeaderSetCookie)
	assert.Contains(t, cookie, "sid=new-sid")
	assert.Contains(t, cookie, "Expires=")
	assert.NotContains(t, rec.Body.String(), "tok")
}

func TestLogin_Handler_Rejected(t *testing.T) {
	m := &mockManager{
		loginFn: func(ctx context.Context, email, password string, remember bool) session.LoginResult {
			return session.LoginResult{Message: "Invalid email or password"}
		},
	}
	c, rec := newCtx(http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"wrongpw"}`)

	require.NoError(t, newAuthHandler(m).Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid email or password"}`, rec.Body.String())
	assert.Empty(t, rec.Header().Get(echo.HeaderSetCookie))
}

func TestLogin_Handler_Invalid(t *testing.T) {
	c, _ := newCtx(http.MethodPost, "/api/auth/login", `{"email":"not-an-email"}`)

	err := newAuthHandler(&mockManager{}).Login(c)

	fe, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid email address", fe["email"])
	assert.Equal(t, "Password is required", fe["password"])
}

func TestSignup_Handler_PasswordMismatch(t *testing.T) {
	body := `{"name":"Ada","email":"ada@example.com","password":"secret1","confirmPassword":"secret2"}`
	c, _ := newCtx(http.MethodPost, "/api/auth/signup", body)

	err := newAuthHandler(&mockManager{}).Signup(c)

	fe, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Passwords do not match", fe["confirmPassword"])
}

func TestSignup_Handler_Success(t *testing.T) {
	m := &mockManager{
		registerFn: func(ctx context.Context, req apiclient.SignupRequest, remember bool) session.LoginResult {
			assert.Equal(t, "Ada", req.Name)
			return session.LoginResult{Success: true, Session: &session.Session{
				ID: "sid-9", State: session.Authenticated, Token: "tok", User: &models.User{ID: 9, Role: models.RoleUser},
			}}
		},
	}
	body := `{"name":"Ada","email":"ada@example.com","password":"secret1","confirmPassword":"secret1"}`
	c, rec := newCtx(http.MethodPost, "/api/auth/signup", body)

	require.NoError(t, newAuthHandler(m).Signup(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirect":"/"`)
	assert.Contains(t, rec.Header().Get(echo.HeaderSetCookie), "sid=sid-9")
}

func TestLogout_Handler(t *testing.T) {
	var loggedOut *session.Session
	m := &mockManager{
		logoutFn: func(ctx context.Context, s *session.Session) error {
			loggedOut = s
			return nil
		},
	}
	c, rec := newCtx(http.MethodPost, "/api/auth/logout", "")
	s := signedIn(c, 7, models.RoleUser)

	require.NoError(t, newAuthHandler(m).Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Same(t, s, loggedOut)
	assert.Contains(t, rec.Header().Get(echo.HeaderSetCookie), "sid=;")
	assert.False(t, middleware.CurrentSession(c).IsAuthenticated())
}

func TestSession_Handler_RestoreFailureClearsCookie(t *testing.T) {
	m := &mockManager{
		restoreFn: func(ctx context.Context, id string) *session.Session {
			assert.Equal(t, "stale", id)
			return session.Anonymous()
		},
	}
	c, rec := newCtx(http.MethodGet, "/api/auth/session", "")
	c.Request().AddCookie(&http.Cookie{Name: "sid", Value: "stale"})

	require.NoError(t, newAuthHandler(m).Session(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"state":"unauthenticated","authenticated":false,"admin":false}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderSetCookie), "sid=;")
}

func TestSession_Handler_Authenticated(t *testing.T) {
	m := &mockManager{
		restoreFn: func(ctx context.Context, id string) *session.Session {
			return &session.Session{ID: id, State: session.Authenticated, Token: "tok", User: &models.User{ID: 3, Name: "Ada"}}
		},
	}
	c, rec := newCtx(http.MethodGet, "/api/auth/session", "")
	c.Request().AddCookie(&http.Cookie{Name: "sid", Value: "live"})

	require.NoError(t, newAuthHandler(m).Session(c))

	var resp dto.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Authenticated)
	assert.Equal(t, "Ada", resp.User.Name)
	assert.Empty(t, rec.Header().Get(echo.HeaderSetCookie))
}

func TestRefreshToken_Handler_NoRefreshToken(t *testing.T) {
	m := &mockManager{
		refreshTokenFn: func(ctx context.Context, s *session.Session) (*session.Session, error) {
			return nil, session.ErrNoRefreshToken
		},
	}
	c, _ := newCtx(http.MethodPost, "/api/auth/refresh-token", "")
	signedIn(c, 7, models.RoleUser)

	err := newAuthHandler(m).RefreshToken(c)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestRequestPasswordReset_Handler(t *testing.T) {
	m := &mockManager{
		resetRequestFn: func(ctx context.Context, email string) (string, error) {
			assert.Equal(t, "ada@example.com", email)
			return "Reset link sent", nil
		},
	}
	c, rec := newCtx(http.MethodPost, "/api/auth/password-reset-request", `{"email":"ada@example.com"}`)

	require.NoError(t, newAuthHandler(m).RequestPasswordReset(c))
	assert.JSONEq(t, `{"message":"Reset link sent"}`, rec.Body.String())
}

func TestResetPassword_Handler_BackendRejects(t *testing.T) {
	m := &mockManager{
		resetFn: func(ctx context.Context, token, newPassword string) (string, error) {
			return "", backendErr(http.StatusBadRequest, "Reset token has expired")
		},
	}
	body := `{"token":"t","newPassword":"secret1","confirmPassword":"secret1"}`
	c, _ := newCtx(http.MethodPost, "/api/auth/password-reset", body)

	err := newAuthHandler(m).ResetPassword(c)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	assert.Equal(t, "Reset token has expired", httpMessage(t, err))
}

func TestUpdateProfile_Handler(t *testing.T) {
	m := &mockManager{
		updateProfileFn: func(ctx context.Context, s *session.Session, req apiclient.UpdateUserRequest) (*session.Session, error) {
			assert.Equal(t, "Ada L.", req.Name)
			next := *s
			next.User = &models.User{ID: s.UserID(), Name: req.Name}
			return &next, nil
		},
	}
	c, rec := newCtx(http.MethodPatch, "/api/profile", `{"name":"Ada L.","email":"ada@example.com"}`)
	signedIn(c, 7, models.RoleUser)

	require.NoError(t, newAuthHandler(m).UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Ada L."`)
}

func TestUploadPicture_Handler(t *testing.T) {
	var got string
	m := &mockManager{
		uploadFn: func(ctx context.Context, s *session.Session, filename string, content io.Reader) (*session.Session, error) {
			b, _ := io.ReadAll(content)
			got = filename + ":" + string(b)
			return s, nil
		},
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "me.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png-bytes"))
	require.NoError(t, w.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/profile/picture", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	signedIn(c, 7, models.RoleUser)

	require.NoError(t, newAuthHandler(m).UploadPicture(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "me.png:png-bytes", got)
}

func TestUploadPicture_Handler_NoFile(t *testing.T) {
	c, _ := newCtx(http.MethodPost, "/api/profile/picture", "")
	signedIn(c, 7, models.RoleUser)

	err := newAuthHandler(&mockManager{}).UploadPicture(c)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}
