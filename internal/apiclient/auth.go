package apiclient

import (
	"context"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// AuthResponse is what /auth/login, /auth/signup and /auth/refresh-token return. Some backend
// builds nest the profile under "user", others flatten it next to the token.
type AuthResponse struct {
	Token        string       `json:"token"`
	AccessToken  string       `json:"accessToken,omitempty"`
	RefreshToken string       `json:"refreshToken"`
	User         *models.User `json:"user,omitempty"`

	ID    uint        `json:"id,omitempty"`
	Name  string      `json:"name,omitempty"`
	Email string      `json:"email,omitempty"`
	Role  models.Role `json:"role,omitempty"`
}

// BearerToken returns whichever token field the backend filled.
func (r *AuthResponse) BearerToken() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

// Profile returns the user embedded in the response, or nil when none was sent.
func (r *AuthResponse) Profile() *models.User {
	if r.User != nil {
		return r.User
	}
	if r.ID == 0 && r.Email == "" {
		return nil
	}
	return &models.User{ID: r.ID, Name: r.Name, Email: r.Email, Role: r.Role}
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AuthAPI interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	RequestPasswordReset(ctx context.Context, email string) (*MessageResponse, error)
	ResetPassword(ctx context.Context, token, newPassword string) (*MessageResponse, error)
}

type authAPI struct {
	c *Client
}

func NewAuthAPI(c *Client) AuthAPI {
	return &authAPI{c: c}
}

func (a *authAPI) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := a.c.post(ctx, "/auth/login", "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *authAPI) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := a.c.post(ctx, "/auth/signup", "/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *authAPI) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	var resp AuthResponse
	body := map[string]string{"refreshToken": refreshToken}
	if err := a.c.post(ctx, "/auth/refresh-token", "/auth/refresh-token", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *authAPI) RequestPasswordReset(ctx context.Context, email string) (*MessageResponse, error) {
	var resp MessageResponse
	body := map[string]string{"email": email}
	if err := a.c.post(ctx, "/auth/password-reset-request", "/auth/password-reset-request", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *authAPI) ResetPassword(ctx context.Context, token, newPassword string) (*MessageResponse, error) {
	var resp MessageResponse
	body := map[string]string{"token": token, "newPassword": newPassword}
	if err := a.c.post(ctx, "/auth/password-reset", "/auth/password-reset", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
