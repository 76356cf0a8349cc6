package session

import (
	"context"
	"io"
	"time"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/apiclient"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/repository"
)

// --- Mock AuthAPI ---

type mockAuthAPI struct {
	loginFn        func(ctx context.Context, req apiclient.LoginRequest) (*apiclient.AuthResponse, error)
	signupFn       func(ctx context.Context, req apiclient.SignupRequest) (*apiclient.AuthResponse, error)
	refreshFn      func(ctx context.Context, refreshToken string) (*apiclient.AuthResponse, error)
	resetRequestFn func(ctx context.Context, email string) (*apiclient.MessageResponse, error)
	resetFn        func(ctx context.Context, token, newPassword string) (*apiclient.MessageResponse, error)
}

func (m *mockAuthAPI) Login(ctx context.Context, req apiclient.LoginRequest) (*apiclient.AuthResponse, error) {
	return m.loginFn(ctx, req)
}
func (m *mockAuthAPI) Signup(ctx context.Context, req apiclient.SignupRequest) (*apiclient.AuthResponse, error) {
	return m.signupFn(ctx, req)
}
func (m *mockAuthAPI) RefreshToken(ctx context.Context, refreshToken string) (*apiclient.AuthResponse, error) {
	return m.refreshFn(ctx, refreshToken)
}
func (m *mockAuthAPI) RequestPasswordReset(ctx context.Context, email string) (*apiclient.MessageResponse, error) {
	return m.resetRequestFn(ctx, email)
}
func (m *mockAuthAPI) ResetPassword(ctx context.Context, token, newPassword string) (*apiclient.MessageResponse, error) {
	return m.resetFn(ctx, token, newPassword)
}

// --- Mock UserAPI ---

type mockUserAPI struct {
	meFn      func(ctx context.Context) (*models.User, error)
	updateFn  func(ctx context.Context, id uint, req apiclient.UpdateUserRequest) (*models.User, error)
	pictureFn func(ctx context.Context, id uint, filename string, content io.Reader) (*models.User, error)
}

func (m *mockUserAPI) Me(ctx context.Context) (*models.User, error) { return m.meFn(ctx) }
func (m *mockUserAPI) List(context.Context) ([]models.User, error)  { return nil, nil }
func (m *mockUserAPI) Get(context.Context, uint) (*models.User, error) {
	return nil, nil
}
func (m *mockUserAPI) Update(ctx context.Context, id uint, req apiclient.UpdateUserRequest) (*models.User, error) {
	return m.updateFn(ctx, id, req)
}
func (m *mockUserAPI) CreateAdmin(context.Context, apiclient.CreateAdminRequest) (*models.User, error) {
	return nil, nil
}
func (m *mockUserAPI) Delete(context.Context, uint) error { return nil }
func (m *mockUserAPI) UploadProfilePicture(ctx context.Context, id uint, filename string, content io.Reader) (*models.User, error) {
	return m.pictureFn(ctx, id, filename, content)
}

// --- Mock SessionRepository ---

type mockSessionRepo struct {
	rows map[string]models.StoredSession
	err  error
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{rows: map[string]models.StoredSession{}}
}

func (m *mockSessionRepo) Save(_ context.Context, s *models.StoredSession) error {
	if m.err != nil {
		return m.err
	}
	m.rows[s.ID] = *s
	return nil
}
func (m *mockSessionRepo) FindByID(_ context.Context, id string) (*models.StoredSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	row, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return &row, nil
}
func (m *mockSessionRepo) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return m.err
}
func (m *mockSessionRepo) DeleteByUserID(_ context.Context, userID uint) (int64, error) {
	var n int64
	for id, row := range m.rows {
		if row.UserID == userID {
			delete(m.rows, id)
			n++
		}
	}
	return n, m.err
}
func (m *mockSessionRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for id, row := range m.rows {
		if row.ExpiresAt.Before(before) {
			delete(m.rows, id)
			n++
		}
	}
	return n, m.err
}
