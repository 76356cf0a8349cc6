package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/apiclient"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/events"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/pkg/logger"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/pkg/metrics"
)

const (
	msgLoginFailed    = "Login failed. Please check your credentials and try again."
	msgSignupFailed   = "Registration failed. Please try again."
	msgSessionFailed  = "Could not start your session. Please try again."
	msgResetRequested = "If an account exists for that email, a reset link has been sent."
	msgResetDone      = "Your password has been reset. Please log in."
)

var ErrNoRefreshToken = errors.New("no refresh token stored")

type Manager interface {
	// Load returns the cached session for id without calling the backend.
	Load(ctx context.Context, id string) *Session
	// Restore re-validates the stored credential against /users/me. Any failure silently
	// yields an unauthenticated session and drops the credential.
	Restore(ctx context.Context, id string) *Session
	Login(ctx context.Context, email, password string, remember bool) LoginResult
	Register(ctx context.Context, req apiclient.SignupRequest, remember bool) LoginResult
	Refresh(ctx context.Context, s *Session) (*Session, error)
	RefreshToken(ctx context.Context, s *Session) (*Session, error)
	UpdateProfile(ctx context.Context, s *Session, req apiclient.UpdateUserRequest) (*Session, error)
	UploadProfilePicture(ctx context.Context, s *Session, filename string, content io.Reader) (*Session, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
	// Logout forgets the credential locally. The backend is not told.
	Logout(ctx context.Context, s *Session) error
	// Unauthorized is the API client's 401 hook: it purges the session named on ctx.
	Unauthorized(ctx context.Context)
	Purge(ctx context.Context, id string)
	RevokeUser(ctx context.Context, userID uint) (int, error)
	PurgeExpired(ctx context.Context) (int, error)
}

type Options struct {
	Auth    apiclient.AuthAPI
	Users   apiclient.UserAPI
	Memory  Store
	Durable Store // nil keeps remember-me logins in Memory as well
	Events  *events.Emitter
	Logger  *zap.Logger

	SessionTTL  time.Duration
	RememberTTL time.Duration
	Now         func() time.Time
}

type manager struct {
	auth    apiclient.AuthAPI
	users   apiclient.UserAPI
	memory  Store
	durable Store
	events  *events.Emitter
	logger  *zap.Logger

	sessionTTL  time.Duration
	rememberTTL time.Duration
	now         func() time.Time
}

func NewManager(o Options) Manager {
	m := &manager{
		auth:        o.Auth,
		users:       o.Users,
		memory:      o.Memory,
		durable:     o.Durable,
		events:      o.Events,
		logger:      logger.OrNop(o.Logger).Named("session"),
		sessionTTL:  o.SessionTTL,
		rememberTTL: o.RememberTTL,
		now:         o.Now,
	}
	if m.memory == nil {
		m.memory = NewMemoryStore()
	}
	if m.durable == nil {
		m.durable = m.memory
	}
	if m.sessionTTL <= 0 {
		m.sessionTTL = 12 * time.Hour
	}
	if m.rememberTTL <= 0 {
		m.rememberTTL = 30 * 24 * time.Hour
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

func (m *manager) storeFor(remember bool) Store {
	if remember {
		return m.durable
	}
	return m.memory
}

// lookup checks the session store first, then the durable one.
func (m *manager) lookup(ctx context.Context, id string) (*Record, bool, error) {
	rec, err := m.memory.Get(ctx, id)
	if err == nil {
		return rec, false, nil
	}
	if !errors.Is(err, ErrNotFound) || m.durable == m.memory {
		return nil, false, err
	}
	rec, err = m.durable.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

func (m *manager) Load(ctx context.Context, id string) *Session {
	if id == "" {
		return Anonymous()
	}
	rec, remember, err := m.lookup(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.logger.Error("load session", zap.Error(err))
		}
		return Anonymous()
	}
	return toSession(id, rec, remember)
}

func (m *manager) Restore(ctx context.Context, id string) *Session {
	s := m.Load(ctx, id)
	if !s.IsAuthenticated() {
		return s
	}
	s.State = Loading

	u, err := m.users.Me(apiclient.WithToken(WithID(ctx, id), s.Token))
	if err != nil {
		m.logger.Info("stored credential rejected, resetting session", zap.Error(err))
		metrics.SessionEvent("restore_failed")
		m.drop(ctx, id)
		return Anonymous()
	}

	s.User = u
	s.State = Authenticated
	if err := m.save(ctx, s); err != nil {
		m.logger.Warn("cache refreshed profile", zap.Error(err))
	}
	return s
}

func (m *manager) Login(ctx context.Context, email, password string, remember bool) LoginResult {
	resp, err := m.auth.Login(ctx, apiclient.LoginRequest{Email: email, Password: password})
	if err != nil {
		m.logger.Info("login rejected", zap.String("email", email), zap.Error(err))
		metrics.SessionEvent("login_failed")
		return LoginResult{Message: apiclient.UserMessage(err, msgLoginFailed)}
	}
	return m.establish(ctx, resp, remember)
}

func (m *manager) Register(ctx context.Context, req apiclient.SignupRequest, remember bool) LoginResult {
	resp, err := m.auth.Signup(ctx, req)
	if err != nil {
		m.logger.Info("signup rejected", zap.String("email", req.Email), zap.Error(err))
		return LoginResult{Message: apiclient.UserMessage(err, msgSignupFailed)}
	}
	if resp.BearerToken() != "" {
		return m.establish(ctx, resp, remember)
	}
	// Some backends only create the account; log in with the same credentials.
	return m.Login(ctx, req.Email, req.Password, remember)
}

// establish turns a successful auth response into a stored, authenticated session.
func (m *manager) establish(ctx context.Context, resp *apiclient.AuthResponse, remember bool) LoginResult {
	token := resp.BearerToken()
	if token == "" {
		m.logger.Warn("auth response carried no token")
		return LoginResult{Message: msgSessionFailed}
	}

	exp, role := claims(token)
	user := resp.Profile()
	if user == nil {
		u, err := m.users.Me(apiclient.WithToken(ctx, token))
		if err != nil {
			m.logger.Warn("fetch profile after login", zap.Error(err))
			return LoginResult{Message: apiclient.UserMessage(err, msgSessionFailed)}
		}
		user = u
	}
	if user.Role == "" {
		user.Role = role
	}

	s := &Session{
		ID:           uuid.NewString(),
		State:        Authenticated,
		User:         user,
		Token:        token,
		RefreshToken: resp.RefreshToken,
		Remember:     remember,
	}
	s.ExpiresAt = m.expiry(remember, exp, s.RefreshToken)

	if err := m.save(ctx, s); err != nil {
		m.logger.Error("store session", zap.Error(err))
		return LoginResult{Message: msgSessionFailed}
	}
	// The browser gets a fresh id; whatever it carried before is dead.
	if prev := IDFrom(ctx); prev != "" && prev != s.ID {
		m.drop(ctx, prev)
	}

	metrics.SessionEvent("login")
	m.events.Emit(events.SessionLogin, user.ID, map[string]any{"remember": remember})
	m.logger.Info("session started", zap.Uint("user_id", user.ID), zap.Bool("remember", remember))
	return LoginResult{Success: true, Session: s}
}

// expiry is now plus the TTL for the storage kind, cut short by the token's own exp when no
// refresh token could extend it.
func (m *manager) expiry(remember bool, tokenExp time.Time, refreshToken string) time.Time {
	ttl := m.sessionTTL
	if remember {
		ttl = m.rememberTTL
	}
	exp := m.now().Add(ttl)
	if refreshToken == "" && !tokenExp.IsZero() && tokenExp.Before(exp) {
		return tokenExp
	}
	return exp
}

func (m *manager) Refresh(ctx context.Context, s *Session) (*Session, error) {
	if !s.IsAuthenticated() {
		return nil, apiclient.ErrUnauthorized
	}
	u, err := m.users.Me(apiclient.WithToken(ctx, s.Token))
	if err != nil {
		return nil, err
	}
	next := *s
	next.User = u
	if err := m.save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (m *manager) RefreshToken(ctx context.Context, s *Session) (*Session, error) {
	if !s.IsAuthenticated() {
		return nil, apiclient.ErrUnauthorized
	}
	if s.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}
	resp, err := m.auth.RefreshToken(ctx, s.RefreshToken)
	if err != nil {
		return nil, err
	}
	token := resp.BearerToken()
	if token == "" {
		return nil, errors.New("refresh response carried no token")
	}

	next := *s
	next.Token = token
	if resp.RefreshToken != "" {
		next.RefreshToken = resp.RefreshToken
	}
	if u := resp.Profile(); u != nil {
		next.User = u
	}
	exp, _ := claims(token)
	next.ExpiresAt = m.expiry(next.Remember, exp, next.RefreshToken)

	if err := m.save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (m *manager) UpdateProfile(ctx context.Context, s *Session, req apiclient.UpdateUserRequest) (*Session, error) {
	if !s.IsAuthenticated() || s.User == nil {
		return nil, apiclient.ErrUnauthorized
	}
	if _, err := m.users.Update(apiclient.WithToken(ctx, s.Token), s.User.ID, req); err != nil {
		return nil, err
	}
	return m.Refresh(ctx, s)
}

func (m *manager) UploadProfilePicture(ctx context.Context, s *Session, filename string, content io.Reader) (*Session, error) {
	if !s.IsAuthenticated() || s.User == nil {
		return nil, apiclient.ErrUnauthorized
	}
	if _, err := m.users.UploadProfilePicture(apiclient.WithToken(ctx, s.Token), s.User.ID, filename, content); err != nil {
		return nil, err
	}
	return m.Refresh(ctx, s)
}

func (m *manager) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	resp, err := m.auth.RequestPasswordReset(ctx, email)
	if err != nil {
		return "", err
	}
	if resp.Message != "" {
		return resp.Message, nil
	}
	return msgResetRequested, nil
}

func (m *manager) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	resp, err := m.auth.ResetPassword(ctx, token, newPassword)
	if err != nil {
		return "", err
	}
	if resp.Message != "" {
		return resp.Message, nil
	}
	return msgResetDone, nil
}

func (m *manager) Logout(ctx context.Context, s *Session) error {
	if s == nil || s.ID == "" {
		return nil
	}
	if err := m.storeFor(s.Remember).Delete(ctx, s.ID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	metrics.SessionEvent("logout")
	m.events.Emit(events.SessionLogout, s.UserID(), nil)
	return nil
}

func (m *manager) Unauthorized(ctx context.Context) {
	if id := IDFrom(ctx); id != "" {
		m.Purge(ctx, id)
	}
}

func (m *manager) Purge(ctx context.Context, id string) {
	m.drop(ctx, id)
	metrics.SessionEvent("purge")
	m.logger.Info("session purged after backend rejection")
}

func (m *manager) drop(ctx context.Context, id string) {
	// The request may already be cancelled; deletion must still happen.
	ctx = context.WithoutCancel(ctx)
	if err := m.memory.Delete(ctx, id); err != nil {
		m.logger.Warn("delete session", zap.Error(err))
	}
	if m.durable != m.memory {
		if err := m.durable.Delete(ctx, id); err != nil {
			m.logger.Warn("delete remembered session", zap.Error(err))
		}
	}
}

func (m *manager) RevokeUser(ctx context.Context, userID uint) (int, error) {
	n, err := m.memory.DeleteUser(ctx, userID)
	if err != nil {
		return n, err
	}
	if m.durable != m.memory {
		d, err := m.durable.DeleteUser(ctx, userID)
		n += d
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func (m *manager) PurgeExpired(ctx context.Context) (int, error) {
	now := m.now()
	n, err := m.memory.DeleteExpired(ctx, now)
	if err != nil {
		return n, err
	}
	if m.durable != m.memory {
		d, err := m.durable.DeleteExpired(ctx, now)
		n += d
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func (m *manager) save(ctx context.Context, s *Session) error {
	rec := &Record{
		Token:        s.Token,
		RefreshToken: s.RefreshToken,
		User:         s.User,
		ExpiresAt:    s.ExpiresAt,
	}
	return m.storeFor(s.Remember).Put(ctx, s.ID, rec)
}

func toSession(id string, rec *Record, remember bool) *Session {
	return &Session{
		ID:           id,
		State:        Authenticated,
		User:         rec.User,
		Token:        rec.Token,
		RefreshToken: rec.RefreshToken,
		Remember:     remember,
		ExpiresAt:    rec.ExpiresAt,
	}
}
