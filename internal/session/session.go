// Package session owns the signed-in user's credentials and profile for each browser. A
// browser is identified by an opaque id in a cookie; the token itself never leaves the server.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
)

type State int

const (
	Uninitialized State = iota
	Loading
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	}
	return "uninitialized"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "uninitialized":
		*s = Uninitialized
	case "loading":
		*s = Loading
	case "authenticated":
		*s = Authenticated
	case "unauthenticated":
		*s = Unauthenticated
	default:
		return fmt.Errorf("unknown session state %q", b)
	}
	return nil
}

type Session struct {
	ID           string       `json:"-"`
	State        State        `json:"state"`
	User         *models.User `json:"user,omitempty"`
	Token        string       `json:"-"`
	RefreshToken string       `json:"-"`
	Remember     bool         `json:"remember"`
	ExpiresAt    time.Time    `json:"expiresAt,omitempty"`
}

// Anonymous is the session of a browser with no stored credential.
func Anonymous() *Session {
	return &Session{State: Unauthenticated}
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.State == Authenticated && s.Token != ""
}

// IsAdmin is derived from the cached profile's role and nothing else.
func (s *Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.User.IsAdmin()
}

func (s *Session) UserID() uint {
	if s == nil || s.User == nil {
		return 0
	}
	return s.User.ID
}

// LoginResult is returned by Login and Register. Backend rejections are reported here, not
// as errors.
type LoginResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Session *Session `json:"-"`
}

type idKey struct{}

// WithID records the browser's session id on ctx so the unauthorized hook can find it.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey{}, id)
}

func IDFrom(ctx context.Context) string {
	id, _ := ctx.Value(idKey{}).(string)
	return id
}
