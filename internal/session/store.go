package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/repository"
)

// The fixed keys a stored credential set is written under.
const (
	KeyToken        = "token"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
)

var ErrNotFound = errors.New("session not found")

// Record is one stored credential set.
type Record struct {
	Token        string
	RefreshToken string
	User         *models.User
	ExpiresAt    time.Time
}

func (r *Record) values() (map[string]string, error) {
	v := map[string]string{KeyToken: r.Token, KeyRefreshToken: r.RefreshToken}
	if r.User != nil {
		data, err := json.Marshal(r.User)
		if err != nil {
			return nil, fmt.Errorf("encode user: %w", err)
		}
		v[KeyUser] = string(data)
	}
	return v, nil
}

func recordFromValues(v map[string]string, expiresAt time.Time) (*Record, error) {
	rec := &Record{Token: v[KeyToken], RefreshToken: v[KeyRefreshToken], ExpiresAt: expiresAt}
	if raw := v[KeyUser]; raw != "" {
		var u models.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		rec.User = &u
	}
	return rec, nil
}

func (r *Record) userID() uint {
	if r.User == nil {
		return 0
	}
	return r.User.ID
}

// Store keeps records by session id. Get reports ErrNotFound for unknown and expired ids.
type Store interface {
	Get(ctx context.Context, id string) (*Record, error)
	Put(ctx context.Context, id string, rec *Record) error
	Delete(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, userID uint) (int, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

type memoryEntry struct {
	values    map[string]string
	userID    uint
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore holds browser-session logins. Its contents die with the process.
func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *memoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok || !s.now().Before(e.expiresAt) {
		return nil, ErrNotFound
	}
	return recordFromValues(e.values, e.expiresAt)
}

func (s *memoryStore) Put(_ context.Context, id string, rec *Record) error {
	v, err := rec.values()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.entries[id] = memoryEntry{values: v, userID: rec.userID(), expiresAt: rec.ExpiresAt}
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) DeleteUser(_ context.Context, userID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.entries {
		if e.userID == userID {
			delete(s.entries, id)
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
			n++
		}
	}
	return n, nil
}

type durableStore struct {
	repo repository.SessionRepository
	now  func() time.Time
}

// NewDurableStore keeps "remember me" logins in postgres.
func NewDurableStore(repo repository.SessionRepository) Store {
	return &durableStore{repo: repo, now: time.Now}
}

func (s *durableStore) Get(ctx context.Context, id string) (*Record, error) {
	row, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !s.now().Before(row.ExpiresAt) {
		return nil, ErrNotFound
	}
	return recordFromValues(map[string]string{
		KeyToken:        row.Token,
		KeyRefreshToken: row.RefreshToken,
		KeyUser:         row.UserJSON,
	}, row.ExpiresAt)
}

func (s *durableStore) Put(ctx context.Context, id string, rec *Record) error {
	v, err := rec.values()
	if err != nil {
		return err
	}
	row := &models.StoredSession{
		ID:           id,
		UserID:       rec.userID(),
		Token:        v[KeyToken],
		RefreshToken: v[KeyRefreshToken],
		UserJSON:     v[KeyUser],
		ExpiresAt:    rec.ExpiresAt.UTC(),
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *durableStore) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *durableStore) DeleteUser(ctx context.Context, userID uint) (int, error) {
	n, err := s.repo.DeleteByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("delete user sessions: %w", err)
	}
	return int(n), nil
}

func (s *durableStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	n, err := s.repo.DeleteExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return int(n), nil
}
