package application

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/example/appointment-booking/internal/persistence"
)

// DefaultAdminPassword is the shared secret used when none is configured.
const DefaultAdminPassword = "admin123"

type adminAuthRecord struct {
	IsAuthenticated bool `json:"isAuthenticated"`
}

// AdminSession tracks whether the administrator is signed in. The flag is
// persisted under persistence.KeyAdminAuth and never expires.
type AdminSession struct {
	mu            sync.RWMutex
	store         persistence.Store
	password      string
	authenticated bool
	logger        *slog.Logger
}

// NewAdminSession constructs a session checked against password.
// An empty password falls back to DefaultAdminPassword.
func NewAdminSession(store persistence.Store, password string, logger *slog.Logger) *AdminSession {
	if password == "" {
		password = DefaultAdminPassword
	}
	return &AdminSession{store: store, password: password, logger: defaultLogger(logger)}
}

func (s *AdminSession) loggerWith(ctx context.Context, operation string) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AdminSession", operation)
}

// IsAdmin reports whether the administrator is signed in.
func (s *AdminSession) IsAdmin() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Restore reads the persisted flag. An absent or unreadable record leaves the
// session signed out and nothing is written.
func (s *AdminSession) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authenticated = false
	raw, ok, err := s.store.Get(ctx, persistence.KeyAdminAuth)
	if err != nil {
		err = fmt.Errorf("restore admin session: %w", err)
		s.loggerWith(ctx, "Restore").ErrorContext(ctx, "failed to restore admin session", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	if !ok {
		return nil
	}

	var record adminAuthRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		err = fmt.Errorf("decode admin session: %w", err)
		s.loggerWith(ctx, "Restore").ErrorContext(ctx, "failed to restore admin session", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	s.authenticated = record.IsAuthenticated
	return nil
}

// Login signs the administrator in when password matches and persists the flag.
// A wrong password reports false without touching the store.
func (s *AdminSession) Login(ctx context.Context, password string) (ok bool, err error) {
	logger := s.loggerWith(ctx, "Login")
	defer func() {
		switch {
		case err != nil:
			logger.ErrorContext(ctx, "failed to sign in administrator", "error", err, "error_kind", ErrorKind(err))
		case !ok:
			logger.WarnContext(ctx, "administrator password rejected")
		default:
			logger.InfoContext(ctx, "administrator signed in")
		}
	}()

	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return false, nil
	}

	encoded, err := json.Marshal(adminAuthRecord{IsAuthenticated: true})
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.store.Set(ctx, persistence.KeyAdminAuth, string(encoded)); err != nil {
		return false, fmt.Errorf("persist admin session: %w", err)
	}
	s.authenticated = true
	return true, nil
}

// Logout signs the administrator out and removes the persisted flag.
func (s *AdminSession) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.loggerWith(ctx, "Logout")
	if err := s.store.Delete(ctx, persistence.KeyAdminAuth); err != nil {
		err = fmt.Errorf("clear admin session: %w", err)
		logger.ErrorContext(ctx, "failed to sign out administrator", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	s.authenticated = false
	logger.InfoContext(ctx, "administrator signed out")
	return nil
}
