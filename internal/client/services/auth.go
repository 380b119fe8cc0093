// Package services holds the client-side state of an admin session: who is
// logged in, the cached event list with its search view, and the buffer of
// booking notifications.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/eventdesk/internal/auth"
	"github.com/dmitrijs2005/eventdesk/internal/client/client"
	"github.com/dmitrijs2005/eventdesk/internal/client/models"
	"github.com/dmitrijs2005/eventdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/dmitrijs2005/eventdesk/internal/dbx"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
)

// TokenSource yields the bearer token for authenticated calls, or "" when
// there is no session.
type TokenSource interface {
	Token(ctx context.Context) string
}

// AuthService owns the admin session.
//
// Login persists the session before exposing it, so a failed login never
// leaves a partial session behind. Logout clears both the durable and the
// in-memory state.
type AuthService interface {
	TokenSource
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	Register(ctx context.Context, name string, email string, password []byte) error
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (bool, error)
	Current() *models.Session
	IsAuthenticated() bool
	Claims() (*auth.Claims, error)
}

type authService struct {
	api client.AuthAPI
	db  *sql.DB
	log logging.Logger

	mu      sync.RWMutex
	session *models.Session
}

func NewAuthService(api client.AuthAPI, db *sql.DB, log logging.Logger) AuthService {
	return &authService{api: api, db: db, log: log.With("component", "session")}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	s, err := a.api.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := a.save(ctx, s); err != nil {
		return nil, fmt.Errorf("login: persist session: %w", err)
	}

	a.mu.Lock()
	a.session = s
	a.mu.Unlock()

	a.log.Info(ctx, "admin logged in", "admin_id", s.AdminID)
	return s, nil
}

// save writes identity and token in one transaction.
func (a *authService) save(ctx context.Context, s *models.Session) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		info := []byte(s.Identity)
		if len(info) == 0 {
			info = []byte("{}")
		}
		if err := repo.Set(ctx, common.SessionInfoKey, info); err != nil {
			return err
		}
		return repo.Set(ctx, common.SessionTokenKey, []byte(s.Token))
	})
}

func (a *authService) Register(ctx context.Context, name string, email string, password []byte) error {
	if err := a.api.Register(ctx, name, email, password); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	a.log.Info(ctx, "admin registered", "email", email)
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	repo := metadata.NewSQLiteRepository(a.db)
	if err := repo.Delete(ctx, common.SessionInfoKey, common.SessionTokenKey); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	a.mu.Lock()
	a.session = nil
	a.mu.Unlock()

	a.log.Info(ctx, "admin logged out")
	return nil
}

// Restore loads a previously persisted session. It reports false when no
// token is stored. A missing or unreadable identity still restores the token.
func (a *authService) Restore(ctx context.Context) (bool, error) {
	repo := metadata.NewSQLiteRepository(a.db)

	token, err := repo.Get(ctx, common.SessionTokenKey)
	if err != nil {
		return false, fmt.Errorf("restore session: %w", err)
	}
	if len(token) == 0 {
		return false, nil
	}

	info, err := repo.Get(ctx, common.SessionInfoKey)
	if err != nil {
		return false, fmt.Errorf("restore session: %w", err)
	}

	s, err := models.NewSession(info)
	if err != nil {
		a.log.Warn(ctx, "stored identity unreadable", "error", err)
		s = &models.Session{Identity: info}
	}
	s.Token = string(token)

	a.mu.Lock()
	a.session = s
	a.mu.Unlock()

	a.log.Debug(ctx, "session restored", "admin_id", s.AdminID)
	return true, nil
}

// Current returns a copy of the session, or nil.
func (a *authService) Current() *models.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return nil
	}
	s := *a.session
	return &s
}

func (a *authService) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session != nil
}

func (a *authService) Token(_ context.Context) string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return ""
	}
	return a.session.Token
}

// Claims decodes the session token without verifying it.
func (a *authService) Claims() (*auth.Claims, error) {
	a.mu.RLock()
	s := a.session
	a.mu.RUnlock()
	if s == nil {
		return nil, common.ErrNoSession
	}
	return auth.Inspect(s.Token)
}
