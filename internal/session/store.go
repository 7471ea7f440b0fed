// Package session owns the authentication credential: the in-memory copy,
// the persisted copy, and the token installed on the transport client.
// It gates all other activity — nothing fetches or mutates without it.
package session

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/userdir/internal/api"
	"github.com/dmitrijs2005/userdir/internal/dbx"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/dmitrijs2005/userdir/internal/storage"
)

// ErrInvalidCredentials is the only authentication error surfaced to the
// user. Transport failures and remote rejections during login are folded
// into it; the underlying cause is logged.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Fixed metadata keys under which the credential is persisted.
const (
	tokenKey = "token"
	emailKey = "email"
)

// Credential is the opaque proof of authentication plus the account it
// belongs to. The email is kept only for display.
type Credential struct {
	Token string
	Email string
}

// Store persists the credential across restarts and keeps the transport
// client's token in sync with it.
type Store struct {
	client  api.Client
	db      *sql.DB
	logger  logging.Logger
	current *Credential
}

func NewStore(client api.Client, db *sql.DB, logger logging.Logger) *Store {
	return &Store{client: client, db: db, logger: logger.With("component", "session")}
}

// Restore reads the persisted credential, if any, and installs it on the
// transport client. No network call is made; a stale token is discovered
// only when the first authenticated request fails.
func (s *Store) Restore(ctx context.Context) (*Credential, error) {
	repo := storage.NewSQLiteMetadataRepository(s.db)

	token, err := repo.Get(ctx, tokenKey)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, nil
	}
	email, err := repo.Get(ctx, emailKey)
	if err != nil {
		return nil, err
	}

	cred := &Credential{Token: string(token), Email: string(email)}
	s.current = cred
	s.client.SetToken(cred.Token)
	s.logger.Info(ctx, "session restored", "email", cred.Email)
	return cred, nil
}

// Authenticate performs a remote login. On success the credential is
// persisted and returned; on any failure nothing is persisted and
// ErrInvalidCredentials is returned.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*Credential, error) {
	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn(ctx, "login failed", "email", email, "error", err)
		return nil, ErrInvalidCredentials
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteMetadataRepository(tx)
		if err := repo.Set(ctx, tokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, emailKey, []byte(email))
	})
	if err != nil {
		return nil, err
	}

	cred := &Credential{Token: token, Email: email}
	s.current = cred
	s.logger.Info(ctx, "login successful", "email", email)
	return cred, nil
}

// Clear erases the persisted and in-memory credential and drops the token
// from the transport client. There is no server-side logout call.
func (s *Store) Clear(ctx context.Context) error {
	repo := storage.NewSQLiteMetadataRepository(s.db)
	if err := repo.Clear(ctx); err != nil {
		return err
	}
	s.current = nil
	s.client.ClearToken()
	s.logger.Info(ctx, "session cleared")
	return nil
}

// Current returns the credential of the active session, or nil.
func (s *Store) Current() *Credential {
	return s.current
}

// Active reports whether a credential is present.
func (s *Store) Active() bool {
	return s.current != nil
}
