// Package api wraps the four remote directory operations behind a small
// client interface. Every operation is a single request/response round trip:
// no retries, no caching.
package api

import (
	"context"

	"github.com/dmitrijs2005/userdir/internal/models"
)

// Client defines the remote directory operations used by the rest of the
// application. The concrete implementation holds the opaque bearer token
// obtained at login and attaches it to every subsequent call.
//
// Contract:
//   - Login: authenticate and retain the returned token.
//   - ListUsers: fetch one page of records; page ≥ 1 is the caller's duty,
//     out-of-range pages are passed through and the remote decides.
//   - UpdateUser: send exactly the three editable fields, nothing else.
//   - DeleteUser: remove one record.
//   - SetToken/ClearToken: install or drop a token without a network call
//     (session restore and logout).
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
	ListUsers(ctx context.Context, page int) (*models.UserPage, error)
	UpdateUser(ctx context.Context, id int64, fields models.RecordFields) error
	DeleteUser(ctx context.Context, id int64) error
	SetToken(token string)
	ClearToken()
}
