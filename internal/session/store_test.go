package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/userdir/internal/api"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/dmitrijs2005/userdir/internal/models"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

var dbSeq int

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:sessionsvc%d?mode=memory&cache=shared", dbSeq)
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func insertMeta(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

func countMeta(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	return n
}

func getMeta(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	require.NoError(t, err)
	return v
}

// ---- fake client ----

// fakeClient implements api.Client for Store unit tests.
type fakeClient struct {
	LoginRet string
	LoginErr error

	LoginCalls int
	ListCalls  int

	LastLoginEmail    string
	LastLoginPassword string

	Token        string
	SetTokenArgs []string
	ClearCalls   int
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	f.LoginCalls++
	f.LastLoginEmail = email
	f.LastLoginPassword = password
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	f.Token = f.LoginRet
	return f.LoginRet, nil
}

func (f *fakeClient) ListUsers(ctx context.Context, page int) (*models.UserPage, error) {
	f.ListCalls++
	return &models.UserPage{TotalPages: 1}, nil
}

func (f *fakeClient) UpdateUser(ctx context.Context, id int64, fields models.RecordFields) error {
	return nil
}

func (f *fakeClient) DeleteUser(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeClient) SetToken(token string) {
	f.Token = token
	f.SetTokenArgs = append(f.SetTokenArgs, token)
}

func (f *fakeClient) ClearToken() {
	f.Token = ""
	f.ClearCalls++
}

// ---- TESTS ----

func TestAuthenticate_Success_PersistsCredential(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	fc := &fakeClient{LoginRet: "QpwL5tke4Pnpja7X4"}
	s := NewStore(fc, db, testLogger())

	cred, err := s.Authenticate(ctx, "eve.holt@reqres.in", "cityslicka")
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, "QpwL5tke4Pnpja7X4", cred.Token)
	assert.Equal(t, "eve.holt@reqres.in", cred.Email)

	assert.Equal(t, []byte("QpwL5tke4Pnpja7X4"), getMeta(t, db, "token"))
	assert.Equal(t, []byte("eve.holt@reqres.in"), getMeta(t, db, "email"))
	assert.True(t, s.Active())
	assert.Equal(t, 1, fc.LoginCalls)
}

func TestAuthenticate_Failure_FoldsIntoInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	fc := &fakeClient{LoginErr: api.ErrRequestFailed}
	s := NewStore(fc, db, testLogger())

	cred, err := s.Authenticate(ctx, "nobody@nowhere", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, cred)

	// Persisted state untouched, session still inactive.
	assert.Equal(t, 0, countMeta(t, db))
	assert.False(t, s.Active())
}

func TestAuthenticate_Failure_DoesNotClobberExistingCredential(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	insertMeta(t, db, "token", []byte("old-token"))
	fc := &fakeClient{LoginErr: api.ErrUnavailable}
	s := NewStore(fc, db, testLogger())

	_, err := s.Authenticate(ctx, "eve.holt@reqres.in", "cityslicka")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, []byte("old-token"), getMeta(t, db, "token"))
}

func TestRestore_InstallsTokenWithoutNetworkCall(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	insertMeta(t, db, "token", []byte("persisted"))
	insertMeta(t, db, "email", []byte("eve.holt@reqres.in"))
	fc := &fakeClient{}
	s := NewStore(fc, db, testLogger())

	cred, err := s.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, "persisted", cred.Token)
	assert.Equal(t, "eve.holt@reqres.in", cred.Email)

	assert.Equal(t, []string{"persisted"}, fc.SetTokenArgs)
	assert.Equal(t, 0, fc.LoginCalls)
	assert.Equal(t, 0, fc.ListCalls)
	assert.True(t, s.Active())
}

func TestRestore_NoPersistedCredential(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{}
	s := NewStore(fc, setupDB(t), testLogger())

	cred, err := s.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, cred)
	assert.False(t, s.Active())
	assert.Empty(t, fc.SetTokenArgs)
}

func TestClear_ErasesEverything(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	fc := &fakeClient{LoginRet: "abc"}
	s := NewStore(fc, db, testLogger())

	_, err := s.Authenticate(ctx, "eve.holt@reqres.in", "cityslicka")
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx))

	assert.Equal(t, 0, countMeta(t, db))
	assert.Nil(t, s.Current())
	assert.False(t, s.Active())
	assert.Equal(t, 1, fc.ClearCalls)
	assert.Empty(t, fc.Token)
}

// End-to-end over a real HTTP client: the reference scenario from the remote
// service's documentation.
func TestAuthenticate_OverHTTP(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if r.URL.Path != "/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := decodeJSON(r.Body, &body); err != nil ||
			body.Email != "eve.holt@reqres.in" || body.Password != "cityslicka" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"user not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"QpwL5tke4Pnpja7X4"}`))
	}))
	t.Cleanup(srv.Close)

	client := api.NewHTTPClient(srv.URL, 5*time.Second, testLogger())
	s := NewStore(client, db, testLogger())

	_, err := s.Authenticate(ctx, "nobody@nowhere", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 0, countMeta(t, db))

	cred, err := s.Authenticate(ctx, "eve.holt@reqres.in", "cityslicka")
	require.NoError(t, err)
	assert.Equal(t, "QpwL5tke4Pnpja7X4", cred.Token)
	assert.Equal(t, []byte("QpwL5tke4Pnpja7X4"), getMeta(t, db, "token"))
}

func decodeJSON(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}
