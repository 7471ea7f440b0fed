package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/dmitrijs2005/userdir/internal/models"
)

// HTTPClient is the REST implementation of Client. It is safe to reuse for
// the lifetime of the process; the zero token means unauthenticated.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
	logger     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "api"),
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) ClearToken() {
	c.token = ""
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type listResponse struct {
	Data       []models.Record `json:"data"`
	TotalPages int             `json:"total_pages"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	c.token = resp.Token
	return resp.Token, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context, page int) (*models.UserPage, error) {
	var resp listResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users?page=%d", page), nil, &resp)
	if err != nil {
		return nil, err
	}
	return &models.UserPage{Records: resp.Data, TotalPages: resp.TotalPages}, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, fields models.RecordFields) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), fields, nil)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}

// do performs one round trip. A JSON body is sent when in is non-nil and the
// response body is decoded into out when out is non-nil. Every request gets
// a fresh request id for log correlation.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	requestID := uuid.NewString()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		mapped := mapStatus(resp.StatusCode)
		c.logger.Error(ctx, "request rejected", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, mapped)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.logger.Error(ctx, "response decode failed", "method", method, "path", path, "request_id", requestID, "error", err)
			return fmt.Errorf("%s %s: decode response: %w", method, path, ErrRequestFailed)
		}
	}

	c.logger.Debug(ctx, "request completed", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)
	return nil
}

// mapStatus folds HTTP status codes into the package's sentinel errors,
// mirroring how grpc status codes would be classified.
func mapStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrUnauthorized
	case code >= 500 || code == http.StatusRequestTimeout:
		return ErrUnavailable
	default:
		return ErrRequestFailed
	}
}
