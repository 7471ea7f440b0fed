// Package pager tracks the client's view of the paginated directory listing:
// the current page index, the last-known total page count, and the records of
// the last successful fetch.
package pager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/userdir/internal/api"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/dmitrijs2005/userdir/internal/models"
)

// Controller is the single writer of page state.
//
// Every fetch is tagged with the generation active when it was issued;
// Activate, SetPage and Reset each start a new generation, so a response
// arriving for a superseded page — or after logout — is discarded instead of
// clobbering newer state. A failed fetch leaves page, total and records
// unchanged (stale-on-error).
type Controller struct {
	client api.Client
	logger logging.Logger

	mu         sync.Mutex
	active     bool
	page       int
	totalPages int
	records    []models.Record
	generation uint64
}

func NewController(client api.Client, logger logging.Logger) *Controller {
	return &Controller{
		client:     client,
		logger:     logger.With("component", "pager"),
		page:       1,
		totalPages: 1,
	}
}

// Activate marks the session as present and fetches page 1. Called once a
// credential becomes available (login or restore).
func (c *Controller) Activate(ctx context.Context) error {
	c.mu.Lock()
	c.active = true
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	return c.fetch(ctx, 1, gen)
}

// SetPage navigates to target and fetches it. Targets outside
// [1, totalPages], or any target while no session is active, are rejected
// silently: no request is issued and state is unchanged.
func (c *Controller) SetPage(ctx context.Context, target int) error {
	c.mu.Lock()
	if !c.active || target < 1 || target > c.totalPages {
		c.mu.Unlock()
		return nil
	}
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	return c.fetch(ctx, target, gen)
}

// Refresh refetches the current page. Used after a successful mutation to
// re-derive the listing from the server rather than merging locally.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return nil
	}
	page := c.page
	gen := c.generation
	c.mu.Unlock()

	return c.fetch(ctx, page, gen)
}

// Reset returns the controller to its unauthenticated state: page 1, total 1,
// no records, and a new generation so any in-flight fetch is discarded on
// arrival. It never waits for in-flight requests.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
	c.page = 1
	c.totalPages = 1
	c.records = nil
	c.generation++
}

// Snapshot returns the current page index, total page count and a copy of
// the records of the last successful fetch.
func (c *Controller) Snapshot() (page, totalPages int, records []models.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	records = make([]models.Record, len(c.records))
	copy(records, c.records)
	return c.page, c.totalPages, records
}

// Page returns the current page index.
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// TotalPages returns the last-known total page count.
func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

func (c *Controller) fetch(ctx context.Context, page int, gen uint64) error {
	result, err := c.client.ListUsers(ctx, page)
	if err != nil {
		c.logger.Error(ctx, "list fetch failed", "page", page, "error", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.logger.Debug(ctx, "stale fetch discarded", "page", page, "generation", gen)
		return nil
	}

	// Page index, records and total commit together, so a failed or
	// superseded fetch never moves the view.
	c.page = page
	c.records = result.Records
	c.totalPages = result.TotalPages
	if c.totalPages < 1 {
		c.totalPages = 1
	}
	// If the new total leaves page > totalPages, no correction is made; the
	// next navigation is bounded by the new total.
	c.logger.Debug(ctx, "page fetched", "page", page, "total_pages", c.totalPages, "records", len(c.records))
	return nil
}
