// Package edit governs the transition between browsing the listing and
// editing a single record.
package edit

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/userdir/internal/api"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/dmitrijs2005/userdir/internal/models"
	"github.com/dmitrijs2005/userdir/internal/pager"
)

// State is the workflow position: browsing the list or editing one record.
type State string

const (
	StateBrowsing State = "browsing"
	StateEditing  State = "editing"
)

var (
	// ErrNotBrowsing is returned when an action requires the browsing state
	// (starting an edit, deleting). At most one draft exists at a time.
	ErrNotBrowsing = errors.New("not in browsing state")
	// ErrNotEditing is returned when no draft is open.
	ErrNotEditing = errors.New("no record being edited")
	// ErrUnknownField is returned for a field name outside the editable set.
	ErrUnknownField = errors.New("unknown field")
)

// Workflow is a two-state machine over Browsing and Editing(draft). The
// draft is a local copy of one record; it is discarded whole on cancel and
// diff-free (all three editable fields are always sent) on submit.
type Workflow struct {
	client api.Client
	pages  *pager.Controller
	logger logging.Logger

	// ExitOnSubmitFailure preserves the historical behavior of treating a
	// failed update like a successful one: the draft is discarded and the
	// workflow returns to browsing either way. Set to false to keep the
	// draft open for another attempt.
	ExitOnSubmitFailure bool

	mu    sync.Mutex
	state State
	draft *models.Record
}

func NewWorkflow(client api.Client, pages *pager.Controller, logger logging.Logger) *Workflow {
	return &Workflow{
		client:              client,
		pages:               pages,
		logger:              logger.With("component", "edit"),
		ExitOnSubmitFailure: true,
		state:               StateBrowsing,
	}
}

// State returns the current workflow state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Draft returns a copy of the open draft, or nil when browsing.
func (w *Workflow) Draft() *models.Record {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return nil
	}
	d := *w.draft
	return &d
}

// Begin copies record into a new draft and enters the editing state.
// Rejected while another draft is open.
func (w *Workflow) Begin(record models.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateBrowsing {
		return ErrNotBrowsing
	}
	draft := record
	w.draft = &draft
	w.state = StateEditing
	return nil
}

// SetField overwrites one editable draft field. No validation is performed
// beyond the field name itself.
func (w *Workflow) SetField(name, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateEditing {
		return ErrNotEditing
	}
	switch name {
	case "first_name":
		w.draft.FirstName = value
	case "last_name":
		w.draft.LastName = value
	case "email":
		w.draft.Email = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Cancel discards the draft and returns to browsing. No remote call is made.
// Calling it while browsing is a no-op.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = nil
	w.state = StateBrowsing
}

// Submit sends the draft's three editable fields to the remote service.
// On success the current page is refetched (truth is re-derived from the
// server, not merged locally) and the workflow returns to browsing. On
// failure the update error is returned, no refetch happens, and the state
// transition follows ExitOnSubmitFailure.
func (w *Workflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.state != StateEditing {
		w.mu.Unlock()
		return ErrNotEditing
	}
	draft := *w.draft
	w.mu.Unlock()

	if err := w.client.UpdateUser(ctx, draft.ID, draft.Fields()); err != nil {
		w.logger.Error(ctx, "update failed", "id", draft.ID, "error", err)
		if w.ExitOnSubmitFailure {
			w.Cancel()
		}
		return err
	}

	w.Cancel()
	if err := w.pages.Refresh(ctx); err != nil {
		w.logger.Error(ctx, "refresh after update failed", "id", draft.ID, "error", err)
	}
	return nil
}

// Delete removes one record. It is a direct action from the browsing state,
// not a transition. On success the current page is refetched exactly once;
// on failure the listing is left as-is.
func (w *Workflow) Delete(ctx context.Context, id int64) error {
	w.mu.Lock()
	if w.state != StateBrowsing {
		w.mu.Unlock()
		return ErrNotBrowsing
	}
	w.mu.Unlock()

	if err := w.client.DeleteUser(ctx, id); err != nil {
		w.logger.Error(ctx, "delete failed", "id", id, "error", err)
		return err
	}

	if err := w.pages.Refresh(ctx); err != nil {
		w.logger.Error(ctx, "refresh after delete failed", "id", id, "error", err)
	}
	return nil
}
