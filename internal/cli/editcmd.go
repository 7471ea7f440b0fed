package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dmitrijs2005/userdir/internal/models"
)

// Edit starts editing the record with the given id. The record must be on
// the currently displayed page; editing is only reachable from browsing.
func (a *App) Edit(ctx context.Context, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Println("Usage: edit <id>")
		return err
	}

	_, _, records := a.pages.Snapshot()
	for _, r := range records {
		if r.ID == id {
			if err := a.editor.Begin(r); err != nil {
				return err
			}
			a.renderDraft()
			return nil
		}
	}

	fmt.Printf("No record with id %d on this page\n", id)
	return nil
}

// Set overwrites one draft field. Editable fields: first_name, last_name, email.
func (a *App) Set(ctx context.Context, field, value string) error {
	if err := a.editor.SetField(field, value); err != nil {
		fmt.Println(err.Error())
		return err
	}
	a.renderDraft()
	return nil
}

// Update submits the draft. On success the refreshed page is rendered; a
// failed update changes nothing on screen (it is logged, and the state
// transition follows the workflow's submit policy).
func (a *App) Update(ctx context.Context) error {
	if err := a.editor.Submit(ctx); err != nil {
		return err
	}
	a.renderList()
	return nil
}

// Cancel discards the draft and returns to the listing.
func (a *App) Cancel(ctx context.Context) error {
	a.editor.Cancel()
	a.renderList()
	return nil
}

func (a *App) renderDraft() {
	if draft := a.editor.Draft(); draft != nil {
		renderDraft(os.Stdout, draft)
	}
}

func renderDraft(w io.Writer, draft *models.Record) {
	fmt.Fprintf(w, "Editing record #%d\n", draft.ID)
	fmt.Fprintf(w, "  first_name: %s\n", draft.FirstName)
	fmt.Fprintf(w, "  last_name:  %s\n", draft.LastName)
	fmt.Fprintf(w, "  email:      %s\n", draft.Email)
}
