package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/userdir/internal/models"
)

// List renders the current page without touching the remote service.
func (a *App) List(ctx context.Context) error {
	a.renderList()
	return nil
}

// Next navigates one page forward. At the upper bound the controller
// rejects the move silently and the view stays put.
func (a *App) Next(ctx context.Context) error {
	page, _, _ := a.pages.Snapshot()
	if err := a.pages.SetPage(ctx, page+1); err != nil {
		return err
	}
	a.renderList()
	return nil
}

// Prev navigates one page back. At page 1 the move is silently rejected.
func (a *App) Prev(ctx context.Context) error {
	page, _, _ := a.pages.Snapshot()
	if err := a.pages.SetPage(ctx, page-1); err != nil {
		return err
	}
	a.renderList()
	return nil
}

// Goto jumps to the given page number.
func (a *App) Goto(ctx context.Context, arg string) error {
	target, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Println("Usage: page <n>")
		return err
	}
	if err := a.pages.SetPage(ctx, target); err != nil {
		return err
	}
	a.renderList()
	return nil
}

// Delete removes one record from the directory. On success the page is
// refetched and re-rendered; on failure the listing is left exactly as it was.
func (a *App) Delete(ctx context.Context, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Println("Usage: delete <id>")
		return err
	}
	if err := a.editor.Delete(ctx, id); err != nil {
		return err
	}
	a.renderList()
	return nil
}

func (a *App) renderList() {
	page, total, records := a.pages.Snapshot()
	renderRecords(os.Stdout, page, total, records)
}

func renderRecords(w io.Writer, page, total int, records []models.Record) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFIRST NAME\tLAST NAME\tEMAIL\tAVATAR")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.FirstName, r.LastName, r.Email, r.Avatar)
	}
	tw.Flush()
	fmt.Fprintf(w, "Page %d of %d\n", page, total)
}
