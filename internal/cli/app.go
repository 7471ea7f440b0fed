package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dmitrijs2005/userdir/internal/api"
	"github.com/dmitrijs2005/userdir/internal/config"
	"github.com/dmitrijs2005/userdir/internal/edit"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/dmitrijs2005/userdir/internal/pager"
	"github.com/dmitrijs2005/userdir/internal/session"
	"github.com/dmitrijs2005/userdir/internal/storage"

	_ "modernc.org/sqlite"
)

// App wires the session store, pagination controller and edit workflow
// together and exposes them as interactive commands. All state lives in the
// owned components; the App itself only routes.
type App struct {
	config  *config.Config
	session *session.Store
	pages   *pager.Controller
	editor  *edit.Workflow
	logger  logging.Logger
	db      *sql.DB
	reader  *bufio.Reader
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.BaseURL, c.RequestTimeout, logger)

	sess := session.NewStore(apiClient, db, logger)
	pages := pager.NewController(apiClient, logger)
	editor := edit.NewWorkflow(apiClient, pages, logger)

	return &App{
		config:  c,
		session: sess,
		pages:   pages,
		editor:  editor,
		logger:  logger,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the persisted session, if any, and enters the command loop.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	fmt.Println("Welcome to userdir (type 'help' for commands)")

	cred, err := a.session.Restore(ctx)
	if err != nil {
		a.logger.Error(ctx, "session restore failed", "error", err)
	}
	if cred != nil {
		if err := a.pages.Activate(ctx); err == nil {
			a.renderList()
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.Active()
}

func (a *App) isEditing() bool {
	return a.editor.State() == edit.StateEditing
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	s := ""
	if cred := a.session.Current(); cred != nil {
		s = cred.Email
	}
	if draft := a.editor.Draft(); draft != nil {
		s = fmt.Sprintf("%s editing #%d", s, draft.ID)
	} else {
		page, total, _ := a.pages.Snapshot()
		s = fmt.Sprintf("%s %d/%d", s, page, total)
	}
	return fmt.Sprintf("(%s)", s)
}
