package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/userdir/internal/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for an email and password and attempts to
// authenticate. On success the credential is persisted, the listing is
// activated (page 1 is fetched exactly once) and rendered.
//
// An invalid login prints "Invalid credentials" — the only remote failure
// that is ever shown to the user.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.session.Authenticate(ctx, email, password); err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			fmt.Println("Invalid credentials")
		}
		return err
	}

	if err := a.pages.Activate(ctx); err != nil {
		return err
	}
	a.renderList()
	return nil
}

// Logout discards any open draft, erases the persisted credential and resets
// page state to its unauthenticated baseline. There is no server-side call
// and no waiting for in-flight requests.
func (a *App) Logout(ctx context.Context) error {
	a.editor.Cancel()
	if err := a.session.Clear(ctx); err != nil {
		return err
	}
	a.pages.Reset()
	fmt.Println("Logged out")
	return nil
}
