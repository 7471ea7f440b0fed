package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isEditing() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Goto(ctx context.Context, arg string) error
	Edit(ctx context.Context, arg string) error
	Set(ctx context.Context, field, value string) error
	Update(ctx context.Context) error
	Cancel(ctx context.Context) error
	Delete(ctx context.Context, arg string) error
}

// runREPL starts a simple read–eval–print loop for the userdir CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in, browsing:
//	  - help           — show available commands
//	  - list           — show the current page
//	  - next | prev    — navigate pages
//	  - page <n>       — jump to page n
//	  - edit <id>      — start editing one record
//	  - delete <id>    — delete one record
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
//	Editing:
//	  - set <field> <value>  — overwrite one draft field
//	  - update               — submit the draft
//	  - cancel               — discard the draft
//
// Any errors returned by command handlers are ignored here; handlers log
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("userdir %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			switch {
			case a.isEditing():
				printlnFn("Available commands: set <field> <value>, update, cancel, exit")
			case a.isLoggedIn():
				printlnFn("Available commands: (l)ist, next, prev, page <n>, edit <id>, delete <id>, logout, exit")
			default:
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "n", "next":
			_ = a.Next(ctx)

		case "p", "prev":
			_ = a.Prev(ctx)

		case "page":
			if len(args) == 0 {
				printlnFn("Usage: page <n>")
				continue
			}
			_ = a.Goto(ctx, args[0])

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, args[0])

		case "set":
			if len(args) < 2 {
				printlnFn("Usage: set <field> <value>")
				continue
			}
			_ = a.Set(ctx, args[0], strings.Join(args[1:], " "))

		case "update":
			_ = a.Update(ctx)

		case "cancel":
			_ = a.Cancel(ctx)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
