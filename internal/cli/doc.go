// Package cli provides the interactive userdir command-line client.
//
// It wires configuration, the local session database, the remote directory
// API client, and an interactive REPL over them. Typical flow: restore the
// persisted session (or prompt for credentials), browse the paginated user
// listing, and edit or delete individual records.
//
// Key features:
//   - Login / Logout with the credential persisted across restarts
//   - Paginated listing with next/prev/page navigation
//   - Editing a single record at a time (set fields, update, cancel)
//   - Deleting records directly from the listing
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
