// Package cli provides the interactive eventdesk admin console.
//
// The console starts in the login view (login, register). After a successful
// login, or when a stored session is resumed at start-up, it switches to the
// dashboard: the event list is loaded and the booking notification channel
// is opened. Logging out or exiting closes the channel again.
//
// Dashboard commands:
//   - list, refresh, search [title], date [YYYY-MM-DD]
//   - show <id>, create, edit <id>, delete <id>
//   - notifications, dismiss
//   - export <file.ics>, whoami, logout
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
