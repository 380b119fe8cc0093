package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/client/models"
	"github.com/dmitrijs2005/eventdesk/internal/client/services"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
)

// App is the interactive admin console: a login view and, once
// authenticated, the event dashboard.
type App struct {
	auth   services.AuthService
	events services.EventService
	notes  services.NotificationService
	log    logging.Logger

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

func NewApp(auth services.AuthService, events services.EventService, notes services.NotificationService,
	log logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		auth:   auth,
		events: events,
		notes:  notes,
		log:    log.With("component", "cli"),
		reader: bufio.NewReader(in),
		out:    &lockedWriter{w: out},
		now:    time.Now,
	}
	notes.OnMessage(a.bell)
	return a
}

// Run resumes a stored session if there is one and serves commands until
// the input ends or the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to eventdesk (type 'help' for commands)")

	ok, err := a.auth.Restore(ctx)
	if err != nil {
		a.log.Warn(ctx, "could not restore session", "error", err)
	}
	if ok {
		fmt.Fprintf(a.out, "Resumed session for %s\n", a.who())
		a.enterDashboard(ctx)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
	a.leaveDashboard(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

// enterDashboard loads the event list and starts listening for bookings.
// Neither failure is fatal: the dashboard works with stale data and no bell.
func (a *App) enterDashboard(ctx context.Context) {
	if err := a.events.Refresh(ctx); err != nil {
		fmt.Fprintln(a.out, "Could not load events:", err)
	}
	if err := a.notes.Start(ctx); err != nil {
		a.log.Warn(ctx, "live notifications unavailable", "error", err)
		fmt.Fprintln(a.out, "Live notifications unavailable:", err)
	}
}

func (a *App) leaveDashboard(ctx context.Context) {
	if err := a.notes.Stop(); err != nil {
		a.log.Warn(ctx, "closing notification channel", "error", err)
	}
}

func (a *App) bell(n models.Notification, unread int) {
	fmt.Fprintf(a.out, "\n[!] %s (%d unread, type 'notifications')\n", n.Message, unread)
}

func (a *App) who() string {
	s := a.auth.Current()
	switch {
	case s == nil:
		return ""
	case s.Email != "":
		return s.Email
	case s.AdminID != "":
		return s.AdminID
	default:
		return "admin"
	}
}

// status is shown in the prompt, e.g. "(ann@example.org, 2 unread)".
func (a *App) status() string {
	if !a.isLoggedIn() {
		return ""
	}
	if n := a.notes.Unread(); n > 0 {
		return fmt.Sprintf("(%s, %d unread)", a.who(), n)
	}
	return fmt.Sprintf("(%s)", a.who())
}

// lockedWriter serialises output from the REPL and the notification pump.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
