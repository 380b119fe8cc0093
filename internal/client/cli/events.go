package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/eventdesk/internal/client/export"
	"github.com/dmitrijs2005/eventdesk/internal/client/models"
	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/dmitrijs2005/eventdesk/internal/filex"
)

var errUsage = errors.New("usage")

func usage(s string) error {
	return fmt.Errorf("%w: %s", errUsage, s)
}

// List prints the filtered view.
func (a *App) List(_ context.Context) error {
	view := a.events.View()
	q := a.events.Query()

	header := fmt.Sprintf("%d of %d events", len(view), len(a.events.Events()))
	var filters []string
	if q.Title != "" {
		filters = append(filters, fmt.Sprintf("title~%q", q.Title))
	}
	if !q.Date.IsZero() {
		filters = append(filters, "date="+q.Date.String())
	}
	if len(filters) > 0 {
		header += " (" + strings.Join(filters, ", ") + ")"
	}
	if n := a.notes.Unread(); n > 0 {
		header += fmt.Sprintf(" | %d unread notifications", n)
	}
	fmt.Fprintln(a.out, header)

	if len(view) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTITLE\tVENUE")
	for _, e := range view {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.DisplayDate(), e.Title, e.Venue)
	}
	return tw.Flush()
}

// Refresh reloads the event list from the server.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.events.Refresh(ctx); err != nil {
		return err
	}
	return a.List(ctx)
}

// Search sets the title filter; no argument clears it.
func (a *App) Search(ctx context.Context, args []string) error {
	a.events.SetTitle(strings.Join(args, " "))
	return a.List(ctx)
}

// Date sets the date filter; no argument clears it.
func (a *App) Date(ctx context.Context, args []string) error {
	var d models.Date
	if len(args) > 0 {
		var err error
		if d, err = models.ParseDate(args[0]); err != nil {
			return usage("date [YYYY-MM-DD]")
		}
	}
	a.events.SetDate(d)
	return a.List(ctx)
}

// Show prints one event as the server has it now.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("show <id>")
	}
	e, err := a.events.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("event %s: empty response", args[0])
	}

	fmt.Fprintf(a.out, "ID:          %s\n", e.ID)
	fmt.Fprintf(a.out, "Title:       %s\n", e.Title)
	fmt.Fprintf(a.out, "Date:        %s\n", e.DisplayDate())
	fmt.Fprintf(a.out, "Venue:       %s\n", e.Venue)
	fmt.Fprintf(a.out, "Description: %s\n", e.Description)
	return nil
}

// Create prompts for every field and submits a new event.
func (a *App) Create(ctx context.Context) error {
	fields, err := a.promptFields(models.EventFields{})
	if err != nil {
		return err
	}
	e, err := a.events.Create(ctx, fields)
	if err != nil {
		return err
	}
	if e != nil && e.ID != "" {
		fmt.Fprintf(a.out, "Created event %s\n", e.ID)
	} else {
		fmt.Fprintln(a.out, "Created.")
	}
	return nil
}

// Edit loads an event, prompts with its current values and submits the
// changes. Empty answers keep the current value.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("edit <id>")
	}
	id := args[0]

	current, err := a.events.Get(ctx, id)
	if err != nil {
		return err
	}
	var prefill models.EventFields
	if current != nil {
		prefill = current.Fields()
	}

	fields, err := a.promptFields(prefill)
	if err != nil {
		return err
	}
	if _, err := a.events.Update(ctx, id, fields); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated event %s\n", id)
	return nil
}

// Delete removes an event after a y/N confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("delete <id>")
	}
	confirm := func(id string) bool {
		return Confirm(a.reader, fmt.Sprintf("Delete event %s?", id), a.out)
	}

	deleted, err := a.events.Delete(ctx, args[0], confirm)
	if err != nil {
		return err
	}
	if deleted {
		fmt.Fprintf(a.out, "Deleted event %s\n", args[0])
	} else {
		fmt.Fprintln(a.out, "Cancelled.")
	}
	return nil
}

// Export writes the filtered view to an iCalendar file.
func (a *App) Export(_ context.Context, args []string) error {
	if len(args) == 0 {
		return usage("export <file.ics>")
	}
	view := a.events.View()

	if err := filex.EnsureParentDir(args[0]); err != nil {
		return err
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if err := export.WriteICS(f, view, a.now()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d events to %s\n", len(view), args[0])
	return nil
}

func (a *App) promptFields(cur models.EventFields) (models.EventFields, error) {
	var (
		f   models.EventFields
		err error
	)
	if f.Title, err = GetTextWithDefault(a.reader, "Title", cur.Title, a.out); err != nil {
		return f, err
	}
	if f.Description, err = GetTextWithDefault(a.reader, "Description", cur.Description, a.out); err != nil {
		return f, err
	}

	date, err := GetTextWithDefault(a.reader, "Date (YYYY-MM-DD)", cur.Date.String(), a.out)
	if err != nil {
		return f, err
	}
	if f.Date, err = models.ParseDate(date); err != nil {
		return f, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	if f.Venue, err = GetTextWithDefault(a.reader, "Venue", cur.Venue, a.out); err != nil {
		return f, err
	}
	return f, f.Validate()
}
