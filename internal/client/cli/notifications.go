package cli

import (
	"context"
	"fmt"
)

// Notifications toggles the notification popup.
func (a *App) Notifications(_ context.Context) error {
	open, shown := a.notes.Toggle()
	if !open {
		fmt.Fprintln(a.out, "Notifications hidden.")
		return nil
	}
	if len(shown) == 0 {
		fmt.Fprintln(a.out, "No new notifications.")
		return nil
	}
	for i, n := range shown {
		fmt.Fprintf(a.out, "%2d. [%s] %s\n", i+1, n.ReceivedAt.Format("15:04:05"), n.Message)
	}
	return nil
}

// Dismiss clears the notification buffer.
func (a *App) Dismiss(_ context.Context) error {
	a.notes.Dismiss()
	fmt.Fprintln(a.out, "Notifications cleared.")
	return nil
}
