package cli

import (
	"context"
	"fmt"
	"time"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password and creates an admin
// account. It does not log in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.auth.Register(ctx, name, email, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered. You can log in now.")
	return nil
}

// Login prompts for credentials and opens the dashboard on success. On
// failure the session stays absent.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if _, err := a.auth.Login(ctx, email, password); err != nil {
		a.log.Warn(ctx, "login failed", "email", email, "error", err)
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", a.who())
	a.enterDashboard(ctx)
	return nil
}

// Logout closes the dashboard and forgets the stored session.
func (a *App) Logout(ctx context.Context) error {
	a.leaveDashboard(ctx)
	a.notes.Dismiss()
	a.events.Reset()

	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the session identity and, for JWTs, the token expiry.
func (a *App) WhoAmI(_ context.Context) error {
	s := a.auth.Current()
	if s == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	fmt.Fprintf(a.out, "Admin: %s\n", a.who())
	if s.AdminID != "" {
		fmt.Fprintf(a.out, "ID:    %s\n", s.AdminID)
	}

	claims, err := a.auth.Claims()
	if err != nil {
		return nil
	}
	if exp := claims.Expiry(); !exp.IsZero() {
		fmt.Fprintf(a.out, "Token expires: %s\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}
