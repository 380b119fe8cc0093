package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Date(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Create(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error

	Notifications(ctx context.Context) error
	Dismiss(ctx context.Context) error
}

const (
	loginHelp     = "Available commands: login, register, exit"
	dashboardHelp = "Available commands: (l)ist, refresh, search [title], date [YYYY-MM-DD], show <id>, create, edit <id>, delete <id>, (n)otifications, dismiss, export <file.ics>, whoami, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a,
// printing prompts and messages to out. Dashboard commands are refused until
// the admin has logged in. Command errors are printed and the loop goes on;
// it ends on EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "eventdesk%s> \n", prefixSpace(statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(out, "Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args, out); err != nil {
			report(out, err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, out io.Writer) error {
	if !a.isLoggedIn() {
		switch cmd {
		case "help":
			fmt.Fprintln(out, loginHelp)
			return nil
		case "login":
			return a.Login(ctx)
		case "register":
			return a.Register(ctx)
		case "whoami":
			return a.WhoAmI(ctx)
		default:
			fmt.Fprintln(out, "Please log in first (type 'help').")
			return nil
		}
	}

	switch cmd {
	case "help":
		fmt.Fprintln(out, dashboardHelp)
		return nil
	case "login", "register":
		fmt.Fprintln(out, "Already logged in; 'logout' first.")
		return nil
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "l", "list":
		return a.List(ctx)
	case "refresh":
		return a.Refresh(ctx)
	case "search":
		return a.Search(ctx, args)
	case "date":
		return a.Date(ctx, args)
	case "show":
		return a.Show(ctx, args)
	case "create":
		return a.Create(ctx)
	case "edit":
		return a.Edit(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "n", "notifications":
		return a.Notifications(ctx)
	case "dismiss":
		return a.Dismiss(ctx)
	case "export":
		return a.Export(ctx, args)
	default:
		fmt.Fprintln(out, "Unknown command:", cmd)
		return nil
	}
}

func report(out io.Writer, err error) {
	if errors.Is(err, errUsage) {
		fmt.Fprintln(out, "Usage:", strings.TrimPrefix(err.Error(), errUsage.Error()+": "))
		return
	}
	fmt.Fprintln(out, "Error:", err)
}

func prefixSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}
