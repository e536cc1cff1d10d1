package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/D-ASA-D/TaskManager/internal/api"
	"github.com/D-ASA-D/TaskManager/internal/auth"
	"github.com/D-ASA-D/TaskManager/internal/config"
	"github.com/D-ASA-D/TaskManager/internal/event"
	"github.com/D-ASA-D/TaskManager/internal/poller"
	"github.com/D-ASA-D/TaskManager/internal/session"
	"github.com/D-ASA-D/TaskManager/internal/view"
)

const eventTimeInput = "2006-01-02T15:04"

// app owns the session context and wires auth, events and the poller
// together, standing in for the page controller of a browser client.
type app struct {
	cfg     *config.Config
	session *session.Store
	view    *view.Terminal
	auth    *auth.Flow
	events  *event.Manager
	poller  *poller.Poller

	lines chan string

	// Username pre-filled into the next login after a registration.
	pendingLogin string
}

func newApp(cfg *config.Config, client *api.Client, store *session.Store, terminal *view.Terminal) *app {
	a := &app{
		cfg:     cfg,
		session: store,
		view:    terminal,
		lines:   make(chan string),
	}
	a.auth = auth.NewFlow(client, store, terminal)
	a.events = event.NewManager(client, store, terminal, a.confirm)
	a.poller = poller.New(client, store, terminal,
		poller.Mode(cfg.Notifications.Mode), cfg.Notifications.PollInterval)
	return a
}

func (a *app) run(ctx context.Context) error {
	// Restore the previous session, if any: straight to the authenticated
	// view with an initial event load and the poller running.
	user, err := a.session.Restore()
	if err != nil {
		slog.Error("Failed to restore session", "error", err)
	}
	if user != nil {
		fmt.Printf("Welcome back, %s\n", user.Username)
		a.events.Load(ctx)
		a.poller.Start(ctx)
	}

	a.printHelp()

	go func() {
		defer close(a.lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			a.lines <- scanner.Text()
		}
	}()

	for {
		fmt.Print("> ")
		select {
		case <-ctx.Done():
			a.poller.Stop()
			return nil
		case line, ok := <-a.lines:
			if !ok {
				a.poller.Stop()
				return nil
			}
			if a.dispatch(ctx, line) {
				a.poller.Stop()
				return nil
			}
		}
	}
}

// dispatch handles one input line; it reports true when the user quits.
func (a *app) dispatch(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "login":
		a.login(ctx, args)
	case "register":
		a.register(ctx, args)
	case "add":
		a.addEvent(ctx, strings.TrimSpace(strings.TrimPrefix(line, "add")))
	case "list":
		a.events.Load(ctx)
	case "upcoming":
		a.events.Upcoming(ctx)
	case "delete":
		a.deleteEvent(ctx, args)
	case "dismiss":
		a.dismiss(args)
	case "logout":
		a.logout()
	case "help":
		a.printHelp()
	case "quit", "exit":
		return true
	default:
		fmt.Printf("Unknown command %q, try help\n", cmd)
	}
	return false
}

func (a *app) login(ctx context.Context, args []string) {
	var username, password string
	switch {
	case len(args) == 2:
		username, password = args[0], args[1]
	case len(args) == 1 && a.pendingLogin != "":
		username, password = a.pendingLogin, args[0]
	default:
		fmt.Println("Usage: login <username> <password>")
		return
	}

	user, err := a.auth.Login(ctx, username, password)
	if err != nil {
		return // already rendered as a transient message
	}
	a.pendingLogin = ""
	fmt.Printf("Hello, %s\n", user.Username)
	a.events.Load(ctx)
	a.poller.Start(ctx)
}

func (a *app) register(ctx context.Context, args []string) {
	if len(args) != 3 {
		fmt.Println("Usage: register <username> <password> <confirm>")
		return
	}
	created, err := a.auth.Register(ctx, args[0], args[1], args[2])
	if err != nil {
		return
	}
	// Back to the login view with the username pre-filled.
	a.pendingLogin = created.Username
	fmt.Printf("Now log in with: login %s <password>\n", created.Username)
}

// addEvent parses "add <2006-01-02T15:04> <title> [:: description]".
func (a *app) addEvent(ctx context.Context, rest string) {
	timeStr, remainder, _ := strings.Cut(rest, " ")
	at, err := time.ParseInLocation(eventTimeInput, timeStr, time.Local)
	if err != nil {
		fmt.Printf("Invalid date/time %q, want %s\n", timeStr, eventTimeInput)
		return
	}

	title, description, _ := strings.Cut(remainder, " :: ")
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" {
		fmt.Println("Usage: add <2006-01-02T15:04> <title> [:: description]")
		return
	}

	a.events.Create(ctx, title, description, at)
}

func (a *app) deleteEvent(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: delete <event-id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Printf("Invalid event id %q\n", args[0])
		return
	}
	a.events.Delete(ctx, id)
}

// dismiss closes a live notification early by id prefix.
func (a *app) dismiss(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: dismiss <notification-id>")
		return
	}
	for _, t := range a.view.Toasts().Active() {
		if strings.HasPrefix(t.ID, args[0]) {
			a.view.Toasts().Dismiss(t.ID)
			return
		}
	}
	fmt.Println("No such notification")
}

func (a *app) logout() {
	a.poller.Stop()
	a.poller.Reset()
	if err := a.auth.Logout(); err != nil {
		slog.Error("Failed to clear session", "error", err)
	}
	a.pendingLogin = ""
	fmt.Println("Logged out")
}

// refreshEvents is the cron hook re-rendering the list while logged in.
func (a *app) refreshEvents(ctx context.Context) {
	if a.session.Current() == nil {
		return
	}
	a.events.Load(ctx)
}

func (a *app) confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, ok := <-a.lines
	if !ok {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}

func (a *app) printHelp() {
	fmt.Println(`Commands:
  login <username> <password>
  register <username> <password> <confirm>
  add <2006-01-02T15:04> <title> [:: description]
  list | upcoming
  delete <event-id>
  dismiss <notification-id>
  logout | help | quit`)
}
