package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/api"
	"taskboard/internal/board"
	"taskboard/internal/chart"
	"taskboard/internal/config"
	"taskboard/internal/model"
	"taskboard/internal/notify"
	"taskboard/internal/session"
)

const usage = `usage: taskboard <command> [flags]

commands:
  signup     create an account (-user, -pass)
  login      sign in (-user, -pass)
  logout     drop the stored session
  list       list tasks (-q, -status, -priority, -sort)
  add        create a task (-title, -desc, -priority, -due)
  toggle     flip a task between completed and pending (-id)
  rm         delete a task (-id)
  dashboard  show aggregate stats (-pdf FILE for a PDF report)
`

type app struct {
	cfg      config.Config
	sessions *session.Store
	client   *api.Client
	notifier *notify.Center
	logger   *zap.Logger
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	cfg := config.Load()
	a := &app{
		cfg:      cfg,
		sessions: session.NewStore(cfg.SessionFile),
		client:   api.NewClient(cfg.APIBaseURL, logger),
		notifier: notify.NewCenter(logger),
		logger:   logger,
	}

	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "signup":
		err = a.signup(ctx, os.Args[2:])
	case "login":
		err = a.login(ctx, os.Args[2:])
	case "logout":
		err = a.sessions.Clear()
	case "list":
		err = a.list(ctx, os.Args[2:])
	case "add":
		err = a.add(ctx, os.Args[2:])
	case "toggle":
		err = a.toggle(ctx, os.Args[2:])
	case "rm":
		err = a.remove(ctx, os.Args[2:])
	case "dashboard":
		err = a.dashboard(ctx, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	a.printNotifications()
	if err != nil {
		os.Exit(1)
	}
}

func (a *app) signup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	user := fs.String("user", "", "username")
	pass := fs.String("pass", "", "password")
	fs.Parse(args)

	res, err := a.client.Signup(ctx, *user, *pass)
	if err != nil {
		a.notifier.Error("Signup failed", err.Error())
		return err
	}
	if err := a.sessions.Save(res.User); err != nil {
		return err
	}
	a.notifier.Success("Welcome", res.Message)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	user := fs.String("user", "", "username")
	pass := fs.String("pass", "", "password")
	fs.Parse(args)

	res, err := a.client.Login(ctx, *user, *pass)
	if err != nil {
		a.notifier.Error("Login failed", err.Error())
		return err
	}
	if err := a.sessions.Save(res.User); err != nil {
		return err
	}
	a.notifier.Success("Welcome back", res.Message)
	return nil
}

// openBoard gates task commands on a stored session, then loads the
// collection.
func (a *app) openBoard(ctx context.Context) (*board.Board, error) {
	sess, err := a.sessions.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "not signed in: run taskboard login first")
		return nil, err
	}

	b := board.New(a.client, a.notifier, sess.UserID, a.logger)
	if err := b.Refresh(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	query := fs.String("q", "", "text query")
	status := fs.String("status", "", "PENDING, IN_PROGRESS or COMPLETED")
	priority := fs.String("priority", "", "LOW, MEDIUM or HIGH")
	sortBy := fs.String("sort", string(board.SortRecency), "updatedAt, dueDate, priority, title or status")
	fs.Parse(args)

	b, err := a.openBoard(ctx)
	if err != nil {
		return err
	}

	view := b.View(board.Filter{
		Query:    *query,
		Status:   model.Status(*status),
		Priority: model.Priority(*priority),
		Sort:     board.SortKey(*sortBy),
	})
	for _, t := range view {
		printTask(t)
	}
	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	title := fs.String("title", "", "task title")
	desc := fs.String("desc", "", "description")
	priority := fs.String("priority", "", "LOW, MEDIUM or HIGH")
	due := fs.String("due", "", "due date, YYYY-MM-DD")
	fs.Parse(args)

	draft := model.Draft{
		Title:    *title,
		Priority: model.Priority(*priority),
	}
	if *desc != "" {
		draft.Description = desc
	}
	if *due != "" {
		d, err := model.ParseDate(*due)
		if err != nil {
			a.notifier.Error("Save failed", err.Error())
			return err
		}
		draft.DueDate = &d
	}

	b, err := a.openBoard(ctx)
	if err != nil {
		return err
	}

	created, err := b.Create(ctx, draft)
	if err != nil {
		return err
	}
	printTask(created)
	return nil
}

func (a *app) toggle(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("toggle", flag.ExitOnError)
	id := fs.Int64("id", 0, "task id")
	fs.Parse(args)

	b, err := a.openBoard(ctx)
	if err != nil {
		return err
	}

	updated, err := b.ToggleComplete(ctx, *id)
	if err != nil {
		return err
	}
	printTask(updated)
	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	id := fs.Int64("id", 0, "task id")
	fs.Parse(args)

	b, err := a.openBoard(ctx)
	if err != nil {
		return err
	}

	b.Delete(ctx, *id)

	// The delete request fires after the grace delay; wait it out.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if !b.PendingRemoval(*id) {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("delete of task %d did not finish", *id)
}

func (a *app) dashboard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	pdfPath := fs.String("pdf", "", "write a PDF report to this path")
	fs.Parse(args)

	b, err := a.openBoard(ctx)
	if err != nil {
		return err
	}
	stats := b.Stats()

	var renderer chart.Renderer = chart.NewTextRenderer()
	if *pdfPath != "" {
		renderer = chart.NewPDFRenderer()
		f, err := os.Create(*pdfPath)
		if err != nil {
			return err
		}
		defer f.Close()
		return renderer.Render(f, stats)
	}
	return renderer.Render(os.Stdout, stats)
}

func printTask(t model.Task) {
	due := "-"
	if t.DueDate != nil {
		due = t.DueDate.String()
	}
	desc := ""
	if t.Description != nil {
		desc = *t.Description
	}
	fmt.Printf("%4d  %-11s %-6s due:%-10s  %s  %s\n", t.ID, t.Status, t.Priority, due, t.Title, desc)
}

func (a *app) printNotifications() {
	items := a.notifier.Items()
	for i := len(items) - 1; i >= 0; i-- {
		n := items[i]
		if n.Message != "" {
			fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", n.Severity, n.Title, n.Message)
		} else {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Severity, n.Title)
		}
	}
}
