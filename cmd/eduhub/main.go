package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/eduhub/eduhub-go/config"
	"github.com/eduhub/eduhub-go/internal/adapters/eduapi"
	"github.com/eduhub/eduhub-go/internal/bootstrap"
	domainauth "github.com/eduhub/eduhub-go/internal/domain/auth"
	"github.com/eduhub/eduhub-go/internal/domain/model"
	apperrors "github.com/eduhub/eduhub-go/internal/errors"
	"github.com/eduhub/eduhub-go/internal/ports"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2)
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2)
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1)
	}
	if cfg.IsDev {
		logger = bootstrap.InitDevLogger()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		if msg := apperrors.DisplayMessage(runErr, ""); msg != "" {
			if werr := writef(os.Stderr, "%s\n", msg); werr != nil {
				logger.Error("print error message failed", "error", werr)
			}
		} else {
			logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		}
		os.Exit(1)
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Sign in and persist the session",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Sign out and clear the stored session",
			run:         runLogout,
		},
		"register": {
			name:        "register",
			description: "Create an account",
			run:         runRegister,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the signed-in user",
			run:         runWhoami,
		},
		"courses": {
			name:        "courses",
			description: "List catalog courses, optionally filtered",
			run:         runCourses,
		},
		"mentors": {
			name:        "mentors",
			description: "List mentors, optionally filtered",
			run:         runMentors,
		},
		"dashboard": {
			name:        "dashboard",
			description: "Show dashboard statistics for the signed-in user",
			run:         runDashboard,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: eduhub <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-12s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

// buildApp wires the client stack and arranges teardown on command exit.
func buildApp(cmdCtx *commandContext) (*bootstrap.App, func(), error) {
	app, err := bootstrap.BuildApp(cmdCtx.Ctx, cmdCtx.Config, cmdCtx.Logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if cerr := app.Close(); cerr != nil {
			cmdCtx.Logger.Warn("close app failed", "error", cerr)
		}
	}
	return app, cleanup, nil
}

type loginOptions struct {
	Email    string
	Password string
}

func parseLoginFlags(args []string) (loginOptions, error) {
	var opts loginOptions
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.StringVar(&opts.Email, "email", "", "account email address")
	fs.StringVar(&opts.Password, "password", "", "account password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags(args)
	if err != nil {
		return err
	}
	if opts.Email == "" {
		return apperrors.ValidationField("email", "Email is required (use -email).")
	}
	if opts.Password == "" {
		opts.Password, err = promptSecret("Password: ")
		if err != nil {
			return err
		}
	}

	app, cleanup, err := buildApp(cmdCtx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := app.Sessions.Login(cmdCtx.Ctx, opts.Email, opts.Password); err != nil {
		return err
	}

	snap := app.Sessions.Snapshot()
	return writef(os.Stdout, "Signed in as %s\n", snap.DisplayName)
}

func runLogout(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	app, cleanup, err := buildApp(cmdCtx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := app.Sessions.Logout(cmdCtx.Ctx); err != nil {
		return err
	}
	return writef(os.Stdout, "Signed out.\n")
}

type registerOptions struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func parseRegisterFlags(args []string) (registerOptions, error) {
	var opts registerOptions
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.StringVar(&opts.Name, "name", "", "full display name")
	fs.StringVar(&opts.Email, "email", "", "account email address")
	fs.StringVar(&opts.Password, "password", "", "account password (prompted when omitted)")
	fs.StringVar(&opts.Role, "role", "student", "account role: student or mentor")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func runRegister(cmdCtx *commandContext, args []string) error {
	opts, err := parseRegisterFlags(args)
	if err != nil {
		return err
	}
	if opts.Password == "" {
		opts.Password, err = promptSecret("Password: ")
		if err != nil {
			return err
		}
	}
	confirm, err := promptSecret("Confirm password: ")
	if err != nil {
		return err
	}

	app, cleanup, err := buildApp(cmdCtx)
	if err != nil {
		return err
	}
	defer cleanup()

	in := ports.RegisterInput{
		Name:            opts.Name,
		Email:           opts.Email,
		Password:        opts.Password,
		ConfirmPassword: confirm,
		Role:            domainauth.Role(opts.Role),
	}
	if err := app.Sessions.Register(cmdCtx.Ctx, in); err != nil {
		return err
	}

	snap := app.Sessions.Snapshot()
	if snap.Authenticated {
		return writef(os.Stdout, "Account created. Signed in as %s\n", snap.DisplayName)
	}
	return writef(os.Stdout, "Account created. Run `eduhub login` to sign in.\n")
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	app, cleanup, err := buildApp(cmdCtx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := app.Sessions.Init(cmdCtx.Ctx); err != nil {
		return err
	}
	snap := app.Sessions.Snapshot()
	if !snap.Authenticated {
		return writef(os.Stdout, "Not signed in.\n")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", snap.DisplayName)
	fmt.Fprintf(w, "Email:\t%s\n", snap.User.Email)
	fmt.Fprintf(w, "Role:\t%s\n", snap.User.Role)
	if snap.User.Location != "" {
		fmt.Fprintf(w, "Location:\t%s\n", snap.User.Location)
	}
	if len(snap.User.Skills) > 0 {
		fmt.Fprintf(w, "Skills:\t%s\n", strings.Join(snap.User.Skills, ", "))
	}
	return w.Flush()
}

type coursesOptions struct {
	Search   string
	Category string
	Level    string
	Local    bool
}

func parseCoursesFlags(args []string) (coursesOptions, error) {
	var opts coursesOptions
	fs := flag.NewFlagSet("courses", flag.ContinueOnError)
	fs.StringVar(&opts.Search, "search", "", "match against title, description, and instructor")
	fs.StringVar(&opts.Category, "category", "", "exact category (\"all\" disables the filter)")
	fs.StringVar(&opts.Level, "level", "", "exact level (\"all\" disables the filter)")
	fs.BoolVar(&opts.Local, "local", false, "fetch the full catalog and filter client-side")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func runCourses(cmdCtx *commandContext, args []string) error {
	opts, err := parseCoursesFlags(args)
	if err != nil {
		return err
	}

	app, cleanup, err := buildApp(cmdCtx)
	if err != nil {
		return err
	}
	defer cleanup()

	var courses []model.Course
	if opts.Local {
		courses, err = app.API.Courses(cmdCtx.Ctx, eduapi.CourseQuery{})
		if err != nil {
			return err
		}
		filter := model.CourseFilter{
			Search:   opts.Search,
			Category: opts.Category,
			Level:    opts.Level,
		}
		courses = filter.Apply(courses)
	} else {
		query := eduapi.CourseQuery{Search: opts.Search}
		if opts.Category != "" && opts.Category != model.FilterAll {
			query.Category = opts.Category
		}
		if opts.Level != "" && opts.Level != model.FilterAll {
			query.Level = model.CourseLevel(opts.Level)
		}
		courses, err = app.API.Courses(cmdCtx.Ctx, query)
		if err != nil {
			return err
		}
	}

	if len(courses) == 0 {
		return writef(os.Stdout, "No courses found.\n")
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tLEVEL\tRATING\tSTUDENTS")
	for _, c := range courses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.1f\t%d\n",
			c.ID, c.Title, c.Category, c.Level, c.Rating, c.Students)
	}
	return w.Flush()
}

type mentorsOptions struct {
	Search     string
	Expertise  string
	Experience string
	Local      bool
}

func parseMentorsFlags(args []string) (mentorsOptions, error) {
	var opts mentorsOptions
	fs := flag.NewFlagSet("mentors", flag.ContinueOnError)
	fs.StringVar(&opts.Search, "search", "", "match against name, title, company, and expertise")
	fs.StringVar(&opts.Expertise, "expertise", "", "expertise tag (\"all\" disables the filter)")
	fs.StringVar(&opts.Experience, "experience", "", "exact experience bracket (\"all\" disables the filter)")
	fs.BoolVar(&opts.Local, "local", false, "fetch the full directory and filter client-side")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func runMentors(cmdCtx *commandContext, args []string) error {
	opts, err := parseMentorsFlags(args)
	if err != nil {
		return err
	}

	app, cleanup, err := buildApp(cmdCtx)
	if err != nil {
		return err
	}
	defer cleanup()

	var mentors []model.Mentor
	if opts.Local {
		mentors, err = app.API.Mentors(cmdCtx.Ctx, eduapi.MentorQuery{})
		if err != nil {
			return err
		}
		filter := model.MentorFilter{
			Search:     opts.Search,
			Expertise:  opts.Expertise,
			Experience: opts.Experience,
		}
		mentors = filter.Apply(mentors)
	} else {
		query := eduapi.MentorQuery{Search: opts.Search}
		if opts.Expertise != "" && opts.Expertise != model.FilterAll {
			query.Expertise = opts.Expertise
		}
		if opts.Experience != "" && opts.Experience != model.FilterAll {
			query.Experience = opts.Experience
		}
		mentors, err = app.API.Mentors(cmdCtx.Ctx, query)
		if err != nil {
			return err
		}
	}

	if len(mentors) == 0 {
		return writef(os.Stdout, "No mentors found.\n")
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTITLE\tCOMPANY\tRATING\tAVAILABLE")
	for _, m := range mentors {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.1f\t%t\n",
			m.ID, m.Name, m.Title, m.Company, m.Rating, m.Available)
	}
	return w.Flush()
}

func runDashboard(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	app, cleanup, err := buildApp(cmdCtx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := app.Sessions.Init(cmdCtx.Ctx); err != nil {
		return err
	}
	if !app.Sessions.Snapshot().Authenticated {
		return apperrors.Unauthorized("Sign in first with `eduhub login`.")
	}

	stats, err := app.API.DashboardStats(cmdCtx.Ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Enrolled courses:\t%d\n", stats.EnrolledCourses)
	fmt.Fprintf(w, "Completed courses:\t%d\n", stats.CompletedCourses)
	fmt.Fprintf(w, "Hours learned:\t%.1f\n", stats.HoursLearned)
	fmt.Fprintf(w, "Current streak:\t%d days\n", stats.CurrentStreak)
	fmt.Fprintf(w, "Mentor sessions:\t%d\n", stats.MentorSessions)
	fmt.Fprintf(w, "Achievements:\t%d\n", stats.Achievements)
	return w.Flush()
}

// promptSecret reads a line from stdin. Plain line input; no terminal raw
// mode, which keeps the CLI usable under pipes and CI.
func promptSecret(prompt string) (string, error) {
	if err := writef(os.Stderr, "%s", prompt); err != nil {
		return "", err
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
