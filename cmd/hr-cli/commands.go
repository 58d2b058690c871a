package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"hr-tracker/internal/applications"
	"hr-tracker/internal/common/config"
	apperrors "hr-tracker/internal/common/errors"
	"hr-tracker/internal/form"
	"hr-tracker/internal/models"
)

// ==========================
// Auth
// ==========================

func (a *app) cmdLogin(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("username", "", "HR username")
	password := fs.String("password", "", "Password (defaults to $HR_PASSWORD)")
	if !parseFlags(fs, args) {
		return 2
	}
	if *password == "" {
		*password = os.Getenv("HR_PASSWORD")
	}
	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Error: username and password are required for login.")
		fs.Usage()
		return 2
	}

	user, err := a.guard.Login(ctx, *username, *password)
	if err != nil {
		return a.fail("login", err)
	}
	if err := a.saveCookies(ctx); err != nil {
		a.log.Warn("cannot persist session cookies", map[string]interface{}{"error": err})
	}
	a.printf("Logged in as %s\n", user.DisplayName())
	return 0
}

func (a *app) cmdLogout(ctx context.Context) int {
	if err := a.guard.Logout(ctx); err != nil {
		return a.fail("logout", err)
	}
	a.forgetCookies(ctx)
	a.println("Logged out")
	return 0
}

func (a *app) cmdWhoami(ctx context.Context) int {
	if !a.requireSession(ctx, "whoami") {
		return 1
	}
	user, err := a.guard.Profile(ctx)
	if err != nil {
		return a.fail("whoami", err)
	}
	state := a.guard.State()

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", user.DisplayName())
	if user.Username != "" {
		fmt.Fprintf(w, "Username:\t%s\n", user.Username)
	}
	if user.Email != "" {
		fmt.Fprintf(w, "Email:\t%s\n", user.Email)
	}
	if user.Role != "" {
		fmt.Fprintf(w, "Role:\t%s\n", user.Role)
	}
	fmt.Fprintf(w, "Logged in:\t%s\n", state.LoginAt.Local().Format(time.RFC1123))
	fmt.Fprintf(w, "Expires:\t%s\n", state.LoginAt.Add(a.cfg.SessionTTL()).Local().Format(time.RFC1123))
	_ = w.Flush()
	return 0
}

func (a *app) cmdPasswd(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	current := fs.String("current", "", "Current password")
	next := fs.String("new", "", "New password")
	confirm := fs.String("confirm", "", "New password again")
	if !parseFlags(fs, args) {
		return 2
	}
	if *current == "" || *next == "" || *confirm == "" {
		fmt.Fprintln(os.Stderr, "Error: current, new and confirm are required for passwd.")
		fs.Usage()
		return 2
	}
	if !a.requireSession(ctx, "passwd") {
		return 1
	}

	msg, err := a.guard.ChangePassword(ctx, *current, *next, *confirm)
	if err != nil {
		return a.fail("change-password", err)
	}
	if msg == "" {
		msg = "Password changed"
	}
	a.println(msg)
	return 0
}

// ==========================
// Job titles
// ==========================

func (a *app) cmdTitles(ctx context.Context, args []string) int {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	if !a.requireSession(ctx, "titles") {
		return 1
	}

	need := func(n int, what string) bool {
		if len(args) < n {
			fmt.Fprintf(os.Stderr, "Error: titles %s needs %s\n", sub, what)
			return false
		}
		return true
	}

	switch sub {
	case "list", "all":
		list := a.client.ListActiveJobTitles
		if sub == "all" {
			list = a.client.ListAllJobTitles
		}
		titles, err := list(ctx)
		if err != nil {
			return a.fail("titles-"+sub, err)
		}
		a.printTitles(titles)

	case "add":
		if !need(1, "a title") {
			return 2
		}
		jt, err := a.client.CreateJobTitle(ctx, strings.Join(args, " "))
		if err != nil {
			return a.fail("create-job-title", err)
		}
		a.printf("Created %s (%s)\n", jt.Title, jt.JobTitleID)

	case "rename":
		if !need(2, "an id and a title") {
			return 2
		}
		jt, err := a.client.UpdateJobTitle(ctx, args[0], strings.Join(args[1:], " "))
		if err != nil {
			return a.fail("update-job-title", err)
		}
		a.printf("Renamed %s to %s\n", jt.JobTitleID, jt.Title)

	case "activate", "deactivate":
		if !need(1, "an id") {
			return 2
		}
		jt, err := a.client.SetJobTitleStatus(ctx, args[0], sub == "activate")
		if err != nil {
			return a.fail("set-job-title-status", err)
		}
		a.printf("%s is now %s\n", jt.Title, activeLabel(jt.IsActive))

	case "delete":
		if !need(1, "an id") {
			return 2
		}
		msg, err := a.client.DeleteJobTitle(ctx, args[0])
		if err != nil {
			return a.fail("delete-job-title", err)
		}
		if msg == "" {
			msg = "Deleted " + args[0]
		}
		a.println(msg)

	default:
		fmt.Fprintf(os.Stderr, "Unknown titles command: %s\n", sub)
		return 2
	}
	return 0
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func (a *app) printTitles(titles []models.JobTitle) {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS")
	for _, t := range titles {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.JobTitleID, t.Title, activeLabel(t.IsActive))
	}
	_ = w.Flush()
}

// ==========================
// Applications
// ==========================

type optionalInt struct {
	v *int
}

func (o *optionalInt) String() string {
	if o.v == nil {
		return ""
	}
	return fmt.Sprint(*o.v)
}

func (o *optionalInt) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	o.v = &n
	return nil
}

func (a *app) cmdApps(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("apps", flag.ContinueOnError)
	route := fs.String("status", applications.RouteTotal, "Dashboard view (total_applications, pending_applications, ..., accepted_to_join)")
	var f applications.Filter
	var minAge, maxAge optionalInt
	fs.StringVar(&f.Governorate, "governorate", "", "Governorate")
	fs.StringVar(&f.Area, "area", "", "Area")
	fs.StringVar(&f.Gender, "gender", "", "Gender (ذكر / أنثى)")
	fs.StringVar(&f.EducationStatus, "education", "", "Education status")
	fs.Var(&minAge, "min-age", "Minimum age, inclusive")
	fs.Var(&maxAge, "max-age", "Maximum age, inclusive")
	fs.StringVar(&f.Query, "q", "", "Search name, phone numbers and job title")
	fs.StringVar(&f.IDQuery, "id", "", "Search application id")
	if !parseFlags(fs, args) {
		return 2
	}
	f.MinAge, f.MaxAge = minAge.v, maxAge.v
	if err := f.Validate(); err != nil {
		a.printFieldErrors(err)
		return 2
	}

	if !a.requireSession(ctx, "apps") {
		return 1
	}

	view := applications.StatusView(*route)
	var list []models.Application
	if view.Remote {
		apps, err := a.client.ListApplicationsByStatus(ctx, view.Status)
		if err != nil {
			// the dashboard shows an empty list rather than failing
			a.log.Warn("by-status listing failed", map[string]interface{}{"status": view.Status, "error": err})
			if apperrors.HasCode(err, apperrors.ErrCodeAPIUnauthorized) {
				return a.fail("list-applications", err)
			}
		}
		list = apps
	} else {
		apps, err := a.client.ListApplications(ctx)
		if err != nil {
			return a.fail("list-applications", err)
		}
		list = view.Select(apps)
	}

	list = applications.Apply(list, f)
	a.printApplications(list)
	if n := f.ActiveCount(); n > 0 {
		a.printf("\n%d application(s), %d filter(s) active\n", len(list), n)
	} else {
		a.printf("\n%d application(s)\n", len(list))
	}
	return 0
}

func (a *app) printApplications(apps []models.Application) {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tJOB\tGENDER\tEDUCATION\tGOVERNORATE\tAREA\tWHATSAPP\tSTATUS")
	for _, ap := range apps {
		p := ap.PersonalInfo
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			ap.ApplicationID, p.Name, ap.JobTitle,
			a.tr.T(models.LabelKeyFor(models.GenderOptions, p.Gender)),
			a.tr.T(models.LabelKeyFor(models.EducationStatusOptions, applications.EducationOf(ap))),
			p.Governorate, p.Area, p.WhatsappNumber,
			a.tr.T(string(ap.Status)))
	}
	_ = w.Flush()
}

// printFieldErrors lists the fields of a validation error with their messages.
func (a *app) printFieldErrors(err error) {
	stdErr, ok := apperrors.AsStandardError(err)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fields := make([]string, 0, len(stdErr.Metadata))
	for field := range stdErr.Metadata {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		key, _ := stdErr.Metadata[field].(string)
		fmt.Fprintf(os.Stderr, "Error: %s: %s\n", a.tr.T(field), a.tr.T(key))
	}
}

func (a *app) cmdStats(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	local := fs.Bool("local", false, "Count from the application list instead of the stats endpoint")
	if !parseFlags(fs, args) {
		return 2
	}
	if !a.requireSession(ctx, "stats") {
		return 1
	}

	var stats models.ApplicationStats
	if *local {
		apps, err := a.client.ListApplications(ctx)
		if err != nil {
			return a.fail("list-applications", err)
		}
		stats = applications.Stats(apps)
	} else {
		s, err := a.client.ApplicationStats(ctx)
		if err != nil {
			return a.fail("application-stats", err)
		}
		stats = *s
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total\t%d\n", stats.TotalApplications)
	for _, st := range models.AllStatuses {
		fmt.Fprintf(w, "%s\t%d\n", a.tr.T(string(st)), stats.ByStatus[st])
	}
	// statuses the server knows and we do not
	var extra []string
	for st := range stats.ByStatus {
		if !isKnownStatus(st) {
			extra = append(extra, string(st))
		}
	}
	sort.Strings(extra)
	for _, st := range extra {
		fmt.Fprintf(w, "%s\t%d\n", st, stats.ByStatus[models.ApplicationStatus(st)])
	}
	_ = w.Flush()
	return 0
}

func isKnownStatus(st models.ApplicationStatus) bool {
	for _, s := range models.AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

func (a *app) cmdExport(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("out", a.cfg.Export.Directory, "Directory to write the spreadsheet to")
	if !parseFlags(fs, args) {
		return 2
	}
	if !a.requireSession(ctx, "export") {
		return 1
	}

	exp, err := a.client.ExportApplications(ctx)
	if err != nil {
		return a.fail("export-applications", err)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return a.fail("export-applications", apperrors.NewExportFailedError(err))
	}
	path := filepath.Join(*out, filepath.Base(exp.Filename))
	if err := os.WriteFile(path, exp.Data, 0o644); err != nil {
		return a.fail("export-applications", apperrors.NewExportFailedError(err))
	}
	a.log.Info("export written", map[string]interface{}{"path": path, "bytes": len(exp.Data)})
	a.printf("Exported %s\n", path)
	return 0
}

// ==========================
// Applicant form
// ==========================

func (a *app) cmdValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	step := fs.String("step", "", "Validate a single step (personal or job); default all")
	if !parseFlags(fs, args) {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: validate needs exactly one form file.")
		return 2
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	f, err := form.Decode(raw, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var errs map[string]string
	switch form.Step(*step) {
	case "":
		errs = form.CheckAll(f)
	case form.StepPersonal, form.StepJob:
		state, _, _ := form.ValidateStep(form.NewState(), f, form.Step(*step))
		errs = state.Errors
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown step %q\n", *step)
		return 2
	}

	if len(errs) == 0 {
		if f.PersonalInfo.Age != nil {
			a.printf("Form is valid (age %d)\n", *f.PersonalInfo.Age)
		} else {
			a.println("Form is valid")
		}
		return 0
	}

	a.println(a.tr.T(form.SummaryKey))
	messages := form.Messages(a.cfg.Locale, errs)
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, s := range form.Steps {
		for _, field := range form.StepFields(s) {
			if msg, ok := messages[field]; ok {
				fmt.Fprintf(w, "  %s\t%s\n", a.tr.T(field), msg)
			}
		}
	}
	_ = w.Flush()
	return 1
}

// ==========================
// Session watch
// ==========================

func (a *app) cmdWatch(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	interval := fs.Duration("interval", config.GetDuration(a.cfg.Session.CheckInterval), "Expiry check interval")
	if !parseFlags(fs, args) {
		return 2
	}
	if !a.requireSession(ctx, "watch") {
		return 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.cfg.Metrics.Enabled {
		srv := newMetricsServer(a.cfg.Metrics.Address, a.guard)
		go serveMetrics(srv, a.log)
		defer shutdownServer(srv, a.log)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			a.log.Info("shutdown signal received", nil)
			cancel()
		case <-ctx.Done():
		}
	}()

	state := a.guard.State()
	a.printf("Watching session of %s, expires %s\n",
		state.User.DisplayName(),
		state.LoginAt.Add(a.cfg.SessionTTL()).Local().Format(time.RFC1123))

	err := a.guard.Watch(ctx, *interval)
	switch {
	case err == nil:
		a.forgetCookies(context.Background())
		a.println("Session expired, please log in again.")
		return 1
	case ctx.Err() != nil:
		return 0
	default:
		return a.fail("watch", err)
	}
}
