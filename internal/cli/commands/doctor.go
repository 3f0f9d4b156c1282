package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/shopdash/internal/auth"
	"github.com/leapstack-labs/shopdash/internal/client"
	"github.com/leapstack-labs/shopdash/internal/state"
)

// Check statuses.
const (
	StatusPass  = "pass"
	StatusWarn  = "warn"
	StatusError = "error"
)

// HealthCheck is one finding of the doctor command.
type HealthCheck struct {
	Group   string `json:"group"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Checks []HealthCheck `json:"checks"`
	Errors int           `json:"errors"`
	Warns  int           `json:"warnings"`
}

// ErrUnhealthy is returned by doctor when at least one check failed.
var ErrUnhealthy = errors.New("doctor found problems")

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, database and API health",
		Long: `Check that shopdash is ready to run.

The doctor command verifies:
- Configuration (session secret, API tokens)
- Database (connectivity, schema version)
- API (reachability of api.url, when set)

It exits with an error when any check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			out := runChecks(cmd.Context(), cc)

			if cc.jsonOutput() {
				if err := printJSON(cc.Out, out); err != nil {
					return err
				}
			} else {
				renderDoctorText(cc.Out, out)
			}
			if out.Errors > 0 {
				return ErrUnhealthy
			}
			return nil
		},
	}
}

func runChecks(ctx context.Context, cc *CommandContext) *DoctorOutput {
	var checks []HealthCheck
	checks = append(checks, configChecks(cc)...)
	checks = append(checks, databaseChecks(ctx, cc)...)
	if cc.Cfg.API.URL != "" {
		checks = append(checks, apiCheck(ctx, cc))
	}

	out := &DoctorOutput{Checks: checks}
	for _, c := range checks {
		switch c.Status {
		case StatusError:
			out.Errors++
		case StatusWarn:
			out.Warns++
		}
	}
	return out
}

func configChecks(cc *CommandContext) []HealthCheck {
	cfg := cc.Cfg
	var checks []HealthCheck

	secret := HealthCheck{Group: "configuration", Name: "session secret", Status: StatusPass}
	if err := cfg.ValidateServer(); err != nil {
		secret.Status = StatusWarn
		secret.Details = "serve needs server.session_secret outside dev mode"
	} else if cfg.Server.SessionSecret == "" {
		secret.Details = "dev mode uses a built-in secret"
	}
	checks = append(checks, secret)

	tokens := HealthCheck{Group: "configuration", Name: "api tokens", Status: StatusPass}
	switch {
	case len(cfg.Auth.Tokens) == 0:
		tokens.Status = StatusWarn
		tokens.Details = "auth.tokens is empty; the API only accepts dashboard sessions"
	default:
		tokens.Details = fmt.Sprintf("%d configured", len(cfg.Auth.Tokens))
	}
	checks = append(checks, tokens)

	cli := HealthCheck{Group: "configuration", Name: "cli identity", Status: StatusPass}
	switch {
	case cfg.API.Token == "":
		cli.Status = StatusWarn
		cli.Details = "api.token is not set; store commands will be rejected"
	case cfg.API.URL == "":
		if user, ok := auth.NewTokenResolver(cfg.Auth.Tokens).Lookup(cfg.API.Token); ok {
			cli.Details = "acting as " + user
		} else {
			cli.Status = StatusError
			cli.Details = "api.token is not listed in auth.tokens"
		}
	default:
		cli.Details = "resolved by " + cfg.API.URL
	}
	checks = append(checks, cli)

	return checks
}

func databaseChecks(ctx context.Context, cc *CommandContext) []HealthCheck {
	conn := HealthCheck{Group: "database", Name: "connection", Status: StatusPass}
	repo, err := cc.openDB()
	if err != nil {
		conn.Status = StatusError
		conn.Details = err.Error()
		return []HealthCheck{conn}
	}
	defer func() { _ = repo.Close() }()
	conn.Details = fmt.Sprintf("%s %s", repo.Dialect(), redactDSN(cc.Cfg.Database.DSN))

	schema := HealthCheck{Group: "database", Name: "schema", Status: StatusPass}
	current, err := repo.MigrationVersion(ctx)
	latest, lerr := state.LatestMigrationVersion()
	switch {
	case err != nil:
		schema.Status = StatusError
		schema.Details = err.Error()
	case lerr != nil:
		schema.Status = StatusError
		schema.Details = lerr.Error()
	case current < latest:
		schema.Status = StatusWarn
		schema.Details = fmt.Sprintf("version %d, %d pending (run shopdash migrate)", current, latest-current)
	default:
		schema.Details = fmt.Sprintf("version %d", current)
	}

	return []HealthCheck{conn, schema}
}

func apiCheck(ctx context.Context, cc *CommandContext) HealthCheck {
	check := HealthCheck{Group: "api", Name: "reachable", Status: StatusPass, Details: cc.Cfg.API.URL}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c := client.New(cc.Cfg.API.URL, client.WithToken(cc.Cfg.API.Token))
	if _, err := c.ListStores(ctx); err != nil {
		check.Status = StatusError
		check.Details = err.Error()
	}
	return check
}

// redactDSN hides the password of URL-style DSNs.
func redactDSN(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return dsn
	}
	user, _, hasPass := strings.Cut(creds, ":")
	if !hasPass {
		return dsn
	}
	return scheme + "://" + user + ":****@" + host
}

func renderDoctorText(w io.Writer, out *DoctorOutput) {
	r := newRenderer(w)
	header := r.NewStyle().Bold(true).Underline(true)
	group := r.NewStyle().Bold(true)
	muted := r.NewStyle().Faint(true)
	icons := map[string]string{
		StatusPass:  r.NewStyle().Foreground(lipgloss.Color("10")).Render("✓"),
		StatusWarn:  r.NewStyle().Foreground(lipgloss.Color("11")).Render("!"),
		StatusError: r.NewStyle().Foreground(lipgloss.Color("9")).Render("✗"),
	}

	_, _ = fmt.Fprintln(w, header.Render("Shopdash Health Report"))
	_, _ = fmt.Fprintln(w)

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.Checks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			_, _ = fmt.Fprintln(w, group.Render(titleCaser.String(currentGroup)))
		}
		line := fmt.Sprintf("  %s %s", icons[check.Status], check.Name)
		if check.Details != "" {
			line += " " + muted.Render("("+check.Details+")")
		}
		_, _ = fmt.Fprintln(w, line)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%d errors, %d warnings\n", out.Errors, out.Warns)
}
