package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/shopdash/internal/formflow"
)

// ErrNotConfirmed is returned when a delete was neither confirmed with --yes
// nor at the interactive prompt.
var ErrNotConfirmed = errors.New("delete not confirmed (pass --yes)")

// deletable is the delete half of a formflow.Form.
type deletable interface {
	OpenConfirm() error
	ConfirmDelete(ctx context.Context) error
}

// Presenter returns the terminal presenter for form feedback. Feedback goes to
// stderr so stdout stays parseable.
func (c *CommandContext) Presenter() *TerminalPresenter {
	return NewTerminalPresenter(c.ErrOut, c.Cfg.Server.Origin, c.Logger)
}

// Interactive reports whether the command can prompt the user.
func (c *CommandContext) Interactive() bool {
	f, ok := c.In.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// submit runs a form submit and replays its feedback to the terminal.
func (c *CommandContext) submit(ctx context.Context, rec *formflow.Recorder, run func(context.Context) error) error {
	err := run(ctx)
	rec.Replay(c.Presenter())
	return formError(err)
}

// confirmDelete opens the form's confirmation and performs the delete. Without
// yes the user is asked on a terminal; elsewhere the delete is refused.
func (c *CommandContext) confirmDelete(ctx context.Context, rec *formflow.Recorder, form deletable, what string, yes bool) error {
	if err := form.OpenConfirm(); err != nil {
		return err
	}
	if !yes {
		if !c.Interactive() {
			return ErrNotConfirmed
		}
		answer, err := Prompt(c.In, c.ErrOut, fmt.Sprintf("Delete %s? This action cannot be undone.", what), "y/N")
		if err != nil {
			return err
		}
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			return ErrNotConfirmed
		}
	}
	err := form.ConfirmDelete(ctx)
	rec.Replay(c.Presenter())
	return err
}

// formError turns a validation failure into a readable error listing each field.
func formError(err error) error {
	var verr *formflow.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	var sb strings.Builder
	sb.WriteString("invalid input:")
	for _, name := range verr.Fields.Fields() {
		fmt.Fprintf(&sb, "\n  %s: %s", name, verr.Fields[name])
	}
	return errors.New(sb.String())
}

// storeFlag registers the --store flag shared by the store-scoped commands.
func storeFlag(cmd *cobra.Command, storeID *string) {
	cmd.PersistentFlags().StringVarP(storeID, "store", "s", "", "Store ID")
}

func requireStore(storeID string) error {
	if storeID == "" {
		return errors.New("--store is required")
	}
	return nil
}
