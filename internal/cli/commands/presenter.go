package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/leapstack-labs/shopdash/internal/formflow"
)

// TerminalPresenter prints form feedback to a terminal. Toasts become
// coloured status lines; navigation becomes a dashboard link when an origin
// is configured.
type TerminalPresenter struct {
	w       io.Writer
	origin  string
	logger  *slog.Logger
	success lipgloss.Style
	failure lipgloss.Style
	link    lipgloss.Style
}

var _ formflow.Presenter = (*TerminalPresenter)(nil)

// NewTerminalPresenter creates a presenter writing to w. Colours are only
// emitted when w is a terminal and NO_COLOR is unset.
func NewTerminalPresenter(w io.Writer, origin string, logger *slog.Logger) *TerminalPresenter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := newRenderer(w)
	return &TerminalPresenter{
		w:       w,
		origin:  strings.TrimSuffix(origin, "/"),
		logger:  logger,
		success: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		link:    r.NewStyle().Faint(true).Underline(true),
	}
}

// Toast implements formflow.Presenter.
func (p *TerminalPresenter) Toast(t formflow.Toast) {
	mark := p.success.Render("✓")
	if t.Level == formflow.ToastError {
		mark = p.failure.Render("✗")
	}
	_, _ = fmt.Fprintf(p.w, "%s %s\n", mark, t.Message)
}

// Navigate implements formflow.Presenter.
func (p *TerminalPresenter) Navigate(n formflow.Navigation) {
	p.logger.Debug("navigate", "target", n.Target(), "refresh", n.Refresh)
	if p.origin == "" || n.Target() == "" {
		return
	}
	_, _ = fmt.Fprintf(p.w, "  %s\n", p.link.Render(p.origin+n.Target()))
}

func toastf(format string, args ...any) formflow.Toast {
	return formflow.Toast{Level: formflow.ToastSuccess, Message: fmt.Sprintf(format, args...)}
}

// newRenderer returns a lipgloss renderer for w that honours NO_COLOR.
func newRenderer(w io.Writer) *lipgloss.Renderer {
	if termenv.EnvNoColor() {
		return lipgloss.NewRenderer(w, termenv.WithProfile(termenv.Ascii))
	}
	return lipgloss.NewRenderer(w)
}
