package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrPromptCancelled is returned when the user leaves a prompt with esc or ctrl+c.
var ErrPromptCancelled = errors.New("cancelled")

var promptTitleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)

// promptModel is a single-line text prompt.
type promptModel struct {
	title     string
	input     textinput.Model
	submitted bool
	cancelled bool
}

func newPromptModel(title, placeholder string) promptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.Width = 40
	ti.Focus()
	return promptModel{title: title, input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}
	var b strings.Builder
	b.WriteString(promptTitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n(enter to confirm, esc to cancel)\n")
	return b.String()
}

// Value returns the entered text.
func (m promptModel) Value() string {
	return m.input.Value()
}

// Prompt asks for a single line of text on a terminal.
func Prompt(in io.Reader, out io.Writer, title, placeholder string) (string, error) {
	p := tea.NewProgram(newPromptModel(title, placeholder), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	m, ok := final.(promptModel)
	if !ok || m.cancelled {
		return "", ErrPromptCancelled
	}
	return m.Value(), nil
}
