package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/bridge-runtime/bridge"
	bridgeerr "github.com/wippyai/bridge-runtime/errors"
)

// historyLimit caps the number of calls kept on screen.
const historyLimit = 10

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var isTerminal = func(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

type interactiveModel struct {
	err     error
	input   textinput.Model
	history []string
	variant bridge.Variant
	calls   int
}

func newInteractiveModel(variant bridge.Variant) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "u32 value"
	ti.CharLimit = 10
	ti.Width = 20
	ti.Focus()

	return &interactiveModel{
		input:   ti,
		variant: variant,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) submit() {
	raw := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if raw == "" {
		return
	}

	a, err := parseValue(raw)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.calls++

	var b strings.Builder
	bridge.ProcessVariant(&b, m.variant, a)
	m.history = append(m.history, strings.TrimSuffix(b.String(), "\n"))
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("processRust"))
	b.WriteString(" ")
	b.WriteString(helpStyle.Render("variant " + m.variant.String() + " • calls " + strconv.Itoa(m.calls)))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	for _, out := range m.history {
		b.WriteString(resultStyle.Render(out))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: call • esc: quit"))
	return b.String()
}

func newInteractiveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Call the bridge from a terminal UI",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin.Fd()) || !isTerminal(os.Stdout.Fd()) {
				return bridgeerr.New(bridgeerr.PhaseInput, bridgeerr.KindUnsupported).
					Detail("interactive mode needs a terminal; use \"bridge call\" instead").
					Build()
			}
			p := tea.NewProgram(newInteractiveModel(opts.variant), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}
}
