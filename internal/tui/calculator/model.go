// Package calculator is the interactive terminal calculator: an expression
// REPL with scrollback and an accumulator mode that builds a program one
// instruction at a time.
package calculator

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/numerik/internal/calc"
)

const maxHistory = 100

// Model is the bubbletea model of the calculator
type Model struct {
	width  int
	height int
	ready  bool

	input    textinput.Model
	viewport viewport.Model

	svc       *calc.Service
	lines     []line
	busy      bool
	quitting  bool
	showLog   bool
	accMode   bool
	program   calc.Program
	lastValue string

	inputHistory []string
	historyIndex int
	currentInput string
}

// New creates a calculator model on top of svc
func New(svc *calc.Service) Model {
	ti := textinput.New()
	ti.Prompt = PromptExpr
	ti.Placeholder = "1 + 2 * 3, or :help"
	ti.CharLimit = 4096
	ti.Focus()

	return Model{
		input:        ti,
		svc:          svc,
		historyIndex: -1,
		lines: []line{
			{kindInfo, "type an expression and press enter; :help lists commands"},
		},
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		footerHeight := 5
		viewportHeight := max(msg.Height-headerHeight-footerHeight, 3)

		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 8
		m.updateViewportContent()

	case evaluatedMsg:
		m.busy = false
		switch {
		case msg.err != nil:
			m.push(kindError, msg.err.Error())
		case !msg.result.Valid:
			m.push(kindVoid, VoidText)
		default:
			m.lastValue = msg.result.Value
			m.push(kindResult, "= "+msg.result.Value)
		}

	case previewMsg:
		m.busy = false
		if msg.err != nil {
			m.program.Instructions = m.program.Instructions[:len(m.program.Instructions)-msg.added]
			m.push(kindError, msg.err.Error())
			break
		}
		m.lastValue = msg.result.Value
		if m.showLog && len(msg.result.Log) > 0 {
			m.push(kindLog, msg.result.Log[len(msg.result.Log)-1])
		}
		m.push(kindResult, "acc = "+msg.result.Value)

	case committedMsg:
		m.busy = false
		if msg.err != nil {
			m.push(kindError, msg.err.Error())
			break
		}
		m.accMode = false
		m.input.Prompt = PromptExpr
		m.program = calc.Program{}
		m.lastValue = msg.result.Value
		text := "program finished: " + msg.result.Value
		if msg.result.ID != "" {
			text += " (journal " + msg.result.ID + ")"
		}
		m.push(kindInfo, text)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		input := strings.TrimSpace(m.input.Value())
		if input == "" || m.busy {
			return m, nil
		}
		m.remember(input)
		m.input.Reset()
		return m.submit(input)

	case tea.KeyUp:
		if len(m.inputHistory) > 0 {
			if m.historyIndex == -1 {
				m.currentInput = m.input.Value()
				m.historyIndex = len(m.inputHistory) - 1
			} else if m.historyIndex > 0 {
				m.historyIndex--
			}
			m.input.SetValue(m.inputHistory[m.historyIndex])
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if m.historyIndex != -1 {
			if m.historyIndex < len(m.inputHistory)-1 {
				m.historyIndex++
				m.input.SetValue(m.inputHistory[m.historyIndex])
			} else {
				m.historyIndex = -1
				m.input.SetValue(m.currentInput)
			}
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) remember(input string) {
	if len(m.inputHistory) == 0 || m.inputHistory[len(m.inputHistory)-1] != input {
		m.inputHistory = append(m.inputHistory, input)
		if len(m.inputHistory) > maxHistory {
			m.inputHistory = m.inputHistory[len(m.inputHistory)-maxHistory:]
		}
	}
	m.historyIndex = -1
	m.currentInput = ""
}

// submit handles one entered line
func (m Model) submit(input string) (tea.Model, tea.Cmd) {
	if strings.HasPrefix(input, ":") {
		return m.command(input)
	}

	m.push(kindInput, m.input.Prompt+input)
	if !m.accMode {
		m.busy = true
		return m, m.evaluate(input)
	}

	parsed, err := calc.ParseProgram(input)
	if err != nil {
		m.push(kindError, err.Error())
		return m, nil
	}
	m.program.Instructions = append(m.program.Instructions, parsed.Instructions...)
	m.busy = true
	return m, m.preview(m.program, len(parsed.Instructions))
}

func (m Model) command(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(strings.Fields(input)[0]) {
	case ":q", ":quit", ":exit":
		m.quitting = true
		return m, tea.Quit

	case ":clear":
		m.lines = nil
		m.updateViewportContent()
		if m.accMode {
			m.program = calc.Program{Origin: "repl"}
			m.push(kindInfo, "accumulator cleared")
		}

	case ":acc":
		if m.accMode {
			m.push(kindInfo, "already in accumulator mode; :end runs the program")
			break
		}
		m.accMode = true
		m.program = calc.Program{Origin: "repl"}
		m.input.Prompt = PromptAcc
		m.push(kindInfo, "accumulator mode: add, sub, mul, depercent, div, divpct, rdiv, rdivpct, mod, rmod, neg, abs, scale, clear")

	case ":end":
		if !m.accMode {
			m.push(kindError, "not in accumulator mode")
			break
		}
		if len(m.program.Instructions) == 0 {
			m.accMode = false
			m.input.Prompt = PromptExpr
			m.push(kindInfo, "empty program discarded")
			break
		}
		m.busy = true
		return m, m.commit(m.program)

	case ":log":
		m.showLog = !m.showLog
		m.push(kindInfo, fmt.Sprintf("audit log lines %s", onOff(m.showLog)))

	case ":help":
		for _, h := range helpLines {
			m.push(kindInfo, h)
		}

	default:
		m.push(kindError, "unknown command "+input)
	}
	return m, nil
}

var helpLines = []string{
	":acc    start an accumulator program",
	":end    run and journal the program, back to expressions",
	":log    toggle audit log lines in accumulator mode",
	":clear  clear the scrollback (and the program in :acc)",
	":q      quit",
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m Model) evaluate(expr string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		result, err := svc.Evaluate(context.Background(), expr)
		return evaluatedMsg{expr: expr, result: result, err: err}
	}
}

func (m Model) preview(program calc.Program, added int) tea.Cmd {
	svc := m.svc
	program.Instructions = append([]calc.Instruction(nil), program.Instructions...)
	return func() tea.Msg {
		result, err := svc.Preview(context.Background(), program)
		return previewMsg{added: added, result: result, err: err}
	}
}

func (m Model) commit(program calc.Program) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		result, err := svc.Run(context.Background(), program)
		return committedMsg{result: result, err: err}
	}
}

func (m *Model) push(kind lineKind, text string) {
	m.lines = append(m.lines, line{kind: kind, text: text})
	m.updateViewportContent()
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for i, l := range m.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(renderLine(l))
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func renderLine(l line) string {
	switch l.kind {
	case kindInput:
		return InputLineStyle.Render(l.text)
	case kindResult:
		return ResultStyle.Render(l.text)
	case kindVoid:
		return VoidStyle.Render(l.text)
	case kindError:
		return ErrorStyle.Render("! " + l.text)
	case kindLog:
		return LogLineStyle.Render("  " + l.text)
	default:
		return InfoStyle.Render(l.text)
	}
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "starting numerik..."
	}

	mode := "expression"
	if m.accMode {
		mode = fmt.Sprintf("accumulator (%d instructions)", len(m.program.Instructions))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		LogoStyle.Render(Logo),
		"  ",
		ModeStyle.Render(mode),
	)

	status := SubHeaderStyle.Render("last value: " + valueOrDash(m.lastValue))
	help := HelpStyle.Render("enter evaluate • ↑/↓ history • pgup/pgdn scroll • :help • ctrl+c quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.viewport.View(),
		InputBoxStyle.Width(max(m.width-4, 10)).Render(m.input.View()),
		status,
		help,
	)
}

func valueOrDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

// Lines returns the scrollback as plain text, newest last
func (m Model) Lines() []string {
	out := make([]string, len(m.lines))
	for i, l := range m.lines {
		out[i] = l.text
	}
	return out
}

// Run starts the calculator full screen and blocks until it quits
func Run(svc *calc.Service) error {
	_, err := tea.NewProgram(New(svc), tea.WithAltScreen()).Run()
	return err
}
