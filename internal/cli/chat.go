package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joebot/bookbot/internal/bot"
)

const noMatchHint = "(no command matched, try !help)"

// --- message types ---

type routedMsg struct {
	replies []bot.Reply
	err     error
}

// ChatConfig holds display metadata for the chat TUI.
type ChatConfig struct {
	APIBase string
	LogPath string
}

type chatEntry struct {
	role    string // "user", "bot", "error"
	content string
	replies []bot.Reply
}

// --- interactive chat model ---

type chatModel struct {
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	history    []chatEntry
	waiting    bool
	cancelFunc context.CancelFunc

	router *bot.Router
	ctx    context.Context

	ready  bool
	width  int
	height int
	cfg    ChatConfig
}

func newSpinner() spinner.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Accent)
	return sp
}

func newChatModel(ctx context.Context, router *bot.Router, cfg ChatConfig) chatModel {
	ti := textinput.New()
	ti.Placeholder = "!search <title>, !recommend <author>, !ping, !help"
	ti.Focus()
	ti.CharLimit = 0
	ti.Prompt = "❯ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(Accent)

	return chatModel{
		input:   ti,
		spinner: newSpinner(),
		router:  router,
		ctx:     ctx,
		cfg:     cfg,
	}
}

func (m chatModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// header + divider + viewport + divider + input + status
		vpHeight := msg.Height - 5
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.input.Width = msg.Width - 4
		m.viewport.SetContent(m.renderHistory())
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			input := strings.TrimSpace(m.input.Value())
			if input == "" {
				return m, nil
			}
			if isExitCmd(input) {
				return m, tea.Quit
			}
			m.history = append(m.history, chatEntry{role: "user", content: input})
			m.input.SetValue("")
			m.input.Blur()
			m.waiting = true
			msgCtx, cancel := context.WithCancel(m.ctx)
			m.cancelFunc = cancel
			m.viewport.SetContent(m.renderHistory())
			m.viewport.GotoBottom()
			return m, tea.Batch(m.spinner.Tick, route(msgCtx, m.router, input))
		case tea.KeyEsc:
			if m.waiting && m.cancelFunc != nil {
				m.cancelFunc()
				m.cancelFunc = nil
			}
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case routedMsg:
		m.waiting = false
		m.cancelFunc = nil
		focusCmd := m.input.Focus()
		switch {
		case errors.Is(msg.err, context.Canceled):
			m.history = append(m.history, chatEntry{role: "bot", content: "[Interrupted]"})
		case msg.err != nil:
			m.history = append(m.history, chatEntry{role: "error", content: msg.err.Error()})
		case len(msg.replies) == 0:
			m.history = append(m.history, chatEntry{role: "bot", content: DimStyle.Render(noMatchHint)})
		default:
			m.history = append(m.history, chatEntry{role: "bot", replies: msg.replies})
		}
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, focusCmd

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if !m.waiting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m chatModel) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	header := TitleStyle.Render(fmt.Sprintf(" %s bookbot", Logo))
	divider := DimStyle.Render(strings.Repeat("─", m.width))

	inputLine := " " + m.input.View()
	if m.waiting {
		inputLine = fmt.Sprintf(" %s Searching... (Esc to stop)", m.spinner.View())
	}

	return header + "\n" +
		divider + "\n" +
		m.viewport.View() + "\n" +
		divider + "\n" +
		inputLine + "\n" +
		m.renderStatusBar()
}

func (m chatModel) renderHistory() string {
	if len(m.history) == 0 {
		return m.renderWelcome()
	}

	var sb strings.Builder
	for _, entry := range m.history {
		sb.WriteString("\n")
		switch entry.role {
		case "user":
			sb.WriteString("  " + UserLabel.Render("You") + "\n")
			sb.WriteString(indent(entry.content) + "\n")
		case "bot":
			sb.WriteString("  " + BotLabel.Render("bookbot") + "\n")
			if entry.content != "" {
				sb.WriteString(indent(entry.content) + "\n")
			}
			for _, r := range entry.replies {
				sb.WriteString(indent(RenderReply(r, m.width-4)) + "\n")
			}
		case "error":
			sb.WriteString(Fail(entry.content) + "\n")
		}
	}
	return sb.String()
}

func (m chatModel) renderWelcome() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("  " + BoldStyle.Render("Try a command:") + "\n")
	sb.WriteString(DimStyle.Render("  !search Dune") + "\n")
	sb.WriteString(DimStyle.Render("  !recommend Ursula K. Le Guin") + "\n")
	sb.WriteString(DimStyle.Render("  !ping") + "\n")
	sb.WriteString(DimStyle.Render("  !help") + "\n")
	return sb.String()
}

func (m chatModel) renderStatusBar() string {
	left := DimStyle.Render(" logs: " + m.cfg.LogPath)
	right := DimStyle.Render(m.cfg.APIBase + " ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func route(ctx context.Context, router *bot.Router, input string) tea.Cmd {
	return func() tea.Msg {
		replies, err := Route(ctx, router, input)
		return routedMsg{replies: replies, err: err}
	}
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

func isExitCmd(s string) bool {
	s = strings.ToLower(s)
	return s == "exit" || s == "quit" || s == "/exit" || s == "/quit" || s == ":q"
}

// RunChat starts the interactive chat TUI.
func RunChat(ctx context.Context, router *bot.Router, cfg ChatConfig) error {
	p := tea.NewProgram(newChatModel(ctx, router, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// --- single message model ---

type singleModel struct {
	spinner spinner.Model
	router  *bot.Router
	ctx     context.Context
	message string
	replies []bot.Reply
	err     error
	done    bool
}

func (m singleModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, route(m.ctx, m.router, m.message))
}

func (m singleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case routedMsg:
		m.replies = msg.replies
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m singleModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("\n %s Searching...\n", m.spinner.View())
}

// RunSingleMessage routes one message with a spinner, then prints the replies.
func RunSingleMessage(ctx context.Context, router *bot.Router, message string) error {
	m := singleModel{
		spinner: newSpinner(),
		router:  router,
		ctx:     ctx,
		message: message,
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}

	fm := final.(singleModel)
	if fm.err != nil {
		fmt.Println(Fail(fm.err.Error()))
		return fm.err
	}

	fmt.Println()
	fmt.Println("  " + BotLabel.Render("bookbot"))
	if len(fm.replies) == 0 {
		fmt.Println("  " + DimStyle.Render(noMatchHint))
	}
	for _, r := range fm.replies {
		fmt.Println(indent(RenderReply(r, 0)))
	}
	fmt.Println()
	return nil
}
