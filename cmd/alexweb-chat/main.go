// Command alexweb-chat is a terminal client for the site's chat bridge. It
// streams replies through the same transcript/typewriter pipeline the web
// client uses, typing them out at a human pace.
//
// Usage:
//
//	alexweb-chat [topic...]
//
// Commands:
//
//	/exit - Exit the program
//	<message> - Send a message on the current thread
//
// With a topic, the first turn is "Tell me more about <topic>".
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/workwAIse/alex-web/pkg/chat"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).Padding(0, 1)
)

type revealMsg string
type submitMsg string
type turnDoneMsg struct{ err error }

type model struct {
	ctx     context.Context
	session *chat.Session
	reveals <-chan string
	initial string

	// history holds finished turns; reply is the assistant text revealed so
	// far in the current one.
	history string
	reply   string
	busy    bool
	err     error
	width   int
	height  int

	viewport viewport.Model
	textarea textarea.Model
}

func initialModel(ctx context.Context, session *chat.Session, reveals <-chan string, initial string) model {
	ta := textarea.New()
	ta.Placeholder = "Ask about Alex..."
	ta.Focus()
	ta.Prompt = "┃ "
	ta.CharLimit = 280

	ta.SetWidth(80)
	ta.SetHeight(3)

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.ShowLineNumbers = false

	vp := viewport.New(80, 20)
	vp.SetContent("Ask about Alex's projects, experience, or interests. /exit to quit.")

	return model{
		ctx:      ctx,
		session:  session,
		reveals:  reveals,
		initial:  initial,
		viewport: vp,
		textarea: ta,
	}
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, waitForReveal(m.reveals)}
	if m.initial != "" {
		initial := m.initial
		cmds = append(cmds, func() tea.Msg { return submitMsg(initial) })
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(msg.Width)
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - m.textarea.Height() - 4
		if m.viewport.Height < 0 {
			m.viewport.Height = 0
		}
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.submit(m.textarea.Value())
		}

	case submitMsg:
		return m, m.submit(string(msg))

	case revealMsg:
		if m.busy {
			m.reply += string(msg)
			m.refresh()
		}
		cmds = append(cmds, waitForReveal(m.reveals))

	case turnDoneMsg:
		// Reveals still queued belong to this turn; fold them in before the
		// transcript reconciliation so they never leak into the next one.
	drain:
		for {
			select {
			case <-m.reveals:
			default:
				break drain
			}
		}
		// The transcript is authoritative: a failed turn bypasses the
		// typewriter, so the revealed text may not be the final content.
		if msgs := m.session.Transcript(); len(msgs) > 0 {
			m.reply = msgs[len(msgs)-1].Content
		}
		m.history += m.reply + "\n\n"
		m.reply = ""
		m.busy = false
		m.err = msg.err
		m.refresh()
	}

	var tiCmd, vpCmd tea.Cmd
	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	cmds = append(cmds, tiCmd, vpCmd)

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	var errorView string
	if m.err != nil {
		errorView = errorStyle.Width(m.width).Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Chat with Alex"),
		"",
		m.viewport.View(),
		"",
		errorView,
		m.textarea.View(),
	)
}

func (m *model) submit(v string) tea.Cmd {
	v = strings.TrimSpace(v)
	if m.busy || v == "" {
		return nil
	}
	if v == "/exit" {
		return tea.Quit
	}

	m.err = nil
	m.textarea.Reset()
	m.history += userStyle.Render("You: ") + v + "\n" + assistantStyle.Render("Alex: ")
	m.reply = ""
	m.busy = true
	m.refresh()

	return m.sendTurn(v)
}

func (m model) sendTurn(text string) tea.Cmd {
	return func() tea.Msg {
		return turnDoneMsg{err: m.session.Send(m.ctx, text)}
	}
}

func (m *model) refresh() {
	m.viewport.SetContent(m.history + m.reply)
	m.viewport.GotoBottom()
}

func waitForReveal(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		chunk, ok := <-ch
		if !ok {
			return nil
		}
		return revealMsg(chunk)
	}
}

func main() {
	endpoint := os.Getenv("ALEXWEB_URL")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}
	endpoint += "/api/chat"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reveals := make(chan string, 256)
	session := chat.NewSession(endpoint, func(chunk string) { reveals <- chunk })
	defer session.Close()

	initial := ""
	if topic := strings.Join(os.Args[1:], " "); topic != "" {
		initial = "Tell me more about " + topic
	}

	p := tea.NewProgram(initialModel(ctx, session, reveals, initial))
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
