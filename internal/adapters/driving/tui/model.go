package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/libris-labs/libris-core/internal/core/ports/driving"
)

const greeting = `🤖 Bună! Sunt bibliotecarul tău AI. Îți pot recomanda cărți în funcție de interesele tale!
💡 Exemple de întrebări:
   - 'Vreau o carte despre libertate și control social'
   - 'Ce-mi recomanzi dacă iubesc poveștile fantastice?'
   - 'Ce este 1984?'
📝 Scrie 'quit' pentru a ieși`

const farewell = "📚 La revedere! Sper că îți vor plăcea cărțile recomandate!"

const thinking = "🤔 Caut cele mai potrivite cărți pentru tine..."

// exitKeywords end the chat loop, matched case-insensitively
var exitKeywords = []string{"quit", "exit", "bye"}

// Model is the chat TUI state
type Model struct {
	viewport  viewport.Model
	textinput textinput.Model

	width   int
	height  int
	ready   bool
	waiting bool
	leaving bool

	transcript string

	chatService driving.ChatService
	ctx         context.Context
}

// NewModel creates a new chat TUI model
func NewModel(ctx context.Context, chatService driving.ChatService) Model {
	ti := textinput.New()
	ti.Placeholder = "Scrie întrebarea ta..."
	ti.Focus()
	ti.CharLimit = 0

	m := Model{
		textinput:   ti,
		chatService: chatService,
		ctx:         ctx,
	}
	m.transcript = greeting + "\n\n"
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		m.viewport = viewport.New(m.width-4, m.height-7)
		m.viewport.SetContent(m.transcript)
		m.viewport.GotoBottom()
		m.textinput.Width = m.width - 8

	case ReplyMsg:
		m.waiting = false
		m.transcript += LibrarianLabelStyle.Render("📖 Bibliotecarul AI: ") + msg.Answer + "\n\n"
		m.refreshViewport()

	case ErrorMsg:
		// An error ends the exchange, not the session
		m.waiting = false
		m.transcript += ErrorStyle.Render("❌ A apărut o eroare: ") + msg.Err.Error() + "\n"
		m.transcript += "Te rog să încerci din nou.\n\n"
		m.refreshViewport()
	}

	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	return m, cmd
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.leaving = true
		return m, tea.Quit

	case "enter":
		if m.waiting {
			return m, nil
		}
		input := strings.TrimSpace(m.textinput.Value())
		if input == "" {
			return m, nil
		}
		m.textinput.Reset()

		if isExitKeyword(input) {
			m.leaving = true
			return m, tea.Quit
		}

		m.waiting = true
		m.transcript += UserLabelStyle.Render("Tu: ") + input + "\n"
		m.refreshViewport()
		return m, m.ask(input)
	}

	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	return m, cmd
}

// ask runs one chat exchange off the UI loop
func (m Model) ask(input string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.chatService.Respond(m.ctx, input)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ReplyMsg{Answer: answer}
	}
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.transcript)
	m.viewport.GotoBottom()
}

// View implements tea.Model
func (m Model) View() string {
	if m.leaving {
		return farewell + "\n"
	}
	if !m.ready {
		return greeting + "\n"
	}

	var status string
	if m.waiting {
		status = ThinkingStyle.Render(thinking)
	} else {
		status = HelpStyle.Render("Enter: trimite | Esc: ieșire")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		ChatViewStyle.Width(m.width-2).Render(m.viewport.View()),
		InputStyle.Width(m.width-2).Render(m.textinput.View()),
		status,
	)
}

// Run starts the chat TUI and blocks until the user leaves
func Run(ctx context.Context, chatService driving.ChatService) error {
	program := tea.NewProgram(NewModel(ctx, chatService), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat interface failed: %w", err)
	}
	fmt.Println(farewell)
	return nil
}

// isExitKeyword reports whether input ends the session
func isExitKeyword(input string) bool {
	for _, kw := range exitKeywords {
		if strings.EqualFold(input, kw) {
			return true
		}
	}
	return false
}
