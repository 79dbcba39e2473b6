// Package prompt содержит экран ввода пути к файлу для TUI.
// В терминале нет перетаскивания, поэтому путь вводится или вставляется вручную.
package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Margin(1, 0)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// PathEnteredMsg отправляется, когда пользователь ввел путь или ссылку
type PathEnteredMsg struct {
	Path string
}

// GoBackMsg отправляется при отмене ввода
type GoBackMsg struct{}

// Model представляет модель экрана ввода пути
type Model struct {
	input textinput.Model
	err   string
}

// NewModel создает модель с активным полем ввода
func NewModel() *Model {
	input := textinput.New()
	input.Placeholder = "/путь/к/файлу.mp3 или https://..."
	input.Prompt = "> "
	input.CharLimit = 4096
	input.Width = 60
	input.Focus()

	return &Model{input: input}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = max(20, msg.Width-6)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, func() tea.Msg { return GoBackMsg{} }

		case tea.KeyEnter:
			path := CleanPath(m.input.Value())
			if path == "" {
				m.err = "Путь не может быть пустым"
				return m, nil
			}
			return m, func() tea.Msg { return PathEnteredMsg{Path: path} }
		}
	}

	m.err = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Добавить трек"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("Enter: добавить • Esc: отмена"))
	return b.String()
}

// CleanPath убирает кавычки и экранирование пробелов, которые терминал
// добавляет при перетаскивании файла в окно
func CleanPath(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '\'' || first == '"') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return strings.ReplaceAll(s, `\ `, " ")
}
