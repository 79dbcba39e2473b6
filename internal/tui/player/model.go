// Package player содержит панель воспроизведения для TUI
package player

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/noter/internal/noter"
	"github.com/hazadus/noter/internal/utils"
)

var (
	trackInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	statusStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff5f5f")).
			Bold(true)
)

// Model панель с состоянием выбранного трека, прогрессом и громкостью
type Model struct {
	view        noter.View
	progressBar progress.Model
	volumeBar   progress.Model
}

// NewModel создает панель воспроизведения
func NewModel() *Model {
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40
	prog.ShowPercentage = false

	vol := progress.New(progress.WithSolidFill("#5A7A4A"))
	vol.Width = 20

	return &Model{
		view:        noter.View{Empty: true},
		progressBar: prog,
		volumeBar:   vol,
	}
}

// SetWidth подстраивает ширину прогресс-бара под окно
func (m *Model) SetWidth(width int) {
	m.progressBar.Width = min(60, max(10, width-20))
}

// Sync запоминает снимок состояния для отрисовки
func (m *Model) Sync(view noter.View) {
	m.view = view
}

// View отображает панель. При пустом списке панель пустая.
func (m *Model) View() string {
	if m.view.Empty {
		return ""
	}

	trackInfo := trackInfoStyle.Render(fmt.Sprintf("🎵 %s", m.view.Current.Description()))

	statusIcon := "⏸️"
	if m.view.IsPlaying {
		statusIcon = "▶️"
	}
	statusText := statusStyle.Render(fmt.Sprintf("%s %s", statusIcon, formatStatus(m.view.IsPlaying)))

	// Без анимации: панель перерисовывается каждый тик
	progressView := m.progressBar.ViewAs(utils.Fraction(m.view.Played, m.view.Length))
	timeText := utils.FormatProgress(m.view.Played, m.view.Length)

	volumeIcon := "🔊"
	volumeText := fmt.Sprintf("%3.0f%%", m.view.Volume*100)
	if m.view.Muted {
		volumeIcon = "🔇"
		volumeText = mutedStyle.Render("без звука")
	}
	volumeView := fmt.Sprintf("%s %s %s", volumeIcon, m.volumeBar.ViewAs(m.view.Volume), volumeText)

	return fmt.Sprintf("%s\n%s\n%s %s\n%s",
		trackInfo,
		statusText,
		progressView,
		timeText,
		volumeView,
	)
}

func formatStatus(isPlaying bool) string {
	if isPlaying {
		return "Воспроизведение"
	}
	return "Пауза"
}
