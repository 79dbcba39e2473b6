// Package app содержит основную логику TUI приложения
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/noter/internal/data"
	"github.com/hazadus/noter/internal/noter"
	"github.com/hazadus/noter/internal/tui/player"
	"github.com/hazadus/noter/internal/tui/prompt"
	"github.com/hazadus/noter/internal/tui/tracklist"
)

// volumeStep шаг изменения громкости клавишами +/-
const volumeStep = 0.05

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)

// ScreenType определяет тип текущего экрана
type ScreenType int

// Константы для типов экранов
const (
	// TracklistScreen - список треков с панелью воспроизведения
	TracklistScreen ScreenType = iota
	// PromptScreen - ввод пути к файлу
	PromptScreen
)

// Player методы объекта приложения, которые нужны TUI
type Player interface {
	Frame(ctx context.Context, in noter.Input) error
	View() noter.View
	Tracks() []data.Track
	TogglePlay()
	SetVolume(v float64)
	Volume() float64
	ToggleMute()
}

// TickMsg запускает очередной кадр
type TickMsg time.Time

// MainModel представляет главную модель TUI. Ввод копится между тиками
// и передается приложению одним кадром.
type MainModel struct {
	ctx           context.Context
	player        Player
	interval      time.Duration
	currentScreen ScreenType

	tracklistModel *tracklist.Model
	playerModel    *player.Model
	promptModel    *prompt.Model

	pending noter.Input
	err     error
}

// NewMainModel создает главную модель с частотой кадров fps
func NewMainModel(ctx context.Context, p Player, fps int) *MainModel {
	if fps <= 0 {
		fps = 30
	}
	m := &MainModel{
		ctx:            ctx,
		player:         p,
		interval:       time.Second / time.Duration(fps),
		currentScreen:  TracklistScreen,
		tracklistModel: tracklist.NewModel(),
		playerModel:    player.NewModel(),
	}
	m.sync()
	return m
}

// Init запускает цикл кадров
func (m *MainModel) Init() tea.Cmd {
	return m.tick()
}

func (m *MainModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if err := m.Frame(); err != nil {
			return m, tea.Quit
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.tracklistModel.SetSize(msg.Width, max(3, msg.Height-8)) // Оставляем место для панели
		m.playerModel.SetWidth(msg.Width)
		if m.promptModel != nil {
			m.promptModel, _ = m.promptModel.Update(msg)
		}
		return m, nil

	case prompt.PathEnteredMsg:
		m.pending.Dropped = append(m.pending.Dropped, msg.Path)
		m.currentScreen = TracklistScreen
		m.promptModel = nil
		return m, nil

	case prompt.GoBackMsg:
		m.currentScreen = TracklistScreen
		m.promptModel = nil
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.currentScreen == TracklistScreen {
			return m, m.handleKey(msg)
		}
	}

	if m.currentScreen == PromptScreen && m.promptModel != nil {
		var cmd tea.Cmd
		m.promptModel, cmd = m.promptModel.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *MainModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		m.pending.Keys = append(m.pending.Keys, noter.KeyUp)
	case "down", "j":
		m.pending.Keys = append(m.pending.Keys, noter.KeyDown)
	case " ", "enter":
		m.player.TogglePlay()
	case "+", "=":
		m.player.SetVolume(m.player.Volume() + volumeStep)
	case "-", "_":
		m.player.SetVolume(m.player.Volume() - volumeStep)
	case "m":
		m.player.ToggleMute()
	case "a":
		m.currentScreen = PromptScreen
		m.promptModel = prompt.NewModel()
		return m.promptModel.Init()
	}
	return nil
}

// Frame выполняет кадр приложения с накопленным вводом
func (m *MainModel) Frame() error {
	in := m.pending
	m.pending = noter.Input{}

	if err := m.player.Frame(m.ctx, in); err != nil {
		m.err = err
		return err
	}
	m.sync()
	return nil
}

func (m *MainModel) sync() {
	view := m.player.View()
	m.tracklistModel.Sync(m.player.Tracks(), view.Selected, view.IsPlaying)
	m.playerModel.Sync(view)
}

// Err возвращает ошибку кадра, завершившую программу
func (m *MainModel) Err() error {
	return m.err
}

// View отображает интерфейс
func (m *MainModel) View() string {
	switch m.currentScreen {
	case TracklistScreen:
		help := helpStyle.Render("↑/↓: выбор • Пробел: воспроизведение/пауза • +/-: громкость • m: без звука • a: добавить • q: выход")
		panel := m.playerModel.View()
		if panel == "" {
			return m.tracklistModel.View() + "\n" + help
		}
		return m.tracklistModel.View() + "\n" + panel + "\n" + help

	case PromptScreen:
		if m.promptModel != nil {
			return m.promptModel.View()
		}
		return "Ошибка: модель ввода не инициализирована"

	default:
		return "Неизвестный экран"
	}
}
