// Package tui содержит текстовый интерфейс для терминалов без дисплея
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/noter/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	player app.Player
	fps    int
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(player app.Player, fps int) *App {
	return &App{
		player: player,
		fps:    fps,
	}
}

// Run запускает TUI и возвращает ошибку кадра, если она остановила программу
func (tuiApp *App) Run(ctx context.Context) error {
	model := app.NewMainModel(ctx, tuiApp.player, tuiApp.fps)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("ошибка TUI: %w", err)
	}

	if m, ok := final.(*app.MainModel); ok {
		return m.Err()
	}
	return nil
}
