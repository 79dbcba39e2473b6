package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hazadus/noter/internal/logger"
	"github.com/hazadus/noter/internal/tui"
)

const tuiLogFile = "noter.log"

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [files...]",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch the terminal frontend for hosts without a display. Files are added with the 'a' key instead of drag-and-drop.`,
		RunE: func(_ *cobra.Command, args []string) error {
			return app.launchTUI(ctx, args)
		},
	}
}

func (app *Application) launchTUI(ctx context.Context, files []string) error {
	// Лог в терминал испортил бы экран, пишем его в файл
	if err := app.redirectLog(); err != nil {
		return err
	}

	player, cleanup, err := app.newPlayer()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := app.preload(ctx, player, files); err != nil {
		return err
	}

	tuiApp := tui.NewApp(player, app.Config.Window.FPS)
	return tuiApp.Run(ctx)
}

func (app *Application) redirectLog() error {
	if err := os.MkdirAll(app.Config.CacheDir, 0755); err != nil {
		return fmt.Errorf("ошибка создания директории кэша: %w", err)
	}

	file, err := os.OpenFile(filepath.Join(app.Config.CacheDir, tuiLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("ошибка открытия файла лога: %w", err)
	}

	log, err := logger.New(file, app.Config.LogLevel)
	if err != nil {
		file.Close()
		return err
	}
	app.Log = log
	return nil
}
