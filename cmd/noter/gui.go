package main

import (
	"context"
	"fmt"

	fyneapp "fyne.io/fyne/v2/app"

	"github.com/hazadus/noter/internal/logger"
	"github.com/hazadus/noter/internal/ui"
)

// runGUI загружает ресурсы, открывает аудиоустройство и окно.
// Любая ошибка инициализации завершает программу.
func (app *Application) runGUI(ctx context.Context, files []string) error {
	cfg := app.Config

	icons, err := ui.LoadIcons(ui.IconPaths{
		Play:      cfg.AssetPath(cfg.Assets.PlayIcon),
		Pause:     cfg.AssetPath(cfg.Assets.PauseIcon),
		Volume:    cfg.AssetPath(cfg.Assets.VolumeIcon),
		VolumeOff: cfg.AssetPath(cfg.Assets.VolumeOffIcon),
	})
	if err != nil {
		return err
	}

	var fontPath string
	if cfg.Assets.Font != "" {
		fontPath = cfg.AssetPath(cfg.Assets.Font)
	}
	font, err := ui.LoadFont(fontPath)
	if err != nil {
		return err
	}

	style, err := ui.LoadStyle(cfg.AssetPath(cfg.Assets.Style))
	if err != nil {
		return err
	}

	player, cleanup, err := app.newPlayer()
	if err != nil {
		return err
	}
	defer cleanup()

	// Файлы из аргументов добавляются так же, как перетащенные
	if err := app.preload(ctx, player, files); err != nil {
		return err
	}

	a := fyneapp.NewWithID(appID)
	a.Settings().SetTheme(ui.NewTheme(style, font))

	window := ui.NewWindow(a, player, ui.Options{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		FPS:    cfg.Window.FPS,
		Icons:  icons,
		Style:  style,
		Logger: logger.Component(app.Log, "ui"),
	})

	app.Log.Info().
		Int("width", cfg.Window.Width).
		Int("height", cfg.Window.Height).
		Int("tracks", len(player.Tracks())).
		Msg("окно открыто")

	if err := window.Run(ctx); err != nil {
		return fmt.Errorf("ошибка кадра: %w", err)
	}
	return nil
}
