package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/hazadus/noter/internal/audio"
	"github.com/hazadus/noter/internal/config"
	"github.com/hazadus/noter/internal/logger"
	"github.com/hazadus/noter/internal/metadata"
	"github.com/hazadus/noter/internal/noter"
	"github.com/hazadus/noter/internal/streaming"
)

// createRootCommand создает корневую команду с настроенными подкомандами.
// Без подкоманды открывается окно.
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "noter [files...]",
		Short: "Drag-and-drop music player",
		Long:  `A small music player: drop audio files onto the window, pick a track, play/pause it and adjust the volume.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return app.loadConfig()
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return app.runGUI(ctx, args)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", defaultConfigPath, "path to the YAML config file")

	rootCmd.AddCommand(app.createTUICommand(ctx))
	rootCmd.AddCommand(app.createInfoCommand())

	return rootCmd
}

// loadConfig загружает конфигурацию и создает логгер. Уже заданная
// конфигурация (в тестах) не перезагружается.
func (app *Application) loadConfig() error {
	if app.Config == nil {
		cfg, err := config.LoadConfig(app.configPath)
		if err != nil {
			return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
		}
		app.Config = cfg
	}

	log, err := logger.NewConsole(app.Config.LogLevel)
	if err != nil {
		return err
	}
	app.Log = log
	return nil
}

// newPlayer открывает аудиоустройство и создает объект приложения.
// Возвращаемая функция освобождает потоки и устройство.
func (app *Application) newPlayer() (*noter.Noter, func(), error) {
	engine := audio.NewEngine(audio.Options{
		SampleRate:      app.Config.Audio.SampleRate,
		Buffer:          time.Duration(app.Config.Audio.BufferMS) * time.Millisecond,
		ResampleQuality: app.Config.Audio.ResampleQuality,
		Logger:          logger.Component(app.Log, "audio"),
	})
	if err := engine.Open(); err != nil {
		return nil, nil, fmt.Errorf("ошибка инициализации аудиоустройства: %w", err)
	}

	core, err := noter.New(noter.Options{
		Device:  engine,
		Tagger:  metadata.NewExtractor(),
		Fetcher: streaming.NewFetcher(app.Config.CacheDir, logger.Component(app.Log, "fetcher")),
		Volume:  app.Config.InitialVolume(),
		Logger:  logger.Component(app.Log, "noter"),
	})
	if err != nil {
		engine.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := core.Close(); err != nil {
			app.Log.Warn().Err(err).Msg("ошибка закрытия потоков")
		}
		engine.Close()
	}
	return core, cleanup, nil
}

// preload добавляет файлы из аргументов командной строки. Пока скачиваются
// ссылки, в терминале показывается спиннер.
func (app *Application) preload(ctx context.Context, player *noter.Noter, files []string) error {
	remote := 0
	for _, f := range files {
		if streaming.IsRemote(f) {
			remote++
		}
	}
	if remote == 0 {
		return player.HandleFiles(ctx, files)
	}

	app.Log.Info().Int("remote", remote).Msg("скачивание ссылок из аргументов")
	return spinner.New().
		Title(fmt.Sprintf("Скачивание (%d)...", remote)).
		Context(ctx).
		ActionWithErr(func(ctx context.Context) error {
			return player.HandleFiles(ctx, files)
		}).
		Run()
}
