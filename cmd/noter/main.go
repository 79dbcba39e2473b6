package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/hazadus/noter/internal/config"
)

const (
	defaultConfigPath = "~/.noter.yaml"
	appID             = "com.hazadus.noter"
)

// Application хранит конфигурацию и логгер, общие для всех команд
type Application struct {
	Config     *config.Config
	Log        zerolog.Logger
	configPath string
}

func main() {
	app := &Application{Log: zerolog.Nop()}
	ctx := context.Background()

	if err := app.createRootCommand(ctx).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
}
