// Package logger создает структурированный логгер приложения
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New создает логгер, пишущий в writer с указанным уровнем
func New(writer io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("неизвестный уровень логирования %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(writer).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

// NewConsole создает логгер с человекочитаемым выводом в stderr
func NewConsole(level string) (zerolog.Logger, error) {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return New(consoleWriter, level)
}

// Component возвращает дочерний логгер с полем component
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
