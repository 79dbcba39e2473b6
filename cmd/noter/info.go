package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/noter/internal/data"
	"github.com/hazadus/noter/internal/metadata"
	"github.com/hazadus/noter/internal/utils"
)

// createInfoCommand создает команду info для просмотра файлов без воспроизведения
func (app *Application) createInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [files...]",
		Short: "Show tags, duration and size of audio files",
		Long:  `Display a table with file name, artist, title, duration and size for each file, without opening the audio device.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.printInfo(cmd.OutOrStdout(), args)
		},
	}
}

func (app *Application) printInfo(out io.Writer, files []string) error {
	extractor := metadata.NewExtractor()

	// Выводим заголовок таблицы
	fmt.Fprintf(out, "%-30s %-25s %-30s %-10s %-10s\n",
		"Файл", "Исполнитель", "Название", "Длительность", "Размер")
	fmt.Fprintln(out, strings.Repeat("-", 110))

	var failed int
	for _, file := range files {
		info, err := extractor.GetFileInfo(file)
		if err != nil {
			failed++
			app.Log.Warn().Err(err).Str("file", file).Msg("файл пропущен")
			fmt.Fprintf(out, "%-30s ошибка: %v\n", utils.TruncateString(data.FileName(file), 28), err)
			continue
		}
		tags := extractor.ExtractFromFile(file)

		fmt.Fprintf(out, "%-30s %-25s %-30s %-10s %-10s\n",
			utils.TruncateString(data.FileName(file), 28),
			utils.TruncateString(tags.Artist, 23),
			utils.TruncateString(tags.Title, 28),
			utils.FormatClock(info.Duration),
			utils.FormatFileSize(info.Size))
	}

	if failed > 0 {
		return fmt.Errorf("не удалось прочитать файлов: %d из %d", failed, len(files))
	}
	return nil
}
