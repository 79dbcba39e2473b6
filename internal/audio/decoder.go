package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// ErrUnsupportedFormat возвращается для файлов с неизвестным расширением
var ErrUnsupportedFormat = errors.New("неподдерживаемый формат аудио")

// DecodeFunc декодирует открытый файл в поток с возможностью перемотки
type DecodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

// Registry сопоставляет расширения файлов с декодерами
type Registry struct {
	decoders map[string]DecodeFunc
}

// NewRegistry создает реестр со всеми поддерживаемыми форматами
func NewRegistry() *Registry {
	r := &Registry{decoders: make(map[string]DecodeFunc)}
	r.Register(".mp3", func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return mp3.Decode(f)
	})
	r.Register(".wav", func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return wav.Decode(f)
	})
	r.Register(".flac", func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return flac.Decode(f)
	})
	r.Register(".ogg", func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return vorbis.Decode(f)
	})
	return r
}

// Register добавляет или заменяет декодер для расширения
func (r *Registry) Register(ext string, fn DecodeFunc) {
	r.decoders[strings.ToLower(ext)] = fn
}

// Supports сообщает, есть ли декодер для файла
func (r *Registry) Supports(path string) bool {
	_, ok := r.decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extensions возвращает отсортированный список поддерживаемых расширений
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.decoders))
	for ext := range r.decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Open открывает и декодирует файл. Возвращенный файл закрывается вызывающей стороной.
func (r *Registry) Open(path string) (*os.File, beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !r.Supports(path) {
		return nil, nil, beep.Format{}, fmt.Errorf("%w: %q (поддерживаются %s)",
			ErrUnsupportedFormat, ext, strings.Join(r.Extensions(), ", "))
	}
	decode := r.decoders[ext]

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, beep.Format{}, fmt.Errorf("ошибка открытия файла: %w", err)
	}

	streamer, format, err := decode(file)
	if err != nil {
		file.Close()
		return nil, nil, beep.Format{}, fmt.Errorf("ошибка декодирования %s: %w", strings.TrimPrefix(ext, "."), err)
	}

	return file, streamer, format, nil
}

// Probe декодирует файл только для того, чтобы узнать его длительность
func (r *Registry) Probe(path string) (time.Duration, error) {
	file, streamer, format, err := r.Open(path)
	if err != nil {
		return 0, err
	}
	defer closeQuietly(file)
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}
