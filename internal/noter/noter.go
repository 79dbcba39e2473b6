// Package noter содержит объект приложения: список треков, состояние
// воспроизведения и покадровый шаг, общий для всех интерфейсов
package noter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/hazadus/noter/internal/audio"
	"github.com/hazadus/noter/internal/data"
	"github.com/hazadus/noter/internal/metadata"
	"github.com/hazadus/noter/internal/streaming"
	"github.com/hazadus/noter/internal/track"
)

// Key клавиша, влияющая на выбор трека
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
)

// Input ввод, накопленный между кадрами
type Input struct {
	Keys    []Key
	Dropped []string // Пути к файлам или ссылки http(s)
}

// Empty сообщает, что ввода не было
func (in Input) Empty() bool {
	return len(in.Keys) == 0 && len(in.Dropped) == 0
}

// Device загружает потоки и управляет общей громкостью
type Device interface {
	Load(path string) (audio.Stream, error)
	SetMasterVolume(v float64)
}

// Tagger читает теги трека
type Tagger interface {
	ExtractFromFile(path string) metadata.TrackMetadata
}

// Fetcher скачивает удаленный источник и возвращает локальный путь
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Options зависимости объекта приложения
type Options struct {
	Device  Device
	Tagger  Tagger  // nil: теги не читаются
	Fetcher Fetcher // nil: ссылки не поддерживаются
	Volume  float64
	Logger  zerolog.Logger
}

// View снимок состояния для отрисовки кадра
type View struct {
	Empty     bool
	Labels    []string
	Selected  int
	IsPlaying bool
	Volume    float64
	Muted     bool
	Played    time.Duration
	Length    time.Duration
	Current   data.Track
}

// Noter координирует треки, выбор и воспроизведение.
// Все методы вызываются из одной горутины интерфейса.
type Noter struct {
	device  Device
	tagger  Tagger
	fetcher Fetcher
	log     zerolog.Logger

	tracks  *track.Manager
	streams []audio.Stream

	selected   int
	isPlaying  bool
	volume     float64
	lastVolume float64
}

// New создает объект приложения
func New(opts Options) (*Noter, error) {
	if opts.Device == nil {
		return nil, errors.New("аудиоустройство не задано")
	}

	volume := audio.Clamp(opts.Volume)
	lastVolume := volume
	if lastVolume == 0 {
		lastVolume = 1
	}

	return &Noter{
		device:     opts.Device,
		tagger:     opts.Tagger,
		fetcher:    opts.Fetcher,
		log:        opts.Logger,
		tracks:     track.NewManager(data.NewLibrary()),
		volume:     volume,
		lastVolume: lastVolume,
	}, nil
}

// Frame выполняет один кадр: клавиши, перетащенные файлы, обновление потоков
func (n *Noter) Frame(ctx context.Context, in Input) error {
	for _, key := range in.Keys {
		n.HandleKey(key)
	}

	if err := n.HandleFiles(ctx, in.Dropped); err != nil {
		return err
	}

	return n.UpdateStream()
}

// HandleKey перемещает выбор стрелками в пределах списка
func (n *Noter) HandleKey(key Key) {
	count := n.tracks.Count()
	if count == 0 {
		return
	}

	switch key {
	case KeyDown:
		if n.selected < count-1 {
			n.selected++
		}
	case KeyUp:
		if n.selected > 0 {
			n.selected--
		}
	}
}

// HandleFiles добавляет все перетащенные источники по порядку
func (n *Noter) HandleFiles(ctx context.Context, sources []string) error {
	for _, source := range sources {
		if _, err := n.AddFile(ctx, source); err != nil {
			return err
		}
	}
	return nil
}

// AddFile загружает файл как поток и добавляет трек в конец списка
func (n *Noter) AddFile(ctx context.Context, source string) (data.Track, error) {
	path := source
	label := data.FileName(source)

	if streaming.IsRemote(source) {
		if n.fetcher == nil {
			return data.Track{}, fmt.Errorf("загрузка по ссылке недоступна: %s", source)
		}
		local, err := n.fetcher.Fetch(ctx, source)
		if err != nil {
			return data.Track{}, fmt.Errorf("ошибка загрузки %s: %w", source, err)
		}
		path = local
		label = streaming.FileNameFromURL(source)
	}

	stream, err := n.device.Load(path)
	if err != nil {
		return data.Track{}, fmt.Errorf("ошибка загрузки трека %s: %w", label, err)
	}

	t := data.Track{
		File:   label,
		Path:   path,
		Source: source,
	}
	if info, err := os.Stat(path); err == nil {
		t.FileSize = info.Size()
	}
	if n.tagger != nil {
		tags := n.tagger.ExtractFromFile(path)
		t.Artist, t.Title, t.Album = tags.Artist, tags.Title, tags.Album
	}

	t = n.tracks.Add(t)
	n.streams = append(n.streams, stream)

	n.log.Info().
		Int("id", t.ID).
		Str("file", t.File).
		Dur("length", stream.Length()).
		Msg("трек добавлен")
	return t, nil
}

// Select выбирает трек по индексу. Индекс вне списка игнорируется.
func (n *Noter) Select(index int) bool {
	if index < 0 || index >= n.tracks.Count() {
		return false
	}
	n.selected = index
	return true
}

// TogglePlay переключает флаг воспроизведения
func (n *Noter) TogglePlay() {
	if n.tracks.Count() == 0 {
		return
	}
	n.isPlaying = !n.isPlaying
	n.log.Debug().Bool("playing", n.isPlaying).Int("selected", n.selected).Msg("воспроизведение переключено")
}

// SetVolume задает громкость, ограничивая ее диапазоном [0, 1]
func (n *Noter) SetVolume(v float64) {
	n.volume = audio.Clamp(v)
	if n.volume > 0 {
		n.lastVolume = n.volume
	}
}

// ToggleMute выключает звук или возвращает последнюю ненулевую громкость
func (n *Noter) ToggleMute() {
	if n.volume == 0 {
		n.volume = n.lastVolume
	} else {
		n.volume = 0
	}
	n.log.Debug().Float64("volume", n.volume).Msg("громкость переключена")
}

// UpdateStream приводит потоки в соответствие с состоянием воспроизведения
func (n *Noter) UpdateStream() error {
	if len(n.streams) > 0 {
		if err := n.syncStreams(); err != nil {
			return err
		}
	}

	n.device.SetMasterVolume(n.volume)
	return nil
}

func (n *Noter) syncStreams() error {
	current := n.streams[n.selected]

	if n.isPlaying && current.Finished() {
		n.isPlaying = false
		if err := current.Stop(); err != nil {
			return fmt.Errorf("ошибка остановки трека: %w", err)
		}
		n.log.Info().Int("selected", n.selected).Msg("трек доигран")
	}

	if !n.isPlaying {
		for _, s := range n.streams {
			if s.IsPlaying() {
				s.Pause()
			}
		}
		return nil
	}

	if current.IsPlaying() {
		return nil
	}

	// Слышен только выбранный трек: остальные останавливаем и перематываем
	for i, s := range n.streams {
		if i == n.selected {
			continue
		}
		if s.IsPlaying() || s.Played() > 0 {
			if err := s.Stop(); err != nil {
				return fmt.Errorf("ошибка остановки трека: %w", err)
			}
		}
	}

	if err := current.Play(); err != nil {
		return fmt.Errorf("ошибка запуска воспроизведения: %w", err)
	}
	n.log.Debug().Int("selected", n.selected).Msg("поток запущен")
	return nil
}

// View возвращает снимок состояния для отрисовки
func (n *Noter) View() View {
	v := View{
		Empty:     n.tracks.Count() == 0,
		Labels:    n.tracks.Labels(),
		Selected:  n.selected,
		IsPlaying: n.isPlaying,
		Volume:    n.volume,
		Muted:     n.volume == 0,
	}
	if v.Empty {
		return v
	}

	current := n.streams[n.selected]
	v.Played = current.Played()
	v.Length = current.Length()
	if t, err := n.tracks.At(n.selected); err == nil {
		v.Current = *t
	}
	return v
}

// Tracks возвращает загруженные треки
func (n *Noter) Tracks() []data.Track {
	return n.tracks.ListTracks()
}

// Selected возвращает индекс выбранного трека
func (n *Noter) Selected() int {
	return n.selected
}

// IsPlaying возвращает флаг воспроизведения
func (n *Noter) IsPlaying() bool {
	return n.isPlaying
}

// Volume возвращает текущую громкость
func (n *Noter) Volume() float64 {
	return n.volume
}

// Close закрывает все потоки
func (n *Noter) Close() error {
	var errs []error
	for _, s := range n.streams {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	n.isPlaying = false
	return errors.Join(errs...)
}
