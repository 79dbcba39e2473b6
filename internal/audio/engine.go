// Package audio содержит компоненты для декодирования и воспроизведения аудио
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

// Output абстрагирует аудиовыход. В рабочем режиме это speaker из beep.
type Output interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Close()
}

type speakerOutput struct{}

func (speakerOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	return speaker.Init(sampleRate, bufferSize)
}

func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerOutput) Lock()                   { speaker.Lock() }
func (speakerOutput) Unlock()                 { speaker.Unlock() }
func (speakerOutput) Close()                  { speaker.Close() }

// SpeakerOutput возвращает выход на системное аудиоустройство
func SpeakerOutput() Output {
	return speakerOutput{}
}

// Options параметры движка
type Options struct {
	SampleRate      int
	Buffer          time.Duration
	ResampleQuality int
	Output          Output // nil означает системное устройство
	Registry        *Registry
	Logger          zerolog.Logger
}

// Engine микширует потоки треков и применяет общую громкость
type Engine struct {
	output     Output
	registry   *Registry
	sampleRate beep.SampleRate
	buffer     time.Duration
	quality    int
	log        zerolog.Logger

	mixer  *beep.Mixer
	volume *effects.Volume

	mutex  sync.Mutex
	opened bool
}

// NewEngine создает движок. Устройство не открывается до вызова Open.
func NewEngine(opts Options) *Engine {
	if opts.Output == nil {
		opts.Output = SpeakerOutput()
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}
	if opts.Buffer <= 0 {
		opts.Buffer = 100 * time.Millisecond
	}
	if opts.ResampleQuality <= 0 {
		opts.ResampleQuality = 4
	}

	mixer := &beep.Mixer{}
	return &Engine{
		output:     opts.Output,
		registry:   opts.Registry,
		sampleRate: beep.SampleRate(opts.SampleRate),
		buffer:     opts.Buffer,
		quality:    opts.ResampleQuality,
		log:        opts.Logger,
		mixer:      mixer,
		volume: &effects.Volume{
			Streamer: mixer,
			Base:     2,
		},
	}
}

// Open инициализирует аудиоустройство и запускает микшер (только один раз)
func (e *Engine) Open() error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.opened {
		return nil
	}

	if err := e.output.Init(e.sampleRate, e.sampleRate.N(e.buffer)); err != nil {
		return fmt.Errorf("ошибка инициализации динамиков: %w", err)
	}
	e.output.Play(e.volume)
	e.opened = true

	e.log.Debug().
		Int("sample_rate", int(e.sampleRate)).
		Dur("buffer", e.buffer).
		Msg("аудиоустройство открыто")
	return nil
}

// Close останавливает воспроизведение и освобождает устройство
func (e *Engine) Close() {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if !e.opened {
		return
	}
	e.output.Close()
	e.opened = false
}

// SetMasterVolume задает общую громкость в линейной шкале [0, 1]
func (e *Engine) SetMasterVolume(v float64) {
	v = Clamp(v)

	e.output.Lock()
	defer e.output.Unlock()

	if v == 0 {
		e.volume.Silent = true
		return
	}
	e.volume.Silent = false
	e.volume.Volume = math.Log2(v)
}

// Load декодирует файл и возвращает поток, готовый к воспроизведению
func (e *Engine) Load(path string) (Stream, error) {
	file, source, format, err := e.registry.Open(path)
	if err != nil {
		return nil, err
	}

	var streamer beep.Streamer = source
	if format.SampleRate != e.sampleRate {
		streamer = beep.Resample(e.quality, format.SampleRate, e.sampleRate, source)
	}

	s := &musicStream{
		engine: e,
		file:   file,
		source: source,
		format: format,
		ctrl:   &beep.Ctrl{Streamer: streamer, Paused: true},
	}

	e.log.Debug().
		Str("path", path).
		Int("sample_rate", int(format.SampleRate)).
		Dur("length", format.SampleRate.D(source.Len())).
		Msg("поток загружен")
	return s, nil
}

// Probe возвращает длительность файла без воспроизведения
func (e *Engine) Probe(path string) (time.Duration, error) {
	return e.registry.Probe(path)
}

// Clamp ограничивает громкость диапазоном [0, 1]
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
