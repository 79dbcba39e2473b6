// Package audiotest содержит заглушки аудиоустройства для тестов
package audiotest

import (
	"fmt"
	"sync"
	"time"

	"github.com/hazadus/noter/internal/audio"
)

// Stream имитирует поток трека без реального звука
type Stream struct {
	Path     string
	Duration time.Duration

	mutex    sync.Mutex
	playing  bool
	finished bool
	closed   bool
	position time.Duration
	plays    int
	stops    int
}

func (s *Stream) Play() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return fmt.Errorf("поток закрыт")
	}
	if s.finished {
		s.position = 0
		s.finished = false
	}
	s.playing = true
	s.plays++
	return nil
}

func (s *Stream) Pause() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.playing = false
}

func (s *Stream) Stop() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.playing = false
	s.finished = false
	s.position = 0
	s.stops++
	return nil
}

func (s *Stream) IsPlaying() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.playing
}

func (s *Stream) Finished() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.finished
}

func (s *Stream) Played() time.Duration {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.position
}

func (s *Stream) Length() time.Duration {
	return s.Duration
}

func (s *Stream) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.closed = true
	s.playing = false
	return nil
}

// Advance сдвигает позицию играющего потока; в конце поток завершается
func (s *Stream) Advance(d time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.playing {
		return
	}
	s.position += d
	if s.Duration > 0 && s.position >= s.Duration {
		s.position = s.Duration
		s.playing = false
		s.finished = true
	}
}

// Plays возвращает число вызовов Play
func (s *Stream) Plays() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.plays
}

// Stops возвращает число вызовов Stop
func (s *Stream) Stops() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.stops
}

// Closed сообщает, был ли поток закрыт
func (s *Stream) Closed() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.closed
}

// Device имитирует аудиоустройство
type Device struct {
	// Duration задает длительность создаваемых потоков
	Duration time.Duration
	// Fail содержит пути, загрузка которых завершается ошибкой
	Fail map[string]error

	mutex   sync.Mutex
	streams []*Stream
	volume  float64
	volumes int
}

// NewDevice создает устройство с потоками длительностью в минуту
func NewDevice() *Device {
	return &Device{
		Duration: time.Minute,
		Fail:     make(map[string]error),
		volume:   1,
	}
}

func (d *Device) Load(path string) (audio.Stream, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if err, ok := d.Fail[path]; ok {
		return nil, err
	}
	s := &Stream{Path: path, Duration: d.Duration}
	d.streams = append(d.streams, s)
	return s, nil
}

func (d *Device) SetMasterVolume(v float64) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.volume = v
	d.volumes++
}

// Volume возвращает последнюю установленную громкость
func (d *Device) Volume() float64 {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.volume
}

// Streams возвращает все загруженные потоки в порядке загрузки
func (d *Device) Streams() []*Stream {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return append([]*Stream(nil), d.streams...)
}

// Audible возвращает число играющих потоков
func (d *Device) Audible() int {
	n := 0
	for _, s := range d.Streams() {
		if s.IsPlaying() {
			n++
		}
	}
	return n
}
