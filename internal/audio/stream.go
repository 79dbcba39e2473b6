package audio

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
)

// Stream представляет поток одного трека
type Stream interface {
	// Play начинает или продолжает воспроизведение с текущей позиции
	Play() error
	// Pause приостанавливает воспроизведение, сохраняя позицию
	Pause()
	// Stop останавливает воспроизведение и перематывает в начало
	Stop() error
	IsPlaying() bool
	// Finished сообщает, что поток доиграл до конца
	Finished() bool
	Played() time.Duration
	Length() time.Duration
	Close() error
}

type musicStream struct {
	engine *Engine
	file   *os.File
	source beep.StreamSeekCloser
	format beep.Format
	ctrl   *beep.Ctrl

	// Поля ниже меняются под блокировкой выхода
	attached bool
	closed   bool

	// Выставляется из горутины выхода, поэтому атомарно
	finished atomic.Bool
}

func (s *musicStream) Play() error {
	s.engine.output.Lock()
	defer s.engine.output.Unlock()

	if s.closed {
		return fmt.Errorf("поток закрыт")
	}

	if s.finished.Load() {
		if err := s.source.Seek(0); err != nil {
			return fmt.Errorf("ошибка перемотки потока: %w", err)
		}
		s.finished.Store(false)
	}

	s.ctrl.Paused = false
	if !s.attached {
		s.attached = true
		s.engine.mixer.Add(beep.Seq(s.ctrl, beep.Callback(s.onEnd)))
	}
	return nil
}

// onEnd вызывается микшером под блокировкой выхода
func (s *musicStream) onEnd() {
	s.attached = false
	s.finished.Store(true)
}

func (s *musicStream) Pause() {
	s.engine.output.Lock()
	defer s.engine.output.Unlock()
	s.ctrl.Paused = true
}

func (s *musicStream) Stop() error {
	s.engine.output.Lock()
	defer s.engine.output.Unlock()

	s.ctrl.Paused = true
	s.finished.Store(false)
	if s.closed {
		return nil
	}
	if err := s.source.Seek(0); err != nil {
		return fmt.Errorf("ошибка перемотки потока: %w", err)
	}
	return nil
}

func (s *musicStream) IsPlaying() bool {
	s.engine.output.Lock()
	defer s.engine.output.Unlock()
	return s.attached && !s.ctrl.Paused && !s.finished.Load()
}

func (s *musicStream) Finished() bool {
	return s.finished.Load()
}

func (s *musicStream) Played() time.Duration {
	s.engine.output.Lock()
	defer s.engine.output.Unlock()
	if s.closed {
		return 0
	}
	return s.format.SampleRate.D(s.source.Position())
}

func (s *musicStream) Length() time.Duration {
	s.engine.output.Lock()
	defer s.engine.output.Unlock()
	if s.closed {
		return 0
	}
	return s.format.SampleRate.D(s.source.Len())
}

func (s *musicStream) Close() error {
	s.engine.output.Lock()
	defer s.engine.output.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	// Отцепляем поток от микшера: Ctrl без источника сразу завершается
	s.ctrl.Streamer = nil
	s.ctrl.Paused = false

	err := s.source.Close()
	closeQuietly(s.file)
	if err != nil {
		return fmt.Errorf("ошибка закрытия потока: %w", err)
	}
	return nil
}
