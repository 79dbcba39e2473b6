// Package track содержит логику управления треками
package track

import (
	"github.com/hazadus/noter/internal/data"
)

// Manager управляет треками в приложении
type Manager struct {
	library *data.Library
}

// NewManager создает новый экземпляр Manager
func NewManager(library *data.Library) *Manager {
	return &Manager{
		library: library,
	}
}

// Add добавляет трек в библиотеку
func (m *Manager) Add(track data.Track) data.Track {
	return m.library.AddTrack(track)
}

// ListTracks возвращает список всех треков
func (m *Manager) ListTracks() []data.Track {
	return m.library.Tracks
}

// Labels возвращает подписи треков в порядке добавления
func (m *Manager) Labels() []string {
	labels := make([]string, len(m.library.Tracks))
	for i, t := range m.library.Tracks {
		labels[i] = t.Label()
	}
	return labels
}

// Count возвращает количество треков
func (m *Manager) Count() int {
	return m.library.Len()
}

// At возвращает трек по индексу
func (m *Manager) At(index int) (*data.Track, error) {
	return m.library.At(index)
}
