package track

import (
	"testing"

	"github.com/hazadus/noter/internal/data"
)

func TestAddTrack(t *testing.T) {
	// Создаем новую библиотеку
	library := data.NewLibrary()
	manager := NewManager(library)

	// Создаем тестовый трек
	track := data.Track{
		Path:     "/music/Test Artist - Test Title.mp3",
		Artist:   "Test Artist",
		Title:    "Test Title",
		Album:    "Test Album",
		FileSize: 1024000,
	}

	added := manager.Add(track)

	// Проверяем, что трек был добавлен
	tracks := manager.ListTracks()
	if len(tracks) != 1 {
		t.Fatalf("Ожидался 1 трек, получено %d", len(tracks))
	}

	// Проверяем, что данные трека корректны
	if tracks[0].Artist != track.Artist {
		t.Errorf("Ожидался Artist: %s, получено: %s", track.Artist, tracks[0].Artist)
	}
	if tracks[0].Title != track.Title {
		t.Errorf("Ожидался Title: %s, получено: %s", track.Title, tracks[0].Title)
	}
	if added.ID != 1 {
		t.Errorf("Ожидался ID: 1, получено: %d", added.ID)
	}
	if added.File != "Test Artist - Test Title.mp3" {
		t.Errorf("Ожидалось имя файла из пути, получено: %s", added.File)
	}
}

func TestGetAllTracks(t *testing.T) {
	library := data.NewLibrary()
	manager := NewManager(library)

	// Проверяем, что изначально список пуст
	if manager.Count() != 0 {
		t.Errorf("Ожидался пустой список треков, получено %d", manager.Count())
	}

	manager.Add(data.Track{Path: "one.mp3"})
	manager.Add(data.Track{Path: "two.flac"})
	manager.Add(data.Track{Path: "three.ogg"})

	labels := manager.Labels()
	expected := []string{"one.mp3", "two.flac", "three.ogg"}
	if len(labels) != len(expected) {
		t.Fatalf("Ожидалось %d подписей, получено %d", len(expected), len(labels))
	}
	for i, label := range labels {
		if label != expected[i] {
			t.Errorf("Подпись %d: ожидалось %s, получено %s", i, expected[i], label)
		}
	}

	// Проверяем, что порядок сохраняется и ID уникальны
	seen := make(map[int]bool)
	for _, tr := range manager.ListTracks() {
		if seen[tr.ID] {
			t.Errorf("Повторяющийся ID: %d", tr.ID)
		}
		seen[tr.ID] = true
	}
}

func TestAtOutOfRange(t *testing.T) {
	manager := NewManager(data.NewLibrary())

	if _, err := manager.At(0); err == nil {
		t.Error("Ожидалась ошибка для пустого списка")
	}
}
