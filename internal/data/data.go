// Package data содержит модель треков, загруженных в приложение
package data

import (
	"fmt"
	"path/filepath"
)

// DefaultFileName используется, когда из пути не удалось получить имя файла
const DefaultFileName = "default.mp3"

type Track struct {
	ID       int
	File     string // Имя файла, отображается в списке
	Path     string // Путь к локальному файлу
	Source   string // Исходный путь или URL, как его передал пользователь
	Artist   string
	Title    string
	Album    string
	FileSize int64 // Размер файла в байтах
}

// Label возвращает подпись трека для списка
func (t Track) Label() string {
	return t.File
}

// Description возвращает строку "Исполнитель - Название", если теги известны
func (t Track) Description() string {
	switch {
	case t.Artist != "" && t.Title != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return t.File
	}
}

// Library хранит треки в памяти на время работы процесса.
// Треки только добавляются, удаления нет.
type Library struct {
	Tracks []Track
}

// NewLibrary создает пустую библиотеку
func NewLibrary() *Library {
	return &Library{
		Tracks: make([]Track, 0),
	}
}

// AddTrack добавляет новый трек и возвращает его с присвоенным ID
func (d *Library) AddTrack(track Track) Track {
	// Найдем максимальный ID и присваиваем новый треку
	if len(d.Tracks) > 0 {
		maxID := d.Tracks[0].ID
		for _, t := range d.Tracks {
			if t.ID > maxID {
				maxID = t.ID
			}
		}
		track.ID = maxID + 1
	} else {
		track.ID = 1 // Если треков нет, начинаем с 1
	}
	if track.File == "" {
		track.File = FileName(track.Path)
	}
	d.Tracks = append(d.Tracks, track)
	return track
}

// Len возвращает количество треков
func (d *Library) Len() int {
	return len(d.Tracks)
}

// TrackByID возвращает трек по ID
func (d *Library) TrackByID(id int) (*Track, error) {
	for i := range d.Tracks {
		if d.Tracks[i].ID == id {
			return &d.Tracks[i], nil
		}
	}
	return nil, fmt.Errorf("трека с ID %d не найдено", id)
}

// At возвращает трек по индексу в списке
func (d *Library) At(index int) (*Track, error) {
	if index < 0 || index >= len(d.Tracks) {
		return nil, fmt.Errorf("индекс %d вне диапазона [0, %d)", index, len(d.Tracks))
	}
	return &d.Tracks[index], nil
}

// FileName возвращает последний элемент пути. Обратная косая черта
// считается частью имени файла.
func FileName(path string) string {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return DefaultFileName
	}
	return name
}
