package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
)

// Icons набор иконок кнопок, загружается один раз при старте
type Icons struct {
	Play      fyne.Resource
	Pause     fyne.Resource
	Volume    fyne.Resource
	VolumeOff fyne.Resource
}

// IconPaths пути к файлам иконок
type IconPaths struct {
	Play      string
	Pause     string
	Volume    string
	VolumeOff string
}

// LoadIcons загружает все четыре иконки. Ошибка любой из них возвращается
// вызывающему, приложение без иконок не запускается.
func LoadIcons(paths IconPaths) (Icons, error) {
	var icons Icons
	var err error

	if icons.Play, err = loadResource("play", paths.Play); err != nil {
		return Icons{}, err
	}
	if icons.Pause, err = loadResource("pause", paths.Pause); err != nil {
		return Icons{}, err
	}
	if icons.Volume, err = loadResource("volume", paths.Volume); err != nil {
		return Icons{}, err
	}
	if icons.VolumeOff, err = loadResource("volume_off", paths.VolumeOff); err != nil {
		return Icons{}, err
	}
	return icons, nil
}

func loadResource(kind, path string) (fyne.Resource, error) {
	res, err := fyne.LoadResourceFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки иконки %s: %w", kind, err)
	}
	if len(res.Content()) == 0 {
		return nil, fmt.Errorf("файл иконки %s пуст: %s", kind, path)
	}
	return res, nil
}
