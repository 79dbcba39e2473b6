package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// trackList список треков. После клика список получает фокус клавиатуры,
// поэтому стрелки и пробел передаются окну, а не обрабатываются списком.
type trackList struct {
	widget.List
	onKey func(*fyne.KeyEvent)
}

func newTrackList(length func() int, create func() fyne.CanvasObject,
	update func(widget.ListItemID, fyne.CanvasObject), onKey func(*fyne.KeyEvent)) *trackList {
	l := &trackList{onKey: onKey}
	l.Length = length
	l.CreateItem = create
	l.UpdateItem = update
	l.ExtendBaseWidget(l)
	return l
}

func (l *trackList) TypedKey(ev *fyne.KeyEvent) {
	if playerKey(ev.Name) {
		l.onKey(ev)
		return
	}
	l.List.TypedKey(ev)
}

// volumeSlider слайдер громкости. Влево и вправо меняют громкость,
// стрелки вверх и вниз остаются за выбором трека.
type volumeSlider struct {
	widget.Slider
	onKey func(*fyne.KeyEvent)
}

func newVolumeSlider(onKey func(*fyne.KeyEvent)) *volumeSlider {
	s := &volumeSlider{onKey: onKey}
	s.Min = 0
	s.Max = 1
	s.Step = 0.01
	s.Orientation = widget.Horizontal
	s.ExtendBaseWidget(s)
	return s
}

func (s *volumeSlider) TypedKey(ev *fyne.KeyEvent) {
	if playerKey(ev.Name) {
		s.onKey(ev)
		return
	}
	s.Slider.TypedKey(ev)
}

// playerKey клавиши, которые всегда обрабатывает окно
func playerKey(name fyne.KeyName) bool {
	switch name {
	case fyne.KeyUp, fyne.KeyDown, fyne.KeySpace:
		return true
	}
	return false
}
