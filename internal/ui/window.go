// Package ui содержит окно приложения на Fyne
package ui

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/hazadus/noter/internal/data"
	"github.com/hazadus/noter/internal/noter"
	"github.com/hazadus/noter/internal/utils"
)

// EmptyText надпись при пустом списке
const EmptyText = "Drop Here"

// Player методы объекта приложения, которые нужны окну
type Player interface {
	Frame(ctx context.Context, in noter.Input) error
	View() noter.View
	Select(index int) bool
	TogglePlay()
	SetVolume(v float64)
	ToggleMute()
}

// Options параметры окна
type Options struct {
	Title  string
	Width  int
	Height int
	FPS    int
	Icons  Icons
	Style  Style
	Logger zerolog.Logger
}

// Window окно с покадровым циклом. Ввод из обработчиков копится до
// следующего кадра; все состояние меняется только в главном потоке Fyne.
type Window struct {
	app    fyne.App
	win    fyne.Window
	player Player
	icons  Icons
	fps    int
	log    zerolog.Logger

	ctx       context.Context
	pending   noter.Input
	err       error
	scheduled atomic.Bool

	// syncing подавляет обработчики виджетов, пока кадр переносит в них состояние
	syncing  bool
	labels   []string
	selected int
	playing  bool
	muted    bool

	empty      *fyne.Container
	body       *fyne.Container
	list       *trackList
	progress   *widget.ProgressBar
	playButton *widget.Button
	muteButton *widget.Button
	volume     *volumeSlider
	info       *widget.Label

	played time.Duration
	length time.Duration
}

// NewWindow создает окно и виджеты
func NewWindow(app fyne.App, player Player, opts Options) *Window {
	w := &Window{
		app:      app,
		win:      app.NewWindow(opts.Title),
		player:   player,
		icons:    opts.Icons,
		fps:      opts.FPS,
		log:      opts.Logger,
		ctx:      context.Background(),
		selected: -1,
	}
	if w.fps <= 0 {
		w.fps = 60
	}

	w.build(opts.Style)
	w.win.Resize(fyne.NewSize(float32(opts.Width), float32(opts.Height)))
	w.win.SetOnDropped(w.dropped)
	w.win.Canvas().SetOnTypedKey(w.typedKey)

	// Первый кадр рисуем сразу, чтобы окно не открывалось пустым
	w.frame()
	return w
}

func (w *Window) build(style Style) {
	heading := canvas.NewText(EmptyText, style.Foreground)
	heading.TextSize = style.HeadingSize
	heading.Alignment = fyne.TextAlignCenter
	w.empty = container.NewCenter(heading)

	w.list = newTrackList(
		func() int { return len(w.labels) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id < len(w.labels) {
				o.(*widget.Label).SetText(w.labels[id])
			}
		},
		w.typedKey,
	)
	w.list.OnSelected = func(id widget.ListItemID) {
		if !w.syncing {
			w.player.Select(id)
		}
	}

	w.progress = widget.NewProgressBar()
	w.progress.TextFormatter = func() string {
		return utils.FormatProgress(w.played, w.length)
	}

	w.playButton = widget.NewButtonWithIcon("", w.icons.Play, func() {
		w.player.TogglePlay()
	})
	w.playButton.Importance = widget.LowImportance

	w.muteButton = widget.NewButtonWithIcon("", w.icons.Volume, func() {
		w.player.ToggleMute()
	})
	w.muteButton.Importance = widget.LowImportance

	w.volume = newVolumeSlider(w.typedKey)
	w.volume.OnChanged = func(v float64) {
		if !w.syncing {
			w.player.SetVolume(v)
		}
	}

	w.info = widget.NewLabel("")
	w.info.Truncation = fyne.TextTruncateEllipsis

	controls := container.NewBorder(nil, nil,
		container.NewHBox(w.playButton, w.muteButton), nil,
		w.volume,
	)
	bottom := container.NewVBox(w.info, w.progress, controls)
	w.body = container.NewBorder(nil, bottom, nil, nil, w.list)

	w.win.SetContent(container.NewStack(w.body, w.empty))
}

// Run показывает окно и запускает цикл кадров. Возвращает ошибку кадра,
// из-за которой приложение было остановлено.
func (w *Window) Run(ctx context.Context) error {
	if w.err != nil {
		return w.err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w.ctx = ctx

	go w.tick(ctx)
	w.win.ShowAndRun()
	return w.err
}

func (w *Window) tick(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(w.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Не копим кадры, если главный поток не успевает
			if !w.scheduled.CompareAndSwap(false, true) {
				continue
			}
			fyne.Do(func() {
				w.scheduled.Store(false)
				w.frame()
			})
		}
	}
}

// frame выполняет шаг приложения с накопленным вводом и рисует результат
func (w *Window) frame() {
	if w.err != nil {
		return
	}

	in := w.pending
	w.pending = noter.Input{}

	if err := w.player.Frame(w.ctx, in); err != nil {
		w.fail(err)
		return
	}
	w.draw(w.player.View())
}

func (w *Window) fail(err error) {
	w.err = err
	w.log.Error().Err(err).Msg("ошибка кадра, приложение останавливается")
	w.app.Quit()
}

func (w *Window) draw(view noter.View) {
	w.syncing = true
	defer func() { w.syncing = false }()

	if view.Empty {
		w.body.Hide()
		w.empty.Show()
		return
	}
	w.empty.Hide()
	w.body.Show()

	if !slices.Equal(w.labels, view.Labels) {
		w.labels = view.Labels
		w.list.Refresh()
	}
	if w.selected != view.Selected {
		w.selected = view.Selected
		w.list.Select(view.Selected)
	}

	w.played, w.length = view.Played, view.Length
	w.progress.SetValue(utils.Fraction(view.Played, view.Length))

	if w.playing != view.IsPlaying {
		w.playing = view.IsPlaying
		if view.IsPlaying {
			w.playButton.SetIcon(w.icons.Pause)
		} else {
			w.playButton.SetIcon(w.icons.Play)
		}
	}

	if w.muted != view.Muted {
		w.muted = view.Muted
		if view.Muted {
			w.muteButton.SetIcon(w.icons.VolumeOff)
		} else {
			w.muteButton.SetIcon(w.icons.Volume)
		}
	}

	if w.volume.Value != view.Volume {
		w.volume.SetValue(view.Volume)
	}

	w.info.SetText(describe(view.Current))
}

func describe(t data.Track) string {
	text := t.Description()
	if t.FileSize > 0 {
		text = fmt.Sprintf("%s (%s)", text, utils.FormatFileSize(t.FileSize))
	}
	return text
}

// dropped ставит перетащенные файлы в очередь следующего кадра
func (w *Window) dropped(_ fyne.Position, uris []fyne.URI) {
	for _, uri := range uris {
		w.pending.Dropped = append(w.pending.Dropped, sourceFromURI(uri))
	}
	w.log.Debug().Int("count", len(uris)).Msg("файлы перетащены")
}

// typedKey получает клавиши холста и виджетов с фокусом
func (w *Window) typedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyUp:
		w.pending.Keys = append(w.pending.Keys, noter.KeyUp)
	case fyne.KeyDown:
		w.pending.Keys = append(w.pending.Keys, noter.KeyDown)
	case fyne.KeySpace:
		w.player.TogglePlay()
	}
}

// sourceFromURI возвращает локальный путь для file:// и саму ссылку для остальных схем
func sourceFromURI(uri fyne.URI) string {
	if uri.Scheme() == "file" {
		return uri.Path()
	}
	return uri.String()
}
