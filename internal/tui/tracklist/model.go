// Package tracklist содержит модель списка треков для TUI
package tracklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/noter/internal/data"
	"github.com/hazadus/noter/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	playingItemStyle  = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("76")).Bold(true)
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	emptyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true).Margin(2, 4)
)

// EmptyText надпись при пустом списке
const EmptyText = "Drop Here"

// trackItem реализует интерфейс list.Item для трека
type trackItem struct {
	track data.Track
}

func (i trackItem) FilterValue() string {
	return i.track.Label()
}

// trackItemDelegate реализует отображение элементов списка
type trackItemDelegate struct {
	playing *bool
}

func (d trackItemDelegate) Height() int                             { return 1 }
func (d trackItemDelegate) Spacing() int                            { return 0 }
func (d trackItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d trackItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(trackItem)
	if !ok {
		return
	}

	// Строка таблицы: ID | Файл | Исполнитель - Название
	str := fmt.Sprintf("%-4d %-30s %s",
		i.track.ID,
		utils.TruncateString(i.track.Label(), 30),
		utils.TruncateString(i.track.Description(), 40))

	fn := itemStyle.Render
	if index == m.Index() {
		marker, style := "> ", selectedItemStyle
		if d.playing != nil && *d.playing {
			marker, style = "♪ ", playingItemStyle
		}
		fn = func(s ...string) string {
			return style.Render(marker + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// Model представляет список треков. Выбор задается приложением,
// сам список клавиши не обрабатывает.
type Model struct {
	list    list.Model
	count   int
	playing bool
}

// NewModel создает пустой список
func NewModel() *Model {
	m := &Model{}

	l := list.New(nil, trackItemDelegate{playing: &m.playing}, 80, 20)
	l.Title = "Треки"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle

	m.list = l
	return m
}

// SetSize задает размер списка
func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Sync переносит в список треки и выбор приложения
func (m *Model) Sync(tracks []data.Track, selected int, playing bool) {
	if len(tracks) != m.count {
		items := make([]list.Item, len(tracks))
		for i, t := range tracks {
			items[i] = trackItem{track: t}
		}
		m.list.SetItems(items)
		m.count = len(tracks)
	}

	if m.count > 0 && m.list.Index() != selected {
		m.list.Select(selected)
	}
	m.playing = playing
}

// Len возвращает число треков в списке
func (m *Model) Len() int {
	return m.count
}

// Index возвращает выбранный индекс
func (m *Model) Index() int {
	return m.list.Index()
}

// View отображает модель
func (m *Model) View() string {
	if m.count == 0 {
		return emptyStyle.Render(EmptyText)
	}
	return m.list.View()
}
