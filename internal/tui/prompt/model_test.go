package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestCleanPath(t *testing.T) {
	cases := map[string]string{
		"  /music/a.mp3  ":          "/music/a.mp3",
		"'/music/my song.mp3'":      "/music/my song.mp3",
		`"/music/my song.mp3"`:      "/music/my song.mp3",
		`/music/my\ song.mp3`:       "/music/my song.mp3",
		"https://example.com/a.mp3": "https://example.com/a.mp3",
		"":                          "",
	}
	for in, want := range cases {
		if got := CleanPath(in); got != want {
			t.Errorf("CleanPath(%q) = %q, ожидалось %q", in, got, want)
		}
	}
}

func TestEnterSendsPath(t *testing.T) {
	m := NewModel()
	m.input.SetValue("'/music/a b.mp3'")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Ожидалась команда после Enter")
	}
	msg, ok := cmd().(PathEnteredMsg)
	if !ok {
		t.Fatalf("Ожидалось сообщение PathEnteredMsg")
	}
	if msg.Path != "/music/a b.mp3" {
		t.Errorf("Неожиданный путь: %q", msg.Path)
	}
}

func TestEnterEmptyShowsError(t *testing.T) {
	m := NewModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("Пустой путь не должен отправляться")
	}
	if m.err == "" {
		t.Error("Ожидалось сообщение об ошибке")
	}
}

func TestEscGoesBack(t *testing.T) {
	m := NewModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("Ожидалась команда после Esc")
	}
	if _, ok := cmd().(GoBackMsg); !ok {
		t.Error("Ожидалось сообщение GoBackMsg")
	}
}

func TestTypingUpdatesValue(t *testing.T) {
	m := NewModel()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a.mp3")})
	if m.input.Value() != "a.mp3" {
		t.Errorf("Ожидалось значение a.mp3, получено %q", m.input.Value())
	}
}
