package ui

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestParseStyle(t *testing.T) {
	content := []byte(`
background: "#112233"
foreground: "#fff"
selection: "#11223380"
text_size: 20
heading_size: 40
`)

	style, err := ParseStyle(content)
	if err != nil {
		t.Fatalf("Ошибка разбора стиля: %v", err)
	}

	if style.Background != (color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}) {
		t.Errorf("Неожиданный цвет фона: %v", style.Background)
	}
	if style.Foreground != (color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Errorf("Короткая запись цвета должна раскрываться: %v", style.Foreground)
	}
	if style.Selection.A != 0x80 {
		t.Errorf("Ожидалась прозрачность 0x80, получено %x", style.Selection.A)
	}
	if style.TextSize != 20 || style.HeadingSize != 40 {
		t.Errorf("Неожиданные размеры текста: %v / %v", style.TextSize, style.HeadingSize)
	}

	// Незаданные поля берутся из стиля по умолчанию
	defaults := DefaultStyle()
	if style.Primary != defaults.Primary || style.TextSpacing != defaults.TextSpacing {
		t.Error("Незаданные поля должны браться из стиля по умолчанию")
	}
}

func TestParseStyleInvalid(t *testing.T) {
	cases := []string{
		`background: "#12345"`,
		`foreground: "zzzzzz"`,
		`text_size: -1`,
		`background: [1, 2`,
	}
	for _, c := range cases {
		if _, err := ParseStyle([]byte(c)); err == nil {
			t.Errorf("Ожидалась ошибка для %q", c)
		}
	}
}

func TestLoadStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style_jungle.yaml")
	if err := os.WriteFile(path, []byte("background: \"#2b3a3a\"\ntext_size: 24\n"), 0644); err != nil {
		t.Fatalf("Ошибка записи файла стиля: %v", err)
	}

	style, err := LoadStyle(path)
	if err != nil {
		t.Fatalf("Ошибка загрузки стиля: %v", err)
	}
	if style.TextSize != 24 {
		t.Errorf("Ожидался размер текста 24, получено %v", style.TextSize)
	}
}

func TestLoadStyleMissing(t *testing.T) {
	if _, err := LoadStyle(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Ожидалась ошибка для отсутствующего файла стиля")
	}
}

func TestBundledStyle(t *testing.T) {
	style, err := LoadStyle(filepath.Join("..", "..", "assets", "style_jungle.yaml"))
	if err != nil {
		t.Fatalf("Ошибка загрузки стиля из assets: %v", err)
	}
	if style.HeadingSize != 50 {
		t.Errorf("Ожидался размер заголовка 50, получено %v", style.HeadingSize)
	}
}
