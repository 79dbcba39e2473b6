package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// noterTheme тема окна по файлу стиля, остальное берется из стандартной темы
type noterTheme struct {
	style Style
	font  fyne.Resource
}

// NewTheme создает тему по стилю. font может быть nil, тогда используется
// встроенный шрифт.
func NewTheme(style Style, font fyne.Resource) fyne.Theme {
	return &noterTheme{style: style, font: font}
}

// LoadFont загружает файл шрифта. Пустой путь означает встроенный шрифт.
func LoadFont(path string) (fyne.Resource, error) {
	if path == "" {
		return nil, nil
	}
	res, err := fyne.LoadResourceFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки шрифта: %w", err)
	}
	return res, nil
}

func (t *noterTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return t.style.Background
	case theme.ColorNameForeground:
		return t.style.Foreground
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return t.style.Primary
	case theme.ColorNameButton, theme.ColorNameInputBackground:
		return t.style.Button
	case theme.ColorNameSelection, theme.ColorNameHover:
		return t.style.Selection
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (t *noterTheme) Font(style fyne.TextStyle) fyne.Resource {
	// Моноширинный текст и символы оставляем стандартными
	if t.font == nil || style.Monospace || style.Symbol {
		return theme.DefaultTheme().Font(style)
	}
	return t.font
}

func (t *noterTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *noterTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return t.style.TextSize
	case theme.SizeNameHeadingText:
		return t.style.HeadingSize
	case theme.SizeNameLineSpacing:
		return t.style.TextSpacing
	}
	return theme.DefaultTheme().Size(name)
}
