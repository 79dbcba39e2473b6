package ui

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Style оформление окна: цвета и размеры текста
type Style struct {
	Background color.NRGBA
	Foreground color.NRGBA
	Primary    color.NRGBA
	Button     color.NRGBA
	Selection  color.NRGBA

	TextSize    float32
	HeadingSize float32 // размер надписи "Drop Here"
	TextSpacing float32
}

type styleFile struct {
	Background  string  `yaml:"background"`
	Foreground  string  `yaml:"foreground"`
	Primary     string  `yaml:"primary"`
	Button      string  `yaml:"button"`
	Selection   string  `yaml:"selection"`
	TextSize    float32 `yaml:"text_size"`
	HeadingSize float32 `yaml:"heading_size"`
	TextSpacing float32 `yaml:"text_spacing"`
}

// DefaultStyle тема jungle, используется для незаданных полей
func DefaultStyle() Style {
	return Style{
		Background:  color.NRGBA{R: 0x2b, G: 0x3a, B: 0x3a, A: 0xff},
		Foreground:  color.NRGBA{R: 0xe0, G: 0xe8, B: 0xd0, A: 0xff},
		Primary:     color.NRGBA{R: 0x8c, G: 0xc0, B: 0x5c, A: 0xff},
		Button:      color.NRGBA{R: 0x3c, G: 0x50, B: 0x4a, A: 0xff},
		Selection:   color.NRGBA{R: 0x5a, G: 0x7a, B: 0x4a, A: 0xff},
		TextSize:    24,
		HeadingSize: 50,
		TextSpacing: 5,
	}
}

// LoadStyle читает файл стиля
func LoadStyle(path string) (Style, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("ошибка чтения файла стиля: %w", err)
	}

	style, err := ParseStyle(content)
	if err != nil {
		return Style{}, fmt.Errorf("ошибка разбора файла стиля %s: %w", path, err)
	}
	return style, nil
}

// ParseStyle разбирает YAML стиля поверх значений по умолчанию
func ParseStyle(content []byte) (Style, error) {
	var file styleFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return Style{}, err
	}

	style := DefaultStyle()
	colors := []struct {
		value  string
		target *color.NRGBA
	}{
		{file.Background, &style.Background},
		{file.Foreground, &style.Foreground},
		{file.Primary, &style.Primary},
		{file.Button, &style.Button},
		{file.Selection, &style.Selection},
	}
	for _, c := range colors {
		if c.value == "" {
			continue
		}
		parsed, err := parseHexColor(c.value)
		if err != nil {
			return Style{}, err
		}
		*c.target = parsed
	}

	if file.TextSize < 0 || file.HeadingSize < 0 || file.TextSpacing < 0 {
		return Style{}, fmt.Errorf("размеры текста не могут быть отрицательными")
	}
	if file.TextSize > 0 {
		style.TextSize = file.TextSize
	}
	if file.HeadingSize > 0 {
		style.HeadingSize = file.HeadingSize
	}
	if file.TextSpacing > 0 {
		style.TextSpacing = file.TextSpacing
	}
	return style, nil
}

// parseHexColor разбирает цвет в формате #rgb, #rrggbb или #rrggbbaa
func parseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("некорректный цвет: %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("некорректный цвет: %q", s)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
