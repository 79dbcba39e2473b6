// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Значения по умолчанию
const (
	DefaultTitle           = "noter"
	DefaultWidth           = 800
	DefaultHeight          = 600
	DefaultFPS             = 60
	DefaultAssetsDir       = "assets"
	DefaultPlayIcon        = "play_arrow.svg"
	DefaultPauseIcon       = "pause.svg"
	DefaultVolumeIcon      = "volume.svg"
	DefaultVolumeOffIcon   = "volume_off.svg"
	DefaultStyle           = "style_jungle.yaml"
	DefaultSampleRate      = 44100
	DefaultBufferMS        = 100
	DefaultVolume          = 1.0
	DefaultResampleQuality = 4
	DefaultCacheDir        = "~/.cache/noter"
	DefaultLogLevel        = "info"
)

// WindowConfig настройки окна
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
}

// AssetsConfig пути к иконкам, шрифту и файлу стиля
type AssetsConfig struct {
	Dir           string `yaml:"dir"`
	PlayIcon      string `yaml:"play_icon"`
	PauseIcon     string `yaml:"pause_icon"`
	VolumeIcon    string `yaml:"volume_icon"`
	VolumeOffIcon string `yaml:"volume_off_icon"`
	Font          string `yaml:"font"` // Пустое значение: встроенный шрифт
	Style         string `yaml:"style"`
}

// AudioConfig настройки аудиоустройства
type AudioConfig struct {
	SampleRate      int      `yaml:"sample_rate"`
	BufferMS        int      `yaml:"buffer_ms"`
	Volume          *float64 `yaml:"volume"` // Указатель, чтобы отличать 0 от отсутствия значения
	ResampleQuality int      `yaml:"resample_quality"`
}

// Config структура для хранения конфигурации приложения
type Config struct {
	Window   WindowConfig `yaml:"window"`
	Assets   AssetsConfig `yaml:"assets"`
	Audio    AudioConfig  `yaml:"audio"`
	CacheDir string       `yaml:"cache_dir"`
	LogLevel string       `yaml:"log_level"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig загружает конфигурацию приложения из указанного файла.
// Если файла нет, используются значения по умолчанию.
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := expandHome(filePath, home)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.CacheDir = expandHome(cfg.CacheDir, home)
			return cfg, nil
		}
		return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	// Устанавливаем значения по умолчанию, если они не заданы
	config.applyDefaults()

	// Раскрываем тильду в путях
	config.CacheDir = expandHome(config.CacheDir, home)
	config.Assets.Dir = expandHome(config.Assets.Dir, home)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Window.Title == "" {
		c.Window.Title = DefaultTitle
	}
	if c.Window.Width == 0 {
		c.Window.Width = DefaultWidth
	}
	if c.Window.Height == 0 {
		c.Window.Height = DefaultHeight
	}
	if c.Window.FPS == 0 {
		c.Window.FPS = DefaultFPS
	}
	if c.Assets.Dir == "" {
		c.Assets.Dir = DefaultAssetsDir
	}
	if c.Assets.PlayIcon == "" {
		c.Assets.PlayIcon = DefaultPlayIcon
	}
	if c.Assets.PauseIcon == "" {
		c.Assets.PauseIcon = DefaultPauseIcon
	}
	if c.Assets.VolumeIcon == "" {
		c.Assets.VolumeIcon = DefaultVolumeIcon
	}
	if c.Assets.VolumeOffIcon == "" {
		c.Assets.VolumeOffIcon = DefaultVolumeOffIcon
	}
	if c.Assets.Style == "" {
		c.Assets.Style = DefaultStyle
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = DefaultSampleRate
	}
	if c.Audio.BufferMS == 0 {
		c.Audio.BufferMS = DefaultBufferMS
	}
	if c.Audio.Volume == nil {
		v := DefaultVolume
		c.Audio.Volume = &v
	}
	if c.Audio.ResampleQuality == 0 {
		c.Audio.ResampleQuality = DefaultResampleQuality
	}
	if c.CacheDir == "" {
		c.CacheDir = DefaultCacheDir
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate проверяет корректность значений конфигурации
func (c *Config) Validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("некорректный размер окна: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS < 1 || c.Window.FPS > 240 {
		return fmt.Errorf("некорректная частота кадров: %d", c.Window.FPS)
	}
	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		return fmt.Errorf("некорректная частота дискретизации: %d", c.Audio.SampleRate)
	}
	if c.Audio.BufferMS < 1 {
		return fmt.Errorf("некорректный размер буфера: %d мс", c.Audio.BufferMS)
	}
	if v := c.InitialVolume(); v < 0 || v > 1 {
		return fmt.Errorf("громкость должна быть в диапазоне [0, 1], получено %v", v)
	}
	if c.Audio.ResampleQuality < 1 || c.Audio.ResampleQuality > 64 {
		return fmt.Errorf("некорректное качество ресемплинга: %d", c.Audio.ResampleQuality)
	}
	return nil
}

// InitialVolume возвращает стартовую громкость
func (c *Config) InitialVolume() float64 {
	if c.Audio.Volume == nil {
		return DefaultVolume
	}
	return *c.Audio.Volume
}

// AssetPath возвращает путь к файлу ресурса относительно каталога ресурсов.
// Абсолютные пути возвращаются без изменений.
func (c *Config) AssetPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Assets.Dir, name)
}

func expandHome(path, home string) string {
	if strings.HasPrefix(path, "~") {
		return strings.Replace(path, "~", home, 1)
	}
	return path
}
