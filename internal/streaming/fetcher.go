package streaming

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultBufferSize = 256 * 1024 // 256KB буфер

	// defaultTimeout ограничивает всю загрузку: она идет в потоке кадров
	defaultTimeout = 2 * time.Minute
)

var unsafeFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// contentTypeExt сопоставляет Content-Type с расширением, понятным декодерам
var contentTypeExt = map[string]string{
	"audio/mpeg":      ".mp3",
	"audio/mp3":       ".mp3",
	"audio/wav":       ".wav",
	"audio/wave":      ".wav",
	"audio/x-wav":     ".wav",
	"audio/flac":      ".flac",
	"audio/x-flac":    ".flac",
	"audio/ogg":       ".ogg",
	"audio/vorbis":    ".ogg",
	"application/ogg": ".ogg",
}

// Fetcher скачивает перетащенные ссылки в локальный кэш
type Fetcher struct {
	dir        string
	client     *http.Client
	bufferSize int
	timeout    time.Duration
	log        zerolog.Logger
}

// NewFetcher создает загрузчик, сохраняющий файлы в dir
func NewFetcher(dir string, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		dir:        dir,
		client:     newClient(),
		bufferSize: defaultBufferSize,
		timeout:    defaultTimeout,
		log:        log,
	}
}

// WithClient заменяет HTTP клиент (используется в тестах)
func (f *Fetcher) WithClient(client *http.Client) *Fetcher {
	f.client = client
	return f
}

// WithTimeout задает предельное время одной загрузки
func (f *Fetcher) WithTimeout(timeout time.Duration) *Fetcher {
	if timeout > 0 {
		f.timeout = timeout
	}
	return f
}

// IsRemote сообщает, является ли источник ссылкой http(s)
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch скачивает файл по ссылке и возвращает путь к локальной копии.
// Уже скачанный непустой файл повторно не загружается.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if !IsRemote(rawURL) {
		return "", fmt.Errorf("неподдерживаемая ссылка: %s", rawURL)
	}

	name := FileNameFromURL(rawURL)
	if filepath.Ext(name) != "" {
		if cached, ok := f.cached(rawURL, name); ok {
			f.log.Debug().Str("url", rawURL).Str("path", cached).Msg("файл найден в кэше")
			return cached, nil
		}
	}

	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return "", fmt.Errorf("ошибка создания директории кэша: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	reader, err := NewReader(ctx, f.client, rawURL, f.bufferSize)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	if filepath.Ext(name) == "" {
		name += extFromContentType(reader.ContentType())
	}
	target := f.targetPath(rawURL, name)

	tmp, err := os.CreateTemp(f.dir, ".noter-*.part")
	if err != nil {
		return "", fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	defer os.Remove(tmp.Name())

	start := time.Now()
	written, err := io.Copy(tmp, reader)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("ошибка скачивания: %w", err)
	}
	if written == 0 {
		return "", fmt.Errorf("сервер вернул пустой файл: %s", rawURL)
	}
	if expected := reader.ContentLength(); expected >= 0 && written != expected {
		return "", fmt.Errorf("файл скачан не полностью: %d из %d байт", written, expected)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("ошибка сохранения файла: %w", err)
	}

	f.log.Info().
		Str("url", rawURL).
		Str("path", target).
		Int64("bytes", written).
		Dur("elapsed", time.Since(start)).
		Msg("файл скачан")
	return target, nil
}

func (f *Fetcher) cached(rawURL, name string) (string, bool) {
	target := f.targetPath(rawURL, name)
	info, err := os.Stat(target)
	if err != nil || info.Size() == 0 {
		return "", false
	}
	return target, true
}

// targetPath добавляет к имени короткий хэш ссылки, чтобы одинаковые имена
// с разных адресов не перезаписывали друг друга
func (f *Fetcher) targetPath(rawURL, name string) string {
	sum := sha1.Sum([]byte(rawURL))
	return filepath.Join(f.dir, hex.EncodeToString(sum[:4])+"-"+name)
}

// FileNameFromURL извлекает имя файла из ссылки
func FileNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "online_track"
	}

	filename := path.Base(u.Path)
	if unescaped, err := url.PathUnescape(filename); err == nil {
		filename = unescaped
	}

	// Если имя файла пустое или это корневой путь, используем домен
	if filename == "" || filename == "/" || filename == "." {
		filename = u.Hostname()
	}
	if filename == "" {
		filename = "online_track"
	}

	return unsafeFileChars.ReplaceAllString(filename, "_")
}

func extFromContentType(contentType string) string {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if ext, ok := contentTypeExt[mediaType]; ok {
		return ext
	}
	return ""
}
