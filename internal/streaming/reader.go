// Package streaming содержит компоненты для загрузки аудио по сети
package streaming

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Reader представляет буферизованный поток для чтения данных порциями
type Reader struct {
	reader        *bufio.Reader
	resp          *http.Response
	bufferSize    int
	contentLength int64
}

// newClient создает HTTP клиент без общего таймаута для длительного чтения
func newClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
			IdleConnTimeout:       300 * time.Second, // 5 минут
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   2,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// NewReader создает новый потоковый ридер
func NewReader(ctx context.Context, client *http.Client, url string, bufferSize int) (*Reader, error) {
	if client == nil {
		client = newClient()
	}

	// Создаем запрос с заголовками для потокового чтения
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Accept-Encoding", "identity") // Отключаем сжатие для потока
	req.Header.Set("User-Agent", "noter/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	// Проверяем статус ответа
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		resp.Body.Close()
		return nil, fmt.Errorf("ошибка HTTP: %s", resp.Status)
	}

	return &Reader{
		reader:        bufio.NewReaderSize(resp.Body, bufferSize),
		resp:          resp,
		bufferSize:    bufferSize,
		contentLength: resp.ContentLength,
	}, nil
}

// Read реализует интерфейс io.Reader для потокового чтения
func (sr *Reader) Read(p []byte) (n int, err error) {
	return sr.reader.Read(p)
}

// ContentType возвращает заголовок Content-Type ответа
func (sr *Reader) ContentType() string {
	return sr.resp.Header.Get("Content-Type")
}

// ContentLength возвращает размер тела ответа или -1, если он неизвестен
func (sr *Reader) ContentLength() int64 {
	return sr.contentLength
}

// Close закрывает соединение
func (sr *Reader) Close() error {
	return sr.resp.Body.Close()
}
