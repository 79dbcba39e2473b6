package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/rs/zerolog"
)

// testOutput заменяет динамики: сэмплы забирает сам тест
type testOutput struct {
	mu      sync.Mutex
	inits   int
	played  []beep.Streamer
	closed  bool
	initErr error
}

func (o *testOutput) Init(beep.SampleRate, int) error {
	if o.initErr != nil {
		return o.initErr
	}
	o.inits++
	return nil
}

func (o *testOutput) Play(s ...beep.Streamer) { o.played = append(o.played, s...) }
func (o *testOutput) Lock()                   { o.mu.Lock() }
func (o *testOutput) Unlock()                 { o.mu.Unlock() }
func (o *testOutput) Close()                  { o.closed = true }

func newTestEngine(t *testing.T) (*Engine, *testOutput) {
	t.Helper()
	out := &testOutput{}
	engine := NewEngine(Options{
		SampleRate: 44100,
		Output:     out,
		Logger:     zerolog.Nop(),
	})
	if err := engine.Open(); err != nil {
		t.Fatalf("Ошибка открытия движка: %v", err)
	}
	return engine, out
}

// pull забирает сэмплы из общей цепочки так же, как это делает speaker
func pull(e *Engine, out *testOutput, n int) [][2]float64 {
	buf := make([][2]float64, n)
	out.Lock()
	e.volume.Stream(buf)
	out.Unlock()
	return buf
}

// writeWAV создает WAV-файл из n сэмплов постоянной амплитуды
func writeWAV(t *testing.T, name string, rate beep.SampleRate, n int, value float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Ошибка создания файла: %v", err)
	}
	defer f.Close()

	left := n
	constant := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if left <= 0 {
			return 0, false
		}
		k := min(len(samples), left)
		for i := 0; i < k; i++ {
			samples[i] = [2]float64{value, value}
		}
		left -= k
		return k, true
	})

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, constant, format); err != nil {
		t.Fatalf("Ошибка кодирования WAV: %v", err)
	}
	return path
}

// decodedPeak возвращает пик файла при прямом декодировании, без движка
func decodedPeak(t *testing.T, path string) float64 {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Ошибка открытия файла: %v", err)
	}
	defer f.Close()

	streamer, _, err := wav.Decode(f)
	if err != nil {
		t.Fatalf("Ошибка декодирования WAV: %v", err)
	}
	defer streamer.Close()

	buf := make([][2]float64, 512)
	n, _ := streamer.Stream(buf)
	p := peak(buf[:n])
	if p == 0 {
		t.Fatal("Тестовый файл не должен быть тишиной")
	}
	return p
}

func peak(samples [][2]float64) float64 {
	var p float64
	for _, s := range samples {
		p = math.Max(p, math.Abs(s[0]))
	}
	return p
}

func TestOpenInitializesOnce(t *testing.T) {
	engine, out := newTestEngine(t)

	if err := engine.Open(); err != nil {
		t.Fatalf("Повторное открытие не должно возвращать ошибку: %v", err)
	}
	if out.inits != 1 {
		t.Errorf("Устройство должно инициализироваться один раз, получено %d", out.inits)
	}
	if len(out.played) != 1 {
		t.Errorf("Ожидалась одна цепочка воспроизведения, получено %d", len(out.played))
	}

	engine.Close()
	if !out.closed {
		t.Error("Устройство должно быть закрыто")
	}
}

func TestOpenError(t *testing.T) {
	out := &testOutput{initErr: errors.New("нет устройства")}
	engine := NewEngine(Options{Output: out})

	if err := engine.Open(); err == nil {
		t.Error("Ожидалась ошибка инициализации")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	engine, _ := newTestEngine(t)

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not audio"), 0644); err != nil {
		t.Fatalf("Ошибка записи файла: %v", err)
	}

	_, err := engine.Load(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Ожидалась ErrUnsupportedFormat, получено: %v", err)
	}
	if !strings.Contains(err.Error(), ".flac, .mp3, .ogg, .wav") {
		t.Errorf("Ошибка должна перечислять поддерживаемые форматы: %v", err)
	}
}

func TestLoadCorruptedFile(t *testing.T) {
	engine, _ := newTestEngine(t)

	path := filepath.Join(t.TempDir(), "broken.wav")
	if err := os.WriteFile(path, []byte("definitely not a RIFF header"), 0644); err != nil {
		t.Fatalf("Ошибка записи файла: %v", err)
	}

	if _, err := engine.Load(path); err == nil {
		t.Error("Ожидалась ошибка декодирования")
	}
}

func TestLoadMissingFile(t *testing.T) {
	engine, _ := newTestEngine(t)

	if _, err := engine.Load(filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Error("Ожидалась ошибка открытия файла")
	}
}

func TestStreamLength(t *testing.T) {
	engine, _ := newTestEngine(t)
	path := writeWAV(t, "tone.wav", 44100, 4410, 0.5)

	stream, err := engine.Load(path)
	if err != nil {
		t.Fatalf("Ошибка загрузки: %v", err)
	}
	defer stream.Close()

	if stream.Length() != 100*time.Millisecond {
		t.Errorf("Ожидалась длительность 100ms, получено %v", stream.Length())
	}
	if stream.IsPlaying() {
		t.Error("Поток не должен играть сразу после загрузки")
	}
	if stream.Played() != 0 {
		t.Errorf("Позиция должна быть нулевой, получено %v", stream.Played())
	}
}

func TestStreamPlaysUntilFinished(t *testing.T) {
	engine, out := newTestEngine(t)
	path := writeWAV(t, "tone.wav", 44100, 4410, 0.5)
	want := decodedPeak(t, path)

	stream, err := engine.Load(path)
	if err != nil {
		t.Fatalf("Ошибка загрузки: %v", err)
	}
	defer stream.Close()

	// Пока поток не запущен, на выходе тишина
	if p := peak(pull(engine, out, 512)); p != 0 {
		t.Errorf("Ожидалась тишина до запуска, пик %v", p)
	}

	if err := stream.Play(); err != nil {
		t.Fatalf("Ошибка запуска: %v", err)
	}
	if !stream.IsPlaying() {
		t.Error("Поток должен играть после Play")
	}

	if p := peak(pull(engine, out, 512)); math.Abs(p-want) > 1e-6 {
		t.Errorf("На выходе ожидался пик %v, получено %v", want, p)
	}

	for i := 0; i < 20 && !stream.Finished(); i++ {
		pull(engine, out, 1024)
	}

	if !stream.Finished() {
		t.Fatal("Поток должен доиграть до конца")
	}
	if stream.IsPlaying() {
		t.Error("Доигравший поток не должен считаться играющим")
	}

	// Повторный запуск начинает с начала
	if err := stream.Play(); err != nil {
		t.Fatalf("Ошибка повторного запуска: %v", err)
	}
	if stream.Finished() {
		t.Error("После Play флаг завершения должен сброситься")
	}
	if p := peak(pull(engine, out, 512)); math.Abs(p-want) > 1e-6 {
		t.Errorf("После повторного запуска ожидался пик %v, получено %v", want, p)
	}
}

func TestStreamPauseKeepsPosition(t *testing.T) {
	engine, out := newTestEngine(t)
	path := writeWAV(t, "tone.wav", 44100, 44100, 0.5)

	stream, err := engine.Load(path)
	if err != nil {
		t.Fatalf("Ошибка загрузки: %v", err)
	}
	defer stream.Close()

	if err := stream.Play(); err != nil {
		t.Fatalf("Ошибка запуска: %v", err)
	}
	pull(engine, out, 4096)

	stream.Pause()
	position := stream.Played()
	if position == 0 {
		t.Fatal("Позиция должна сдвинуться после воспроизведения")
	}

	if p := peak(pull(engine, out, 4096)); p != 0 {
		t.Errorf("На паузе ожидалась тишина, пик %v", p)
	}
	if stream.Played() != position {
		t.Errorf("На паузе позиция не должна меняться: было %v, стало %v", position, stream.Played())
	}

	if err := stream.Play(); err != nil {
		t.Fatalf("Ошибка возобновления: %v", err)
	}
	pull(engine, out, 1024)
	if stream.Played() <= position {
		t.Error("После возобновления позиция должна продолжить расти")
	}
}

func TestStreamStopRewinds(t *testing.T) {
	engine, out := newTestEngine(t)
	path := writeWAV(t, "tone.wav", 44100, 44100, 0.5)

	stream, err := engine.Load(path)
	if err != nil {
		t.Fatalf("Ошибка загрузки: %v", err)
	}
	defer stream.Close()

	if err := stream.Play(); err != nil {
		t.Fatalf("Ошибка запуска: %v", err)
	}
	pull(engine, out, 4096)

	if err := stream.Stop(); err != nil {
		t.Fatalf("Ошибка остановки: %v", err)
	}
	if stream.IsPlaying() {
		t.Error("Поток не должен играть после Stop")
	}
	if stream.Played() != 0 {
		t.Errorf("После Stop позиция должна быть в начале, получено %v", stream.Played())
	}
}

func TestMasterVolume(t *testing.T) {
	engine, out := newTestEngine(t)
	path := writeWAV(t, "tone.wav", 44100, 44100, 0.5)

	stream, err := engine.Load(path)
	if err != nil {
		t.Fatalf("Ошибка загрузки: %v", err)
	}
	defer stream.Close()

	if err := stream.Play(); err != nil {
		t.Fatalf("Ошибка запуска: %v", err)
	}

	full := peak(pull(engine, out, 512))
	if full == 0 {
		t.Fatal("При полной громкости ожидался сигнал")
	}

	engine.SetMasterVolume(0.5)
	if p := peak(pull(engine, out, 512)); math.Abs(p/full-0.5) > 0.01 {
		t.Errorf("При громкости 0.5 ожидалась половина пика %v, получено %v", full, p)
	}

	engine.SetMasterVolume(0)
	if p := peak(pull(engine, out, 512)); p != 0 {
		t.Errorf("При нулевой громкости ожидалась тишина, пик %v", p)
	}

	// Значения больше единицы ограничиваются полной громкостью
	engine.SetMasterVolume(7)
	if p := peak(pull(engine, out, 512)); math.Abs(p-full) > 1e-6 {
		t.Errorf("Громкость должна ограничиваться единицей: ожидался пик %v, получено %v", full, p)
	}
}

func TestLoadResamples(t *testing.T) {
	engine, out := newTestEngine(t)
	path := writeWAV(t, "low.wav", 22050, 2205, 0.5)

	stream, err := engine.Load(path)
	if err != nil {
		t.Fatalf("Ошибка загрузки: %v", err)
	}
	defer stream.Close()

	if stream.Length() != 100*time.Millisecond {
		t.Errorf("Длительность считается в частоте файла: ожидалось 100ms, получено %v", stream.Length())
	}

	if err := stream.Play(); err != nil {
		t.Fatalf("Ошибка запуска: %v", err)
	}
	for i := 0; i < 20 && !stream.Finished(); i++ {
		pull(engine, out, 1024)
	}
	if !stream.Finished() {
		t.Error("Поток с ресемплингом должен доиграть до конца")
	}
}

func TestCloseStream(t *testing.T) {
	engine, out := newTestEngine(t)
	path := writeWAV(t, "tone.wav", 44100, 44100, 0.5)

	stream, err := engine.Load(path)
	if err != nil {
		t.Fatalf("Ошибка загрузки: %v", err)
	}
	if err := stream.Play(); err != nil {
		t.Fatalf("Ошибка запуска: %v", err)
	}

	if err := stream.Close(); err != nil {
		t.Fatalf("Ошибка закрытия: %v", err)
	}
	if err := stream.Close(); err != nil {
		t.Errorf("Повторное закрытие не должно возвращать ошибку: %v", err)
	}
	if p := peak(pull(engine, out, 512)); p != 0 {
		t.Errorf("Закрытый поток не должен звучать, пик %v", p)
	}
	if err := stream.Play(); err == nil {
		t.Error("Ожидалась ошибка запуска закрытого потока")
	}
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	for _, name := range []string{"a.mp3", "b.WAV", "c.flac", "d.ogg"} {
		if !registry.Supports(name) {
			t.Errorf("Формат %s должен поддерживаться", name)
		}
	}
	if registry.Supports("e.m4a") {
		t.Error("Формат m4a не должен поддерживаться")
	}

	exts := registry.Extensions()
	if len(exts) != 4 || exts[0] != ".flac" {
		t.Errorf("Неожиданный список расширений: %v", exts)
	}
}

func TestProbe(t *testing.T) {
	registry := NewRegistry()
	path := writeWAV(t, "tone.wav", 44100, 22050, 0.1)

	duration, err := registry.Probe(path)
	if err != nil {
		t.Fatalf("Ошибка определения длительности: %v", err)
	}
	if duration != 500*time.Millisecond {
		t.Errorf("Ожидалось 500ms, получено %v", duration)
	}
}

func TestClamp(t *testing.T) {
	cases := map[float64]float64{-1: 0, 0: 0, 0.3: 0.3, 1: 1, 2: 1, math.NaN(): 0}
	for in, want := range cases {
		if got := Clamp(in); got != want {
			t.Errorf("Clamp(%v) = %v, ожидалось %v", in, got, want)
		}
	}
}
