package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"scribe/internal/language"
)

// MinProcessingTime is substituted for non-positive processing times so rates
// stay finite.
const MinProcessingTime = time.Millisecond

// Input carries the raw measurements of one run.
type Input struct {
	AudioPath       string
	AudioDuration   float64
	Frames          int
	InputSizeBytes  int64
	OutputPath      string
	OutputChars     int
	OutputSizeBytes int64
	ProcessingTime  time.Duration
	Model           string
	ModelParams     string
	Language        string
	RunID           string
}

// Stats is the derived, read-only snapshot of a run.
type Stats struct {
	Input
	// Clamped is set when ProcessingTime was raised to MinProcessingTime.
	Clamped               bool
	FramesPerSecond       float64
	AudioSecondsPerSecond float64
	CharsPerSecond        float64
}

// Compute derives rates from in.
func Compute(in Input) Stats {
	stats := Stats{Input: in}
	if stats.ProcessingTime < MinProcessingTime {
		stats.ProcessingTime = MinProcessingTime
		stats.Clamped = true
	}
	seconds := stats.ProcessingTime.Seconds()
	stats.FramesPerSecond = float64(in.Frames) / seconds
	stats.AudioSecondsPerSecond = in.AudioDuration / seconds
	stats.CharsPerSecond = float64(in.OutputChars) / seconds
	return stats
}

const (
	bytesPerKB = 1024.0
	bytesPerMB = 1024.0 * 1024.0
)

// Summarize renders the statistics block printed after a successful run.
func Summarize(s Stats) string {
	var b strings.Builder
	b.WriteString("\nСтатистика обработки:\n")
	fmt.Fprintf(&b, "Входной файл: %s\n", s.AudioPath)
	fmt.Fprintf(&b, "  Длительность: %.1f сек | Размер: %.2f МБ\n", s.AudioDuration, float64(s.InputSizeBytes)/bytesPerMB)
	fmt.Fprintf(&b, "Выходной файл: %s\n", s.OutputPath)
	fmt.Fprintf(&b, "  Символов: %d | Размер: %.2f КБ\n", s.OutputChars, float64(s.OutputSizeBytes)/bytesPerKB)
	fmt.Fprintf(&b, "Обработано фреймов: %d\n", s.Frames)
	fmt.Fprintf(&b, "Время обработки: %.2f сек\n", s.ProcessingTime.Seconds())
	fmt.Fprintf(&b, "Скорость: %.1f фрейм/с | %.2f сек аудио/с | %.1f символов/с\n",
		s.FramesPerSecond, s.AudioSecondsPerSecond, s.CharsPerSecond)
	fmt.Fprintf(&b, "\nГотово. Результат сохранён в: %s\n", s.OutputPath)
	fmt.Fprintf(&b, "Модель: %s\n", s.Model)
	if s.ModelParams != "" {
		fmt.Fprintf(&b, "Параметры модели: %s\n", s.ModelParams)
	}
	b.WriteString(runTable(s))
	b.WriteByte('\n')
	return b.String()
}

func runTable(s Stats) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Параметр", "Значение"})
	tw.AppendRow(table.Row{"Модель", s.Model})
	lang := "авто"
	if s.Language != "" {
		lang = fmt.Sprintf("%s (%s)", language.DisplayName(s.Language), s.Language)
	}
	tw.AppendRow(table.Row{"Язык", lang})
	if s.RunID != "" {
		tw.AppendRow(table.Row{"Запуск", s.RunID})
	}
	return tw.Render()
}

// StartMessage announces the beginning of recognition.
func StartMessage(audioPath string, durationSeconds float64) string {
	return fmt.Sprintf("Распознавание начато: %s, длительность: %.1f сек", audioPath, durationSeconds)
}

// SavingMessage announces transcript writing with the header interval.
func SavingMessage(intervalSeconds int) string {
	if intervalSeconds > 0 && intervalSeconds%60 == 0 {
		n := intervalSeconds / 60
		return fmt.Sprintf("\nСохраняем результат с таймкодами каждые %d %s...\n", n, plural(n, "минуту", "минуты", "минут"))
	}
	return fmt.Sprintf("\nСохраняем результат с таймкодами каждые %d %s...\n", intervalSeconds, plural(intervalSeconds, "секунду", "секунды", "секунд"))
}

// plural picks the Russian noun form agreeing with n.
func plural(n int, one, few, many string) string {
	n %= 100
	if n < 0 {
		n = -n
	}
	switch {
	case n >= 11 && n <= 14:
		return many
	case n%10 == 1:
		return one
	case n%10 >= 2 && n%10 <= 4:
		return few
	default:
		return many
	}
}
