package iocli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Stdio пишет вывод в io.Writer (по умолчанию os.Stdout)
type Stdio struct {
	out    io.Writer
	format string
}

// NewStdio создает вывод в os.Stdout в текстовом формате
func NewStdio() IO {
	return New(os.Stdout, FormatText)
}

// New создает вывод в w. format: text, json или yaml.
func New(w io.Writer, format string) *Stdio {
	if format == "" {
		format = FormatText
	}
	return &Stdio{out: w, format: format}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) Result(v any, text func(IO)) error {
	switch s.format {
	case FormatJSON:
		enc := json.NewEncoder(s.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return nil
	case FormatYAML:
		return s.writeYAML(v)
	default:
		text(s)
		return nil
	}
}

// writeYAML проходит через JSON, чтобы ключи совпадали с json-тегами
func (s *Stdio) writeYAML(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	enc := yaml.NewEncoder(s.out)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return enc.Close()
}
