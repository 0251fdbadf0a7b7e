// Package iocli is the output side of the replica CLI: plain text for people,
// JSON or YAML for scripts.
package iocli

// IO пишет вывод команд
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	Write(p []byte) (n int, err error)
	// Result выводит результат команды: JSON/YAML в машинных форматах, иначе text()
	Result(v any, text func(IO)) error
}

// Форматы вывода
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)
