package config

import "strings"

// ConfigError collects every problem found in one config file.
type ConfigError struct {
	Path    string
	Missing []string // environment variables referenced but unset
	Errors  []string // failed validation rules
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}
	var b strings.Builder
	b.WriteString("config ")
	b.WriteString(e.Path)
	b.WriteString(":")
	if len(e.Missing) > 0 {
		b.WriteString("\n  missing environment variables: ")
		b.WriteString(strings.Join(e.Missing, ", "))
	}
	for _, msg := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(msg)
	}
	return b.String()
}

// Unwrap lets callers match any config error with errors.Is(err, ErrInvalid).
func (e *ConfigError) Unwrap() error { return ErrInvalid }

// HasErrors reports whether anything was collected.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing)+len(e.Errors) > 0
}
