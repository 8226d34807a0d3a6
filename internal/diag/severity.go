package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseSeverity разбирает имя уровня из конфигурации.
// Второй результат false означает "off": диагностика отключена.
func ParseSeverity(s string) (sev Severity, enabled bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SevError, true, nil
	case "warning", "warn":
		return SevWarning, true, nil
	case "info", "note":
		return SevInfo, true, nil
	case "off", "none":
		return SevInfo, false, nil
	}
	return SevInfo, false, fmt.Errorf("unknown severity %q (want error|warning|info|off)", s)
}
