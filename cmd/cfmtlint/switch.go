package main

import (
	"fmt"
	"os"
	"strings"
)

// autoSwitch - значение флагов вида auto|on|off (--color, --ui).
type autoSwitch uint8

const (
	switchAuto autoSwitch = iota
	switchOn
	switchOff
)

func parseSwitch(flag, value string) (autoSwitch, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return switchAuto, nil
	case "on", "always", "true":
		return switchOn, nil
	case "off", "never", "false":
		return switchOff, nil
	}
	return switchAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// on решает auto по тому, терминал ли out.
func (s autoSwitch) on(out *os.File) bool {
	switch s {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return out != nil && isTerminal(out)
}

// resolveColor: auto дополнительно уважает NO_COLOR.
func resolveColor(value string, out *os.File) (bool, error) {
	s, err := parseSwitch("color", value)
	if err != nil {
		return false, err
	}
	if s == switchAuto && os.Getenv("NO_COLOR") != "" {
		return false, nil
	}
	return s.on(out), nil
}

// shouldUseTUI: прогресс рисуется в stderr.
func shouldUseTUI(s autoSwitch) bool {
	return s.on(os.Stderr)
}
