package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // зарезервирован, спанов не пишет
	LevelPhase        // границы прогона
	LevelDetail       // + каждый файл
	LevelDebug        // + каждый вызов
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

// deepestScope - самый глубокий Scope, видимый на уровне; 0 - ничего.
var deepestScope = [...]Scope{
	LevelPhase:  ScopeDriver,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopeCallSite,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel принимает имя уровня в любом регистре.
func ParseLevel(s string) (Level, error) {
	for l, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(deepestScope) {
		return false
	}
	return scope != 0 && scope <= deepestScope[l]
}
