package trace

import "time"

// Kind - begin/end спана или мгновенная точка.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

// kindMarks - префиксы текстового формата.
var kindMarks = [...]string{KindSpanBegin: "→ ", KindSpanEnd: "← ", KindPoint: "• "}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Scope - гранулярность события; меньше значит крупнее.
type Scope uint8

const (
	ScopeDriver   Scope = iota + 1 // прогон целиком: обход каталога, проход fix
	ScopeFile                      // один файл
	ScopeCallSite                  // один вызов printf-семейства
)

var scopeNames = [...]string{ScopeDriver: "driver", ScopeFile: "file", ScopeCallSite: "callsite"}

func (s Scope) String() string {
	if s > 0 && int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Event - одна запись трассы.
type Event struct {
	Time     time.Time
	Seq      uint64 // проставляет трейсер при записи
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 у корня
	File     string // путь файла; наследуется дочерними спанами и точками
	Name     string
	Detail   string
	Extra    map[string]string // только у KindSpanEnd
}
