package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// Span tracks one begin/end pair. File is inherited by child spans and points,
// so events of files analyzed in parallel can be told apart.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	file    string
	started time.Time
	extra   map[string]string
}

var disabledSpan = &Span{tracer: Nop}

// Begin starts a root-level span under parent (0 for none).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	return begin(t, scope, name, parent, "")
}

func begin(t Tracer, scope Scope, name string, parent uint64, file string) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return disabledSpan
	}
	s := &Span{
		tracer:  t,
		id:      spanCounter.Add(1),
		parent:  parent,
		scope:   scope,
		name:    name,
		file:    file,
		started: time.Now(),
	}
	t.Emit(s.event(KindSpanBegin, s.started, ""))
	return s
}

// Set records a key for the end event.
func (s *Span) Set(key, value string) *Span {
	if s.disabled() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// Point emits an instant event below the span.
func (s *Span) Point(scope Scope, name, detail string) {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() || !s.tracer.Level().ShouldEmit(scope) {
		return
	}
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: s.id,
		File:     s.file,
		Name:     name,
		Detail:   detail,
	})
}

// End emits the end event and returns the elapsed time.
func (s *Span) End(detail string) time.Duration {
	if s.disabled() {
		return 0
	}
	now := time.Now()
	s.tracer.Emit(s.event(KindSpanEnd, now, detail))
	return now.Sub(s.started)
}

// ID returns the span ID; disabled spans have 0.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

func (s *Span) disabled() bool {
	return s == nil || s.id == 0
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	ev := &Event{
		Time:     at,
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		File:     s.file,
		Name:     s.name,
		Detail:   detail,
	}
	if kind == KindSpanEnd {
		ev.Extra = s.extra
	}
	return ev
}

func nextSeq() uint64 {
	return seqCounter.Add(1)
}
