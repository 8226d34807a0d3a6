package cresolve

import (
	"sort"

	"cfmtlint/internal/ctype"

	"golang.org/x/text/unicode/norm"
)

// EntityKind classifies a named thing in a translation unit.
type EntityKind uint8

const (
	EntVariable EntityKind = iota
	EntFunction
	EntTypedef
	EntMacro
	// EntUndef hides an earlier macro of the same name.
	EntUndef
)

func (k EntityKind) String() string {
	switch k {
	case EntVariable:
		return "variable"
	case EntFunction:
		return "function"
	case EntTypedef:
		return "typedef"
	case EntMacro:
		return "macro"
	case EntUndef:
		return "undef"
	}
	return "unknown"
}

// Entity is one declaration. For functions Type is the return type.
type Entity struct {
	Name   string
	Kind   EntityKind
	Type   ctype.Type
	Offset uint32
	// End closes a block-scoped entity; 0 means visible to the end of the file.
	End uint32
}

func (e Entity) visibleAt(at uint32) bool {
	return e.Offset <= at && (e.End == 0 || at < e.End)
}

// Scope indexes entities by name.
type Scope struct {
	byName map[string][]*Entity
	sorted bool
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{byName: make(map[string][]*Entity)}
}

func key(name string) string {
	return norm.NFC.String(name)
}

// Add records an entity and returns it so the caller can close its scope later.
func (s *Scope) Add(e Entity) *Entity {
	k := key(e.Name)
	e.Name = k
	p := &e
	s.byName[k] = append(s.byName[k], p)
	s.sorted = false
	return p
}

func (s *Scope) sort() {
	if s.sorted {
		return
	}
	for _, list := range s.byName {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Offset < list[j].Offset })
	}
	s.sorted = true
}

// Lookup returns the nearest entity named name that is visible at offset at.
// A visible macro wins over any ordinary declaration of the same name.
func (s *Scope) Lookup(name string, at uint32) (Entity, bool) {
	s.sort()
	list := s.byName[key(name)]
	if m, ok := nearest(list, at, func(e *Entity) bool { return e.Kind == EntMacro || e.Kind == EntUndef }); ok && m.Kind == EntMacro {
		return m, true
	}
	return nearest(list, at, func(e *Entity) bool { return e.Kind != EntMacro && e.Kind != EntUndef })
}

func nearest(list []*Entity, at uint32, match func(*Entity) bool) (Entity, bool) {
	for i := len(list) - 1; i >= 0; i-- {
		e := list[i]
		if match(e) && e.visibleAt(at) {
			return *e, true
		}
	}
	return Entity{}, false
}

// IsMacro reports whether name refers to a macro at offset at.
func (s *Scope) IsMacro(name string, at uint32) bool {
	e, ok := s.Lookup(name, at)
	return ok && e.Kind == EntMacro
}

// Typedef returns the aliased type when name is a typedef visible at at.
func (s *Scope) Typedef(name string, at uint32) (ctype.Type, bool) {
	e, ok := s.Lookup(name, at)
	if !ok || e.Kind != EntTypedef {
		return ctype.Type{}, false
	}
	return e.Type, true
}

// Len returns the number of recorded entities.
func (s *Scope) Len() int {
	n := 0
	for _, l := range s.byName {
		n += len(l)
	}
	return n
}
