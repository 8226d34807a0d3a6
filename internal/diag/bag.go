package diag

import (
	"cmp"
	"slices"

	"cfmtlint/internal/source"
)

// Bag - упорядоченный набор диагностик одного прогона с необязательным лимитом.
type Bag struct {
	items []*Diagnostic
	max   int
}

// NewBag создаёт Bag с лимитом max; max <= 0 означает без лимита.
func NewBag(max int) *Bag {
	hint := max
	if hint <= 0 || hint > 64 {
		hint = 64
	}
	return &Bag{items: make([]*Diagnostic, 0, hint), max: max}
}

// Add возвращает false, если d nil или лимит исчерпан.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil || (b.max > 0 && len(b.items) >= b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int { return len(b.items) }

// Items возвращает внутренний срез: только для чтения.
func (b *Bag) Items() []*Diagnostic { return b.items }

func (b *Bag) HasErrors() bool   { return b.any(SevError) }
func (b *Bag) HasWarnings() bool { return b.any(SevWarning) }

func (b *Bag) any(atLeast Severity) bool {
	return slices.ContainsFunc(b.items, func(d *Diagnostic) bool { return d.Severity >= atLeast })
}

// Merge дописывает other целиком; лимит растёт, чтобы вместить всё.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if n := len(b.items) + len(other.items); b.max > 0 && n > b.max {
		b.max = n
	}
	b.items = append(b.items, other.items...)
}

// Filter оставляет только диагностики, для которых keep вернул true.
func (b *Bag) Filter(keep func(*Diagnostic) bool) {
	b.items = slices.DeleteFunc(b.items, func(d *Diagnostic) bool { return !keep(d) })
}

// Sort: файл, начало, конец, затем severity по убыванию и код.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y *Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

type dedupKey struct {
	code Code
	span source.Span
}

// Dedup убирает повторы с тем же кодом и span; первая копия остаётся.
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d *Diagnostic) bool {
		k := dedupKey{d.Code, d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
