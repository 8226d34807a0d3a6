package printf

import (
	"cfmtlint/internal/ctype"
)

// Arg is one variadic argument of a call.
type Arg struct {
	Text string
	// Type is zero when the expression could not be typed.
	Type ctype.Type
	// Resolvable is false when the expression references a macro.
	Resolvable bool
}

// Options tune validation for a call.
type Options struct {
	// VaList means the arguments arrive as one va_list (vprintf and friends):
	// only grammar rules are checked, never argument count or types.
	VaList bool
}

// Validate checks the directives of f against args.
func Validate(f Format, args []Arg, opts Options) []FormatError {
	var errs []FormatError
	consumed := 0
	for i, d := range f.Directives {
		if e, ok := checkDirective(i, d, args, &consumed, opts); ok {
			errs = append(errs, e)
		}
	}
	if !opts.VaList && consumed != len(args) {
		errs = append(errs, FormatError{
			Kind:      ErrArgs,
			Directive: -1,
			Arg:       -1,
			Expected:  consumed,
			Supplied:  len(args),
		})
	}
	return errs
}

// Consumed returns how many arguments the directives of f take.
func Consumed(f Format) int {
	n := 0
	for _, d := range f.Directives {
		n += d.Wildcards()
		if consumesOwn(d) {
			n++
		}
	}
	return n
}

// consumesOwn: неизвестная конверсия тоже забирает аргумент, чтобы опечатка
// не порождала ещё и ARGS; обрезанный "%" в конце не забирает ничего.
func consumesOwn(d Directive) bool {
	rule, known := Lookup(d.Conv)
	if !known {
		return d.Conv != 0
	}
	return rule.Consumes
}

// checkDirective applies the rules in order; the first failing rule wins.
func checkDirective(idx int, d Directive, args []Arg, next *int, opts Options) (FormatError, bool) {
	widthArg, precArg, convArg := -1, -1, -1
	if d.Width.Kind == AmountWildcard {
		widthArg = *next
		*next++
	}
	if d.Precision.Kind == AmountWildcard {
		precArg = *next
		*next++
	}
	if consumesOwn(d) {
		convArg = *next
		*next++
	}

	e := FormatError{
		Directive:     idx,
		Start:         d.Start,
		End:           d.End,
		SpecifierText: d.Specifier(),
		Arg:           -1,
	}

	rule, known := Lookup(d.Conv)
	if !known {
		e.Kind = ErrTypeNotExist
		e.Incomplete = d.Conv == 0
		return e, true
	}

	for i := 0; i < len(d.Flags); i++ {
		if !rule.AllowsFlag(d.Flags[i]) {
			e.Kind = ErrFlag
			e.FlagText = d.Flags[i : i+1]
			return e, true
		}
	}

	if !rule.Lengths.Has(d.Length) {
		e.Kind = ErrLength
		e.FlagText = d.Length.String()
		return e, true
	}

	if opts.VaList {
		return e, false
	}

	for _, ai := range [...]int{widthArg, precArg} {
		arg, ok := argAt(args, ai)
		if !ok || !arg.Resolvable || arg.Type.IsZero() || arg.Type.Kind == ctype.Unknown {
			continue
		}
		if !arg.Type.PromotesToInt() {
			e.Kind = ErrTypeWildcard
			e.Arg = ai
			e.TypeText = arg.Type.String()
			return e, true
		}
	}

	if arg, ok := argAt(args, convArg); ok && arg.Resolvable && !arg.Type.IsZero() {
		if accepted, typeKnown := Accepts(arg.Type, d.Specifier()); typeKnown && !accepted {
			e.Kind = ErrTypeMismatch
			e.Arg = convArg
			e.TypeText = arg.Type.String()
			return e, true
		}
	}
	return e, false
}

func argAt(args []Arg, i int) (Arg, bool) {
	if i < 0 || i >= len(args) {
		return Arg{}, false
	}
	return args[i], true
}
