// Package cresolve gives C expressions a static type without a full C front end.
//
// Build scans a token stream once and records macros (#define / #undef),
// typedefs, variable and parameter declarations, enumerators and function
// return types. Lookup returns the nearest entity declared before a use, with
// block scopes closed at their '}'. Resolver.Resolve types an argument
// expression: identifiers, literals, &x, *x, x[i], casts, sizeof, calls and
// parentheses. Anything else is untyped. A macro anywhere in the expression
// makes it unresolvable.
package cresolve
