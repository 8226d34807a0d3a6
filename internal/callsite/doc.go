// Package callsite finds printf-family calls in a token stream and recovers
// their format literal and variadic arguments.
//
// Locate classifies identifiers followed by '(' and applies the stdio include
// filter. Extract runs the call-site state machine from the opening
// parenthesis: step is a pure transition over a small value type, and the
// accumulator applies the effects it returns.
package callsite
