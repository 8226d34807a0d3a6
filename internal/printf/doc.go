// Package printf checks C printf-family format strings.
//
// Scan splits the raw format text into conversion directives and literal runs.
// Validate walks the directives left to right, consuming arguments ('*' width,
// '*' precision, then the conversion itself) and checks each directive against
// the conversion grammar and the argument type table. At most one FormatError
// is produced per directive; an ARGS error is added when the number of consumed
// arguments differs from the number supplied. SuggestFix turns FLAG, LENGTH and
// TYPE_MISMATCH errors into a replacement directive text.
//
// All offsets in this package are byte offsets into the format text. Mapping to
// source offsets is the caller's job.
package printf
