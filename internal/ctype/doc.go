// Package ctype models the semantic C types the format checker reasons about.
//
// A Type is a base name plus a pointer depth. Qualifiers (const, volatile,
// restrict, _Atomic) and storage classes are dropped, and integer keyword
// combinations collapse to one spelling: "long int unsigned" becomes
// "unsigned long". Type.String renders the normalized form used as a key by
// the printf type table ("char *", "unsigned long long", "struct point").
package ctype
