// Package whois defines the public data model of the Whois Selftest Tool:
// tokens, grammars, diagnostics, and the lexer and type-registry contracts
// the validator consumes.
package whois

// Lexer is the token view the validator pulls from. The built-in
// implementation lives in internal/lexer; any tokenizer over a directory
// service reply can stand in.
//
// EOF is a real token: PeekLine keeps returning it once input is exhausted,
// and NextLine past it is a no-op. A Lexer is consumed in lock-step by a
// single Validate call and is not safe for concurrent use.
type Lexer interface {
	// PeekLine returns the token at the head of the stream without
	// advancing. Repeated calls return the same token.
	PeekLine() Token

	// NextLine advances the cursor by one token.
	NextLine()

	// LineNo returns the 1-based line number of the token at the head. For
	// the EOF token it is one past the last input line.
	LineNo() int
}

// TypeRegistry validates scalar field values against named types.
// Implementations must be safe for concurrent readers; the validator only
// calls HasType and ValidateType.
type TypeRegistry interface {
	// HasType reports whether the named type is registered.
	HasType(name string) bool

	// ValidateType checks value against the named type and returns zero or
	// more messages describing violations. Messages carry no line numbers;
	// the validator anchors them to the field's line.
	ValidateType(name, value string) []string
}
