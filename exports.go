package whoistest

import "github.com/g-ocloud/Whois-Selftest-Tool/whois"

// Type aliases for public API - all types come from the whois subpackage.

// Diagnostic is one validation finding anchored to a source line.
type Diagnostic = whois.Diagnostic

// Grammar maps rule names to rule bodies.
type Grammar = whois.Grammar

// Rule is a grammar rule body: a sequence or a choice section.
type Rule = whois.Rule

// Entry is one element of a sequence.
type Entry = whois.Entry

// Alternative is one branch of a choice section.
type Alternative = whois.Alternative

// Quantifier is an occurrence policy attached to an entry.
type Quantifier = whois.Quantifier

// QuantKind enumerates the occurrence policies.
type QuantKind = whois.QuantKind

// Token is one classified reply line.
type Token = whois.Token

// Field is the payload of a field token.
type Field = whois.Field

// LineKind classifies a reply line.
type LineKind = whois.LineKind

// Lexer is the token view the validator consumes.
type Lexer = whois.Lexer

// TypeRegistry validates scalar field values against named types.
type TypeRegistry = whois.TypeRegistry

// Quantifier kind constants.
const (
	QuantOnce                = whois.QuantOnce
	QuantOptionalConstrained = whois.QuantOptionalConstrained
	QuantOptionalFree        = whois.QuantOptionalFree
	QuantOptionalRepeatable  = whois.QuantOptionalRepeatable
	QuantRepeatable          = whois.QuantRepeatable
	QuantRepeatableMax       = whois.QuantRepeatableMax
)

// Line kind constants.
const (
	KindField      = whois.KindField
	KindEmptyLine  = whois.KindEmptyLine
	KindNonEmpty   = whois.KindNonEmpty
	KindRoidLine   = whois.KindRoidLine
	KindLastUpdate = whois.KindLastUpdate
	KindAWIPLine   = whois.KindAWIPLine
	KindAnyLine    = whois.KindAnyLine
	KindEOF        = whois.KindEOF
)

// Diagnostic code constants.
const (
	DiagLexer            = whois.DiagLexer
	DiagType             = whois.DiagType
	DiagExpected         = whois.DiagExpected
	DiagEmptyField       = whois.DiagEmptyField
	DiagTooMany          = whois.DiagTooMany
	DiagOptionalMismatch = whois.DiagOptionalMismatch
	DiagUnexpectedInput  = whois.DiagUnexpectedInput
)

// Flatten renders diagnostics to their reported string form.
var Flatten = whois.Flatten
