package whois

import "fmt"

// Grammar maps rule names to rule bodies. Grammars are read-only once built
// and safe to share between concurrent Validate calls.
type Grammar map[string]Rule

// Rule is a tagged variant: exactly one of Sequence or Choice is non-nil.
//
// A sequence is an ordered list of entries matched in order. A choice section
// describes a single line that must match exactly one of several alternative
// field expectations.
type Rule struct {
	Sequence []Entry
	Choice   map[string]Alternative
}

// IsSequence reports whether the rule body is a sequence.
func (r Rule) IsSequence() bool { return r.Sequence != nil }

// IsChoice reports whether the rule body is a choice section.
func (r Rule) IsChoice() bool { return r.Choice != nil }

// Entry is one element of a sequence: a terminal expectation when Line is
// set, otherwise a reference to the rule named by Name.
type Entry struct {
	// Name is the expected field key for `line: field` terminals, the
	// referenced rule name for non-terminals, and informational for other
	// terminals (EOF, any line).
	Name string

	// Line is the terminal kind, or "" for a rule reference.
	Line LineKind

	// Type names a registry type checked against the field value. Only
	// meaningful for `line: field` terminals.
	Type string

	// Quantifier is the occurrence policy. The zero value means exactly once.
	Quantifier Quantifier
}

// IsTerminal reports whether the entry is a terminal expectation.
func (e Entry) IsTerminal() bool { return e.Line != "" }

// Alternative is one branch of a choice section: a field expectation with a
// type and no quantifier of its own (quantification on a choice is expressed
// at the referring entry).
type Alternative struct {
	Type string
}

// QuantKind enumerates the occurrence policies.
type QuantKind int

const (
	// QuantOnce requires exactly one occurrence.
	QuantOnce QuantKind = iota
	// QuantOptionalConstrained allows omission and empty fields, but all
	// optional-constrained entries of the enclosing sequence must agree:
	// all present with values, all present empty, or all omitted.
	QuantOptionalConstrained
	// QuantOptionalFree allows omission and empty fields unconditionally.
	QuantOptionalFree
	// QuantOptionalRepeatable allows zero or more occurrences; empty fields
	// are rejected within any occurrence.
	QuantOptionalRepeatable
	// QuantRepeatable requires one or more occurrences.
	QuantRepeatable
	// QuantRepeatableMax requires between one and Max occurrences.
	QuantRepeatableMax
)

// Quantifier is an occurrence policy. Max is meaningful only for
// QuantRepeatableMax, where it must be at least 1.
type Quantifier struct {
	Kind QuantKind
	Max  int
}

// Optional reports whether omission is acceptable (minimum zero).
func (q Quantifier) Optional() bool {
	switch q.Kind {
	case QuantOptionalConstrained, QuantOptionalFree, QuantOptionalRepeatable:
		return true
	}
	return false
}

// Repeatable reports whether more than one occurrence is acceptable.
func (q Quantifier) Repeatable() bool {
	switch q.Kind {
	case QuantOptionalRepeatable, QuantRepeatable, QuantRepeatableMax:
		return true
	}
	return false
}

// String returns the grammar spelling of the quantifier. QuantOnce, which
// the grammar expresses by omitting the attribute, renders as "required".
func (q Quantifier) String() string {
	switch q.Kind {
	case QuantOnce:
		return "required"
	case QuantOptionalConstrained:
		return "optional-constrained"
	case QuantOptionalFree:
		return "optional-free"
	case QuantOptionalRepeatable:
		return "optional-repeatable"
	case QuantRepeatable:
		return "repeatable"
	case QuantRepeatableMax:
		return fmt.Sprintf("repeatable max %d", q.Max)
	}
	return fmt.Sprintf("QuantKind(%d)", int(q.Kind))
}
