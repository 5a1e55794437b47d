package validator

import (
	"fmt"

	"github.com/g-ocloud/Whois-Selftest-Tool/whois"
)

// outcome is the result of one attempt at a subject.
type outcome int

const (
	// outcomeDeclined means no tokens were consumed; look-ahead refused the
	// match.
	outcomeDeclined outcome = iota
	// outcomeMatched means tokens were consumed, possibly with diagnostics.
	outcomeMatched
	// outcomeEmptyField means a field with the expected name was consumed
	// but its value is absent. The quantifier decides whether that is
	// acceptable.
	outcomeEmptyField
)

// attempt makes one attempt at the entry's subject: a terminal expectation
// or a referenced rule. The returned line is the head line number at the
// start of the attempt, which for a consuming outcome is the token's line.
func (r *run) attempt(e whois.Entry) (outcome, int, error) {
	line := r.lex.LineNo()
	if e.IsTerminal() {
		out, err := r.terminal(e)
		return out, line, err
	}

	start := r.consumed
	startDiags := len(r.diags)
	out, err := r.rule(e.Name, false)
	if err != nil {
		return outcomeDeclined, line, err
	}
	// A sub-rule commits by consuming. Diagnostics without consumption still
	// count as a match so that the enclosing quantifier does not retry or
	// re-report the same position.
	switch {
	case out == outcomeEmptyField:
		// Propagated from a choice section; governed by our quantifier.
	case r.consumed > start:
		out = outcomeMatched
	case len(r.diags) > startDiags:
		out = outcomeMatched
	default:
		out = outcomeDeclined
	}
	return out, line, nil
}

// quantified drives one sequence entry under its quantifier. It returns
// proceed=false when a required entry declined while the enclosing sequence
// (started at token count seqStart) had not yet consumed anything; the
// sequence then declines as a whole instead of reporting.
func (r *run) quantified(e whois.Entry, tr *constrained, seqStart int) (bool, error) {
	switch e.Quantifier.Kind {
	case whois.QuantOnce:
		out, line, err := r.attempt(e)
		if err != nil {
			return false, err
		}
		switch out {
		case outcomeEmptyField:
			r.report(line, whois.DiagEmptyField, "field %q must not be empty", e.Name)
		case outcomeDeclined:
			if r.consumed == seqStart {
				return false, nil
			}
			r.report(r.lex.LineNo(), whois.DiagExpected, "%s", expectedMsg(e))
		}
		return true, nil

	case whois.QuantOptionalFree:
		// Omission and empty fields are both silently acceptable.
		_, _, err := r.attempt(e)
		return true, err

	case whois.QuantOptionalConstrained:
		out, line, err := r.attempt(e)
		if err != nil {
			return false, err
		}
		switch out {
		case outcomeMatched:
			tr.record(r, e.Name, presenceValue, line)
		case outcomeEmptyField:
			tr.record(r, e.Name, presenceEmpty, line)
		case outcomeDeclined:
			tr.record(r, e.Name, presenceOmitted, r.lex.LineNo())
		}
		return true, nil

	case whois.QuantOptionalRepeatable:
		for {
			before := r.lex.LineNo()
			out, line, err := r.attempt(e)
			if err != nil {
				return false, err
			}
			if out == outcomeDeclined {
				return true, nil
			}
			if out == outcomeEmptyField {
				r.report(line, whois.DiagEmptyField, "field %q must not be empty", e.Name)
			}
			// Tokens are lines, so an attempt that made no line progress can
			// never terminate the repetition on its own.
			if r.lex.LineNo() == before {
				return true, nil
			}
		}

	case whois.QuantRepeatable, whois.QuantRepeatableMax:
		n := 0
		reported := false
		for {
			before := r.lex.LineNo()
			out, line, err := r.attempt(e)
			if err != nil {
				return false, err
			}
			if out == outcomeDeclined {
				break
			}
			n++
			if out == outcomeEmptyField {
				r.report(line, whois.DiagEmptyField, "field %q must not be empty", e.Name)
			} else if e.Quantifier.Kind == whois.QuantRepeatableMax && n > e.Quantifier.Max && !reported {
				reported = true
				r.report(line, whois.DiagTooMany, "too many repetitions of %q", e.Name)
			}
			if r.lex.LineNo() == before {
				break
			}
		}
		if n == 0 {
			if r.consumed == seqStart {
				return false, nil
			}
			r.report(r.lex.LineNo(), whois.DiagExpected, "%s", expectedMsg(e))
		}
		return true, nil
	}

	return false, fmt.Errorf("entry %q has unknown quantifier %v", e.Name, e.Quantifier)
}

// expectedMsg names the missing subject in a hard-failure diagnostic.
func expectedMsg(e whois.Entry) string {
	switch {
	case e.Line == whois.KindField:
		return fmt.Sprintf("expected field %q", e.Name)
	case e.Line == whois.KindEOF:
		return "expected EOF"
	case e.Line == whois.KindAnyLine:
		return "expected a line"
	case e.IsTerminal():
		return fmt.Sprintf("expected %s", string(e.Line))
	default:
		return fmt.Sprintf("expected %q", e.Name)
	}
}

// presence classifies the observed occurrence of an optional-constrained
// entry.
type presence int

const (
	presenceOmitted presence = iota
	presenceEmpty
	presenceValue
)

func (p presence) phrase() string {
	switch p {
	case presenceEmpty:
		return "is empty"
	case presenceValue:
		return "has a value"
	default:
		return "was omitted"
	}
}

// constrained tracks the optional-constrained entries of one enclosing
// sequence. The entries must agree: all present with values, all present
// empty, or all omitted. Each observation that conflicts with an earlier one
// is reported at the line where the inconsistency became observable.
type constrained struct {
	seen map[presence]string // class -> first entry name observed with it
}

func (c *constrained) record(r *run, name string, p presence, line int) {
	if prior, priorClass, ok := c.conflicting(p); ok {
		r.report(line, whois.DiagOptionalMismatch,
			"field %q %s but field %q %s", name, p.phrase(), prior, priorClass.phrase())
	}
	if c.seen == nil {
		c.seen = make(map[presence]string, 3)
	}
	if _, ok := c.seen[p]; !ok {
		c.seen[p] = name
	}
}

// conflicting returns the first recorded observation of a class other than
// p, preferring the most committal class (a present value) for the message.
func (c *constrained) conflicting(p presence) (string, presence, bool) {
	for _, q := range [...]presence{presenceValue, presenceEmpty, presenceOmitted} {
		if q == p {
			continue
		}
		if name, ok := c.seen[q]; ok {
			return name, q, true
		}
	}
	return "", 0, false
}
