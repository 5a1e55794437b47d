// Package validator implements the grammar-driven reply validator.
//
// The validator is a recursive descent engine over the token stream exposed
// by a whois.Lexer. It never looks ahead more than one token: every decision
// is made by peeking at the head of the stream, and a token is consumed at
// most once per matched attempt. Input violations are collected as
// diagnostics and validation continues, so one run can report multiple
// independent problems. Programmer errors (unknown rule, unknown type,
// malformed grammar entry) abort immediately with an error.
package validator

import (
	"fmt"
	"log/slog"

	"github.com/g-ocloud/Whois-Selftest-Tool/internal/types"
	"github.com/g-ocloud/Whois-Selftest-Tool/whois"
)

// maxRuleDepth bounds rule recursion so that a cyclic grammar surfaces as an
// error instead of exhausting the stack.
const maxRuleDepth = 500

// Validate checks the token stream against the named grammar rule and
// returns the ordered diagnostics. An empty slice means the input conforms.
// Pass nil for logger to disable logging.
func Validate(rule string, lx whois.Lexer, g whois.Grammar, reg whois.TypeRegistry, logger *slog.Logger) ([]whois.Diagnostic, error) {
	r := &run{
		g:      g,
		lex:    lx,
		reg:    reg,
		Logger: types.Logger{L: logger},
	}
	r.Log(slog.LevelDebug, "validation started", slog.String("rule", rule))

	// The top rule is never optional: it is driven as already committed so
	// that a wholly-missing reply reports its required entries instead of
	// declining silently.
	if _, err := r.rule(rule, true); err != nil {
		return nil, err
	}

	// The top rule has returned. Anything left besides EOF is trailing
	// input the grammar did not account for.
	if tok := r.lex.PeekLine(); tok.Kind != whois.KindEOF {
		r.report(r.lex.LineNo(), whois.DiagUnexpectedInput, "unexpected input")
	}

	r.Log(slog.LevelDebug, "validation complete",
		slog.Int("consumed", r.consumed),
		slog.Int("diagnostics", len(r.diags)))
	return r.diags, nil
}

// run holds the transient state of a single Validate call.
type run struct {
	g     whois.Grammar
	lex   whois.Lexer
	reg   whois.TypeRegistry
	diags []whois.Diagnostic

	// consumed counts advanced tokens. It is the commit signal: a sub-rule
	// that has consumed any token has committed to its match.
	consumed int
	depth    int
	types.Logger
}

// rule dispatches on the body of the named rule. With committed set the
// rule may not decline silently: required sequence entries report
// themselves, and a declining or empty-field choice is reported here.
func (r *run) rule(name string, committed bool) (outcome, error) {
	body, ok := r.g[name]
	if !ok {
		return outcomeDeclined, fmt.Errorf("grammar has no rule %q", name)
	}
	if body.IsSequence() && body.IsChoice() {
		return outcomeDeclined, fmt.Errorf("rule %q is both a sequence and a choice section", name)
	}

	r.depth++
	defer func() { r.depth-- }()
	if r.depth > maxRuleDepth {
		return outcomeDeclined, fmt.Errorf("rule recursion exceeds %d levels at %q", maxRuleDepth, name)
	}

	if r.TraceEnabled() {
		r.Trace("rule", slog.String("name", name), slog.Int("line", r.lex.LineNo()))
	}

	switch {
	case body.IsSequence():
		return r.sequence(body.Sequence, committed)
	case body.IsChoice():
		line := r.lex.LineNo()
		tok := r.lex.PeekLine()
		out, err := r.choice(body.Choice)
		if err == nil && committed {
			switch out {
			case outcomeDeclined:
				r.report(line, whois.DiagExpected, "expected %q", name)
			case outcomeEmptyField:
				r.report(line, whois.DiagEmptyField, "field %q must not be empty", tok.Field.Key)
			}
		}
		return out, err
	default:
		return outcomeDeclined, fmt.Errorf("rule %q has an empty body", name)
	}
}

// sequence walks the entries in order, each under its quantifier. If a
// required entry declines before the sequence has consumed anything, the
// whole sequence declines silently so that an enclosing optional context can
// skip it. Once a token has been consumed, or when the sequence is driven
// as committed from the start, missing entries are reported.
func (r *run) sequence(entries []whois.Entry, committed bool) (outcome, error) {
	start := r.consumed
	startDiags := len(r.diags)
	seqStart := start
	if committed {
		seqStart = -1
	}
	var tr constrained

	for i := range entries {
		proceed, err := r.quantified(entries[i], &tr, seqStart)
		if err != nil {
			return outcomeDeclined, err
		}
		if !proceed {
			return outcomeDeclined, nil
		}
	}

	if r.consumed > start || len(r.diags) > startDiags {
		return outcomeMatched, nil
	}
	return outcomeDeclined, nil
}

// terminal tests the head token against a terminal expectation and consumes
// it on a match. It never emits "expected" diagnostics itself; the
// quantifier engine decides whether a decline is a hard failure.
func (r *run) terminal(e whois.Entry) (outcome, error) {
	tok := r.lex.PeekLine()

	switch e.Line {
	case whois.KindEOF:
		if tok.Kind != whois.KindEOF {
			return outcomeDeclined, nil
		}
		r.consume(tok)
		return outcomeMatched, nil

	case whois.KindAnyLine:
		if tok.Kind == whois.KindEOF {
			return outcomeDeclined, nil
		}
		r.consume(tok)
		return outcomeMatched, nil

	case whois.KindField:
		if tok.Kind != whois.KindField || tok.Field == nil || tok.Field.Key != e.Name {
			return outcomeDeclined, nil
		}
		line := r.lex.LineNo()
		if !tok.Field.HasValue() {
			r.consume(tok)
			return outcomeEmptyField, nil
		}
		msgs, err := r.checkType(e.Type, *tok.Field.Value)
		if err != nil {
			return outcomeDeclined, err
		}
		r.consume(tok)
		for _, m := range msgs {
			r.report(line, whois.DiagType, "%s", m)
		}
		return outcomeMatched, nil

	default:
		// Any other kind the lexer emits (roid line, last update line, ...)
		// matches by kind equality.
		if tok.Kind != e.Line {
			return outcomeDeclined, nil
		}
		r.consume(tok)
		return outcomeMatched, nil
	}
}

// choice matches the head token against the alternatives of a choice
// section. It advances by exactly one token or declines; there is no partial
// consumption.
func (r *run) choice(alts map[string]whois.Alternative) (outcome, error) {
	tok := r.lex.PeekLine()
	if tok.Kind != whois.KindField || tok.Field == nil {
		return outcomeDeclined, nil
	}
	alt, ok := alts[tok.Field.Key]
	if !ok {
		return outcomeDeclined, nil
	}

	line := r.lex.LineNo()
	if !tok.Field.HasValue() {
		r.consume(tok)
		return outcomeEmptyField, nil
	}
	msgs, err := r.checkType(alt.Type, *tok.Field.Value)
	if err != nil {
		return outcomeDeclined, err
	}
	r.consume(tok)
	for _, m := range msgs {
		r.report(line, whois.DiagType, "%s", m)
	}
	return outcomeMatched, nil
}

// checkType runs the registry validator for the named type. An empty type
// name means no type check. An unregistered type is a programmer error.
func (r *run) checkType(name, value string) ([]string, error) {
	if name == "" {
		return nil, nil
	}
	if !r.reg.HasType(name) {
		return nil, fmt.Errorf("type registry has no type %q", name)
	}
	return r.reg.ValidateType(name, value), nil
}

// consume forwards the token's lexer diagnostics and advances the stream.
func (r *run) consume(tok whois.Token) {
	line := r.lex.LineNo()
	for _, m := range tok.Diagnostics {
		r.diags = append(r.diags, whois.Diagnostic{Line: line, Code: whois.DiagLexer, Message: m})
	}
	if r.TraceEnabled() {
		r.Trace("consume", slog.Int("line", line), slog.String("kind", string(tok.Kind)))
	}
	r.lex.NextLine()
	r.consumed++
}

// report appends a validator-produced diagnostic.
func (r *run) report(line int, code, format string, args ...any) {
	d := whois.Diagnostic{Line: line, Code: code, Message: fmt.Sprintf(format, args...)}
	r.diags = append(r.diags, d)
	r.Log(slog.LevelDebug, "diagnostic",
		slog.Int("line", d.Line),
		slog.String("code", d.Code),
		slog.String("message", d.Message))
}
