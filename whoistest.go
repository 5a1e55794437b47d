// Package whoistest validates directory service replies against declarative
// reply grammars.
package whoistest

import (
	"log/slog"

	"github.com/g-ocloud/Whois-Selftest-Tool/internal/grammar"
	"github.com/g-ocloud/Whois-Selftest-Tool/internal/lexer"
	"github.com/g-ocloud/Whois-Selftest-Tool/internal/typereg"
	"github.com/g-ocloud/Whois-Selftest-Tool/internal/validator"
	"github.com/g-ocloud/Whois-Selftest-Tool/whois"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-line iteration logging (tokens, attempts, repetitions).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// Option configures Validate and ValidateResponse.
type Option func(*config)

type config struct {
	logger  *slog.Logger
	grammar whois.Grammar
	types   whois.TypeRegistry
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithGrammar sets the grammar used by ValidateResponse instead of the
// embedded default.
func WithGrammar(g whois.Grammar) Option {
	return func(c *config) { c.grammar = g }
}

// WithTypes sets the type registry used by ValidateResponse instead of the
// built-in one.
func WithTypes(reg whois.TypeRegistry) Option {
	return func(c *config) { c.types = reg }
}

// Validate checks the token stream against the named grammar rule and
// returns the ordered diagnostic strings; an empty result means the input
// conforms. A non-nil error reports a programmer error (unknown rule,
// unknown type, malformed grammar), never an input violation.
//
// Example:
//
//	lx := whoistest.NewLexer(reply, nil)
//	diags, err := whoistest.Validate(
//	    "Domain Name Object query", lx,
//	    whoistest.DefaultGrammar(), whoistest.DefaultTypes(),
//	)
func Validate(rule string, lx whois.Lexer, g whois.Grammar, reg whois.TypeRegistry, opts ...Option) ([]string, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	diags, err := validator.Validate(rule, lx, g, reg, cfg.logger)
	if err != nil {
		return nil, err
	}
	return whois.Flatten(diags), nil
}

// ValidateResponse tokenizes a raw reply with the built-in lexer and
// validates it against the named rule, using the embedded grammar and the
// built-in type registry unless overridden through options. The grammar is
// checked against the registry before validation starts.
func ValidateResponse(rule string, input []byte, opts ...Option) ([]string, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	g := cfg.grammar
	if g == nil {
		var err error
		if g, err = grammar.Default(); err != nil {
			return nil, err
		}
	}
	reg := cfg.types
	if reg == nil {
		reg = typereg.Default()
	}
	if err := grammar.Check(g, reg); err != nil {
		return nil, err
	}

	var lexLogger *slog.Logger
	if cfg.logger != nil {
		lexLogger = cfg.logger.With(slog.String("component", "lexer"))
	}
	lx := lexer.New(input, lexLogger)

	diags, err := validator.Validate(rule, lx, g, reg, cfg.logger)
	if err != nil {
		return nil, err
	}
	return whois.Flatten(diags), nil
}

// NewLexer returns the built-in reply lexer over the given bytes.
// Pass nil for logger to disable logging.
func NewLexer(input []byte, logger *slog.Logger) whois.Lexer {
	return lexer.New(input, logger)
}

// ParseGrammar decodes a YAML grammar document.
func ParseGrammar(data []byte) (whois.Grammar, error) {
	return grammar.Parse(data)
}

// CheckGrammar verifies grammar invariants against a type registry.
func CheckGrammar(g whois.Grammar, reg whois.TypeRegistry) error {
	return grammar.Check(g, reg)
}

// DefaultGrammar returns the embedded reply grammar.
func DefaultGrammar() whois.Grammar {
	return grammar.MustDefault()
}

// DefaultGrammarSource returns the embedded grammar YAML document.
func DefaultGrammarSource() []byte {
	return grammar.DefaultSource()
}

// DefaultTypes returns the built-in type registry.
func DefaultTypes() *typereg.Registry {
	return typereg.Default()
}
