package grammar

import (
	_ "embed"

	"github.com/g-ocloud/Whois-Selftest-Tool/whois"
)

//go:embed grammar.yaml
var defaultSource []byte

// Default parses the embedded reply grammar.
func Default() (whois.Grammar, error) {
	return Parse(defaultSource)
}

// MustDefault returns the embedded reply grammar and panics if it fails to
// parse, which only a broken build can cause.
func MustDefault() whois.Grammar {
	g, err := Default()
	if err != nil {
		panic(err)
	}
	return g
}

// DefaultSource returns the embedded grammar document.
func DefaultSource() []byte {
	return defaultSource
}
