// Package grammar loads reply grammars from their YAML form into the
// in-memory shape the validator interprets.
//
// The YAML schema maps rule names to bodies. A sequence body is a list of
// single-key mappings, each key naming a field, terminal, or referenced
// rule, each value an optional attribute mapping (line, type, quantifier).
// A choice body is a plain mapping from alternative field names to their
// attributes.
package grammar

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/g-ocloud/Whois-Selftest-Tool/whois"
)

// Parse decodes a YAML grammar document.
func Parse(data []byte) (whois.Grammar, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("grammar document is empty")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("grammar root must be a mapping of rule names")
	}

	g := make(whois.Grammar, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		if _, dup := g[name]; dup {
			return nil, fmt.Errorf("duplicate rule %q", name)
		}
		rule, err := parseRule(name, root.Content[i+1])
		if err != nil {
			return nil, err
		}
		g[name] = rule
	}
	return g, nil
}

func parseRule(name string, body *yaml.Node) (whois.Rule, error) {
	switch body.Kind {
	case yaml.SequenceNode:
		entries := make([]whois.Entry, 0, len(body.Content))
		for _, item := range body.Content {
			if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
				return whois.Rule{}, fmt.Errorf("rule %q: each sequence entry must be a single-key mapping", name)
			}
			entryName := item.Content[0].Value
			var a attrs
			if err := item.Content[1].Decode(&a); err != nil {
				return whois.Rule{}, fmt.Errorf("rule %q, entry %q: %w", name, entryName, err)
			}
			e, err := a.entry(entryName)
			if err != nil {
				return whois.Rule{}, fmt.Errorf("rule %q, entry %q: %w", name, entryName, err)
			}
			entries = append(entries, e)
		}
		return whois.Rule{Sequence: entries}, nil

	case yaml.MappingNode:
		alts := make(map[string]whois.Alternative, len(body.Content)/2)
		for i := 0; i+1 < len(body.Content); i += 2 {
			altName := body.Content[i].Value
			var a attrs
			if err := body.Content[i+1].Decode(&a); err != nil {
				return whois.Rule{}, fmt.Errorf("rule %q, alternative %q: %w", name, altName, err)
			}
			if a.Quantifier != "" {
				return whois.Rule{}, fmt.Errorf("rule %q, alternative %q: a choice alternative takes no quantifier", name, altName)
			}
			if a.Line != "" && a.Line != string(whois.KindField) {
				return whois.Rule{}, fmt.Errorf("rule %q, alternative %q: a choice alternative is always a field", name, altName)
			}
			alts[altName] = whois.Alternative{Type: a.Type}
		}
		return whois.Rule{Choice: alts}, nil

	default:
		return whois.Rule{}, fmt.Errorf("rule %q: body must be a sequence or a mapping", name)
	}
}

// attrs is the YAML attribute mapping of one entry or alternative.
type attrs struct {
	Line       string `yaml:"line"`
	Type       string `yaml:"type"`
	Quantifier string `yaml:"quantifier"`
}

func (a attrs) entry(name string) (whois.Entry, error) {
	q, err := ParseQuantifier(a.Quantifier)
	if err != nil {
		return whois.Entry{}, err
	}
	return whois.Entry{
		Name:       name,
		Line:       whois.LineKind(a.Line),
		Type:       a.Type,
		Quantifier: q,
	}, nil
}

// ParseQuantifier parses a grammar quantifier spelling. The empty string is
// the exactly-once default.
func ParseQuantifier(s string) (whois.Quantifier, error) {
	switch s {
	case "":
		return whois.Quantifier{Kind: whois.QuantOnce}, nil
	case "optional-constrained":
		return whois.Quantifier{Kind: whois.QuantOptionalConstrained}, nil
	case "optional-free":
		return whois.Quantifier{Kind: whois.QuantOptionalFree}, nil
	case "optional-repeatable":
		return whois.Quantifier{Kind: whois.QuantOptionalRepeatable}, nil
	case "repeatable":
		return whois.Quantifier{Kind: whois.QuantRepeatable}, nil
	}
	if rest, ok := strings.CutPrefix(s, "repeatable max "); ok {
		max, err := strconv.Atoi(rest)
		if err != nil || max < 1 {
			return whois.Quantifier{}, fmt.Errorf("quantifier %q: maximum must be a positive integer", s)
		}
		return whois.Quantifier{Kind: whois.QuantRepeatableMax, Max: max}, nil
	}
	return whois.Quantifier{}, fmt.Errorf("unknown quantifier %q", s)
}

// Check verifies the grammar invariants up front: rule references resolve,
// field types resolve in the registry (when one is given), quantifier bounds
// are sane, and every rule has exactly one body form. Violations are
// programmer errors, reported on the error channel rather than as
// diagnostics.
func Check(g whois.Grammar, reg whois.TypeRegistry) error {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rule := g[name]
		switch {
		case rule.IsSequence() && rule.IsChoice():
			return fmt.Errorf("rule %q is both a sequence and a choice section", name)
		case !rule.IsSequence() && !rule.IsChoice():
			return fmt.Errorf("rule %q has an empty body", name)
		}

		for _, e := range rule.Sequence {
			if !e.IsTerminal() {
				if _, ok := g[e.Name]; !ok {
					return fmt.Errorf("rule %q references unknown rule %q", name, e.Name)
				}
			} else if e.Type != "" && e.Line != whois.KindField {
				return fmt.Errorf("rule %q, entry %q: a type applies only to field lines", name, e.Name)
			}
			if err := checkType(reg, e.Type); err != nil {
				return fmt.Errorf("rule %q, entry %q: %w", name, e.Name, err)
			}
			if e.Quantifier.Kind == whois.QuantRepeatableMax && e.Quantifier.Max < 1 {
				return fmt.Errorf("rule %q, entry %q: repeatable maximum must be at least 1", name, e.Name)
			}
		}
		for alt, a := range rule.Choice {
			if err := checkType(reg, a.Type); err != nil {
				return fmt.Errorf("rule %q, alternative %q: %w", name, alt, err)
			}
		}
	}
	return nil
}

func checkType(reg whois.TypeRegistry, typeName string) error {
	if typeName == "" || reg == nil {
		return nil
	}
	if !reg.HasType(typeName) {
		return fmt.Errorf("unknown type %q", typeName)
	}
	return nil
}
