package whois

import (
	"testing"

	"github.com/g-ocloud/Whois-Selftest-Tool/internal/testutil"
)

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Line: 7, Code: DiagExpected, Message: `expected field "Domain Name"`}
	testutil.Equal(t, `line 7: expected field "Domain Name"`, d.String(), "structural diagnostic")

	lex := Diagnostic{Line: 3, Code: DiagLexer, Message: "BOOM!"}
	testutil.Equal(t, "BOOM!", lex.String(), "lexer diagnostic is verbatim")
}

func TestFlatten(t *testing.T) {
	testutil.Empty(t, Flatten(nil), "no diagnostics")

	got := Flatten([]Diagnostic{
		{Line: 1, Code: DiagLexer, Message: "BOOM!"},
		{Line: 2, Code: DiagEmptyField, Message: `field "Registrar" must not be empty`},
	})
	expected := []string{
		"BOOM!",
		`line 2: field "Registrar" must not be empty`,
	}
	testutil.SliceEqual(t, expected, got, "flattened forms")
}

func TestQuantifierPredicates(t *testing.T) {
	testutil.False(t, Quantifier{Kind: QuantOnce}.Optional(), "once is required")
	testutil.True(t, Quantifier{Kind: QuantOptionalFree}.Optional(), "optional-free")
	testutil.True(t, Quantifier{Kind: QuantOptionalRepeatable}.Optional(), "optional-repeatable")
	testutil.True(t, Quantifier{Kind: QuantOptionalRepeatable}.Repeatable(), "optional-repeatable repeats")
	testutil.True(t, Quantifier{Kind: QuantRepeatableMax, Max: 2}.Repeatable(), "bounded repetition")
	testutil.False(t, Quantifier{Kind: QuantOptionalConstrained}.Repeatable(), "constrained is single")
}

func TestQuantifierString(t *testing.T) {
	testutil.Equal(t, "required", Quantifier{Kind: QuantOnce}.String(), "once")
	testutil.Equal(t, "repeatable max 3", Quantifier{Kind: QuantRepeatableMax, Max: 3}.String(), "bounded")
	testutil.Equal(t, "optional-constrained", Quantifier{Kind: QuantOptionalConstrained}.String(), "constrained")
}

func TestEntryIsTerminal(t *testing.T) {
	testutil.True(t, Entry{Name: "Domain Name", Line: KindField}.IsTerminal(), "field terminal")
	testutil.False(t, Entry{Name: "Name servers section"}.IsTerminal(), "rule reference")
}

func TestFieldHasValue(t *testing.T) {
	v := "EXAMPLE.TLD"
	testutil.True(t, (&Field{Key: "Domain Name", Value: &v}).HasValue(), "present value")
	testutil.False(t, (&Field{Key: "Domain Name"}).HasValue(), "empty field")
	testutil.False(t, (*Field)(nil).HasValue(), "nil field")
}
