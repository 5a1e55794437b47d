package lexer

import (
	"testing"

	"github.com/g-ocloud/Whois-Selftest-Tool/internal/testutil"
	"github.com/g-ocloud/Whois-Selftest-Tool/whois"
)

// tokens drains the lexer including the EOF token.
func tokens(source string) []whois.Token {
	lx := New([]byte(source), nil)
	var out []whois.Token
	for {
		tok := lx.PeekLine()
		out = append(out, tok)
		if tok.Kind == whois.KindEOF {
			return out
		}
		lx.NextLine()
	}
}

func kinds(source string) []whois.LineKind {
	toks := tokens(source)
	out := make([]whois.LineKind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func firstField(t *testing.T, source string) whois.Token {
	t.Helper()
	tok := New([]byte(source), nil).PeekLine()
	testutil.Equal(t, whois.KindField, tok.Kind, "token kind")
	if tok.Field == nil {
		t.Fatal("field token has no payload")
	}
	return tok
}

func TestEmptyInput(t *testing.T) {
	lx := New(nil, nil)
	testutil.Equal(t, whois.KindEOF, lx.PeekLine().Kind, "empty input")
	testutil.Equal(t, 1, lx.LineNo(), "EOF line number")
}

func TestFieldLine(t *testing.T) {
	tok := firstField(t, "Domain Name: EXAMPLE.TLD\r\n")
	testutil.Equal(t, "Domain Name", tok.Field.Key, "key")
	testutil.True(t, tok.Field.HasValue(), "has value")
	testutil.Equal(t, "EXAMPLE.TLD", *tok.Field.Value, "value")
	testutil.Empty(t, tok.Diagnostics, "clean line")
}

func TestEmptyField(t *testing.T) {
	tok := firstField(t, "Registry Domain ID:\r\n")
	testutil.False(t, tok.Field.HasValue(), "empty field has no value")
	testutil.Empty(t, tok.Diagnostics, "bare colon is clean")
}

func TestEmptyFieldWithTrailingSpace(t *testing.T) {
	tok := firstField(t, "Registry Domain ID: \r\n")
	testutil.False(t, tok.Field.HasValue(), "still an empty field")
	testutil.NotEmpty(t, tok.Diagnostics, "trailing space diagnosed")
}

func TestKeyTranslations(t *testing.T) {
	tok := firstField(t, "Domain Name (Nombre de dominio) (Nom de domaine): EXAMPLE.TLD\r\n")
	testutil.Equal(t, "Domain Name", tok.Field.Key, "base key")
	testutil.SliceEqual(t, []string{"Nombre de dominio", "Nom de domaine"}, tok.Field.Translations, "translations")
}

func TestMissingSpaceAfterColon(t *testing.T) {
	tok := firstField(t, "Domain Name:EXAMPLE.TLD\r\n")
	testutil.Equal(t, "EXAMPLE.TLD", *tok.Field.Value, "value still parsed")
	testutil.NotEmpty(t, tok.Diagnostics, "missing space diagnosed")
}

func TestValueWhitespaceAnomalies(t *testing.T) {
	tok := firstField(t, "Domain Name:  EXAMPLE.TLD\r\n")
	testutil.NotEmpty(t, tok.Diagnostics, "double space diagnosed")

	tok = firstField(t, "Domain Name: EXAMPLE.TLD \r\n")
	testutil.NotEmpty(t, tok.Diagnostics, "trailing whitespace diagnosed")
}

func TestBareLFDiagnosed(t *testing.T) {
	tok := New([]byte("Domain Name: EXAMPLE.TLD\n"), nil).PeekLine()
	testutil.Equal(t, whois.KindField, tok.Kind, "still classified")
	testutil.SliceEqual(t, []string{"line is not terminated by CRLF"}, tok.Diagnostics, "bare LF")
}

func TestMissingFinalCRLF(t *testing.T) {
	tok := New([]byte("Domain Name: EXAMPLE.TLD"), nil).PeekLine()
	testutil.SliceEqual(t, []string{"missing CRLF at end of input"}, tok.Diagnostics, "unterminated input")
}

func TestLastUpdateLine(t *testing.T) {
	tok := New([]byte(">>> Last update of WHOIS database: 2009-05-29T20:15:00Z <<<\r\n"), nil).PeekLine()
	testutil.Equal(t, whois.KindLastUpdate, tok.Kind, "token kind")
	testutil.Empty(t, tok.Diagnostics, "valid timestamp")
}

func TestLastUpdateLineBadTimestamp(t *testing.T) {
	tok := New([]byte(">>> Last update of WHOIS database: yesterday <<<\r\n"), nil).PeekLine()
	testutil.Equal(t, whois.KindLastUpdate, tok.Kind, "token kind")
	testutil.NotEmpty(t, tok.Diagnostics, "malformed timestamp diagnosed")
}

func TestAWIPLine(t *testing.T) {
	tok := New([]byte(awipText+"\r\n"), nil).PeekLine()
	testutil.Equal(t, whois.KindAWIPLine, tok.Kind, "token kind")
}

func TestRoidLine(t *testing.T) {
	tok := New([]byte("5372808-ERL (https://www.example.com)\r\n"), nil).PeekLine()
	testutil.Equal(t, whois.KindRoidLine, tok.Kind, "token kind")
}

func TestNonFieldLines(t *testing.T) {
	got := kinds("\r\nplain text without a key\r\nlowercase key: value\r\n")
	expected := []whois.LineKind{
		whois.KindEmptyLine,
		whois.KindNonEmpty,
		whois.KindNonEmpty,
		whois.KindEOF,
	}
	testutil.SliceEqual(t, expected, got, "line kinds")
}

func TestPeekIsStable(t *testing.T) {
	lx := New([]byte("Domain Name: EXAMPLE.TLD\r\n"), nil)
	first := lx.PeekLine()
	second := lx.PeekLine()
	testutil.Equal(t, first.Kind, second.Kind, "peek does not advance")
	testutil.Equal(t, 1, lx.LineNo(), "line number unchanged")
}

func TestLineNumbers(t *testing.T) {
	lx := New([]byte("Domain Name: EXAMPLE.TLD\r\n\r\nDNSSEC: unsigned\r\n"), nil)
	testutil.Equal(t, 1, lx.LineNo(), "first line")
	lx.NextLine()
	testutil.Equal(t, 2, lx.LineNo(), "second line")
	lx.NextLine()
	testutil.Equal(t, 3, lx.LineNo(), "third line")
	lx.NextLine()
	testutil.Equal(t, whois.KindEOF, lx.PeekLine().Kind, "EOF reached")
	testutil.Equal(t, 4, lx.LineNo(), "EOF is one past the last line")

	// Advancing past EOF is a no-op.
	lx.NextLine()
	testutil.Equal(t, whois.KindEOF, lx.PeekLine().Kind, "still EOF")
	testutil.Equal(t, 4, lx.LineNo(), "line number unchanged")
}

func TestStrayCarriageReturn(t *testing.T) {
	tok := New([]byte("Domain\rName: X\r\n"), nil).PeekLine()
	testutil.NotEmpty(t, tok.Diagnostics, "stray CR diagnosed")
}
