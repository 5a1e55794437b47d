package whoistest

import (
	"strings"
	"testing"

	"github.com/g-ocloud/Whois-Selftest-Tool/internal/testutil"
)

// crlf joins reply lines with the CRLF terminators the format requires.
func crlf(lines ...string) []byte {
	return []byte(strings.Join(lines, "\r\n") + "\r\n")
}

func domainReply() []byte {
	return crlf(
		"Domain Name: EXAMPLE.TLD",
		"Registry Domain ID: D1234567-TLD",
		"Registrar WHOIS Server: whois.example.tld",
		"Registrar URL: http://www.example.tld",
		"Updated Date: 2009-05-29T20:13:00Z",
		"Creation Date: 2000-10-08T00:45:00Z",
		"Registry Expiry Date: 2010-10-08T00:44:59Z",
		"Registrar: EXAMPLE REGISTRAR LLC",
		"Registrar IANA ID: 5555555",
		"Registrar Abuse Contact Email: abuse@example-registrar.tld",
		"Registrar Abuse Contact Phone: +1.1235551234",
		"Domain Status: clientDeleteProhibited https://icann.org/epp#clientDeleteProhibited",
		"Registrant Name: EXAMPLE REGISTRANT",
		"Registrant Organization: EXAMPLE ORGANIZATION",
		"Registrant Street: 123 EXAMPLE STREET",
		"Registrant City: ANYTOWN",
		"Registrant State/Province: AP",
		"Registrant Postal Code: A1A1A1",
		"Registrant Country: EX",
		"Registrant Phone: +1.5555551212",
		"Registrant Email: registrant@example.tld",
		"Name Server: NS01.EXAMPLE-REGISTRAR.TLD",
		"Name Server: NS02.EXAMPLE-REGISTRAR.TLD",
		"DNSSEC: signedDelegation",
		"",
		">>> Last update of WHOIS database: 2009-05-29T20:15:00Z <<<",
		"",
		"For more information on Whois status codes, please visit https://icann.org/epp",
	)
}

func TestValidateResponseConforming(t *testing.T) {
	diags, err := ValidateResponse("Domain Name Object query", domainReply())
	testutil.NoError(t, err, "validate")
	testutil.Empty(t, diags, "conforming reply")
}

func TestValidateResponseViolations(t *testing.T) {
	reply := crlf(
		"Domain Name: EXAMPLE.TLD",
		"Creation Date: 2000-10-08T00:45:00Z",
		"Registry Expiry Date: 2010-10-08T00:44:59Z",
		"Registrar:",
		"Registrar IANA ID: 0",
		"Domain Status: ok https://icann.org/epp#inactive",
		"DNSSEC: maybe",
		"",
		">>> Last update of WHOIS database: 2009-05-29T20:15:00Z <<<",
	)
	diags, err := ValidateResponse("Domain Name Object query", reply)
	testutil.NoError(t, err, "validate")
	testutil.NotEmpty(t, diags, "broken reply")

	all := strings.Join(diags, "\n")
	testutil.Contains(t, all, `field "Registrar" must not be empty`, "empty required field")
	testutil.Contains(t, all, "not a positive integer", "bad IANA id")
	testutil.Contains(t, all, "does not match its URL fragment", "status/url mismatch")
	testutil.Contains(t, all, "not a valid dnssec value", "bad dnssec")
}

func TestValidateResponseEmptyReply(t *testing.T) {
	diags, err := ValidateResponse("Domain Name Object query", nil)
	testutil.NoError(t, err, "validate")
	testutil.NotEmpty(t, diags, "an empty reply must not conform")
}

func TestValidateResponseForwardsLexerDiagnostics(t *testing.T) {
	// One otherwise valid line uses a bare LF; the token is consumed and its
	// lexer diagnostic must surface in the result.
	reply := strings.Replace(string(domainReply()),
		"Registrant City: ANYTOWN\r\n", "Registrant City: ANYTOWN\n", 1)
	diags, err := ValidateResponse("Domain Name Object query", []byte(reply))
	testutil.NoError(t, err, "validate")
	testutil.NotEmpty(t, diags, "anomalous line ending")
	all := strings.Join(diags, "\n")
	testutil.Contains(t, all, "not terminated by CRLF", "lexer diagnostic surfaces")
}

func TestValidateWithCustomGrammar(t *testing.T) {
	g, err := ParseGrammar([]byte(`
Reply:
  - Domain Name: { line: field, type: hostname }
  - EOF: { line: EOF }
`))
	testutil.NoError(t, err, "parse grammar")

	lx := NewLexer(crlf("Domain Name: EXAMPLE.TLD"), nil)
	diags, err := Validate("Reply", lx, g, DefaultTypes())
	testutil.NoError(t, err, "validate")
	testutil.Empty(t, diags, "conforming input")
}

func TestValidateResponseUnknownRule(t *testing.T) {
	_, err := ValidateResponse("No Such Query", domainReply())
	testutil.Error(t, err, "unknown rule is a programmer error")
}

func TestValidateResponseWithGrammarOption(t *testing.T) {
	g, err := ParseGrammar([]byte(`
Reply:
  - any line: { line: any line, quantifier: optional-repeatable }
  - EOF: { line: EOF }
`))
	testutil.NoError(t, err, "parse grammar")

	diags, err := ValidateResponse("Reply", crlf("anything", "at", "all"), WithGrammar(g))
	testutil.NoError(t, err, "validate")
	testutil.Empty(t, diags, "free-form grammar accepts everything")
}

func TestDefaultGrammarAccessors(t *testing.T) {
	g := DefaultGrammar()
	testutil.NoError(t, CheckGrammar(g, DefaultTypes()), "default grammar checks")
	testutil.True(t, len(DefaultGrammarSource()) > 0, "embedded source available")
}
