// Package lexer tokenizes a directory service reply into classified lines.
//
// The reply format requires CRLF line endings. The lexer never refuses to
// classify a line: formatting anomalies (bare LF, stray CR, whitespace around
// the colon, malformed translations) become diagnostics attached to the
// line's token, which the validator forwards when the token is consumed.
package lexer

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/g-ocloud/Whois-Selftest-Tool/internal/types"
	"github.com/g-ocloud/Whois-Selftest-Tool/whois"
)

// Lexer tokenizes a reply and exposes the whois.Lexer pull interface.
// EOF is a real token at one past the last input line.
type Lexer struct {
	tokens []whois.Token // classified lines plus a trailing EOF token
	lines  []int         // 1-based line number per token
	pos    int
	types.Logger
}

// New returns a Lexer over the given reply bytes.
// Pass nil for logger to disable logging.
func New(source []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{Logger: types.Logger{L: logger}}
	l.split(source)
	l.Log(slog.LevelDebug, "lexer initialized",
		slog.Int("bytes", len(source)),
		slog.Int("lines", len(l.tokens)-1))
	return l
}

// PeekLine returns the head token without advancing.
func (l *Lexer) PeekLine() whois.Token {
	return l.tokens[l.pos]
}

// NextLine advances the cursor by one token. Past the EOF token it is a
// no-op.
func (l *Lexer) NextLine() {
	if l.pos < len(l.tokens)-1 {
		l.pos++
	}
}

// LineNo returns the 1-based line number of the head token. For the EOF
// token it is one past the last input line.
func (l *Lexer) LineNo() int {
	return l.lines[l.pos]
}

// split breaks the source into lines, diagnosing line-ending violations, and
// classifies each line.
func (l *Lexer) split(source []byte) {
	lineNo := 0
	pos := 0
	for pos < len(source) {
		lineNo++
		var raw []byte
		var diags []string

		idx := bytes.IndexByte(source[pos:], '\n')
		if idx < 0 {
			raw = source[pos:]
			pos = len(source)
			diags = append(diags, "missing CRLF at end of input")
		} else {
			raw = source[pos : pos+idx]
			pos += idx + 1
			if n := len(raw); n > 0 && raw[n-1] == '\r' {
				raw = raw[:n-1]
			} else {
				diags = append(diags, "line is not terminated by CRLF")
			}
		}
		if bytes.IndexByte(raw, '\r') >= 0 {
			diags = append(diags, "line contains a stray carriage return")
			raw = bytes.ReplaceAll(raw, []byte("\r"), nil)
		}

		tok := l.classify(string(raw))
		tok.Diagnostics = append(diags, tok.Diagnostics...)
		l.tokens = append(l.tokens, tok)
		l.lines = append(l.lines, lineNo)

		if l.TraceEnabled() {
			l.Trace("token",
				slog.Int("line", lineNo),
				slog.String("kind", string(tok.Kind)),
				slog.Int("diagnostics", len(tok.Diagnostics)))
		}
	}

	l.tokens = append(l.tokens, whois.Token{Kind: whois.KindEOF})
	l.lines = append(l.lines, lineNo+1)
}

// awipText is the advisory line registries append after the footer.
const awipText = "For more information on Whois status codes, please visit https://icann.org/epp"

// classify assigns a line kind and, for fields, parses the key/value payload.
func (l *Lexer) classify(text string) whois.Token {
	if text == "" {
		return whois.Token{Kind: whois.KindEmptyLine}
	}
	if text == awipText {
		return whois.Token{Kind: whois.KindAWIPLine, Text: text}
	}
	if m := lastUpdateRe.FindStringSubmatch(text); m != nil {
		tok := whois.Token{Kind: whois.KindLastUpdate, Text: text}
		if !timestampRe.MatchString(m[1]) {
			tok.Diagnostics = append(tok.Diagnostics, "malformed timestamp in last update line")
		}
		return tok
	}
	if roidLineRe.MatchString(text) {
		return whois.Token{Kind: whois.KindRoidLine, Text: text}
	}
	if f, diags, ok := parseField(text); ok {
		return whois.Token{Kind: whois.KindField, Field: f, Text: text, Diagnostics: diags}
	}
	return whois.Token{Kind: whois.KindNonEmpty, Text: text}
}

// parseField splits "Key (Translation)...: value" into its parts. A line
// whose key part does not look like a field key is not a field at all;
// everything after that is an anomaly on an otherwise valid field.
func parseField(text string) (*whois.Field, []string, bool) {
	colon := strings.IndexByte(text, ':')
	if colon <= 0 {
		return nil, nil, false
	}
	keyPart := text[:colon]
	rest := text[colon+1:]

	m := fieldKeyRe.FindStringSubmatch(keyPart)
	if m == nil {
		return nil, nil, false
	}
	f := &whois.Field{Key: m[1]}

	var diags []string
	if strings.HasSuffix(m[1], " ") {
		diags = append(diags, "whitespace before the colon")
	}
	for _, t := range translationRe.FindAllStringSubmatch(m[2], -1) {
		if strings.TrimSpace(t[1]) == "" {
			diags = append(diags, "empty key translation")
		}
		f.Translations = append(f.Translations, t[1])
	}

	switch {
	case rest == "":
		// Empty field: no value at all.
	case rest[0] != ' ':
		v := rest
		f.Value = &v
		diags = append(diags, "expected a space after the colon")
	default:
		v := rest[1:]
		if v == "" {
			diags = append(diags, "trailing space after empty field")
		} else {
			if strings.HasPrefix(v, " ") {
				diags = append(diags, "extra whitespace after the colon")
			}
			if strings.HasSuffix(v, " ") || strings.HasSuffix(v, "\t") {
				diags = append(diags, "trailing whitespace in field value")
			}
			f.Value = &v
		}
	}
	return f, diags, true
}
