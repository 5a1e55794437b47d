package whois

// LineKind classifies a reply line. The set is open: the validator matches
// grammar `line` attributes against whatever kinds the lexer emits, so a
// custom Lexer may introduce kinds beyond the ones named here.
type LineKind string

// Line kinds produced by the built-in lexer.
const (
	KindField      LineKind = "field"
	KindEmptyLine  LineKind = "empty line"
	KindNonEmpty   LineKind = "non-empty line"
	KindRoidLine   LineKind = "roid line"
	KindLastUpdate LineKind = "last update line"
	KindAWIPLine   LineKind = "awip line"
	KindEOF        LineKind = "EOF"
)

// KindAnyLine is not a token kind; it is the grammar `line` attribute that
// matches every kind except KindEOF.
const KindAnyLine LineKind = "any line"

// Token is one classified reply line as produced by a Lexer.
type Token struct {
	Kind LineKind

	// Field holds the key/value payload when Kind is KindField, nil otherwise.
	Field *Field

	// Text is the raw line without its CRLF terminator. Empty for KindEOF.
	Text string

	// Diagnostics are lexer-attached messages about this line (bad line
	// ending, stray whitespace, malformed translation). They are forwarded
	// verbatim into the validation result when the token is consumed.
	Diagnostics []string
}

// Field is the payload of a KindField token.
type Field struct {
	// Key is the field name, exactly as written.
	Key string

	// Translations are the parenthesized key translations, in order.
	Translations []string

	// Value is the field value, or nil for an empty field. An empty field
	// ("Key:" with nothing after the colon) is distinct from a field whose
	// value is the empty string; the grammar's quantifiers decide whether an
	// empty field is acceptable.
	Value *string
}

// HasValue reports whether the field carries a value.
func (f *Field) HasValue() bool {
	return f != nil && f.Value != nil
}
