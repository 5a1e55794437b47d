package lexer

import "regexp"

var (
	// fieldKeyRe matches a field key with optional parenthesized
	// translations. Group 1 is the base key, group 2 the translations.
	fieldKeyRe = regexp.MustCompile(`^([A-Z][a-zA-Z0-9 /.'&_-]*?)((?: \([^()]*\))*)$`)

	// translationRe extracts the individual parenthesized translations.
	translationRe = regexp.MustCompile(` \(([^()]*)\)`)

	// lastUpdateRe matches the database freshness footer. Group 1 is the
	// timestamp.
	lastUpdateRe = regexp.MustCompile(`^>>> Last update of WHOIS database: (.+) <<<$`)

	// timestampRe is the UTC timestamp shape required in the footer.
	timestampRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?Z$`)

	// roidLineRe matches a repository object identifier followed by a
	// parenthesized referral, as listed in registrar reply ID sections.
	roidLineRe = regexp.MustCompile(`^\w{1,80}-\w{1,8} \(.+\)$`)
)
