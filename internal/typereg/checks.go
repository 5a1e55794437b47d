package typereg

import (
	"fmt"
	"net/mail"
	"net/netip"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/net/idna"
)

var (
	roidRe     = regexp.MustCompile(`^\w{1,80}-\w{1,8}$`)
	phoneRe    = regexp.MustCompile(`^\+[0-9]{1,3}\.[0-9]{1,14}(?:x[0-9]+)?$`)
	postalRe   = regexp.MustCompile(`^[^\x00-\x1f\x7f]{1,255}$`)
	postcodeRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 -]{0,15}$`)
	ccRe       = regexp.MustCompile(`^[A-Z]{2}$`)
	posIntRe   = regexp.MustCompile(`^[1-9][0-9]*$`)
	statusRe   = regexp.MustCompile(`^(\w+) https://icann\.org/epp#(\w+)$`)
)

// eppStatuses are the EPP domain status words a reply may carry.
var eppStatuses = map[string]bool{
	"addPeriod":                true,
	"autoRenewPeriod":          true,
	"inactive":                 true,
	"ok":                       true,
	"pendingCreate":            true,
	"pendingDelete":            true,
	"pendingRenew":             true,
	"pendingRestore":           true,
	"pendingTransfer":          true,
	"pendingUpdate":            true,
	"redemptionPeriod":         true,
	"renewPeriod":              true,
	"transferPeriod":           true,
	"clientDeleteProhibited":   true,
	"clientHold":               true,
	"clientRenewProhibited":    true,
	"clientTransferProhibited": true,
	"clientUpdateProhibited":   true,
	"serverDeleteProhibited":   true,
	"serverHold":               true,
	"serverRenewProhibited":    true,
	"serverTransferProhibited": true,
	"serverUpdateProhibited":   true,
}

// checkHostname accepts LDH hostnames, A-labels and U-labels. A single
// trailing dot is tolerated. The IDNA lookup mapping, with DNS length
// verification enabled, enforces label shape, rejects empty labels, and
// enforces DNS length limits.
func checkHostname(v string) []string {
	name := strings.TrimSuffix(v, ".")
	if name == "" {
		return []string{fmt.Sprintf("%q is not a valid hostname", v)}
	}
	profile := idna.New(idna.MapForLookup(), idna.BidiRule(), idna.VerifyDNSLength(true))
	if _, err := profile.ToASCII(name); err != nil {
		return []string{fmt.Sprintf("%q is not a valid hostname", v)}
	}
	return nil
}

// checkULabel requires an internationalized domain name: valid under the
// IDNA lookup profile and not pure ASCII.
func checkULabel(v string) []string {
	if msgs := checkHostname(v); msgs != nil {
		return []string{fmt.Sprintf("%q is not a valid u-label", v)}
	}
	for _, r := range v {
		if r > unicode.MaxASCII {
			return nil
		}
	}
	return []string{fmt.Sprintf("%q contains no internationalized label", v)}
}

func checkRoid(v string) []string {
	if !roidRe.MatchString(v) {
		return []string{fmt.Sprintf("%q is not a valid repository object id", v)}
	}
	return nil
}

func checkHTTPURL(v string) []string {
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return []string{fmt.Sprintf("%q is not a valid http url", v)}
	}
	return nil
}

// checkTimeStamp requires the UTC form used throughout replies,
// e.g. 2006-01-02T15:04:05Z.
func checkTimeStamp(v string) []string {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil || !strings.HasSuffix(v, "Z") {
		return []string{fmt.Sprintf("%q is not a valid time stamp", v)}
	}
	if t.Year() < 1900 {
		return []string{fmt.Sprintf("%q is not a plausible time stamp", v)}
	}
	return nil
}

func checkEmail(v string) []string {
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Name != "" || addr.Address != v {
		return []string{fmt.Sprintf("%q is not a valid email address", v)}
	}
	return nil
}

// checkPhone requires the EPP voice number form: +CCC.NNNN with an optional
// xEXT extension.
func checkPhone(v string) []string {
	if !phoneRe.MatchString(v) {
		return []string{fmt.Sprintf("%q is not a valid phone number", v)}
	}
	return nil
}

func checkPostalLine(v string) []string {
	if !postalRe.MatchString(v) || strings.TrimSpace(v) == "" {
		return []string{fmt.Sprintf("%q is not a valid postal line", v)}
	}
	return nil
}

func checkPostalCode(v string) []string {
	if !postcodeRe.MatchString(v) {
		return []string{fmt.Sprintf("%q is not a valid postal code", v)}
	}
	return nil
}

func checkCountryCode(v string) []string {
	if !ccRe.MatchString(v) {
		return []string{fmt.Sprintf("%q is not a valid country code", v)}
	}
	return nil
}

func checkDNSSEC(v string) []string {
	if v != "signedDelegation" && v != "unsigned" {
		return []string{fmt.Sprintf("%q is not a valid dnssec value", v)}
	}
	return nil
}

// checkDomainStatus requires an EPP status word followed by its matching
// icann.org/epp fragment URL.
func checkDomainStatus(v string) []string {
	m := statusRe.FindStringSubmatch(v)
	if m == nil {
		return []string{fmt.Sprintf("%q is not a valid domain status", v)}
	}
	if m[1] != m[2] {
		return []string{fmt.Sprintf("domain status %q does not match its URL fragment %q", m[1], m[2])}
	}
	if !eppStatuses[m[1]] {
		return []string{fmt.Sprintf("%q is not an EPP domain status", m[1])}
	}
	return nil
}

func checkIPAddress(v string) []string {
	if _, err := netip.ParseAddr(v); err != nil {
		return []string{fmt.Sprintf("%q is not a valid ip address", v)}
	}
	return nil
}

func checkPositiveInteger(v string) []string {
	if !posIntRe.MatchString(v) {
		return []string{fmt.Sprintf("%q is not a positive integer", v)}
	}
	return nil
}

// checkToken rejects values with surrounding or tab whitespace; any other
// printable content is acceptable.
func checkToken(v string) []string {
	if v == "" || v != strings.TrimSpace(v) || strings.ContainsAny(v, "\t") {
		return []string{fmt.Sprintf("%q is not a valid token", v)}
	}
	return nil
}

func checkKeyTranslation(v string) []string {
	if strings.TrimSpace(v) == "" || strings.ContainsAny(v, "()") {
		return []string{fmt.Sprintf("%q is not a valid key translation", v)}
	}
	return nil
}
