// internal/resolver/sanitize.go
package resolver

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// mojibakeNBSP is a UTF-8 no-break space that was decoded as Latin-1 somewhere
// upstream and re-encoded, so it shows up as "Â" followed by U+00A0.
const mojibakeNBSP = "\u00c2\u00a0"

var (
	// Only ';'-terminated references are decoded: "&para=1" in a query string
	// must survive untouched.
	charRefPattern = regexp.MustCompile(`&(?:#[0-9]{1,7}|#[xX][0-9a-fA-F]{1,6}|[A-Za-z][A-Za-z0-9]{1,31});`)

	pseudoProtocolPattern = regexp.MustCompile(`^javascript:(?:;|void\(.*\);?)?$`)
)

// Sanitize cleans a raw URL-ish string extracted from markup so it can be
// parsed as a URI reference. It never fails; unparseable input is returned
// as cleaned as it gets.
//
// Steps: trim, drop embedded spaces, decode HTML character references and
// strip backslashes from the part before the first '?', repeated until the
// string no longer changes. The part after the '?' is then percent-encoded.
// Sanitize(Sanitize(s)) == Sanitize(s) for every s.
func Sanitize(raw string) string {
	s := raw
	for {
		next := cleanPass(s)
		if next == s {
			break
		}
		s = next
	}

	if path, query, ok := strings.Cut(s, "?"); ok {
		return path + "?" + encodeQuery(query)
	}
	return s
}

// cleanPass runs one round of cleaning. Every pass that changes s either
// removes an '&' or shortens s without adding one, so repeating it ends.
func cleanPass(s string) string {
	s = decodeCharRefs(collapseSpaces(s))
	if path, query, ok := strings.Cut(s, "?"); ok {
		return sanitizePath(path) + "?" + query
	}
	return sanitizePath(s)
}

// SanitizeTarget is Sanitize for link targets: pseudo-protocol links that
// perform no navigation ("javascript:", "javascript:;", "javascript:void(0)")
// are replaced with "/" before the usual cleaning.
func SanitizeTarget(raw string) string {
	neutral, _ := neutralizePseudoProtocol(raw)
	return Sanitize(neutral)
}

func collapseSpaces(s string) string {
	s = strings.ReplaceAll(s, mojibakeNBSP, " ")
	s = strings.TrimFunc(s, unicode.IsSpace)
	return strings.ReplaceAll(s, " ", "")
}

func decodeCharRefs(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return charRefPattern.ReplaceAllStringFunc(s, html.UnescapeString)
}

// decodeAllCharRefs decodes until no reference is left, so "&amp;#58;"
// becomes ":".
func decodeAllCharRefs(s string) string {
	for {
		next := decodeCharRefs(s)
		if next == s {
			return s
		}
		s = next
	}
}

// sanitizePath handles the part of a URL before its query. Backslashes are
// mistaken path separators and are dropped, not escaped.
func sanitizePath(s string) string {
	return strings.ReplaceAll(s, `\`, "")
}

// encodeQuery percent-encodes a query string as a path segment. A fragment,
// if present, is encoded the same way and kept after its '#'. Valid escape
// sequences are passed through so encoding an encoded query is a no-op.
func encodeQuery(q string) string {
	query, fragment, hasFragment := strings.Cut(q, "#")
	if !hasFragment {
		return escapeSegment(query)
	}
	return escapeSegment(query) + "#" + escapeSegment(fragment)
}

func escapeSegment(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if isEscape(s, i) {
			b.WriteString(s[i : i+3])
			i += 3
			continue
		}
		j := i + 1
		for j < len(s) && s[j] != '%' {
			j++
		}
		b.WriteString(url.PathEscape(s[i:j]))
		i = j
	}
	return b.String()
}

func isEscape(s string, i int) bool {
	return s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2])
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

// neutralizePseudoProtocol reports whether raw is a javascript: link that
// does nothing, ignoring case, whitespace and character references.
func neutralizePseudoProtocol(raw string) (string, bool) {
	compact := strings.ToLower(strings.Join(strings.Fields(decodeAllCharRefs(raw)), ""))
	if pseudoProtocolPattern.MatchString(compact) {
		return "/", true
	}
	return raw, false
}
