package resolver

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
)

const normalizeFlags = purell.FlagLowercaseScheme | purell.FlagLowercaseHost | purell.FlagRemoveDotSegments

// reference is a parsed URI reference. net/url cannot tell "x#" from "x",
// so a present-but-empty fragment is tracked alongside.
type reference struct {
	url           *url.URL
	emptyFragment bool
}

var rootReference = &reference{url: &url.URL{Path: "/"}}

func parseReference(s string) (*reference, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	i := strings.IndexByte(s, '#')
	return &reference{url: u, emptyFragment: i >= 0 && i == len(s)-1}, nil
}

// hasPath reports whether the reference carries a non-empty path component.
func (r *reference) hasPath() bool {
	return r.url.EscapedPath() != ""
}

func (r *reference) isEmpty() bool {
	u := r.url
	return u.Scheme == "" && u.Host == "" && u.User == nil && u.Opaque == "" &&
		u.Path == "" && u.RawQuery == "" && !u.ForceQuery && u.Fragment == "" && !r.emptyFragment
}

// resolve joins ref against r per RFC 3986 section 5.2, dot segments included.
func (r *reference) resolve(ref *reference) *reference {
	u := r.url.ResolveReference(ref.url)
	switch {
	case ref.emptyFragment:
		u.Fragment, u.RawFragment = "", ""
		return &reference{url: u, emptyFragment: true}
	case ref.isEmpty():
		return &reference{url: u, emptyFragment: r.emptyFragment}
	default:
		return &reference{url: u}
	}
}

// String renders the normalized form: lowercase scheme and host, no dot
// segments.
func (r *reference) String() string {
	u := *r.url
	u.Fragment, u.RawFragment = "", ""

	s := purell.NormalizeURL(&u, normalizeFlags)
	if u.ForceQuery && u.RawQuery == "" {
		s += "?"
	}
	switch {
	case r.url.Fragment != "":
		s += "#" + r.url.EscapedFragment()
	case r.emptyFragment:
		s += "#"
	}
	return s
}
