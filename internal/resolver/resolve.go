// Package resolver computes the destination of links found in crawled pages.
//
// Crawled markup is hostile: hrefs arrive entity-encoded, with backslashes
// for slashes, stray spaces, javascript: pseudo-links and traversal prefixes
// on bases that have no path to traverse. Sanitize cleans such strings and
// Resolve joins a target against the page it came from, following a short,
// ordered list of special cases before falling back to RFC 3986 resolution.
//
// Both functions are pure and safe for concurrent use.
package resolver

var defaultResolver = New(nil)

// Resolve computes the destination of target relative to base using a
// resolver that reports nothing. See Resolver.Resolve.
func Resolve(base, target string) (string, bool) {
	return defaultResolver.Resolve(base, target)
}

// Resolver joins link targets against their base URL. The zero value is not
// usable; create one with New.
type Resolver struct {
	reporter Reporter
}

// New creates a Resolver that sends failures to r. A nil Reporter discards
// them.
func New(r Reporter) *Resolver {
	if r == nil {
		r = NopReporter{}
	}
	return &Resolver{reporter: r}
}

// Resolve returns the absolute, normalized URL a navigation to target would
// reach from the page at base. The boolean is false when no destination can
// be computed; the reason goes to the Reporter.
//
// An empty base or target is absent input. Otherwise, in order:
//   - an absolute target is returned normalized, base unused
//   - an empty (after sanitization) target or a non-absolute base fails
//   - a query-only target on a base with a path is appended to base verbatim
//   - on a base without a path, a leading ".." is dropped from the target and
//     a fragment-only target is resolved against "base/"
//   - a target of exactly "/" yields base itself
//   - anything else is joined per RFC 3986
func (r *Resolver) Resolve(base, target string) (string, bool) {
	if base == "" || target == "" {
		r.fail(FailureAbsentInput, base, target, nil)
		return "", false
	}

	t := ClassifyTarget(target)
	switch t.Kind {
	case KindMalformed:
		r.fail(FailureUnparseable, base, target, t.Err)
		return "", false
	case KindAbsolute:
		return t.ref.String(), true
	case KindEmpty:
		r.fail(FailureEmptyTarget, base, target, nil)
		return "", false
	}

	b := Sanitize(base)
	baseRef, err := parseReference(b)
	if err != nil {
		r.fail(FailureUnparseable, base, target, err)
		return "", false
	}
	if !baseRef.url.IsAbs() {
		r.fail(FailureNonAbsoluteBase, base, target, nil)
		return "", false
	}

	return r.join(b, baseRef, t)
}

func (r *Resolver) join(base string, baseRef *reference, t Target) (string, bool) {
	rootless := !baseRef.hasPath()
	value, ref := t.Value, t.ref

	switch {
	case t.Kind == KindQuery && !rootless:
		return base + t.Value, true
	case t.Kind == KindTraversal && rootless:
		// Nothing to go up from; "../x" means "/x".
		value = value[2:]
	case t.Kind == KindFragment && rootless:
		baseRef = baseRef.resolve(rootReference)
	}

	if value == "/" {
		return baseRef.String(), true
	}
	if value != t.Value {
		var err error
		if ref, err = parseReference(value); err != nil {
			r.fail(FailureUnparseable, base, t.Raw, err)
			return "", false
		}
	}
	return baseRef.resolve(ref).String(), true
}

func (r *Resolver) fail(kind FailureKind, base, target string, err error) {
	r.reporter.Report(Failure{Kind: kind, Base: base, Target: target, Err: err})
}
