package resolver

import (
	"strings"
)

// TargetKind is the shape of a link target, decided once before resolution.
type TargetKind int

const (
	KindEmpty TargetKind = iota
	KindMalformed
	KindPseudoProtocol
	KindAbsolute
	KindNetworkPath
	KindRoot
	KindAbsolutePath
	KindQuery
	KindFragment
	KindTraversal
	KindRelativePath
)

// String returns the string representation of the kind
func (k TargetKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindMalformed:
		return "malformed"
	case KindPseudoProtocol:
		return "pseudo-protocol"
	case KindAbsolute:
		return "absolute"
	case KindNetworkPath:
		return "network-path"
	case KindRoot:
		return "root"
	case KindAbsolutePath:
		return "absolute-path"
	case KindQuery:
		return "query"
	case KindFragment:
		return "fragment"
	case KindTraversal:
		return "traversal"
	case KindRelativePath:
		return "relative-path"
	default:
		return "unknown"
	}
}

// Target is a sanitized link target together with its classification.
type Target struct {
	Raw   string
	Value string
	Kind  TargetKind
	// Err is set for KindMalformed.
	Err error

	ref *reference
}

// ClassifyTarget sanitizes raw and decides its shape. Pseudo-protocol links
// classify as KindPseudoProtocol with Value "/".
func ClassifyTarget(raw string) Target {
	neutral, pseudo := neutralizePseudoProtocol(raw)
	t := Target{Raw: raw, Value: Sanitize(neutral)}

	if t.Value == "" {
		t.Kind = KindEmpty
		return t
	}

	ref, err := parseReference(t.Value)
	if err != nil {
		t.Kind = KindMalformed
		t.Err = err
		return t
	}
	t.ref = ref
	t.Kind = kindOf(t.Value, ref, pseudo)
	return t
}

func kindOf(value string, ref *reference, pseudo bool) TargetKind {
	switch {
	case pseudo:
		return KindPseudoProtocol
	case ref.url.IsAbs():
		return KindAbsolute
	case strings.HasPrefix(value, "//"):
		return KindNetworkPath
	case value == "/":
		return KindRoot
	case strings.HasPrefix(value, "/"):
		return KindAbsolutePath
	case strings.HasPrefix(value, "?"):
		return KindQuery
	case strings.HasPrefix(value, "#"):
		return KindFragment
	case strings.HasPrefix(value, ".."):
		return KindTraversal
	default:
		return KindRelativePath
	}
}
