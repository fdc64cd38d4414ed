package resolver

import (
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// DefaultDiagnosticLimit caps the parser message attached to a failure report.
const DefaultDiagnosticLimit = 120

// FailureKind identifies why no destination could be computed.
type FailureKind int

const (
	// FailureAbsentInput means base or target was missing.
	FailureAbsentInput FailureKind = iota + 1
	// FailureEmptyTarget means the target was empty after sanitization.
	FailureEmptyTarget
	// FailureUnparseable means base or target is not a URI reference.
	FailureUnparseable
	// FailureNonAbsoluteBase means the base has no scheme.
	FailureNonAbsoluteBase
)

// String returns the string representation of the failure kind
func (k FailureKind) String() string {
	switch k {
	case FailureAbsentInput:
		return "absent_input"
	case FailureEmptyTarget:
		return "empty_target"
	case FailureUnparseable:
		return "unparseable"
	case FailureNonAbsoluteBase:
		return "non_absolute_base"
	default:
		return "unknown"
	}
}

// Failure describes a single resolution that yielded no destination.
type Failure struct {
	Kind   FailureKind
	Base   string
	Target string
	Err    error
}

// Diagnostic returns the underlying error message cut to at most limit bytes.
func (f Failure) Diagnostic(limit int) string {
	if f.Err == nil {
		return ""
	}
	return truncate(f.Err.Error(), limit)
}

// Reporter receives failures from a Resolver. Implementations must be safe
// for concurrent use.
type Reporter interface {
	Report(f Failure)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(f Failure)

// Report calls fn(f).
func (fn ReporterFunc) Report(f Failure) {
	fn(f)
}

// NopReporter discards every failure.
type NopReporter struct{}

// Report does nothing.
func (NopReporter) Report(Failure) {}

// MultiReporter fans a failure out to several reporters in order.
type MultiReporter []Reporter

// Report forwards f to every reporter.
func (m MultiReporter) Report(f Failure) {
	for _, r := range m {
		r.Report(f)
	}
}

// LogReporter writes failures to a zerolog logger. Absent input is not
// logged; non-absolute bases and empty targets are data-quality problems and
// go out as warnings, parser errors at debug level.
type LogReporter struct {
	Logger zerolog.Logger
	// Limit caps the diagnostic length; DefaultDiagnosticLimit when <= 0.
	Limit int
}

// Report logs f.
func (l LogReporter) Report(f Failure) {
	limit := l.Limit
	if limit <= 0 {
		limit = DefaultDiagnosticLimit
	}

	switch f.Kind {
	case FailureUnparseable:
		l.Logger.Debug().
			Str("base", f.Base).
			Str("target", f.Target).
			Str("diagnostic", f.Diagnostic(limit)).
			Msg("Unable to parse URL reference")
	case FailureNonAbsoluteBase:
		l.Logger.Warn().
			Str("base", f.Base).
			Str("target", f.Target).
			Msg("Base URL is not absolute, unable to join with target")
	case FailureEmptyTarget:
		l.Logger.Warn().
			Str("base", f.Base).
			Str("target", f.Target).
			Msg("Target URL is empty, unable to compute destination")
	}
}

func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
