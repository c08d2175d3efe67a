package inject

import (
	"strconv"
	"strings"

	ierrors "github.com/vango-dev/inject/internal/errors"
)

// ReportMode controls what ReportErrors does with content that was
// registered for a collection no injection point referenced.
type ReportMode int

const (
	// ReportError returns an E020 error. This is the zero value.
	ReportError ReportMode = iota
	// ReportLog logs a warning and returns nil.
	ReportLog
	// ReportNone drops the content silently.
	ReportNone
)

func (m ReportMode) String() string {
	switch m {
	case ReportLog:
		return "log"
	case ReportNone:
		return "none"
	default:
		return "error"
	}
}

// ParseReportMode parses "none", "log" or "error". The aliases "trace" and
// "exception" are accepted for log and error.
func ParseReportMode(s string) (ReportMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error", "exception":
		return ReportError, nil
	case "log", "trace":
		return ReportLog, nil
	case "none":
		return ReportNone, nil
	}
	return 0, ierrors.New("E121").WithDetailf("%q (valid: none, log, error)", s)
}

// Point identifies a collection by kind and group.
type Point struct {
	Kind  Kind
	Group string
}

// String returns the short form used in injection points, e.g.
// "MetaTags:Header".
func (p Point) String() string {
	if p.Group == "" {
		return p.Kind.String()
	}
	return p.Kind.String() + ":" + p.Group
}

// orphanError lists points as "ScriptFiles"; "MetaTags:Header".
func orphanError(points []Point) *ierrors.InjectError {
	return ierrors.New("E020").
		WithDetail("The following injection points are needed: " + joinPoints(points)).
		WithSuggestion("Add the injection points to the layout, or set the report mode to log or none")
}

func joinPoints(points []Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = strconv.Quote(p.String())
	}
	return strings.Join(parts, "; ")
}
