package inject

import (
	"strings"

	ierrors "github.com/vango-dev/inject/internal/errors"
)

// TemplateEngine selects the client-side template library a
// TemplateBlocks collection targets.
type TemplateEngine int

const (
	EngineKnockout TemplateEngine = iota
	EngineUnderscore
	EngineKendo
	EngineJQuery
)

var engineNames = map[TemplateEngine]string{
	EngineKnockout:   "knockout",
	EngineUnderscore: "underscore",
	EngineKendo:      "kendo",
	EngineJQuery:     "jquery",
}

// MIMEType returns the type attribute used for the template <script>.
func (e TemplateEngine) MIMEType() string {
	switch e {
	case EngineUnderscore:
		return "text/template"
	case EngineKendo:
		return "text/x-kendo-template"
	case EngineJQuery:
		return "text/x-jquery-tmpl"
	default:
		return "text/html"
	}
}

func (e TemplateEngine) String() string {
	if name, ok := engineNames[e]; ok {
		return name
	}
	return "knockout"
}

// ParseTemplateEngine parses an engine name such as "underscore".
func ParseTemplateEngine(name string) (TemplateEngine, error) {
	for e, n := range engineNames {
		if strings.EqualFold(n, name) {
			return e, nil
		}
	}
	return 0, ierrors.New("E123").WithDetailf("%q (valid: knockout, underscore, kendo, jquery)", name)
}
