package inject

import (
	"strings"
)

// Kind identifies a type of injected content.
type Kind int

const (
	ScriptFiles Kind = iota + 1
	StyleFiles
	MetaTags
	HiddenFields
	ScriptBlocks
	TemplateBlocks
	Placeholders
)

// Token names are the short name wrapped in kindPrefix and kindSuffix,
// e.g. "IScriptFilesKind". Injection points may use either form.
const (
	kindPrefix = "I"
	kindSuffix = "Kind"
)

var kindNames = [...]string{
	ScriptFiles:    "ScriptFiles",
	StyleFiles:     "StyleFiles",
	MetaTags:       "MetaTags",
	HiddenFields:   "HiddenFields",
	ScriptBlocks:   "ScriptBlocks",
	TemplateBlocks: "TemplateBlocks",
	Placeholders:   "Placeholders",
}

// Kinds returns every built-in kind in declaration order.
func Kinds() []Kind {
	return []Kind{ScriptFiles, StyleFiles, MetaTags, HiddenFields, ScriptBlocks, TemplateBlocks, Placeholders}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k >= ScriptFiles && k <= Placeholders
}

// String returns the short name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return "Kind(" + itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// TokenName returns the canonical name used inside injection points.
func (k Kind) TokenName() string {
	return kindPrefix + k.String() + kindSuffix
}

// ParseKind resolves a short or canonical kind name.
// Matching is case-sensitive after normalization.
func ParseKind(name string) (Kind, bool) {
	canonical := NormalizeName(name)
	for _, k := range Kinds() {
		if k.TokenName() == canonical {
			return k, true
		}
	}
	return 0, false
}

// NormalizeName expands a short kind name into its canonical token name.
// A name that already starts with the prefix is returned unchanged.
func NormalizeName(name string) string {
	if strings.HasPrefix(name, kindPrefix) {
		return name
	}
	name = kindPrefix + name
	if !hasSuffixFold(name, kindSuffix) {
		name += kindSuffix
	}
	return name
}

// ShortName strips the canonical prefix and suffix from a kind name.
func ShortName(name string) string {
	name = strings.TrimPrefix(name, kindPrefix)
	if hasSuffixFold(name, kindSuffix) {
		name = name[:len(name)-len(kindSuffix)]
	}
	return name
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

// satisfiedBy reports whether c implements the contract of kind k.
func (k Kind) satisfiedBy(c Collection) bool {
	if c == nil || c.Kind() != k {
		return false
	}
	var ok bool
	switch k {
	case ScriptFiles:
		_, ok = c.(ScriptFilesInjector)
	case StyleFiles:
		_, ok = c.(StyleFilesInjector)
	case MetaTags:
		_, ok = c.(MetaTagsInjector)
	case HiddenFields:
		_, ok = c.(HiddenFieldsInjector)
	case ScriptBlocks:
		_, ok = c.(ScriptBlocksInjector)
	case TemplateBlocks:
		_, ok = c.(TemplateBlocksInjector)
	case Placeholders:
		_, ok = c.(PlaceholdersInjector)
	}
	return ok
}
