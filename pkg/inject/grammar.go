package inject

import (
	"fmt"
	"regexp"
	"strings"

	ierrors "github.com/vango-dev/inject/internal/errors"
)

// DefaultKeyword is the attribute-like keyword of an injection point.
const DefaultKeyword = "Marker"

// Token is an injection point recognized in captured text.
type Token struct {
	// Name is the kind name as written, possibly abbreviated.
	Name string
	// Group is the optional group name; "" is the default group.
	Group string
}

// Grammar recognizes injection points in captured text.
//
// The default grammar matches HTML comments such as
//
//	<!-- Marker="ScriptFiles" -->
//	<!--   marker = 'IScriptFilesKind:Header'-->
//
// At least one whitespace character must follow "<!--". Name and group
// consist of word characters only; anything else leaves the comment
// untouched.
type Grammar struct {
	keyword  string
	re       *regexp.Regexp
	nameIdx  int
	groupIdx int
}

// DefaultPattern returns the injection point expression for keyword.
func DefaultPattern(keyword string) string {
	return `<!--\s+(?i:` + regexp.QuoteMeta(keyword) + `)\s*=\s*["'](?P<name>\w+)(?::(?P<group>\w+))?["']\s*-->`
}

// NewGrammar returns the default grammar for keyword. An empty keyword
// selects DefaultKeyword.
func NewGrammar(keyword string) (*Grammar, error) {
	if keyword == "" {
		keyword = DefaultKeyword
	}
	return NewPatternGrammar(keyword, DefaultPattern(keyword))
}

// NewPatternGrammar compiles a replacement expression. The expression
// must define a named group "name" and may define "group".
func NewPatternGrammar(keyword, pattern string) (*Grammar, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, ierrors.New("E005").WithDetailf("%q", pattern).Wrap(err)
	}

	g := &Grammar{keyword: keyword, re: re, nameIdx: -1, groupIdx: -1}
	for i, name := range re.SubexpNames() {
		switch name {
		case "name":
			g.nameIdx = i
		case "group":
			g.groupIdx = i
		}
	}
	if g.nameIdx < 0 {
		return nil, ierrors.New("E005").WithDetailf("%q has no named group \"name\"", pattern)
	}
	return g, nil
}

// DefaultGrammar returns the grammar for DefaultKeyword.
func DefaultGrammar() *Grammar {
	g, err := NewGrammar(DefaultKeyword)
	if err != nil {
		panic(err)
	}
	return g
}

// Keyword returns the keyword the grammar was built for.
func (g *Grammar) Keyword() string {
	return g.keyword
}

// Pattern returns the source of the compiled expression.
func (g *Grammar) Pattern() string {
	return g.re.String()
}

// Marker formats an injection point for kind and group using the
// grammar's keyword. The result is only guaranteed to match the default
// pattern.
func (g *Grammar) Marker(kind Kind, group string) string {
	value := kind.String()
	if group != "" {
		value += ":" + group
	}
	return fmt.Sprintf(`<!-- %s="%s" -->`, g.keyword, value)
}

// Find returns every injection point in s in order of appearance.
func (g *Grammar) Find(s string) []Token {
	var tokens []Token
	for _, m := range g.re.FindAllStringSubmatchIndex(s, -1) {
		tokens = append(tokens, g.token(s, m))
	}
	return tokens
}

// Replace substitutes every injection point in s with the result of fn and
// returns the rewritten text and the number of injection points seen.
func (g *Grammar) Replace(s string, fn func(Token) string) (string, int) {
	matches := g.re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, 0
	}

	var sb strings.Builder
	sb.Grow(len(s))
	last := 0
	for _, m := range matches {
		sb.WriteString(s[last:m[0]])
		sb.WriteString(fn(g.token(s, m)))
		last = m[1]
	}
	sb.WriteString(s[last:])
	return sb.String(), len(matches)
}

func (g *Grammar) token(s string, m []int) Token {
	return Token{
		Name:  submatch(s, m, g.nameIdx),
		Group: submatch(s, m, g.groupIdx),
	}
}

func submatch(s string, m []int, idx int) string {
	if idx < 0 || 2*idx+1 >= len(m) || m[2*idx] < 0 {
		return ""
	}
	return s[m[2*idx]:m[2*idx+1]]
}
