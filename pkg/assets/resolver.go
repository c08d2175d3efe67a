package assets

import "strings"

// AppRelativePrefix marks a URL as relative to the application root.
const AppRelativePrefix = "~/"

// Resolver turns the URL of an injected file into the URL written to
// the page.
type Resolver interface {
	// Asset expands an application-relative URL. Any other URL is
	// returned unchanged.
	Asset(url string) string
}

// AppRelative reports whether url is application-relative and returns the
// path after the "~/" marker. A lone "~" refers to the root itself.
func AppRelative(url string) (string, bool) {
	if url == "~" {
		return "", true
	}
	return strings.CutPrefix(url, AppRelativePrefix)
}

// manifestResolver consults a Manifest before applying the base path.
type manifestResolver struct {
	manifest *Manifest
	base     string
}

// NewResolver creates a Resolver that maps application-relative URLs
// through m and prepends base. A nil manifest behaves like an empty one.
//
//	resolver := assets.NewResolver(manifest, "/app/")
//	resolver.Asset("~/site.js") // "/app/site.3f9a1c.js"
func NewResolver(m *Manifest, base string) Resolver {
	if m == nil {
		m = NewManifest()
	}
	return &manifestResolver{
		manifest: m,
		base:     normalizeBase(base),
	}
}

func (r *manifestResolver) Asset(url string) string {
	rel, ok := AppRelative(url)
	if !ok {
		return url
	}
	return r.base + r.manifest.Resolve(rel)
}

// passthrough only applies the base path.
type passthrough struct {
	base string
}

// NewPassthroughResolver creates a resolver without fingerprinting, for
// development builds.
//
//	resolver := assets.NewPassthroughResolver("/app/")
//	resolver.Asset("~/site.js") // "/app/site.js"
func NewPassthroughResolver(base string) Resolver {
	return &passthrough{base: normalizeBase(base)}
}

func (p *passthrough) Asset(url string) string {
	rel, ok := AppRelative(url)
	if !ok {
		return url
	}
	return p.base + rel
}

// normalizeBase makes base end in exactly one slash. An empty base is the
// site root.
func normalizeBase(base string) string {
	return strings.TrimRight(base, "/") + "/"
}
