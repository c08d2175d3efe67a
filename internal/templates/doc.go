// Package templates scaffolds new inject sites.
//
// # Available Templates
//
//   - minimal: inject.json only
//   - site: inject.json plus a sample page with injection points and its
//     registration manifest
//
// # Usage
//
//	tmpl, err := templates.Get("site")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = tmpl.Create(dir, templates.Config{SiteName: "shop"})
//
// # Template Variables
//
//	{{.SiteName}}  - Name of the site
//	{{.Keyword}}   - Injection point keyword
//	{{.Engine}}    - Client template engine, empty for none
//	{{.Minify}}    - Whether resolved pages are minified
package templates
