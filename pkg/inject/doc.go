// Package inject lets code deep inside a render pass contribute markup that
// must appear somewhere else on the page, typically in an outer layout that
// was rendered around it.
//
// A Manager owns a capture buffer that the view engine renders into. While
// the page renders, any component may register content items (script files,
// style sheets, meta tags, hidden fields, script blocks, array declarations,
// client templates, raw placeholders) into a collection identified by its
// Kind and an optional group name. The layout marks where each collection
// belongs with an injection point, an HTML comment of the form
//
//	<!-- Marker="ScriptFiles" -->
//	<!-- Marker='IScriptFilesKind:Header' -->
//
// After the render pass completes, Resolve scans the captured text once,
// replaces every injection point with the rendered collection (or nothing
// when no content was registered) and writes the result to the original
// writer.
//
// # Basic Usage
//
//	m, err := inject.New(ctx, w, inject.Config{})
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//
//	// In the layout:
//	fmt.Fprint(m.Writer(), m.Marker(inject.ScriptFiles, ""))
//
//	// In a partial view:
//	m.AddScriptFile("/js/chart.js", inject.Order(-10))
//	m.AddArrayValue("chartData", 1.5)
//
//	if err := m.Resolve(); err != nil {
//	    return err
//	}
//	return m.ReportErrors()
//
// # Ordering and Identity
//
// Items render by ascending order number, and within one order number in
// the sequence they were added. Every item has a key (URL, name, id or
// variable name). Adding an item whose key already exists never creates a
// second entry: depending on the item type the existing item ignores the
// newcomer, takes over its value, or appends its elements.
//
// # Missing Injection Points
//
// Content registered for a kind and group that no injection point
// references is reported by ReportErrors according to the ReportMode:
// silently dropped, logged, or returned as an error.
//
// A Manager is scoped to a single render pass and is not safe for
// concurrent use.
package inject
