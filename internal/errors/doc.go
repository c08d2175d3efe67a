// Package errors provides structured, actionable error messages for the
// injection runtime and its tooling.
//
// Every error carries a code (e.g. "E001") registered in a table that maps
// it to a category, a short message, a longer explanation and a
// documentation link. Builder methods attach a detail, a suggestion or a
// wrapped cause:
//
//	err := errors.New("E001").
//	    WithDetail("kind TemplateBlocks").
//	    WithSuggestion("Register a template engine with Factory.Register")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E001: Content kind is not registered
//	//
//	//   kind TemplateBlocks
//	//
//	//   Hint: Register a template engine with Factory.Register
//	//
//	//   Learn more: https://vango.dev/docs/inject/errors/E001
//
// # Error Categories
//
//   - config: factory registrations, grammar and configuration files
//   - usage: calls made in the wrong order or on a closed manager
//   - validation: content items built with missing identity or bad payload
//   - render: content registered but never reached by an injection point
//   - cli: command line input and output
//
// Two errors with the same code compare equal under errors.Is, so callers
// can test for a condition without depending on the wording.
package errors
