// Package errors provides structured, actionable error messages for Lumen.
//
// The errors package implements a comprehensive error system that:
//   - Shows exact source locations (file, line, column)
//   - Explains what went wrong in plain language
//   - Suggests how to fix issues with code examples
//   - Links to documentation for deeper understanding
//
// # Error Categories
//
// Errors are organized into categories:
//   - reactivity: Dependency tracking errors (mutation during render, cycles)
//   - render: Patch engine errors (missing teleport targets, duplicate keys)
//   - component: Instance errors (missing render, unknown methods)
//   - protocol: Wire protocol errors (invalid frames, expired sessions)
//   - validation: User input errors
//   - config: lumen.json errors
//   - cli: create/serve command errors
//
// # Error Codes
//
// Each error has a unique code (e.g., "L001") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Usage
//
//	err := errors.New("L020").
//	    WithSuggestion("Render the teleport target before the teleport itself")
//
//	fmt.Println(err.Format())
package errors
