// Package templates holds the project templates used by the create
// command. Each template maps relative file paths to text/template
// bodies that are executed against a Config and written to disk.
package templates
