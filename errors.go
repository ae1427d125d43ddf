package zodgen

import "fmt"

// DocumentParseError reports malformed input surfaced by the loader.
type DocumentParseError struct {
	Path string
	Err  error
}

func (e *DocumentParseError) Error() string {
	if e.Path != "" {
		return "zodgen: parse " + e.Path + ": " + e.Err.Error()
	}
	return "zodgen: parse document: " + e.Err.Error()
}

func (e *DocumentParseError) Unwrap() error { return e.Err }

// SpecValidationError reports a document without a usable schema collection.
type SpecValidationError struct {
	Message string
}

func (e *SpecValidationError) Error() string { return "zodgen: " + e.Message }

// ReferenceError reports the first unresolvable pointer found during the
// eager upfront validation pass: the owning schema, the structural path to
// the keyword carrying the pointer, and the pointer text itself.
type ReferenceError struct {
	Schema  string
	Path    string
	Pointer string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("zodgen: schema %q: unresolvable reference %q at %s", e.Schema, e.Pointer, e.Path)
}

// SchemaGenerationError reports a compile failure attributed to one named
// schema.
type SchemaGenerationError struct {
	Schema string
	Err    error
}

func (e *SchemaGenerationError) Error() string {
	return fmt.Sprintf("zodgen: generating schema %q: %v", e.Schema, e.Err)
}

func (e *SchemaGenerationError) Unwrap() error { return e.Err }

// CircularReferenceError reports a reference cycle that cannot be broken
// with a deferred reference, carrying the cycle path (e.g. "A -> B -> A").
type CircularReferenceError struct {
	Cycle string
}

func (e *CircularReferenceError) Error() string {
	return "zodgen: unbreakable circular reference: " + e.Cycle
}
