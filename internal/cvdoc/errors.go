// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cvdoc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound reports that no data file exists for a language. Callers
// render a "content unavailable" state instead of failing.
var ErrNotFound = errors.New("cv data not found")

// MalformedDocumentError reports a data file whose shape cannot be used:
// invalid YAML, a missing "cv" root key, a missing name, or a schema
// violation. It is fatal for that language.
type MalformedDocumentError struct {
	Path   string
	Reason string
	Cause  error
}

func (e *MalformedDocumentError) Error() string {
	var b strings.Builder
	b.WriteString("malformed cv document")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Cause
}

// FieldError is one schema violation.
type FieldError struct {
	Field   string
	Message string
}

// SchemaError lists every schema violation found in a document.
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d violation(s):", len(e.Errors))
	for i, fe := range e.Errors {
		fmt.Fprintf(&b, "\n  %d. %s: %s", i+1, fe.Field, fe.Message)
	}
	return b.String()
}
