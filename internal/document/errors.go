package document

import (
	"fmt"
	"strings"
)

// MalformedDocumentError reports input that is not valid JSON/YAML or that
// misses or mistypes a required field.
type MalformedDocumentError struct {
	Problems []string
	Err      error
}

func (e *MalformedDocumentError) Error() string {
	msg := "malformed animation document"
	if len(e.Problems) > 0 {
		msg += ": " + strings.Join(e.Problems, "; ")
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

func malformed(err error, format string, args ...any) *MalformedDocumentError {
	e := &MalformedDocumentError{Err: err}
	if format != "" {
		e.Problems = []string{fmt.Sprintf(format, args...)}
	}
	return e
}

// SchemaVersionError reports a well-formed document whose shape or version is not supported.
type SchemaVersionError struct {
	Version string
	Reason  string
}

func (e *SchemaVersionError) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("unsupported animation document version %q: %s", e.Version, e.Reason)
	}
	return "unrecognized animation document: " + e.Reason
}
