package tools

import "fmt"

// RetryError marks a tool failure the caller is expected to recover from by
// retrying with a corrected input. It carries the offending input and a
// human-readable diagnostic meant to be fed back to the model.
type RetryError struct {
	// Query is the input text that failed
	Query string
	// Diagnostic describes why it failed
	Diagnostic string
}

func NewRetryError(query string, err error) *RetryError {
	return &RetryError{
		Query:      query,
		Diagnostic: err.Error(),
	}
}

func (e RetryError) Error() string {
	return fmt.Sprintf("query %q failed: %s", e.Query, e.Diagnostic)
}
