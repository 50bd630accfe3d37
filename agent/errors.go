package agent

import "fmt"

// ParseError reports a task that could not be classified.
type ParseError struct {
	Task string
}

func (e *ParseError) Error() string {
	return "could not parse the research task"
}

// NotFoundError reports a category with no registered connector. Available
// lists the registry keys at the time of the lookup so callers can surface
// them as a diagnostic.
type NotFoundError struct {
	Category  string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("connector %q not registered (available: %v)", e.Category, e.Available)
}
