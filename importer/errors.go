package importer

import "fmt"

// NotFoundError is returned when the input file does not exist. It is fatal:
// no row has been processed when it is raised.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("csv file does not exist: %s", e.Path)
}

// ValidationError marks a single row that fails a field contract. The
// orchestrator records it and continues with the next row.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps a store failure. Row-scoped like ValidationError:
// the run keeps going and already-applied rows are not rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
