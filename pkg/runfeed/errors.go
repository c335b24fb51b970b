package runfeed

import "fmt"

// DataError indicates invalid configuration data, such as a listener
// specification that cannot be resolved or instantiated. It is a
// startup-time failure: the offending listener is dropped and the run
// continues without it.
type DataError struct {
	// Listener is the display name of the listener the data belongs
	// to: the configured name for a spec string, the runtime type name
	// for a pre-built instance.
	Listener string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *DataError) Error() string {
	return fmt.Sprintf("listener '%s': %v", e.Listener, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *DataError) Unwrap() error {
	return e.Err
}
