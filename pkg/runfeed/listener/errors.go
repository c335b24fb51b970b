package listener

import "fmt"

// VersionError indicates a listener that does not declare the
// supported API version. It is a construction failure: the listener is
// never added to the registry.
type VersionError struct {
	// Listener is the display name of the rejected listener.
	Listener string
	// Declared is the version the listener declared, as written.
	Declared string
	// Missing is true when the listener declares no version at all.
	Missing bool
}

// Error implements the error interface.
func (e *VersionError) Error() string {
	if e.Missing {
		return fmt.Sprintf("listener '%s' does not declare the mandatory listener API version", e.Listener)
	}
	return fmt.Sprintf("listener '%s' uses unsupported API version '%s'", e.Listener, e.Declared)
}
