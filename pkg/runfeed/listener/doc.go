// Package listener delivers test-run lifecycle events to externally
// supplied observers.
//
// A Registry owns an ordered set of Adapters, one per configured
// listener. For every lifecycle event it builds a copy-safe attribute
// payload from the live domain object and invokes the matching listener
// method on each adapter, in registration order, sequentially. A
// listener that panics is logged and skipped for that event; it never
// affects other listeners or the run itself.
//
// Listeners are anything exposing a subset of the Listener method
// surface and declaring API version 2. Embed NopListener to implement
// only the methods you care about:
//
//	type auditListener struct {
//		listener.NopListener
//	}
//
//	func (auditListener) ListenerAPIVersion() int { return listener.SupportedVersion }
//
//	func (auditListener) EndTest(name string, attrs listener.Payload) {
//		// ...
//	}
package listener
