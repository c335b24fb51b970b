// Package runfeed provides the event-notification layer of a test
// execution engine.
//
// As a run progresses through suites, tests, keywords, log messages,
// imports and output-file generation, the engine broadcasts structured
// lifecycle events to externally supplied observers ("listeners"). The
// listener subpackage owns that dispatch fabric; this package holds the
// read-only views of the engine's domain objects that payloads are
// built from, and the error types shared across the module.
//
// The domain model itself (how suites run, how results accumulate) is
// an external collaborator. Only the attribute surface enumerated by
// the Suite, Test, Keyword and Message interfaces is consumed here.
package runfeed
