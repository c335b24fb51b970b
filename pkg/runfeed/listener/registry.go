package listener

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/runfeed/runfeed/pkg/runfeed"
	"github.com/runfeed/runfeed/pkg/runfeed/journal"
	"github.com/runfeed/runfeed/pkg/runfeed/loader"
	"github.com/runfeed/runfeed/pkg/runfeed/observability"
)

// Registry owns the active set of listener adapters and broadcasts run
// lifecycle events to them. Delivery is sequential and synchronous in
// registration order; a notification returns once every adapter has
// been invoked or has failed and been logged. Nothing here ever
// returns an error to the run driver.
//
// A Registry is not safe for concurrent use: it assumes a single
// goroutine drives the run, which is also what the re-entrancy guard
// relies on.
type Registry struct {
	adapters []*Adapter
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
	journal  journal.Store
	loader   loader.Loader

	// runningTest and pendingType are derived per-run state used only
	// to compute the keyword "type" payload attribute. pendingType is
	// a single slot, not a stack: only the outermost setup/teardown
	// keyword sets it, and nested keywords inherit it.
	runningTest bool
	pendingType string

	// notifying suppresses nested notification calls so a listener's
	// own side effects (say, a log message it emits) cannot trigger a
	// recursive delivery cycle. Advisory state for the single
	// goroutine driving the run, not a lock.
	notifying bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the run-wide logger failures are reported to.
// Without it, failures are silently dropped from the log stream.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithLoader sets the loader used to resolve string listener
// specifications. Defaults to an empty factory loader, which rejects
// every name.
func WithLoader(ld loader.Loader) Option {
	return func(r *Registry) { r.loader = ld }
}

// WithMetrics sets the metrics recorder. Defaults to a no-op.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithSpans sets the span manager tracing event delivery. Defaults to
// a no-op.
func WithSpans(sm observability.SpanManager) Option {
	return func(r *Registry) { r.spans = sm }
}

// WithJournal sets the failure journal. Without one, failures are only
// logged.
func WithJournal(store journal.Store) Option {
	return func(r *Registry) { r.journal = store }
}

// NewRegistry builds the adapter set from listener specifications:
// strings are resolved through the loader, anything else is wrapped as
// a pre-built instance. A specification that fails construction is
// logged and dropped; the registry keeps the survivors, in
// specification order. A nil or empty spec slice yields an inert
// registry whose notifications are all no-ops.
func NewRegistry(specs []any, opts ...Option) *Registry {
	r := &Registry{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
		loader:  loader.NewFactoryLoader(),
	}
	for _, opt := range opts {
		opt(r)
	}

	ctx := context.Background()
	for _, spec := range specs {
		a, err := newAdapter(spec, r.loader, r.logger)
		if err != nil {
			name := displayName(spec)
			observability.LogListenerError(r.logger, name, err)
			r.metrics.RecordListenerFailure(ctx, name, journal.MethodConstruct)
			r.recordFailure(ctx, name, journal.MethodConstruct, err, "")
			continue
		}
		a.onFailure = r.failureHook(a)
		observability.LogListenerRegistered(r.logger, a.name, a.id, a.version)
		r.adapters = append(r.adapters, a)
	}
	r.metrics.RecordListenersActive(ctx, len(r.adapters))
	return r
}

// displayName names a failed specification in logs: the spec string as
// configured, or the runtime type name of a pre-built instance.
func displayName(spec any) string {
	if s, ok := spec.(string); ok {
		return s
	}
	return fmt.Sprintf("%T", spec)
}

// Active reports whether at least one listener survived construction.
func (r *Registry) Active() bool { return len(r.adapters) > 0 }

// Count returns the number of active listener adapters.
func (r *Registry) Count() int { return len(r.adapters) }

// Names returns the active adapters' display names in notification
// order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.adapters))
	for i, a := range r.adapters {
		names[i] = a.name
	}
	return names
}

// StartSuite notifies listeners that a suite is starting.
func (r *Registry) StartSuite(ctx context.Context, suite runfeed.Suite) {
	r.notify(ctx, "start_suite", func(ctx context.Context) {
		for _, a := range r.adapters {
			a.notifyNamed(ctx, "start_suite", a.caps.startSuite, suite.Name(), suiteStartAttrs(suite))
		}
	})
}

// EndSuite notifies listeners that a suite has finished.
func (r *Registry) EndSuite(ctx context.Context, suite runfeed.Suite) {
	r.notify(ctx, "end_suite", func(ctx context.Context) {
		for _, a := range r.adapters {
			a.notifyNamed(ctx, "end_suite", a.caps.endSuite, suite.Name(), suiteEndAttrs(suite))
		}
	})
}

// StartTest notifies listeners that a test is starting.
func (r *Registry) StartTest(ctx context.Context, test runfeed.Test) {
	r.notify(ctx, "start_test", func(ctx context.Context) {
		r.runningTest = true
		for _, a := range r.adapters {
			a.notifyNamed(ctx, "start_test", a.caps.startTest, test.Name(), testStartAttrs(test))
		}
	})
}

// EndTest notifies listeners that a test has finished.
func (r *Registry) EndTest(ctx context.Context, test runfeed.Test) {
	r.notify(ctx, "end_test", func(ctx context.Context) {
		r.runningTest = false
		for _, a := range r.adapters {
			a.notifyNamed(ctx, "end_test", a.caps.endTest, test.Name(), testEndAttrs(test))
		}
	})
}

// StartKeyword notifies listeners that a keyword is starting.
func (r *Registry) StartKeyword(ctx context.Context, kw runfeed.Keyword) {
	r.notify(ctx, "start_keyword", func(ctx context.Context) {
		kwType := r.keywordType(kw, true)
		for _, a := range r.adapters {
			a.notifyNamed(ctx, "start_keyword", a.caps.startKeyword, kw.Name(), keywordStartAttrs(kw, kwType))
		}
	})
}

// EndKeyword notifies listeners that a keyword has finished.
func (r *Registry) EndKeyword(ctx context.Context, kw runfeed.Keyword) {
	r.notify(ctx, "end_keyword", func(ctx context.Context) {
		kwType := r.keywordType(kw, false)
		for _, a := range r.adapters {
			a.notifyNamed(ctx, "end_keyword", a.caps.endKeyword, kw.Name(), keywordEndAttrs(kw, kwType))
		}
	})
}

// keywordType derives the reported keyword type. Only the top-level
// setup/teardown keyword carries that role in its declared kind, but
// every keyword running below it should report the same type, so a
// start stores the label in pendingType and the matching end clears
// it. Plain keywords inherit whatever is pending, or report "Keyword".
func (r *Registry) keywordType(kw runfeed.Keyword, start bool) string {
	if kw.Kind() == runfeed.KindKeyword {
		if r.pendingType != "" {
			return r.pendingType
		}
		return "Keyword"
	}
	label := r.setupOrTeardownType(kw)
	if start {
		r.pendingType = label
	} else {
		r.pendingType = ""
	}
	return label
}

func (r *Registry) setupOrTeardownType(kw runfeed.Keyword) string {
	scope := "Suite"
	if r.runningTest {
		scope = "Test"
	}
	return scope + " " + title(string(kw.Kind()))
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// LogMessage notifies listeners of a message logged by the executed
// tests and keywords.
func (r *Registry) LogMessage(ctx context.Context, msg runfeed.Message) {
	r.notify(ctx, "log_message", func(ctx context.Context) {
		for _, a := range r.adapters {
			a.notifyMessage(ctx, "log_message", a.caps.logMessage, messageAttrs(msg))
		}
	})
}

// Message notifies listeners of a message about the run itself.
func (r *Registry) Message(ctx context.Context, msg runfeed.Message) {
	r.notify(ctx, "message", func(ctx context.Context) {
		for _, a := range r.adapters {
			a.notifyMessage(ctx, "message", a.caps.message, messageAttrs(msg))
		}
	})
}

// Imported notifies listeners of a completed library, resource or
// variables import. The attribute mapping is forwarded as supplied.
func (r *Registry) Imported(ctx context.Context, kind ImportKind, name string, attrs map[string]any) {
	r.notify(ctx, string(kind)+"_import", func(ctx context.Context) {
		for _, a := range r.adapters {
			a.imported(ctx, kind, name, attrs)
		}
	})
}

// OutputFile notifies listeners that a result file has been written.
func (r *Registry) OutputFile(ctx context.Context, kind FileKind, path string) {
	r.notify(ctx, string(kind)+"_file", func(ctx context.Context) {
		for _, a := range r.adapters {
			a.outputFile(ctx, kind, path)
		}
	})
}

// Close notifies listeners that the whole run is over. It does not
// close the failure journal; whoever opened it owns it.
func (r *Registry) Close(ctx context.Context) {
	r.notify(ctx, "close", func(ctx context.Context) {
		for _, a := range r.adapters {
			a.notifyClose(ctx)
		}
	})
}

// notify is the shared delivery wrapper: the re-entrancy guard, the
// event span, and the dispatch metric around one event's delivery
// loop.
func (r *Registry) notify(ctx context.Context, event string, deliver func(ctx context.Context)) {
	if !r.enter() {
		return
	}
	defer r.exit()

	ctx, span := r.spans.StartEventSpan(ctx, event)
	defer r.spans.EndSpan(span)

	start := time.Now()
	deliver(ctx)
	r.metrics.RecordDispatch(ctx, event, len(r.adapters), time.Since(start))
}

// enter reports whether this call is the outermost notification. A
// nested call — a listener side effect feeding back into the registry
// while delivery is in flight — is dropped before any adapter is
// invoked.
func (r *Registry) enter() bool {
	if r.notifying {
		return false
	}
	r.notifying = true
	return true
}

func (r *Registry) exit() { r.notifying = false }

// failureHook feeds one adapter's invocation failures into metrics,
// the active span, and the failure journal.
func (r *Registry) failureHook(a *Adapter) func(context.Context, string, error, string) {
	return func(ctx context.Context, method string, cause error, details string) {
		r.metrics.RecordListenerFailure(ctx, a.name, method)
		r.spans.AddSpanEvent(ctx, "listener.failure",
			attribute.String("listener", a.name),
			attribute.String("method", method),
		)
		r.recordFailure(ctx, a.name, method, cause, details)
	}
}

func (r *Registry) recordFailure(ctx context.Context, listenerName, method string, cause error, details string) {
	if r.journal == nil {
		return
	}
	f := journal.NewFailure(listenerName, method, cause.Error(), details)
	if err := r.journal.Record(ctx, f); err != nil {
		observability.LogJournalError(r.logger, err)
	}
}
