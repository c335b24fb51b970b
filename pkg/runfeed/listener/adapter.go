package listener

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"

	"github.com/google/uuid"

	"github.com/runfeed/runfeed/pkg/runfeed"
	"github.com/runfeed/runfeed/pkg/runfeed/loader"
	"github.com/runfeed/runfeed/pkg/runfeed/observability"
)

// Adapter wraps exactly one listener, adding protocol-version
// validation and isolated invocation. An adapter is either fully
// constructed with a validated version, or construction fails and the
// registry drops the listener.
type Adapter struct {
	name    string
	id      string
	version int
	logger  *slog.Logger
	caps    capabilities

	// onFailure is set by the registry to feed metrics and the failure
	// journal; invocation failures are otherwise only logged.
	onFailure func(ctx context.Context, method string, cause error, details string)
}

// newAdapter resolves a listener specification into an adapter. A
// string spec is split into name and constructor arguments and handed
// to the loader; anything else is used as the listener instance
// directly, with its runtime type name as display name.
func newAdapter(spec any, ld loader.Loader, logger *slog.Logger) (*Adapter, error) {
	inst := spec
	var name string
	if raw, ok := spec.(string); ok {
		specName, args := loader.SplitArgs(raw)
		loaded, err := ld.Load(specName, args)
		if err != nil {
			return nil, &runfeed.DataError{Listener: specName, Err: err}
		}
		inst, name = loaded, specName
	} else {
		name = fmt.Sprintf("%T", spec)
	}

	version, err := listenerVersion(inst, name)
	if err != nil {
		return nil, err
	}

	a := &Adapter{
		name:    name,
		id:      uuid.NewString(),
		version: version,
		caps:    probeCapabilities(inst),
	}
	a.logger = observability.ListenerLogger(logger, a.name, a.id)
	return a, nil
}

// listenerVersion reads and validates the listener's declared API
// version. Listeners declare it as ListenerAPIVersion() returning int
// or string; both a non-numeric string and a wrong number are the same
// "unsupported version" failure.
func listenerVersion(inst any, name string) (int, error) {
	switch v := inst.(type) {
	case interface{ ListenerAPIVersion() int }:
		declared := v.ListenerAPIVersion()
		if declared != SupportedVersion {
			return 0, &VersionError{Listener: name, Declared: strconv.Itoa(declared)}
		}
		return declared, nil
	case interface{ ListenerAPIVersion() string }:
		declared := v.ListenerAPIVersion()
		n, err := strconv.Atoi(declared)
		if err != nil || n != SupportedVersion {
			return 0, &VersionError{Listener: name, Declared: declared}
		}
		return n, nil
	default:
		return 0, &VersionError{Listener: name, Missing: true}
	}
}

// Name returns the adapter's display name: the configured name for a
// spec string, the runtime type name for a pre-built instance.
func (a *Adapter) Name() string { return a.name }

// Version returns the listener's validated API version.
func (a *Adapter) Version() int { return a.version }

// capabilities is the adapter's cached method table, built once at
// construction by probing which methods the wrapped instance exposes.
// A nil entry means the listener does not implement that method and
// the event is skipped for it.
type capabilities struct {
	startSuite   func(string, Payload)
	endSuite     func(string, Payload)
	startTest    func(string, Payload)
	endTest      func(string, Payload)
	startKeyword func(string, Payload)
	endKeyword   func(string, Payload)

	logMessage func(Payload)
	message    func(Payload)

	outputFile func(string)
	reportFile func(string)
	logFile    func(string)
	debugFile  func(string)
	xunitFile  func(string)

	libraryImport   func(string, map[string]any)
	resourceImport  func(string, map[string]any)
	variablesImport func(string, map[string]any)

	close func()
}

func probeCapabilities(inst any) capabilities {
	var c capabilities
	if v, ok := inst.(interface{ StartSuite(string, Payload) }); ok {
		c.startSuite = v.StartSuite
	}
	if v, ok := inst.(interface{ EndSuite(string, Payload) }); ok {
		c.endSuite = v.EndSuite
	}
	if v, ok := inst.(interface{ StartTest(string, Payload) }); ok {
		c.startTest = v.StartTest
	}
	if v, ok := inst.(interface{ EndTest(string, Payload) }); ok {
		c.endTest = v.EndTest
	}
	if v, ok := inst.(interface{ StartKeyword(string, Payload) }); ok {
		c.startKeyword = v.StartKeyword
	}
	if v, ok := inst.(interface{ EndKeyword(string, Payload) }); ok {
		c.endKeyword = v.EndKeyword
	}
	if v, ok := inst.(interface{ LogMessage(Payload) }); ok {
		c.logMessage = v.LogMessage
	}
	if v, ok := inst.(interface{ Message(Payload) }); ok {
		c.message = v.Message
	}
	if v, ok := inst.(interface{ OutputFile(string) }); ok {
		c.outputFile = v.OutputFile
	}
	if v, ok := inst.(interface{ ReportFile(string) }); ok {
		c.reportFile = v.ReportFile
	}
	if v, ok := inst.(interface{ LogFile(string) }); ok {
		c.logFile = v.LogFile
	}
	if v, ok := inst.(interface{ DebugFile(string) }); ok {
		c.debugFile = v.DebugFile
	}
	if v, ok := inst.(interface{ XUnitFile(string) }); ok {
		c.xunitFile = v.XUnitFile
	}
	if v, ok := inst.(interface {
		LibraryImport(string, map[string]any)
	}); ok {
		c.libraryImport = v.LibraryImport
	}
	if v, ok := inst.(interface {
		ResourceImport(string, map[string]any)
	}); ok {
		c.resourceImport = v.ResourceImport
	}
	if v, ok := inst.(interface {
		VariablesImport(string, map[string]any)
	}); ok {
		c.variablesImport = v.VariablesImport
	}
	if v, ok := inst.(interface{ Close() }); ok {
		c.close = v.Close
	}
	return c
}

// invoke calls one listener method with isolated error handling. A
// panicking listener is logged (short message at error level, stack at
// info level) and reported through onFailure; the panic never reaches
// the caller, so delivery to the remaining listeners and the run
// itself continue. The event counts as delivered either way and no
// retry is attempted.
func (a *Adapter) invoke(ctx context.Context, method string, call func()) {
	if call == nil {
		// Listener does not implement this method.
		return
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		cause, ok := r.(error)
		if !ok {
			cause = fmt.Errorf("%v", r)
		}
		details := string(debug.Stack())
		observability.LogInvokeFailure(a.logger, method, a.name, cause, details)
		if a.onFailure != nil {
			a.onFailure(ctx, method, cause, details)
		}
	}()
	call()
}

func (a *Adapter) notifyNamed(ctx context.Context, method string, fn func(string, Payload), name string, attrs Payload) {
	if fn == nil {
		return
	}
	a.invoke(ctx, method, func() { fn(name, attrs) })
}

func (a *Adapter) notifyMessage(ctx context.Context, method string, fn func(Payload), attrs Payload) {
	if fn == nil {
		return
	}
	a.invoke(ctx, method, func() { fn(attrs) })
}

func (a *Adapter) notifyPath(ctx context.Context, method string, fn func(string), path string) {
	if fn == nil {
		return
	}
	a.invoke(ctx, method, func() { fn(path) })
}

func (a *Adapter) notifyImport(ctx context.Context, method string, fn func(string, map[string]any), name string, attrs map[string]any) {
	if fn == nil {
		return
	}
	a.invoke(ctx, method, func() { fn(name, attrs) })
}

// outputFile routes a result-file notification to the method matching
// its kind. The mapping is a closed set; unknown kinds are dropped.
func (a *Adapter) outputFile(ctx context.Context, kind FileKind, path string) {
	switch kind {
	case FileOutput:
		a.notifyPath(ctx, "output_file", a.caps.outputFile, path)
	case FileReport:
		a.notifyPath(ctx, "report_file", a.caps.reportFile, path)
	case FileLog:
		a.notifyPath(ctx, "log_file", a.caps.logFile, path)
	case FileDebug:
		a.notifyPath(ctx, "debug_file", a.caps.debugFile, path)
	case FileXUnit:
		a.notifyPath(ctx, "xunit_file", a.caps.xunitFile, path)
	}
}

// imported routes an import notification to the method matching its
// kind. The mapping is a closed set; unknown kinds are dropped.
func (a *Adapter) imported(ctx context.Context, kind ImportKind, name string, attrs map[string]any) {
	switch kind {
	case ImportLibrary:
		a.notifyImport(ctx, "library_import", a.caps.libraryImport, name, attrs)
	case ImportResource:
		a.notifyImport(ctx, "resource_import", a.caps.resourceImport, name, attrs)
	case ImportVariables:
		a.notifyImport(ctx, "variables_import", a.caps.variablesImport, name, attrs)
	}
}

func (a *Adapter) notifyClose(ctx context.Context) {
	if a.caps.close == nil {
		return
	}
	a.invoke(ctx, "close", a.caps.close)
}
