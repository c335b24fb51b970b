package listener

// SupportedVersion is the only listener API version the registry
// accepts. A listener declares its version through a
// ListenerAPIVersion() method returning either an int or a string; a
// missing declaration or any value other than 2 rejects the listener
// at construction time.
const SupportedVersion = 2

// Listener names the full method surface a listener may implement.
//
// Implementing the whole interface is not required: the adapter probes
// each method individually, so a listener exposing only StartTest and
// EndTest receives exactly those events. NopListener provides no-op
// implementations of every method for embedding.
type Listener interface {
	StartSuite(name string, attrs Payload)
	EndSuite(name string, attrs Payload)
	StartTest(name string, attrs Payload)
	EndTest(name string, attrs Payload)
	StartKeyword(name string, attrs Payload)
	EndKeyword(name string, attrs Payload)

	LogMessage(attrs Payload)
	Message(attrs Payload)

	OutputFile(path string)
	ReportFile(path string)
	LogFile(path string)
	DebugFile(path string)
	XUnitFile(path string)

	LibraryImport(name string, attrs map[string]any)
	ResourceImport(name string, attrs map[string]any)
	VariablesImport(name string, attrs map[string]any)

	Close()
}

// NopListener implements every Listener method as a no-op. Embed it to
// implement only part of the surface.
//
// NopListener deliberately does not declare ListenerAPIVersion: the
// version marker is a statement about the embedding listener, not
// something a base type can promise on its behalf.
type NopListener struct{}

// Compile-time interface check.
var _ Listener = NopListener{}

func (NopListener) StartSuite(string, Payload)   {}
func (NopListener) EndSuite(string, Payload)     {}
func (NopListener) StartTest(string, Payload)    {}
func (NopListener) EndTest(string, Payload)      {}
func (NopListener) StartKeyword(string, Payload) {}
func (NopListener) EndKeyword(string, Payload)   {}

func (NopListener) LogMessage(Payload) {}
func (NopListener) Message(Payload)    {}

func (NopListener) OutputFile(string) {}
func (NopListener) ReportFile(string) {}
func (NopListener) LogFile(string)    {}
func (NopListener) DebugFile(string)  {}
func (NopListener) XUnitFile(string)  {}

func (NopListener) LibraryImport(string, map[string]any)   {}
func (NopListener) ResourceImport(string, map[string]any)  {}
func (NopListener) VariablesImport(string, map[string]any) {}

func (NopListener) Close() {}

// ImportKind identifies which kind of import an Imported notification
// reports. The set is closed: unknown kinds are dropped.
type ImportKind string

const (
	ImportLibrary   ImportKind = "library"
	ImportResource  ImportKind = "resource"
	ImportVariables ImportKind = "variables"
)

// FileKind identifies which result file an OutputFile notification
// reports. The set is closed: unknown kinds are dropped.
type FileKind string

const (
	FileOutput FileKind = "output"
	FileReport FileKind = "report"
	FileLog    FileKind = "log"
	FileDebug  FileKind = "debug"
	FileXUnit  FileKind = "xunit"
)
