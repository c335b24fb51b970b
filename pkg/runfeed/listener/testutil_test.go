package listener_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/runfeed/runfeed/pkg/runfeed"
	"github.com/runfeed/runfeed/pkg/runfeed/listener"
	"github.com/runfeed/runfeed/pkg/runfeed/observability"
)

// fakeSuite implements runfeed.Suite with plain fields.
type fakeSuite struct {
	name, id, doc, longName string
	metadata                map[string]string
	startTime, endTime      string
	elapsed                 int
	status, message         string
	statMessage             string
	tests, suites           []string
	totalTests              int
	source                  string
}

func (s *fakeSuite) Name() string                { return s.name }
func (s *fakeSuite) ID() string                  { return s.id }
func (s *fakeSuite) Doc() string                 { return s.doc }
func (s *fakeSuite) LongName() string            { return s.longName }
func (s *fakeSuite) Metadata() map[string]string { return s.metadata }
func (s *fakeSuite) StartTime() string           { return s.startTime }
func (s *fakeSuite) EndTime() string             { return s.endTime }
func (s *fakeSuite) ElapsedTime() int            { return s.elapsed }
func (s *fakeSuite) Status() string              { return s.status }
func (s *fakeSuite) Message() string             { return s.message }
func (s *fakeSuite) StatMessage() string         { return s.statMessage }
func (s *fakeSuite) TestNames() []string         { return s.tests }
func (s *fakeSuite) SuiteNames() []string        { return s.suites }
func (s *fakeSuite) TestCount() int              { return s.totalTests }
func (s *fakeSuite) Source() string              { return s.source }

func newFakeSuite() *fakeSuite {
	return &fakeSuite{
		name:        "Login",
		id:          "s1",
		doc:         "Login tests",
		longName:    "Root.Login",
		metadata:    map[string]string{"owner": "qa"},
		startTime:   "20260831 10:00:00.000",
		endTime:     "20260831 10:00:02.500",
		elapsed:     2500,
		status:      "PASS",
		message:     "",
		statMessage: "2 tests, 2 passed, 0 failed",
		tests:       []string{"Valid Login", "Invalid Login"},
		suites:      []string{"Nested"},
		totalTests:  3,
		source:      "/suites/login.txt",
	}
}

// fakeTest implements runfeed.Test.
type fakeTest struct {
	name, id, doc, longName string
	startTime, endTime      string
	elapsed                 int
	status, message         string
	tags                    []string
	critical                bool
	template                string
}

func (t *fakeTest) Name() string      { return t.name }
func (t *fakeTest) ID() string        { return t.id }
func (t *fakeTest) Doc() string       { return t.doc }
func (t *fakeTest) LongName() string  { return t.longName }
func (t *fakeTest) StartTime() string { return t.startTime }
func (t *fakeTest) EndTime() string   { return t.endTime }
func (t *fakeTest) ElapsedTime() int  { return t.elapsed }
func (t *fakeTest) Status() string    { return t.status }
func (t *fakeTest) Message() string   { return t.message }
func (t *fakeTest) Tags() []string    { return t.tags }
func (t *fakeTest) Critical() bool    { return t.critical }
func (t *fakeTest) Template() string  { return t.template }

func newFakeTest() *fakeTest {
	return &fakeTest{
		name:      "Valid Login",
		id:        "s1-t1",
		doc:       "Logs in with valid credentials",
		longName:  "Root.Login.Valid Login",
		startTime: "20260831 10:00:00.100",
		endTime:   "20260831 10:00:01.200",
		elapsed:   1100,
		status:    "PASS",
		tags:      []string{"smoke", "auth"},
		critical:  true,
	}
}

// fakeKeyword implements runfeed.Keyword.
type fakeKeyword struct {
	name, doc          string
	startTime, endTime string
	elapsed            int
	status             string
	args, assign       []string
	kwName, libName    string
	kind               runfeed.KeywordKind
}

func (k *fakeKeyword) Name() string              { return k.name }
func (k *fakeKeyword) Doc() string               { return k.doc }
func (k *fakeKeyword) StartTime() string         { return k.startTime }
func (k *fakeKeyword) EndTime() string           { return k.endTime }
func (k *fakeKeyword) ElapsedTime() int          { return k.elapsed }
func (k *fakeKeyword) Status() string            { return k.status }
func (k *fakeKeyword) Args() []string            { return k.args }
func (k *fakeKeyword) Assign() []string          { return k.assign }
func (k *fakeKeyword) KwName() string            { return k.kwName }
func (k *fakeKeyword) LibName() string           { return k.libName }
func (k *fakeKeyword) Kind() runfeed.KeywordKind { return k.kind }

func newFakeKeyword(kind runfeed.KeywordKind) *fakeKeyword {
	return &fakeKeyword{
		name:      "BuiltIn.Log",
		doc:       "Logs the given message",
		startTime: "20260831 10:00:00.200",
		endTime:   "20260831 10:00:00.300",
		elapsed:   100,
		status:    "PASS",
		args:      []string{"hello"},
		kwName:    "Log",
		libName:   "BuiltIn",
		kind:      kind,
	}
}

// fakeMessage implements runfeed.Message.
type fakeMessage struct {
	timestamp, text, level string
	html                   bool
}

func (m *fakeMessage) Timestamp() string { return m.timestamp }
func (m *fakeMessage) Text() string      { return m.text }
func (m *fakeMessage) Level() string     { return m.level }
func (m *fakeMessage) HTML() bool        { return m.html }

func newFakeMessage() *fakeMessage {
	return &fakeMessage{
		timestamp: "20260831 10:00:00.250",
		text:      "hello",
		level:     "INFO",
	}
}

// call is one recorded listener invocation.
type call struct {
	method string
	name   string
	attrs  listener.Payload
	path   string
}

// recorder is a full-surface listener that records every call it
// receives, tagged with its label so cross-listener ordering can be
// asserted.
type recorder struct {
	listener.NopListener
	label string
	calls []call
}

func (r *recorder) ListenerAPIVersion() int { return listener.SupportedVersion }

func (r *recorder) record(method, name string, attrs listener.Payload) {
	r.calls = append(r.calls, call{method: method, name: name, attrs: attrs})
}

func (r *recorder) StartSuite(name string, attrs listener.Payload) { r.record("start_suite", name, attrs) }
func (r *recorder) EndSuite(name string, attrs listener.Payload)   { r.record("end_suite", name, attrs) }
func (r *recorder) StartTest(name string, attrs listener.Payload)  { r.record("start_test", name, attrs) }
func (r *recorder) EndTest(name string, attrs listener.Payload)    { r.record("end_test", name, attrs) }
func (r *recorder) StartKeyword(name string, attrs listener.Payload) {
	r.record("start_keyword", name, attrs)
}
func (r *recorder) EndKeyword(name string, attrs listener.Payload) {
	r.record("end_keyword", name, attrs)
}

func (r *recorder) LogMessage(attrs listener.Payload) { r.record("log_message", "", attrs) }
func (r *recorder) Message(attrs listener.Payload)    { r.record("message", "", attrs) }

func (r *recorder) recordPath(method, path string) {
	r.calls = append(r.calls, call{method: method, path: path})
}

func (r *recorder) OutputFile(path string) { r.recordPath("output_file", path) }
func (r *recorder) ReportFile(path string) { r.recordPath("report_file", path) }
func (r *recorder) LogFile(path string)    { r.recordPath("log_file", path) }
func (r *recorder) DebugFile(path string)  { r.recordPath("debug_file", path) }
func (r *recorder) XUnitFile(path string)  { r.recordPath("xunit_file", path) }

func (r *recorder) LibraryImport(name string, attrs map[string]any) {
	r.calls = append(r.calls, call{method: "library_import", name: name})
}
func (r *recorder) ResourceImport(name string, attrs map[string]any) {
	r.calls = append(r.calls, call{method: "resource_import", name: name})
}
func (r *recorder) VariablesImport(name string, attrs map[string]any) {
	r.calls = append(r.calls, call{method: "variables_import", name: name})
}

func (r *recorder) Close() {
	r.calls = append(r.calls, call{method: "close"})
}

// methods returns the recorded method names in order.
func (r *recorder) methods() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.method
	}
	return out
}

// logRecorder is a slog.Handler capturing records for assertions.
type logRecorder struct {
	mu      sync.Mutex
	attrs   []slog.Attr
	records *[]logRecord
}

type logRecord struct {
	level slog.Level
	msg   string
	attrs map[string]any
}

func newLogRecorder() *logRecorder {
	return &logRecorder{records: &[]logRecord{}}
}

func (h *logRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (h *logRecorder) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})
	h.mu.Lock()
	defer h.mu.Unlock()
	*h.records = append(*h.records, logRecord{level: r.Level, msg: r.Message, attrs: attrs})
	return nil
}

func (h *logRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(combined, h.attrs)
	copy(combined[len(h.attrs):], attrs)
	return &logRecorder{attrs: combined, records: h.records}
}

func (h *logRecorder) WithGroup(string) slog.Handler { return h }

func (h *logRecorder) byLevel(level slog.Level) []logRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []logRecord
	for _, r := range *h.records {
		if r.level == level {
			out = append(out, r)
		}
	}
	return out
}

// fakeMetrics counts recorder calls without OTel machinery.
type fakeMetrics struct {
	dispatches int
	failures   int
	active     int
}

func (m *fakeMetrics) RecordDispatch(_ context.Context, _ string, _ int, _ time.Duration) {
	m.dispatches++
}

func (m *fakeMetrics) RecordListenerFailure(_ context.Context, _, _ string) {
	m.failures++
}

func (m *fakeMetrics) RecordListenersActive(_ context.Context, count int) {
	m.active = count
}

var _ observability.MetricsRecorder = (*fakeMetrics)(nil)

// jsonRoundTrip guards against payload values that cannot be
// serialized; listeners commonly marshal what they receive.
func jsonRoundTrip(p listener.Payload) error {
	_, err := json.Marshal(p)
	return err
}
