package runfeed

// KeywordKind classifies a keyword's declared role within its parent.
type KeywordKind string

const (
	// KindKeyword is a plain keyword call.
	KindKeyword KeywordKind = "kw"

	// KindSetup is a suite or test setup keyword.
	KindSetup KeywordKind = "setup"

	// KindTeardown is a suite or test teardown keyword.
	KindTeardown KeywordKind = "teardown"
)

// Suite is a read-only view of a test suite at notification time.
//
// Start-time attributes (ID, Doc, StartTime, LongName, Metadata) must
// be valid when the suite starts; end-time attributes (EndTime,
// ElapsedTime, Status, Message, StatMessage) only need to be valid when
// it ends. Timestamps are the engine's display strings, elapsed times
// are milliseconds.
type Suite interface {
	Name() string
	ID() string
	Doc() string
	LongName() string
	Metadata() map[string]string
	StartTime() string
	EndTime() string
	ElapsedTime() int
	Status() string
	Message() string

	// StatMessage is the human-readable statistics summary for the
	// finished suite.
	StatMessage() string

	// TestNames and SuiteNames list direct children in execution order.
	TestNames() []string
	SuiteNames() []string

	// TestCount is the total number of tests in this suite and all of
	// its child suites.
	TestCount() int

	// Source is the path the suite was parsed from, or "" when the
	// suite has no backing file.
	Source() string
}

// Test is a read-only view of a test case at notification time.
type Test interface {
	Name() string
	ID() string
	Doc() string
	LongName() string
	StartTime() string
	EndTime() string
	ElapsedTime() int
	Status() string
	Message() string
	Tags() []string
	Critical() bool

	// Template is the template keyword name, or "" when the test is
	// not templated.
	Template() string
}

// Keyword is a read-only view of a keyword call at notification time.
type Keyword interface {
	Name() string
	Doc() string
	StartTime() string
	EndTime() string
	ElapsedTime() int
	Status() string
	Args() []string
	Assign() []string
	KwName() string
	LibName() string
	Kind() KeywordKind
}

// Message is a read-only view of a logged message.
type Message interface {
	Timestamp() string
	Text() string
	Level() string
	HTML() bool
}
