package listener

import (
	"github.com/runfeed/runfeed/pkg/runfeed"
)

// Payload is the attribute mapping delivered alongside an event's
// primary identifier. Values are strings, ints, "yes"/"no" booleans,
// string slices, or string maps. Container values are always copies:
// mutating the domain object after delivery cannot change a payload a
// listener has already received, and listeners cannot corrupt each
// other's view by mutating theirs.
type Payload map[string]any

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func copyStrings(v []string) []string {
	out := make([]string, len(v))
	copy(out, v)
	return out
}

func copyStringMap(v map[string]string) map[string]string {
	out := make(map[string]string, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// addSuiteFields adds the suite-structure fields shared by the start
// and end payloads.
func addSuiteFields(p Payload, s runfeed.Suite) {
	p["tests"] = copyStrings(s.TestNames())
	p["suites"] = copyStrings(s.SuiteNames())
	p["totaltests"] = s.TestCount()
	p["source"] = s.Source()
}

func suiteStartAttrs(s runfeed.Suite) Payload {
	p := Payload{
		"id":        s.ID(),
		"doc":       s.Doc(),
		"starttime": s.StartTime(),
		"longname":  s.LongName(),
		"metadata":  copyStringMap(s.Metadata()),
	}
	addSuiteFields(p, s)
	return p
}

func suiteEndAttrs(s runfeed.Suite) Payload {
	p := suiteStartAttrs(s)
	p["endtime"] = s.EndTime()
	p["elapsedtime"] = s.ElapsedTime()
	p["status"] = s.Status()
	p["message"] = s.Message()
	p["statistics"] = s.StatMessage()
	return p
}

func testStartAttrs(t runfeed.Test) Payload {
	return Payload{
		"id":        t.ID(),
		"doc":       t.Doc(),
		"starttime": t.StartTime(),
		"longname":  t.LongName(),
		"tags":      copyStrings(t.Tags()),
		"critical":  yesNo(t.Critical()),
		"template":  t.Template(),
	}
}

func testEndAttrs(t runfeed.Test) Payload {
	p := testStartAttrs(t)
	p["endtime"] = t.EndTime()
	p["elapsedtime"] = t.ElapsedTime()
	p["status"] = t.Status()
	p["message"] = t.Message()
	return p
}

// Keyword payloads carry no id, longname or message fields; kwType is
// the derived type label computed by the registry.
func keywordStartAttrs(kw runfeed.Keyword, kwType string) Payload {
	return Payload{
		"doc":       kw.Doc(),
		"starttime": kw.StartTime(),
		"args":      copyStrings(kw.Args()),
		"assign":    copyStrings(kw.Assign()),
		"kwname":    kw.KwName(),
		"libname":   kw.LibName(),
		"type":      kwType,
	}
}

func keywordEndAttrs(kw runfeed.Keyword, kwType string) Payload {
	p := keywordStartAttrs(kw, kwType)
	p["endtime"] = kw.EndTime()
	p["elapsedtime"] = kw.ElapsedTime()
	p["status"] = kw.Status()
	return p
}

func messageAttrs(msg runfeed.Message) Payload {
	return Payload{
		"timestamp": msg.Timestamp(),
		"message":   msg.Text(),
		"level":     msg.Level(),
		"html":      yesNo(msg.HTML()),
	}
}
