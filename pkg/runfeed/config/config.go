package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/runfeed/runfeed/pkg/runfeed/loader"
)

// Config is the listener configuration for one run.
type Config struct {
	// Listeners are the configured listener specifications, in the
	// order they should be notified.
	Listeners []Spec `yaml:"listeners" json:"listeners"`
}

// Spec names one listener and its constructor arguments.
//
// In YAML and JSON a spec may be written either in compact string form
// ("name:arg1:arg2") or as a structured mapping:
//
//	listeners:
//	  - audit:out.db
//	  - name: summary
//	    args: [verbose]
type Spec struct {
	Name string   `yaml:"name" json:"name"`
	Args []string `yaml:"args,omitempty" json:"args,omitempty"`
}

// String renders the spec back into compact string form.
func (s Spec) String() string {
	return loader.JoinArgs(s.Name, s.Args)
}

// UnmarshalYAML accepts both the compact string form and the
// structured mapping form.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var raw string
		if err := node.Decode(&raw); err != nil {
			return err
		}
		s.Name, s.Args = loader.SplitArgs(raw)
		return nil
	}

	type plain Spec
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = Spec(p)
	return nil
}

// UnmarshalJSON accepts both the compact string form and the
// structured object form.
func (s *Spec) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		s.Name, s.Args = loader.SplitArgs(raw)
		return nil
	}

	type plain Spec
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Spec(p)
	return nil
}

// Validate checks that every listener entry has a name.
func (c Config) Validate() error {
	for i, s := range c.Listeners {
		if s.Name == "" {
			return fmt.Errorf("listener %d: name is required", i)
		}
	}
	return nil
}

// SpecStrings returns the listeners in compact string form, ready to
// hand to the listener registry.
func (c Config) SpecStrings() []string {
	out := make([]string, len(c.Listeners))
	for i, s := range c.Listeners {
		out[i] = s.String()
	}
	return out
}
