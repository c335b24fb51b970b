// Package loader resolves listener specification strings into live
// listener instances.
//
// A specification has the form "name" or "name:arg1:arg2". The name
// identifies a registered constructor; the colon-separated remainder is
// passed to it as constructor arguments. A single-character name prefix
// is treated as a Windows drive letter rather than an argument
// separator, so "c:\listeners\audit.so:arg" splits after ".so".
package loader

import (
	"fmt"
	"strings"

	"github.com/runfeed/runfeed/pkg/runfeed/registry"
)

// Factory constructs a listener instance from its configured arguments.
type Factory func(args []string) (any, error)

// Loader resolves a listener name and constructor arguments into an
// instantiated listener object.
type Loader interface {
	// Load returns a new listener instance for name, or an error when
	// the name is unknown or construction fails.
	Load(name string, args []string) (any, error)
}

// FactoryLoader is a Loader backed by a registry of named constructor
// functions. It is the in-process counterpart of loading a listener
// class from a module path.
type FactoryLoader struct {
	factories *registry.Registry[string, Factory]
}

// NewFactoryLoader creates an empty factory loader.
func NewFactoryLoader() *FactoryLoader {
	return &FactoryLoader{
		factories: registry.New[string, Factory](),
	}
}

// Register adds a named listener constructor. Registering an existing
// name replaces the previous constructor.
func (l *FactoryLoader) Register(name string, f Factory) {
	l.factories.Register(name, f)
}

// Load implements Loader.
func (l *FactoryLoader) Load(name string, args []string) (any, error) {
	f, ok := l.factories.Get(name)
	if !ok {
		return nil, fmt.Errorf("no listener factory registered for '%s'", name)
	}
	inst, err := f(args)
	if err != nil {
		return nil, fmt.Errorf("initializing '%s': %w", name, err)
	}
	if inst == nil {
		return nil, fmt.Errorf("factory for '%s' returned nil", name)
	}
	return inst, nil
}

// Names returns the registered factory names in registration order.
func (l *FactoryLoader) Names() []string {
	return l.factories.Keys()
}

// SplitArgs splits a listener specification into its name and
// constructor arguments. Arguments themselves cannot contain colons;
// that is a limitation of the spec-string syntax, not of structured
// configuration.
func SplitArgs(spec string) (name string, args []string) {
	i := strings.IndexByte(spec, ':')
	if i == 1 {
		// "c:\path\listener:arg" — skip the drive letter.
		j := strings.IndexByte(spec[2:], ':')
		if j < 0 {
			return spec, nil
		}
		i = j + 2
	}
	if i < 0 {
		return spec, nil
	}
	return spec[:i], strings.Split(spec[i+1:], ":")
}

// JoinArgs renders a name and arguments back into spec-string form.
func JoinArgs(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + ":" + strings.Join(args, ":")
}
