// Package config loads listener configuration for a run from YAML or
// JSON files. Listener entries accept both a compact string form
// ("name:arg1:arg2") and a structured {name, args} form; order in the
// file is the order listeners are notified in.
package config
