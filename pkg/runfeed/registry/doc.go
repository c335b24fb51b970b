// Package registry provides a small insertion-ordered, thread-safe
// key/value registry. The loader package uses it to hold named listener
// factories; iteration order matches registration order, which keeps
// configuration-derived sequences deterministic.
package registry
