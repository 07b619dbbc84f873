// Package api exposes host functionality to plugin sources as Lua modules.
//
// Each plugin source executes in its own interpreter state; the host
// modules are registered into every fresh state before the source runs.
package api

import "github.com/dshills/luashell/internal/store"

// StoreProvider defines the interface for shared value store access.
type StoreProvider interface {
	// Set stores a raw JSON number or string value under key.
	Set(key, raw string) error

	// Get returns the raw JSON encoding of the value for key.
	Get(key string) (string, error)

	// All returns every pair sorted by key.
	All() []store.KV
}

// UnitInfo describes one loaded plugin source.
type UnitInfo struct {
	Name string
	Path string
}

// UnitProvider lists the currently loaded plugin sources.
type UnitProvider interface {
	Units() []UnitInfo
}

// Context carries the host collaborators available to plugin modules.
type Context struct {
	Store StoreProvider
	Units UnitProvider
}
