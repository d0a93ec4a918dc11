// registry.go keeps the extensions registered by init() functions in the
// order they registered, which is the order their commands appear in help.

package extension

import "sync"

var (
	mu         sync.RWMutex
	extensions []Extension
)

// Register adds e. A second extension with the same name is a programming
// error and panics, as database/sql.Register does for drivers.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	for _, x := range extensions {
		if x.Name() == e.Name() {
			panic("extension: Register called twice for " + e.Name())
		}
	}
	extensions = append(extensions, e)
}

// All returns a copy of the registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Extension(nil), extensions...)
}

// Lookup returns the extension registered under name.
func Lookup(name string) (Extension, bool) {
	mu.RLock()
	defer mu.RUnlock()
	for _, e := range extensions {
		if e.Name() == name {
			return e, true
		}
	}
	return nil, false
}

// EachTool calls fn for every MCP tool of every extension, in
// registration order.
func EachTool(fn func(ext Extension, tool MCPTool)) {
	for _, e := range All() {
		for _, t := range e.MCPTools() {
			fn(e, t)
		}
	}
}
