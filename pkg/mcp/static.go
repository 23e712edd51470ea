package mcp

import "sync"

// ToolConstructor builds one Tool instance. Packages that ship a tool
// contribute a constructor at init() time via RegisterConstructor, the Go
// analogue of mmcp-server's inventory::collect! static bag — a
// process-wide collection assembled across compilation units with no
// specified cross-package ordering (spec.md §9).
type ToolConstructor func() Tool

var (
	inventoryMu           sync.Mutex
	inventoryConstructors []ToolConstructor
)

// RegisterConstructor adds ctor to the process-wide tool inventory. Call
// it from an init() function in any package that defines a tool meant to
// be picked up by NewRegistryFromInventory.
func RegisterConstructor(ctor ToolConstructor) {
	inventoryMu.Lock()
	defer inventoryMu.Unlock()
	inventoryConstructors = append(inventoryConstructors, ctor)
}

// NewRegistryFromInventory builds a Registry containing one instance from
// every constructor registered so far, in registration order.
func NewRegistryFromInventory() *Registry {
	inventoryMu.Lock()
	ctors := make([]ToolConstructor, len(inventoryConstructors))
	copy(ctors, inventoryConstructors)
	inventoryMu.Unlock()

	reg := NewRegistry()
	for _, ctor := range ctors {
		reg.Add(ctor())
	}
	return reg
}
