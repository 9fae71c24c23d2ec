// Package refgraph interns schema names and tracks the directed
// reference edges between them, then derives the undirected connected
// components the dependency analyzer groups schemas by.
package refgraph

import "sync"

// SymbolTable provides bidirectional mapping between schema names and
// integer IDs so the graph beneath it can work with dense int slices
// instead of string keys.
type SymbolTable struct {
	strToID map[string]int
	idToStr []string
	lock    sync.RWMutex
}

// NewSymbolTable creates a new SymbolTable.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		strToID: make(map[string]int),
		idToStr: make([]string, 0),
	}
}

// Intern returns the unique ID for name, assigning a new one on first use.
func (table *SymbolTable) Intern(name string) int {
	table.lock.RLock()
	symbolID, exists := table.strToID[name]
	table.lock.RUnlock()

	if exists {
		return symbolID
	}

	table.lock.Lock()
	defer table.lock.Unlock()

	if existingID, found := table.strToID[name]; found {
		return existingID
	}

	symbolID = len(table.idToStr)
	table.idToStr = append(table.idToStr, name)
	table.strToID[name] = symbolID

	return symbolID
}

// Lookup returns the ID already assigned to name, if any.
func (table *SymbolTable) Lookup(name string) (int, bool) {
	table.lock.RLock()
	defer table.lock.RUnlock()

	id, ok := table.strToID[name]

	return id, ok
}

// Resolve returns the string associated with id, or "" if id is invalid.
func (table *SymbolTable) Resolve(id int) string {
	table.lock.RLock()
	defer table.lock.RUnlock()

	if id < 0 || id >= len(table.idToStr) {
		return ""
	}

	return table.idToStr[id]
}

// Len returns the number of interned symbols.
func (table *SymbolTable) Len() int {
	table.lock.RLock()
	defer table.lock.RUnlock()

	return len(table.idToStr)
}
