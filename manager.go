// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

import "fmt"

// Manager owns one BDD/ZBDD universe: a node arena, a variable table and
// its order, a formula registry, the operation caches, and the age-based
// collector that reclaims nodes no longer reachable from a live formula or
// variable edge. Every Node a Manager produces is only meaningful relative
// to that Manager.
//
// A Manager is not safe for concurrent use by multiple goroutines; callers
// that need concurrent access must serialize it themselves, the same
// restriction the rudd package's "hudd" backend works around with its own
// sync.RWMutex for a narrower purpose (protecting the unique table's
// backing map against the Go runtime's own concurrent-map panic, not
// against logically concurrent BDD operations). This package drops that
// mutex entirely: see the concurrency notes in SPEC_FULL.md.
type Manager struct {
	*configs

	nodes     []node
	unique    map[uniqueKey]int32
	freeHead  int32
	freeCount int

	vars   []variable
	byName map[string]int32
	order  orderTable

	formulas *formulaRegistry
	age      systemAge

	opcache *ternaryCache
	eacache *ternaryCache
	rccache *ternaryCache
	replace *replaceCache

	protect []Node

	universal Node // the reserved "1" formula's root; only non-terminal for zero-suppressed variants (spec.md §4.1)

	local localInfo

	gcstat gcStats
	err    error
}

// New creates a Manager implementing the given Variant. Variables are
// allocated later, on demand, with FoaVariable; unlike rudd.New there is no
// fixed variable count to declare up front.
func New(variant Variant, options ...func(*configs)) (*Manager, error) {
	if !validVariant(variant) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVariant, int(variant))
	}
	c := makeconfigs(variant)
	for _, opt := range options {
		opt(c)
	}
	size := c.nodesize
	if size < 4 {
		size = 4
	}

	m := &Manager{
		configs:  c,
		unique:   make(map[uniqueKey]int32, size),
		formulas: newFormulaRegistry(),
		vars:     make([]variable, 1, 64), // slot 0: reserved terminal pseudo-variable
	}
	m.nodes = make([]node, size)
	m.nodes[slotFalse] = node{expiry: 0}
	m.nodes[slotTerminal] = node{expiry: 0}
	for idx := size - 1; idx >= 2; idx-- {
		m.nodes[idx] = node{nextFree: m.freeHead}
		m.freeHead = int32(idx)
		m.freeCount++
	}
	m.age.current = _MINSYSTEMAGE
	m.universal = m.True()
	m.cacheInit(c)
	return m, nil
}

// Variant returns the reduction/adornment convention this Manager
// implements.
func (m *Manager) Variant() Variant {
	return m.variant
}

// False returns the Node denoting the empty combination/the Boolean
// constant false. Its representation depends on the Manager's Variant: a
// dedicated terminal for the non-complemented variants, the complement of
// True for the complemented ones.
func (m *Manager) False() Node {
	if m.variant.complemented() {
		return mkedge(slotTerminal, true, 0)
	}
	return mkedge(slotFalse, false, 0)
}

// True returns the Node denoting the full combination/the Boolean constant
// true: the single designated terminal node, shared by every variant.
func (m *Manager) True() Node {
	return mkedge(slotTerminal, false, 0)
}

// Size returns the number of nodes currently allocated in the Manager,
// including the reserved terminal slots but not the ones on the free list.
func (m *Manager) Size() int {
	return len(m.nodes) - m.freeCount
}

// Close releases every reference the Manager holds (formulas, caches, the
// protect stack) so its arena becomes eligible for a final Clean, or for
// the Go garbage collector once the Manager itself is dropped. A closed
// Manager must not be used again.
func (m *Manager) Close() {
	m.formulas = newFormulaRegistry()
	m.protect = nil
	m.vars = m.vars[:1]
	m.Clean()
}
