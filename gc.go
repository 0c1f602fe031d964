// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

import (
	roaring "github.com/RoaringBitmap/roaring/v2"
)

// gcStats records garbage-collection counters, surfaced through Stats the
// same way the rudd package's gcstat does for its own collector.
type gcStats struct {
	runs    int // number of completed collections
	freed   int // total nodes reclaimed across every collection
	resizes int // number of node-table resizes
}

// Protect pins n against reclamation until the matching Unprotect (or
// UnprotectAll) call. It plays the role of rudd's pushref/popref around a
// recursive descent that must survive an internal, FoaNode-triggered
// collection: callers implementing operators on top of this package (and
// the core's own convert.go) push every intermediate result
// that is not yet reachable from a formula or a variable edge.
func (m *Manager) Protect(n Node) {
	m.protect = append(m.protect, n)
}

// Unprotect releases the most recently protected node not yet released.
func (m *Manager) Unprotect() {
	if len(m.protect) > 0 {
		m.protect = m.protect[:len(m.protect)-1]
	}
}

// UnprotectAll clears every currently protected node. Operators built on
// top of this package call it once their top-level result has been handed
// to AddFormula (or otherwise made reachable), the way rudd's initref
// clears the refstack before starting a fresh top-level operation.
func (m *Manager) UnprotectAll() {
	m.protect = m.protect[:0]
}

// mark performs a depth-first reachability scan from every current root —
// every live formula, every variable's varEdge/elemEdge, and every
// protected node — and returns the set of reachable arena indices as a
// roaring.Bitmap "selection mark" (spec.md §9's REDESIGN note on recursion
// through a manager-scoped counter): membership test in a fresh bitmap per
// call replaces a bit stolen from the node record. It is a
// diagnostic helper (Stats); the collector's own sweep does not call it,
// since lift (in collect, below) already performs an equivalent walk while
// also repairing expiry.
func (m *Manager) mark() *roaring.Bitmap {
	live := roaring.New()
	live.Add(uint32(slotFalse))
	live.Add(uint32(slotTerminal))

	var visit func(Node)
	visit = func(n Node) {
		if n.idx == slotFalse || n.idx == slotTerminal || live.Contains(uint32(n.idx)) {
			return
		}
		live.Add(uint32(n.idx))
		visit(m.nodes[n.idx].lo)
		visit(m.nodes[n.idx].hi)
	}

	visit(m.universal)
	m.formulas.each(func(_ string, root Node, _ int32) {
		visit(root)
	})
	for _, v := range m.vars[1:] {
		visit(v.varEdge)
		if v.elemEdge.idx != 0 || v.elemEdge.mark {
			visit(v.elemEdge)
		}
	}
	for _, n := range m.protect {
		visit(n)
	}
	return live
}

// reachableSize counts the nodes reachable from root alone, the way mark
// counts them for the whole Manager; MinimizeBDD/MaximizeBDD use it to
// measure a single named function instead of total manager size.
func (m *Manager) reachableSize(root Node) int {
	seen := roaring.New()
	var visit func(Node)
	visit = func(n Node) {
		if n.idx == slotFalse || n.idx == slotTerminal || seen.Contains(uint32(n.idx)) {
			return
		}
		seen.Add(uint32(n.idx))
		visit(m.nodes[n.idx].lo)
		visit(m.nodes[n.idx].hi)
	}
	visit(root)
	return int(seen.GetCardinality())
}

// Clean runs one garbage-collection epoch (spec.md §4.4): it advances the
// system age, drops every formula whose expiry has passed, lifts the
// expiry of every node still reachable from a surviving formula, a
// variable/element edge, or the protect stack, and reclaims every node
// that remains obsolete. It returns the number of nodes reclaimed.
//
// This module fuses spec.md's separate clean() (age tick plus formula
// bookkeeping) and gc() (the actual sweep) into the single call every
// realistic caller makes back to back; splitting them only adds a
// footgun where a caller forgets the second half. Purge and
// PurgeAndReorder below are the other two entry points spec.md lists.
func (m *Manager) Clean() int {
	return m.collect(0, 0, false)
}

// Purge runs a total collection (spec.md §4.4 step 1's purge branch):
// every anonymous formula is dropped regardless of its expiry, and every
// node's expiry is forced down first, so even a fortified or preserved
// node that has become otherwise unreachable is reclaimed.
func (m *Manager) Purge() int {
	return m.collect(0, 0, true)
}

// PurgeAndReorder purges the Manager and then sifts it (spec.md §4.4
// purge_and_reorder, routing through Sifting's §4.7 algorithm). f, when
// non-nil, names the function the caller cares about minimizing: Sifting
// narrows the variables it considers to f's own support.
func (m *Manager) PurgeAndReorder(f *Node, converge bool) error {
	m.Purge()
	return m.Sifting(f, converge)
}

// collect is the shared implementation behind Clean and Purge: a windowed
// collection is supported (targetLt/targetGeq both zero means "no
// window", i.e. every variable is eligible) for parity with spec.md
// §4.4's gc(target_lt, target_geq, purge, total) signature, though
// nothing in this package currently drives it windowed — Swap (reorder.go)
// never triggers a collection of its own, so sifting never needs the
// narrower form spec.md reserves it for.
func (m *Manager) collect(targetLt, targetGeq int32, purge bool) int {
	if m.local.active {
		m.seterror(ErrUsageRuleViolated, "cannot collect while a local-info scratchpad is active")
		return 0
	}
	windowed := targetLt != 0 || targetGeq != 0
	newAge := m.tick()

	m.formulas.dropObsolete(newAge, purge)
	if purge {
		for idx := range m.nodes {
			if idx == int(slotFalse) || idx == int(slotTerminal) {
				continue
			}
			if m.nodes[idx].variable != 0 {
				m.nodes[idx].expiry = 1
			}
		}
	}

	eligible := func(variable int32) bool {
		if !windowed {
			return true
		}
		if targetGeq != 0 && !(variable == targetGeq || m.order.isSmaller(targetGeq, variable)) {
			return false
		}
		if targetLt != 0 && !m.order.isSmaller(variable, targetLt) {
			return false
		}
		return true
	}

	lifted := roaring.New()
	var lift func(Node, int32)
	lift = func(n Node, exp int32) {
		if n.idx == slotFalse || n.idx == slotTerminal || lifted.Contains(uint32(n.idx)) {
			return
		}
		lifted.Add(uint32(n.idx))
		nd := &m.nodes[n.idx]
		if exp == 0 || nd.expiry == 0 {
			nd.expiry = 0
		} else if exp > nd.expiry {
			nd.expiry = exp
		}
		lift(nd.lo, exp)
		lift(nd.hi, exp)
	}
	lift(m.universal, 0)
	m.formulas.each(func(_ string, root Node, expiry int32) {
		lift(root, expiry)
	})
	for _, v := range m.vars[1:] {
		lift(v.varEdge, 0)
		if v.elemEdge.idx != 0 || v.elemEdge.mark {
			lift(v.elemEdge, 0)
		}
	}
	for _, n := range m.protect {
		lift(n, 0)
	}

	freed := 0
	for id := 1; id < len(m.vars); id++ {
		if !eligible(int32(id)) {
			continue
		}
		idx := m.vars[id].head
		for idx != 0 {
			next := m.nodes[idx].listNext
			n := &m.nodes[idx]
			live := n.expiry == 0 || n.expiry >= newAge
			if !live {
				m.unlinkFromVariable(idx)
				m.freeNode(idx)
				freed++
			}
			idx = next
		}
	}

	m.cacheReset()
	m.gcstat.runs++
	m.gcstat.freed += freed
	if !windowed {
		live := len(m.nodes) - m.freeCount
		if m.minfreenodes > 0 && live > 0 {
			threshold := len(m.nodes) * (100 - m.minfreenodes) / 100
			if live > threshold {
				m.growArena()
			}
		}
	}
	return freed
}

// freeNode returns arena slot idx to the free list and removes its unique
// table entry.
func (m *Manager) freeNode(idx int32) {
	n := m.nodes[idx]
	delete(m.unique, uniqueKey{variable: n.variable, lo: n.lo, hi: n.hi})
	m.nodes[idx] = node{nextFree: m.freeHead}
	m.freeHead = idx
	m.freeCount++
}

// reclaimOrGrow is called by allocNode when the free list is empty. It
// first tries a collection; if that does not free at least minfreenodes
// percent of the table it grows the arena instead, honouring
// maxnodeincrease and maxnodesize.
func (m *Manager) reclaimOrGrow() error {
	before := m.freeCount
	m.Clean()
	threshold := len(m.nodes) * m.minfreenodes / 100
	if m.freeCount > before && m.freeCount >= threshold {
		return nil
	}
	return m.growArena()
}

// growArena extends the node arena, bounded by maxnodeincrease and
// maxnodesize, linking every new slot onto the free list.
func (m *Manager) growArena() error {
	old := len(m.nodes)
	grow := old
	if m.maxnodeincrease > 0 && grow > m.maxnodeincrease {
		grow = m.maxnodeincrease
	}
	next := old + grow
	if m.maxnodesize > 0 {
		if old >= m.maxnodesize {
			return m.wrapError(ErrOutOfMemory, "node table already at its configured limit (%d)", m.maxnodesize)
		}
		if next > m.maxnodesize {
			next = m.maxnodesize
		}
	}
	if next <= old {
		return m.wrapError(ErrOutOfMemory, "cannot grow node table beyond %d", old)
	}
	grown := make([]node, next)
	copy(grown, m.nodes)
	m.nodes = grown
	for idx := old; idx < next; idx++ {
		m.nodes[idx] = node{nextFree: m.freeHead}
		m.freeHead = int32(idx)
		m.freeCount++
	}
	m.gcstat.resizes++
	m.cacheResize(next)
	return nil
}
