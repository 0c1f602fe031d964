// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

// nodesAt returns the arena indices of every node currently labelled with
// variable id, walking the per-variable doubly linked list threaded
// through node.listNext (see linkToVariable/unlinkFromVariable in
// unique.go).
func (m *Manager) nodesAt(id int32) []int32 {
	var out []int32
	for idx := m.vars[id].head; idx != 0; idx = m.nodes[idx].listNext {
		out = append(out, idx)
	}
	return out
}

// childrenAt returns the (lo, hi) pair that edge e contributes when it is
// being folded across a swap with variable b: if e currently sits at
// variable b, its own children (adjusted for e's complement mark); if not,
// e does not mention b, which the classical rule reads as "does not depend
// on b" (the pair is (e, e)) and Zbdd/ZbddC read as "b is absent" (the
// pair is (e, empty)). Tzbdd edges take the classical reading; their tags
// are not consulted here.
func (m *Manager) childrenAt(e Node, b int32) (lo, hi Node) {
	if e.idx == slotFalse || e.idx == slotTerminal || m.nodes[e.idx].variable != b {
		if m.variant.zeroSuppressed() && !m.variant.tagged() {
			return e, m.False()
		}
		return e, e
	}
	n := m.nodes[e.idx]
	lo, hi = n.lo, n.hi
	if e.mark {
		lo, hi = lo.negate(), hi.negate()
	}
	return lo, hi
}

// Swap exchanges the order positions of two variables that are currently
// adjacent (a immediately above b), applying the classical one-swap
// formula: every node at a is rebuilt in place, one level down, from the
// four combinations of a's children with b's (a node that does not depend
// on b at all passes through untouched). The bitmatrix and linked-list
// order are then updated in O(1) by orderTable.swapAdjacent, since a and
// b's mutual relation is the only one that changes.
//
// Swap disables the operation caches for its duration: a cached result
// keyed on the pre-swap shape of a node that gets rebuilt in place would
// silently go stale otherwise.
func (m *Manager) Swap(a, b int32) error {
	if a <= 0 || int(a) >= len(m.vars) || b <= 0 || int(b) >= len(m.vars) {
		return m.wrapError(ErrBadArgument, "unknown variable in Swap(%d, %d)", a, b)
	}
	if m.vars[a].next != b {
		return m.wrapError(ErrUsageRuleViolated, "variables %d and %d are not adjacent in the current order", a, b)
	}
	m.DisableCaches()
	defer m.EnableCaches()

	// Only a node with a child at b changes; any other node at a already
	// has its final shape once b sits above it.
	var affected []int32
	for _, idx := range m.nodesAt(a) {
		n := m.nodes[idx]
		if m.nodes[n.lo.idx].variable == b || m.nodes[n.hi.idx].variable == b {
			affected = append(affected, idx)
		}
	}
	// Each affected node costs at most two allocations. Growing up front
	// keeps allocNode from falling back on a collection mid-swap.
	for m.freeCount < 2*len(affected) {
		if err := m.growArena(); err != nil {
			return err
		}
	}
	// Remove every affected node's unique-table entry up front, so that
	// the FoaNode calls below, which may legitimately want to reuse one of
	// these slots as a *new* level-a node, never confuse a stale entry
	// for a live one.
	for _, idx := range affected {
		n := m.nodes[idx]
		delete(m.unique, uniqueKey{variable: a, lo: n.lo, hi: n.hi})
	}

	type rebuilt struct {
		idx    int32
		lo, hi Node
	}
	plans := make([]rebuilt, 0, len(affected))
	for _, idx := range affected {
		n := m.nodes[idx]
		f00, f01 := m.childrenAt(n.lo, b)
		f10, f11 := m.childrenAt(n.hi, b)
		newlo, err := m.FoaNode(a, f00, f10, a)
		if err != nil {
			return err
		}
		newhi, err := m.FoaNode(a, f01, f11, a)
		if err != nil {
			return err
		}
		plans = append(plans, rebuilt{idx, newlo, newhi})
	}

	for _, p := range plans {
		m.unlinkFromVariable(p.idx)
		m.nodes[p.idx] = node{variable: b, lo: p.lo, hi: p.hi, expiry: m.age.current}
		m.linkToVariable(p.idx, b)
		m.unique[uniqueKey{variable: b, lo: p.lo, hi: p.hi}] = p.idx
	}

	m.order.swapAdjacent(a, b, m.vars)
	return nil
}

// size counts live nodes; Sift uses it to measure the effect of a
// candidate position.
func (m *Manager) size() int {
	return len(m.nodes) - m.freeCount
}

// Sift reorders the variable id by Rudell's sifting heuristic: move it,
// one adjacent swap at a time, first to the top of the order and then all
// the way to the bottom (tracking the diagram size at every position
// along the way), and leave it at whichever position produced the fewest
// nodes. Siftmaxsize and Siftmaxdiv bound how far an unpromising direction
// is explored before giving up on it. With Converge enabled, Sift repeats
// full sweeps over every variable, each one visiting variables in order of
// greatest live count first (see sweepOnce), until a sweep moves nothing.
func (m *Manager) Sift(id int32) error {
	if id <= 0 || int(id) >= len(m.vars) {
		return m.wrapError(ErrBadArgument, "unknown variable %d in Sift", id)
	}
	if err := m.sift1(id); err != nil {
		return err
	}
	if !m.converge {
		return nil
	}
	for {
		moved, err := m.sweepOnce(nil)
		if err != nil {
			return err
		}
		if !moved {
			return nil
		}
	}
}

// support returns every variable id f depends on, each listed once; nil
// for a constant f, meaning there is nothing to narrow a sift down to.
func (m *Manager) support(f Node) []int32 {
	seenVar := make(map[int32]bool)
	seenNode := make(map[int32]bool)
	var out []int32
	var visit func(Node)
	visit = func(n Node) {
		if n.idx == slotFalse || n.idx == slotTerminal || seenNode[n.idx] {
			return
		}
		seenNode[n.idx] = true
		nd := m.nodes[n.idx]
		if !seenVar[nd.variable] {
			seenVar[nd.variable] = true
			out = append(out, nd.variable)
		}
		visit(nd.lo)
		visit(nd.hi)
	}
	visit(f)
	return out
}

// sweepOnce runs one full sifting sweep (spec.md §4.7 steps 2-8): every
// eligible variable (every variable, when eligible is nil) is sifted
// exactly once, picking at each step the still-unsifted eligible variable
// with the greatest live node count — the heuristic's rationale is that
// the variable carrying the most nodes has the most to gain from a better
// position. It reports whether the sweep changed the live node count.
func (m *Manager) sweepOnce(eligible map[int32]bool) (bool, error) {
	pending := make(map[int32]bool)
	for id := int32(1); id < int32(len(m.vars)); id++ {
		if eligible == nil || eligible[id] {
			pending[id] = true
		}
	}
	moved := false
	for len(pending) > 0 {
		next := int32(0)
		bestLive := -1
		for id := int32(1); id < int32(len(m.vars)); id++ {
			if !pending[id] {
				continue
			}
			if live := m.vars[id].live; live > bestLive {
				bestLive = live
				next = id
			}
		}
		delete(pending, next)
		before := m.size()
		if err := m.sift1(next); err != nil {
			return false, err
		}
		if m.size() != before {
			moved = true
		}
	}
	return moved, nil
}

// Sifting is the manager-wide reordering entry point (spec.md §4.7):
// sweepOnce picks, each round, the unsifted variable with the greatest
// live count, until every eligible variable has been sifted once; with
// converge it repeats full sweeps until one moves nothing (step 9).
//
// When f is non-nil, eligibility is narrowed to the variables f depends
// on (support), concentrating the search on the part of the order that
// shapes f, the way spec.md's tmp-manager isolation does — but every swap
// still rewrites the one shared node arena, the same as Swap always does,
// rather than discovering an order in an isolated copy and then having to
// translate it back through another round of swaps on the real Manager;
// see DESIGN.md for the full reasoning behind that simplification.
func (m *Manager) Sifting(f *Node, converge bool) error {
	var eligible map[int32]bool
	if f != nil {
		if ids := m.support(*f); len(ids) > 0 {
			eligible = make(map[int32]bool, len(ids))
			for _, id := range ids {
				eligible[id] = true
			}
		}
	}
	if _, err := m.sweepOnce(eligible); err != nil {
		return err
	}
	if !converge {
		return nil
	}
	for {
		moved, err := m.sweepOnce(eligible)
		if err != nil {
			return err
		}
		if !moved {
			return nil
		}
	}
}

// sift1 performs one sifting pass for a single variable.
func (m *Manager) sift1(id int32) error {
	startSize := m.size()
	bestSize := startSize
	bestPos := 0 // offset from the starting position, signed

	// Move up to the top, recording size at each step.
	pos := 0
	for m.vars[id].prev != 0 {
		above := m.vars[id].prev
		if err := m.Swap(above, id); err != nil {
			return err
		}
		pos--
		if s := m.size(); s < bestSize {
			bestSize = s
			bestPos = pos
		}
		if s := m.size(); s > bestSize+m.siftmaxsize || s > startSize*m.siftmaxdiv {
			break
		}
	}
	// Move back down through the starting point and on to the bottom.
	for m.vars[id].next != 0 {
		below := m.vars[id].next
		if err := m.Swap(id, below); err != nil {
			return err
		}
		pos++
		if s := m.size(); s < bestSize {
			bestSize = s
			bestPos = pos
		}
		if s := m.size(); s > bestSize+m.siftmaxsize || s > startSize*m.siftmaxdiv {
			break
		}
	}
	// Move back to the best position found, walking from the bottom.
	for pos > bestPos {
		above := m.vars[id].prev
		if err := m.Swap(above, id); err != nil {
			return err
		}
		pos--
	}
	for pos < bestPos {
		below := m.vars[id].next
		if err := m.Swap(id, below); err != nil {
			return err
		}
		pos++
	}
	return nil
}
