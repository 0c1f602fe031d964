// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

// uniqueKey is the hash-consing key for the node arena's unique table. We
// key directly on a comparable struct instead of packing a byte buffer the
// way the rudd package's "hudd" backend does (see its huddhash): the
// manual byte-packing there exists only to let that unique table be backed
// by alternative concurrent map implementations, a concern this package
// does not have since a Manager is documented as single-goroutine-only
// (see the Manager type's doc comment).
type uniqueKey struct {
	variable int32
	lo, hi   Node
}

// FoaNode is "find or add": the canonical node constructor spec.md §4.3
// describes as the contract an operator layer built on top of this package
// (ITE, AND/OR, Exist, Replace, ...) consumes. It returns the canonical
// Node for (variable, lo, hi), applying the reduction rule and, where
// relevant, the complement-edge and tag normalization of the Manager's
// Variant, then either finding an existing arena slot for the (normalized)
// triple or allocating a new one.
//
// tag is only consulted for Variant.tagged() managers; it records the
// variable the resulting edge would start at, before any levels were
// skipped by zero-suppression. Callers that are not reasoning about gaps
// should pass variable itself.
func (m *Manager) FoaNode(variable int32, lo, hi Node, tag int32) (Node, error) {
	switch {
	case m.variant == Robdd:
		if lo == hi {
			return lo, nil
		}
		return m.foaNode(variable, lo, hi, 0)

	case m.variant == RobddC:
		mark := false
		if hi.mark {
			lo, hi = lo.negate(), hi.negate()
			mark = true
		}
		if lo == hi {
			if mark {
				return lo.negate(), nil
			}
			return lo, nil
		}
		n, err := m.foaNode(variable, lo, hi, 0)
		if err != nil {
			return Node{}, err
		}
		if mark {
			return n.negate(), nil
		}
		return n, nil

	case m.variant == Zbdd:
		if hi.isFalse(m) {
			return lo, nil
		}
		return m.foaNode(variable, lo, hi, 0)

	case m.variant == ZbddC:
		mark := false
		if hi.mark {
			// Complement edges are only meaningful on the "then" branch
			// once it is known to be non-empty; an empty "then" branch is
			// handled by suppression below, uncomplemented.
			lo, hi = lo.negate(), hi.negate()
			mark = true
		}
		if hi.isFalse(m) {
			if mark {
				return lo.negate(), nil
			}
			return lo, nil
		}
		n, err := m.foaNode(variable, lo, hi, 0)
		if err != nil {
			return Node{}, err
		}
		if mark {
			return n.negate(), nil
		}
		return n, nil

	case m.variant == Tzbdd:
		if lo == hi && tag == variable {
			// Equal-children suppression (spec.md §3 invariant 2): a node
			// whose children coincide carries no information and may be
			// dropped in favour of either child, but only when no level
			// above this one has already been elided into the requested
			// tag — otherwise dropping it would erase the boundary between
			// the elided region and variable.
			return lo, nil
		}
		if hi.isFalse(m) {
			// Zero-suppression: fold this level into the tag of the
			// surviving edge instead of allocating a node for it.
			lo.tag = tag
			return lo, nil
		}
		n, err := m.foaNode(variable, lo, hi, tag)
		if err != nil {
			return Node{}, err
		}
		return n, nil

	default:
		return Node{}, m.wrapError(ErrUnsupportedVariant, "variant %s", m.variant)
	}
}

// foaNode is the hash-consing step shared by every variant once the
// reduction rule has already normalized (variable, lo, hi): look the
// triple up in the unique table, and allocate a fresh arena slot on a
// miss.
func (m *Manager) foaNode(variable int32, lo, hi Node, tag int32) (Node, error) {
	key := uniqueKey{variable: variable, lo: lo, hi: hi}
	if idx, ok := m.unique[key]; ok {
		return mkedge(idx, false, tag), nil
	}
	idx, err := m.allocNode(variable, lo, hi)
	if err != nil {
		return Node{}, err
	}
	m.unique[key] = idx
	return mkedge(idx, false, tag), nil
}

// allocNode pops a slot off the free list (growing the arena, and
// triggering a garbage collection first if necessary) and installs
// (variable, lo, hi) into it, threading it onto that variable's node list.
func (m *Manager) allocNode(variable int32, lo, hi Node) (int32, error) {
	if m.freeHead == 0 {
		if err := m.reclaimOrGrow(); err != nil {
			return 0, err
		}
	}
	idx := m.freeHead
	m.freeHead = m.nodes[idx].nextFree
	m.freeCount--

	m.nodes[idx] = node{
		variable: variable,
		lo:       lo,
		hi:       hi,
		expiry:   m.age.current,
	}
	m.linkToVariable(idx, variable)
	return idx, nil
}

// linkToVariable inserts node idx at the head of variable's node list.
func (m *Manager) linkToVariable(idx, variable int32) {
	v := &m.vars[variable]
	m.nodes[idx].listNext = v.head
	if v.head != 0 {
		m.nodes[v.head].listPrev = idx
	} else {
		v.tail = idx
	}
	v.head = idx
	v.live++
}

// unlinkFromVariable removes node idx from its variable's node list, used
// by the collector (gc.go) when reclaiming it and by reorder.go when a
// swap moves nodes between variables.
func (m *Manager) unlinkFromVariable(idx int32) {
	n := &m.nodes[idx]
	v := &m.vars[n.variable]
	if n.listPrev != 0 {
		m.nodes[n.listPrev].listNext = n.listNext
	} else {
		v.head = n.listNext
	}
	if n.listNext != 0 {
		m.nodes[n.listNext].listPrev = n.listPrev
	} else {
		v.tail = n.listPrev
	}
	v.live--
	n.listPrev, n.listNext = 0, 0
}
