// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

// Node is the public handle returned by the core's constructors. It packs a
// reference to a canonical vertex in a Manager's arena together with the
// complement mark and top tag adornments used by the variants that support
// them.
//
// A Node is only meaningful relative to the Manager that produced it;
// mixing Nodes from two different Managers is a usage error the caller must
// avoid. Node is comparable and can be used as a map key or inside other
// structs. The zero value refers to arena slot 0, the constant-0 terminal
// of the variants without complement edges (and unused by the others); it
// is also what error paths return in place of a result, so use
// Manager.False to name the constant.
type Node struct {
	idx  int32 // index into the Manager's node arena
	mark bool  // complement mark; always false when the variant has none
	tag  int32 // top variable tag (Tzbdd only); 0 elsewhere
}

// reserved arena slots: every Manager allocates these two up front and
// never returns them to the free list.
const (
	slotFalse    int32 = 0 // the constant-0 terminal, for variants without complement edges
	slotTerminal int32 = 1 // the single constant-1 terminal, shared by every variant
)

func mkedge(idx int32, mark bool, tag int32) Node {
	return Node{idx: idx, mark: mark, tag: tag}
}

// negate flips the complement mark of an edge. Only meaningful for variants
// with Variant.complemented() true.
func (n Node) negate() Node {
	n.mark = !n.mark
	return n
}

// isFalse reports whether n denotes the false/empty-set constant of m. The
// comparison ignores n.tag: a Tzbdd suppression fold can leave a nonzero tag
// on an edge that still points at the false terminal (see FoaNode's Tzbdd
// branch), and that tag carries no meaning once there is no node left below
// it to index into.
func (n Node) isFalse(m *Manager) bool {
	if m.variant.complemented() {
		return n.idx == slotTerminal && n.mark
	}
	return n.idx == slotFalse
}

// isTrue reports whether n denotes the true/full-set constant of m. See
// isFalse for why n.tag is ignored.
func (n Node) isTrue(m *Manager) bool {
	return n.idx == slotTerminal && !n.mark
}

// node is an internal arena record: a variable together with its low and
// high successor edges, plus the bookkeeping used by the unique table, the
// per-variable ordering list (order.go), and the age-based collector
// (age.go, gc.go).
type node struct {
	variable int32 // index into the Manager's variable table; 0 for both terminals
	lo, hi   Node
	expiry   int32 // system age at which this node becomes collectible
	listPrev int32 // per-variable doubly linked list, 0 == no neighbour
	listNext int32
	nextFree int32 // meaningful only while the slot sits on the free list
}
