// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

import "math/big"

// localRecord is the per-node scratch slot a local-info pass attaches to
// one reachable node of the diagram CreateLocalInfo was given. Every field
// is optional scratch space for whatever traversal the caller is running;
// none of them is written by this package itself.
type localRecord struct {
	mintermCount       *big.Int
	pathSum1, pathSum0 float64
	copyPointer        int32
	enumeratorIndex    int32
}

// localInfo is the Manager's local-info scratchpad (spec.md §4.10): a
// caller-driven traversal creates one record per node reachable from a
// chosen root, uses the typed accessors below to stash intermediate
// results at each node while it walks the diagram bottom-up, and deletes
// the scratchpad once done. Only one scratchpad may be active on a
// Manager at a time, the same single-active-traversal discipline the
// rudd package enforces around its own reference-counted recursion.
//
// This package stops at the mechanism: the accumulators a caller fills in
// (satisfying-assignment counts, path weights, cross-Manager copy
// pointers, permutation indices) are computed by the caller, not by this
// package, which does not implement minterm counting, path counting, or
// any other statistic on top of it.
type localInfo struct {
	active  bool
	records map[int32]*localRecord
}

// CreateLocalInfo activates a scratchpad over every node reachable from f
// (including f.idx itself, when f is not a terminal) and returns the
// number of distinct variables referenced among those nodes. It fails
// with ErrUsageRuleViolated if a scratchpad is already active.
func (m *Manager) CreateLocalInfo(f Node) (int, error) {
	if m.local.active {
		return 0, m.wrapError(ErrUsageRuleViolated, "local-info scratchpad already in use")
	}
	records := make(map[int32]*localRecord)
	seenVar := make(map[int32]bool)

	var visit func(Node)
	visit = func(n Node) {
		if n.idx == slotFalse || n.idx == slotTerminal {
			return
		}
		if _, ok := records[n.idx]; ok {
			return
		}
		records[n.idx] = &localRecord{}
		seenVar[m.nodes[n.idx].variable] = true
		visit(m.nodes[n.idx].lo)
		visit(m.nodes[n.idx].hi)
	}
	visit(f)

	m.local = localInfo{active: true, records: records}
	return len(seenVar), nil
}

// DeleteLocalInfo deactivates the scratchpad, discarding every record.
func (m *Manager) DeleteLocalInfo() {
	m.local = localInfo{}
}

// record returns the scratch record for n, or nil if no scratchpad is
// active or n was not reachable from the root CreateLocalInfo was given.
func (m *Manager) record(n Node) *localRecord {
	if !m.local.active {
		return nil
	}
	return m.local.records[n.idx]
}

// SetMintermCount stashes a caller-computed minterm count at n.
func (m *Manager) SetMintermCount(n Node, count *big.Int) {
	if r := m.record(n); r != nil {
		r.mintermCount = count
	}
}

// MintermCountOf returns the minterm count previously stashed at n, if any.
func (m *Manager) MintermCountOf(n Node) (*big.Int, bool) {
	r := m.record(n)
	if r == nil || r.mintermCount == nil {
		return nil, false
	}
	return r.mintermCount, true
}

// SetPathSums stashes a caller-computed pair of root-to-terminal path
// weights at n: path1 along the 1-paths, path0 along the 0-paths.
func (m *Manager) SetPathSums(n Node, path1, path0 float64) {
	if r := m.record(n); r != nil {
		r.pathSum1, r.pathSum0 = path1, path0
	}
}

// PathSumsOf returns the path weights stashed at n. ok reports whether n
// has a record in the active scratchpad; a record whose path weights were
// never set reads as zero with ok true.
func (m *Manager) PathSumsOf(n Node) (path1, path0 float64, ok bool) {
	r := m.record(n)
	if r == nil {
		return 0, 0, false
	}
	return r.pathSum1, r.pathSum0, true
}

// SetCopyPointer stashes the arena index n was copied to in another
// Manager, the way convert.go's Copy could use this scratchpad instead of
// its own map-based memo when the caller wants the mapping to outlive one
// Copy call.
func (m *Manager) SetCopyPointer(n Node, idx int32) {
	if r := m.record(n); r != nil {
		r.copyPointer = idx
	}
}

// CopyPointerOf returns the copy-target index stashed at n. The second
// return value reports whether n has a record in the active scratchpad,
// not whether this field was set: an unset index reads as 0 with true.
func (m *Manager) CopyPointerOf(n Node) (int32, bool) {
	r := m.record(n)
	if r == nil {
		return 0, false
	}
	return r.copyPointer, true
}

// SetEnumeratorIndex stashes a caller-assigned enumeration position at n.
func (m *Manager) SetEnumeratorIndex(n Node, idx int32) {
	if r := m.record(n); r != nil {
		r.enumeratorIndex = idx
	}
}

// EnumeratorIndexOf returns the enumeration position stashed at n. The
// second return value reports whether n has a record in the active
// scratchpad; an unset position reads as 0 with true.
func (m *Manager) EnumeratorIndexOf(n Node) (int32, bool) {
	r := m.record(n)
	if r == nil {
		return 0, false
	}
	return r.enumeratorIndex, true
}
