// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

import (
	"math"

	"github.com/google/btree"
)

// formulaEntry is one entry of the named-formula index, ordered
// alphabetically by name so that FindFormula and a prefix scan over
// ListFormulas can both run as a btree search instead of a linear scan.
//
// expiry follows spec.md §3/§4.5: 0 means persistent (never dropped by
// age), otherwise the formula is obsolete, and dropped on the next Clean,
// once the Manager's system age reaches or passes expiry.
type formulaEntry struct {
	name   string
	root   Node
	expiry int32
}

func lessFormula(a, b formulaEntry) bool {
	return a.name < b.name
}

// anonFormula is an anonymous registration: a root kept alive without a
// name, referenced only by the handle AddFormula returned for it.
type anonFormula struct {
	root   Node
	expiry int32
}

// formulaRegistry is the Manager's formula registry: every named formula,
// kept in alphabetical order in a github.com/google/btree.BTreeG for O(log
// n) lookup, plus every anonymous formula (a root the caller wants the
// collector to treat as live without giving it a name), kept in a plain
// map since anonymous formulas are never looked up by key, only walked.
//
// Slots "0" and "1" are reserved, matching the node arena's reserved slots:
// AddFormula rejects the names "0" and "1" so a lookup for the constant
// formulas never has to consult the registry at all.
type formulaRegistry struct {
	named    *btree.BTreeG[formulaEntry]
	anon     map[int32]anonFormula
	nextAnon int32
}

func newFormulaRegistry() *formulaRegistry {
	return &formulaRegistry{
		named: btree.NewG(32, lessFormula),
		anon:  make(map[int32]anonFormula),
	}
}

// expiryFor turns an add_formula "c" value (spec.md §4.5) into the expiry
// stamp to record: c < 0 marks the formula refreshed for the current epoch
// only (expiry = the current age, so it is dropped at the very next Clean
// unless re-added or re-refreshed before then); c == 0 is persistent
// (expiry = 0, never dropped by age); c > 0 preserves it across c-1
// further Clean cycles (expiry = current age + c), compacting first if
// that would overflow.
func (m *Manager) expiryFor(c int) int32 {
	switch {
	case c == 0:
		return 0
	case c < 0:
		return m.age.current
	default:
		if int64(m.age.current)+int64(c) > math.MaxInt32-1 {
			m.compact()
		}
		return m.age.current + int32(c)
	}
}

// AddFormula registers root under name with the preservation policy c
// (spec.md §4.5: c<0 refreshed-not-preserved, c==0 persistent, c>0
// preserved for c-1 further Clean cycles), making it a GC root until it is
// removed with RemoveFormula, aged out by Clean, or (for anonymous
// formulas) removed with RemoveAnonymous. An empty name registers an
// anonymous formula instead and returns a positive handle that
// RemoveAnonymous accepts; a non-empty name that already exists is
// overwritten, the way reassigning a named formula in Biddy replaces its
// previous root. Adding a formula prolongs its root's own node to at least
// the formula's expiry.
func (m *Manager) AddFormula(name string, root Node, c int) (int32, error) {
	if name == "0" || name == "1" {
		return 0, m.wrapError(ErrUsageRuleViolated, "formula name %q is reserved for a constant", name)
	}
	expiry := m.expiryFor(c)
	m.prolong(root, expiry)
	if name == "" {
		id := m.formulas.nextAnon + 1
		m.formulas.nextAnon = id
		m.formulas.anon[id] = anonFormula{root: root, expiry: expiry}
		return id, nil
	}
	m.formulas.named.ReplaceOrInsert(formulaEntry{name: name, root: root, expiry: expiry})
	return 0, nil
}

// prolong lifts the expiry of root's own node to at least exp (0 always
// wins, meaning fortified). It does not recurse into children: the full
// reachable-subgraph lift happens during collection (gc.go), since that is
// the only place that needs to walk the whole diagram; a fresh node that
// is about to be handed to AddFormula only needs its own slot protected
// from the window between "allocated" and "registered".
func (m *Manager) prolong(n Node, exp int32) {
	if n.idx == slotFalse || n.idx == slotTerminal {
		return
	}
	cur := m.nodes[n.idx].expiry
	if exp == 0 || cur == 0 {
		m.nodes[n.idx].expiry = 0
		return
	}
	if exp > cur {
		m.nodes[n.idx].expiry = exp
	}
}

// FindFormula returns the root registered under name, and whether it was
// found.
func (m *Manager) FindFormula(name string) (Node, bool) {
	switch name {
	case "0":
		return m.False(), true
	case "1":
		return m.universal, true
	}
	e, ok := m.formulas.named.Get(formulaEntry{name: name})
	return e.root, ok
}

// RemoveFormula unregisters a named formula. It is not an error to remove a
// name that does not exist. Removal reclaims nothing by itself: a later
// collection reclaims the formula's nodes once no other root reaches them
// and their expiry has passed. A formula added with c == 0 fortifies its
// root when added, and every collection while it is registered fortifies
// the nodes it reaches; fortified nodes are reclaimed only by Purge.
func (m *Manager) RemoveFormula(name string) {
	m.formulas.named.Delete(formulaEntry{name: name})
}

// RemoveAnonymous unregisters an anonymous formula handle returned by
// AddFormula("", root, c).
func (m *Manager) RemoveAnonymous(handle int32) {
	delete(m.formulas.anon, handle)
}

// ListFormulas returns the names of every currently registered named
// formula, in alphabetical order.
func (m *Manager) ListFormulas() []string {
	names := make([]string, 0, m.formulas.named.Len())
	m.formulas.named.Ascend(func(e formulaEntry) bool {
		names = append(names, e.name)
		return true
	})
	return names
}

// GetIth returns the i'th formula in registry order: named formulas first,
// alphabetically, followed by anonymous formulas in handle order. It
// reports false for an out-of-range index.
func (m *Manager) GetIth(i int) (name string, root Node, ok bool) {
	if i < 0 {
		return "", Node{}, false
	}
	n := m.formulas.named.Len()
	if i < n {
		idx := 0
		var found formulaEntry
		m.formulas.named.Ascend(func(e formulaEntry) bool {
			if idx == i {
				found = e
				return false
			}
			idx++
			return true
		})
		return found.name, found.root, true
	}
	j := i - n
	handles := m.formulas.anonHandles()
	if j >= len(handles) {
		return "", Node{}, false
	}
	return "", m.formulas.anon[handles[j]].root, true
}

// GetIthName is GetIth restricted to the name, for callers that do not need
// the root edge.
func (m *Manager) GetIthName(i int) (string, bool) {
	name, _, ok := m.GetIth(i)
	return name, ok
}

// DeleteIth removes the i'th formula, the way RemoveFormula/RemoveAnonymous
// would given its name or handle, reporting ErrBadArgument for an
// out-of-range index.
func (m *Manager) DeleteIth(i int) error {
	name, ok := m.GetIthName(i)
	if !ok {
		return m.wrapError(ErrBadArgument, "no formula at index %d", i)
	}
	if name != "" {
		m.RemoveFormula(name)
		return nil
	}
	n := m.formulas.named.Len()
	handles := m.formulas.anonHandles()
	j := i - n
	m.RemoveAnonymous(handles[j])
	return nil
}

// anonHandles returns every anonymous formula's handle, in ascending
// (registration) order; GetIth/DeleteIth use it to give anonymous entries
// a stable position past the alphabetic prefix.
func (r *formulaRegistry) anonHandles() []int32 {
	out := make([]int32, 0, len(r.anon))
	for h := range r.anon {
		out = append(out, h)
	}
	sortInt32s(out)
	return out
}

func sortInt32s(s []int32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// each calls fn once for every live root in the registry: every named
// formula (in alphabetical order) with its name and expiry, then every
// anonymous formula with an empty name. It is the iteration the
// collector's lift phase and Manager.mark rely on.
func (r *formulaRegistry) each(fn func(name string, root Node, expiry int32)) {
	r.named.Ascend(func(e formulaEntry) bool {
		fn(e.name, e.root, e.expiry)
		return true
	})
	for _, f := range r.anon {
		fn("", f.root, f.expiry)
	}
}

// dropObsolete removes every formula whose expiry is in the past relative
// to newAge (and, when purge is true, every anonymous formula regardless
// of its expiry): spec.md §4.4 step 1.
func (r *formulaRegistry) dropObsolete(newAge int32, purge bool) {
	var stale []formulaEntry
	r.named.Ascend(func(e formulaEntry) bool {
		if e.expiry != 0 && e.expiry < newAge {
			stale = append(stale, e)
		}
		return true
	})
	for _, e := range stale {
		r.named.Delete(e)
	}
	for h, f := range r.anon {
		if purge || (f.expiry != 0 && f.expiry < newAge) {
			delete(r.anon, h)
		}
	}
}

// compact rewrites every formula's expiry by shift, the way age.go's
// compact does for nodes; 0 (persistent) is left untouched.
func (r *formulaRegistry) compact(shift int32) {
	var entries []formulaEntry
	r.named.Ascend(func(e formulaEntry) bool {
		entries = append(entries, e)
		return true
	})
	for _, e := range entries {
		if e.expiry == 0 {
			continue
		}
		r.named.Delete(e)
		e.expiry -= shift
		if e.expiry < 1 {
			e.expiry = 1
		}
		r.named.ReplaceOrInsert(e)
	}
	for h, f := range r.anon {
		if f.expiry == 0 {
			continue
		}
		f.expiry -= shift
		if f.expiry < 1 {
			f.expiry = 1
		}
		r.anon[h] = f
	}
}
