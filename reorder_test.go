// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evalBoolean walks a Robdd/RobddC diagram under a total variable
// assignment. It is test-only scaffolding, not part of the package's
// public surface: the Boolean operators themselves are out of scope for
// this core, but confirming a swap or a sift leaves every function's truth
// table unchanged needs *some* way to evaluate one.
func evalBoolean(m *Manager, n Node, assign map[int32]bool) bool {
	for {
		if n.idx == slotTerminal {
			return !n.mark
		}
		if n.idx == slotFalse {
			return false
		}
		nd := m.nodes[n.idx]
		next := nd.lo
		if assign[nd.variable] {
			next = nd.hi
		}
		if n.mark {
			next = next.negate()
		}
		n = next
	}
}

func allAssignments(vars []int32) []map[int32]bool {
	if len(vars) == 0 {
		return []map[int32]bool{{}}
	}
	rest := allAssignments(vars[1:])
	out := make([]map[int32]bool, 0, len(rest)*2)
	for _, r := range rest {
		for _, v := range []bool{false, true} {
			m := make(map[int32]bool, len(vars))
			for k, val := range r {
				m[k] = val
			}
			m[vars[0]] = v
			out = append(out, m)
		}
	}
	return out
}

func buildSample(t testing.TB, m *Manager) (Node, []int32) {
	t.Helper()
	x, err := m.FoaVariable("x")
	require.NoError(t, err)
	y, err := m.FoaVariable("y")
	require.NoError(t, err)
	z, err := m.FoaVariable("z")
	require.NoError(t, err)
	xv, _ := m.Ithvar(x)
	yv, _ := m.Ithvar(y)
	zv, _ := m.Ithvar(z)

	// f = if x then (if y then z else 0) else y
	inner, err := m.FoaNode(y, m.False(), zv, y)
	require.NoError(t, err)
	f, err := m.FoaNode(x, yv, inner, x)
	require.NoError(t, err)
	m.Protect(f)
	return f, []int32{x, y, z}
}

func TestSwapPreservesFunction(t *testing.T) {
	m := newManager(t, Robdd)
	f, vars := buildSample(t, m)

	before := make(map[string]bool)
	for _, a := range allAssignments(vars) {
		before[assignKey(a)] = evalBoolean(m, f, a)
	}

	x := vars[0]
	y := vars[1]
	require.NoError(t, m.Swap(x, y))

	for _, a := range allAssignments(vars) {
		assert.Equal(t, before[assignKey(a)], evalBoolean(m, f, a), "swap must not change the function's truth table")
	}
}

func assignKey(a map[int32]bool) string {
	s := ""
	for k := int32(0); k < 16; k++ {
		if v, ok := a[k]; ok {
			if v {
				s += "1"
			} else {
				s += "0"
			}
		}
	}
	return s
}

func TestSwapUpdatesOrder(t *testing.T) {
	m := newManager(t, Robdd)
	x, err := m.FoaVariable("x")
	require.NoError(t, err)
	y, err := m.FoaVariable("y")
	require.NoError(t, err)

	require.True(t, m.order.isSmaller(x, y))
	require.NoError(t, m.Swap(x, y))
	assert.True(t, m.order.isSmaller(y, x))
	assert.False(t, m.order.isSmaller(x, y))
}

func TestSiftPreservesFunctionAndTerminates(t *testing.T) {
	m := newManager(t, Robdd, Converge(true))
	f, vars := buildSample(t, m)

	before := make(map[string]bool)
	for _, a := range allAssignments(vars) {
		before[assignKey(a)] = evalBoolean(m, f, a)
	}

	require.NoError(t, m.Sift(vars[1]))

	for _, a := range allAssignments(vars) {
		assert.Equal(t, before[assignKey(a)], evalBoolean(m, f, a), "sifting must not change the function's truth table")
	}
}

func TestSiftingPreservesFunction(t *testing.T) {
	m := newManager(t, Robdd)
	f, vars := buildSample(t, m)

	before := make(map[string]bool)
	for _, a := range allAssignments(vars) {
		before[assignKey(a)] = evalBoolean(m, f, a)
	}

	require.NoError(t, m.Sifting(nil, true))

	for _, a := range allAssignments(vars) {
		assert.Equal(t, before[assignKey(a)], evalBoolean(m, f, a), "manager-wide sifting must not change any function's truth table")
	}
}

func TestSiftingRestrictedToSupportPreservesFunction(t *testing.T) {
	m := newManager(t, Robdd)
	f, vars := buildSample(t, m)
	// w falls outside f's support; it must not keep Sifting(&f, ...) from
	// running, and f's truth table must survive the restricted sift.
	_, err := m.FoaVariable("w")
	require.NoError(t, err)

	before := make(map[string]bool)
	for _, a := range allAssignments(vars) {
		before[assignKey(a)] = evalBoolean(m, f, a)
	}

	require.NoError(t, m.Sifting(&f, true))

	for _, a := range allAssignments(vars) {
		assert.Equal(t, before[assignKey(a)], evalBoolean(m, f, a), "a sift restricted to f's support must not change f's truth table")
	}

	ids := m.support(f)
	assert.ElementsMatch(t, vars, ids, "support must list exactly the variables f depends on")
}
