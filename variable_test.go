// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVariableDoesNotAllocate(t *testing.T) {
	m := newManager(t, Robdd)
	_, ok := m.GetVariable("x")
	assert.False(t, ok)

	id, err := m.FoaVariable("x")
	require.NoError(t, err)

	got, ok := m.GetVariable("x")
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestOrderTracksAllocationForRobdd(t *testing.T) {
	m := newManager(t, Robdd)
	x, err := m.FoaVariable("x")
	require.NoError(t, err)
	y, err := m.FoaVariable("y")
	require.NoError(t, err)

	// Robdd inserts at the bottom: the first variable allocated ends up on
	// top, the most recently allocated at the bottom.
	assert.True(t, m.IsHighest(x))
	assert.True(t, m.IsLowest(y))
	assert.True(t, m.IsSmaller(x, y))

	next, err := m.GetNext(x)
	require.NoError(t, err)
	assert.Equal(t, y, next)

	prev, err := m.GetPrev(y)
	require.NoError(t, err)
	assert.Equal(t, x, prev)

	ith, err := m.GetIthVar(1)
	require.NoError(t, err)
	assert.Equal(t, y, ith)
}

func TestOrderTracksAllocationForZbdd(t *testing.T) {
	m := newManager(t, Zbdd)
	x, err := m.FoaVariable("x")
	require.NoError(t, err)
	y, err := m.FoaVariable("y")
	require.NoError(t, err)

	// Zbdd inserts at the top: the most recently allocated variable ends up
	// on top.
	assert.True(t, m.IsHighest(y))
	assert.True(t, m.IsLowest(x))
}

func TestChangeVariableNameRejectsCollision(t *testing.T) {
	m := newManager(t, Robdd)
	_, err := m.FoaVariable("x")
	require.NoError(t, err)
	y, err := m.FoaVariable("y")
	require.NoError(t, err)

	err = m.ChangeVariableName(y, "x")
	assert.Error(t, err)

	err = m.ChangeVariableName(y, "z")
	require.NoError(t, err)
	got, ok := m.GetVariable("z")
	require.True(t, ok)
	assert.Equal(t, y, got)
	_, ok = m.GetVariable("y")
	assert.False(t, ok)
}

func TestAddElementByNameRejectsNonZeroSuppressed(t *testing.T) {
	m := newManager(t, Robdd)
	_, err := m.AddElementByName("x")
	assert.Error(t, err)
}

func TestUniversalFormulaGrowsWithDomain(t *testing.T) {
	m := newManager(t, Zbdd)
	one, ok := m.FindFormula("1")
	require.True(t, ok)
	assert.Equal(t, m.True(), one, "the universal set over an empty domain holds only the empty combination")

	_, err := m.FoaVariable("x")
	require.NoError(t, err)
	afterX, ok := m.FindFormula("1")
	require.True(t, ok)
	assert.NotEqual(t, one, afterX, "adding a variable must widen the universal set")

	_, err = m.FoaVariable("y")
	require.NoError(t, err)
	afterY, ok := m.FindFormula("1")
	require.True(t, ok)
	assert.NotEqual(t, afterX, afterY)
}

func TestVarEdgeRepairedOnDomainGrowth(t *testing.T) {
	m := newManager(t, Zbdd)
	x, err := m.FoaVariable("x")
	require.NoError(t, err)
	before, err := m.Ithvar(x)
	require.NoError(t, err)

	_, err = m.FoaVariable("y")
	require.NoError(t, err)
	after, err := m.Ithvar(x)
	require.NoError(t, err)

	assert.NotEqual(t, before, after, "inserting a topmore variable must repair x's own varEdge the same way it repairs the universal formula")
	assert.Equal(t, before, m.nodes[after.idx].lo, "the repaired edge must reduce to the pre-growth edge on both branches of the new variable")
	assert.Equal(t, before, m.nodes[after.idx].hi)
}

func TestVarEdgeUnaffectedForRobdd(t *testing.T) {
	m := newManager(t, Robdd)
	x, err := m.FoaVariable("x")
	require.NoError(t, err)
	before, err := m.Ithvar(x)
	require.NoError(t, err)

	_, err = m.FoaVariable("y")
	require.NoError(t, err)
	after, err := m.Ithvar(x)
	require.NoError(t, err)

	assert.Equal(t, before, after, "a non-zero-suppressed variant's varEdge never needs repairing: a missing variable already means don't-care")
}

func TestUniversalFormulaUnaffectedForRobdd(t *testing.T) {
	m := newManager(t, Robdd)
	before, ok := m.FindFormula("1")
	require.True(t, ok)

	_, err := m.FoaVariable("x")
	require.NoError(t, err)

	after, ok := m.FindFormula("1")
	require.True(t, ok)
	assert.Equal(t, before, after, "the constant-true formula never changes shape for a non-zero-suppressed variant")
	assert.Equal(t, m.True(), after)
}
