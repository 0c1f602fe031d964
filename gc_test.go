// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanReclaimsUnreachableNodes(t *testing.T) {
	m := newManager(t, Robdd)
	x, err := m.FoaVariable("x")
	require.NoError(t, err)
	xv, err := m.Ithvar(x)
	require.NoError(t, err)

	n, err := m.FoaNode(x, m.False(), xv, x)
	require.NoError(t, err)
	_ = n

	before := m.Size()
	freed := m.Clean()
	assert.Greater(t, freed, 0, "an orphan node with no surviving reference should be reclaimed")
	assert.Less(t, m.Size(), before)
}

func TestCleanPreservesNamedFormula(t *testing.T) {
	m := newManager(t, Robdd)
	x, err := m.FoaVariable("x")
	require.NoError(t, err)
	xv, err := m.Ithvar(x)
	require.NoError(t, err)

	n, err := m.FoaNode(x, m.False(), xv, x)
	require.NoError(t, err)
	_, err = m.AddFormula("phi", n, 0)
	require.NoError(t, err)

	m.Clean()
	got, ok := m.FindFormula("phi")
	require.True(t, ok)
	assert.Equal(t, n, got, "a named formula's root must survive a collection")
}

func TestCleanPreservesProtectedNode(t *testing.T) {
	m := newManager(t, Robdd)
	x, err := m.FoaVariable("x")
	require.NoError(t, err)
	xv, err := m.Ithvar(x)
	require.NoError(t, err)

	n, err := m.FoaNode(x, m.False(), xv, x)
	require.NoError(t, err)
	m.Protect(n)
	defer m.Unprotect()

	m.Clean()
	// A protected node must still be addressable through FoaNode without
	// allocating a second copy: asking for the same triple again should
	// find the surviving node rather than creating a duplicate.
	again, err := m.FoaNode(x, m.False(), xv, x)
	require.NoError(t, err)
	assert.Equal(t, n, again)
}

func TestCleanIsIdempotent(t *testing.T) {
	m := newManager(t, Robdd)
	_, err := m.FoaVariable("x")
	require.NoError(t, err)

	first := m.Clean()
	second := m.Clean()
	assert.Zero(t, second, "running Clean again with nothing new allocated should reclaim nothing")
	_ = first
}

func TestPurgeAndReorderKeepsNamedFormula(t *testing.T) {
	m := newManager(t, Robdd)
	x, err := m.FoaVariable("x")
	require.NoError(t, err)
	y, err := m.FoaVariable("y")
	require.NoError(t, err)
	xv, err := m.Ithvar(x)
	require.NoError(t, err)
	yv, err := m.Ithvar(y)
	require.NoError(t, err)

	n, err := m.FoaNode(x, m.False(), yv, x)
	require.NoError(t, err)
	_, err = m.AddFormula("phi", n, 0)
	require.NoError(t, err)
	_ = xv

	require.NoError(t, m.PurgeAndReorder(&n, true))

	got, ok := m.FindFormula("phi")
	require.True(t, ok)
	assert.Equal(t, n, got, "purge_and_reorder must not disturb a surviving formula's root")
}

func TestPurgeAndReorderWithoutFSiftsWholeManager(t *testing.T) {
	m := newManager(t, Robdd)
	_, err := m.FoaVariable("x")
	require.NoError(t, err)
	_, err = m.FoaVariable("y")
	require.NoError(t, err)

	require.NoError(t, m.PurgeAndReorder(nil, false))
}

func TestAgeAdvancesWithTick(t *testing.T) {
	m := newManager(t, Robdd)
	start := m.Age()
	next := m.Tick()
	assert.Equal(t, start+1, next)
	assert.Equal(t, next, m.Age())
}
