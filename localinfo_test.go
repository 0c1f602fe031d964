// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLocalInfoCountsDistinctVariables(t *testing.T) {
	m := newManager(t, Robdd)
	x, err := m.FoaVariable("x")
	require.NoError(t, err)
	y, err := m.FoaVariable("y")
	require.NoError(t, err)
	yv, err := m.Ithvar(y)
	require.NoError(t, err)

	n, err := m.FoaNode(x, m.False(), yv, x)
	require.NoError(t, err)

	count, err := m.CreateLocalInfo(n)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	m.DeleteLocalInfo()
}

func TestCreateLocalInfoRejectsNesting(t *testing.T) {
	m := newManager(t, Robdd)
	x, err := m.FoaVariable("x")
	require.NoError(t, err)
	xv, err := m.Ithvar(x)
	require.NoError(t, err)

	_, err = m.CreateLocalInfo(xv)
	require.NoError(t, err)
	defer m.DeleteLocalInfo()

	_, err = m.CreateLocalInfo(xv)
	assert.Error(t, err)
}

func TestLocalInfoAccessorsRoundTrip(t *testing.T) {
	m := newManager(t, Robdd)
	x, err := m.FoaVariable("x")
	require.NoError(t, err)
	xv, err := m.Ithvar(x)
	require.NoError(t, err)

	_, err = m.CreateLocalInfo(xv)
	require.NoError(t, err)
	defer m.DeleteLocalInfo()

	_, ok := m.MintermCountOf(xv)
	assert.False(t, ok, "no count has been stashed yet")

	m.SetMintermCount(xv, big.NewInt(2))
	count, ok := m.MintermCountOf(xv)
	require.True(t, ok)
	assert.Equal(t, big.NewInt(2), count)

	m.SetPathSums(xv, 1, 0)
	p1, p0, ok := m.PathSumsOf(xv)
	require.True(t, ok)
	assert.Equal(t, 1.0, p1)
	assert.Equal(t, 0.0, p0)

	m.SetCopyPointer(xv, 42)
	ptr, ok := m.CopyPointerOf(xv)
	require.True(t, ok)
	assert.Equal(t, int32(42), ptr)

	m.SetEnumeratorIndex(xv, 7)
	idx, ok := m.EnumeratorIndexOf(xv)
	require.True(t, ok)
	assert.Equal(t, int32(7), idx)
}

func TestLocalInfoAccessorsNoOpWhenInactive(t *testing.T) {
	m := newManager(t, Robdd)
	x, err := m.FoaVariable("x")
	require.NoError(t, err)
	xv, err := m.Ithvar(x)
	require.NoError(t, err)

	m.SetMintermCount(xv, big.NewInt(1))
	_, ok := m.MintermCountOf(xv)
	assert.False(t, ok, "accessors must be inert when no scratchpad is active")
}

func TestCollectRejectsWhileLocalInfoActive(t *testing.T) {
	m := newManager(t, Robdd)
	x, err := m.FoaVariable("x")
	require.NoError(t, err)
	xv, err := m.Ithvar(x)
	require.NoError(t, err)

	_, err = m.CreateLocalInfo(xv)
	require.NoError(t, err)
	defer m.DeleteLocalInfo()

	freed := m.Clean()
	assert.Zero(t, freed)
	assert.True(t, m.Errored())
}
