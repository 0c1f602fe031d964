// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyPreservesFunctionAcrossManagers(t *testing.T) {
	src := newManager(t, Robdd)
	f, vars := buildSample(t, src)

	dst := newManager(t, Robdd)
	varMap := make(map[int32]int32, len(vars))
	for _, v := range vars {
		name := src.VariableName(v)
		id, err := dst.FoaVariable(name)
		require.NoError(t, err)
		varMap[v] = id
	}

	copied, err := dst.Copy(src, f, varMap)
	require.NoError(t, err)
	dst.Protect(copied)

	for _, a := range allAssignments(vars) {
		da := make(map[int32]bool, len(a))
		for k, v := range a {
			da[varMap[k]] = v
		}
		assert.Equal(t, evalBoolean(src, f, a), evalBoolean(dst, copied, da))
	}
}

func TestConvertRobddToZbddIsDeterministic(t *testing.T) {
	src := newManager(t, Robdd)
	x, err := src.FoaVariable("x")
	require.NoError(t, err)
	y, err := src.FoaVariable("y")
	require.NoError(t, err)
	xv, err := src.Ithvar(x)
	require.NoError(t, err)
	src.Protect(xv)

	dst := newManager(t, Zbdd)
	dx, err := dst.FoaVariable("x")
	require.NoError(t, err)
	dy, err := dst.FoaVariable("y")
	require.NoError(t, err)
	require.Equal(t, x, dx)
	require.Equal(t, y, dy)

	order := []int32{x, y}
	first, err := dst.Convert(src, xv, order)
	require.NoError(t, err)
	dst.Protect(first)

	second, err := dst.Convert(src, xv, order)
	require.NoError(t, err)
	assert.Equal(t, first, second, "converting the same source function twice must hash-cons onto the same node")
}
