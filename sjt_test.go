// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSJTVisitsEveryPermutation(t *testing.T) {
	m := newManager(t, Robdd)
	_, err := m.FoaVariable("x")
	require.NoError(t, err)
	_, err = m.FoaVariable("y")
	require.NoError(t, err)
	_, err = m.FoaVariable("z")
	require.NoError(t, err)

	count := 0
	require.NoError(t, m.SJT(func() error {
		count++
		return nil
	}))
	assert.Equal(t, 6, count, "SJT over 3 variables must visit all 3! = 6 permutations")
}

func TestSJTPreservesFunction(t *testing.T) {
	m := newManager(t, Robdd)
	f, vars := buildSample(t, m)

	before := make(map[string]bool)
	for _, a := range allAssignments(vars) {
		before[assignKey(a)] = evalBoolean(m, f, a)
	}

	require.NoError(t, m.SJT(func() error {
		for _, a := range allAssignments(vars) {
			if before[assignKey(a)] != evalBoolean(m, f, a) {
				t.Fatalf("function changed under a permutation visited by SJT")
			}
		}
		return nil
	}))
}

func TestMinimizeBDDNeverExceedsInitialSize(t *testing.T) {
	m := newManager(t, Robdd)
	_, vars := buildSample(t, m)
	_ = vars

	initial := m.Size()
	best, err := m.MinimizeBDD("")
	require.NoError(t, err)
	assert.LessOrEqual(t, best, initial)
}

func TestMinimizeBDDByNameMeasuresOnlyThatFormula(t *testing.T) {
	m := newManager(t, Robdd)
	f, _ := buildSample(t, m)
	_, err := m.AddFormula("f", f, 0)
	require.NoError(t, err)

	initial := m.reachableSize(f)
	best, err := m.MinimizeBDD("f")
	require.NoError(t, err)
	assert.LessOrEqual(t, best, initial)

	_, err = m.MinimizeBDD("missing")
	assert.Error(t, err, "an unknown formula name must be rejected")
}

func TestMaximizeBDDAtLeastInitialSize(t *testing.T) {
	m := newManager(t, Robdd)
	_, vars := buildSample(t, m)
	_ = vars

	initial := m.Size()
	best, err := m.MaximizeBDD("")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, best, initial)
}
