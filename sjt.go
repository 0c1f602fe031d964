// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

// SJT enumerates every permutation of the Manager's variables using the
// Steinhaus-Johnson-Trotter algorithm: each successive permutation is
// reached from the previous one by exactly one adjacent transposition, so
// every step is a single call to Swap. fn is called once per permutation,
// starting with the Manager's current order; it should not itself call
// Swap or Sift, since that would desynchronize SJT's own bookkeeping of
// which element is free to move in which direction.
//
// With n variables this visits all n! orders, so SJT is only practical for
// small variable counts; it exists to compute an exhaustive baseline
// (MinimizeBDD, MaximizeBDD) to compare a heuristic like Sift against, not
// as a reordering strategy in its own right.
func (m *Manager) SJT(fn func() error) error {
	n := len(m.vars) - 1
	if n <= 1 {
		return fn()
	}
	ids := make([]int32, 0, n)
	for v := m.order.top; v != 0; v = m.vars[v].next {
		ids = append(ids, v)
	}

	perm := make([]int, n)  // perm[pos] = rank currently at position pos
	posOf := make([]int, n) // posOf[rank] = position currently holding rank
	dir := make([]int8, n)  // dir[rank] = -1 (points toward lower positions) or +1
	for i := 0; i < n; i++ {
		perm[i], posOf[i], dir[i] = i, i, -1
	}

	if err := fn(); err != nil {
		return err
	}

	for {
		mobile := -1
		for rank := n - 1; rank >= 0; rank-- {
			pos := posOf[rank]
			target := pos + int(dir[rank])
			if target < 0 || target >= n {
				continue
			}
			if perm[target] < rank {
				mobile = rank
				break
			}
		}
		if mobile == -1 {
			return nil // every permutation has been visited
		}

		pos := posOf[mobile]
		target := pos + int(dir[mobile])
		other := perm[target]
		var err error
		if target > pos {
			err = m.Swap(ids[pos], ids[target])
		} else {
			err = m.Swap(ids[target], ids[pos])
		}
		if err != nil {
			return err
		}
		ids[pos], ids[target] = ids[target], ids[pos]
		perm[pos], perm[target] = perm[target], perm[pos]
		posOf[mobile], posOf[other] = target, pos
		for r := mobile + 1; r < n; r++ {
			dir[r] = -dir[r]
		}

		if err := fn(); err != nil {
			return err
		}
	}
}

// extremizeSize runs SJT to exhaustion, tracking the smallest (minimize
// true) or largest (false) value the size measure takes across every
// permutation. With name empty the measure is the Manager's total live
// node count (Manager.Size); with name set, it is reachableSize of that
// formula alone (spec.md §4.8's minimize_bdd(name)/maximize_bdd(name)),
// so the search reports how small or large one function's own diagram can
// be made, independent of what else the Manager happens to hold. It
// leaves the Manager in whichever order SJT's last transposition
// produced, not necessarily the best one found: callers that need the
// Manager actually parked at the best order should follow up with
// Manager.Sifting, the same way a caller would use this exhaustive count
// as a baseline to validate Sifting's heuristic result against, not as a
// substitute for it.
func (m *Manager) extremizeSize(minimize bool, name string) (int, error) {
	measure := m.Size
	if name != "" {
		root, ok := m.FindFormula(name)
		if !ok {
			return 0, m.wrapError(ErrBadArgument, "no formula named %q", name)
		}
		measure = func() int { return m.reachableSize(root) }
	}

	best := measure()
	err := m.SJT(func() error {
		sz := measure()
		if minimize && sz < best {
			best = sz
		}
		if !minimize && sz > best {
			best = sz
		}
		return nil
	})
	return best, err
}

// MinimizeBDD returns the smallest node count achievable over every
// variable order, found by exhaustive search via SJT. With name empty
// that is the Manager's total live node count; with name set, it is the
// smallest size reachable by the single formula registered under that
// name (spec.md §4.8). See extremizeSize for the caveat about the
// Manager's order after the call returns.
func (m *Manager) MinimizeBDD(name string) (int, error) {
	return m.extremizeSize(true, name)
}

// MaximizeBDD returns the largest node count reachable over every
// variable order, found by exhaustive search via SJT. With name empty
// that is the Manager's total live node count; with name set, it is the
// largest size reachable by the single formula registered under that name
// (spec.md §4.8). See extremizeSize for the caveat about the Manager's
// order after the call returns.
func (m *Manager) MaximizeBDD(name string) (int, error) {
	return m.extremizeSize(false, name)
}
