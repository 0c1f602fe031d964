// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

// Copy translates root, a Node belonging to src, into an equivalent Node
// in dst. Both Managers must implement the same Variant; varMap supplies
// the destination variable id for every source variable id root's
// function depends on (FoaVariable the destination variables yourself,
// typically under matching names, before calling Copy).
//
// Copy memoizes on the source Node so a diagram with shared subgraphs is
// only walked once; the memo is a plain map keyed on src's Node rather
// than the local-info scratchpad in localinfo.go, since that scratchpad
// only ever holds per-node data local to one Manager, and Copy's memo
// entries are themselves Nodes belonging to a second, different Manager.
func (dst *Manager) Copy(src *Manager, root Node, varMap map[int32]int32) (Node, error) {
	if dst.variant != src.variant {
		return Node{}, dst.wrapError(ErrUsageRuleViolated, "Copy requires src and dst to share a Variant (got %s and %s)", src.variant, dst.variant)
	}
	memo := make(map[Node]Node)
	// Every node built here stays protected until Copy returns, so that a
	// collection triggered by a later FoaNode cannot reclaim it.
	base := len(dst.protect)
	defer func() { dst.protect = dst.protect[:base] }()
	var rec func(Node) (Node, error)
	rec = func(e Node) (Node, error) {
		if e.idx == slotFalse || e.idx == slotTerminal {
			if e.isFalse(src) {
				return dst.False(), nil
			}
			return dst.True(), nil
		}
		if v, ok := memo[e]; ok {
			return v, nil
		}
		n := src.nodes[e.idx]
		lo, hi := n.lo, n.hi
		if e.mark {
			lo, hi = lo.negate(), hi.negate()
		}
		dlo, err := rec(lo)
		if err != nil {
			return Node{}, err
		}
		dhi, err := rec(hi)
		if err != nil {
			return Node{}, err
		}
		dvar, ok := varMap[n.variable]
		if !ok {
			return Node{}, dst.wrapError(ErrBadArgument, "no destination variable mapped for source variable %d", n.variable)
		}
		res, err := dst.FoaNode(dvar, dlo, dhi, dvar)
		if err != nil {
			return Node{}, err
		}
		dst.Protect(res)
		memo[e] = res
		return res, nil
	}
	return rec(root)
}

// CopyFormula copies the formula named srcName from src into dst under
// dstName, with preservation policy c (see AddFormula), translating its
// root with Copy along the way. It is a thin convenience wrapper spec.md
// §4.9 lists as its own operation; the copy itself is exactly Copy plus
// AddFormula, so there is nothing variant-specific left for this function
// to do on its own.
func (dst *Manager) CopyFormula(src *Manager, srcName, dstName string, varMap map[int32]int32, c int) error {
	root, ok := src.FindFormula(srcName)
	if !ok {
		return dst.wrapError(ErrBadArgument, "no formula named %q in source manager", srcName)
	}
	converted, err := dst.Copy(src, root, varMap)
	if err != nil {
		return err
	}
	_, err = dst.AddFormula(dstName, converted, c)
	return err
}

// Convert translates root, a Node belonging to src, into the equivalent
// Node in dst, where src and dst may implement different Variants — the
// direct ROBDD/ZBDD/TZBDD converters. order lists, top to bottom, every
// variable id the two Managers have in common (callers comparing a ROBDD
// function against a ZBDD combination set over "the same" variables are
// expected to have allocated matching ids, e.g. via matching names, in
// both Managers beforehand).
//
// The conversion exploits the fact that the two reduction rules disagree
// only about what may be elided: the classical rule elides a variable the
// function does not depend on (low == high); the zero-suppressed rule
// elides a variable known to be absent (high == empty). Converting into a
// zero-suppressed destination must therefore make every "does not depend
// on v" variable explicit again, as a real node(v, sub, sub); converting
// the other way, such a node is automatically folded back by the
// destination's own ROBDD-style FoaNode, while a variable a Zbdd or ZbddC
// source elides is absent and becomes node(v, sub, empty) in the
// destination. A tagged destination calls FoaNode with
// its own variable as the tag on every node it allocates, rather than
// separately computing which levels would have been elided above it.
func (dst *Manager) Convert(src *Manager, root Node, order []int32) (Node, error) {
	memo := make(map[Node]Node)
	// Every node built here stays protected until Convert returns, so that
	// a collection triggered by a later FoaNode cannot reclaim it.
	base := len(dst.protect)
	defer func() { dst.protect = dst.protect[:base] }()
	var rec func(Node, int) (Node, error)
	rec = func(e Node, pos int) (Node, error) {
		if pos >= len(order) {
			if e.isTrue(src) {
				return dst.True(), nil
			}
			return dst.False(), nil
		}
		v := order[pos]
		if e.idx != slotFalse && e.idx != slotTerminal && src.nodes[e.idx].variable == v {
			if cached, ok := memo[e]; ok {
				return cached, nil
			}
			n := src.nodes[e.idx]
			lo, hi := n.lo, n.hi
			if e.mark {
				lo, hi = lo.negate(), hi.negate()
			}
			dlo, err := rec(lo, pos+1)
			if err != nil {
				return Node{}, err
			}
			dhi, err := rec(hi, pos+1)
			if err != nil {
				return Node{}, err
			}
			res, err := dst.FoaNode(v, dlo, dhi, v)
			if err != nil {
				return Node{}, err
			}
			dst.Protect(res)
			memo[e] = res
			return res, nil
		}
		// e does not mention v: it is either a terminal, or a node
		// belonging to a variable further down in order. A Zbdd or ZbddC
		// source then has v absent; any other source does not depend on v.
		sub, err := rec(e, pos+1)
		if err != nil {
			return Node{}, err
		}
		var res Node
		switch {
		case src.variant.zeroSuppressed() && !src.variant.tagged():
			res, err = dst.FoaNode(v, sub, dst.False(), v)
		case dst.variant.zeroSuppressed():
			res, err = dst.FoaNode(v, sub, sub, v)
		default:
			return sub, nil
		}
		if err != nil {
			return Node{}, err
		}
		dst.Protect(res)
		return res, nil
	}
	return rec(root, 0)
}
