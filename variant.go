// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

import "fmt"

// Variant selects one of the reduction and edge-adornment conventions a
// Manager implements. It is fixed when the Manager is created with New and
// never changes afterwards; every Node produced by a Manager is only
// meaningful relative to that Manager's Variant.
type Variant int

const (
	// Robdd is the classical reduced ordered BDD: no complement edges, no
	// zero-suppression, two designated terminal slots (constant-0 and
	// constant-1).
	Robdd Variant = iota
	// RobddC is Robdd with complement edges on the low/high branches; only
	// one terminal node is ever allocated, constant-0 being represented as
	// the complement of constant-1.
	RobddC
	// Zbdd is the zero-suppressed variant commonly used to represent
	// combination sets: a node is elided whenever its high branch is the
	// empty combination.
	Zbdd
	// ZbddC is Zbdd with complement edges.
	ZbddC
	// Tzbdd is the tagged ZBDD variant. Every edge carries a tag recording
	// the variable the edge would start at had no levels been skipped,
	// removing the need to chase a run of elided variables one at a time.
	Tzbdd
)

func (v Variant) String() string {
	switch v {
	case Robdd:
		return "ROBDD"
	case RobddC:
		return "ROBDD/C"
	case Zbdd:
		return "ZBDD"
	case ZbddC:
		return "ZBDD/C"
	case Tzbdd:
		return "TZBDD"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// complemented reports whether edges of this variant carry a complement
// mark that must be normalized on every node-construction path.
func (v Variant) complemented() bool {
	return v == RobddC || v == ZbddC
}

// zeroSuppressed reports whether this variant applies the zero-suppression
// reduction rule (elide a node whenever its high branch is the empty
// combination) instead of the classical ROBDD rule (elide a node whenever
// its low and high branches coincide).
func (v Variant) zeroSuppressed() bool {
	return v == Zbdd || v == ZbddC || v == Tzbdd
}

// tagged reports whether edges of this variant carry a top variable tag.
// Only Tzbdd does; TZBDD/C is not offered; see ErrUnsupportedVariant.
func (v Variant) tagged() bool {
	return v == Tzbdd
}

func validVariant(v Variant) bool {
	return v >= Robdd && v <= Tzbdd
}
