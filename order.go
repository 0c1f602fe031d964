// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

import (
	roaring "github.com/RoaringBitmap/roaring/v2"
)

// orderTable tracks the total order over a Manager's variables. The order
// is represented twice, redundantly, for two different access patterns:
//
//   - a doubly linked list threaded through the variable table (prev/next)
//     so neighbours of a variable, and the current top/bottom variable, can
//     be found in O(1);
//   - a bitmatrix, one github.com/RoaringBitmap/roaring/v2 bitmap per
//     variable, so that "is variable a ordered before variable b" (the
//     query every reduction rule and every cache lookup needs) is answered
//     in O(1) instead of by walking the list.
//
// The two must always agree; insertBottom/insertTop extend both when a
// variable is added, and swapAdjacent is the only place that reorders
// them, as a single O(1) update (see its comment).
type orderTable struct {
	top, bottom int32           // first/last variable in the order, 0 == empty order
	smaller     []*roaring.Bitmap // smaller[a] holds every b with a ordered strictly before b
}

func newOrderTable() orderTable {
	return orderTable{}
}

// grow extends the bitmatrix so variable id has a row; called once per
// freshly allocated variable, right before it is inserted into the order.
func (o *orderTable) grow(id int32) {
	for int32(len(o.smaller)) <= id {
		o.smaller = append(o.smaller, roaring.New())
	}
}

// insertBottom appends a freshly allocated variable at the bottom
// (least-significant, last-visited) end of the order.
func (o *orderTable) insertBottom(id int32, vars []variable) {
	o.grow(id)
	for v := o.top; v != 0; v = vars[v].next {
		o.smaller[v].Add(uint32(id))
	}
	if o.bottom == 0 {
		o.top, o.bottom = id, id
		return
	}
	vars[o.bottom].next = id
	vars[id].prev = o.bottom
	o.bottom = id
}

// insertTop prepends a freshly allocated variable at the top
// (most-significant, first-visited) end of the order.
func (o *orderTable) insertTop(id int32, vars []variable) {
	o.grow(id)
	for v := o.top; v != 0; v = vars[v].next {
		o.smaller[id].Add(uint32(v))
	}
	if o.top == 0 {
		o.top, o.bottom = id, id
		return
	}
	vars[o.top].prev = id
	vars[id].next = o.top
	o.top = id
}

// isSmaller reports whether variable a is ordered strictly before variable
// b, i.e. a is closer to the top of the diagram than b. The terminal
// pseudo-variable (id 0) is ordered after every real variable and is never
// itself recorded in the bitmatrix; callers compare against it directly.
func (o *orderTable) isSmaller(a, b int32) bool {
	if b == 0 {
		return a != 0
	}
	if a == 0 {
		return false
	}
	return o.smaller[a].Contains(uint32(b))
}

// swapAdjacent exchanges the order positions of a and b, which must be
// neighbours with a immediately above b (vars[a].next == b). This is the
// one-swap formula's bookkeeping step: because a and b are adjacent, their
// relative order to every other variable is unchanged, so only the single
// bit recording their mutual relation needs to flip, and only six list
// pointers need to move.
func (o *orderTable) swapAdjacent(a, b int32, vars []variable) {
	before, after := vars[a].prev, vars[b].next
	if before != 0 {
		vars[before].next = b
	} else {
		o.top = b
	}
	if after != 0 {
		vars[after].prev = a
	} else {
		o.bottom = a
	}
	vars[b].prev, vars[b].next = before, a
	vars[a].prev, vars[a].next = b, after

	o.smaller[a].Remove(uint32(b))
	o.smaller[b].Add(uint32(a))
}
