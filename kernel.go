// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

// _MINFREENODES is the minimal number of nodes (%) that has to be left
// after a garbage collection unless a resize should be done instead.
const _MINFREENODES int = 20

// _MAXVAR is the maximal number of variables a Manager can allocate. We use
// only the first 21 bits of a variable index for encoding, leaving 11 bits
// free the way the original level-packing scheme this is adapted from
// reserved bits for in-node markings; we keep the same budget even though
// our own node record no longer packs anything into the variable field.
const _MAXVAR int32 = 0x1FFFFF

// _DEFAULTMAXNODEINC is the default limit on the increase in the number of
// nodes during a single resize: approximately one million nodes.
const _DEFAULTMAXNODEINC int = 1 << 20

// _DEFAULTSIFTMAXSIZE bounds how many extra nodes a candidate position may
// cost, relative to the best position found so far, before Sift abandons
// exploring further positions for the variable currently being moved.
const _DEFAULTSIFTMAXSIZE int = 1 << 20

// _DEFAULTSIFTMAXDIV caps the factor by which the diagram may grow,
// relative to its size before the variable started moving, during a single
// sifting pass over one variable.
const _DEFAULTSIFTMAXDIV int = 3
