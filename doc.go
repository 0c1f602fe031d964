// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package qrobdd defines a concrete type for Binary Decision Diagrams (BDD), a
data structure used to efficiently represent Boolean functions over a finite
set of variables or, equivalently, sets of Boolean vectors.

Unlike a single fixed representation, a Manager picks one of five reduction
and edge-adornment conventions at construction time: ROBDD, ROBDD with
complement edges (ROBDD/C), ZBDD, ZBDD with complement edges (ZBDD/C), and
tagged ZBDD (TZBDD). The variant is fixed for the life of the Manager; see
Variant.

Basics

Each Manager grows its set of variables dynamically; there is no fixed
Varnum declared up front. A variable is identified by a small integer (its
allocation index), but the order in which variables appear along any path
of the diagram is a separate, explicitly maintained total order that can be
changed at runtime by an adjacent swap or by sifting (see Manager.Swap and
Manager.Sift).

Most operations return a Node: an opaque handle combining a reference to a
canonical vertex in the diagram with the complement mark and top tag
adornments used by the variants that support them.

This package is the shared engine behind a family of BDD/ZBDD packages: the
unique node table, the variable table and its ordering, the formula
registry, the age-based garbage collector, the operation caches, and the
reordering machinery (adjacent swap, Rudell sifting, Steinhaus-Johnson-
Trotter enumeration). It does not implement the Boolean/set operators
(ITE, AND/OR/XOR, Exist, Replace, ...) themselves; those are built on top of
FoaNode, the same way the sibling rudd package builds Apply and Ite on top
of its own makenode. The operation caches are internal to the package: it
exports only their sizing options and Manager.DisableCaches/EnableCaches.

Automatic memory management

Like the sibling rudd package this one is derived from, qrobdd is written in
pure Go. Node lifetime is tracked explicitly through an age-based scheme
(see Manager.Clean, Manager.Purge, and the formula registry) rather than
through Go's own garbage collector or finalizers: a node is only ever
reclaimed once it is no longer reachable from a live formula or a live
variable/element edge.
*/
package qrobdd
