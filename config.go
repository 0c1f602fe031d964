// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

// configs stores the tuning parameters of a Manager, set once at
// construction time through the functional options below (the same
// pattern as the rudd package this is adapted from).
type configs struct {
	variant         Variant // reduction/adornment convention; fixed for the Manager's lifetime
	nodesize        int     // initial number of nodes in the table
	cachesize       int     // initial size (general) of each operation cache
	cacheratio      int     // ratio (%) between cache size and node table size; 0 means fixed size
	maxnodesize     int     // maximum total number of nodes (0: no limit)
	maxnodeincrease int     // maximum number of nodes added to the table at each resize (0: no limit)
	minfreenodes    int     // minimum free-node ratio (%) required after GC before a resize is triggered
	siftmaxsize     int     // sifting: max extra nodes a trial position may cost over the best found so far
	siftmaxdiv      int     // sifting: max growth factor tolerated for one variable's pass
	converge        bool    // sifting: keep iterating sweeps until no variable moves (converge mode)
}

func makeconfigs(variant Variant) *configs {
	c := &configs{variant: variant}
	c.minfreenodes = _MINFREENODES
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	c.siftmaxsize = _DEFAULTSIFTMAXSIZE
	c.siftmaxdiv = _DEFAULTSIFTMAXDIV
	// start small; a Manager grows its variable and node tables on demand
	// since, unlike rudd.New, we do not take a fixed variable count.
	c.nodesize = 2 * 1024
	c.cachesize = 10000
	return c
}

// Nodesize is a configuration option. Used as a parameter to New it sets a
// preferred initial size for the node table. The size of the Manager's
// arena grows on demand during computation.
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		if size > 2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize is a configuration option. Used as a parameter to New it sets
// a limit on the number of nodes the Manager may allocate. An operation
// that would raise the node count above this limit fails with
// ErrOutOfMemory instead. The default value (0) means no limit.
func Maxnodesize(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Maxnodeincrease is a configuration option. Used as a parameter to New it
// bounds the increase in size of the node table at each resize; below this
// limit the table typically doubles. The default is about a million
// nodes; 0 removes the limit.
func Maxnodeincrease(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodeincrease = size
	}
}

// Minfreenodes is a configuration option. Used as a parameter to New it
// sets the ratio (%) of free nodes that must remain after a garbage
// collection; when the ratio falls short the table is resized instead. The
// default is 20%.
func Minfreenodes(ratio int) func(*configs) {
	return func(c *configs) {
		c.minfreenodes = ratio
	}
}

// Cachesize is a configuration option. Used as a parameter to New it sets
// the initial number of entries in each operation cache (OP, EA, RC and
// Replace). The default is 10 000 entries.
func Cachesize(size int) func(*configs) {
	return func(c *configs) {
		c.cachesize = size
	}
}

// Cacheratio is a configuration option. Used as a parameter to New it sets
// a ratio (%) so caches grow each time the node table is resized: with a
// ratio of r there are r entries in each cache for every 100 slots in the
// node table. The default value (0) means caches never grow automatically.
func Cacheratio(ratio int) func(*configs) {
	return func(c *configs) {
		c.cacheratio = ratio
	}
}

// Siftmaxsize is a configuration option controlling Manager.Sift. It caps
// the number of extra nodes a trial position may introduce, relative to
// the best position found so far for the variable currently being moved,
// before that position is abandoned.
func Siftmaxsize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.siftmaxsize = size
		}
	}
}

// Siftmaxdiv is a configuration option controlling Manager.Sift. It caps
// the factor by which the diagram may grow, relative to its size before a
// variable started moving, during that variable's sifting pass.
func Siftmaxdiv(factor int) func(*configs) {
	return func(c *configs) {
		if factor > 0 {
			c.siftmaxdiv = factor
		}
	}
}

// Converge is a configuration option controlling Manager.Sift. When true,
// Sift follows its pass over the given variable with full sweeps over every
// variable, repeated until a sweep produces no move; when false, Sift moves
// only the given variable.
func Converge(on bool) func(*configs) {
	return func(c *configs) {
		c.converge = on
	}
}
