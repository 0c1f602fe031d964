// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

import "fmt"

// Stats returns a human-readable multi-line summary of the Manager: its
// variant, node table occupancy, garbage-collection history, and every
// operation cache's hit rate. It is meant for logs and tests, the way
// rudd.BDD.Stats (stdio.go) and its cache String methods are, not for
// parsing.
func (m *Manager) Stats() string {
	res := fmt.Sprintf("== Manager (%s) ==\n", m.variant)
	res += fmt.Sprintf(" variables: %d\n", m.Varnum())
	res += fmt.Sprintf(" nodes: %d allocated, %d free, %d total slots, %d reachable\n", m.Size(), m.freeCount, len(m.nodes), m.mark().GetCardinality())
	res += fmt.Sprintf(" formulas: %d named\n", m.formulas.named.Len())
	res += fmt.Sprintf(" gc: %d runs, %d nodes freed, %d resizes\n", m.gcstat.runs, m.gcstat.freed, m.gcstat.resizes)
	res += fmt.Sprintf(" system age: %d\n", m.age.current)
	res += fmt.Sprintf("== OP cache ==\n %s\n", m.opcache)
	res += fmt.Sprintf("== EA cache ==\n %s\n", m.eacache)
	res += fmt.Sprintf("== RC cache ==\n %s\n", m.rccache)
	res += fmt.Sprintf("== Replace cache ==\n %s\n", m.replace)
	return res
}
