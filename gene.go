/*


gene.go implementation of node and connection genes in NEAT.

@licstart   The following is the entire license notice for
the Go code in this page.

Copyright (C) 2016 jin yeom, whitewolf.studio

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.

As additional permission under GNU GPL version 3 section 7, you
may distribute non-source (e.g., minimized or compacted) forms of
that code without the copy of the GNU GPL normally required by
section 4, provided you include this license notice and a URL
through which recipients can access the Corresponding Source.

@licend    The above is the entire license notice
for the Go code in this page.


*/

package neat

import "gonum.org/v1/gonum/graph"

// NodeKind is the role a node gene plays within a genome.
type NodeKind int

const (
	// Input nodes receive one element of the activation input vector.
	Input NodeKind = iota
	// Output nodes are collected into the activation result.
	Output
	// Hidden nodes are created only by add-node mutations.
	Hidden
	// Bias is the single always-on node every genome carries.
	Bias
)

// String names the node kind.
func (k NodeKind) String() string {
	switch k {
	case Input:
		return "input"
	case Output:
		return "output"
	case Hidden:
		return "hidden"
	case Bias:
		return "bias"
	default:
		return "unknown"
	}
}

// nodeGene is a node gene's payload, stored as a gonum graph.Node. Its
// ID (the gonum node identity) is a genome-local index, monotonic
// within one genome's lifetime (the id of a removed node is not
// reused) but otherwise meaningless
// across genomes. historyID is the ledger-issued identifier that is
// stable across every genome in a run and is what crossover,
// speciation, and innovation bookkeeping key off of.
type nodeGene struct {
	localID   int64
	historyID int
	kind      NodeKind

	// inputSum and activated are transient activation-pass state,
	// cleared at the end of every ActivateTopo call. Which activation
	// function applies to a node is not part of its gene: Input/Bias
	// nodes always pass their sum through, Hidden nodes take the
	// pool-wide hidden activation, and Output nodes take the pool-wide
	// output activation, both supplied as arguments to ActivateTopo.
	inputSum  float64
	activated bool
}

// ID implements graph.Node.
func (n *nodeGene) ID() int64 { return n.localID }

func (n *nodeGene) clone() *nodeGene {
	cp := *n
	cp.inputSum = 0
	cp.activated = false
	return &cp
}

// connGene is a connection gene's payload, stored as a gonum graph.Edge.
type connGene struct {
	from, to *nodeGene
	weight   float64
	disabled bool
	innov    int
}

// From implements graph.Edge.
func (c *connGene) From() graph.Node { return c.from }

// To implements graph.Edge.
func (c *connGene) To() graph.Node { return c.to }

// ReversedEdge implements graph.Edge.
func (c *connGene) ReversedEdge() graph.Edge {
	return &connGene{from: c.to, to: c.from, weight: c.weight, disabled: c.disabled, innov: c.innov}
}

func (c *connGene) clone(from, to *nodeGene) *connGene {
	return &connGene{from: from, to: to, weight: c.weight, disabled: c.disabled, innov: c.innov}
}
