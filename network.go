/*


network.go implementation of the feedforward network adapter: a
network graph plus a fitness slot and the mutation policy that decides
which structural mutations are legal for a feedforward network.

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

import (
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// Network wraps a NetworkGraph with a fitness slot. It is the unit the
// pool evolves: the population is a slice of *Network.
type Network struct {
	graph   *NetworkGraph
	fitness *float64
}

// NewNetwork creates a fresh, fully-connected network for a new
// population member.
func NewNetwork(inputNumber, outputNumber int, ledger *Ledger) *Network {
	return &Network{graph: NewGraph(inputNumber, outputNumber, ledger)}
}

// Graph returns the underlying network graph, for structural
// inspection or driver-side visualization.
func (n *Network) Graph() *NetworkGraph { return n.graph }

// Activate runs one feedforward pass: inputs are deposited into the
// Input nodes, 1.0 into the Bias node, and the result is collected from
// the Output nodes after topological propagation with hiddenFn at
// Hidden nodes and outputFn at Output nodes.
func (n *Network) Activate(inputs []float64, hiddenFn, outputFn Activation) ([]float64, error) {
	if len(inputs) != n.graph.InputNumber() {
		return nil, errors.Wrapf(ErrInputShapeMismatch, "got %d inputs, want %d", len(inputs), n.graph.InputNumber())
	}
	for i, v := range inputs {
		n.graph.DepositInput(i, v)
	}
	n.graph.DepositBias(1.0)
	return n.graph.ActivateTopo(hiddenFn, outputFn)
}

// Evaluate records fitness for this network.
func (n *Network) Evaluate(fitness float64) { n.fitness = &fitness }

// Fitness returns the recorded fitness, or false if Evaluate has not
// been called.
func (n *Network) Fitness() (float64, bool) {
	if n.fitness == nil {
		return 0, false
	}
	return *n.fitness, true
}

func (n *Network) mustFitness() float64 {
	if n.fitness == nil {
		panic(errors.Wrap(ErrMissingFitness, "network has not been evaluated"))
	}
	return *n.fitness
}

// Compare orders two evaluated networks by fitness: -1 if n is less
// fit, 0 if equal, 1 if more fit. Panics if either lacks fitness.
func (n *Network) Compare(other *Network) int {
	a, b := n.mustFitness(), other.mustFitness()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Crossover produces offspring from n and other, both of which must
// have fitness. The more-fit parent (ties favor n) contributes
// disjoint/excess genes; matching genes are inherited from a
// uniformly-random parent. Returns nil if the parents' input/output
// shapes disagree.
func (n *Network) Crossover(other *Network, rng *rand.Rand) *Network {
	selfMoreFit := n.mustFitness() >= other.mustFitness()
	g, ok := n.graph.Crossover(other.graph, selfMoreFit, rng)
	if !ok {
		return nil
	}
	return &Network{graph: g}
}

// Clone deep-copies the network's graph. The fitness is not carried
// over: a clone is a fresh, unevaluated offspring.
func (n *Network) Clone() *Network {
	return &Network{graph: n.graph.Clone()}
}

// MutateWeightPerturbation nudges a random edge's weight by a uniform
// delta in [perturbMin, perturbMax], clamped to [weightMin, weightMax].
func (n *Network) MutateWeightPerturbation(rng *rand.Rand, perturbMin, perturbMax, weightMin, weightMax float64) bool {
	edge, ok := n.graph.RandomEdge(rng)
	if !ok {
		return false
	}
	delta := distuv.Uniform{Min: perturbMin, Max: perturbMax, Src: rng}.Rand()
	w := edge.weight + delta
	if w < weightMin {
		w = weightMin
	} else if w > weightMax {
		w = weightMax
	}
	edge.weight = w
	return true
}

// MutateWeightAssign replaces a random edge's weight with a fresh
// uniform sample in [weightMin, weightMax].
func (n *Network) MutateWeightAssign(rng *rand.Rand, weightMin, weightMax float64) bool {
	edge, ok := n.graph.RandomEdge(rng)
	if !ok {
		return false
	}
	edge.weight = distuv.Uniform{Min: weightMin, Max: weightMax, Src: rng}.Rand()
	return true
}

// MutateAddNode splits a random edge with a new Hidden node.
func (n *Network) MutateAddNode(rng *rand.Rand, ledger *Ledger) bool {
	edge, ok := n.graph.RandomEdge(rng)
	if !ok {
		return false
	}
	n.graph.AddNode(edge, ledger)
	return true
}

// MutateRemoveNode removes a random node if it is Hidden; any other
// kind is a no-op.
func (n *Network) MutateRemoveNode(rng *rand.Rand, ledger *Ledger) bool {
	node, ok := n.graph.RandomNode(rng)
	if !ok || node.kind != Hidden {
		return false
	}
	n.graph.RemoveNode(node, ledger)
	return true
}

// canAddConnection reports whether source->target would be a legal
// connection for a feedforward network: source != target, source is
// not an Output node, target is not an Input or Bias node, and no
// duplicate edge already exists. It does not check acyclicity, which
// can only be known after the edge is tentatively added.
func (n *Network) canAddConnection(source, target *nodeGene) bool {
	if source == target || source.kind == Output || target.kind == Input || target.kind == Bias {
		return false
	}
	return !n.graph.HasConnection(source, target)
}

// addConnectionIfLegal adds source->target at weight if canAddConnection
// allows it and the result stays acyclic, rolling the edge back and
// reporting false otherwise.
func (n *Network) addConnectionIfLegal(source, target *nodeGene, weight float64, ledger *Ledger) bool {
	if !n.canAddConnection(source, target) {
		return false
	}
	edge := n.graph.AddConnection(source, target, weight, ledger)
	if n.graph.HasCycle() {
		n.graph.RemoveConnection(edge)
		return false
	}
	return true
}

// MutateAddConnection attempts to connect two random nodes with a
// fresh weight sample. It enforces: source != target; source is not an
// Output node; target is not an Input or Bias node; no duplicate edge;
// and the resulting graph must stay acyclic (if not, the edge is
// removed and the mutation reports failure).
func (n *Network) MutateAddConnection(rng *rand.Rand, weightMin, weightMax float64, ledger *Ledger) bool {
	source, ok := n.graph.RandomNode(rng)
	if !ok {
		return false
	}
	target, ok := n.graph.RandomNode(rng)
	if !ok {
		return false
	}
	weight := distuv.Uniform{Min: weightMin, Max: weightMax, Src: rng}.Rand()
	return n.addConnectionIfLegal(source, target, weight, ledger)
}

// MutateRemoveConnection removes a random edge.
func (n *Network) MutateRemoveConnection(rng *rand.Rand) bool {
	edge, ok := n.graph.RandomEdge(rng)
	if !ok {
		return false
	}
	n.graph.RemoveConnection(edge)
	return true
}

// MutateToggleConnection flips a random edge's disabled flag.
func (n *Network) MutateToggleConnection(rng *rand.Rand) bool {
	edge, ok := n.graph.RandomEdge(rng)
	if !ok {
		return false
	}
	edge.disabled = !edge.disabled
	return true
}

// Mutate applies each of the seven mutation operators independently,
// each guarded by a Bernoulli draw against its configured probability.
func (n *Network) Mutate(rng *rand.Rand, p *MutationParams, ledger *Ledger) {
	if bernoulli(rng, p.WeightPerturbation) {
		n.MutateWeightPerturbation(rng, p.PerturbMin, p.PerturbMax, p.WeightMin, p.WeightMax)
	}
	if bernoulli(rng, p.WeightAssign) {
		n.MutateWeightAssign(rng, p.WeightMin, p.WeightMax)
	}
	if bernoulli(rng, p.AddNode) {
		n.MutateAddNode(rng, ledger)
	}
	if bernoulli(rng, p.RemoveNode) {
		n.MutateRemoveNode(rng, ledger)
	}
	if bernoulli(rng, p.AddConnection) {
		n.MutateAddConnection(rng, p.WeightMin, p.WeightMax, ledger)
	}
	if bernoulli(rng, p.RemoveConnection) {
		n.MutateRemoveConnection(rng)
	}
	if bernoulli(rng, p.ToggleConnection) {
		n.MutateToggleConnection(rng)
	}
}

func bernoulli(rng *rand.Rand, p float64) bool {
	return distuv.Bernoulli{P: p, Src: rng}.Rand() == 1
}
