/*


graph.go implementation of the network graph: the genome itself, as a
typed directed graph of node and connection genes.

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
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/stat/distuv"
)

// NetworkGraph is a genome: a directed graph of node genes and
// connection genes, backed by gonum's simple.DirectedGraph. Node IDs in
// the underlying graph are genome-local (monotonic, never reused after a
// node is removed, meaningless across genomes); every node also carries a historyID, the ledger id
// that is stable across the whole run and is the only valid key for
// crossover alignment, speciation, and innovation bookkeeping.
type NetworkGraph struct {
	g            *simple.DirectedGraph
	inputNumber  int
	outputNumber int
	nextLocal    int64
	byHistory    map[int]*nodeGene
	toposort     []graph.Node
}

// newBareGraph creates the canonical Input, Output, and Bias nodes at
// their reserved historical ids, with no edges. It never touches the
// ledger: I/O/Bias ids are fixed for the whole run, not minted.
func newBareGraph(inputNumber, outputNumber int) *NetworkGraph {
	ng := &NetworkGraph{
		g:            simple.NewDirectedGraph(),
		inputNumber:  inputNumber,
		outputNumber: outputNumber,
		byHistory:    make(map[int]*nodeGene, inputNumber+outputNumber+1),
	}
	for i := 0; i < inputNumber; i++ {
		ng.newCanonicalNode(i, Input)
	}
	for j := 0; j < outputNumber; j++ {
		ng.newCanonicalNode(inputNumber+j, Output)
	}
	ng.newCanonicalNode(inputNumber+outputNumber, Bias)
	return ng
}

func (ng *NetworkGraph) newCanonicalNode(historyID int, kind NodeKind) *nodeGene {
	n := &nodeGene{localID: ng.nextLocal, historyID: historyID, kind: kind}
	ng.nextLocal++
	ng.g.AddNode(n)
	ng.byHistory[historyID] = n
	return n
}

// NewGraph builds a genome for a fresh run: Input, Output, and Bias
// nodes at ids reserved from the ledger, with every input fully
// connected to every output at weight 1.0. The Bias node starts with no
// outgoing edges.
func NewGraph(inputNumber, outputNumber int, ledger *Ledger) *NetworkGraph {
	ng := newBareGraph(inputNumber, outputNumber)
	for i := 0; i < inputNumber; i++ {
		in := ng.byHistory[i]
		for j := 0; j < outputNumber; j++ {
			out := ng.byHistory[inputNumber+j]
			innov := ledger.NewConnection(i, inputNumber+j)
			ng.g.SetEdge(&connGene{from: in, to: out, weight: 1.0, innov: innov})
		}
	}
	return ng
}

// InputNumber reports the number of Input nodes.
func (ng *NetworkGraph) InputNumber() int { return ng.inputNumber }

// OutputNumber reports the number of Output nodes.
func (ng *NetworkGraph) OutputNumber() int { return ng.outputNumber }

// NodeCount reports the total number of node genes.
func (ng *NetworkGraph) NodeCount() int { return ng.g.Nodes().Len() }

// EdgeCount reports the total number of connection genes.
func (ng *NetworkGraph) EdgeCount() int { return ng.g.Edges().Len() }

// HiddenNodeCount reports the number of Hidden nodes, the only kind
// structural mutation can add or remove.
func (ng *NetworkGraph) HiddenNodeCount() int {
	return ng.NodeCount() - ng.inputNumber - ng.outputNumber - 1
}

// allNodes returns every node gene ordered by local id, so that random
// selection by index is reproducible across runs with the same seed
// regardless of the underlying map's iteration order.
func (ng *NetworkGraph) allNodes() []*nodeGene {
	it := ng.g.Nodes()
	nodes := make([]*nodeGene, 0, it.Len())
	for it.Next() {
		nodes = append(nodes, it.Node().(*nodeGene))
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].localID < nodes[j].localID })
	return nodes
}

// allEdges returns every connection gene ordered by innovation number,
// for the same reproducibility reason as allNodes.
func (ng *NetworkGraph) allEdges() []*connGene {
	it := ng.g.Edges()
	edges := make([]*connGene, 0, it.Len())
	for it.Next() {
		edges = append(edges, it.Edge().(*connGene))
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].innov < edges[j].innov })
	return edges
}

// invalidate drops the cached topological order. Every operation that
// adds or removes a node or connection must call this, including the
// internal edge rewiring RemoveNode performs.
func (ng *NetworkGraph) invalidate() { ng.toposort = nil }

func (ng *NetworkGraph) toposortOrder() ([]graph.Node, error) {
	if ng.toposort != nil {
		return ng.toposort, nil
	}
	order, err := topo.Sort(ng.g)
	if err != nil {
		return nil, err
	}
	ng.toposort = order
	return order, nil
}

// HasCycle reports whether the graph currently contains a cycle.
func (ng *NetworkGraph) HasCycle() bool {
	_, err := topo.Sort(ng.g)
	return err != nil
}

// HasConnection reports whether an edge source->target already exists.
func (ng *NetworkGraph) HasConnection(source, target *nodeGene) bool {
	return ng.g.HasEdgeFromTo(source.localID, target.localID)
}

// RandomNode returns a uniformly-random node, or false if the graph
// somehow has none (never happens in practice: every genome carries at
// least Input+Output+Bias nodes).
func (ng *NetworkGraph) RandomNode(rng *rand.Rand) (*nodeGene, bool) {
	nodes := ng.allNodes()
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[rng.Intn(len(nodes))], true
}

// RandomEdge returns a uniformly-random connection gene, or false if
// the graph has none.
func (ng *NetworkGraph) RandomEdge(rng *rand.Rand) (*connGene, bool) {
	edges := ng.allEdges()
	if len(edges) == 0 {
		return nil, false
	}
	return edges[rng.Intn(len(edges))], true
}

// RandomizeWeights resamples every connection weight uniformly in
// [lo, hi].
func (ng *NetworkGraph) RandomizeWeights(lo, hi float64, rng *rand.Rand) {
	u := distuv.Uniform{Min: lo, Max: hi, Src: rng}
	for _, e := range ng.allEdges() {
		e.weight = u.Rand()
	}
}

// DepositInput adds v to the input_sum of the i-th Input node.
func (ng *NetworkGraph) DepositInput(i int, v float64) {
	n := ng.byHistory[i]
	n.inputSum += v
	n.activated = true
}

// DepositBias adds v to the input_sum of the Bias node.
func (ng *NetworkGraph) DepositBias(v float64) {
	n := ng.byHistory[ng.inputNumber+ng.outputNumber]
	n.inputSum += v
	n.activated = true
}

// ActivateTopo propagates previously-deposited input sums through the
// graph in topological order, applying hiddenFn at Hidden nodes and
// outputFn at Output nodes, and returns the collected Output values in
// Output-index order. An Output node that received no propagated input
// is reported as 0 rather than outputFn(0). All transient per-node
// state is cleared before returning, so repeated calls with the same
// deposits yield identical results.
func (ng *NetworkGraph) ActivateTopo(hiddenFn, outputFn Activation) ([]float64, error) {
	order, err := ng.toposortOrder()
	if err != nil {
		ng.clearState()
		return nil, errors.Wrap(err, "network graph has a cycle")
	}

	outputs := make([]float64, ng.outputNumber)
	for _, gn := range order {
		node := gn.(*nodeGene)

		var out float64
		switch node.kind {
		case Input, Bias:
			out = node.inputSum
		case Hidden:
			if node.activated {
				out = hiddenFn.apply(node.inputSum)
			}
		case Output:
			if node.activated {
				out = outputFn.apply(node.inputSum)
			}
		}
		if node.kind == Output {
			outputs[node.historyID-ng.inputNumber] = out
		}

		to := ng.g.From(node.localID)
		for to.Next() {
			tgt := to.Node().(*nodeGene)
			edge := ng.g.Edge(node.localID, tgt.ID()).(*connGene)
			if edge.disabled {
				continue
			}
			tgt.inputSum += out * edge.weight
			tgt.activated = true
		}
	}

	ng.clearState()
	return outputs, nil
}

func (ng *NetworkGraph) clearState() {
	it := ng.g.Nodes()
	for it.Next() {
		n := it.Node().(*nodeGene)
		n.inputSum = 0
		n.activated = false
	}
}

// AddNode splits edge: the edge is disabled, a fresh Hidden node is
// minted, and two new edges are added, source->new at the edge's
// previous weight and new->target at weight 1, so the split is nearly
// invisible to the network's behavior until the new downstream weight
// drifts from 1.
func (ng *NetworkGraph) AddNode(edge *connGene, ledger *Ledger) *nodeGene {
	edge.disabled = true

	newID := ledger.NewNode()
	newNode := &nodeGene{localID: ng.nextLocal, historyID: newID, kind: Hidden}
	ng.nextLocal++
	ng.g.AddNode(newNode)
	ng.byHistory[newID] = newNode

	inInnov := ledger.NewConnection(edge.from.historyID, newID)
	ng.g.SetEdge(&connGene{from: edge.from, to: newNode, weight: edge.weight, innov: inInnov})

	outInnov := ledger.NewConnection(newID, edge.to.historyID)
	ng.g.SetEdge(&connGene{from: newNode, to: edge.to, weight: 1.0, innov: outInnov})

	ng.invalidate()
	return newNode
}

// RemoveNode rewires every (incoming, outgoing) pair of node around it
// into a direct edge carrying the incoming edge's weight, then removes
// the node. The caller is responsible for only invoking this on Hidden
// nodes.
func (ng *NetworkGraph) RemoveNode(node *nodeGene, ledger *Ledger) {
	incoming := graph.NodesOf(ng.g.To(node.localID))
	outgoing := graph.NodesOf(ng.g.From(node.localID))

	for _, si := range incoming {
		source := si.(*nodeGene)
		inEdge := ng.g.Edge(source.ID(), node.localID).(*connGene)
		for _, ti := range outgoing {
			target := ti.(*nodeGene)
			innov := ledger.NewConnection(source.historyID, target.historyID)
			ng.g.SetEdge(&connGene{from: source, to: target, weight: inEdge.weight, innov: innov})
		}
	}

	ng.g.RemoveNode(node.localID)
	delete(ng.byHistory, node.historyID)
	ng.invalidate()
}

// AddConnection adds an edge source->target at the given weight,
// minting (or reusing) its innovation number. It performs no legality
// checks; the network adapter's mutation policy enforces those.
func (ng *NetworkGraph) AddConnection(source, target *nodeGene, weight float64, ledger *Ledger) *connGene {
	innov := ledger.NewConnection(source.historyID, target.historyID)
	edge := &connGene{from: source, to: target, weight: weight, innov: innov}
	ng.g.SetEdge(edge)
	ng.invalidate()
	return edge
}

// RemoveConnection removes edge from the graph.
func (ng *NetworkGraph) RemoveConnection(edge *connGene) {
	ng.g.RemoveEdge(edge.from.localID, edge.to.localID)
	ng.invalidate()
}

// geneDiff holds the result of aligning two graphs' connection genes by
// innovation number: gene pairs sharing an innovation number, and the
// genes unique to each side (disjoint or excess, the distinction does
// not matter for either compatibility or crossover).
type geneDiff struct {
	matching  [][2]*connGene
	selfOnly  []*connGene
	otherOnly []*connGene
}

func (ng *NetworkGraph) diff(other *NetworkGraph) geneDiff {
	selfEdges := ng.allEdges()
	otherByInnov := make(map[int]*connGene, other.EdgeCount())
	for _, e := range other.allEdges() {
		otherByInnov[e.innov] = e
	}

	var d geneDiff
	matched := make(map[int]bool, len(selfEdges))
	for _, e := range selfEdges {
		if oe, ok := otherByInnov[e.innov]; ok {
			d.matching = append(d.matching, [2]*connGene{e, oe})
			matched[e.innov] = true
		} else {
			d.selfOnly = append(d.selfOnly, e)
		}
	}
	for _, oe := range other.allEdges() {
		if !matched[oe.innov] {
			d.otherOnly = append(d.otherOnly, oe)
		}
	}
	return d
}

// CompatibilityMetric computes c1*D/N + c2*W, where D is the count of
// disjoint/excess genes between the two graphs, N is the larger of the
// two edge counts, and W is the summed absolute weight difference over
// matching genes. Two identical graphs yield 0.
func (ng *NetworkGraph) CompatibilityMetric(other *NetworkGraph, c1, c2 float64) float64 {
	d := ng.diff(other)

	var weightDiff float64
	for _, m := range d.matching {
		weightDiff += math.Abs(m[0].weight - m[1].weight)
	}

	mismatch := len(d.selfOnly) + len(d.otherOnly)
	n := ng.EdgeCount()
	if oc := other.EdgeCount(); oc > n {
		n = oc
	}
	if n == 0 {
		return 0
	}

	return c1*float64(mismatch)/float64(n) + c2*weightDiff
}

// resolveNode returns the node in ng carrying src's historical id,
// creating a fresh Hidden node the first time a Hidden id is seen.
// Input/Output/Bias nodes always exist already under their canonical
// id, from newBareGraph.
func (ng *NetworkGraph) resolveNode(src *nodeGene) *nodeGene {
	if existing, ok := ng.byHistory[src.historyID]; ok {
		return existing
	}
	n := &nodeGene{localID: ng.nextLocal, historyID: src.historyID, kind: src.kind}
	ng.nextLocal++
	ng.g.AddNode(n)
	ng.byHistory[src.historyID] = n
	return n
}

// Crossover aligns ng and other's connection genes by innovation
// number. Matching genes are inherited from a uniformly-random parent;
// disjoint/excess genes are inherited only from whichever parent
// selfMoreFit designates as fitter. Node genes are reconstructed from
// the inherited edges, deduplicated by historical id. Crossover fails
// (returns false) when the two graphs disagree on input/output count.
func (ng *NetworkGraph) Crossover(other *NetworkGraph, selfMoreFit bool, rng *rand.Rand) (*NetworkGraph, bool) {
	if ng.inputNumber != other.inputNumber || ng.outputNumber != other.outputNumber {
		return nil, false
	}

	d := ng.diff(other)
	bernoulli := distuv.Bernoulli{P: 0.5, Src: rng}

	var chosen []*connGene
	for _, m := range d.matching {
		if bernoulli.Rand() == 1 {
			chosen = append(chosen, m[0])
		} else {
			chosen = append(chosen, m[1])
		}
	}
	if selfMoreFit {
		chosen = append(chosen, d.selfOnly...)
	} else {
		chosen = append(chosen, d.otherOnly...)
	}

	child := newBareGraph(ng.inputNumber, ng.outputNumber)
	for _, e := range chosen {
		source := child.resolveNode(e.from)
		target := child.resolveNode(e.to)
		child.g.SetEdge(&connGene{from: source, to: target, weight: e.weight, disabled: e.disabled, innov: e.innov})
	}
	return child, true
}

// Clone deep-copies the graph: every node and edge is copied, and the
// copy shares no mutable state with the original.
func (ng *NetworkGraph) Clone() *NetworkGraph {
	cp := &NetworkGraph{
		g:            simple.NewDirectedGraph(),
		inputNumber:  ng.inputNumber,
		outputNumber: ng.outputNumber,
		byHistory:    make(map[int]*nodeGene, len(ng.byHistory)),
		nextLocal:    ng.nextLocal,
	}

	byOldLocal := make(map[int64]*nodeGene, len(ng.byHistory))
	for _, n := range ng.allNodes() {
		cn := n.clone()
		cp.g.AddNode(cn)
		cp.byHistory[cn.historyID] = cn
		byOldLocal[n.localID] = cn
	}
	for _, e := range ng.allEdges() {
		cp.g.SetEdge(e.clone(byOldLocal[e.from.localID], byOldLocal[e.to.localID]))
	}
	return cp
}

// String renders a human-readable structural summary, for debugging
// and for driver-side visualization hooks.
func (ng *NetworkGraph) String() string {
	s := fmt.Sprintf("network graph: %d input(s), %d output(s), 1 bias, %d hidden node(s), %d edge(s)\n",
		ng.inputNumber, ng.outputNumber, ng.HiddenNodeCount(), ng.EdgeCount())
	for _, n := range ng.allNodes() {
		s += fmt.Sprintf("  node %d: kind=%s\n", n.historyID, n.kind)
	}
	for _, e := range ng.allEdges() {
		s += fmt.Sprintf("  edge %d->%d: weight=%g disabled=%v innov=%d\n",
			e.from.historyID, e.to.historyID, e.weight, e.disabled, e.innov)
	}
	return s
}
