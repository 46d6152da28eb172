package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivateRejectsWrongShapeInput(t *testing.T) {
	l := NewLedger(2, 1)
	n := NewNetwork(2, 1, l)

	_, err := n.Activate([]float64{1.0}, Sigmoid, Sigmoid)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInputShapeMismatch)
}

func TestActivateIsIdempotentAcrossCalls(t *testing.T) {
	l := NewLedger(2, 1)
	n := NewNetwork(2, 1, l)

	first, err := n.Activate([]float64{0.5, -0.25}, Sigmoid, Sigmoid)
	require.NoError(t, err)
	second, err := n.Activate([]float64{0.5, -0.25}, Sigmoid, Sigmoid)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEvaluateAndFitness(t *testing.T) {
	l := NewLedger(2, 1)
	n := NewNetwork(2, 1, l)

	_, ok := n.Fitness()
	assert.False(t, ok)

	n.Evaluate(3.5)
	f, ok := n.Fitness()
	require.True(t, ok)
	assert.Equal(t, 3.5, f)
}

func TestCompareRequiresFitness(t *testing.T) {
	l := NewLedger(2, 1)
	a := NewNetwork(2, 1, l)
	b := NewNetwork(2, 1, l)
	a.Evaluate(1.0)
	b.Evaluate(2.0)
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))

	c := NewNetwork(2, 1, l)
	assert.Panics(t, func() { a.Compare(c) })
}

func TestCrossoverPanicsWithoutFitness(t *testing.T) {
	l := NewLedger(2, 1)
	a := NewNetwork(2, 1, l)
	b := NewNetwork(2, 1, l)
	rng := newTestRand(3)
	assert.Panics(t, func() { a.Crossover(b, rng) })
}

func TestMutateAddConnectionCyclePrevention(t *testing.T) {
	l := NewLedger(2, 1)
	n := NewNetwork(2, 1, l)
	rng := newTestRand(4)

	// Split the edge from input 0: nodes 0,1 input; 2 output; 3 bias;
	// new hidden node 4 with 0 -> 4 -> 2.
	var edgeFromInput0 *connGene
	for _, e := range n.graph.allEdges() {
		if e.from.historyID == 0 {
			edgeFromInput0 = e
		}
	}
	require.NotNil(t, edgeFromInput0)
	hidden4 := n.graph.AddNode(edgeFromInput0, l)
	assert.Equal(t, 4, hidden4.historyID)

	input0 := n.graph.byHistory[0]
	output0 := n.graph.byHistory[2]

	// hidden(4) -> input(0): target is Input, illegal regardless of cycles.
	assert.False(t, n.addConnectionIfLegal(hidden4, input0, 0.1, l))
	// output(0) -> hidden(4): source is Output, illegal.
	assert.False(t, n.addConnectionIfLegal(output0, hidden4, 0.1, l))

	// Split another edge to get a second hidden node 5, then confirm
	// hidden5 -> hidden4 is fine but hidden4 -> hidden5 would cycle.
	var edgeFromInput1 *connGene
	for _, e := range n.graph.allEdges() {
		if e.from.historyID == 1 {
			edgeFromInput1 = e
		}
	}
	require.NotNil(t, edgeFromInput1)
	hidden5 := n.graph.AddNode(edgeFromInput1, l)
	assert.Equal(t, 5, hidden5.historyID)

	assert.True(t, n.addConnectionIfLegal(hidden5, hidden4, 0.1, l))
	assert.False(t, n.addConnectionIfLegal(hidden4, hidden5, 0.1, l))
	assert.False(t, n.graph.HasCycle())

	_ = rng
}

func TestMutateWeightPerturbationClamps(t *testing.T) {
	l := NewLedger(2, 1)
	n := NewNetwork(2, 1, l)
	rng := newTestRand(5)

	for i := 0; i < 50; i++ {
		n.MutateWeightPerturbation(rng, -10, 10, -1, 1)
	}
	for _, e := range n.graph.allEdges() {
		assert.GreaterOrEqual(t, e.weight, -1.0)
		assert.LessOrEqual(t, e.weight, 1.0)
	}
}

func TestMutateRemoveNodeOnlyAffectsHidden(t *testing.T) {
	l := NewLedger(2, 1)
	n := NewNetwork(2, 1, l)
	rng := newTestRand(6)

	// No hidden nodes yet: any selected node is non-Hidden, so this
	// mutation must be a no-op.
	applied := n.MutateRemoveNode(rng, l)
	assert.False(t, applied)
	assert.Equal(t, 4, n.graph.NodeCount())
}

func TestMutateToggleAndRemoveConnection(t *testing.T) {
	l := NewLedger(2, 1)
	n := NewNetwork(2, 1, l)
	rng := newTestRand(7)

	before := n.graph.EdgeCount()
	require.True(t, n.MutateToggleConnection(rng))

	var disabledCount int
	for _, e := range n.graph.allEdges() {
		if e.disabled {
			disabledCount++
		}
	}
	assert.Equal(t, 1, disabledCount)

	require.True(t, n.MutateRemoveConnection(rng))
	assert.Equal(t, before-1, n.graph.EdgeCount())
}
