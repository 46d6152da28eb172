package neat

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsRecordComputesFitnessSummary(t *testing.T) {
	s := NewStatistics()
	s.Record(1, 3, 10, []float64{1.0, 2.0, 3.0}, 7, 5)

	require.Len(t, s.Generations(), 1)
	g := s.Generations()[0]
	assert.Equal(t, 1, g.Generation)
	assert.Equal(t, 3, g.Species)
	assert.Equal(t, 10, g.Population)
	assert.Equal(t, 1.0, g.MinFitness)
	assert.Equal(t, 3.0, g.MaxFitness)
	assert.InDelta(t, 2.0, g.MeanFitness, 1e-9)
	assert.Equal(t, 7, g.Nodes)
	assert.Equal(t, 5, g.Connections)
}

func TestStatisticsRecordToleratesEmptyFitnesses(t *testing.T) {
	s := NewStatistics()
	s.Record(1, 1, 0, nil, 4, 0)
	assert.Equal(t, 0.0, s.Generations()[0].MaxFitness)
}

func TestStatisticsWriteYAMLRoundTripsGenerationCount(t *testing.T) {
	s := NewStatistics()
	s.Record(1, 2, 5, []float64{0.1, 0.9}, 4, 2)
	s.Record(2, 2, 5, []float64{0.2, 1.1}, 4, 2)

	var buf bytes.Buffer
	require.NoError(t, s.WriteYAML(&buf))
	assert.Contains(t, buf.String(), "generation: 1")
	assert.Contains(t, buf.String(), "generation: 2")
}

func TestHallOfFameKeepsOnlyTopSizeByFitness(t *testing.T) {
	h := NewHallOfFame(2)
	l := NewLedger(2, 1)

	for _, f := range []float64{1.0, 5.0, 3.0} {
		n := NewNetwork(2, 1, l)
		n.Evaluate(f)
		h.Update(1, n)
	}

	require.Len(t, h.Entries(), 2)
	best, ok := h.Best()
	require.True(t, ok)
	assert.Equal(t, 5.0, best.Fitness)
	assert.Equal(t, 3.0, h.Entries()[1].Fitness)
}

func TestHallOfFameIgnoresUnevaluatedGenome(t *testing.T) {
	h := NewHallOfFame(1)
	l := NewLedger(2, 1)
	n := NewNetwork(2, 1, l)

	h.Update(1, n)
	_, ok := h.Best()
	assert.False(t, ok)
}
