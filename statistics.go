/*


statistics.go implementation of per-generation telemetry: summary
statistics of the population's fitness distribution, and a hall of
fame of the best genomes seen so far. This is read-side reporting
only; it never serializes a genome's graph structure.

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
	"io"
	"os"
	"sort"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// GenerationStats summarizes one generation's fitness distribution and
// the ledger's size, for a per-generation report.
type GenerationStats struct {
	Generation    int     `yaml:"generation"`
	Species       int     `yaml:"species"`
	Population    int     `yaml:"population"`
	MinFitness    float64 `yaml:"min_fitness"`
	MaxFitness    float64 `yaml:"max_fitness"`
	MeanFitness   float64 `yaml:"mean_fitness"`
	StdDevFitness float64 `yaml:"stddev_fitness"`
	Nodes         int     `yaml:"nodes"`
	Connections   int     `yaml:"connections"`
}

// Statistics accumulates one GenerationStats record per generation.
type Statistics struct {
	generations []GenerationStats
}

// NewStatistics creates an empty statistics accumulator.
func NewStatistics() *Statistics {
	return &Statistics{}
}

// Record appends a generation's summary, computing mean and standard
// deviation of fitnesses via gonum/stat.
func (s *Statistics) Record(generation, species, population int, fitnesses []float64, nodes, connections int) {
	g := GenerationStats{
		Generation:  generation,
		Species:     species,
		Population:  population,
		Nodes:       nodes,
		Connections: connections,
	}
	if len(fitnesses) > 0 {
		g.MinFitness, g.MaxFitness = fitnesses[0], fitnesses[0]
		for _, f := range fitnesses {
			if f < g.MinFitness {
				g.MinFitness = f
			}
			if f > g.MaxFitness {
				g.MaxFitness = f
			}
		}
		g.MeanFitness, g.StdDevFitness = stat.MeanStdDev(fitnesses, nil)
	}
	s.generations = append(s.generations, g)
}

// Generations returns every recorded generation's summary, in order.
func (s *Statistics) Generations() []GenerationStats { return s.generations }

// WriteYAML writes the full per-generation report as YAML.
func (s *Statistics) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(s.generations)
}

// DumpFitnessHistory writes the best-fitness-per-generation series as a
// .npy array at path, for offline plotting by an external tool.
func (s *Statistics) DumpFitnessHistory(path string) error {
	best := make([]float64, len(s.generations))
	for i, g := range s.generations {
		best[i] = g.MaxFitness
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return npyio.Write(f, best)
}

// HallOfFameEntry records a past generation's best genome by fitness
// and topology size, without capturing its graph structure.
type HallOfFameEntry struct {
	Generation int
	Fitness    float64
	NodeCount  int
	EdgeCount  int
}

// HallOfFame keeps the best size entries seen across a run, in
// descending fitness order.
type HallOfFame struct {
	size    int
	entries []HallOfFameEntry
}

// NewHallOfFame creates a hall of fame that keeps at most size entries.
func NewHallOfFame(size int) *HallOfFame {
	return &HallOfFame{size: size}
}

// Update considers best for inclusion in the hall of fame.
func (h *HallOfFame) Update(generation int, best *Network) {
	fitness, ok := best.Fitness()
	if !ok {
		return
	}
	h.entries = append(h.entries, HallOfFameEntry{
		Generation: generation,
		Fitness:    fitness,
		NodeCount:  best.Graph().NodeCount(),
		EdgeCount:  best.Graph().EdgeCount(),
	})
	sort.Slice(h.entries, func(i, j int) bool { return h.entries[i].Fitness > h.entries[j].Fitness })
	if len(h.entries) > h.size {
		h.entries = h.entries[:h.size]
	}
}

// Best returns the best entry recorded so far, or false if empty.
func (h *HallOfFame) Best() (HallOfFameEntry, bool) {
	if len(h.entries) == 0 {
		return HallOfFameEntry{}, false
	}
	return h.entries[0], true
}

// Entries returns every kept entry, in descending fitness order.
func (h *HallOfFame) Entries() []HallOfFameEntry { return h.entries }
