/*


params.go the run's immutable hyperparameter settings.

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

import "github.com/pkg/errors"

// MutationParams holds the probability of each of the seven independent
// mutation operators, plus the weight ranges they draw from. Every
// probability is checked against a fresh Bernoulli draw per offspring.
type MutationParams struct {
	WeightPerturbation float64 // probability of perturbing a random edge's weight
	WeightAssign       float64 // probability of reassigning a random edge's weight
	AddConnection      float64 // probability of adding a connection
	RemoveConnection   float64 // probability of removing a connection
	ToggleConnection   float64 // probability of toggling a connection's disabled flag
	AddNode            float64 // probability of splitting an edge with a new node
	RemoveNode         float64 // probability of removing a hidden node

	WeightMin float64 // lower bound for any edge weight
	WeightMax float64 // upper bound for any edge weight

	PerturbMin float64 // lower bound of a weight-perturbation delta
	PerturbMax float64 // upper bound of a weight-perturbation delta
}

// SpeciationParams holds the compatibility metric's coefficients and
// the thresholds that govern how species are formed, culled, and
// retired.
type SpeciationParams struct {
	C1                      float64 // coefficient applied to disjoint/excess gene count
	C2                      float64 // coefficient applied to matching-gene weight difference
	CompatibilityThreshold  float64 // max compatibility distance to join a species
	SurvivalRate            float64 // fraction of a species kept after culling
	StagnantMax             int     // generations of non-improvement tolerated before culling a species as stagnant
	Elitism                 int     // number of top members copied unmutated per species
}

// ReproductionParams holds the probability that a species reproduces
// via crossover rather than cloning.
type ReproductionParams struct {
	CrossoverRate float64 // probability a species of more than 3 members mates via crossover
}

// Params is the complete, immutable configuration the pool and its
// mutation logic consume. It is built and validated by the driver
// (loading it from a TOML/JSON file is the driver's concern, not this
// package's); Validate lets the pool fail fast on a malformed struct
// regardless of how the driver assembled it.
type Params struct {
	InputNumber  int // number of Input nodes every genome carries
	OutputNumber int // number of Output nodes every genome carries
	Population   int // fixed population size P

	HiddenActivation Activation // activation function applied at Hidden nodes
	OutputActivation Activation // activation function applied at Output nodes

	Mutation    MutationParams
	Speciation  SpeciationParams
	Reproduction ReproductionParams
}

// Validate checks the parameter struct's invariants, returning an error
// describing the first violation found, or nil if the struct is usable.
func (p *Params) Validate() error {
	if p.InputNumber < 1 || p.OutputNumber < 1 {
		return errors.New("neat: input_number and output_number must be at least 1")
	}
	if p.Population < 1 {
		return errors.New("neat: population must be at least 1")
	}
	if p.Mutation.WeightMin > p.Mutation.WeightMax {
		return errors.New("neat: mutation.weight_min must not exceed weight_max")
	}
	if p.Mutation.PerturbMin > p.Mutation.PerturbMax {
		return errors.New("neat: mutation.perturb_min must not exceed perturb_max")
	}
	for name, rate := range map[string]float64{
		"weight_perturbation": p.Mutation.WeightPerturbation,
		"weight_assign":       p.Mutation.WeightAssign,
		"add_connection":      p.Mutation.AddConnection,
		"remove_connection":   p.Mutation.RemoveConnection,
		"toggle_connection":   p.Mutation.ToggleConnection,
		"add_node":            p.Mutation.AddNode,
		"remove_node":         p.Mutation.RemoveNode,
		"crossover_rate":      p.Reproduction.CrossoverRate,
	} {
		if rate < 0.0 || rate > 1.0 {
			return errors.Errorf("neat: %s must be within [0, 1], got %v", name, rate)
		}
	}
	if p.Speciation.C1 < 0.0 || p.Speciation.C2 < 0.0 {
		return errors.New("neat: speciation.c1 and c2 must be non-negative")
	}
	if p.Speciation.CompatibilityThreshold <= 0.0 {
		return errors.New("neat: speciation.compatibility_threshold must be positive")
	}
	if p.Speciation.SurvivalRate <= 0.0 || p.Speciation.SurvivalRate > 1.0 {
		return errors.New("neat: speciation.survival_rate must be within (0, 1]")
	}
	if p.Speciation.StagnantMax < 0 {
		return errors.New("neat: speciation.stagnant_max must be non-negative")
	}
	if p.Speciation.Elitism < 0 {
		return errors.New("neat: speciation.elitism must be non-negative")
	}
	return nil
}
