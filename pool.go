/*


pool.go implementation of the pool: the population of genomes and the
per-generation evolution loop that speciates, culls, and reproduces it.

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
	"math"
	"math/rand"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Pool owns the population, the run's parameters, the previous
// generation's species descriptors, and the generation counter. It
// exclusively owns every genome; species hold only short-lived
// back-references into the population during speciation and
// reproduction. The innovation ledger is owned by the driver and
// passed mutably into Evolve.
type Pool struct {
	params       *Params
	population   []*Network
	priorSpecies []*Species
	generation   int
	rng          *rand.Rand
	logger       *zap.Logger
	stats        *Statistics
	hof          *HallOfFame
}

// New builds a pool of params.Population fresh, fully-connected
// genomes with weights randomized in [weight_min, weight_max]. rng is
// retained for the lifetime of the pool: every random choice Evolve
// makes, from speciation through mutation, draws from it, so seeding
// it deterministically reproduces a run exactly.
func New(params *Params, ledger *Ledger, rng *rand.Rand) (*Pool, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	population := make([]*Network, params.Population)
	for i := range population {
		n := NewNetwork(params.InputNumber, params.OutputNumber, ledger)
		n.Graph().RandomizeWeights(params.Mutation.WeightMin, params.Mutation.WeightMax, rng)
		population[i] = n
	}

	return &Pool{
		params:     params,
		population: population,
		generation: 1,
		rng:        rng,
		logger:     newLogger(),
		stats:      NewStatistics(),
		hof:        NewHallOfFame(10),
	}, nil
}

// SetLogger replaces the pool's structured logger.
func (p *Pool) SetLogger(logger *zap.Logger) { p.logger = logger }

// Generation returns the current generation number.
func (p *Pool) Generation() int { return p.generation }

// Population returns the current population. The pool retains
// ownership; callers must not retain a reference across a call to
// Evolve, which replaces it wholesale.
func (p *Pool) Population() []*Network { return p.population }

// Stats returns the pool's accumulated per-generation telemetry.
func (p *Pool) Stats() *Statistics { return p.stats }

// HallOfFame returns the pool's hall of fame.
func (p *Pool) HallOfFame() *HallOfFame { return p.hof }

// ActivateNth is a convenience pass-through to genome i's Activate.
func (p *Pool) ActivateNth(i int, inputs []float64) ([]float64, error) {
	return p.population[i].Activate(inputs, p.params.HiddenActivation, p.params.OutputActivation)
}

// Evaluate invokes f(i, genome) for every genome in ascending index
// order, then asserts every genome now has a fitness (evaluate leaving
// one unset is a programming error and panics, per the missing-fitness
// taxonomy), sorts the population descending by fitness, and returns
// the new best genome.
func (p *Pool) Evaluate(f func(i int, n *Network)) *Network {
	for i, n := range p.population {
		f(i, n)
	}
	for i, n := range p.population {
		if _, ok := n.Fitness(); !ok {
			panic(errors.Wrapf(ErrMissingFitness, "genome %d was not evaluated", i))
		}
	}
	sort.Slice(p.population, func(i, j int) bool {
		return p.population[i].Compare(p.population[j]) > 0
	})
	return p.population[0]
}

// Evolve runs one generation of speciation, culling, elitism, offspring
// allocation, reproduction, and mutation, replacing the population and
// advancing the generation counter. It returns ErrSpeciesCollapse if
// the compatibility threshold, or stagnation, culled every species
// down to one or fewer members, or past stagnant_max generations
// without improvement, leaving nothing to reproduce from; the pool is
// left unchanged in that case so the driver can adjust parameters and
// retry.
func (p *Pool) Evolve(ledger *Ledger) error {
	bestFitness, _ := p.population[0].Fitness()

	species := p.speciate(ledger)
	for _, sp := range species {
		sp.KillWorst(p.params.Speciation.SurvivalRate)
	}

	// A species that has gone stagnant_max generations without its
	// adjusted fitness improving is dropped the same way as one culled
	// to a singleton: no elites, no offspring, and no entry in the next
	// generation's prior-species list.
	survivors := species[:0]
	for _, sp := range species {
		if len(sp.Members()) > 1 && sp.Stagnant() < p.params.Speciation.StagnantMax {
			survivors = append(survivors, sp)
		}
	}
	if len(survivors) == 0 {
		p.logger.Error("species collapse",
			zap.Int("generation", p.generation),
			zap.Float64("compatibility_threshold", p.params.Speciation.CompatibilityThreshold))
		return errors.Wrapf(ErrSpeciesCollapse, "generation %d", p.generation)
	}

	nextPopulation := make([]*Network, 0, p.params.Population)
	for _, sp := range survivors {
		nextPopulation = append(nextPopulation, sp.Elites(p.params.Speciation.Elitism)...)
	}

	allocation := p.allocateOffspring(survivors, p.params.Population-len(nextPopulation))
	for i, sp := range survivors {
		for k := 0; k < allocation[i]; k++ {
			offspring := p.reproduce(sp)
			offspring.Mutate(p.rng, &p.params.Mutation, ledger)
			nextPopulation = append(nextPopulation, offspring)
		}
	}

	fitnesses := make([]float64, len(p.population))
	for i, n := range p.population {
		fitnesses[i], _ = n.Fitness()
	}
	nodes, connections, _ := ledger.Snapshot()
	p.stats.Record(p.generation, len(survivors), len(nextPopulation), fitnesses, nodes, connections)
	p.hof.Update(p.generation, p.population[0])

	p.logger.Info("generation complete",
		zap.Int("generation", p.generation),
		zap.Int("species", len(survivors)),
		zap.Int("population", len(nextPopulation)),
		zap.Float64("best_fitness", bestFitness))

	p.priorSpecies = p.carryForward(survivors)
	p.population = nextPopulation
	p.generation++
	return nil
}

// speciate ages each prior species by one generation and seeds a fresh
// species from its representative, then assigns every genome
// (best-to-worst, since Evaluate left the population sorted) to the
// first species whose representative it is compatible with, founding a
// new species when none matches.
func (p *Pool) speciate(ledger *Ledger) []*Species {
	sp := p.params.Speciation
	next := make([]*Species, 0, len(p.priorSpecies))
	for _, prior := range p.priorSpecies {
		fresh := NewSpecies(prior.id, prior.representative)
		fresh.age = prior.age + 1
		fresh.prevFitness = prior.prevFitness
		fresh.stagnant = prior.stagnant
		next = append(next, fresh)
	}

	for _, g := range p.population {
		assigned := false
		for _, s := range next {
			if s.TryAssign(g, sp.C1, sp.C2, sp.CompatibilityThreshold) {
				assigned = true
				break
			}
		}
		if !assigned {
			id := ledger.NewSpecies()
			founded := NewSpecies(id, g.Clone())
			founded.ForceAssign(g)
			next = append(next, founded)
		}
	}
	return next
}

// allocateOffspring computes each surviving species' fitness-shared
// share of the T remaining population slots: ceil(T*a_i/sum(a)) per
// species, then decrements round-robin across species with a nonzero
// share until the total equals T exactly (the ceiling can over-commit
// by more than one species' worth, so this may take several passes).
func (p *Pool) allocateOffspring(survivors []*Species, total int) []int {
	if total < 0 {
		total = 0
	}

	adjusted := make([]float64, len(survivors))
	var sum float64
	for i, sp := range survivors {
		adjusted[i] = sp.UpdateAdjustedFitness()
		sum += adjusted[i]
	}

	allocation := make([]int, len(survivors))
	if sum <= 0 {
		base := total / len(survivors)
		for i := range allocation {
			allocation[i] = base
		}
		for i := 0; i < total-base*len(survivors); i++ {
			allocation[i]++
		}
		return allocation
	}

	allocated := 0
	for i := range survivors {
		allocation[i] = int(math.Ceil(float64(total) * adjusted[i] / sum))
		if allocation[i] < 0 {
			allocation[i] = 0
		}
		allocated += allocation[i]
	}
	idx := 0
	for allocated > total {
		if allocation[idx] > 0 {
			allocation[idx]--
			allocated--
		}
		idx = (idx + 1) % len(allocation)
	}
	return allocation
}

// reproduce produces one offspring from sp: crossover of two random
// members when the species has more than 3 members and a Bernoulli
// draw against crossover_rate succeeds, otherwise a clone of a random
// member. A nil crossover result (parents within a species should
// always share input/output shape, but the graph-level operation
// still reports mismatch as a false/nil result rather than an error)
// falls back to cloning, logging the absent result for diagnosis.
func (p *Pool) reproduce(sp *Species) *Network {
	if len(sp.Members()) > 3 && bernoulli(p.rng, p.params.Reproduction.CrossoverRate) {
		if offspring := sp.Mate(p.rng); offspring != nil {
			return offspring
		}
		p.logger.Warn("crossover produced no offspring",
			zap.Int("species", sp.ID()),
			zap.Error(errors.Wrapf(ErrIOMismatch, "species %d", sp.ID())))
	}
	return sp.RandomGenome(p.rng)
}

// carryForward builds the prior-species list for the next generation:
// each surviving species' representative becomes a fresh copy of a
// random member (never a live reference into the population this
// Evolve call just replaced).
func (p *Pool) carryForward(survivors []*Species) []*Species {
	next := make([]*Species, len(survivors))
	for i, sp := range survivors {
		carried := NewSpecies(sp.id, sp.RandomGenome(p.rng))
		carried.age = sp.age
		carried.prevFitness = sp.prevFitness
		carried.stagnant = sp.stagnant
		next[i] = carried
	}
	return next
}
