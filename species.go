/*


species.go implementation of species: groups of genomes within
compatibility distance of a common representative, used for fitness
sharing, elitism, and mating selection.

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

import "math/rand"

// Species groups networks within compatibility distance of a common
// representative. Pool.Evolve carries a species into the next
// generation only while it keeps more than one member after culling
// and has not reached stagnant_max; its member list is cleared and
// rebuilt every generation, its age, previous adjusted fitness, and
// stagnation counter carry forward, and its representative is replaced
// by a copy of a random surviving member.
type Species struct {
	id             int
	representative *Network // a copy of a prior-generation member, never a live reference
	age            int
	prevFitness    float64
	stagnant       int
	members        []*Network
}

// NewSpecies creates an empty species seeded with representative,
// which is either the ledger-minted id's first founding member (when
// no prior species matched) or a prior generation's representative.
func NewSpecies(id int, representative *Network) *Species {
	return &Species{id: id, representative: representative}
}

// ID returns the species' id.
func (s *Species) ID() int { return s.id }

// Age returns the number of generations this species has existed.
func (s *Species) Age() int { return s.age }

// IncAge ages the species by one generation.
func (s *Species) IncAge() { s.age++ }

// Representative returns the species' representative.
func (s *Species) Representative() *Network { return s.representative }

// Members returns the species' current-generation members.
func (s *Species) Members() []*Network { return s.members }

// Stagnant returns the number of consecutive generations the species'
// adjusted fitness has failed to strictly improve.
func (s *Species) Stagnant() int { return s.stagnant }

// TryAssign appends g to the species if its compatibility distance to
// the representative is within threshold, and reports whether it did.
func (s *Species) TryAssign(g *Network, c1, c2, threshold float64) bool {
	d := s.representative.Graph().CompatibilityMetric(g.Graph(), c1, c2)
	if d > threshold {
		return false
	}
	s.members = append(s.members, g)
	return true
}

// ForceAssign appends g unconditionally, used when g founds a brand
// new species because it matched none of the existing ones.
func (s *Species) ForceAssign(g *Network) {
	s.members = append(s.members, g)
}

// KillWorst keeps the top floor(n*rate) members, assuming members are
// already ordered best-to-worst by fitness, and always keeps at least
// one.
func (s *Species) KillWorst(rate float64) {
	keep := int(float64(len(s.members)) * rate)
	if keep < 1 {
		keep = 1
	}
	if keep > len(s.members) {
		keep = len(s.members)
	}
	s.members = s.members[:keep]
}

// UpdateAdjustedFitness computes the fitness-shared average, sum of
// member fitness divided by the species size squared, records it as
// the new previous fitness, and advances the stagnation counter when
// the value did not strictly improve.
func (s *Species) UpdateAdjustedFitness() float64 {
	n := len(s.members)
	if n == 0 {
		return 0
	}
	var sum float64
	for _, m := range s.members {
		f, _ := m.Fitness()
		sum += f
	}
	adjusted := sum / float64(n) / float64(n)
	if adjusted > s.prevFitness {
		s.stagnant = 0
	} else {
		s.stagnant++
	}
	s.prevFitness = adjusted
	return adjusted
}

// RandomGenome clones a uniformly-random member. Used both for asexual
// reproduction and, by the pool, to pick the species' representative
// for the next generation (itself a copy of a survivor, never a live
// reference into the replaced population).
func (s *Species) RandomGenome(rng *rand.Rand) *Network {
	if len(s.members) == 0 {
		return nil
	}
	return s.members[rng.Intn(len(s.members))].Clone()
}

// Mate picks two distinct random members and returns their crossover
// offspring, or nil if the species has fewer than two members.
func (s *Species) Mate(rng *rand.Rand) *Network {
	if len(s.members) < 2 {
		return nil
	}
	i := rng.Intn(len(s.members))
	j := rng.Intn(len(s.members))
	for j == i {
		j = rng.Intn(len(s.members))
	}
	return s.members[i].Crossover(s.members[j], rng)
}

// Elites returns clones of up to the top k members, unmutated.
func (s *Species) Elites(k int) []*Network {
	if k > len(s.members) {
		k = len(s.members)
	}
	elites := make([]*Network, k)
	for i := 0; i < k; i++ {
		elites[i] = s.members[i].Clone()
	}
	return elites
}
