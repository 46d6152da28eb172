// Copyright (C) 2017  Jin Yeom
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

/*
Package neat implements NEAT (NeuroEvolution of Augmenting Topologies):
a population-based search algorithm that evolves the topology and
weights of small feedforward neural networks simultaneously.

NEAT

NEAT is a neuroevolution algorithm by Dr. Kenneth O. Stanley which
evolves not only a network's weights but also its topology, starting
each genome from minimal structure and complexifying it over
generations through structural mutation and historically-aligned
crossover. You can read the original paper here:
http://nn.cs.utexas.edu/downloads/papers/stanley.ec02.pdf

Scope

This package is the evolutionary engine only: the genome representation
(NetworkGraph), the feedforward adapter and its mutation policy
(Network), speciation and fitness sharing (Species), the innovation
ledger, and the per-generation reproduction loop (Pool). Parameter file
loading, argument parsing, and plot/graph visualization are left to the
caller; Pool exposes a population that a driver program iterates.

Usage

A driver constructs a Params, an Ledger, and a *rand.Rand, builds a
Pool, and alternates Evaluate and Evolve:

  ledger := neat.NewLedger(params.InputNumber, params.OutputNumber)
  pool, err := neat.New(params, ledger, rng)
  if err != nil {
  	log.Fatal(err)
  }

  for generation := 0; generation < numGenerations; generation++ {
  	pool.Evaluate(func(i int, n *neat.Network) {
  		outputs, err := n.Activate(inputs[i], params.HiddenActivation, params.OutputActivation)
  		if err != nil {
  			log.Fatal(err)
  		}
  		n.Evaluate(fitnessOf(outputs))
  	})
  	if err := pool.Evolve(ledger); err != nil {
  		log.Fatal(err)
  	}
  }
*/
package neat
