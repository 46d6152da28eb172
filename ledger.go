/*


ledger.go implementation of the innovation ledger.

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

// connKey identifies a connection innovation by the historical ids of
// its source and target nodes, not by genome-local graph indices.
type connKey struct {
	source int
	target int
}

// Ledger mints the historical identifiers that make crossover alignment
// and speciation possible across independently-mutated genomes: node
// ids, connection innovation numbers, and species ids. It is owned by
// the driver and threaded mutably through every pool operation that may
// introduce new structure. It is not safe for concurrent use.
type Ledger struct {
	nodeCounter int
	connCounter int
	specCounter int
	connRecord  map[connKey]int
}

// NewLedger creates a ledger for a run with the given input/output
// topology, reserving input_number + output_number + 1 node ids (the
// Input, Output, and Bias nodes shared by every genome in the run).
func NewLedger(inputNumber, outputNumber int) *Ledger {
	return &Ledger{
		nodeCounter: inputNumber + outputNumber + 1,
		connCounter: 0,
		specCounter: 0,
		connRecord:  make(map[connKey]int),
	}
}

// NewNode mints a fresh, monotonic node id.
func (l *Ledger) NewNode() int {
	id := l.nodeCounter
	l.nodeCounter++
	return id
}

// NewConnection returns the innovation number for the connection gene
// between the historical ids source and target. The first call for a
// given pair mints a fresh number and records it; later calls for the
// same pair, from any genome, return the same number.
func (l *Ledger) NewConnection(source, target int) int {
	key := connKey{source, target}
	if innov, ok := l.connRecord[key]; ok {
		return innov
	}
	innov := l.connCounter
	l.connRecord[key] = innov
	l.connCounter++
	return innov
}

// NewSpecies mints a fresh, monotonic species id.
func (l *Ledger) NewSpecies() int {
	id := l.specCounter
	l.specCounter++
	return id
}

// Snapshot reports the ledger's current counters, used for
// per-generation telemetry.
func (l *Ledger) Snapshot() (nodes, connections, species int) {
	return l.nodeCounter, l.connCounter, l.specCounter
}
