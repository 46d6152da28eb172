/*


errors.go sentinel error values for the NEAT engine's error taxonomy.

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

// ErrInputShapeMismatch is returned when Activate is called with an
// input vector whose length does not match the network's input_number.
var ErrInputShapeMismatch = errors.New("neat: input vector length does not match input_number")

// ErrIOMismatch is returned (as a false crossover result, wrapped for
// logging) when two parents disagree on input/output count.
var ErrIOMismatch = errors.New("neat: parents disagree on input/output shape")

// ErrMissingFitness marks a programming error: an operation that
// requires a genome's fitness (crossover, compare) was invoked before
// evaluate set one. This is not a recoverable condition and panics
// rather than returning an error.
var ErrMissingFitness = errors.New("neat: genome has no fitness; evaluate was not called")

// ErrSpeciesCollapse is returned by Pool.Evolve when the compatibility
// threshold culled every species down to one or fewer members, leaving
// nothing to reproduce from.
var ErrSpeciesCollapse = errors.New("neat: all species collapsed; compatibility_threshold is too tight")
