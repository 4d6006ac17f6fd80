// Copyright ©2012 Dan Kortschak <dan.kortschak@adelaide.edu.au>
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

package trees

import "fmt"

// Stats holds the cost counters of tree operations.
//
// Comparisons counts calls to Compare. PointerReads counts dereferences of
// child and parent links. PointerMutations counts writes to child and parent
// links and to the tree's root. Colour changes are not counted.
//
// Height is not maintained by the trees; it is set by the caller after an
// operation.
//
// All methods may be called on a nil *Stats, in which case nothing is recorded.
type Stats struct {
	Comparisons      int
	PointerReads     int
	PointerMutations int
	Height           int
}

// Comp records a key comparison.
func (s *Stats) Comp() {
	if s == nil {
		return
	}
	s.Comparisons++
}

// Read records a link dereference.
func (s *Stats) Read() {
	if s == nil {
		return
	}
	s.PointerReads++
}

// Mutate records a link write.
func (s *Stats) Mutate() {
	if s == nil {
		return
	}
	s.PointerMutations++
}

// SetHeight records the tree height h.
func (s *Stats) SetHeight(h int) {
	if s == nil {
		return
	}
	s.Height = h
}

// Add adds the counters of o to s. Height is replaced by the larger of the two.
func (s *Stats) Add(o Stats) {
	if s == nil {
		return
	}
	s.Comparisons += o.Comparisons
	s.PointerReads += o.PointerReads
	s.PointerMutations += o.PointerMutations
	if o.Height > s.Height {
		s.Height = o.Height
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("comparisons=%d reads=%d mutations=%d height=%d",
		s.Comparisons, s.PointerReads, s.PointerMutations, s.Height)
}
