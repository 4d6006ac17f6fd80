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

// Package trees defines the contract shared by the instrumented ordered trees in
// the bst, rbtree, splay and llrb packages.
//
// Every tree is a multiset: keys comparing equal are all retained, routed to the
// right subtree on insertion, and Delete removes one of them per call.
package trees

// A Comparable is a type that can be inserted into a Tree or used as a query on
// the tree.
type Comparable interface {
	// Compare returns a value indicating the sort order relationship between the
	// receiver and the parameter.
	//
	// Given c = a.Compare(b):
	//  c < 0 if a < b;
	//  c == 0 if a == b; and
	//  c > 0 if a > b.
	//
	Compare(Comparable) int
}

// An Int is an int type satisfying the Comparable interface.
type Int int

// Compare returns the sort order relationship between i and c. Compare assumes the
// underlying type of c is Int.
func (i Int) Compare(c Comparable) int {
	j := c.(Int)
	switch {
	case i < j:
		return -1
	case i > j:
		return 1
	}
	return 0
}

// A Tree is an ordered container of Comparable keys. A Tree is not safe for
// concurrent use.
type Tree interface {
	// Insert adds k to the tree. Insert always succeeds; a key comparing equal
	// to a stored key is placed in the right subtree of that key.
	Insert(k Comparable, s *Stats)

	// Delete removes one stored key comparing equal to k, reporting whether
	// such a key was found.
	Delete(k Comparable, s *Stats) bool

	// Get returns a stored key comparing equal to q, or nil if there is none.
	Get(q Comparable, s *Stats) Comparable

	// Height returns the number of nodes on the longest path from the root
	// to a leaf, measured by a full traversal. An empty tree has height 0.
	Height() int

	// Len returns the number of keys stored.
	Len() int

	// Snapshot returns an immutable copy of the tree's shape.
	Snapshot() *Snapshot
}

// A Snapshot is an immutable view of a subtree used for rendering.
type Snapshot struct {
	Key         Comparable
	Left, Right *Snapshot

	// Red is true for red nodes of red-black trees.
	Red bool
}
