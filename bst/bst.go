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

// Package bst implements an unbalanced binary search tree.
//
// The tree performs no rebalancing and serves as the baseline against which
// the balanced trees are measured. Its height is O(n) in the worst case.
package bst

import (
	"github.com/biogo/trees"
	"github.com/biogo/trees/node"
)

// A Tree manages the root node of an unbalanced binary search tree.
type Tree struct {
	nodes node.Arena
	root  node.Index
}

var _ trees.Tree = (*Tree)(nil)

// New returns an empty Tree.
func New() *Tree { return &Tree{} }

// Len returns the number of elements stored in the Tree.
func (t *Tree) Len() int { return t.nodes.Len() }

// Height returns the height of the Tree.
func (t *Tree) Height() int { return t.nodes.Height(t.root) }

// Snapshot returns an immutable copy of the Tree's shape.
func (t *Tree) Snapshot() *trees.Snapshot { return t.nodes.Snapshot(t.root, false) }

// Get returns the first match of q in the Tree.
func (t *Tree) Get(q trees.Comparable, s *trees.Stats) trees.Comparable {
	i := t.nodes.Search(t.root, q, s)
	if i == node.Nil {
		return nil
	}
	return t.nodes.At(i).Elem
}

// Insert inserts e into the Tree as a new leaf.
func (t *Tree) Insert(e trees.Comparable, s *trees.Stats) {
	t.nodes.Insert(&t.root, e, s)
}

// Delete deletes the first node found that matches e according to Compare,
// returning whether a node was deleted.
//
// A node with two children is replaced by its in-order successor, which is
// moved into the deleted node's position.
func (t *Tree) Delete(e trees.Comparable, s *trees.Stats) bool {
	z := t.nodes.Search(t.root, e, s)
	if z == node.Nil {
		return false
	}
	n := t.nodes.At(z)

	var r node.Index
	switch {
	case n.Left == node.Nil:
		s.Read()
		r = n.Right
	case n.Right == node.Nil:
		s.Read()
		r = n.Left
	default:
		s.Read()
		r = t.nodes.Min(n.Right, s)
		y := t.nodes.At(r)

		// Unhook the successor. Its parent is n itself when it is the
		// immediate right child.
		s.Mutate()
		if r == n.Right {
			n.Right = y.Right
		} else {
			t.nodes.At(y.Parent).Left = y.Right
		}
		if y.Right != node.Nil {
			s.Mutate()
			t.nodes.At(y.Right).Parent = y.Parent
		}

		s.Mutate()
		s.Mutate()
		y.Left, y.Right = n.Left, n.Right
		if y.Left != node.Nil {
			s.Mutate()
			t.nodes.At(y.Left).Parent = r
		}
		if y.Right != node.Nil {
			s.Mutate()
			t.nodes.At(y.Right).Parent = r
		}
	}

	if r != node.Nil {
		s.Mutate()
		t.nodes.At(r).Parent = n.Parent
	}
	t.nodes.Replace(&t.root, n.Parent, z, r, s)
	t.nodes.Free(z)

	return true
}
