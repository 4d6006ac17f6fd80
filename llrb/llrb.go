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

// Package llrb implements a bottom-up 2-3 Left-Leaning Red Black tree as described in
//  http://www.cs.princeton.edu/~rs/talks/LLRB/LLRB.pdf
//  http://www.cs.princeton.edu/~rs/talks/LLRB/Java/RedBlackBST.java
//
// The tree keeps every inserted element; elements comparing equal are placed to
// the right of one another.
package llrb

import (
	"github.com/biogo/trees"
	"github.com/biogo/trees/node"
)

// A Node represents a node in the LLRB tree.
type Node struct {
	Elem        trees.Comparable
	Left, Right *Node
	Color       node.Color

	// seq orders nodes holding equal elements by insertion.
	seq uint64
}

// A Tree manages the root node of an LLRB tree.
type Tree struct {
	Root  *Node // Root node of the tree.
	Count int   // Number of elements stored.

	seq uint64 // Last insertion sequence number issued.
}

var _ trees.Tree = (*Tree)(nil)

// New returns an empty Tree.
func New() *Tree { return &Tree{} }

// Helper methods

// color returns the effect color of a Node. A nil node returns black.
func (self *Node) color() node.Color {
	if self == nil {
		return node.Black
	}
	return self.Color
}

// (a,c)b -rotL-> ((a,)b,)c
func (self *Node) rotateLeft(s *trees.Stats) (root *Node) {
	// Assumes: self has a right child.
	s.Read()
	root = self.Right
	s.Mutate()
	self.Right = root.Left
	s.Mutate()
	root.Left = self
	root.Color = self.Color
	self.Color = node.Red
	return
}

// (a,c)b -rotR-> (,(,c)b)a
func (self *Node) rotateRight(s *trees.Stats) (root *Node) {
	// Assumes: self has a left child.
	s.Read()
	root = self.Left
	s.Mutate()
	self.Left = root.Right
	s.Mutate()
	root.Right = self
	root.Color = self.Color
	self.Color = node.Red
	return
}

// (aR,cR)bB -flipC-> (aB,cB)bR | (aB,cB)bR -flipC-> (aR,cR)bB
func (self *Node) flipColors() {
	// Assumes: self has two children.
	self.Color = !self.Color
	self.Left.Color = !self.Left.Color
	self.Right.Color = !self.Right.Color
}

// fixUp ensures that black link balance is correct, that red nodes lean left,
// and that 4 nodes are split.
func (self *Node) fixUp(s *trees.Stats) *Node {
	if self.Right.color() == node.Red {
		self = self.rotateLeft(s)
	}
	if self.Left.color() == node.Red && self.Left.Left.color() == node.Red {
		self = self.rotateRight(s)
	}
	if self.Left.color() == node.Red && self.Right.color() == node.Red {
		self.flipColors()
	}
	return self
}

func (self *Node) moveRedLeft(s *trees.Stats) *Node {
	self.flipColors()
	if self.Right.Left.color() == node.Red {
		s.Mutate()
		self.Right = self.Right.rotateRight(s)
		self = self.rotateLeft(s)
		self.flipColors()
	}
	return self
}

func (self *Node) moveRedRight(s *trees.Stats) *Node {
	self.flipColors()
	if self.Left.Left.color() == node.Red {
		self = self.rotateRight(s)
		self.flipColors()
	}
	return self
}

// Len returns the number of elements stored in the Tree.
func (self *Tree) Len() int {
	return self.Count
}

// Height returns the height of the Tree.
func (self *Tree) Height() int {
	return self.Root.height()
}

func (self *Node) height() int {
	if self == nil {
		return 0
	}
	l, r := self.Left.height(), self.Right.height()
	if l > r {
		return l + 1
	}
	return r + 1
}

// Snapshot returns an immutable copy of the Tree's shape including node colors.
func (self *Tree) Snapshot() *trees.Snapshot {
	return self.Root.snapshot()
}

func (self *Node) snapshot() *trees.Snapshot {
	if self == nil {
		return nil
	}
	return &trees.Snapshot{
		Key:   self.Elem,
		Left:  self.Left.snapshot(),
		Right: self.Right.snapshot(),
		Red:   self.Color == node.Red,
	}
}

// Get returns the first match of q in the Tree.
func (self *Tree) Get(q trees.Comparable, s *trees.Stats) trees.Comparable {
	if self.Root == nil {
		return nil
	}
	n := self.Root.search(q, s)
	if n == nil {
		return nil
	}
	return n.Elem
}

func (self *Node) search(q trees.Comparable, s *trees.Stats) (n *Node) {
	n = self
	for n != nil {
		s.Read()
		s.Comp()
		switch c := q.Compare(n.Elem); {
		case c == 0:
			return n
		case c < 0:
			n = n.Left
		default:
			n = n.Right
		}
	}

	return
}

// Insert inserts the Comparable e into the Tree. Elements comparing equal
// to e are retained and e is placed to their right.
func (self *Tree) Insert(e trees.Comparable, s *trees.Stats) {
	self.seq++
	s.Mutate()
	self.Root = self.Root.insert(e, self.seq, s)
	self.Count++
	self.Root.Color = node.Black
}

func (self *Node) insert(e trees.Comparable, seq uint64, s *trees.Stats) (root *Node) {
	if self == nil {
		return &Node{Elem: e, seq: seq}
	}

	s.Read()
	s.Comp()
	if e.Compare(self.Elem) < 0 {
		s.Mutate()
		self.Left = self.Left.insert(e, seq, s)
	} else {
		s.Mutate()
		self.Right = self.Right.insert(e, seq, s)
	}

	if self.Right.color() == node.Red && self.Left.color() == node.Black {
		self = self.rotateLeft(s)
	}
	if self.Left.color() == node.Red && self.Left.Left.color() == node.Red {
		self = self.rotateRight(s)
	}
	if self.Left.color() == node.Red && self.Right.color() == node.Red {
		self.flipColors()
	}

	root = self

	return
}

// DeleteMin deletes the node with the minimum value in the tree. If elements
// comparing equal have been inserted the left-most minimum will be deleted.
func (self *Tree) DeleteMin(s *trees.Stats) {
	if self.Root == nil {
		return
	}
	var d int
	s.Mutate()
	self.Root, d = self.Root.deleteMin(s)
	self.Count += d
	if self.Root == nil {
		return
	}
	self.Root.Color = node.Black
}

func (self *Node) deleteMin(s *trees.Stats) (root *Node, d int) {
	s.Read()
	if self.Left == nil {
		return nil, -1
	}
	if self.Left.color() == node.Black && self.Left.Left.color() == node.Black {
		self = self.moveRedLeft(s)
	}
	s.Mutate()
	self.Left, d = self.Left.deleteMin(s)

	root = self.fixUp(s)

	return
}

// Delete deletes the first node found that matches e according to Compare,
// returning whether a node was deleted.
func (self *Tree) Delete(e trees.Comparable, s *trees.Stats) bool {
	if self.Root == nil {
		return false
	}
	var d int
	s.Mutate()
	self.Root, d = self.Root.delete(&target{elem: e}, s)
	self.Count += d
	if self.Root != nil {
		self.Root.Color = node.Black
	}
	return d != 0
}

// A target identifies the node a deletion is descending towards. Until a node
// holding an element equal to elem is met, only elem is known. After that the
// deletion is bound to that node's copy and equal elements are ordered by seq.
type target struct {
	elem  trees.Comparable
	seq   uint64
	bound bool
}

func (t *target) compare(n *Node, s *trees.Stats) int {
	s.Comp()
	c := t.elem.Compare(n.Elem)
	if c != 0 {
		return c
	}
	if !t.bound {
		t.seq, t.bound = n.seq, true
	}
	switch {
	case t.seq < n.seq:
		return -1
	case t.seq > n.seq:
		return 1
	}
	return 0
}

func (self *Node) delete(t *target, s *trees.Stats) (root *Node, d int) {
	if t.compare(self, s) < 0 {
		s.Read()
		if self.Left != nil {
			if self.Left.color() == node.Black && self.Left.Left.color() == node.Black {
				self = self.moveRedLeft(s)
			}
			s.Mutate()
			self.Left, d = self.Left.delete(t, s)
		}
	} else {
		if self.Left.color() == node.Red {
			self = self.rotateRight(s)
		}
		s.Read()
		if t.compare(self, s) == 0 && self.Right == nil {
			return nil, -1
		}
		if self.Right != nil {
			if self.Right.color() == node.Black && self.Right.Left.color() == node.Black {
				self = self.moveRedRight(s)
			}
			if t.compare(self, s) == 0 {
				m := self.Right.min(s)
				self.Elem, self.seq = m.Elem, m.seq
				s.Mutate()
				self.Right, d = self.Right.deleteMin(s)
			} else {
				s.Mutate()
				self.Right, d = self.Right.delete(t, s)
			}
		}
	}

	root = self.fixUp(s)

	return
}

func (self *Node) min(s *trees.Stats) (n *Node) {
	for n = self; n.Left != nil; n = n.Left {
		s.Read()
	}
	return
}
