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

// Package rbtree implements a red-black tree with parent links, rebalanced by
// the insertion and deletion fixup procedures described in Cormen, Leiserson,
// Rivest and Stein, Introduction to Algorithms, chapter 13.
//
// The tree does not use a shared nil sentinel. When deletion leaves no node at
// the position needing repair, that position is tracked as its parent and side.
package rbtree

import (
	"github.com/biogo/trees"
	"github.com/biogo/trees/node"
)

// A Tree manages the root node of a red-black tree.
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

// Snapshot returns an immutable copy of the Tree's shape including node colors.
func (t *Tree) Snapshot() *trees.Snapshot { return t.nodes.Snapshot(t.root, true) }

// Get returns the first match of q in the Tree.
func (t *Tree) Get(q trees.Comparable, s *trees.Stats) trees.Comparable {
	i := t.nodes.Search(t.root, q, s)
	if i == node.Nil {
		return nil
	}
	return t.nodes.At(i).Elem
}

// Insert inserts e into the Tree and restores the red-black properties.
func (t *Tree) Insert(e trees.Comparable, s *trees.Stats) {
	a := &t.nodes
	x := a.Insert(&t.root, e, s)

	for x != t.root {
		s.Read()
		p := a.At(x).Parent
		if a.At(p).Color == node.Black {
			break
		}
		// A red parent is never the root, so g is present.
		s.Read()
		g := a.At(p).Parent
		gn := a.At(g)

		s.Read()
		if p == gn.Left {
			s.Read()
			u := gn.Right
			if a.Color(u) == node.Red {
				a.At(p).Color = node.Black
				a.At(u).Color = node.Black
				gn.Color = node.Red
				x = g
				continue
			}
			s.Read()
			if x == a.At(p).Right {
				x = p
				t.rotateLeft(x, s)
				p = a.At(x).Parent
			}
			a.At(p).Color = node.Black
			a.At(g).Color = node.Red
			t.rotateRight(g, s)
		} else {
			s.Read()
			u := gn.Left
			if a.Color(u) == node.Red {
				a.At(p).Color = node.Black
				a.At(u).Color = node.Black
				gn.Color = node.Red
				x = g
				continue
			}
			s.Read()
			if x == a.At(p).Left {
				x = p
				t.rotateRight(x, s)
				p = a.At(x).Parent
			}
			a.At(p).Color = node.Black
			a.At(g).Color = node.Red
			t.rotateLeft(g, s)
		}
	}
	a.At(t.root).Color = node.Black
}

// Delete deletes the first node found that matches e according to Compare,
// returning whether a node was deleted.
func (t *Tree) Delete(e trees.Comparable, s *trees.Stats) bool {
	a := &t.nodes
	z := a.Search(t.root, e, s)
	if z == node.Nil {
		return false
	}
	zn := a.At(z)

	// x is the node needing repair; when x is Nil its position is the
	// left or right slot of xp.
	var (
		x, xp   node.Index
		left    bool
		removed = zn.Color
	)
	s.Read()
	switch {
	case zn.Left == node.Nil:
		x, xp = zn.Right, zn.Parent
		if xp != node.Nil {
			left = a.IsLeft(z)
		}
		t.transplant(z, zn.Right, s)
	case zn.Right == node.Nil:
		s.Read()
		x, xp = zn.Left, zn.Parent
		if xp != node.Nil {
			left = a.IsLeft(z)
		}
		t.transplant(z, zn.Left, s)
	default:
		s.Read()
		y := a.Min(zn.Right, s)
		yn := a.At(y)
		removed = yn.Color
		s.Read()
		x = yn.Right
		if yn.Parent == z {
			xp, left = y, false
			if x != node.Nil {
				s.Mutate()
				a.At(x).Parent = y
			}
		} else {
			xp, left = yn.Parent, true
			t.transplant(y, yn.Right, s)
			s.Mutate()
			yn.Right = zn.Right
			s.Mutate()
			a.At(yn.Right).Parent = y
		}
		t.transplant(z, y, s)
		s.Mutate()
		yn.Left = zn.Left
		s.Mutate()
		a.At(yn.Left).Parent = y
		yn.Color = zn.Color
	}
	a.Free(z)

	if removed == node.Black {
		t.deleteFixup(x, xp, left, s)
	}
	return true
}

// deleteFixup restores the red-black properties after removal of a black node
// from the position of x, which is the left child of xp when left is true.
func (t *Tree) deleteFixup(x, xp node.Index, left bool, s *trees.Stats) {
	a := &t.nodes
	for x != t.root && a.Color(x) == node.Black {
		if left {
			s.Read()
			w := a.At(xp).Right
			if a.Color(w) == node.Red {
				a.At(w).Color = node.Black
				a.At(xp).Color = node.Red
				t.rotateLeft(xp, s)
				s.Read()
				w = a.At(xp).Right
			}
			wn := a.At(w)
			s.Read()
			s.Read()
			if a.Color(wn.Left) == node.Black && a.Color(wn.Right) == node.Black {
				wn.Color = node.Red
				x = xp
				s.Read()
				xp = a.At(x).Parent
				if xp != node.Nil {
					left = a.IsLeft(x)
				}
				continue
			}
			if a.Color(wn.Right) == node.Black {
				a.At(wn.Left).Color = node.Black
				wn.Color = node.Red
				t.rotateRight(w, s)
				s.Read()
				w = a.At(xp).Right
				wn = a.At(w)
			}
			wn.Color = a.At(xp).Color
			a.At(xp).Color = node.Black
			s.Read()
			a.At(wn.Right).Color = node.Black
			t.rotateLeft(xp, s)
		} else {
			s.Read()
			w := a.At(xp).Left
			if a.Color(w) == node.Red {
				a.At(w).Color = node.Black
				a.At(xp).Color = node.Red
				t.rotateRight(xp, s)
				s.Read()
				w = a.At(xp).Left
			}
			wn := a.At(w)
			s.Read()
			s.Read()
			if a.Color(wn.Right) == node.Black && a.Color(wn.Left) == node.Black {
				wn.Color = node.Red
				x = xp
				s.Read()
				xp = a.At(x).Parent
				if xp != node.Nil {
					left = a.IsLeft(x)
				}
				continue
			}
			if a.Color(wn.Left) == node.Black {
				a.At(wn.Right).Color = node.Black
				wn.Color = node.Red
				t.rotateLeft(w, s)
				s.Read()
				w = a.At(xp).Left
				wn = a.At(w)
			}
			wn.Color = a.At(xp).Color
			a.At(xp).Color = node.Black
			s.Read()
			a.At(wn.Left).Color = node.Black
			t.rotateRight(xp, s)
		}
		x, xp = t.root, node.Nil
	}
	if x != node.Nil {
		a.At(x).Color = node.Black
	}
}

// transplant replaces the subtree rooted at u with the subtree rooted at v.
func (t *Tree) transplant(u, v node.Index, s *trees.Stats) {
	s.Read()
	p := t.nodes.At(u).Parent
	t.nodes.Replace(&t.root, p, u, v, s)
	if v != node.Nil {
		s.Mutate()
		t.nodes.At(v).Parent = p
	}
}

// (a,(c,e)d)b -rotL-> ((a,c)b,e)d
func (t *Tree) rotateLeft(x node.Index, s *trees.Stats) {
	a := &t.nodes
	n := a.At(x)
	s.Read()
	y := n.Right
	if y == node.Nil {
		panic("rbtree: left rotation without right child")
	}
	m := a.At(y)

	s.Mutate()
	n.Right = m.Left
	if m.Left != node.Nil {
		s.Mutate()
		a.At(m.Left).Parent = x
	}
	s.Mutate()
	m.Parent = n.Parent
	a.Replace(&t.root, n.Parent, x, y, s)
	s.Mutate()
	m.Left = x
	s.Mutate()
	n.Parent = y
}

// ((a,c)b,e)d -rotR-> (a,(c,e)d)b
func (t *Tree) rotateRight(x node.Index, s *trees.Stats) {
	a := &t.nodes
	n := a.At(x)
	s.Read()
	y := n.Left
	if y == node.Nil {
		panic("rbtree: right rotation without left child")
	}
	m := a.At(y)

	s.Mutate()
	n.Left = m.Right
	if m.Right != node.Nil {
		s.Mutate()
		a.At(m.Right).Parent = x
	}
	s.Mutate()
	m.Parent = n.Parent
	a.Replace(&t.root, n.Parent, x, y, s)
	s.Mutate()
	m.Right = x
	s.Mutate()
	n.Parent = y
}
