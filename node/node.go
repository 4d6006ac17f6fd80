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

// Package node implements the node store shared by the bst and rbtree packages.
//
// Nodes are held in an Arena and addressed by Index. Left and Right are owned
// children; Parent is a back-reference used only to walk towards the root.
package node

import "github.com/biogo/trees"

// An Index addresses a Node in an Arena.
type Index int32

// Nil is the index of an absent node.
const Nil Index = 0

// A Color represents the color of a Node.
type Color bool

// String returns a string representation of a Color.
func (c Color) String() string {
	if c {
		return "Black"
	}
	return "Red"
}

const (
	// Red as false give us the defined behaviour that new nodes are red.
	Red   Color = false
	Black Color = true
)

// A Node represents a node in a binary search tree.
type Node struct {
	Elem                trees.Comparable
	Left, Right, Parent Index
	Color               Color
}

// An Arena holds the nodes of a single tree. The zero value is an empty Arena.
type Arena struct {
	nodes []Node // nodes[Nil] is never used.
	free  []Index
	live  int
}

// New returns the index of a new red leaf holding e with the given parent.
// Pointers returned by At before a call to New are invalidated.
func (a *Arena) New(e trees.Comparable, parent Index) Index {
	if e == nil {
		panic("node: nil element")
	}
	if a.nodes == nil {
		a.nodes = make([]Node, 1, 64)
	}
	n := Node{Elem: e, Parent: parent}
	var i Index
	if k := len(a.free); k != 0 {
		i = a.free[k-1]
		a.free = a.free[:k-1]
		a.nodes[i] = n
	} else {
		i = Index(len(a.nodes))
		a.nodes = append(a.nodes, n)
	}
	a.live++
	return i
}

// Free releases the node at i. The node must already be unlinked.
func (a *Arena) Free(i Index) {
	*a.At(i) = Node{}
	a.free = append(a.free, i)
	a.live--
}

// At returns the node at i. At panics if i is Nil or has been freed.
func (a *Arena) At(i Index) *Node {
	if i == Nil {
		panic("node: dereference of absent node")
	}
	n := &a.nodes[i]
	if n.Elem == nil {
		panic("node: dereference of freed node")
	}
	return n
}

// Len returns the number of live nodes.
func (a *Arena) Len() int { return a.live }

// Color returns the effective color of the node at i. An absent node is black.
func (a *Arena) Color(i Index) Color {
	if i == Nil {
		return Black
	}
	return a.At(i).Color
}

// IsLeft reports whether i is the left child of its parent. It panics if the
// parent of i does not hold i in either child slot.
func (a *Arena) IsLeft(i Index) bool {
	p := a.At(a.At(i).Parent)
	switch i {
	case p.Left:
		return true
	case p.Right:
		return false
	}
	panic("node: parent does not hold child")
}

// Replace writes v into the slot holding u below parent, or into root if
// parent is Nil. The parent link of v is not changed.
func (a *Arena) Replace(root *Index, parent, u, v Index, s *trees.Stats) {
	s.Mutate()
	if parent == Nil {
		*root = v
		return
	}
	p := a.At(parent)
	switch u {
	case p.Left:
		p.Left = v
	case p.Right:
		p.Right = v
	default:
		panic("node: parent does not hold child")
	}
}

// Insert descends from the root held in root and attaches a new leaf holding
// e, returning its index. Keys comparing equal to a node's key go right.
func (a *Arena) Insert(root *Index, e trees.Comparable, s *trees.Stats) Index {
	if *root == Nil {
		s.Mutate()
		*root = a.New(e, Nil)
		return *root
	}
	var (
		p    = *root
		left bool
	)
	s.Read()
	for {
		n := a.At(p)
		s.Comp()
		next := n.Right
		left = e.Compare(n.Elem) < 0
		if left {
			next = n.Left
		}
		if next == Nil {
			break
		}
		s.Read()
		p = next
	}
	i := a.New(e, p)
	s.Mutate()
	if left {
		a.At(p).Left = i
	} else {
		a.At(p).Right = i
	}
	return i
}

// Search returns the first node on the search path from root whose key
// compares equal to q, or Nil.
func (a *Arena) Search(root Index, q trees.Comparable, s *trees.Stats) Index {
	for i := root; i != Nil; {
		s.Read()
		n := a.At(i)
		s.Comp()
		switch c := q.Compare(n.Elem); {
		case c == 0:
			return i
		case c < 0:
			i = n.Left
		default:
			i = n.Right
		}
	}
	return Nil
}

// Min returns the left-most node of the subtree rooted at i.
func (a *Arena) Min(i Index, s *trees.Stats) Index {
	for {
		s.Read()
		l := a.At(i).Left
		if l == Nil {
			return i
		}
		i = l
	}
}

// Height returns the number of nodes on the longest downward path from i.
// The height of Nil is zero.
func (a *Arena) Height(i Index) int {
	if i == Nil {
		return 0
	}
	var (
		h     int
		level = []Index{i}
		next  []Index
	)
	for len(level) != 0 {
		h++
		next = next[:0]
		for _, j := range level {
			n := a.At(j)
			if n.Left != Nil {
				next = append(next, n.Left)
			}
			if n.Right != Nil {
				next = append(next, n.Right)
			}
		}
		level, next = next, level
	}
	return h
}

// Snapshot returns an immutable copy of the subtree rooted at i. If colored is
// false node colors are not reported.
func (a *Arena) Snapshot(i Index, colored bool) *trees.Snapshot {
	type pending struct {
		i   Index
		dst **trees.Snapshot
	}
	var root *trees.Snapshot
	stack := []pending{{i, &root}}
	for len(stack) != 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.i == Nil {
			continue
		}
		n := a.At(p.i)
		v := &trees.Snapshot{Key: n.Elem, Red: colored && n.Color == Red}
		*p.dst = v
		stack = append(stack, pending{n.Left, &v.Left}, pending{n.Right, &v.Right})
	}
	return root
}
