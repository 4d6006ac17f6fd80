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

package splay

import "github.com/biogo/trees"

// A steer reports the direction to take from n towards the node being
// splayed: negative for left, positive for right and zero to stop at n.
type steer func(n *Node) int

// toKey steers towards the first node whose key compares equal to q.
func toKey(q trees.Comparable, s *trees.Stats) steer {
	return func(n *Node) int {
		s.Comp()
		return q.Compare(n.Elem)
	}
}

// toNode steers towards the node target holding e. Keys equal to e go right,
// matching insertion.
func toNode(e trees.Comparable, target *Node, s *trees.Stats) steer {
	return func(n *Node) int {
		if n == target {
			return 0
		}
		s.Comp()
		if e.Compare(n.Elem) < 0 {
			return -1
		}
		return 1
	}
}

// toMin steers towards the left-most node of a subtree whose keys do not
// precede q.
func toMin(q trees.Comparable, s *trees.Stats) steer {
	return func(n *Node) int {
		s.Comp()
		if q.Compare(n.Elem) <= 0 {
			return -1
		}
		return 1
	}
}

// A frame holds the decisions taken at one node and its child on the splay
// path. Frames are two levels apart.
type frame struct {
	g     *Node
	d, dp int

	// slot is the child link of g's child holding the root
	// of the next frame's subtree.
	slot **Node
}

// splay moves the node selected by dir to the root of the subtree rooted at n
// and returns the new subtree root. If the path runs out before a node is
// selected, the last node on the path is moved to the root.
//
// The rotations are those of the recursive formulation: each frame first has
// its grandchild subtree splayed, then performs a zig-zig or zig-zag step, so
// a lone zig falls at the bottom of the path rather than at the root.
func splay(n *Node, dir steer, s *trees.Stats) *Node {
	var frames []frame
	for {
		f := frame{g: n, d: dir(n)}
		var p *Node
		switch {
		case f.d < 0:
			s.Read()
			p = n.Left
		case f.d > 0:
			s.Read()
			p = n.Right
		}
		if p != nil {
			f.dp = dir(p)
			switch {
			case f.dp < 0:
				s.Read()
				f.slot = &p.Left
			case f.dp > 0:
				s.Read()
				f.slot = &p.Right
			}
		}
		frames = append(frames, f)
		if f.slot == nil || *f.slot == nil {
			break
		}
		n = *f.slot
	}

	var sub *Node
	for i := len(frames) - 1; i >= 0; i-- {
		f := frames[i]
		if sub != nil {
			s.Mutate()
			*f.slot = sub
		}
		sub = f.step(s)
	}
	return sub
}

// step performs the rotations of f once its grandchild subtree has been
// splayed, returning the new root of f's subtree.
func (f frame) step(s *trees.Stats) *Node {
	g := f.g
	switch {
	case f.d < 0:
		if g.Left == nil {
			return g
		}
		switch {
		case f.dp < 0:
			g = rotateRight(g, s)
		case f.dp > 0:
			s.Mutate()
			g.Left = rotateLeft(g.Left, s)
		}
		g = rotateRight(g, s)
	case f.d > 0:
		if g.Right == nil {
			return g
		}
		switch {
		case f.dp > 0:
			g = rotateLeft(g, s)
		case f.dp < 0:
			s.Mutate()
			g.Right = rotateRight(g.Right, s)
		}
		g = rotateLeft(g, s)
	}
	return g
}

// (a,c)b -rotR-> (,(,c)b)a
// rotateRight returns n unchanged when it has no left child.
func rotateRight(n *Node, s *trees.Stats) *Node {
	s.Read()
	x := n.Left
	if x == nil {
		return n
	}
	s.Mutate()
	n.Left = x.Right
	s.Mutate()
	x.Right = n
	return x
}

// (a,c)b -rotL-> ((a,)b,)c
// rotateLeft returns n unchanged when it has no right child.
func rotateLeft(n *Node, s *trees.Stats) *Node {
	s.Read()
	x := n.Right
	if x == nil {
		return n
	}
	s.Mutate()
	n.Right = x.Left
	s.Mutate()
	x.Left = n
	return x
}
