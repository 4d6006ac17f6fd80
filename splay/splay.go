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

// Package splay implements a splay tree as described in
//  Sleator and Tarjan, Self-Adjusting Binary Search Trees, JACM 32(3) 1985.
//
// Every access moves the accessed node to the root by zig, zig-zig and zig-zag
// steps. Nodes carry no parent link; the access path is held in an explicit
// stack so that degenerate trees do not deepen the goroutine stack.
package splay

import "github.com/biogo/trees"

// A Node represents a node in the splay tree.
type Node struct {
	Elem        trees.Comparable
	Left, Right *Node
}

// A Tree manages the root node of a splay tree.
type Tree struct {
	root  *Node
	count int
}

var _ trees.Tree = (*Tree)(nil)

// New returns an empty Tree.
func New() *Tree { return &Tree{} }

// Len returns the number of elements stored in the Tree.
func (t *Tree) Len() int { return t.count }

// Insert inserts e into the Tree as a new leaf. Each subtree on the insertion
// path is then splayed in turn, deepest first, so the new node rises one level
// per splay and ends at the root.
func (t *Tree) Insert(e trees.Comparable, s *trees.Stats) {
	leaf := &Node{Elem: e}
	t.count++
	s.Mutate()
	if t.root == nil {
		t.root = leaf
		return
	}
	var (
		path []**Node // Child slots below the root, top down.
		n    = t.root
	)
	s.Read()
	for {
		s.Comp()
		slot := &n.Right
		if e.Compare(n.Elem) < 0 {
			slot = &n.Left
		}
		s.Read()
		if *slot == nil {
			s.Mutate()
			*slot = leaf
			break
		}
		path = append(path, slot)
		n = *slot
	}
	for i := len(path) - 1; i >= 0; i-- {
		s.Mutate()
		*path[i] = splay(*path[i], toNode(e, leaf, s), s)
	}
	t.root = splay(t.root, toNode(e, leaf, s), s)
}

// Get returns the first match of q in the Tree. The matching node, or the last
// node on the search path if there is no match, is splayed to the root.
func (t *Tree) Get(q trees.Comparable, s *trees.Stats) trees.Comparable {
	if t.root == nil {
		return nil
	}
	s.Mutate()
	t.root = splay(t.root, toKey(q, s), s)
	s.Comp()
	if q.Compare(t.root.Elem) != 0 {
		return nil
	}
	return t.root.Elem
}

// Delete deletes the first node found that matches e according to Compare,
// returning whether a node was deleted. The Tree is restructured by the search
// even when no node matches.
func (t *Tree) Delete(e trees.Comparable, s *trees.Stats) bool {
	if t.root == nil {
		return false
	}
	s.Mutate()
	t.root = splay(t.root, toKey(e, s), s)
	s.Comp()
	if e.Compare(t.root.Elem) != 0 {
		return false
	}

	s.Read()
	s.Read()
	l, r := t.root.Left, t.root.Right
	switch {
	case l == nil:
		t.root = r
	case r == nil:
		t.root = l
	default:
		r = splay(r, toMin(e, s), s)
		s.Mutate()
		r.Left = l
		t.root = r
	}
	s.Mutate()
	t.count--
	return true
}

// Height returns the height of the Tree.
func (t *Tree) Height() int {
	if t.root == nil {
		return 0
	}
	var (
		h     int
		level = []*Node{t.root}
		next  []*Node
	)
	for len(level) != 0 {
		h++
		next = next[:0]
		for _, n := range level {
			if n.Left != nil {
				next = append(next, n.Left)
			}
			if n.Right != nil {
				next = append(next, n.Right)
			}
		}
		level, next = next, level
	}
	return h
}

// Snapshot returns an immutable copy of the Tree's shape.
func (t *Tree) Snapshot() *trees.Snapshot {
	type pending struct {
		n   *Node
		dst **trees.Snapshot
	}
	var root *trees.Snapshot
	stack := []pending{{t.root, &root}}
	for len(stack) != 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.n == nil {
			continue
		}
		v := &trees.Snapshot{Key: p.n.Elem}
		*p.dst = v
		stack = append(stack, pending{p.n.Left, &v.Left}, pending{p.n.Right, &v.Right})
	}
	return root
}
