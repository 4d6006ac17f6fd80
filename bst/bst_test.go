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

package bst

import (
	"flag"
	"math/rand"
	"testing"

	check "gopkg.in/check.v1"

	"github.com/biogo/trees"
	"github.com/biogo/trees/node"
	"github.com/biogo/trees/render"
)

var printTree = flag.Bool("trees", false, "Print failing tree in Newick format.")

// Integrity checks

// keys returns the keys of the tree in order.
func (t *Tree) keys() []int {
	var (
		ks    = []int{}
		stack []node.Index
	)
	for i := t.root; i != node.Nil || len(stack) != 0; {
		for ; i != node.Nil; i = t.nodes.At(i).Left {
			stack = append(stack, i)
		}
		i = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes.At(i)
		ks = append(ks, int(n.Elem.(trees.Int)))
		i = n.Right
	}
	return ks
}

// Is this tree a BST?
func (t *Tree) isBST() bool {
	ks := t.keys()
	for i := 1; i < len(ks); i++ {
		if ks[i] < ks[i-1] {
			return false
		}
	}
	return len(ks) == t.Len()
}

// Does every child name its parent?
func (t *Tree) isLinked() bool {
	if t.root == node.Nil {
		return true
	}
	if t.nodes.At(t.root).Parent != node.Nil {
		return false
	}
	stack := []node.Index{t.root}
	for len(stack) != 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes.At(i)
		for _, c := range []node.Index{n.Left, n.Right} {
			if c == node.Nil {
				continue
			}
			if t.nodes.At(c).Parent != i {
				return false
			}
			stack = append(stack, c)
		}
	}
	return true
}

func checkTree(t *Tree, c *check.C, f string, i ...interface{}) (ok bool) {
	comm := check.Commentf(f, i...)
	ok = true
	ok = ok && c.Check(t.isBST(), check.Equals, true, comm)
	ok = ok && c.Check(t.isLinked(), check.Equals, true, comm)
	if !ok && *printTree {
		c.Logf("Failing tree: %s\n\n", render.Newick(t.Snapshot(), false))
	}
	return
}

func build(keys ...int) *Tree {
	t := New()
	for _, k := range keys {
		t.Insert(trees.Int(k), nil)
	}
	return t
}

// Tests
func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) TestEmpty(c *check.C) {
	t := New()
	c.Check(t.Len(), check.Equals, 0)
	c.Check(t.Height(), check.Equals, 0)
	c.Check(t.Delete(trees.Int(1), nil), check.Equals, false)
	c.Check(t.Get(trees.Int(1), nil), check.Equals, nil)
	c.Check(t.Snapshot(), check.IsNil)
}

func (s *S) TestInsertShape(c *check.C) {
	t := build(5, 3, 8, 1, 4, 7, 9)
	c.Check(render.Newick(t.Snapshot(), false), check.Equals, "((1,4)3,(7,9)8)5;")
	c.Check(t.Height(), check.Equals, 3)
	c.Check(t.Len(), check.Equals, 7)
	checkTree(t, c, "after build")
}

func (s *S) TestDeleteTwoChildren(c *check.C) {
	t := build(5, 3, 8, 1, 4, 7, 9)
	c.Check(t.Delete(trees.Int(5), nil), check.Equals, true)
	c.Check(t.keys(), check.DeepEquals, []int{1, 3, 4, 7, 8, 9})
	c.Check(render.Newick(t.Snapshot(), false), check.Equals, "((1,4)3,(,9)8)7;")
	checkTree(t, c, "after delete(5)")
}

func (s *S) TestDeleteImmediateSuccessor(c *check.C) {
	// 8 has no left child so it is 5's successor and its immediate right child.
	t := build(5, 3, 8, 9)
	c.Check(t.Delete(trees.Int(5), nil), check.Equals, true)
	c.Check(render.Newick(t.Snapshot(), false), check.Equals, "(3,9)8;")
	checkTree(t, c, "after delete(5)")
}

func (s *S) TestDeleteDeepSuccessor(c *check.C) {
	// 6 is the successor of 5 and has a right child 7 to hand to 8.
	t := build(5, 3, 9, 8, 6, 7)
	c.Check(t.Delete(trees.Int(5), nil), check.Equals, true)
	c.Check(render.Newick(t.Snapshot(), false), check.Equals, "(3,((7,)8,)9)6;")
	checkTree(t, c, "after delete(5)")
}

func (s *S) TestDeleteLeafAndSingleChild(c *check.C) {
	t := build(5, 3, 8, 1, 9)
	c.Check(t.Delete(trees.Int(1), nil), check.Equals, true)
	c.Check(render.Newick(t.Snapshot(), false), check.Equals, "(3,(,9)8)5;")
	c.Check(t.Delete(trees.Int(8), nil), check.Equals, true)
	c.Check(render.Newick(t.Snapshot(), false), check.Equals, "(3,9)5;")
	checkTree(t, c, "after deletes")
}

func (s *S) TestDeleteRoot(c *check.C) {
	t := build(5, 8)
	c.Check(t.Delete(trees.Int(5), nil), check.Equals, true)
	c.Check(render.Newick(t.Snapshot(), false), check.Equals, "8;")
	checkTree(t, c, "after delete(5)")
	c.Check(t.Delete(trees.Int(8), nil), check.Equals, true)
	c.Check(t.Len(), check.Equals, 0)
	c.Check(t.Height(), check.Equals, 0)
}

func (s *S) TestDeleteAbsent(c *check.C) {
	t := build(5, 3, 8, 1, 4, 7, 9)
	before := t.keys()
	c.Check(t.Delete(trees.Int(100), nil), check.Equals, false)
	c.Check(t.keys(), check.DeepEquals, before)
}

func (s *S) TestDuplicates(c *check.C) {
	t := build(5, 7, 7)
	c.Check(t.Len(), check.Equals, 3)
	c.Check(t.keys(), check.DeepEquals, []int{5, 7, 7})
	c.Check(render.Newick(t.Snapshot(), false), check.Equals, "(,(,7)7)5;")
	c.Check(t.Delete(trees.Int(7), nil), check.Equals, true)
	c.Check(t.keys(), check.DeepEquals, []int{5, 7})
	c.Check(t.Delete(trees.Int(7), nil), check.Equals, true)
	c.Check(t.Delete(trees.Int(7), nil), check.Equals, false)
	c.Check(t.keys(), check.DeepEquals, []int{5})
}

func (s *S) TestDegenerate(c *check.C) {
	const n = 10000
	t := New()
	for i := 0; i < n; i++ {
		t.Insert(trees.Int(i), nil)
	}
	c.Check(t.Height(), check.Equals, n)
	for i := 0; i < n; i++ {
		c.Assert(t.Delete(trees.Int(i), nil), check.Equals, true)
	}
	c.Check(t.Len(), check.Equals, 0)
	c.Check(t.Height(), check.Equals, 0)
}

func (s *S) TestStats(c *check.C) {
	t := New()
	var st trees.Stats
	t.Insert(trees.Int(5), &st)
	c.Check(st, check.Equals, trees.Stats{PointerMutations: 1})

	t = build(5, 3, 8)
	st = trees.Stats{}
	t.Insert(trees.Int(4), &st)
	c.Check(st.Comparisons, check.Equals, 2)
	c.Check(st.PointerMutations, check.Equals, 1)

	st = trees.Stats{}
	c.Check(t.Get(trees.Int(4), &st), check.Equals, trees.Int(4))
	c.Check(st.Comparisons, check.Equals, 3)
	c.Check(st.PointerReads, check.Equals, 3)
}

func (s *S) TestRandomInsertionDeletion(c *check.C) {
	var (
		count, max = 2000, 500
		t          = New()
		verify     = map[int]int{}
		size       int
	)
	for i := 0; i < count; i++ {
		if rand.Float64() < 0.5 {
			k := rand.Intn(max)
			t.Insert(trees.Int(k), nil)
			verify[k]++
			size++
		} else {
			k := rand.Intn(max)
			ok := t.Delete(trees.Int(k), nil)
			c.Check(ok, check.Equals, verify[k] != 0)
			if ok {
				verify[k]--
				size--
			}
		}
		c.Check(t.Len(), check.Equals, size)
		if !checkTree(t, c, "iteration %d", i) {
			c.Fatal("Cannot continue test: invariant contradiction")
		}
	}
}

func (s *S) TestSizeConservation(c *check.C) {
	r := rand.New(rand.NewSource(1))
	keys := r.Perm(1000)
	t := New()
	for _, k := range keys {
		t.Insert(trees.Int(k), nil)
	}
	r.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	for _, k := range keys {
		c.Assert(t.Delete(trees.Int(k), nil), check.Equals, true)
	}
	c.Check(t.Len(), check.Equals, 0)
	c.Check(t.Snapshot(), check.IsNil)
}

// Benchmarks

func BenchmarkInsert(b *testing.B) {
	t := New()
	for i := 0; i < b.N; i++ {
		t.Insert(trees.Int(rand.Int()), nil)
	}
}

func BenchmarkDelete(b *testing.B) {
	b.StopTimer()
	t := New()
	keys := rand.Perm(b.N)
	for _, k := range keys {
		t.Insert(trees.Int(k), nil)
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		t.Delete(trees.Int(i), nil)
	}
}
