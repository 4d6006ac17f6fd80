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

// Package render produces diagnostic views of tree snapshots.
package render

import (
	"fmt"
	"strings"

	"github.com/emicklei/dot"

	"github.com/biogo/trees"
)

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// Text returns an indented view of the tree with the right subtree above each
// node and the left subtree below it. If colored is true, red nodes are
// written in red using ANSI escapes.
func Text(s *trees.Snapshot, colored bool) string {
	if s == nil {
		return "Empty tree\n"
	}
	var b strings.Builder
	text(&b, s, nil, colored)
	return b.String()
}

// text writes the subtree s reached by the moves in road, true for a step to a
// right child.
func text(b *strings.Builder, s *trees.Snapshot, road []bool, colored bool) {
	if s.Right != nil {
		text(b, s.Right, append(road, true), colored)
	}

	b.WriteString("   ")
	for i := 1; i < len(road); i++ {
		if road[i] != road[i-1] {
			b.WriteString("│  ")
		} else {
			b.WriteString("   ")
		}
	}
	if len(road) != 0 {
		if road[len(road)-1] {
			b.WriteString("╭──")
		} else {
			b.WriteString("╰──")
		}
	}
	if colored && s.Red {
		fmt.Fprintf(b, "%s%v%s\n", ansiRed, s.Key, ansiReset)
	} else {
		fmt.Fprintf(b, "%v\n", s.Key)
	}

	if s.Left != nil {
		text(b, s.Left, append(road, false), colored)
	}
}

// Newick returns a Newick format description of the tree. If color is true
// node colors are included.
func Newick(s *trees.Snapshot, color bool) string {
	if s == nil {
		return "();"
	}
	var b strings.Builder
	newick(&b, s, color)
	b.WriteByte(';')
	return b.String()
}

func newick(b *strings.Builder, s *trees.Snapshot, color bool) {
	children := s.Left != nil || s.Right != nil
	if children {
		b.WriteByte('(')
	}
	if s.Left != nil {
		newick(b, s.Left, color)
	}
	if children {
		b.WriteByte(',')
	}
	if s.Right != nil {
		newick(b, s.Right, color)
	}
	if children {
		b.WriteByte(')')
	}
	fmt.Fprintf(b, "%v", s.Key)
	if color {
		if s.Red {
			b.WriteString(" Red")
		} else {
			b.WriteString(" Black")
		}
	}
}

// Dot returns a Graphviz digraph of the tree. Edges into red nodes are drawn
// red.
func Dot(s *trees.Snapshot, label string) string {
	g := dot.NewGraph(dot.Directed)
	g.Attr("label", label)

	var id int
	var follow func(*trees.Snapshot) dot.Node
	follow = func(s *trees.Snapshot) dot.Node {
		id++
		n := g.Node(fmt.Sprint(id)).
			Label(fmt.Sprintf("<Left> |<Elem> %v|<Right>", s.Key)).
			Attr("shape", "record").
			Attr("height", "0.1")
		for _, c := range []struct {
			child *trees.Snapshot
			label string
		}{
			{s.Left, "l"},
			{s.Right, "r"},
		} {
			if c.child == nil {
				continue
			}
			e := g.Edge(n, follow(c.child), c.label)
			if c.child.Red {
				e.Attr("color", "red")
				e.Attr("arrowhead", "none")
			} else {
				e.Attr("color", "black")
			}
		}
		return n
	}
	if s != nil {
		follow(s)
	}
	return g.String()
}
