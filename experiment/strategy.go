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

package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/biogo/trees"
	"github.com/biogo/trees/bst"
	"github.com/biogo/trees/llrb"
	"github.com/biogo/trees/rbtree"
	"github.com/biogo/trees/splay"
)

// ErrUnknownStrategy is returned when a strategy name is not registered.
var ErrUnknownStrategy = errors.New("experiment: unknown strategy")

// A Factory returns a new empty tree.
type Factory func() trees.Tree

var strategies = map[string]Factory{
	"bst":    func() trees.Tree { return bst.New() },
	"rbtree": func() trees.Tree { return rbtree.New() },
	"splay":  func() trees.Tree { return splay.New() },
	"llrb":   func() trees.Tree { return llrb.New() },
}

// Strategies returns the registered strategy names in sorted order.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known returns whether name is a registered strategy.
func Known(name string) bool {
	_, ok := strategies[name]
	return ok
}

// Lookup returns the Factory registered as name.
func Lookup(name string) (Factory, error) {
	f, ok := strategies[name]
	if !ok {
		return nil, unknownStrategy(name)
	}
	return f, nil
}

func unknownStrategy(name string) error {
	return fmt.Errorf("%w %q (have %v)", ErrUnknownStrategy, name, Strategies())
}
