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

package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/biogo/trees"
	"github.com/biogo/trees/experiment"
	"github.com/biogo/trees/render"
)

// colored holds the strategies whose nodes carry a color.
var colored = map[string]bool{"rbtree": true, "llrb": true}

func showCommand() *cobra.Command {
	var (
		strategy string
		keys     []int
		deletes  []int
		random   int
		seed     int64
		format   string
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "build a tree and print its shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := experiment.Lookup(strategy)
			if err != nil {
				return err
			}
			if random < 0 {
				return fmt.Errorf("%w: --random must not be negative, got %d", errFlag, random)
			}
			if random > 0 {
				rnd := rand.New(rand.NewSource(seed))
				for i := 0; i < random; i++ {
					keys = append(keys, rnd.Intn(2*random-1))
				}
			}

			var ins, del trees.Stats
			t := f()
			for _, k := range keys {
				t.Insert(trees.Int(k), &ins)
			}
			var missing []int
			for _, k := range deletes {
				if !t.Delete(trees.Int(k), &del) {
					missing = append(missing, k)
				}
			}
			ins.SetHeight(t.Height())

			w := cmd.OutOrStdout()
			switch format {
			case "text":
				fmt.Fprint(w, render.Text(t.Snapshot(), isTerminal(w)))
				fmt.Fprintf(w, "%s: len=%d\n", strategy, t.Len())
				fmt.Fprintf(w, "insert %s\n", ins)
				if len(deletes) != 0 {
					fmt.Fprintf(w, "delete %s\n", del)
				}
				if len(missing) != 0 {
					fmt.Fprintf(w, "not found: %v\n", missing)
				}
			case "dot":
				fmt.Fprint(w, render.Dot(t.Snapshot(), strategy))
			case "newick":
				fmt.Fprintln(w, render.Newick(t.Snapshot(), colored[strategy]))
			default:
				return fmt.Errorf("%w: --format must be text, dot or newick, got %q", errFlag, format)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&strategy, "strategy", "rbtree", fmt.Sprintf("tree strategy %v", experiment.Strategies()))
	f.IntSliceVar(&keys, "keys", nil, "keys to insert in order")
	f.IntSliceVar(&deletes, "delete", nil, "keys to delete after insertion")
	f.IntVar(&random, "random", 0, "insert this many keys drawn from [0, 2n-1) after --keys")
	f.Int64Var(&seed, "seed", 1, "random seed for --random")
	f.StringVar(&format, "format", "text", "output format (text, dot or newick)")
	return cmd
}
