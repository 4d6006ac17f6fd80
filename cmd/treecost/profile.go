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
	"io"
	"math/rand"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/biogo/trees"
	"github.com/biogo/trees/experiment"
)

func profileCommand() *cobra.Command {
	var (
		strategy   string
		n          int
		seed       int64
		deleteMode string
		bins       int
		width      int
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "plot the distribution of comparisons per operation for one trial",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := experiment.Lookup(strategy)
			if err != nil {
				return err
			}
			mode := experiment.DeleteMode(deleteMode)
			switch {
			case n < 1:
				return fmt.Errorf("%w: --n must be positive, got %d", errFlag, n)
			case bins < 1:
				return fmt.Errorf("%w: --bins must be positive, got %d", errFlag, bins)
			case width < 1:
				return fmt.Errorf("%w: --width must be positive, got %d", errFlag, width)
			case mode != experiment.DeleteInserted && mode != experiment.DeleteRandom:
				return fmt.Errorf("%w: --delete must be %s or %s, got %q", errFlag, experiment.DeleteInserted, experiment.DeleteRandom, deleteMode)
			}

			comps := map[experiment.Op][]float64{}
			o := experiment.ObservedTrial(f, n, mode, rand.New(rand.NewSource(seed)), func(op experiment.Op, s trees.Stats) {
				comps[op] = append(comps[op], float64(s.Comparisons))
			})

			w := cmd.OutOrStdout()
			for _, op := range []struct {
				name experiment.Op
				data *experiment.Data
			}{
				{experiment.Insert, o.Insert},
				{experiment.Delete, o.Delete},
			} {
				s := op.data.Summary()
				fmt.Fprintf(w, "%s %s: %s ops, avg %.2f comparisons (p50 %d, p99 %d, max %d), max height %d\n",
					strategy, op.name, humanize.Comma(s.Ops), s.AvgComparisons,
					s.P50Comparisons, s.P99Comparisons, s.Max.Comparisons, s.Max.Height)
				if err := plot(w, comps[op.name], bins, width); err != nil {
					return err
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&strategy, "strategy", "rbtree", fmt.Sprintf("tree strategy %v", experiment.Strategies()))
	f.IntVar(&n, "n", 10_000, "tree size")
	f.Int64Var(&seed, "seed", 1, "random seed")
	f.StringVar(&deleteMode, "delete", string(experiment.DeleteInserted), "keys to delete (inserted or random)")
	f.IntVar(&bins, "bins", 10, "histogram bins")
	f.IntVar(&width, "width", 50, "histogram bar width")
	return cmd
}

// plot writes a histogram of vals to w. Histograms need a non-zero value
// range, so a constant sample is written as a single line.
func plot(w io.Writer, vals []float64, bins, width int) error {
	if len(vals) == 0 {
		return nil
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo == hi {
		_, err := fmt.Fprintf(w, "%v: %d\n", lo, len(vals))
		return err
	}
	return histogram.Fprint(w, histogram.Hist(bins, vals), histogram.Linear(width))
}
