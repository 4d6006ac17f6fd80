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
	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"

	"github.com/biogo/trees"
)

// maxComparisons bounds the comparison counts tracked by the quantile
// histogram. Larger counts are recorded as maxComparisons.
const maxComparisons = 1 << 24

// Data aggregates the Stats of many operations of one kind.
type Data struct {
	Count int64
	Sum   trees.Stats // Height is summed, not maximised.
	Max   trees.Stats

	comps *hdrhistogram.Histogram
}

// NewData returns an empty Data.
func NewData() *Data {
	return &Data{comps: hdrhistogram.New(1, maxComparisons, 3)}
}

// Add records the Stats of one operation.
func (d *Data) Add(s trees.Stats) {
	d.Count++
	d.Sum.Comparisons += s.Comparisons
	d.Sum.PointerReads += s.PointerReads
	d.Sum.PointerMutations += s.PointerMutations
	d.Sum.Height += s.Height
	d.Max.Comparisons = max(d.Max.Comparisons, s.Comparisons)
	d.Max.PointerReads = max(d.Max.PointerReads, s.PointerReads)
	d.Max.PointerMutations = max(d.Max.PointerMutations, s.PointerMutations)
	d.Max.Height = max(d.Max.Height, s.Height)
	d.comps.RecordValue(int64(min(s.Comparisons, maxComparisons)))
}

// Merge adds the operations recorded in o to d.
func (d *Data) Merge(o *Data) {
	d.Count += o.Count
	d.Sum.Comparisons += o.Sum.Comparisons
	d.Sum.PointerReads += o.Sum.PointerReads
	d.Sum.PointerMutations += o.Sum.PointerMutations
	d.Sum.Height += o.Sum.Height
	d.Max.Comparisons = max(d.Max.Comparisons, o.Max.Comparisons)
	d.Max.PointerReads = max(d.Max.PointerReads, o.Max.PointerReads)
	d.Max.PointerMutations = max(d.Max.PointerMutations, o.Max.PointerMutations)
	d.Max.Height = max(d.Max.Height, o.Max.Height)
	d.comps.Merge(o.comps)
}

// Quantile returns the comparison count at quantile q, given as a percentage.
func (d *Data) Quantile(q float64) int64 {
	return d.comps.ValueAtQuantile(q)
}

// Summary holds the per-operation averages and maxima of a Data.
type Summary struct {
	Ops int64

	AvgComparisons      float64
	AvgPointerReads     float64
	AvgPointerMutations float64
	AvgHeight           float64

	Max trees.Stats

	P50Comparisons int64
	P99Comparisons int64
}

// Summary returns the averages, maxima and comparison quantiles of d.
func (d *Data) Summary() Summary {
	s := Summary{
		Ops:            d.Count,
		Max:            d.Max,
		P50Comparisons: d.Quantile(50),
		P99Comparisons: d.Quantile(99),
	}
	if d.Count == 0 {
		return s
	}
	n := float64(d.Count)
	s.AvgComparisons = float64(d.Sum.Comparisons) / n
	s.AvgPointerReads = float64(d.Sum.PointerReads) / n
	s.AvgPointerMutations = float64(d.Sum.PointerMutations) / n
	s.AvgHeight = float64(d.Sum.Height) / n
	return s
}
