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
	"encoding/csv"
	"io"
	"strconv"
)

var series = []string{
	"avg_comparisons", "avg_pointer_reads", "avg_pointer_mutations", "avg_height",
	"max_comparisons", "max_pointer_reads", "max_pointer_mutations", "max_height",
	"p50_comparisons", "p99_comparisons",
}

// Header returns the CSV column names written by WriteCSV.
func Header() []string {
	h := []string{"n"}
	for _, op := range []Op{Insert, Delete} {
		for _, s := range series {
			h = append(h, string(op)+"_"+s)
		}
	}
	return h
}

// WriteCSV writes points to w as CSV with a header row.
func WriteCSV(w io.Writer, points []Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}
	for _, p := range points {
		rec := []string{strconv.Itoa(p.N)}
		rec = append(rec, p.Insert.fields()...)
		rec = append(rec, p.Delete.fields()...)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s Summary) fields() []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }
	return []string{
		f(s.AvgComparisons), f(s.AvgPointerReads), f(s.AvgPointerMutations), f(s.AvgHeight),
		strconv.Itoa(s.Max.Comparisons), strconv.Itoa(s.Max.PointerReads),
		strconv.Itoa(s.Max.PointerMutations), strconv.Itoa(s.Max.Height),
		strconv.FormatInt(s.P50Comparisons, 10), strconv.FormatInt(s.P99Comparisons, 10),
	}
}
