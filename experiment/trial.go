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

// Package experiment measures the cost of tree operations over randomised
// insert and delete workloads.
package experiment

import (
	"math/rand"

	"github.com/biogo/trees"
)

// An Op names a kind of measured operation.
type Op string

const (
	Insert Op = "insert"
	Delete Op = "delete"
)

// An Observer is called with the Stats of each operation of a trial.
type Observer func(op Op, s trees.Stats)

// An Outcome is the result of a single trial.
type Outcome struct {
	Insert, Delete *Data
	Remaining      int // Len of the tree after the deletes.
}

// Trial builds a tree of size n with keys drawn uniformly from [0, 2n-1) and
// then performs n deletes chosen by mode. Each operation is recorded with its
// own Stats whose Height is the tree height after the operation.
func Trial(f Factory, n int, mode DeleteMode, rnd *rand.Rand) Outcome {
	return ObservedTrial(f, n, mode, rnd, nil)
}

// ObservedTrial is Trial, also passing the Stats of every operation to obs
// if it is not nil.
func ObservedTrial(f Factory, n int, mode DeleteMode, rnd *rand.Rand, obs Observer) Outcome {
	var (
		t    = f()
		ins  = NewData()
		del  = NewData()
		keys = make([]int, n)
	)
	for i := range keys {
		keys[i] = rnd.Intn(2*n - 1)
		var s trees.Stats
		t.Insert(trees.Int(keys[i]), &s)
		s.SetHeight(t.Height())
		ins.Add(s)
		if obs != nil {
			obs(Insert, s)
		}
	}

	if mode == DeleteInserted {
		rnd.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	}
	for i := range keys {
		k := keys[i]
		if mode == DeleteRandom {
			k = rnd.Intn(2*n - 1)
		}
		var s trees.Stats
		t.Delete(trees.Int(k), &s)
		s.SetHeight(t.Height())
		del.Add(s)
		if obs != nil {
			obs(Delete, s)
		}
	}

	return Outcome{Insert: ins, Delete: del, Remaining: t.Len()}
}

// trialSeed returns the seed for repetition rep at size n.
func trialSeed(seed int64, n, rep int) int64 {
	return seed*1_000_003 + int64(n)*7_919 + int64(rep)
}
