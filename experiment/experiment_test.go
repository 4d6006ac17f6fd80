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
	"bytes"
	"context"
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/biogo/trees"
)

func smallConfig(strategy string) Config {
	return Config{
		Strategy: strategy,
		From:     50,
		To:       150,
		Step:     50,
		Reps:     4,
		Workers:  1,
		Seed:     42,
		Delete:   DeleteInserted,
	}
}

func TestStrategies(t *testing.T) {
	require.Equal(t, []string{"bst", "llrb", "rbtree", "splay"}, Strategies())
	for _, name := range Strategies() {
		f, err := Lookup(name)
		require.NoError(t, err)
		require.Equal(t, 0, f().Len())
	}
	_, err := Lookup("avl")
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

// Every strategy honours the same contract.
func TestStrategiesConform(t *testing.T) {
	for _, name := range Strategies() {
		f, _ := Lookup(name)
		t.Run(name, func(t *testing.T) {
			tr := f()
			for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
				tr.Insert(trees.Int(k), nil)
			}
			require.Equal(t, 7, tr.Len())

			// Absent keys leave the key set alone.
			require.False(t, tr.Delete(trees.Int(100), nil))
			require.Equal(t, 7, tr.Len())
			for _, k := range []int{1, 3, 4, 5, 7, 8, 9} {
				require.Equal(t, trees.Int(k), tr.Get(trees.Int(k), nil))
			}

			// Duplicates are kept.
			tr.Insert(trees.Int(4), nil)
			require.Equal(t, 8, tr.Len())
			require.True(t, tr.Delete(trees.Int(4), nil))
			require.True(t, tr.Delete(trees.Int(4), nil))
			require.False(t, tr.Delete(trees.Int(4), nil))
			require.Nil(t, tr.Get(trees.Int(4), nil))

			for _, k := range []int{1, 3, 5, 7, 8, 9} {
				require.True(t, tr.Delete(trees.Int(k), nil))
			}
			require.Equal(t, 0, tr.Len())
			require.Equal(t, 0, tr.Height())
			require.Nil(t, tr.Snapshot())
		})
	}
}

// Every strategy removes each copy of a heavily repeated key set.
func TestStrategiesDuplicateChurn(t *testing.T) {
	for _, name := range Strategies() {
		f, _ := Lookup(name)
		t.Run(name, func(t *testing.T) {
			r := rand.New(rand.NewSource(3))
			for trial := 0; trial < 50; trial++ {
				tr := f()
				keys := make([]int, 60)
				copies := map[int]int{}
				for i := range keys {
					keys[i] = r.Intn(15)
					tr.Insert(trees.Int(keys[i]), nil)
					copies[keys[i]]++
				}
				r.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
				for i, k := range keys {
					require.True(t, tr.Delete(trees.Int(k), nil), "trial %d delete %d", trial, k)
					copies[k]--
					require.Equal(t, len(keys)-i-1, tr.Len())
					if copies[k] == 0 {
						require.Nil(t, tr.Get(trees.Int(k), nil), "trial %d key %d", trial, k)
					} else {
						require.Equal(t, trees.Int(k), tr.Get(trees.Int(k), nil), "trial %d key %d", trial, k)
					}
				}
				require.Nil(t, tr.Snapshot())
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	require.NoError(t, smallConfig("splay").Validate())

	for name, mutate := range map[string]func(*Config){
		"strategy": func(c *Config) { c.Strategy = "avl" },
		"from":     func(c *Config) { c.From = 0 },
		"to":       func(c *Config) { c.To = c.From - 1 },
		"step":     func(c *Config) { c.Step = 0 },
		"reps":     func(c *Config) { c.Reps = 0 },
		"workers":  func(c *Config) { c.Workers = -1 },
		"delete":   func(c *Config) { c.Delete = "all" },
	} {
		cfg := smallConfig("bst")
		mutate(&cfg)
		err := cfg.Validate()
		require.ErrorIs(t, err, ErrInvalidConfig, name)
	}

	cfg := smallConfig("avl")
	require.ErrorIs(t, cfg.Validate(), ErrUnknownStrategy)
}

func TestConfigSizes(t *testing.T) {
	require.Equal(t, []int{50, 100, 150}, smallConfig("bst").Sizes())
	cfg := Config{From: 10, To: 35, Step: 10}
	require.Equal(t, []int{10, 20, 30}, cfg.Sizes())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: splay\nfrom: 100\nto: 500\nstep: 100\ndelete: random\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "splay", cfg.Strategy)
	require.Equal(t, 100, cfg.From)
	require.Equal(t, 500, cfg.To)
	require.Equal(t, DeleteRandom, cfg.Delete)
	require.Equal(t, DefaultConfig().Reps, cfg.Reps)
	require.NoError(t, cfg.Validate())

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("strategy: splay\nsize: 3\n"), 0o644))
	_, err = LoadConfig(bad)
	require.Error(t, err)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestData(t *testing.T) {
	d := NewData()
	require.Equal(t, Summary{}, d.Summary())

	d.Add(trees.Stats{Comparisons: 2, PointerReads: 4, PointerMutations: 1, Height: 3})
	d.Add(trees.Stats{Comparisons: 4, PointerReads: 2, PointerMutations: 3, Height: 5})
	s := d.Summary()
	require.Equal(t, int64(2), s.Ops)
	require.Equal(t, 3.0, s.AvgComparisons)
	require.Equal(t, 3.0, s.AvgPointerReads)
	require.Equal(t, 2.0, s.AvgPointerMutations)
	require.Equal(t, 4.0, s.AvgHeight)
	require.Equal(t, trees.Stats{Comparisons: 4, PointerReads: 4, PointerMutations: 3, Height: 5}, s.Max)

	o := NewData()
	o.Add(trees.Stats{Comparisons: 1000, Height: 1})
	d.Merge(o)
	require.Equal(t, int64(3), d.Count)
	require.Equal(t, 1006, d.Sum.Comparisons)
	require.Equal(t, 1000, d.Max.Comparisons)
	require.Equal(t, 5, d.Max.Height)
	require.Equal(t, int64(4), d.Quantile(50))
	require.InDelta(t, 1000, d.Quantile(100), 1)
}

func TestTrialInsertedEmptiesTree(t *testing.T) {
	for _, name := range Strategies() {
		f, _ := Lookup(name)
		o := Trial(f, 200, DeleteInserted, rand.New(rand.NewSource(1)))
		require.Equal(t, int64(200), o.Insert.Count, name)
		require.Equal(t, int64(200), o.Delete.Count, name)
		require.Equal(t, 0, o.Remaining, name)
		require.LessOrEqual(t, o.Insert.Max.Height, 200, name)
		require.Positive(t, o.Insert.Sum.Comparisons, name)
	}
}

func TestTrialRandom(t *testing.T) {
	f, _ := Lookup("bst")
	o := Trial(f, 200, DeleteRandom, rand.New(rand.NewSource(1)))
	require.Equal(t, int64(200), o.Delete.Count)
	require.GreaterOrEqual(t, o.Remaining, 0)
	require.LessOrEqual(t, o.Remaining, 200)
}

func TestTrialDeterministic(t *testing.T) {
	f, _ := Lookup("splay")
	a := Trial(f, 300, DeleteInserted, rand.New(rand.NewSource(7)))
	b := Trial(f, 300, DeleteInserted, rand.New(rand.NewSource(7)))
	require.Equal(t, a.Insert.Summary(), b.Insert.Summary())
	require.Equal(t, a.Delete.Summary(), b.Delete.Summary())
}

func TestRunSerialMatchesParallel(t *testing.T) {
	for _, name := range Strategies() {
		serial := smallConfig(name)
		parallel := serial
		parallel.Workers = 4

		var r Runner
		want, err := r.Run(context.Background(), serial)
		require.NoError(t, err)
		got, err := r.Run(context.Background(), parallel)
		require.NoError(t, err)
		require.Equal(t, want, got, name)

		require.Len(t, got, 3)
		for i, p := range got {
			require.Equal(t, serial.Sizes()[i], p.N)
			require.Equal(t, int64(p.N*serial.Reps), p.Insert.Ops)
			require.Equal(t, int64(p.N*serial.Reps), p.Delete.Ops)
		}
	}
}

func TestRunBalancedHeights(t *testing.T) {
	var r Runner
	points, err := r.Run(context.Background(), smallConfig("rbtree"))
	require.NoError(t, err)
	for _, p := range points {
		// 2*log2(151) < 15.
		require.LessOrEqual(t, p.Insert.Max.Height, 15)
	}
}

func TestRunMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	var buf bytes.Buffer
	r := NewRunner(zerolog.New(&buf), NewMetrics(reg))

	cfg := smallConfig("llrb")
	_, err := r.Run(context.Background(), cfg)
	require.NoError(t, err)

	ops := float64((50 + 100 + 150) * cfg.Reps)
	require.Equal(t, ops, testutil.ToFloat64(r.Metrics.Ops.WithLabelValues("llrb", "insert")))
	require.Equal(t, ops, testutil.ToFloat64(r.Metrics.Ops.WithLabelValues("llrb", "delete")))
	require.Positive(t, testutil.ToFloat64(r.Metrics.Comparisons.WithLabelValues("llrb", "insert")))
	require.Positive(t, testutil.ToFloat64(r.Metrics.AvgHeight.WithLabelValues("llrb", "insert")))
	require.Equal(t, 150.0, testutil.ToFloat64(r.Metrics.Size.WithLabelValues("llrb")))

	require.Contains(t, buf.String(), `"message":"completed size"`)
	require.Contains(t, buf.String(), `"strategy":"llrb"`)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var r Runner
	points, err := r.Run(ctx, smallConfig("bst"))
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, points)
}

func TestRunInvalid(t *testing.T) {
	var r Runner
	_, err := r.Run(context.Background(), Config{Strategy: "bst"})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWriteCSV(t *testing.T) {
	var r Runner
	points, err := r.Run(context.Background(), smallConfig("bst"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, points))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 4)
	require.Equal(t, Header(), recs[0])
	require.Len(t, recs[0], 1+2*len(series))
	require.Equal(t, []string{"50", "100", "150"}, []string{recs[1][0], recs[2][0], recs[3][0]})
	for _, rec := range recs[1:] {
		require.Len(t, rec, len(recs[0]))
	}
}

func TestObservedTrial(t *testing.T) {
	f, _ := Lookup("rbtree")
	seen := map[Op]int{}
	var comps int
	o := ObservedTrial(f, 100, DeleteInserted, rand.New(rand.NewSource(3)), func(op Op, s trees.Stats) {
		seen[op]++
		if op == Insert {
			comps += s.Comparisons
		}
	})
	require.Equal(t, map[Op]int{Insert: 100, Delete: 100}, seen)
	require.Equal(t, o.Insert.Sum.Comparisons, comps)
}
