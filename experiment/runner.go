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
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// A Point holds the summaries of the inserts and deletes made at one size.
type Point struct {
	N              int
	Insert, Delete Summary
}

// Metrics are the prometheus collectors updated by a Runner.
type Metrics struct {
	Ops              *prometheus.CounterVec
	Comparisons      *prometheus.CounterVec
	PointerReads     *prometheus.CounterVec
	PointerMutations *prometheus.CounterVec
	AvgHeight        *prometheus.GaugeVec
	Size             *prometheus.GaugeVec
}

// NewMetrics returns Metrics registered with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	labels := []string{"strategy", "op"}
	return &Metrics{
		Ops: f.NewCounterVec(prometheus.CounterOpts{
			Name: "treecost_ops_total",
			Help: "number of tree operations measured",
		}, labels),
		Comparisons: f.NewCounterVec(prometheus.CounterOpts{
			Name: "treecost_comparisons_total",
			Help: "key comparisons made by measured operations",
		}, labels),
		PointerReads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "treecost_pointer_reads_total",
			Help: "child link reads made by measured operations",
		}, labels),
		PointerMutations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "treecost_pointer_mutations_total",
			Help: "child link writes made by measured operations",
		}, labels),
		AvgHeight: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "treecost_avg_height",
			Help: "average tree height after operations at the last completed size",
		}, labels),
		Size: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "treecost_size",
			Help: "last completed tree size",
		}, []string{"strategy"}),
	}
}

func (m *Metrics) observe(strategy string, op Op, d *Data) {
	if m == nil {
		return
	}
	l := prometheus.Labels{"strategy": strategy, "op": string(op)}
	m.Ops.With(l).Add(float64(d.Count))
	m.Comparisons.With(l).Add(float64(d.Sum.Comparisons))
	m.PointerReads.With(l).Add(float64(d.Sum.PointerReads))
	m.PointerMutations.With(l).Add(float64(d.Sum.PointerMutations))
	m.AvgHeight.With(l).Set(d.Summary().AvgHeight)
}

// A Runner executes experiments. The zero value runs without logging or
// metrics.
type Runner struct {
	Log     zerolog.Logger
	Metrics *Metrics
}

// NewRunner returns a Runner that logs to log and reports to m.
func NewRunner(log zerolog.Logger, m *Metrics) *Runner {
	return &Runner{Log: log, Metrics: m}
}

// Run performs the experiment described by cfg, returning one Point per size.
// Repetitions at each size run concurrently on up to cfg.Workers goroutines,
// each with its own tree. Cancellation of ctx is observed between trials.
func (r *Runner) Run(ctx context.Context, cfg Config) ([]Point, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	factory, err := Lookup(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	pool := pond.NewResultPool[Outcome](cfg.Workers)
	defer pool.StopAndWait()

	log := r.Log.With().Str("strategy", cfg.Strategy).Logger()
	log.Info().
		Int("from", cfg.From).
		Int("to", cfg.To).
		Int("step", cfg.Step).
		Int("reps", cfg.Reps).
		Int("workers", cfg.Workers).
		Str("delete", string(cfg.Delete)).
		Msg("starting experiment")

	var (
		points []Point
		start  = time.Now()
		ops    int64
	)
	for _, n := range cfg.Sizes() {
		if err := ctx.Err(); err != nil {
			return points, err
		}
		since := time.Now()

		group := pool.NewGroup()
		for rep := 0; rep < cfg.Reps; rep++ {
			seed := trialSeed(cfg.Seed, n, rep)
			group.SubmitErr(func() (Outcome, error) {
				if err := ctx.Err(); err != nil {
					return Outcome{}, err
				}
				return Trial(factory, n, cfg.Delete, rand.New(rand.NewSource(seed))), nil
			})
		}
		outcomes, err := group.Wait()
		if err != nil {
			return points, fmt.Errorf("error running trials of size %d: %w", n, err)
		}

		ins, del := NewData(), NewData()
		for _, o := range outcomes {
			ins.Merge(o.Insert)
			del.Merge(o.Delete)
		}
		r.Metrics.observe(cfg.Strategy, Insert, ins)
		r.Metrics.observe(cfg.Strategy, Delete, del)
		if r.Metrics != nil {
			r.Metrics.Size.WithLabelValues(cfg.Strategy).Set(float64(n))
		}

		p := Point{N: n, Insert: ins.Summary(), Delete: del.Summary()}
		points = append(points, p)
		ops += ins.Count + del.Count
		log.Info().
			Int("n", n).
			Str("ops", humanize.Comma(ins.Count+del.Count)).
			Float64("avg_insert_comparisons", p.Insert.AvgComparisons).
			Float64("avg_delete_comparisons", p.Delete.AvgComparisons).
			Int("max_height", p.Insert.Max.Height).
			Dur("elapsed", time.Since(since)).
			Msg("completed size")
	}

	log.Info().
		Str("ops", humanize.Comma(ops)).
		Dur("elapsed", time.Since(start)).
		Msg("experiment done")
	return points, nil
}
