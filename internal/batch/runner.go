// Package batch evaluates many independent (lens, trajectory) pairs
// concurrently with a bounded worker pool, per spec.md §5: parallelism is
// safe across distinct trajectories but forbidden within one trajectory's
// sample sequence, so each job runs its full sample grid on a single
// goroutine against its own cloned lens.
package batch

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/lensforge/microlens"
	"github.com/lensforge/microlens/internal/metrics"
)

// Job is one independent trajectory evaluation: a lens configuration, the
// trajectory collaborator, the time grid to sample, and the driver
// configuration (finite-source toggle, tolerances).
type Job struct {
	Name       string
	Lens       lens.Lens
	Trajectory lens.Trajectory
	Times      []float64
	DriverCfg  lens.DriverConfig
}

// Result is the output of one Job: its samples, in time order.
type Result struct {
	Name    string
	Samples []lens.Sample
}

type jobInput struct {
	index int
	job   Job
}

type jobOutput struct {
	index  int
	result Result
}

// Run evaluates jobs with a pool of workers goroutines and returns one
// Result per job, in the same order as jobs. logger records non-OK sample
// statuses and fallback engagement; it may be nil to disable logging.
func Run(jobs []Job, workers int, logger *slog.Logger) []Result {
	if len(jobs) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	inputs := make(chan jobInput, workers*2)
	outputs := make(chan jobOutput, workers*2)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for in := range inputs {
				outputs <- jobOutput{index: in.index, result: runJob(in.job, logger)}
			}
		}()
	}

	go func() {
		defer close(inputs)
		for i, j := range jobs {
			inputs <- jobInput{index: i, job: j}
		}
	}()

	go func() {
		wg.Wait()
		close(outputs)
	}()

	results := make([]Result, len(jobs))
	for out := range outputs {
		results[out.index] = out.result
	}
	return results
}

// runJob evaluates a single job's full sample grid on the calling
// goroutine, cloning the lens first so no Lens value is ever shared across
// goroutines.
func runJob(j Job, logger *slog.Logger) Result {
	l := j.Lens.Clone()
	driver := lens.NewDriver(j.DriverCfg)

	samples := make([]lens.Sample, len(j.Times))
	for i, t := range j.Times {
		start := time.Now()
		sample := driver.Step(l, j.Trajectory, t)
		metrics.SampleDurationSeconds.WithLabelValues(j.Name).Observe(time.Since(start).Seconds())
		metrics.SampleStatusTotal.WithLabelValues(sample.Status.String()).Inc()

		if sample.Status != lens.OK {
			logger.Warn("non-OK sample",
				"job", j.Name, "t", t, "status", sample.Status.String())
		}
		if sample.Fallback != lens.FallbackNone {
			reason := sample.Fallback.String()
			logger.Info("fallback engagement",
				"job", j.Name, "t", t, "reason", reason)
			metrics.SolverRetriesTotal.WithLabelValues(reason).Inc()
		}
		samples[i] = sample
	}
	return Result{Name: j.Name, Samples: samples}
}
