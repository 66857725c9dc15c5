// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runner executes conversion tasks over a bounded worker pool and
// streams per-file outcomes to the caller. It is decoupled from any
// presentation mechanism: progress is a channel of outcomes, the final
// aggregate a single RunResult.
package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/convert-engine/pkg/types"
)

// DefaultWorkers caps concurrent conversions when the job does not say.
const DefaultWorkers = 4

// DispatchFunc converts one file and returns the outputs it created.
// Implementations never panic; failures come back as errors.
type DispatchFunc func(ctx context.Context, task types.FileTask) (outputs []string, err error)

// Run converts files through dispatch with at most workers concurrent
// tasks. It returns immediately; one Outcome per file is delivered on the
// first channel in completion order, then the channel closes and the final
// RunResult is delivered on the second.
//
// Percent is computed from the count of completed tasks, so it is
// monotonically non-decreasing in delivery order and reaches 100 when the
// last task finishes. With zero files a single "no matching files" outcome
// and an empty result are delivered without starting the pool.
//
// Cancelling ctx takes effect at task boundaries: queued tasks complete as
// failures without dispatching, while in-flight external processes are
// killed through their command context. Every file still produces exactly
// one outcome.
func Run(ctx context.Context, files []string, dispatch DispatchFunc, workers int) (<-chan types.Outcome, <-chan types.RunResult) {
	outcomes := make(chan types.Outcome)
	final := make(chan types.RunResult, 1)

	go func() {
		defer close(outcomes)

		total := len(files)
		if total == 0 {
			outcomes <- types.Outcome{Message: "no matching files found"}
			final <- types.RunResult{}
			return
		}
		if workers <= 0 {
			workers = DefaultWorkers
		}

		completions := make(chan types.Outcome)
		go func() {
			defer close(completions)
			var g errgroup.Group
			g.SetLimit(workers)
			for i, path := range files {
				task := types.FileTask{InputPath: path, Index: i, Total: total}
				g.Go(func() error {
					completions <- runTask(ctx, task, dispatch)
					return nil
				})
			}
			g.Wait()
		}()

		result := types.RunResult{Total: total}
		completed := 0
		for o := range completions {
			completed++
			o.Percent = completed * 100 / total
			if o.Failure != nil {
				result.Failures = append(result.Failures, *o.Failure)
			}
			outcomes <- o
		}
		final <- result
	}()

	return outcomes, final
}

// runTask dispatches one task and shapes the result into an Outcome.
// Percent is filled in by the collector.
func runTask(ctx context.Context, task types.FileTask, dispatch DispatchFunc) types.Outcome {
	name := filepath.Base(task.InputPath)

	if err := ctx.Err(); err != nil {
		return types.Outcome{
			Message: fmt.Sprintf("failed: %s (%v)", name, err),
			Failure: &types.Failure{Path: task.InputPath, Reason: err.Error()},
		}
	}

	outputs, err := dispatch(ctx, task)
	if err != nil {
		return types.Outcome{
			Message: fmt.Sprintf("failed: %s (%v)", name, err),
			Failure: &types.Failure{Path: task.InputPath, Reason: err.Error()},
		}
	}

	msg := fmt.Sprintf("converted: %s", name)
	if len(outputs) > 0 {
		names := make([]string, len(outputs))
		for i, out := range outputs {
			names[i] = filepath.Base(out)
		}
		msg = fmt.Sprintf("converted: %s -> %s", name, strings.Join(names, ", "))
	}
	return types.Outcome{Message: msg, Outputs: outputs}
}
