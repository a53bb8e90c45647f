// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/dispatchkeys/pkg/core/dispatch"
	. "github.com/gomlx/dispatchkeys/pkg/core/dispatchkeys"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// benchReportEvery is the number of calls a worker makes between progress bar updates.
const benchReportEvery = 1000

// benchResult holds the outcome of runBench.
type benchResult struct {
	Calls    int64
	Elapsed  time.Duration
	Parallel int
}

// CallsPerSec is the throughput of the benchmark.
func (r benchResult) CallsPerSec() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Calls) / r.Elapsed.Seconds()
}

// NsPerCall is the average latency of one call, across all workers.
func (r benchResult) NsPerCall() float64 {
	if r.Calls == 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) * float64(r.Parallel) / float64(r.Calls)
}

// runBench calls op numCalls times split over parallel goroutines, cycling through the demo calls that succeed.
// If onProgress is not nil, it is called with the number of calls completed since the last call.
func runBench(ctx context.Context, op *dispatch.OperatorHandle, numCalls, parallel int, onProgress func(n int)) (benchResult, error) {
	if numCalls <= 0 {
		return benchResult{}, errors.Errorf("number of calls must be > 0, got %d", numCalls)
	}
	parallel = max(parallel, 1)

	var calls []demoCall
	for _, call := range demoCalls {
		if runDemoCall(op, call).Err == nil {
			calls = append(calls, call)
		}
	}
	if len(calls) == 0 {
		return benchResult{}, errors.Errorf("no demo call of %s succeeds, nothing to benchmark", op)
	}

	var done atomic.Int64
	start := time.Now()
	g, gCtx := errgroup.WithContext(ctx)
	for worker := range parallel {
		g.Go(func() error {
			workerCtx := gCtx
			n := numCalls / parallel
			if worker < numCalls%parallel {
				n++
			}
			pending := 0
			for i := range n {
				call := calls[(worker+i)%len(calls)]
				callCtx := workerCtx
				if len(call.Local) > 0 {
					callCtx = dispatch.WithIncludedKeys(workerCtx, call.Local...)
				}
				if _, err := op.Call(callCtx, call.Args...); err != nil {
					return errors.WithMessagef(err, "benchmark call %q", call.Name)
				}
				pending++
				if pending == benchReportEvery || i == n-1 {
					done.Add(int64(pending))
					if onProgress != nil {
						onProgress(pending)
					}
					pending = 0
					if err := workerCtx.Err(); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	err := g.Wait()
	return benchResult{Calls: done.Load(), Elapsed: time.Since(start), Parallel: parallel}, err
}

// reportBench runs the benchmark on the demo operator and prints the throughput.
func reportBench(config string, numCalls, parallel int, showProgress bool) error {
	_, op := newDemoDispatcher(config)
	var (
		onProgress func(n int)
		bar        *progressbar.ProgressBar
	)
	if showProgress {
		term := termenv.NewOutput(os.Stdout)
		term.HideCursor()
		defer term.ShowCursor()
		bar = progressbar.NewOptions(numCalls,
			progressbar.OptionSetDescription("dispatch"),
			progressbar.OptionUseANSICodes(true),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("calls"),
			progressbar.OptionSetTheme(progressbar.ThemeASCII),
			progressbar.OptionClearOnFinish())
		onProgress = func(n int) { _ = bar.Add(n) }
	}
	result, err := runBench(context.Background(), op, numCalls, parallel, onProgress)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Benchmark %s", op)))
	table := newTable([]string{"Metric", "Value"}, lipgloss.Left, lipgloss.Right)
	table.Row(false, "calls", humanize.Comma(result.Calls))
	table.Row(false, "goroutines", humanize.Comma(int64(result.Parallel)))
	table.Row(false, "elapsed", result.Elapsed.Round(time.Microsecond).String())
	table.Row(false, "calls/sec", humanize.CommafWithDigits(result.CallsPerSec(), 0))
	table.Row(false, "ns/call", humanize.FormatFloat("#,###.#", result.NsPerCall()))
	table.Row(false, "runtime table slots", humanize.Comma(int64(NumRuntimeEntries)))
	fmt.Println(table.Render())
	return nil
}
