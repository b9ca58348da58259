// Package checker runs balance lookups over a list of addresses and writes
// the results as CSV. One row per address, processed once; a failed lookup
// records the sentinel row instead of aborting the run.
package checker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"walletkit/pkg/logx"
)

// Record is one finished lookup: the CSV row and the balance used for
// progress reporting and the summary.
type Record struct {
	Address     string
	Row         []string
	BalanceSats int64
}

// FetchFunc resolves one address into a Record. It must not panic; failures
// come back as sentinel rows.
type FetchFunc func(ctx context.Context, address string) Record

// Options tunes a run.
type Options struct {
	Delay         time.Duration // pause between addresses (sequential mode)
	Limit         int           // max addresses, 0 = all
	Workers       int           // >1 switches to the worker pool
	AutosaveEvery int           // rewrite the CSV every N rows, 0 = 100
	ProgressEvery int           // progress log cadence, 0 = 10
}

// Summary is returned after a run completes.
type Summary struct {
	Checked     int
	Succeeded   int
	WithBalance int
	Elapsed     time.Duration
}

// Run checks every address and appends the rows to rep. Sequential by
// default; with Workers > 1 a fixed pool issues lookups concurrently and
// rows land in completion order, not input order.
func Run(ctx context.Context, addresses []string, fetch FetchFunc, rep *Report, opt Options) (Summary, error) {
	if opt.Limit > 0 && opt.Limit < len(addresses) {
		addresses = addresses[:opt.Limit]
	}
	if opt.AutosaveEvery <= 0 {
		opt.AutosaveEvery = 100
	}
	if opt.ProgressEvery <= 0 {
		opt.ProgressEvery = 10
	}
	if opt.Workers < 1 {
		opt.Workers = 1
	}

	logx.S().Infow("balance check started",
		"addresses", len(addresses),
		"workers", opt.Workers,
		"delay", opt.Delay,
	)

	start := time.Now()
	var sum Summary

	if opt.Workers == 1 {
		err := runSequential(ctx, addresses, fetch, rep, opt, start, &sum)
		sum.Elapsed = time.Since(start)
		if err != nil {
			return sum, err
		}
	} else {
		err := runPool(ctx, addresses, fetch, rep, opt, start, &sum)
		sum.Elapsed = time.Since(start)
		if err != nil {
			return sum, err
		}
	}

	if err := rep.Save(); err != nil {
		return sum, fmt.Errorf("save results: %w", err)
	}
	logx.S().Infow("balance check done",
		"checked", sum.Checked,
		"succeeded", sum.Succeeded,
		"with_balance", sum.WithBalance,
		"elapsed", sum.Elapsed.Round(time.Second),
	)
	return sum, nil
}

func runSequential(ctx context.Context, addresses []string, fetch FetchFunc, rep *Report, opt Options, start time.Time, sum *Summary) error {
	for idx, addr := range addresses {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rec := fetch(ctx, addr)
		tally(rep, rec, sum)

		if (idx+1)%opt.ProgressEvery == 0 || rec.BalanceSats > 0 {
			logProgress(idx+1, len(addresses), rec, start)
		}
		if (idx+1)%opt.AutosaveEvery == 0 {
			if err := rep.Save(); err != nil {
				logx.S().Errorw("autosave failed", "err", err)
			} else {
				logx.S().Infow("autosave", "rows", rep.Len())
			}
		}

		if opt.Delay > 0 && idx+1 < len(addresses) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(opt.Delay):
			}
		}
	}
	return nil
}

func runPool(ctx context.Context, addresses []string, fetch FetchFunc, rep *Report, opt Options, start time.Time, sum *Summary) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan string)
	events := make(chan Record, opt.Workers*4)

	var wg sync.WaitGroup
	wg.Add(opt.Workers)
	for i := 0; i < opt.Workers; i++ {
		go func() {
			defer wg.Done()
			for addr := range jobs {
				rec := fetch(ctx, addr)
				select {
				case <-ctx.Done():
					return
				case events <- rec:
				}
			}
		}()
	}

	// single writer: rows land in completion order
	var completed atomic.Int64
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		done := 0
		for rec := range events {
			done++
			completed.Store(int64(done))
			tally(rep, rec, sum)
			if done%opt.ProgressEvery == 0 || rec.BalanceSats > 0 {
				logProgress(done, len(addresses), rec, start)
			}
			if done%opt.AutosaveEvery == 0 {
				if err := rep.Save(); err != nil {
					logx.S().Errorw("autosave failed", "err", err)
				}
			}
		}
	}()

	statusDone := make(chan struct{})
	go func() {
		defer close(statusDone)
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				logx.S().Infow("progress",
					"checked", completed.Load(),
					"total", len(addresses),
					"elapsed", time.Since(start).Round(time.Second),
				)
			}
		}
	}()

	var err error
feed:
	for _, addr := range addresses {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- addr:
		}
	}
	close(jobs)
	wg.Wait()
	close(events)
	<-writerDone
	cancel()
	<-statusDone
	return err
}

func tally(rep *Report, rec Record, sum *Summary) {
	rep.Append(rec.Row)
	sum.Checked++
	if rec.BalanceSats >= 0 {
		sum.Succeeded++
	}
	if rec.BalanceSats > 0 {
		sum.WithBalance++
	}
}

func logProgress(done, total int, rec Record, start time.Time) {
	elapsed := time.Since(start)
	remaining := time.Duration(0)
	if done > 0 && elapsed > 0 {
		rate := float64(done) / elapsed.Seconds()
		remaining = time.Duration(float64(total-done)/rate) * time.Second
	}
	logx.S().Infow("checked",
		"progress", fmt.Sprintf("%d/%d", done, total),
		"address", shorten(rec.Address),
		"balance_btc", fmt.Sprintf("%.8f", btc(rec.BalanceSats)),
		"remaining", remaining.Round(time.Minute),
	)
}

func shorten(addr string) string {
	if len(addr) <= 8 {
		return addr
	}
	return addr[:8] + "..."
}

func btc(sats int64) float64 {
	if sats < 0 {
		return 0
	}
	return float64(sats) / 1e8
}
