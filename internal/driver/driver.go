// Package driver implements the batch-driven dispatch loop: a single
// producer reads newline-aligned chunks from an input stream and hands each
// chunk to a worker as one task; tasks are drained at a barrier before any
// resize runs, so no lookup or insert can straddle a resize.
package driver

import (
	"context"
	"io"

	"github.com/rfrost096/cht/internal/metrics"
	"github.com/rfrost096/cht/internal/record"
	"github.com/rfrost096/cht/pkg/cht"
)

// DefaultMaxTaskPool bounds how many chunk tasks the producer dispatches
// before forcing a drain-and-check-resize barrier.
const DefaultMaxTaskPool = 64

// Config controls one Driver's dispatch behavior.
type Config struct {
	// Threads is the number of chunk tasks allowed in flight at once.
	Threads int
	// MaxTaskPool bounds the number of tasks dispatched between barriers.
	// Values < 1 use [DefaultMaxTaskPool].
	MaxTaskPool int
	// ResizeThreads is the worker count used to partition the rehash.
	// Values < 1 fall back to Threads.
	ResizeThreads int
	// ChunkSize is forwarded to record.NewChunkReader. Values <= 0 use
	// record.DefaultChunkSize.
	ChunkSize int
	// TrackMetrics mirrors the "-s" speed-test flag inverted: when false,
	// the driver skips all counter bookkeeping.
	TrackMetrics bool
}

// Summary is the end-of-run report, empty Metrics when
// TrackMetrics was false.
type Summary struct {
	FinalBuckets uint64
	FinalItems   int64
	Resizes      int
	Metrics      metrics.Snapshot
}

// Driver runs the dispatch loop against one [cht.Table].
type Driver struct {
	tbl      cht.Table
	cfg      Config
	counters metrics.Counters
}

// New builds a Driver against tbl. cfg.Threads and cfg.MaxTaskPool are
// normalized to at least 1.
func New(tbl cht.Table, cfg Config) (*Driver, error) {
	if tbl == nil {
		return nil, ErrNilTable
	}

	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	if cfg.MaxTaskPool < 1 {
		cfg.MaxTaskPool = DefaultMaxTaskPool
	}

	if cfg.ResizeThreads < 1 {
		cfg.ResizeThreads = cfg.Threads
	}

	return &Driver{tbl: tbl, cfg: cfg}, nil
}

// Run drives r to completion: dispatch, drain, maybe-resize, repeat, until
// the input is exhausted and no task is outstanding.
func (d *Driver) Run(ctx context.Context, r io.Reader) (Summary, error) {
	reader := record.NewChunkReader(r, d.cfg.ChunkSize)

	var resizes int

	for {
		if err := ctx.Err(); err != nil {
			return d.summary(resizes), err
		}

		eof, err := d.dispatchBatch(reader)
		if err != nil {
			return d.summary(resizes), err
		}

		if d.tbl.ResizeNeeded() {
			d.tbl.Resize(d.cfg.ResizeThreads)
			resizes++
		}

		if eof {
			return d.summary(resizes), nil
		}
	}
}

// dispatchBatch runs one producer/drain cycle: it reads chunks and spawns
// one task per chunk until end-of-file, a resize trigger, or
// cfg.MaxTaskPool-1 tasks have been dispatched, then
// waits for every dispatched task to finish.
func (d *Driver) dispatchBatch(reader *record.ChunkReader) (eof bool, err error) {
	bwg := newBoundedWaitGroup(d.cfg.Threads)

	dispatched := 0

	for {
		lines, readErr := reader.Next()
		if len(lines) > 0 {
			dispatched++

			bwg.add()

			go func(lines []string) {
				defer bwg.done()

				local := runLines(d.tbl, lines)
				if d.cfg.TrackMetrics {
					d.counters.Add(local)
				}
			}(lines)
		}

		if readErr == io.EOF {
			eof = true

			break
		}

		if readErr != nil {
			err = readErr

			break
		}

		if d.tbl.ResizeNeeded() {
			break
		}

		if dispatched >= d.cfg.MaxTaskPool-1 {
			break
		}
	}

	bwg.wait()

	return eof, err
}

// runLines applies every well-formed record in lines to tbl and returns a
// task-local metrics accumulator.
func runLines(tbl cht.Table, lines []string) metrics.Local {
	var local metrics.Local

	for _, line := range lines {
		rec, ok := record.Parse(line)
		if !ok {
			continue
		}

		switch rec.Op {
		case record.OpInsert:
			tbl.Insert(rec.Key, rec.Value)
			local.TotalOps++
			local.TotalInserts++
		case record.OpLookup:
			got := tbl.Lookup(rec.Key)
			local.TotalOps++
			local.TotalLookups++

			if got == cht.InvalidValue {
				local.LookupMisses++
			} else {
				local.LookupHits++

				if got != rec.Value {
					local.ValueMismatches++
				}
			}
		}
	}

	return local
}

func (d *Driver) summary(resizes int) Summary {
	s := Summary{
		FinalBuckets: d.tbl.NumBuckets(),
		FinalItems:   d.tbl.Len(),
		Resizes:      resizes,
	}

	if d.cfg.TrackMetrics {
		s.Metrics = d.counters.Snapshot()
	}

	return s
}
