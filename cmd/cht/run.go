package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/rfrost096/cht/internal/driver"
	"github.com/rfrost096/cht/internal/report"
	"github.com/rfrost096/cht/internal/sysinfo"
	"github.com/rfrost096/cht/pkg/cht"
)

const (
	defaultNumBuckets = 64
	defaultThreads    = 16
)

var errUnknownVariant = errors.New("cht: unknown variant (want \"striped\" or \"lockfree\")")

// run is the main entry point, split out from main() so it can be exercised
// with fake args/env/writers in tests.
func run(args []string, _ io.Reader, out, errOut io.Writer, env map[string]string) int {
	fs := flag.NewFlagSet("cht", flag.ContinueOnError)
	fs.SetOutput(errOut)

	flagFile := fs.StringP("file", "f", "", "input file (required)")
	flagBuckets := fs.Uint64P("buckets", "b", 0, "initial bucket count (default 64)")
	flagThreads := fs.IntP("threads", "t", 0, "thread count (default: usable CPU count)")
	flagNoResize := fs.BoolP("no-resize", "r", false, "disable resizing")
	flagSpeedTest := fs.BoolP("speed-test", "s", false, "speed-test mode: suppress metric tracking and reporting")
	flagVariant := fs.String("variant", "", "table variant: striped|lockfree (default striped)")
	flagReportPath := fs.String("report", "", "also write a JSON metrics report to `path`")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 1
	}

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	fcfg, err := loadConfig(workDir, env)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	opts := resolveOptions(fs, fcfg, flagBuckets, flagThreads, flagVariant, flagNoResize)

	variant, err := parseVariant(opts.variant)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	if *flagFile == "" {
		fmt.Fprintln(errOut, "error: -f is required")

		return 1
	}

	f, err := os.Open(*flagFile) //nolint:gosec // path is an explicit CLI argument
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	defer f.Close()

	trackMetrics := !*flagSpeedTest

	tbl, err := cht.New(cht.Config{
		NumBuckets:    opts.numBuckets,
		NumLocks:      opts.numBuckets,
		Variant:       variant,
		ResizeEnabled: opts.resizeEnabled,
	})
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	defer tbl.Close()

	d, err := driver.New(tbl, driver.Config{
		Threads:       opts.threads,
		ResizeThreads: opts.threads,
		TrackMetrics:  trackMetrics,
	})
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	summary, err := runWithSignals(d, f)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	if trackMetrics {
		report.Fprint(out, summary)
	}

	if *flagReportPath != "" {
		if err := report.WriteFile(*flagReportPath, summary); err != nil {
			fmt.Fprintln(errOut, "error:", err)

			return 1
		}
	}

	return 0
}

// runWithSignals runs d against r, cancelling the driver's context on the
// first SIGINT/SIGTERM rather than killing the process mid-rehash.
func runWithSignals(d *driver.Driver, r io.Reader) (driver.Summary, error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		summary driver.Summary
		err     error
	}

	done := make(chan result, 1)

	go func() {
		summary, err := d.Run(ctx, r)
		done <- result{summary, err}
	}()

	select {
	case res := <-done:
		return res.summary, res.err
	case <-sigCh:
		cancel()
		res := <-done

		return res.summary, res.err
	}
}

type options struct {
	numBuckets    uint64
	threads       int
	variant       string
	resizeEnabled bool
}

func resolveOptions(
	fs *flag.FlagSet, fcfg fileConfig,
	flagBuckets *uint64, flagThreads *int, flagVariant *string, flagNoResize *bool,
) options {
	opts := options{
		numBuckets:    defaultNumBuckets,
		threads:       sysinfo.DefaultThreads(),
		resizeEnabled: true,
	}

	if fcfg.NumBuckets != nil {
		opts.numBuckets = *fcfg.NumBuckets
	}

	if fcfg.Threads != nil {
		opts.threads = *fcfg.Threads
	}

	if fcfg.Variant != "" {
		opts.variant = fcfg.Variant
	}

	if fcfg.ResizeEnabled != nil {
		opts.resizeEnabled = *fcfg.ResizeEnabled
	}

	if fs.Changed("buckets") {
		opts.numBuckets = *flagBuckets
	}

	if fs.Changed("threads") {
		opts.threads = *flagThreads
	}

	if fs.Changed("variant") {
		opts.variant = *flagVariant
	}

	if *flagNoResize {
		opts.resizeEnabled = false
	}

	if opts.numBuckets < 1 {
		opts.numBuckets = defaultNumBuckets
	}

	if opts.threads < 1 {
		opts.threads = defaultThreads
	}

	return opts
}

func parseVariant(name string) (cht.Variant, error) {
	switch name {
	case "", "striped":
		return cht.StripedLocks, nil
	case "lockfree":
		return cht.LockFree, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownVariant, name)
	}
}
