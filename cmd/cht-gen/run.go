package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	flag "github.com/spf13/pflag"
)

func run(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("cht-gen", flag.ContinueOnError)
	fs.SetOutput(errOut)

	flagOutput := fs.StringP("output", "o", "", "output file (required)")
	flagCount := fs.IntP("count", "n", 10000, "number of operations to generate")
	flagBuckets := fs.Uint64P("buckets", "b", 64, "bucket count the workload is shaped around")
	flagInsertRatio := fs.Float64P("insert-ratio", "i", 0.5, "fraction of operations that are inserts")
	flagCluster := fs.Bool("cluster", false, "hash all keys into a single bucket (stresses resize)")
	flagSeed := fs.Int64P("seed", "s", 1, "random seed, for a reproducible workload")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 1
	}

	if *flagOutput == "" {
		fmt.Fprintln(errOut, "error: -o is required")

		return 1
	}

	if *flagCount < 1 {
		fmt.Fprintln(errOut, "error: -n must be >= 1")

		return 1
	}

	if *flagInsertRatio < 0 || *flagInsertRatio > 1 {
		fmt.Fprintln(errOut, "error: -i must be between 0 and 1")

		return 1
	}

	f, err := os.Create(*flagOutput) //nolint:gosec // path is an explicit CLI argument
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	defer f.Close()

	w := bufio.NewWriter(f)

	if err := generate(w, genConfig{
		count:       *flagCount,
		numBuckets:  *flagBuckets,
		insertRatio: *flagInsertRatio,
		cluster:     *flagCluster,
		seed:        *flagSeed,
	}); err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	if err := w.Flush(); err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	fmt.Fprintf(out, "wrote %d operations to %s\n", *flagCount, *flagOutput)

	return 0
}

type genConfig struct {
	count       int
	numBuckets  uint64
	insertRatio float64
	cluster     bool
	seed        int64
}

// hashToBucket mirrors pkg/cht's h(k) = (k*37+13) mod numBuckets, so
// --cluster can pick keys that are guaranteed to collide in a target
// bucket without importing the table package just for its hash function.
func hashToBucket(key, numBuckets uint64) uint64 {
	return (key*37 + 13) % numBuckets
}

// generate writes count lines in the cmd/cht input format. Keys are drawn
// uniformly from [0, numBuckets*64) unless cluster is set, in which case
// every key is forced into one bucket by construction (key = i*numBuckets,
// since (i*numBuckets*37+13) mod numBuckets == 13 mod numBuckets for every
// i, putting every generated key in the same bucket).
func generate(w io.Writer, cfg genConfig) error {
	rng := rand.New(rand.NewSource(cfg.seed)) //nolint:gosec // reproducibility, not security

	keySpace := cfg.numBuckets * 64
	if keySpace == 0 {
		keySpace = 1
	}

	var inserted []uint64

	for i := 0; i < cfg.count; i++ {
		var key uint64

		if cfg.cluster {
			key = uint64(i) * cfg.numBuckets
		} else {
			key = uint64(rng.Int63n(int64(keySpace))) //nolint:gosec // workload generation, not security
		}

		if rng.Float64() < cfg.insertRatio || len(inserted) == 0 {
			value := key*2 + 1
			if _, err := fmt.Fprintf(w, "I %d %d\n", key, value); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}

			inserted = append(inserted, key)

			continue
		}

		lookupKey := inserted[rng.Intn(len(inserted))]
		if _, err := fmt.Fprintf(w, "L %d %d\n", lookupKey, lookupKey*2+1); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}

	return nil
}
