// Package report renders a driver.Summary for a human (stdout) and persists
// it to disk as JSON using an atomic, rename-after-write file replace so a
// reader never observes a partially written report file.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/rfrost096/cht/internal/driver"
)

// Fprint writes a human-readable rendering of summary to w, one counter per
// line.
func Fprint(w io.Writer, summary driver.Summary) {
	fmt.Fprintf(w, "buckets:        %d\n", summary.FinalBuckets)
	fmt.Fprintf(w, "items:          %d\n", summary.FinalItems)
	fmt.Fprintf(w, "resizes:        %d\n", summary.Resizes)
	fmt.Fprintf(w, "total ops:      %d\n", summary.Metrics.TotalOps)
	fmt.Fprintf(w, "total lookups:  %d\n", summary.Metrics.TotalLookups)
	fmt.Fprintf(w, "lookup hits:    %d\n", summary.Metrics.LookupHits)
	fmt.Fprintf(w, "lookup misses:  %d\n", summary.Metrics.LookupMisses)
	fmt.Fprintf(w, "total inserts:  %d\n", summary.Metrics.TotalInserts)
	fmt.Fprintf(w, "value mismatches: %d\n", summary.Metrics.ValueMismatches)
}

// WriteFile marshals summary as indented JSON and atomically replaces
// path's contents (rename-after-write, so a concurrent reader never sees a
// half-written file).
func WriteFile(path string, summary driver.Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	if err := atomic.WriteFile(path, strings.NewReader(string(data))); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}

	return nil
}
