package driver_test

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/rfrost096/cht/internal/driver"
	"github.com/rfrost096/cht/pkg/cht"
)

func buildInput(n int) string {
	var b strings.Builder

	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "I %d %d\n", i, i*2+1)
	}

	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "L %d %d\n", i, i*2+1)
	}

	return b.String()
}

func TestDriverRunEndToEnd(t *testing.T) {
	for _, v := range []cht.Variant{cht.StripedLocks, cht.LockFree} {
		t.Run(v.String(), func(t *testing.T) {
			tbl, err := cht.New(cht.Config{
				NumBuckets:    4,
				NumLocks:      4,
				Variant:       v,
				ResizeEnabled: true,
			})
			if err != nil {
				t.Fatal(err)
			}

			defer tbl.Close()

			const n = 2000

			d, err := driver.New(tbl, driver.Config{
				Threads:      8,
				MaxTaskPool:  16,
				ChunkSize:    256,
				TrackMetrics: true,
			})
			if err != nil {
				t.Fatal(err)
			}

			summary, err := d.Run(context.Background(), strings.NewReader(buildInput(n)))
			if err != nil {
				t.Fatalf("Run: %v", err)
			}

			if summary.Metrics.TotalInserts != int64(n) {
				t.Fatalf("TotalInserts = %d, want %d", summary.Metrics.TotalInserts, n)
			}

			if summary.Metrics.LookupHits != int64(n) {
				t.Fatalf("LookupHits = %d, want %d", summary.Metrics.LookupHits, n)
			}

			if summary.Metrics.ValueMismatches != 0 {
				t.Fatalf("ValueMismatches = %d, want 0", summary.Metrics.ValueMismatches)
			}

			if summary.FinalItems != int64(n) {
				t.Fatalf("FinalItems = %d, want %d", summary.FinalItems, n)
			}

			for i := 0; i < n; i++ {
				if got := tbl.Lookup(uint64(i)); got != uint64(i*2+1) {
					t.Fatalf("Lookup(%d) = %d, want %d", i, got, i*2+1)
				}
			}
		})
	}
}

func TestDriverSkipsMalformedLines(t *testing.T) {
	tbl, err := cht.New(cht.Config{NumBuckets: 4, Variant: cht.LockFree})
	if err != nil {
		t.Fatal(err)
	}

	defer tbl.Close()

	d, err := driver.New(tbl, driver.Config{Threads: 2, TrackMetrics: true})
	if err != nil {
		t.Fatal(err)
	}

	in := "garbage line\nI 1 10\nX 2 20\nI 3 30\n"

	summary, err := d.Run(context.Background(), strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}

	if summary.Metrics.TotalInserts != 2 {
		t.Fatalf("TotalInserts = %d, want 2", summary.Metrics.TotalInserts)
	}

	if got := tbl.Lookup(1); got != 10 {
		t.Fatalf("Lookup(1) = %d, want 10", got)
	}

	if got := tbl.Lookup(3); got != 30 {
		t.Fatalf("Lookup(3) = %d, want 30", got)
	}
}

func TestDriverMismatchCounted(t *testing.T) {
	tbl, err := cht.New(cht.Config{NumBuckets: 4, Variant: cht.StripedLocks, NumLocks: 4})
	if err != nil {
		t.Fatal(err)
	}

	defer tbl.Close()

	d, err := driver.New(tbl, driver.Config{Threads: 1, TrackMetrics: true})
	if err != nil {
		t.Fatal(err)
	}

	in := "I 1 100\nL 1 999\n"

	summary, err := d.Run(context.Background(), strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}

	if summary.Metrics.ValueMismatches != 1 {
		t.Fatalf("ValueMismatches = %d, want 1", summary.Metrics.ValueMismatches)
	}

	if summary.Metrics.LookupHits != 1 {
		t.Fatalf("LookupHits = %d, want 1", summary.Metrics.LookupHits)
	}
}

func TestNewRejectsNilTable(t *testing.T) {
	if _, err := driver.New(nil, driver.Config{}); err == nil {
		t.Fatal("expected error for nil table")
	}
}

func TestDriverResizesUnderLoad(t *testing.T) {
	tbl, err := cht.New(cht.Config{
		NumBuckets:    2,
		NumLocks:      2,
		Variant:       cht.StripedLocks,
		ResizeEnabled: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	defer tbl.Close()

	d, err := driver.New(tbl, driver.Config{Threads: 4, MaxTaskPool: 4, ChunkSize: 64})
	if err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	for i := 0; i < 500; i++ {
		b.WriteString("I " + strconv.Itoa(i) + " " + strconv.Itoa(i) + "\n")
	}

	summary, err := d.Run(context.Background(), strings.NewReader(b.String()))
	if err != nil {
		t.Fatal(err)
	}

	if summary.FinalBuckets <= 2 {
		t.Fatalf("FinalBuckets = %d, want > 2", summary.FinalBuckets)
	}

	if summary.Resizes == 0 {
		t.Fatal("expected at least one resize")
	}
}
