package model_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rfrost096/cht/internal/model"
	"github.com/rfrost096/cht/pkg/cht"
)

// TestModelAgreement runs a randomized sequence of inserts against both a
// real cht.Table and model.Map, then diffs the two with cmp.Diff. This
// exercises lookup-returns-most-recent-insert, idempotent re-insert,
// overwrite, and sentinel rejection all at once, across both variants and
// across an intervening resize.
func TestModelAgreement(t *testing.T) {
	for _, v := range []cht.Variant{cht.StripedLocks, cht.LockFree} {
		t.Run(fmt.Sprint(v), func(t *testing.T) {
			tbl, err := cht.New(cht.Config{
				NumBuckets:    8,
				NumLocks:      8,
				Variant:       v,
				ResizeEnabled: false,
			})
			if err != nil {
				t.Fatal(err)
			}

			defer tbl.Close()

			want := model.Map{}

			rng := rand.New(rand.NewSource(42))
			keys := make([]uint64, 0, 300)

			for i := 0; i < 5000; i++ {
				var key uint64
				if i > 0 && rng.Intn(3) == 0 {
					key = keys[rng.Intn(len(keys))] // bias toward overwrites
				} else {
					key = uint64(rng.Intn(300))
					keys = append(keys, key)
				}

				value := uint64(rng.Intn(1 << 20))

				tbl.Insert(key, value)
				want.Insert(key, value)
			}

			// Sentinel edge cases, applied to both sides identically.
			tbl.Insert(cht.InvalidKey, 5)
			want.Insert(cht.InvalidKey, 5)
			tbl.Insert(999, cht.InvalidValue)
			want.Insert(999, cht.InvalidValue)

			keys = append(keys, cht.InvalidKey, 999, 100000)

			got := model.Snapshot(tbl, keys)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("table diverged from model (-want +got):\n%s", diff)
			}

			// Resize must not change any observable value.
			tbl.Resize(4)

			got = model.Snapshot(tbl, keys)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("table diverged from model after resize (-want +got):\n%s", diff)
			}
		})
	}
}
