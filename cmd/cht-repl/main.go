// cht-repl is an interactive line-edited shell for manual lookup/insert
// against a live github.com/rfrost096/cht/pkg/cht table.
//
// Commands:
//
//	insert <key> <value>   Insert (or overwrite) a key
//	lookup <key>           Look up a key
//	resize                 Force a resize now
//	len                    Show the current item count
//	buckets                Show the current bucket count
//	info                   Show variant, bucket count, item count
//	help                   Show this help
//	exit / quit / q        Exit
package main

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/rfrost096/cht/pkg/cht"
)

func main() {
	fs := flag.NewFlagSet("cht-repl", flag.ExitOnError)
	flagBuckets := fs.Uint64P("buckets", "b", 64, "initial bucket count")
	flagThreads := fs.IntP("threads", "t", 4, "thread count used for resize")
	flagVariant := fs.String("variant", "striped", "table variant: striped|lockfree")
	flagNoResize := fs.BoolP("no-resize", "r", false, "disable resizing")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		os.Exit(1)
	}

	variant, err := parseVariant(*flagVariant)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	tbl, err := cht.New(cht.Config{
		NumBuckets:    *flagBuckets,
		NumLocks:      *flagBuckets,
		Variant:       variant,
		ResizeEnabled: !*flagNoResize,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	defer tbl.Close()

	repl := &REPL{tbl: tbl, threads: *flagThreads, variant: *flagVariant}

	if err := repl.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func parseVariant(name string) (cht.Variant, error) {
	switch name {
	case "", "striped":
		return cht.StripedLocks, nil
	case "lockfree":
		return cht.LockFree, nil
	default:
		return 0, fmt.Errorf("unknown variant %q", name)
	}
}
