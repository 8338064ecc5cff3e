// Package main provides cht-gen, a generator for workload files in the
// input format cmd/cht reads: one operation per line,
// "<opcode> <key> <value>".
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
