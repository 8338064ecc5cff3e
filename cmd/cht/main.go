// Package main provides cht, a driver for the concurrent bucketized hash
// table in github.com/rfrost096/cht/pkg/cht.
package main

import (
	"os"
	"strings"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr, env))
}
