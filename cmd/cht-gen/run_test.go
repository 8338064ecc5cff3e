package main

import (
	"bufio"
	"bytes"
	"os"
	"strconv"
	"strings"
	"testing"
)

func TestGenerateProducesValidLines(t *testing.T) {
	var buf bytes.Buffer

	err := generate(&buf, genConfig{count: 200, numBuckets: 16, insertRatio: 0.6, seed: 7})
	if err != nil {
		t.Fatal(err)
	}

	scanner := bufio.NewScanner(&buf)

	var n int

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 3 {
			t.Fatalf("malformed line: %q", scanner.Text())
		}

		if fields[0] != "I" && fields[0] != "L" {
			t.Fatalf("unexpected opcode: %q", fields[0])
		}

		n++
	}

	if n != 200 {
		t.Fatalf("wrote %d lines, want 200", n)
	}
}

func TestGenerateClusterHitsOneBucket(t *testing.T) {
	const numBuckets = 8

	var buf bytes.Buffer

	if err := generate(&buf, genConfig{count: 100, numBuckets: numBuckets, insertRatio: 1, cluster: true, seed: 3}); err != nil {
		t.Fatal(err)
	}

	scanner := bufio.NewScanner(&buf)

	var bucket uint64

	first := true

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())

		key, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			t.Fatalf("bad key %q: %v", fields[1], err)
		}

		b := hashToBucket(key, numBuckets)
		if first {
			bucket = b
			first = false
		} else if b != bucket {
			t.Fatalf("key %d hashed to bucket %d, want %d", key, b, bucket)
		}
	}
}

func TestRunWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/workload.txt"

	var out, errOut bytes.Buffer

	code := run([]string{"cht-gen", "-o", path, "-n", "50"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 50 {
		t.Fatalf("got %d lines, want 50", len(lines))
	}
}
