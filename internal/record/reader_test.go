package record_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rfrost096/cht/internal/record"
)

func drain(t *testing.T, r *record.ChunkReader) []string {
	t.Helper()

	var all []string

	for {
		lines, err := r.Next()
		all = append(all, lines...)

		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.Fatalf("Next: %v", err)
			}

			return all
		}
	}
}

func TestChunkReaderBasic(t *testing.T) {
	in := "I 1 100\nL 1 0\nI 2 200\n"
	r := record.NewChunkReader(strings.NewReader(in), 4)

	got := drain(t, r)
	want := []string{"I 1 100", "L 1 0", "I 2 200"}

	if len(got) != len(want) {
		t.Fatalf("got %v lines, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestChunkReaderNoTrailingNewline(t *testing.T) {
	in := "I 1 100\nI 2 200"
	r := record.NewChunkReader(strings.NewReader(in), 8)

	got := drain(t, r)
	want := []string{"I 1 100", "I 2 200"}

	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// TestChunkReaderNeverSplitsALine forces a chunk size far smaller than a
// single line and checks no returned line is ever a fragment of another.
func TestChunkReaderNeverSplitsALine(t *testing.T) {
	in := "I 111111 222222\nI 333333 444444\nI 555555 666666\n"
	r := record.NewChunkReader(strings.NewReader(in), 3)

	got := drain(t, r)
	want := strings.Split(strings.TrimSuffix(in, "\n"), "\n")

	if len(got) != len(want) {
		t.Fatalf("got %d lines %v, want %d lines %v", len(got), got, len(want), want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// zeroThenErrReader returns (0, io.EOF) forever, like strings.Reader does
// past its end — this exercises the "EOF declared only on a zero-byte
// read" rule against a reader that keeps returning EOF on repeated calls.
type zeroThenErrReader struct{ calls int }

func (z *zeroThenErrReader) Read(p []byte) (int, error) {
	z.calls++

	return 0, io.EOF
}

func TestChunkReaderEmptyInputIsImmediateEOF(t *testing.T) {
	r := record.NewChunkReader(&zeroThenErrReader{}, 16)

	lines, err := r.Next()
	if !errors.Is(err, io.EOF) {
		t.Fatalf("err = %v, want io.EOF", err)
	}

	if len(lines) != 0 {
		t.Fatalf("lines = %v, want none", lines)
	}
}

// partialErrReader yields one chunk with no trailing newline, then a
// non-EOF error, which must be treated the same as end-of-file.
type partialErrReader struct {
	data []byte
	sent bool
}

func (p *partialErrReader) Read(buf []byte) (int, error) {
	if p.sent {
		return 0, errors.New("boom")
	}

	p.sent = true
	n := copy(buf, p.data)

	return n, nil
}

func TestChunkReaderNonEOFErrorEndsStream(t *testing.T) {
	r := record.NewChunkReader(&partialErrReader{data: []byte("I 9 9")}, 16)

	got := drain(t, r)
	if len(got) != 1 || got[0] != "I 9 9" {
		t.Fatalf("got %v, want [\"I 9 9\"]", got)
	}
}
