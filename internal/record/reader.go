package record

import (
	"bytes"
	"io"
	"strings"
)

// DefaultChunkSize is the byte target for one dispatch chunk.
const DefaultChunkSize = 64 * 1024

// ChunkReader reads line-aligned chunks off an underlying stream: each call
// to Next returns every complete line in the next chunkSize-ish bytes,
// rewinding (by buffering, not seeking — ChunkReader works over any
// io.Reader, not just a seekable file) to the last newline so no line is
// ever split across two chunks.
//
// End-of-file is declared only when a read yields zero bytes — never
// inferred from how many lines came back in a chunk. A read error other
// than io.EOF is treated the same as end-of-file.
type ChunkReader struct {
	r         io.Reader
	chunkSize int
	pending   []byte
	eof       bool
}

// NewChunkReader wraps r. chunkSize <= 0 uses [DefaultChunkSize].
func NewChunkReader(r io.Reader, chunkSize int) *ChunkReader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &ChunkReader{r: r, chunkSize: chunkSize}
}

// Next returns the next batch of complete lines, or (nil, io.EOF) once the
// stream is exhausted and every trailing partial line (if any) has already
// been returned.
func (c *ChunkReader) Next() ([]string, error) {
	if c.eof && len(c.pending) == 0 {
		return nil, io.EOF
	}

	buf := make([]byte, c.chunkSize)

	for {
		n, err := c.r.Read(buf)
		if n > 0 {
			c.pending = append(c.pending, buf[:n]...)
		}

		if err != nil {
			c.eof = true

			break
		}

		if n == 0 {
			c.eof = true

			break
		}

		if idx := bytes.LastIndexByte(c.pending, '\n'); idx >= 0 {
			return c.takeThrough(idx), nil
		}
		// No newline yet in a full chunkSize read: keep accumulating
		// (an unbounded single line is unusual input but not an error).
	}

	if len(c.pending) == 0 {
		return nil, io.EOF
	}

	if idx := bytes.LastIndexByte(c.pending, '\n'); idx >= 0 {
		return c.takeThrough(idx), nil
	}

	// Final partial line with no trailing newline.
	lines := splitLines(c.pending)
	c.pending = nil

	return lines, nil
}

// takeThrough returns the lines in c.pending[:idx+1] and keeps the
// remainder (c.pending[idx+1:]) buffered for the next call.
func (c *ChunkReader) takeThrough(idx int) []string {
	lines := splitLines(c.pending[:idx+1])
	rest := make([]byte, len(c.pending)-idx-1)
	copy(rest, c.pending[idx+1:])
	c.pending = rest

	return lines
}

func splitLines(b []byte) []string {
	s := strings.TrimSuffix(string(b), "\n")

	if s == "" {
		return nil
	}

	return strings.Split(s, "\n")
}
