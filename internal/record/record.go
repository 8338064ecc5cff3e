// Package record implements the input file format: one operation per line,
// "<opcode> <key> <value>" separated by whitespace. Opcode L is a lookup
// (value carried only for metric verification), I is an insert. Unknown
// opcodes are skipped.
package record

import (
	"strconv"
	"strings"
)

// Op identifies the operation a [Record] requests.
type Op byte

const (
	// OpLookup is opcode 'L'.
	OpLookup Op = 'L'
	// OpInsert is opcode 'I'.
	OpInsert Op = 'I'
)

// Record is one parsed input line.
type Record struct {
	Op    Op
	Key   uint64
	Value uint64
}

// Parse parses one line of the input format. ok is false for a blank line,
// a line with too few fields, a line whose key/value isn't a valid decimal
// u64, or a line whose opcode isn't L/I — all of which the caller should
// skip rather than treat as fatal.
func Parse(line string) (rec Record, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Record{}, false
	}

	var op Op

	switch fields[0] {
	case "L":
		op = OpLookup
	case "I":
		op = OpInsert
	default:
		return Record{}, false
	}

	key, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Record{}, false
	}

	value, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return Record{}, false
	}

	return Record{Op: op, Key: key, Value: value}, true
}
