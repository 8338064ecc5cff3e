package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/rfrost096/cht/pkg/cht"
)

// REPL is the interactive command loop, grounded on cmd/sloty's liner-based
// shell: readline-style input, persistent history, and one method per
// command.
type REPL struct {
	tbl     cht.Table
	threads int
	variant string
	liner   *liner.State
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".cht_history")
}

func (r *REPL) Run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("cht-repl (variant=%s, buckets=%d)\n", r.variant, r.tbl.NumBuckets())
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt("cht> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")
			r.saveHistory()

			return nil
		case "help", "?":
			r.printHelp()
		case "insert", "put", "i":
			r.cmdInsert(args)
		case "lookup", "get", "l":
			r.cmdLookup(args)
		case "resize":
			r.cmdResize()
		case "len", "count":
			fmt.Printf("items: %d\n", r.tbl.Len())
		case "buckets":
			fmt.Printf("buckets: %d\n", r.tbl.NumBuckets())
		case "info":
			r.cmdInfo()
		default:
			fmt.Printf("unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

func (r *REPL) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			_, _ = r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

func (r *REPL) completer(line string) []string {
	commands := []string{
		"insert", "put", "lookup", "get", "resize",
		"len", "count", "buckets", "info",
		"help", "exit", "quit", "q",
	}

	var completions []string

	lower := strings.ToLower(line)

	for _, c := range commands {
		if strings.HasPrefix(c, lower) {
			completions = append(completions, c)
		}
	}

	return completions
}

func (r *REPL) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  insert <key> <value>   Insert (or overwrite) a key")
	fmt.Println("  lookup <key>           Look up a key")
	fmt.Println("  resize                 Force a resize now")
	fmt.Println("  len                    Show the current item count")
	fmt.Println("  buckets                Show the current bucket count")
	fmt.Println("  info                   Show variant, bucket count, item count")
	fmt.Println("  help                   Show this help")
	fmt.Println("  exit / quit / q        Exit")
}

func (r *REPL) cmdInsert(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: insert <key> <value>")

		return
	}

	key, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Printf("error parsing key: %v\n", err)

		return
	}

	value, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		fmt.Printf("error parsing value: %v\n", err)

		return
	}

	r.tbl.Insert(key, value)
	fmt.Printf("OK: inserted %d -> %d\n", key, value)

	if r.tbl.ResizeNeeded() {
		fmt.Println("(resize now recommended — run 'resize')")
	}
}

func (r *REPL) cmdLookup(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: lookup <key>")

		return
	}

	key, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Printf("error parsing key: %v\n", err)

		return
	}

	value := r.tbl.Lookup(key)
	if value == cht.InvalidValue {
		fmt.Println("(not found)")

		return
	}

	fmt.Printf("%d -> %d\n", key, value)
}

func (r *REPL) cmdResize() {
	before := r.tbl.NumBuckets()
	r.tbl.Resize(r.threads)
	fmt.Printf("OK: resized %d -> %d buckets\n", before, r.tbl.NumBuckets())
}

func (r *REPL) cmdInfo() {
	fmt.Printf("variant:         %s\n", r.variant)
	fmt.Printf("buckets:         %d\n", r.tbl.NumBuckets())
	fmt.Printf("items:           %d\n", r.tbl.Len())
	fmt.Printf("resize needed:   %v\n", r.tbl.ResizeNeeded())
}
