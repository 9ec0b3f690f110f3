package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fenilsonani/tickengine/pkg/tickengine"
)

// triple is one (subject, predicate, object) line from a triples file.
// Per spec's "no wire protocol, no on-disk format" non-goal, this is a
// minimal whitespace-separated integer format for the demo loader, not
// a Turtle/N-Triples parser.
type triple struct {
	S, P, O uint32
}

func readTriples(r io.Reader) ([]triple, error) {
	var out []triple
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("malformed triple line %q: want 3 fields, got %d", line, len(fields))
		}
		t, err := parseTriple(fields)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseTriple(fields []string) (triple, error) {
	var t triple
	ids := [3]*uint32{&t.S, &t.P, &t.O}
	for i, f := range fields {
		n, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return triple{}, fmt.Errorf("invalid term id %q: %w", f, err)
		}
		*ids[i] = uint32(n)
	}
	return t, nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// loadFile opens path, reads its triples, and inserts each into e.
func loadFile(e *tickengine.Engine, path string) (int, error) {
	f, err := openInput(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	triples, err := readTriples(f)
	if err != nil {
		return 0, err
	}
	for _, t := range triples {
		if err := e.AddTriple(t.S, t.P, t.O); err != nil {
			return 0, fmt.Errorf("add triple (%d,%d,%d): %w", t.S, t.P, t.O, err)
		}
	}
	return len(triples), nil
}
