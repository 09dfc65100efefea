// Package batch registers pre-provisioned units in bulk. Identifiers
// arrive from an input file or the command line; identities and images
// were produced elsewhere, so only the backend registrations run here.
package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Pair couples a pre-provisioned orb identifier with its assigned name.
type Pair struct {
	ID   string
	Name string
}

// ReadIDs reads one orb identifier per line. Blank lines are skipped;
// surrounding whitespace is trimmed.
func ReadIDs(path string) ([]string, error) {
	var ids []string
	err := scanLines(path, func(_ int, line string) error {
		ids = append(ids, line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ReadPairs reads whitespace-separated "<id> <name>" lines. Blank lines
// are skipped; any other line shape is rejected.
func ReadPairs(path string) ([]Pair, error) {
	var pairs []Pair
	err := scanLines(path, func(n int, line string) error {
		parts := strings.Fields(line)
		if len(parts) != 2 {
			return fmt.Errorf("line %d: expected \"<orb-id> <orb-name>\", got %q", n, line)
		}
		pairs = append(pairs, Pair{ID: parts[0], Name: parts[1]})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

// scanLines calls fn for every non-blank line with its 1-based line number.
func scanLines(path string, fn func(n int, line string) error) error {
	// #nosec G304 - path is an operator-supplied input file
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := fn(n, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	return nil
}
