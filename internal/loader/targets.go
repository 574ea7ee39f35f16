// Package loader reads batch input files.
package loader

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadTargets reads one token per line from path, skipping blank lines
// and # comments. An unreadable file is a configuration error and
// surfaces to the caller; it is the one failure that stops a batch
// before it starts.
func ReadTargets(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open targets file: %w", err)
	}
	defer f.Close()

	var tokens []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens = append(tokens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}

	return tokens, nil
}
