package crawl

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// ParseSeeds reads seed URLs, one per line. Blank lines and lines starting
// with # are skipped; duplicates are dropped preserving first-seen order.
func ParseSeeds(r io.Reader) ([]string, error) {
	var seeds []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		seeds = append(seeds, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return seeds, nil
}

// ReadSeedFile parses seeds from a file.
func ReadSeedFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSeeds(f)
}
