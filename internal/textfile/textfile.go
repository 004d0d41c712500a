// Package textfile loads source text for new articles.
package textfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadLines reads paragraphs, one per line, from path. A path of "-" reads
// standard input.
func LoadLines(path string) ([]string, error) {
	if path == "-" {
		return ReadLines(os.Stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()
	return ReadLines(file)
}

// ReadLines returns the non-blank lines of r with surrounding whitespace
// trimmed.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("text is empty")
	}
	return lines, nil
}
