// Package prompt collects the multi-line image prompt from the user.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmpty indicates the user finished input without providing any prompt text.
var ErrEmpty = errors.New("empty prompt")

// Read collects lines from r until the first blank line (or EOF) and joins
// them into a single prompt string. A prompt that is empty after trimming
// returns ErrEmpty.
func Read(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read prompt: %w", err)
	}

	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		return "", ErrEmpty
	}

	return text, nil
}
