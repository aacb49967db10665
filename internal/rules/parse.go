package rules

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// LoadFile reads rule patterns from a file.
// Format:
//
//	- pattern  → exclude
//	+ pattern  → full copy
//	# comment  → skip
//	blank line → skip
//	no prefix  → exclude
//
// The prefix is the sign and one space. Everything after it is the pattern,
// verbatim, so leading and trailing spaces are part of the regex. A comment
// must start in the first column.
//
// Every pattern is validated so a bad line is reported with its line number.
func LoadFile(path string) (full, exclude []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		isFull := false
		pattern := line

		if rest, ok := strings.CutPrefix(line, "+ "); ok {
			isFull = true
			pattern = rest
		} else if rest, ok := strings.CutPrefix(line, "- "); ok {
			pattern = rest
		}

		set, idx := ExcludeSetName, len(exclude)
		if isFull {
			set, idx = FullCopySetName, len(full)
		}
		if _, cerr := Compile(set, []string{pattern}); cerr != nil {
			var pe *PatternError
			if errors.As(cerr, &pe) {
				pe.Index = idx
			}
			return nil, nil, fmt.Errorf("rules file %s line %d: %w", path, lineNum, cerr)
		}

		if isFull {
			full = append(full, pattern)
		} else {
			exclude = append(exclude, pattern)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read rules file: %w", err)
	}
	return full, exclude, nil
}
