package parse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/conf2json/conf2json/internal/tree"
)

// assignPattern matches a full assignment line: optional leading
// whitespace, a key of letters, digits, dots, underscores and dashes,
// then '=', then the rest of the line as the value. Compiled once at
// package initialization.
var assignPattern = regexp.MustCompile(`^\s*([A-Za-z0-9._-]+)\s*=\s*(.*?)\s*$`)

// Line classifies one line of configuration text.
//
// Blank lines and comment lines (first non-blank character is '#')
// produce ok == false. So do lines that fit neither form nor the
// key = value shape: malformed lines are skipped rather than failing
// the file. On a match, key is the dotted key and value is the
// remainder of the line with surrounding whitespace trimmed and
// internal whitespace preserved.
func Line(text string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}

	m := assignPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// Reader parses one configuration stream into a fresh tree, one
// insertion per assignment line, in stream order. A dotted key whose
// prefix is already bound to a scalar value fails the whole stream
// with the offending line number.
func Reader(r io.Reader) (*tree.Node, error) {
	root := tree.NewNode()
	scanner := bufio.NewScanner(r)

	lineno := 0
	for scanner.Scan() {
		lineno++
		key, value, ok := Line(scanner.Text())
		if !ok {
			continue
		}
		if err := root.Insert(key, value); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return root, nil
}

// File parses the configuration file at path. The file is closed
// before File returns, on success and on error alike.
func File(path string) (*tree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	root, err := Reader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return root, nil
}
