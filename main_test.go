package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// runApp runs the CLI with captured output. Color is forced off so the
// expected output is byte-stable.
func runApp(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp(&out, &errOut)
	err = app.Run(append([]string{"conf2json", "--color", "never"}, args...))
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestRun_SingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "app.conf")
	writeFile(t, path, `# comment
name = test
server.host = localhost
server.port = 8080

`)

	stdout, stderr, err := runApp(t, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stderr != "" {
		t.Errorf("unexpected diagnostics: %s", stderr)
	}

	expected := fmt.Sprintf(`=== File: %s ===
{
  "name": "test",
  "server": {
    "host": "localhost",
    "port": "8080"
  }
}
`, path)
	if diff := cmp.Diff(expected, stdout); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_IndentFlag(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "app.conf")
	writeFile(t, path, "a.b = 1\n")

	stdout, _, err := runApp(t, "--indent", "4", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := fmt.Sprintf(`=== File: %s ===
{
    "a": {
        "b": "1"
    }
}
`, path)
	if diff := cmp.Diff(expected, stdout); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_Directory(t *testing.T) {
	tmpDir := t.TempDir()
	confDir := filepath.Join(tmpDir, "conf.d")
	if err := os.Mkdir(confDir, 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	// Written out of name order; output must still be sorted.
	writeFile(t, filepath.Join(confDir, "b.conf"), "beta = 2\n")
	writeFile(t, filepath.Join(confDir, "a.conf"), "alpha = 1\n")

	// Subdirectories are not descended into.
	subDir := filepath.Join(confDir, "sub")
	if err := os.Mkdir(subDir, 0755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}
	writeFile(t, filepath.Join(subDir, "c.conf"), "gamma = 3\n")

	stdout, stderr, err := runApp(t, confDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stderr != "" {
		t.Errorf("unexpected diagnostics: %s", stderr)
	}

	expected := fmt.Sprintf(`=== File: %s ===
{
  "alpha": "1"
}
=== File: %s ===
{
  "beta": "2"
}
`, filepath.Join(confDir, "a.conf"), filepath.Join(confDir, "b.conf"))
	if diff := cmp.Diff(expected, stdout); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_NoArguments(t *testing.T) {
	stdout, stderr, err := runApp(t)
	if err == nil {
		t.Fatal("expected error when no paths are given")
	}
	if stdout != "" {
		t.Errorf("expected no standard output, got: %s", stdout)
	}
	if !strings.Contains(stderr, "usage:") {
		t.Errorf("expected usage message on the error stream, got: %s", stderr)
	}
}

func TestRun_NonexistentPath(t *testing.T) {
	tmpDir := t.TempDir()
	good := filepath.Join(tmpDir, "good.conf")
	writeFile(t, good, "ok = yes\n")
	missing := filepath.Join(tmpDir, "missing.conf")

	stdout, stderr, err := runApp(t, missing, good)
	if err != nil {
		t.Fatalf("per-argument failures must not fail the run: %v", err)
	}

	// The missing argument is reported and the good file still converts.
	if !strings.Contains(stderr, "failed to resolve argument") {
		t.Errorf("expected a diagnostic for the missing path, got: %s", stderr)
	}
	if !strings.Contains(stderr, "1 input could not be converted") {
		t.Errorf("expected a failure summary, got: %s", stderr)
	}
	if !strings.Contains(stdout, fmt.Sprintf("=== File: %s ===", good)) {
		t.Errorf("expected output for the good file, got: %s", stdout)
	}
	if !strings.Contains(stdout, `"ok": "yes"`) {
		t.Errorf("expected converted JSON for the good file, got: %s", stdout)
	}
}

func TestRun_ConflictSkipsFile(t *testing.T) {
	tmpDir := t.TempDir()
	bad := filepath.Join(tmpDir, "bad.conf")
	writeFile(t, bad, `a = 1
a.b = 2
`)
	good := filepath.Join(tmpDir, "good.conf")
	writeFile(t, good, "ok = yes\n")

	stdout, stderr, err := runApp(t, bad, good)
	if err != nil {
		t.Fatalf("per-file failures must not fail the run: %v", err)
	}

	if strings.Contains(stdout, fmt.Sprintf("=== File: %s ===", bad)) {
		t.Errorf("conflicting file should produce no output, got: %s", stdout)
	}
	if !strings.Contains(stderr, "already holds a value") {
		t.Errorf("expected a conflict diagnostic, got: %s", stderr)
	}
	if !strings.Contains(stdout, fmt.Sprintf("=== File: %s ===", good)) {
		t.Errorf("expected output for the good file, got: %s", stdout)
	}
}

func TestCollectFiles(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "single.conf")
	writeFile(t, file, "a = 1\n")

	t.Run("regular file resolves to itself", func(t *testing.T) {
		files, err := collectFiles(file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{file}, files); diff != "" {
			t.Errorf("collectFiles mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nonexistent path errors", func(t *testing.T) {
		_, err := collectFiles(filepath.Join(tmpDir, "nope"))
		if err == nil {
			t.Fatal("expected error for nonexistent path")
		}
	})
}
