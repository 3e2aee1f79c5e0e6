package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/conf2json/conf2json/internal/conf"
	"github.com/conf2json/conf2json/internal/l10n"
	"github.com/conf2json/conf2json/internal/parse"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// headerColor renders the per-file header lines. Whether it actually
// emits escape codes is decided per run by applyColorMode.
var headerColor = color.New(color.FgCyan, color.Bold)

// newApp builds the CLI application. Flag defaults come from the
// layered configuration in internal/conf; flags given on the command
// line win.
func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "conf2json",
		Usage:     l10n.T("convert key = value configuration files to JSON"),
		ArgsUsage: "PATH...",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "indent",
				Usage: l10n.T("spaces per indentation level in the JSON output"),
				Value: conf.Configuration.Indent,
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: l10n.T("colorize file headers: auto, always or never"),
				Value: string(conf.Configuration.Color),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: l10n.T("diagnostics verbosity: DEBUG, INFO, WARN or ERROR"),
				Value: conf.Configuration.LogLevel.Level().String(),
			},
		},
		Action: run,
	}
}

// run converts every file resolved from the positional arguments.
//
// Per-argument and per-file failures are reported to the error stream
// and skipped; only the no-arguments case makes the whole run fail.
func run(cCtx *cli.Context) error {
	stdout := cCtx.App.Writer
	stderr := cCtx.App.ErrWriter

	settings := conf.Configuration
	if indent := cCtx.Int("indent"); indent >= 0 {
		settings.Indent = indent
	}
	if mode, ok := conf.ParseColorMode(cCtx.String("color")); ok {
		settings.Color = mode
	}
	if level, ok := conf.ParseLevel(cCtx.String("log-level")); ok {
		settings.LogLevel = level
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: settings.LogLevel,
	})))
	applyColorMode(settings.Color)

	if cCtx.NArg() == 0 {
		fmt.Fprintln(stderr, l10n.T("usage: conf2json [--indent N] [--color MODE] [--log-level LEVEL] PATH..."))
		return errors.New(l10n.T("no input paths given"))
	}

	failed := 0
	for _, arg := range cCtx.Args().Slice() {
		files, err := collectFiles(arg)
		if err != nil {
			slog.Error("failed to resolve argument", "argument", arg, "error", err)
			failed++
			continue
		}
		for _, path := range files {
			if err := convert(stdout, path, settings.Indent); err != nil {
				slog.Error("failed to convert file", "path", path, "error", err)
				failed++
			}
		}
	}
	if failed > 0 {
		fmt.Fprintln(stderr, l10n.TN(
			"%d input could not be converted",
			"%d inputs could not be converted",
			uint32(failed), failed))
	}
	return nil
}

// applyColorMode resolves the configured color mode against the real
// standard output, so "auto" colorizes terminals only.
func applyColorMode(mode conf.ColorMode) {
	switch mode {
	case conf.ColorAlways:
		color.NoColor = false
	case conf.ColorNever:
		color.NoColor = true
	case conf.ColorAuto:
		color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// collectFiles resolves one path argument to the files to parse: a
// regular file resolves to itself, a directory to its direct regular
// files in name order. Subdirectories and special files are skipped.
func collectFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.Mode().IsRegular() {
		return []string{path}, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is neither a regular file nor a directory", path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	sort.Strings(files)

	return files, nil
}

// convert parses one file and writes its header and pretty-printed
// JSON to stdout.
func convert(stdout io.Writer, path string, indent int) error {
	root, err := parse.File(path)
	if err != nil {
		return err
	}

	out, err := root.EncodeIndent(indent)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, headerColor.Sprint(l10n.T("=== File: %s ===", path)))
	fmt.Fprintln(stdout, string(out))
	return nil
}
