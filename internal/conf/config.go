package conf

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

func init() {
	sources := &ConfigSource{
		Path:      "/etc/conf2json/config.toml",
		DropInDir: "/etc/conf2json/config.toml.d/",
	}
	config, err := sources.Read()
	if err != nil {
		dto, parseErr := parseConfigDTO(defaultConfig)
		if parseErr != nil {
			panic(fmt.Sprintf("failed to parse embedded defaults: %v", parseErr))
		}
		config.Update(dto)
	}
	Configuration = config
}

// defaultConfig contains the embedded default configuration file.
// This file is compiled into the binary and serves as the base layer
// of configuration before /etc/conf2json/config.toml and drop-in files
// are applied.
//
//go:embed defaults.toml
var defaultConfig string

// Configuration is the global immutable state.
var Configuration Config

// ColorMode controls when per-file headers are colorized.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config represents the immutable public configuration object.
type Config struct {
	Indent   int
	Color    ColorMode
	LogLevel slog.Level
}

// Update applies non-nil values from a configDTO. Values outside their
// valid range are ignored rather than applied.
func (c *Config) Update(dto configDTO) {
	if dto.Indent != nil && *dto.Indent >= 0 {
		c.Indent = *dto.Indent
	}
	if dto.Color != nil {
		if mode, ok := ParseColorMode(*dto.Color); ok {
			c.Color = mode
		}
	}
	if dto.LogLevel != nil {
		if level, ok := ParseLevel(*dto.LogLevel); ok {
			c.LogLevel = level
		}
	}
}

// ParseColorMode maps a configuration string to a ColorMode.
func ParseColorMode(name string) (ColorMode, bool) {
	switch ColorMode(name) {
	case ColorAuto, ColorAlways, ColorNever:
		return ColorMode(name), true
	}
	return "", false
}

// ParseLevel maps a configuration level name to a slog.Level.
func ParseLevel(name string) (slog.Level, bool) {
	switch name {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	}
	return 0, false
}

// ConfigSource orchestrates loading configuration from multiple sources.
// See the Read method.
type ConfigSource struct {
	Path      string
	DropInDir string
}

// Read loads and returns the complete Config by merging all layers:
// 1. Embedded defaults
// 2. Main configuration file
// 3. Drop-in files
func (cs *ConfigSource) Read() (Config, error) {
	resolved := Config{}

	// Start with embedded defaults
	dto, err := parseConfigDTO(defaultConfig)
	if err != nil {
		slog.Error("failed to parse embedded defaults", "error", err)
		return resolved, fmt.Errorf("failed to parse embedded defaults: %w", err)
	}
	resolved.Update(dto)

	// Load main configuration file
	data, err := os.ReadFile(cs.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			// Existing but unreadable file should result in failure (let's not hide
			// problems from the users).
			return resolved, fmt.Errorf("failed to load %s: %w", cs.Path, err)
		}
	} else {
		mainDTO, err := parseConfigDTO(string(data))
		if err != nil {
			// Existing but malformed file should result in failure (let's not hide
			// problems from the users).
			return resolved, fmt.Errorf("failed to parse %s: %w", cs.Path, err)
		}
		resolved.Update(mainDTO)
	}

	// Load drop-in files
	dropInDTOs, err := cs.parseDropInFiles()
	if err != nil {
		slog.Error("failed to load drop-in files", "error", err, "dir", cs.DropInDir)
		return resolved, err
	}

	// Apply each drop-in file in order
	for _, dropInDTO := range dropInDTOs {
		resolved.Update(dropInDTO)
	}

	return resolved, nil
}

type configDTO struct {
	Indent   *int    `toml:"indent"`
	Color    *string `toml:"color"`
	LogLevel *string `toml:"log-level"`
}

// parseConfigDTO parses a TOML string into a configDTO.
func parseConfigDTO(data string) (configDTO, error) {
	var dto configDTO

	if err := toml.Unmarshal([]byte(data), &dto); err != nil {
		return dto, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return dto, nil
}

// findDropInFiles finds and returns sorted paths to drop-in configuration files.
// Returns nil if the drop-in directory doesn't exist (not an error).
func (cs *ConfigSource) findDropInFiles() ([]string, error) {
	// Check if drop-in directory exists
	if _, err := os.Stat(cs.DropInDir); os.IsNotExist(err) {
		return nil, nil
	}

	// Read directory contents
	entries, err := os.ReadDir(cs.DropInDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read drop-in directory %s: %w", cs.DropInDir, err)
	}

	// Collect .toml files
	var filenames []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".toml") {
			filenames = append(filenames, filepath.Join(cs.DropInDir, entry.Name()))
		}
	}

	// Sort lexicographically
	sort.Strings(filenames)

	return filenames, nil
}

// parseDropInFiles loads .toml files.
func (cs *ConfigSource) parseDropInFiles() ([]configDTO, error) {
	paths, err := cs.findDropInFiles()
	if err != nil {
		return nil, err
	}

	// Load each file
	var dtos []configDTO
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		dto, err := parseConfigDTO(string(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		dtos = append(dtos, dto)
	}

	return dtos, nil
}
