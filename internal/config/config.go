package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"flavorprune/pkg/prune"
)

//go:embed sample_config.toml
var sampleConfig string

const defaultPreviewLimit = 50

// Matching contains the heuristic gates of the pruning rule.
type Matching struct {
	MinArtistTokenLength int    `toml:"min_artist_token_length"`
	CoordinatingWord     string `toml:"coordinating_word"`
}

// Report contains settings for the dry-run report output.
type Report struct {
	PreviewLimit int `toml:"preview_limit"`
}

// Apply contains settings for destructive rewrites.
type Apply struct {
	Backup bool `toml:"backup"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for flavorprune.
type Config struct {
	Matching Matching `toml:"matching"`
	Report   Report   `toml:"report"`
	Apply    Apply    `toml:"apply"`
	Logging  Logging  `toml:"logging"`
}

// Default returns a Config populated with repository defaults. The
// defaults reproduce the stock pruning behavior exactly.
func Default() Config {
	return Config{
		Matching: Matching{
			MinArtistTokenLength: prune.MinArtistTokenLength,
			CoordinatingWord:     prune.CoordinatingWord,
		},
		Report: Report{
			PreviewLimit: defaultPreviewLimit,
		},
		Apply: Apply{
			Backup: true,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// Heuristics converts the matching section into the matcher's gate struct.
func (c *Config) Heuristics() prune.Heuristics {
	return prune.Heuristics{
		MinArtistTokenLength: c.Matching.MinArtistTokenLength,
		CoordinatingWord:     c.Matching.CoordinatingWord,
	}
}

// DefaultConfigPath returns the absolute path to the default
// configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/flavorprune/config.toml")
}

// Load locates, parses, and validates a configuration file. It returns
// the config, the resolved path, and whether a file existed there. A
// missing file is not an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// resolveConfigPath prefers an explicit path, then the user config
// directory, then a project-local flavorprune.toml.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("flavorprune.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Matching.MinArtistTokenLength < 0 {
		return errors.New("matching.min_artist_token_length must not be negative")
	}
	if c.Report.PreviewLimit < -1 {
		return errors.New("report.preview_limit must be -1 (unlimited), 0, or positive")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not one of console, json", c.Logging.Format)
	}

	return nil
}

// CreateSample writes a sample configuration file to the specified
// location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath exposes the config path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && pathValue[1] == '/' {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}

	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
