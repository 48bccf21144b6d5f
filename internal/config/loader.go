package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/avoronov/gridframe/internal/engine"
	"github.com/avoronov/gridframe/internal/wire"
)

//go:embed defaults/gridframe.yaml
var defaultYAML []byte

// FrameLimitEnv overrides the configured frame limit when set to a positive
// integer. Unparseable values are warned about and ignored.
const FrameLimitEnv = "GRIDFRAME_FRAMELIMIT"

// Load reads the gridframe configuration.
// Search order: customPath -> ~/.gridframe/config.yaml -> ./configs/gridframe.yaml -> embedded default
func Load(customPath string) (Config, error) {
	var cfg Config

	// A custom path must load; failure there is the caller's problem.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userPath := userConfigPath("config.yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/gridframe.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home
// is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gridframe", filename)
}

// Engine converts the loaded configuration into an engine.Config, applying
// the frame-limit environment override.
func (c Config) Engine(logger *log.Logger) engine.Config {
	enc := wire.Raw
	if c.Frame.Encoding == "rle" {
		enc = wire.RLE
	}

	cfg := engine.Config{
		Rows:       c.Board.Rows,
		Cols:       c.Board.Cols,
		FrameRate:  c.Frame.Rate,
		WarmUp:     time.Duration(c.Frame.WarmUpMS) * time.Millisecond,
		FrameLimit: c.Frame.Limit,
		Encoding:   enc,
	}
	cfg.FrameLimit = frameLimitOverride(cfg.FrameLimit, logger)
	return cfg
}

// frameLimitOverride applies FrameLimitEnv on top of the configured limit.
func frameLimitOverride(limit uint64, logger *log.Logger) uint64 {
	raw, ok := os.LookupEnv(FrameLimitEnv)
	if !ok || raw == "" {
		return limit
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		if logger != nil {
			logger.Warn("ignoring unparseable frame limit override",
				"env", FrameLimitEnv, "value", raw)
		}
		return limit
	}
	if logger != nil {
		logger.Info("frame limit overridden", "env", FrameLimitEnv, "frames", parsed)
	}
	return parsed
}
