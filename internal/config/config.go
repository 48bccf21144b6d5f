// Package config provides YAML-based configuration for the gridframe
// engine and its play surfaces, with an embedded default and an
// environment override for the frame limit.
package config

// Config is the top-level gridframe configuration.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Frame   FrameConfig   `yaml:"frame"`
	Storage StorageConfig `yaml:"storage"`
}

// BoardConfig sets the grid dimensions. rows*cols may not exceed 1024;
// violations surface as engine construction errors, not here.
type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// FrameConfig sets loop cadence and encoding.
type FrameConfig struct {
	// Rate is the target frames per second.
	Rate float64 `yaml:"rate"`
	// WarmUpMS is the grace period before the first transmitted frame.
	WarmUpMS int `yaml:"warmup_ms"`
	// Limit caps total frames (0 = unlimited). GRIDFRAME_FRAMELIMIT
	// overrides it when set.
	Limit uint64 `yaml:"limit"`
	// Encoding is "raw" or "rle".
	Encoding string `yaml:"encoding"`
}

// StorageConfig sets where session history is kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// Default returns the hardcoded fallback configuration, used when even the
// embedded YAML fails to parse.
func Default() Config {
	return Config{
		Board: BoardConfig{Rows: 16, Cols: 32},
		Frame: FrameConfig{
			Rate:     30,
			WarmUpMS: 1000,
			Encoding: "raw",
		},
		Storage: StorageConfig{DBPath: "~/.gridframe/sessions.db"},
	}
}
