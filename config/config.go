// Package config loads and saves the emulator's runtime configuration from
// a TOML file, following the same layered defaults-then-overrides approach
// the ARM teacher codebase used for its own debugger configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is the top-level runtime configuration.
type Config struct {
	Execution ExecutionConfig `toml:"execution"`
	Debugger  DebuggerConfig  `toml:"debugger"`
	Display   DisplayConfig   `toml:"display"`
	Trace     TraceConfig     `toml:"trace"`
}

// ExecutionConfig controls the emulator's memory size and run limits.
type ExecutionConfig struct {
	MemorySize  int  `toml:"memory_size"`
	MaxCycles   uint64 `toml:"max_cycles"`
	EnableTrace bool `toml:"enable_trace"`
	EnableStats bool `toml:"enable_stats"`
}

// DebuggerConfig controls interactive debugger behaviour.
type DebuggerConfig struct {
	HistorySize    int  `toml:"history_size"`
	AutoSaveBreaks bool `toml:"auto_save_breakpoints"`
	ShowRegisters  bool `toml:"show_registers"`
}

// DisplayConfig controls how register/memory values are rendered.
type DisplayConfig struct {
	NumberFormat   string `toml:"number_format"` // "hex", "dec", or "bin"
	BytesPerLine   int    `toml:"bytes_per_line"`
	DisasmContext  int    `toml:"disasm_context"`
}

// TraceConfig controls execution trace output.
type TraceConfig struct {
	OutputFile  string `toml:"output_file"`
	MaxEntries  int    `toml:"max_entries"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Execution: ExecutionConfig{
			MemorySize:  1024,
			MaxCycles:   0,
			EnableTrace: false,
			EnableStats: false,
		},
		Debugger: DebuggerConfig{
			HistorySize:    100,
			AutoSaveBreaks: true,
			ShowRegisters:  true,
		},
		Display: DisplayConfig{
			NumberFormat:  "hex",
			BytesPerLine:  16,
			DisasmContext: 5,
		},
		Trace: TraceConfig{
			OutputFile: "",
			MaxEntries: 10000,
		},
	}
}

// GetConfigPath returns the platform-specific default config file location.
func GetConfigPath() (string, error) {
	var dir string
	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("config: resolving home directory: %w", err)
			}
			dir = filepath.Join(home, "AppData", "Roaming")
		}
		dir = filepath.Join(dir, "rv32i-emu")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: resolving home directory: %w", err)
		}
		dir = filepath.Join(home, ".config", "rv32i-emu")
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the configuration from the default platform path. If the file
// does not exist, DefaultConfig is returned without error.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from path, falling back to defaults when
// the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to the default platform path.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path, creating parent directories as
// needed.
func (c *Config) SaveTo(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: creating directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: creating %s: %w", path, err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("config: encoding %s: %w", path, err)
	}
	return nil
}
