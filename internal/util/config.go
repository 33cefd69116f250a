package util

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const ConfigFileName = "lox.toml"

type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`
	LoxHome   string `toml:"-"`

	// SourceName identifies the source in diagnostics, e.g. the script path.
	SourceName  string `toml:"-"`
	DebugAST    string `toml:"debug_ast"` // "", "json", "yaml" or "text"
	PrintTokens bool   `toml:"print_tokens"`
	Color       bool   `toml:"color"`
	LogLevel    string `toml:"log_level"`
	LogFile     string `toml:"log_file"`
	HistoryDSN  string `toml:"history_dsn"`
	HistoryFile string `toml:"history_file"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		Color:    true,
		LogLevel: "none",
	}
}

// DefaultConfigPath returns $LOX_HOME/lox.toml, or "" when LOX_HOME is unset.
func DefaultConfigPath(loxHome string) string {
	if loxHome == "" {
		return ""
	}
	return filepath.Join(loxHome, ConfigFileName)
}

// LoadConfig overlays the TOML file at path onto cfg. A missing file is not an
// error when optional is set.
func LoadConfig(path string, cfg *Configuration, optional bool) error {
	if path == "" {
		return nil
	}
	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading config %q: %w", path, err)
	}
	return nil
}

// DecodeConfig is LoadConfig for in-memory TOML.
func DecodeConfig(data string, cfg *Configuration) error {
	if _, err := toml.Decode(data, cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}
