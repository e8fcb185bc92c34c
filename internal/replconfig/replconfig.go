// Package replconfig loads the user-level YAML configuration for gofa's
// interactive REPL, following the same load-if-present, else-use-defaults
// pattern alterx uses for its own permutation config.
package replconfig

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultHistoryFile is where the REPL keeps its command history when no
// config overrides it.
var DefaultHistoryFile = filepath.Join(getUserHomeDir(), ".config/gofa/history")

// Default is used whenever no config file is found.
var Default = Config{
	Prompt:      "gofa> ",
	HistoryFile: DefaultHistoryFile,
}

// Config holds REPL preferences that would otherwise need to be
// retyped as flags on every invocation.
type Config struct {
	Prompt      string   `yaml:"prompt"`
	HistoryFile string   `yaml:"history_file"`
	Alphabet    []string `yaml:"alphabet"`
}

// Load reads a REPL config from path. A missing file is not an error; it
// yields Default.
func Load(path string) (Config, error) {
	bin, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default, nil
		}
		return Config{}, err
	}

	cfg := Default
	if err := yaml.Unmarshal(bin, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating its parent directory if
// needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	bin, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, bin, 0644)
}

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return homeDir
}
