package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the operator configuration consumed by the CLI.
type Config struct {
	DataDir      string   `toml:"DataDir"`
	Token        string   `toml:"Token"`
	ExtraTokens  []string `toml:"ExtraTokens"`
	FeeBps       uint32   `toml:"FeeBps"`
	FeeCollector string   `toml:"FeeCollector"`
	Owner        string   `toml:"Owner"`
	Referee      string   `toml:"Referee"`
	ServiceMode  bool     `toml:"ServiceMode"`
}

// Load reads the configuration from the given path, creating a default file
// when none exists.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "./gigchain-data"
	}
	if strings.TrimSpace(cfg.Token) == "" {
		cfg.Token = "GIG"
	}
	if cfg.ExtraTokens == nil {
		cfg.ExtraTokens = []string{}
	}
}

func createDefault(path string) (*Config, error) {
	cfg := &Config{}
	applyDefaults(cfg)
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseAddress decodes a 20-byte hex address, with or without an 0x prefix.
// The empty string resolves to the zero address.
func ParseAddress(s string) ([20]byte, error) {
	var addr [20]byte
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if trimmed == "" {
		return addr, nil
	}
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return addr, fmt.Errorf("config: invalid address %q: %w", s, err)
	}
	if len(raw) != 20 {
		return addr, fmt.Errorf("config: invalid address length %d", len(raw))
	}
	copy(addr[:], raw)
	return addr, nil
}
