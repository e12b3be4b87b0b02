package barkcli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type UserConfig struct {
	Email  string `toml:"email"`
	APIKey string `toml:"api-key"`
}

type MissionConfig struct {
	ID string `toml:"id"`
}

type Config struct {
	User    UserConfig    `toml:"user"`
	Mission MissionConfig `toml:"mission"`
}

func ConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bark", "config.toml"), nil
}

// LoadConfig reads the config file. On first run the file does not exist
// yet; an empty one is written so users have something to edit by hand.
func LoadConfig() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if saveErr := SaveConfig(Config{}); saveErr != nil {
				return Config{}, saveErr
			}
			return Config{}, nil
		}
		return Config{}, err
	}
	return cfg, nil
}

// SaveConfig rewrites the whole file. Last writer wins; bark is a
// one-shot tool, so there is no locking.
func SaveConfig(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}
