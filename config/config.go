package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"stegano/util"
)

/*
 * optional CLI configuration, loaded from ~/.stegano/config.yaml.
 * a missing file is not an error, everything has a default.
 */

type HideDefaults struct {
	// force a content version instead of automatic selection:
	// "auto", "v2" or "v4"
	Framing string `yaml:"framing"`
}

type Config struct {
	Logger util.LoggerInfo `yaml:"logger"`
	Hide   HideDefaults    `yaml:"hide"`
}

func Default() *Config {
	return &Config{
		Logger: util.LoggerInfo{
			IsColored: true,
			SaveTime:  false,
			Mode:      util.Error | util.Warning,
		},
		Hide: HideDefaults{Framing: "auto"},
	}
}

// Path returns the per-user config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".stegano", "config.yaml"), nil
}

func Load(filename string) (*Config, error) {
	conf := Default()
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return conf, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, err
	}
	return conf, nil
}

func Save(filename string, c *Config) error {
	data, err := yaml.Marshal(*c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0600)
}
