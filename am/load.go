package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/rbxtypes/errors"
)

// EnvPrefix is the prefix for environment overrides (RBXTYPES_FORMAT_COMPACT, ...)
const EnvPrefix = "RBXTYPES"

// Load reads the configuration.
// Precedence (lowest to highest): defaults < project rbxtypes.toml < configFile < env vars.
// An empty configFile skips the explicit file.
func Load(configFile string) (*Config, error) {
	v, err := NewViper(configFile)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// NewViper initializes Viper with configuration sources and defaults
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	for _, path := range ConfigFiles(configFile) {
		if err := mergeConfigFile(v, path); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path, without
// project discovery or environment overrides
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if err := mergeConfigFile(v, configPath); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}

	return &config, nil
}

// ConfigFiles returns the config files that exist and will be merged, in
// precedence order (lowest first)
func ConfigFiles(configFile string) []string {
	var files []string
	if project := findProjectConfig(); project != "" {
		files = append(files, project)
	}
	if configFile != "" {
		abs, err := filepath.Abs(configFile)
		if err != nil {
			abs = configFile
		}
		if len(files) == 0 || files[0] != abs {
			files = append(files, configFile)
		}
	}
	return files
}

// mergeConfigFile merges one TOML file beneath environment overrides
func mergeConfigFile(v *viper.Viper, path string) error {
	tempViper := viper.New()
	tempViper.SetConfigFile(path)
	tempViper.SetConfigType("toml")

	if err := tempViper.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	if err := v.MergeConfigMap(tempViper.AllSettings()); err != nil {
		return errors.Wrapf(err, "failed to merge config file %s", path)
	}
	return nil
}

// findProjectConfig searches for rbxtypes.toml by walking up the directory tree.
// Returns the absolute path of the first file found, or empty string.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ProjectConfigName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, stop searching
			break
		}
		dir = parent
	}

	return ""
}
