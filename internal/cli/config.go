package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/minidex/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir   = "data_dir"
	cfgKeyItemsFile = "items_file"
	cfgKeyStatsFile = "stats_file"
	cfgKeyLogLevel  = "log_level"

	envLogLevel     = "MINIDEX_LOG_LEVEL"
	defaultLogLevel = "warn"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	DataDir   string `yaml:"data_dir,omitempty"`
	ItemsFile string `yaml:"items_file"`
	StatsFile string `yaml:"stats_file"`
	LogLevel  string `yaml:"log_level"`
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml or config directory is not an error: defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyItemsFile, types.DefaultItemsFile)
	v.SetDefault(cfgKeyStatsFile, types.DefaultStatsFile)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	if err := v.BindEnv(cfgKeyLogLevel, envLogLevel); err != nil {
		return nil, fmt.Errorf("bind %s: %w", envLogLevel, err)
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with the given data directory and
// default file names. An existing file is left untouched; created reports
// whether a new file was written.
func writeConfigIfMissing(configDir, dataDir string) (created bool, err error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		DataDir:   dataDir,
		ItemsFile: types.DefaultItemsFile,
		StatsFile: types.DefaultStatsFile,
		LogLevel:  defaultLogLevel,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# minidex configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
