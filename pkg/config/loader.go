package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// GlobalConfigDir is the directory for global config under the user
// config dir.
const GlobalConfigDir = "mockdir"

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".mockdirrc.yaml", ".mockdirrc.yml"}

// GlobalConfigFileNames are the names to search for global config (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// FindLocalConfig searches the current directory for a local config file.
// Returns an empty string if none exists.
func FindLocalConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findFirst(cwd, LocalConfigFileNames), nil
}

// FindGlobalConfig returns the path to the global config file.
// Returns an empty string if not found.
func FindGlobalConfig() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		//nolint:nilerr // no config dir means no global config
		return "", nil
	}
	return findFirst(filepath.Join(configDir, GlobalConfigDir), GlobalConfigFileNames), nil
}

func findFirst(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// LoadConfigFile loads a ServerConfiguration from a YAML file. Only the
// keys present in the file are recorded in SetFields.
func LoadConfigFile(path string) (*ServerConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg ServerConfiguration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, newConfigError(path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, newConfigError(path, err)
	}
	cfg.SetFields = make(map[string]bool, len(raw))
	for key, value := range raw {
		cfg.SetFields[key] = true
		if nested, ok := value.(map[string]any); ok {
			for sub := range nested {
				cfg.SetFields[key+"."+sub] = true
			}
		}
	}

	cfg.Sources = make(map[string]string)
	return &cfg, nil
}

// ConfigError represents a configuration file error with location info.
type ConfigError struct {
	Path    string
	Line    int
	Message string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return e.Path + " (line " + strconv.Itoa(e.Line) + "): " + e.Message
	}
	return e.Path + ": " + e.Message
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

func newConfigError(path string, err error) *ConfigError {
	ce := &ConfigError{Path: path, Message: err.Error()}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		ce.Line, _ = strconv.Atoi(m[1])
	}
	return ce
}

// LoadOptions controls LoadAll.
type LoadOptions struct {
	// ConfigFile is an explicit config file. It must exist when set.
	// Falls back to MOCKDIR_CONFIG.
	ConfigFile string

	// SkipGlobal and SkipLocal disable the discovered config files.
	SkipGlobal bool
	SkipLocal  bool
}

// LoadAll loads configuration from every source except flags and merges
// them. A malformed config file is an error; a missing optional one is not.
func LoadAll(opts LoadOptions) (*ServerConfiguration, error) {
	cfg := NewDefault()

	if !opts.SkipGlobal {
		if err := mergeDiscovered(cfg, FindGlobalConfig, SourceGlobal); err != nil {
			return nil, err
		}
	}
	if !opts.SkipLocal {
		if err := mergeDiscovered(cfg, FindLocalConfig, SourceLocal); err != nil {
			return nil, err
		}
	}

	explicit := opts.ConfigFile
	if explicit == "" {
		explicit = os.Getenv(EnvConfig)
	}
	if explicit != "" {
		fileCfg, err := LoadConfigFile(explicit)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config file not found: %s", explicit)
			}
			return nil, err
		}
		MergeConfig(cfg, fileCfg, SourceFile)
	}

	if err := LoadEnvConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeDiscovered(cfg *ServerConfiguration, find func() (string, error), source string) error {
	path, err := find()
	if err != nil || path == "" {
		//nolint:nilerr // discovery failures mean there is nothing to merge
		return nil
	}
	fileCfg, err := LoadConfigFile(path)
	if err != nil {
		return err
	}
	MergeConfig(cfg, fileCfg, source)
	return nil
}
