package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultWebPort is the default port for the static file server
	DefaultWebPort = 8000

	// DefaultAPIPort is the default port for the control/API server
	DefaultAPIPort = 8790

	// ConfigRelPath is the optional launcher config file, relative to the repo root
	ConfigRelPath = "AI_first/config/launcher.yaml"
)

// LaunchConfig holds the fully resolved launcher settings.
// It is resolved once at startup and never mutated afterwards.
type LaunchConfig struct {
	WebPort        int
	APIPort        int
	PythonOverride string
}

// Flags holds the raw command-line values before resolution.
// Empty strings mean "not given on the command line".
type Flags struct {
	WebPort string
	APIPort string
	Python  string
}

// fileConfig mirrors AI_first/config/launcher.yaml
type fileConfig struct {
	WebPort int    `yaml:"web_port"`
	APIPort int    `yaml:"api_port"`
	Python  string `yaml:"python"`
}

// ConfigError represents a fatal configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ResolveConfig merges flag values over the optional config file over the
// built-in defaults. Precedence: flag > file > default.
func ResolveConfig(flags Flags, root string) (*LaunchConfig, error) {
	cfg := &LaunchConfig{
		WebPort: DefaultWebPort,
		APIPort: DefaultAPIPort,
	}

	fc, err := loadFileConfig(filepath.Join(root, filepath.FromSlash(ConfigRelPath)))
	if err != nil {
		return nil, err
	}
	if fc != nil {
		if fc.WebPort != 0 {
			if err := validatePort("web_port", fc.WebPort); err != nil {
				return nil, err
			}
			cfg.WebPort = fc.WebPort
		}
		if fc.APIPort != 0 {
			if err := validatePort("api_port", fc.APIPort); err != nil {
				return nil, err
			}
			cfg.APIPort = fc.APIPort
		}
		if fc.Python != "" {
			cfg.PythonOverride = fc.Python
		}
	}

	if flags.WebPort != "" {
		port, err := parsePort("--web-port", flags.WebPort)
		if err != nil {
			return nil, err
		}
		cfg.WebPort = port
	}
	if flags.APIPort != "" {
		port, err := parsePort("--api-port", flags.APIPort)
		if err != nil {
			return nil, err
		}
		cfg.APIPort = port
	}
	if flags.Python != "" {
		cfg.PythonOverride = flags.Python
	}

	return cfg, nil
}

// loadFileConfig reads the optional launcher config file.
// A missing file is not an error; an unparseable one is.
func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &ConfigError{Field: ConfigRelPath, Message: err.Error()}
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, &ConfigError{
			Field:   ConfigRelPath,
			Message: fmt.Sprintf("failed to parse config file: %v", err),
		}
	}

	return &fc, nil
}

func parsePort(field, value string) (int, error) {
	port, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ConfigError{
			Field:   field,
			Message: fmt.Sprintf("invalid port %q", value),
		}
	}
	if err := validatePort(field, port); err != nil {
		return 0, err
	}
	return port, nil
}

func validatePort(field string, port int) error {
	if port < 1 || port > 65535 {
		return &ConfigError{
			Field:   field,
			Message: fmt.Sprintf("port %d out of range (1-65535)", port),
		}
	}
	return nil
}
