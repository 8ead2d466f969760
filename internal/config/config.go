package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/lumen-ui/lumen/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "lumen.json"

	// DefaultPort is the default live server port.
	DefaultPort = 3000

	// DefaultHost is the default live server host.
	DefaultHost = "localhost"

	// DefaultMetricsPath is the default Prometheus scrape path.
	DefaultMetricsPath = "/metrics"
)

// Config represents the complete lumen.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Port is the default server port (convenience field, also in Server).
	Port int `json:"port,omitempty"`

	// Server contains live server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Trace contains OpenTelemetry configuration.
	Trace TraceConfig `json:"trace,omitempty"`

	// Session contains live session configuration.
	Session SessionConfig `json:"session,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains live server settings.
type ServerConfig struct {
	// Port is the port to run the live server on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// HTTPS enables HTTPS for the live server.
	HTTPS bool `json:"https,omitempty"`

	// ReadHeaderTimeout limits how long a client may take to send
	// request headers (e.g., "5s").
	ReadHeaderTimeout string `json:"readHeaderTimeout,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is the minimum level (debug, info, warn, error).
	Level string `json:"level,omitempty"`

	// Development enables the human-readable console encoder.
	Development bool `json:"development,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served.
	Enabled bool `json:"enabled,omitempty"`

	// Path is the scrape endpoint path.
	Path string `json:"path,omitempty"`
}

// TraceConfig contains OpenTelemetry settings.
type TraceConfig struct {
	// Enabled controls whether event handling creates spans.
	Enabled bool `json:"enabled,omitempty"`

	// ServiceName overrides the reported service name.
	ServiceName string `json:"serviceName,omitempty"`
}

// SessionConfig contains live session settings.
type SessionConfig struct {
	// MaxEventSize caps the accepted websocket frame size in bytes.
	MaxEventSize int64 `json:"maxEventSize,omitempty"`

	// WriteTimeout is the per-message write deadline (e.g., "10s").
	WriteTimeout string `json:"writeTimeout,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Port:    DefaultPort,
		Server: ServerConfig{
			Port:              DefaultPort,
			Host:              DefaultHost,
			ReadHeaderTimeout: "5s",
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
		Trace: TraceConfig{
			ServiceName: "lumen",
		},
		Session: SessionConfig{
			MaxEventSize: 1 << 20,
			WriteTimeout: "10s",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for lumen.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("L080").
				WithDetail("No lumen.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'lumen create' to create a new project or create lumen.json manually")
		}
		return nil, errors.New("L081").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("L081").
			WithDetail("Failed to parse lumen.json: " + err.Error()).
			WithSuggestion("Check that lumen.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("L081").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("L081").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Server.Port == 0 {
		c.Server.Port = c.Port
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.ReadHeaderTimeout == "" {
		c.Server.ReadHeaderTimeout = "5s"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	if c.Trace.ServiceName == "" {
		c.Trace.ServiceName = "lumen"
	}

	if c.Session.MaxEventSize == 0 {
		c.Session.MaxEventSize = 1 << 20
	}
	if c.Session.WriteTimeout == "" {
		c.Session.WriteTimeout = "10s"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("L082").
			WithDetail("Port must be between 0 and 65535")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("L082").
			WithDetail("Log level must be one of debug, info, warn, error")
	}
	return nil
}

// Address returns the address string for the live server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + itoa(c.Server.Port)
}

// URL returns the full URL for the live server.
func (c *Config) URL() string {
	scheme := "http"
	if c.Server.HTTPS {
		scheme = "https"
	}
	return scheme + "://" + c.Address()
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing lumen.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("L080").
				WithDetail("No lumen.json found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'lumen create' to create a new project")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}

// itoa converts int to string without importing strconv.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + itoa(-n)
	}
	digits := make([]byte, 0, 10)
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}
	// Reverse
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}
