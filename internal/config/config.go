package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/elishacook/microfun/internal/errors"
)

const (
	// ConfigFileName is the default configuration file name.
	ConfigFileName = "microfun.json"

	// DefaultPort is the default live server port.
	DefaultPort = 3000

	// DefaultHost is the default live server host.
	DefaultHost = "localhost"

	// DefaultFrameInterval is the default frame period (about 60 frames per second).
	DefaultFrameInterval = "16ms"

	// DefaultMetricsPath is the default Prometheus scrape path.
	DefaultMetricsPath = "/metrics"
)

// candidateNames are tried in order by Load.
var candidateNames = []string{
	ConfigFileName,
	"microfun.yaml",
	"microfun.yml",
	"microfun.toml",
}

// Snapshot drivers.
const (
	DriverNone = "none"
	DriverBolt = "bolt"
	DriverS3   = "s3"
)

// Config represents the complete configuration file.
type Config struct {
	// Name is the application name.
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`

	// Server configures the live server.
	Server ServerConfig `json:"server" yaml:"server" toml:"server"`

	// Frame configures the render scheduler's clock.
	Frame FrameConfig `json:"frame" yaml:"frame" toml:"frame"`

	// Log configures structured logging.
	Log LogConfig `json:"log" yaml:"log" toml:"log"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" toml:"metrics"`

	// Tracing configures OpenTelemetry spans.
	Tracing TracingConfig `json:"tracing" yaml:"tracing" toml:"tracing"`

	// Snapshot configures the model snapshot journal.
	Snapshot SnapshotConfig `json:"snapshot" yaml:"snapshot" toml:"snapshot"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains live server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty" toml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty" toml:"port,omitempty"`

	// ReadTimeout is the websocket read deadline (e.g., "60s").
	ReadTimeout string `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty" toml:"readTimeout,omitempty"`

	// WriteTimeout is the websocket write deadline (e.g., "10s").
	WriteTimeout string `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty" toml:"writeTimeout,omitempty"`
}

// FrameConfig contains render scheduling settings.
type FrameConfig struct {
	// Interval is the delay between a render request and its flush.
	Interval string `json:"interval,omitempty" yaml:"interval,omitempty" toml:"interval,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty" toml:"level,omitempty"`

	// Format is one of auto, text, json. Auto picks text on a terminal.
	Format string `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty" toml:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty" yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty" toml:"tracerName,omitempty"`
}

// SnapshotConfig contains snapshot journal settings.
type SnapshotConfig struct {
	// Driver is one of none, bolt, s3.
	Driver string `json:"driver,omitempty" yaml:"driver,omitempty" toml:"driver,omitempty"`

	// Path is the bbolt database file (bolt driver).
	Path string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`

	// Bucket, Prefix, Region and Endpoint configure the s3 driver.
	Bucket   string `json:"bucket,omitempty" yaml:"bucket,omitempty" toml:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty" toml:"prefix,omitempty"`
	Region   string `json:"region,omitempty" yaml:"region,omitempty" toml:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" toml:"endpoint,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory, trying
// microfun.json, microfun.yaml, microfun.yml and microfun.toml in order.
func Load(dir string) (*Config, error) {
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E121").
		WithDetail("No configuration file found in " + dir).
		WithSuggestion("Run 'microfun init' to write a default microfun.json")
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").
				WithDetail("No configuration file at " + path)
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	if err := decode(path, data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid " + formatName(path))
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode unmarshals data according to the extension of path.
func decode(path string, data []byte, cfg *Config) error {
	switch formatName(path) {
	case "YAML":
		return yaml.Unmarshal(data, cfg)
	case "TOML":
		return toml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

// encode marshals cfg according to the extension of path.
func encode(path string, cfg *Config) ([]byte, error) {
	switch formatName(path) {
	case "YAML":
		return yaml.Marshal(cfg)
	case "TOML":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

func formatName(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "YAML"
	case ".toml":
		return "TOML"
	default:
		return "JSON"
	}
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := encode(path, c)
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
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
	if c.Name == "" {
		c.Name = "microfun"
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "60s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "10s"
	}

	// Frame
	if c.Frame.Interval == "" {
		c.Frame.Interval = DefaultFrameInterval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "auto"
	}

	// Metrics
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "microfun"
	}

	// Tracing
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = "microfun"
	}

	// Snapshot
	if c.Snapshot.Driver == "" {
		c.Snapshot.Driver = DriverNone
	}
	if c.Snapshot.Driver == DriverBolt && c.Snapshot.Path == "" {
		c.Snapshot.Path = "microfun.db"
	}
	if c.Snapshot.Prefix == "" {
		c.Snapshot.Prefix = "snapshots/"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E122").
			WithDetail("server.port must be between 0 and 65535")
	}
	for name, value := range map[string]string{
		"frame.interval":      c.Frame.Interval,
		"server.readTimeout":  c.Server.ReadTimeout,
		"server.writeTimeout": c.Server.WriteTimeout,
	} {
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return errors.New("E122").
				WithDetail(name + " must be a non-negative duration, got " + strconv.Quote(value))
		}
	}
	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		return errors.New("E122").
			WithDetail("log.format must be auto, text or json")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Snapshot.Driver {
	case DriverNone, DriverBolt:
	case DriverS3:
		if c.Snapshot.Bucket == "" {
			return errors.New("E122").
				WithDetail("snapshot.bucket is required by the s3 driver")
		}
	default:
		return errors.New("E122").
			WithDetail("snapshot.driver must be none, bolt or s3")
	}
	return nil
}

// Address returns the host:port the live server listens on.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// FrameInterval returns the parsed frame interval.
func (c *Config) FrameInterval() time.Duration {
	return mustDuration(c.Frame.Interval, 16*time.Millisecond)
}

// ReadTimeout returns the parsed websocket read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return mustDuration(c.Server.ReadTimeout, 60*time.Second)
}

// WriteTimeout returns the parsed websocket write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return mustDuration(c.Server.WriteTimeout, 10*time.Second)
}

// LogLevel returns the slog level named by Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.New("E122").
			WithDetail("log.level must be debug, info, warn or error").
			Wrap(err)
	}
	return level, nil
}

// SnapshotPath returns the bbolt path resolved against the config directory.
func (c *Config) SnapshotPath() string {
	if filepath.IsAbs(c.Snapshot.Path) || c.Dir() == "" {
		return c.Snapshot.Path
	}
	return filepath.Join(c.Dir(), c.Snapshot.Path)
}

func mustDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
