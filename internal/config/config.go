package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/reactree/internal/errors"
	"github.com/vango-dev/reactree/internal/logging"
	"github.com/vango-dev/reactree/pkg/vdom"
	"github.com/vango-dev/reactree/pkg/view"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "reactree.json"

	// YAMLFileName is the name of the YAML configuration file.
	YAMLFileName = "reactree.yaml"

	// DefaultEl is the default mount element id.
	DefaultEl = "app"

	// DefaultMountTag is the tag of the generated mount element.
	DefaultMountTag = "div"

	// DefaultPort is the default preview server port.
	DefaultPort = 4000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "reactree"

	// DefaultSnapshotDir is the default snapshot output directory.
	DefaultSnapshotDir = "snapshots"
)

// Config represents the complete project configuration.
type Config struct {
	// Name is the project name. Snapshots are named after it.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// El is the id of the mount element.
	El string `json:"el,omitempty" yaml:"el,omitempty"`

	// Mount describes the generated mount element.
	Mount MountConfig `json:"mount,omitempty" yaml:"mount,omitempty"`

	// Data is the initial state.
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`

	// View is the declarative render tree.
	View view.Spec `json:"view,omitempty" yaml:"view,omitempty"`

	// Render contains renderer settings.
	Render RenderConfig `json:"render,omitempty" yaml:"render,omitempty"`

	// Preview contains preview server settings.
	Preview PreviewConfig `json:"preview,omitempty" yaml:"preview,omitempty"`

	// Snapshot contains snapshot export settings.
	Snapshot SnapshotConfig `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`

	// Log contains logger settings.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// MountConfig describes the element the App mounts into.
type MountConfig struct {
	// Tag is the mount element's tag (default: "div").
	Tag string `json:"tag,omitempty" yaml:"tag,omitempty"`
}

// RenderConfig contains renderer settings.
type RenderConfig struct {
	// ChildOrder is "reverse" (default) or "declared".
	ChildOrder string `json:"childOrder,omitempty" yaml:"childOrder,omitempty"`
}

// PreviewConfig contains preview server settings.
type PreviewConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`
}

// SnapshotConfig contains snapshot export settings. A Bucket selects the
// S3 sink; otherwise snapshots are written under Dir.
type SnapshotConfig struct {
	Dir       string `json:"dir,omitempty" yaml:"dir,omitempty"`
	Bucket    string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix    string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region    string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	PathStyle bool   `json:"pathStyle,omitempty" yaml:"pathStyle,omitempty"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Enabled   bool   `json:"enabled" yaml:"enabled"`
}

// New creates a new Config with default values and the counter example as
// its data and view.
func New() *Config {
	return &Config{
		Name:  "counter",
		El:    DefaultEl,
		Mount: MountConfig{Tag: DefaultMountTag},
		Data:  map[string]any{"count": 0},
		View: view.Spec{
			Tag:  "span",
			Text: `{{get "count"}}`,
		},
		Render: RenderConfig{ChildOrder: vdom.OrderReverse.String()},
		Preview: PreviewConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Snapshot: SnapshotConfig{Dir: DefaultSnapshotDir},
		Log:      LogConfig{Level: "info", Format: "text"},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
			Enabled:   true,
		},
	}
}

// Load reads configuration from the specified directory. It looks for
// reactree.json, then reactree.yaml.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("C002").
		WithDetail("No " + ConfigFileName + " or " + YAMLFileName + " found in " + dir).
		WithSuggestion("Run 'reactree init' to create one")
}

// LoadFile reads configuration from the specified file path. The format
// follows the extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C002").WithDetail(path)
		}
		return nil, errors.New("C001").Wrap(err)
	}

	// The file replaces the sample data, view and snapshot target rather
	// than merging into them.
	cfg := New()
	cfg.Data = nil
	cfg.View = view.Spec{}
	cfg.Snapshot = SnapshotConfig{}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("C001").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error())
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
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("C001").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C001").Wrap(err)
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
		c.Name = "reactree"
	}
	if c.El == "" {
		c.El = DefaultEl
	}
	if c.Mount.Tag == "" {
		c.Mount.Tag = DefaultMountTag
	}
	if c.Data == nil {
		c.Data = map[string]any{}
	}
	if c.Render.ChildOrder == "" {
		c.Render.ChildOrder = vdom.OrderReverse.String()
	}
	if c.Preview.Host == "" {
		c.Preview.Host = DefaultHost
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPort
	}
	if c.Snapshot.Dir == "" && c.Snapshot.Bucket == "" {
		c.Snapshot.Dir = DefaultSnapshotDir
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.El == "" {
		return errors.New("C003").WithDetail("el")
	}
	if c.View.IsZero() {
		return errors.New("C003").WithDetail("view")
	}
	if err := view.Validate(c.View); err != nil {
		return err
	}
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return errors.New("C004").
			WithDetail("Port must be between 0 and 65535")
	}
	if _, ok := vdom.ParseChildOrder(c.Render.ChildOrder); !ok {
		return errors.New("C001").
			WithDetailf("render.childOrder %q", c.Render.ChildOrder).
			WithSuggestion("Use \"reverse\" or \"declared\"")
	}
	if !logging.ValidLevel(c.Log.Level) {
		return errors.New("C001").WithDetailf("log.level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return errors.New("C001").WithDetailf("log.format %q", c.Log.Format)
	}
	return nil
}

// ChildOrder returns the parsed render.childOrder.
func (c *Config) ChildOrder() vdom.ChildOrder {
	o, _ := vdom.ParseChildOrder(c.Render.ChildOrder)
	return o
}

// PreviewAddress returns the address string for the preview server.
func (c *Config) PreviewAddress() string {
	return c.Preview.Host + ":" + strconv.Itoa(c.Preview.Port)
}

// PreviewURL returns the full URL for the preview server.
func (c *Config) PreviewURL() string {
	return "http://" + c.PreviewAddress()
}

// SnapshotPath returns the absolute path to the snapshot directory.
func (c *Config) SnapshotPath() string {
	if filepath.IsAbs(c.Snapshot.Dir) {
		return c.Snapshot.Dir
	}
	return filepath.Join(c.Dir(), c.Snapshot.Dir)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
