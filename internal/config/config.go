package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vango-dev/inject/internal/errors"
	"github.com/vango-dev/inject/pkg/assets"
	"github.com/vango-dev/inject/pkg/inject"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "inject.json"

	// DefaultPort is the default port of the serve command.
	DefaultPort = 3000

	// DefaultHost is the default host of the serve command.
	DefaultHost = "localhost"

	// DefaultServerDir is the default directory of pages to serve.
	DefaultServerDir = "public"

	// DefaultReportMode is the default report mode name.
	DefaultReportMode = "error"
)

// Config represents the complete inject.json configuration.
type Config struct {
	// ReportErrors is the report mode for unmatched content:
	// "none", "log" or "error".
	ReportErrors string `json:"reportErrors,omitempty"`

	// Marker configures the injection point grammar.
	Marker MarkerConfig `json:"marker,omitempty"`

	// Arrays configures script array declarations.
	Arrays ArraysConfig `json:"arrays,omitempty"`

	// Templates configures client template blocks.
	Templates TemplatesConfig `json:"templates,omitempty"`

	// Assets configures URL resolution of script and style files.
	Assets AssetsConfig `json:"assets,omitempty"`

	// Output configures post-processing of resolved pages.
	Output OutputConfig `json:"output,omitempty"`

	// Server configures the serve command.
	Server ServerConfig `json:"server,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// MarkerConfig configures the injection point grammar.
type MarkerConfig struct {
	// Keyword is the attribute name inside the comment (default: "Marker").
	Keyword string `json:"keyword,omitempty"`

	// Pattern replaces the default expression. It must define a named
	// group "name" and may define "group".
	Pattern string `json:"pattern,omitempty"`
}

// ArraysConfig configures script array declarations.
type ArraysConfig struct {
	// HTMLEncode encodes string elements (default: true).
	HTMLEncode *bool `json:"htmlEncode,omitempty"`
}

// TemplatesConfig configures client template blocks.
type TemplatesConfig struct {
	// Engine enables template blocks for "knockout", "underscore",
	// "kendo" or "jquery". Empty leaves template blocks unregistered.
	Engine string `json:"engine,omitempty"`
}

// AssetsConfig configures URL resolution.
type AssetsConfig struct {
	// Prefix is the base path "~/" URLs expand to (default: "/").
	Prefix string `json:"prefix,omitempty"`

	// Manifest is an optional fingerprint manifest, relative to the
	// config file.
	Manifest string `json:"manifest,omitempty"`
}

// OutputConfig configures post-processing of resolved pages.
type OutputConfig struct {
	// Minify minifies resolved HTML.
	Minify bool `json:"minify,omitempty"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Dir is the directory of pages to serve.
	Dir string `json:"dir,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	encode := true
	return &Config{
		ReportErrors: DefaultReportMode,
		Marker: MarkerConfig{
			Keyword: inject.DefaultKeyword,
		},
		Arrays: ArraysConfig{
			HTMLEncode: &encode,
		},
		Assets: AssetsConfig{
			Prefix: "/",
		},
		Server: ServerConfig{
			Port: DefaultPort,
			Host: DefaultHost,
			Dir:  DefaultServerDir,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for inject.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or run without --config to use defaults")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
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
		return errors.New("E120").Wrap(err)
	}
	data = append(data, '\n')

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
	if c.ReportErrors == "" {
		c.ReportErrors = DefaultReportMode
	}
	if c.Marker.Keyword == "" {
		c.Marker.Keyword = inject.DefaultKeyword
	}
	if c.Arrays.HTMLEncode == nil {
		encode := true
		c.Arrays.HTMLEncode = &encode
	}
	if c.Assets.Prefix == "" {
		c.Assets.Prefix = "/"
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Dir == "" {
		c.Server.Dir = DefaultServerDir
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := inject.ParseReportMode(c.ReportErrors); err != nil {
		return err
	}
	if c.Templates.Engine != "" {
		if _, err := inject.ParseTemplateEngine(c.Templates.Engine); err != nil {
			return err
		}
	}
	if _, err := c.Grammar(); err != nil {
		return err
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E122").
			WithDetail("Port must be between 0 and 65535")
	}
	return nil
}

// Grammar builds the injection point grammar.
func (c *Config) Grammar() (*inject.Grammar, error) {
	if c.Marker.Pattern != "" {
		return inject.NewPatternGrammar(c.Marker.Keyword, c.Marker.Pattern)
	}
	return inject.NewGrammar(c.Marker.Keyword)
}

// Factory builds the collection factory, registering template blocks
// when an engine is configured.
func (c *Config) Factory() (*inject.Factory, error) {
	f := inject.NewFactory()
	if c.Templates.Engine != "" {
		engine, err := inject.ParseTemplateEngine(c.Templates.Engine)
		if err != nil {
			return nil, err
		}
		f.RegisterTemplateEngine(engine)
	}
	return f, nil
}

// Resolver builds the asset resolver, loading the manifest if one is
// configured.
func (c *Config) Resolver() (assets.Resolver, error) {
	if c.Assets.Manifest == "" {
		return assets.NewPassthroughResolver(c.Assets.Prefix), nil
	}
	m, err := assets.Load(c.resolvePath(c.Assets.Manifest))
	if err != nil {
		return nil, errors.New("E120").
			WithDetail("Cannot load asset manifest " + c.Assets.Manifest).
			Wrap(err)
	}
	return assets.NewResolver(m, c.Assets.Prefix), nil
}

// ManagerConfig builds the inject.Config described by the file.
func (c *Config) ManagerConfig(logger *slog.Logger) (inject.Config, error) {
	if err := c.Validate(); err != nil {
		return inject.Config{}, err
	}

	mode, _ := inject.ParseReportMode(c.ReportErrors)
	grammar, err := c.Grammar()
	if err != nil {
		return inject.Config{}, err
	}
	factory, err := c.Factory()
	if err != nil {
		return inject.Config{}, err
	}
	resolver, err := c.Resolver()
	if err != nil {
		return inject.Config{}, err
	}

	return inject.Config{
		Factory:         factory,
		Grammar:         grammar,
		ReportMode:      mode,
		RawArrayStrings: c.Arrays.HTMLEncode != nil && !*c.Arrays.HTMLEncode,
		Resolver:        resolver,
		Logger:          logger,
	}, nil
}

// ServerAddress returns the listen address of the serve command.
func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// ServerDir returns the absolute directory of pages to serve.
func (c *Config) ServerDir() string {
	return c.resolvePath(c.Server.Dir)
}

func (c *Config) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// LoadOrDefault loads inject.json from dir, or returns defaults when dir
// has none.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		cfg := New()
		cfg.configPath = filepath.Join(dir, ConfigFileName)
		return cfg, nil
	}
	return Load(dir)
}
