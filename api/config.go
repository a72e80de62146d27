package api

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultVersion is the document version used when none is configured.
	DefaultVersion = "1.0"

	// DefaultApplicationName is used when APPLICATION_NAME is not set.
	DefaultApplicationName = "Application"

	envPrefix = "APIDOC"
)

// Server is a server entry of the generated document.
type Server struct {
	URL         string `mapstructure:"url"`
	Description string `mapstructure:"description"`
}

// Config is the input of a documentation run.
type Config struct {
	Name        string
	Version     string
	Description string
	Servers     []Server

	Endpoints []Endpoint

	// Types lists zero values of types that are only referenced from
	// annotations, so that their names can be resolved.
	Types []any
}

// NewConfig creates a configuration with the default version.
func NewConfig(name string) *Config {
	return &Config{
		Name:    name,
		Version: DefaultVersion,
	}
}

// AddEndpoint appends an endpoint.
func (c *Config) AddEndpoint(endpoints ...Endpoint) *Config {
	c.Endpoints = append(c.Endpoints, endpoints...)
	return c
}

// AddServer appends a server entry.
func (c *Config) AddServer(server Server) *Config {
	c.Servers = append(c.Servers, server)
	return c
}

// Register records types referenced only from annotations.
func (c *Config) Register(types ...any) *Config {
	c.Types = append(c.Types, types...)
	return c
}

type fileConfig struct {
	Name        string   `mapstructure:"name"`
	Version     string   `mapstructure:"version"`
	Description string   `mapstructure:"description"`
	Servers     []Server `mapstructure:"servers"`
}

// LoadConfig layers the document-level settings of base, the optional file
// at path (any format viper understands) and the environment, in increasing
// precedence. APIDOC_NAME, APIDOC_VERSION and APIDOC_DESCRIPTION override the
// file. Without any name the title is "<APPLICATION_NAME> API". Endpoints and
// types are taken from base.
func LoadConfig(path string, base *Config) (*Config, error) {
	if base == nil {
		base = &Config{}
	}

	v := viper.New()

	v.SetDefault("name", base.Name)
	v.SetDefault("version", base.Version)
	v.SetDefault("description", base.Description)
	v.SetDefault("application_name", DefaultApplicationName)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("application_name", "APPLICATION_NAME"); err != nil {
		return nil, fmt.Errorf("bind APPLICATION_NAME: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg := &Config{
		Name:        fc.Name,
		Version:     fc.Version,
		Description: fc.Description,
		Servers:     base.Servers,
		Endpoints:   base.Endpoints,
		Types:       base.Types,
	}

	if len(fc.Servers) > 0 {
		cfg.Servers = fc.Servers
	}

	if cfg.Name == "" {
		cfg.Name = v.GetString("application_name") + " API"
	}

	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}

	return cfg, nil
}
