package config

import (
	"net"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	regionmap "github.com/Ahmedramadaan333/RegionMapFilter"
)

const (
	defaultAddr                = "0.0.0.0"
	defaultPort                = 8080
	defaultCacheTTLSeconds     = 300
	defaultCacheCleanupSeconds = 1800
)

type Config struct {
	Server  Server  `yaml:"server"`
	Dataset Dataset `yaml:"dataset"`
	Logger  logger  `yaml:"logger"`
}

type Server struct {
	Addr                string `yaml:"addr"`
	Port                int    `yaml:"port"`
	CacheTTLSeconds     int    `yaml:"cache_ttl_seconds"`
	CacheCleanupSeconds int    `yaml:"cache_cleanup_seconds"`
	CacheCellLevel      int    `yaml:"cache_cell_level"`
}

type Dataset struct {
	Path                  string `yaml:"path"`
	NameProperty          string `yaml:"name_property"`
	LocalizedNameProperty string `yaml:"localized_name_property"`
	FirstPolygonOnly      bool   `yaml:"first_polygon_only"`
}

func FromBytes(data []byte) (*Config, error) {
	conf := Config{
		Server: Server{
			Addr:                defaultAddr,
			Port:                defaultPort,
			CacheTTLSeconds:     defaultCacheTTLSeconds,
			CacheCleanupSeconds: defaultCacheCleanupSeconds,
			CacheCellLevel:      regionmap.DefaultCellLevel,
		},
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func FromFile(filename string) (*Config, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return FromBytes(raw)
}

func (c *Config) ServerAddr() string {
	return net.JoinHostPort(c.Server.Addr, strconv.Itoa(c.Server.Port))
}

// DecodeOptions translates the dataset section into loader options,
// leaving the loader defaults in place for empty keys.
func (d Dataset) DecodeOptions() []regionmap.DecodeOption {
	opts := make([]regionmap.DecodeOption, 0, 3)
	if d.NameProperty != "" {
		opts = append(opts, regionmap.WithNameProperty(d.NameProperty))
	}
	if d.LocalizedNameProperty != "" {
		opts = append(opts, regionmap.WithLocalizedNameProperty(d.LocalizedNameProperty))
	}
	if d.FirstPolygonOnly {
		opts = append(opts, regionmap.FirstPolygonOnly())
	}
	return opts
}
