package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/scitags/nlmon-go/backends/prometheus"
	"github.com/scitags/nlmon-go/enrichment/ethtool"
	"github.com/scitags/nlmon-go/plugins/netlink"
)

type Config struct {
	Session    *netlink.Config `yaml:"session"`
	Enrichment *ethtool.Config `yaml:"enrichment"`

	// Dump lists the groups to dump before streaming notifications.
	Dump []string `yaml:"dump"`

	Backends *struct {
		Prometheus *prometheus.Config `yaml:"prometheus"`
	} `yaml:"backends"`
}

func (c Config) String() string {
	m, err := yaml.MarshalWithOptions(c, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return "marshalling error..."
	}
	return string(m)
}

// Needed to break recursive calls into UnmarshalYAML
type config Config

func defaultConfig() config {
	session := netlink.DefaultConfig
	session.Groups = []string{}
	enrichment := ethtool.DefaultConfig

	return config{
		Session:    &session,
		Enrichment: &enrichment,
		Dump:       []string{},
	}
}

func (c *Config) UnmarshalYAML(b []byte) error {
	def := defaultConfig()

	if err := yaml.Unmarshal(b, &def); err != nil {
		return err
	}

	*c = Config(def)

	return nil
}

// DefaultConf returns the configuration in effect when no file is given.
func DefaultConf() *Config {
	c := Config(defaultConfig())
	return &c
}

func ReadConf(path string) (*Config, error) {
	r, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading the configuration file: %w", err)
	}

	conf := Config{}
	if err := yaml.Unmarshal(r, &conf); err != nil {
		return nil, fmt.Errorf("error unmarshaling the configuration: %w", err)
	}

	return &conf, nil
}
