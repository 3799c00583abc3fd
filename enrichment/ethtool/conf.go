package ethtool

import "github.com/goccy/go-yaml"

type Config struct {
	// Enabled controls whether links coming up running are probed at all.
	Enabled bool `yaml:"enabled"`
}

var DefaultConfig = Config{
	Enabled: true,
}

func (c *Config) UnmarshalYAML(b []byte) error {
	// Needed to break recursive calls into UnmarshalYAML
	type config Config

	def := config(DefaultConfig)

	if err := yaml.Unmarshal(b, &def); err != nil {
		return err
	}

	*c = Config(def)

	return nil
}
