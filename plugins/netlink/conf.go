package netlink

import "github.com/goccy/go-yaml"

type Config struct {
	// Groups lists the registry groups to bind to. An empty list binds to
	// every group.
	Groups []string `yaml:"groups"`

	// BufferSize is the size of the receive buffer: datagrams larger than
	// this are truncated by the kernel.
	BufferSize int `yaml:"bufferSize"`

	// DumpFamily overrides the rtgen_family sent on dump requests. It can be
	// one of inet, inet6 or unspec. Leave it empty to use each group's own.
	DumpFamily string `yaml:"dumpFamily"`
}

// MNL_SOCKET_BUFFER_SIZE caps at 8 KiB.
var DefaultConfig = Config{
	Groups:     []string{},
	BufferSize: 8192,
	DumpFamily: "",
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
