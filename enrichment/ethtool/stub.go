//go:build !linux

package ethtool

import (
	"errors"

	"github.com/scitags/nlmon-go/enrichment"
)

var ErrUnsupported = errors.New("ethtool probes are only supported on Linux")

type Prober struct{}

func NewProber(c *Config) (enrichment.Prober, error) {
	if c != nil && !c.Enabled {
		return enrichment.Disabled{}, nil
	}
	return nil, ErrUnsupported
}

func (Prober) String() string {
	return "ethtool prober"
}

func (Prober) ProbeLink(string) (*enrichment.LinkSettings, error) {
	return nil, ErrUnsupported
}
