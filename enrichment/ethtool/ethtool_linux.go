//go:build linux

package ethtool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/safchain/ethtool"
	"github.com/scitags/nlmon-go/enrichment"
	"github.com/scitags/nlmon-go/types"
	"golang.org/x/sys/unix"
)

// IFNAMSIZ includes the trailing NUL.
const ifNameSize = 16

type Prober struct{}

// NewProber returns an ethtool-backed prober. We check we're allowed to open
// the control socket so that misconfigurations surface on startup.
func NewProber(c *Config) (enrichment.Prober, error) {
	if c != nil && !c.Enabled {
		slog.Debug("link settings enrichment is disabled")
		return enrichment.Disabled{}, nil
	}

	e, err := ethtool.NewEthtool()
	if err != nil {
		return nil, fmt.Errorf("error opening the ethtool control socket: %w", err)
	}
	e.Close()

	return Prober{}, nil
}

func (Prober) String() string {
	return "ethtool prober"
}

// ProbeLink issues ETHTOOL_GSET against name. Drivers that don't implement it
// make us return (nil, nil).
func (Prober) ProbeLink(name string) (*enrichment.LinkSettings, error) {
	if len(name) == 0 || len(name) >= ifNameSize {
		slog.Debug("skipping probe of link with an unfit name", "name", name)
		return nil, nil
	}

	e, err := ethtool.NewEthtool()
	if err != nil {
		return nil, fmt.Errorf("error opening the ethtool control socket: %w", err)
	}
	defer e.Close()

	var cmd ethtool.EthtoolCmd
	speed, err := e.CmdGet(&cmd, name)
	if err != nil {
		if errors.Is(err, unix.EOPNOTSUPP) {
			slog.Log(context.Background(), types.LevelTrace, "ETHTOOL_GSET not supported", "name", name)
			return nil, nil
		}
		return nil, fmt.Errorf("error issuing ETHTOOL_GSET on %s: %w", name, err)
	}

	return settingsFromCmd(speed, &cmd), nil
}

func settingsFromCmd(speed uint32, cmd *ethtool.EthtoolCmd) *enrichment.LinkSettings {
	s := &enrichment.LinkSettings{
		Speed:   int64(speed),
		Duplex:  "full",
		Autoneg: cmd.Autoneg != 0,
	}

	// SPEED_UNKNOWN is -1 on the wire; older drivers only fill the low half.
	if speed == math.MaxUint32 || speed == math.MaxUint16 {
		s.Speed = 0
	}

	if cmd.Duplex == 0 {
		s.Duplex = "half"
	}

	return s
}
