//go:build linux

package ethtool

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/safchain/ethtool"
	"github.com/scitags/nlmon-go/enrichment"
)

func TestSettingsFromCmd(t *testing.T) {
	tests := []struct {
		name  string
		speed uint32
		cmd   ethtool.EthtoolCmd
		want  enrichment.LinkSettings
	}{
		{"full", 1000, ethtool.EthtoolCmd{Duplex: 1, Autoneg: 1}, enrichment.LinkSettings{Speed: 1000, Duplex: "full", Autoneg: true}},
		{"half", 10, ethtool.EthtoolCmd{Duplex: 0}, enrichment.LinkSettings{Speed: 10, Duplex: "half"}},
		{"unknownDuplex", 100, ethtool.EthtoolCmd{Duplex: 0xff}, enrichment.LinkSettings{Speed: 100, Duplex: "full"}},
		{"unknownSpeed", math.MaxUint32, ethtool.EthtoolCmd{Duplex: 1}, enrichment.LinkSettings{Speed: 0, Duplex: "full"}},
		{"unknownLegacySpeed", math.MaxUint16, ethtool.EthtoolCmd{Duplex: 1}, enrichment.LinkSettings{Speed: 0, Duplex: "full"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := settingsFromCmd(tc.speed, &tc.cmd)
			if diff := cmp.Diff(tc.want, *got); diff != "" {
				t.Errorf("unexpected settings (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProbeLinkSkipsUnfitNames(t *testing.T) {
	for _, name := range []string{"", "averyverylongname"} {
		s, err := Prober{}.ProbeLink(name)
		if s != nil || err != nil {
			t.Errorf("ProbeLink(%q) = (%v, %v); want (nil, nil)", name, s, err)
		}
	}
}

func TestNewProberDisabled(t *testing.T) {
	p, err := NewProber(&Config{Enabled: false})
	if err != nil {
		t.Fatalf("error building a disabled prober: %v", err)
	}
	if _, ok := p.(enrichment.Disabled); !ok {
		t.Errorf("got %s; want a disabled prober", p)
	}
}
