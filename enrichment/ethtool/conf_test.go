package ethtool

import (
	"testing"

	"github.com/goccy/go-yaml"
)

func TestConfigDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"empty", "{}", true},
		{"explicit", "enabled: false", false},
		{"unrelated", "foo: bar", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var c Config
			if err := yaml.Unmarshal([]byte(tc.in), &c); err != nil {
				t.Fatalf("error unmarshalling: %v", err)
			}
			if c.Enabled != tc.want {
				t.Errorf("got enabled %t; want %t", c.Enabled, tc.want)
			}
		})
	}
}
