package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scitags/nlmon-go/backends/prometheus"
	"github.com/scitags/nlmon-go/enrichment/ethtool"
	"github.com/scitags/nlmon-go/plugins/netlink"
	"github.com/scitags/nlmon-go/types"
)

func TestYAMLAndJSON(t *testing.T) {
	testDir := "testdata/yaml_json"
	d, err := os.ReadDir(testDir)
	if err != nil {
		t.Fatalf("error reading testdata: %v", err)
	}

	confs := []*Config{}
	for _, n := range d {
		c, err := ReadConf(testDir + "/" + n.Name())
		if err != nil {
			t.Fatalf("error parsing %q: %v", n.Name(), err)
		}
		t.Logf("%s:\n%s", n.Name(), c)
		confs = append(confs, c)
	}

	if len(confs) != 2 {
		t.Fatalf("expected two configurations but got %d", len(confs))
	}

	if !cmp.Equal(confs[0], confs[1]) {
		t.Errorf("configurations are not equal:\n%s", cmp.Diff(confs[0], confs[1]))
	}

	want := &netlink.Config{Groups: []string{"link", "route"}, BufferSize: 16384, DumpFamily: "inet"}
	if diff := cmp.Diff(want, confs[0].Session); diff != "" {
		t.Errorf("unexpected session configuration (-want +got):\n%s", diff)
	}
}

func TestDefaults(t *testing.T) {
	got, err := ReadConf("testdata/conf/defaults.yaml")
	if err != nil {
		t.Fatalf("error parsing defaults.yaml: %v", err)
	}

	if diff := cmp.Diff(&netlink.DefaultConfig, got.Session); diff != "" {
		t.Errorf("unexpected session configuration (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(&ethtool.DefaultConfig, got.Enrichment); diff != "" {
		t.Errorf("unexpected enrichment configuration (-want +got):\n%s", diff)
	}
	if got.Backends == nil || !cmp.Equal(&prometheus.DefaultConfig, got.Backends.Prometheus) {
		t.Errorf("got backends %v; want prometheus defaults", got.Backends)
	}
	if len(got.Dump) != 0 {
		t.Errorf("got dump %v; want none", got.Dump)
	}
}

func TestPartial(t *testing.T) {
	got, err := ReadConf("testdata/conf/partial.yaml")
	if err != nil {
		t.Fatalf("error parsing partial.yaml: %v", err)
	}

	want := &Config{
		Session:    &netlink.Config{Groups: []string{"neigh"}, BufferSize: 8192},
		Enrichment: &ethtool.Config{Enabled: true},
		Dump:       []string{"neigh"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected configuration (-want +got):\n%s", diff)
	}
}

func TestReadConfMissing(t *testing.T) {
	if _, err := ReadConf("testdata/nope.yaml"); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestDefaultConfIsolated(t *testing.T) {
	a := DefaultConf()
	a.Session.Groups = append(a.Session.Groups, "link")
	a.Enrichment.Enabled = false

	b := DefaultConf()
	if len(b.Session.Groups) != 0 || !b.Enrichment.Enabled {
		t.Errorf("default configurations share state: %v", b)
	}
	if len(netlink.DefaultConfig.Groups) != 0 || !ethtool.DefaultConfig.Enabled {
		t.Errorf("package defaults were modified")
	}
}

func TestLogReplacements(t *testing.T) {
	var buf bytes.Buffer

	logger, err := newLogger(&buf, "trace", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Log(t.Context(), types.LevelTrace, "hello")

	line := buf.String()
	if !strings.Contains(line, "level=TRACE") {
		t.Errorf("trace level not renamed: %q", line)
	}
	if strings.Contains(line, "time=") {
		t.Errorf("time wasn't removed: %q", line)
	}
	if !strings.Contains(line, "source=conf_test.go:") {
		t.Errorf("source wasn't trimmed: %q", line)
	}

	if _, err := newLogger(&buf, "loud", false); err == nil {
		t.Errorf("expected an error for an unknown level")
	}

	buf.Reset()
	logger, _ = newLogger(&buf, "info", true)
	logger.Debug("hidden")
	logger.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), `"msg":"shown"`) {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
