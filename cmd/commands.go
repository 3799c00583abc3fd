package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/scitags/nlmon-go/enrichment"
	"github.com/scitags/nlmon-go/enrichment/ethtool"
	"github.com/scitags/nlmon-go/plugins/netlink"
	"github.com/scitags/nlmon-go/processing/rtnetlink"
	"github.com/scitags/nlmon-go/types"
	"github.com/spf13/cobra"
)

var (
	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Stream notifications until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConf(cmd)
			if err != nil {
				return err
			}
			return watch(conf, os.Stdout)
		},
	}

	dumpCmd = &cobra.Command{
		Use:   "dump [group...]",
		Short: "Dump the current state of the given groups and exit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConf(cmd)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				conf.Session.Groups = args
			}
			return dump(conf, os.Stdout)
		},
	}

	groupsCmd = &cobra.Command{
		Use:   "groups",
		Short: "List the supported groups.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, g := range rtnetlink.DefaultRegistry().Groups() {
				fmt.Printf("%-8s mcast=%#04x new=%d del=%d get=%d\n", g.Name, g.Multicast, g.NewType, g.DelType, g.GetType)
			}
		},
	}

	ethtoolCmd = &cobra.Command{
		Use:   "ethtool <iface>",
		Short: "Probe the link settings of an interface.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ethtool.NewProber(&ethtool.Config{Enabled: true})
			if err != nil {
				return err
			}

			s, err := p.ProbeLink(args[0])
			if err != nil {
				return err
			}
			if s == nil {
				fmt.Printf("%s doesn't report its link settings\n", args[0])
				return nil
			}

			r := types.NewRecord(3)
			s.Merge(r)
			return json.NewEncoder(os.Stdout).Encode(r)
		},
	}
)

// loadConf reads the configuration file if any and applies flag overrides.
func loadConf(cmd *cobra.Command) (*Config, error) {
	conf := DefaultConf()
	if confPathFlag != "" {
		var err error
		if conf, err = ReadConf(confPathFlag); err != nil {
			return nil, err
		}
	}

	if conf.Session == nil {
		s := netlink.DefaultConfig
		conf.Session = &s
	}
	if conf.Enrichment == nil {
		e := ethtool.DefaultConfig
		conf.Enrichment = &e
	}

	flags := cmd.Flags()
	if flags.Changed("groups") {
		conf.Session.Groups = groupsFlag
	}
	if flags.Changed("dump") {
		conf.Dump = dumpFlag
	}
	if flags.Changed("no-enrich") {
		conf.Enrichment.Enabled = !noEnrichFlag
	}

	slog.Debug("loaded configuration", "conf", conf.String())

	return conf, nil
}

func newSession(conf *Config, opts ...netlink.Option) (*netlink.Session, error) {
	prober, err := ethtool.NewProber(conf.Enrichment)
	if err != nil {
		slog.Warn("disabling link settings enrichment", "err", err)
		prober = enrichment.Disabled{}
	}

	d := rtnetlink.NewDecoder(rtnetlink.DefaultRegistry(), rtnetlink.WithProber(prober))

	s, err := netlink.Open(conf.Session, d, opts...)
	if err != nil {
		return nil, fmt.Errorf("error opening the netlink session: %w", err)
	}
	return s, nil
}

type emitter struct {
	enc      *json.Encoder
	backends []backend
}

func (e *emitter) emit(rs []*types.Record) error {
	for _, r := range rs {
		if err := e.enc.Encode(r); err != nil {
			return fmt.Errorf("error writing a record: %w", err)
		}
		for _, b := range e.backends {
			b.Stamp(r.Stamp())
		}
	}
	return nil
}

func watch(conf *Config, w io.Writer) error {
	backends, err := createBackends(conf)
	if err != nil {
		return err
	}
	defer cleanupBackends(backends)

	s, err := newSession(conf, netlink.WithObserver(fanout(backends)))
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Debug("got a signal, closing the session")
		s.Close()
	}()

	e := &emitter{enc: json.NewEncoder(w), backends: backends}

	if len(conf.Dump) > 0 {
		rs, err := s.Dump(conf.Dump...)
		if err := e.emit(rs); err != nil {
			return err
		}
		if err != nil {
			return closedIsFine(err)
		}
	}

	slog.Info("watching for notifications", "groups", s.Groups())

	for {
		ready, err := s.Poll(-1)
		if err != nil {
			return closedIsFine(err)
		}
		if !ready {
			continue
		}

		rs, err := s.Receive()
		if err := e.emit(rs); err != nil {
			return err
		}
		if err != nil {
			return closedIsFine(err)
		}
	}
}

func dump(conf *Config, w io.Writer) error {
	s, err := newSession(conf)
	if err != nil {
		return err
	}
	defer s.Close()

	rs, err := s.Query()
	if err := (&emitter{enc: json.NewEncoder(w)}).emit(rs); err != nil {
		return err
	}
	return err
}

func closedIsFine(err error) error {
	if errors.Is(err, netlink.ErrClosed) {
		slog.Debug("session closed")
		return nil
	}
	return err
}
