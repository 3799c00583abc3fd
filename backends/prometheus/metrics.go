package prometheus

import (
	"context"
	"fmt"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/scitags/nlmon-go/types"
)

// Metric labels (note these are **always** strings):
//
//	event: the record's event field (i.e. newlink)
//	group: the registry group the message belonged to; empty if unknown
//	reason: why the message was dropped
var (
	recordLabels  = []string{"event"}
	droppedLabels = []string{"group", "reason"}
)

type metrics struct {
	Records *prometheus.CounterVec
	Dropped *prometheus.CounterVec

	LastStamp prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		Records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nlmon_records_total",
			Help: "Records produced out of rtnetlink messages",
		}, recordLabels),
		Dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nlmon_dropped_total",
			Help: "Messages that didn't produce a record",
		}, droppedLabels),

		LastStamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nlmon_last_record_stamp_milliseconds",
			Help: "Monotonic stamp of the last record produced [ms]",
		}),
	}

	return m
}

// (Nastily) use reflection to avoid having to manually register everything.
func (m *metrics) register(req prometheus.Registerer) error {
	v := reflect.ValueOf(*m)

	i := 0
	for i = 0; i < v.NumField(); i++ {
		vv, ok := v.Field(i).Interface().(prometheus.Collector)
		if !ok {
			return fmt.Errorf("error casting the interface for index %d", i)
		}
		if err := req.Register(vv); err != nil {
			return fmt.Errorf("error registering index %d: %w", i, err)
		}
	}
	logger.Log(context.Background(), types.LevelTrace, "registered collectors", "i", i)

	return nil
}
