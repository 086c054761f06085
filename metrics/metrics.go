// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics 客户端会话统计
package metrics

import (
	"io"
	"os"
	"sort"
	"strings"
	"time"

	chain33log "github.com/33cn/pricepool/common/log"
	"github.com/33cn/pricepool/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	go_metrics "github.com/rcrowley/go-metrics"
)

// emit modes
const (
	EmitLog        = "log"
	EmitStderr     = "stderr"
	EmitPrometheus = "prometheus"
)

// metric names
const (
	RPCCall   = "rpc.call"
	TxConfirm = "tx.confirm"
	TxSent    = "tx.sent"
	TxFailed  = "tx.failed"
)

var (
	log = chain33log.New("module", "pricepool metrics")

	// Namespace prometheus namespace
	Namespace = "pricepool"

	enabled  bool
	emitMode = EmitLog
	registry = go_metrics.NewRegistry()
)

//StartMetrics 根据配置文件相关参数启动
func StartMetrics(cfg *types.Metrics) {
	if cfg == nil || !cfg.EnableMetrics {
		log.Debug("Metrics data is not enabled to emit")
		enabled = false
		return
	}
	switch cfg.DataEmitMode {
	case EmitLog, EmitStderr, EmitPrometheus:
		emitMode = cfg.DataEmitMode
	case "":
		emitMode = EmitLog
	default:
		log.Error("startMetrics", "The dataEmitMode set is not supported now ", cfg.DataEmitMode)
		return
	}
	enabled = true
}

// Enabled metrics switched on by config
func Enabled() bool {
	return enabled
}

// Registry session registry
func Registry() go_metrics.Registry {
	return registry
}

// Since records the time elapsed from start in timer name.
func Since(name string, start time.Time) {
	if !enabled {
		return
	}
	go_metrics.GetOrRegisterTimer(name, registry).UpdateSince(start)
}

// Mark counts one event in meter name.
func Mark(name string) {
	if !enabled {
		return
	}
	go_metrics.GetOrRegisterMeter(name, registry).Mark(1)
}

// Emit writes the session metrics once, w is used by the stderr and prometheus modes.
func Emit(w io.Writer) {
	if !enabled {
		return
	}
	if w == nil {
		w = os.Stderr
	}
	switch emitMode {
	case EmitStderr:
		go_metrics.WriteOnce(registry, w)
	case EmitPrometheus:
		if err := writePrometheus(registry, w); err != nil {
			log.Error("Emit", "err", err)
		}
	default:
		registry.Each(func(name string, i interface{}) {
			switch m := i.(type) {
			case go_metrics.Timer:
				t := m.Snapshot()
				log.Info("timer", "name", name, "count", t.Count(), "mean", time.Duration(t.Mean()),
					"max", time.Duration(t.Max()))
			case go_metrics.Meter:
				log.Info("meter", "name", name, "count", m.Snapshot().Count())
			}
		})
	}
}

// Reset drops every registered metric
func Reset() {
	registry.UnregisterAll()
}

func promName(name string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(name)
}

// writePrometheus 将 go-metrics 快照转换为 prometheus 文本格式
func writePrometheus(r go_metrics.Registry, w io.Writer) error {
	reg := prometheus.NewRegistry()
	var names []string
	r.Each(func(name string, _ interface{}) {
		names = append(names, name)
	})
	sort.Strings(names)
	for _, name := range names {
		switch m := r.Get(name).(type) {
		case go_metrics.Timer:
			t := m.Snapshot()
			mean := prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      promName(name) + "_mean_seconds",
				Help:      name,
			})
			mean.Set(time.Duration(t.Mean()).Seconds())
			reg.MustRegister(mean)
			c := prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      promName(name) + "_count",
				Help:      name,
			})
			c.Set(float64(t.Count()))
			reg.MustRegister(c)
		case go_metrics.Meter:
			c := prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      promName(name) + "_total",
				Help:      name,
			})
			c.Add(float64(m.Snapshot().Count()))
			reg.MustRegister(c)
		}
	}
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
