// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	m "github.com/ethersphere/mintgate/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	// all metrics fields must be exported
	// to be able to return them by Metrics()
	// using reflection
	RegisteredLists  prometheus.Counter
	RootReplacements prometheus.Counter
	ClaimsMarked     prometheus.Counter
}

func newMetrics() metrics {
	subsystem := "registry"

	return metrics{
		RegisteredLists: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "registered_lists_count",
			Help:      "Number of lists registered.",
		}),
		RootReplacements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "root_replacements_count",
			Help:      "Number of explicit root replacements.",
		}),
		ClaimsMarked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "claims_marked_count",
			Help:      "Number of claim markers written.",
		}),
	}
}

func (s *service) Metrics() []prometheus.Collector {
	return m.PrometheusCollectorsFromFields(s.metrics)
}
