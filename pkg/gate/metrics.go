// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gate

import (
	m "github.com/ethersphere/mintgate/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// metrics groups the prometheus counters of the gate. All fields must
// be exported so that they can be returned by Metrics() using
// reflection.
type metrics struct {
	ClaimsAttempted prometheus.Counter
	ClaimsGranted   prometheus.Counter
	ClaimsRejected  *prometheus.CounterVec
	ProofsIssued    prometheus.Counter
	TreeRebuilds    prometheus.Counter
	ProofCacheHits  prometheus.Counter
}

func newMetrics() metrics {
	subsystem := "gate"

	return metrics{
		ClaimsAttempted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "claims_attempted_count",
			Help:      "Number of claim submissions received.",
		}),
		ClaimsGranted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "claims_granted_count",
			Help:      "Number of claims granted.",
		}),
		ClaimsRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: m.Namespace,
				Subsystem: subsystem,
				Name:      "claims_rejected_count",
				Help:      "Number of claims rejected, partitioned by reason.",
			},
			[]string{"reason"},
		),
		ProofsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "proofs_issued_count",
			Help:      "Number of membership proofs issued.",
		}),
		TreeRebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "tree_rebuilds_count",
			Help:      "Number of times a list tree was rebuilt from its member set.",
		}),
		ProofCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "proof_cache_hits_count",
			Help:      "Number of list loads served from the tree cache.",
		}),
	}
}

func (s *service) Metrics() []prometheus.Collector {
	return m.PrometheusCollectorsFromFields(s.metrics)
}
