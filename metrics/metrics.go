// Copyright 2023 Hopgraph, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Label constants.
const (
	LblRule = "rule"
)

// Planner metrics.
var (
	// LogicalRuleCounter counts how many times each logical rewrite rule
	// has been applied to a plan.
	LogicalRuleCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hop",
			Subsystem: "planner",
			Name:      "logical_rule_total",
			Help:      "Counter of applied logical rewrite rules.",
		}, []string{LblRule})

	// OptimizeDurationHistogram records the latency of a full logical
	// optimization pass.
	OptimizeDurationHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "hop",
			Subsystem: "planner",
			Name:      "optimize_duration_seconds",
			Help:      "Bucketed histogram of logical optimization time (s).",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 20),
		})
)

// RegisterMetrics registers the planner metrics.
func RegisterMetrics() {
	prometheus.MustRegister(LogicalRuleCounter)
	prometheus.MustRegister(OptimizeDurationHistogram)
}
