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

package core

import (
	"context"
	"time"

	"github.com/hopgraph/hop/metrics"
	"github.com/hopgraph/hop/util/logutil"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// Optimization flag bits, one per rule in optRuleList.
const (
	// FlagEliminateDepthOrdering enables depthOrderingEliminator.
	FlagEliminateDepthOrdering uint64 = 1 << iota
)

var optRuleList = []logicalOptRule{
	&depthOrderingEliminator{},
}

// logicalOptRule means a logical optimizing rule, which contains de-correlate,
// depth ordering elimination and so on.
type logicalOptRule interface {
	optimize(context.Context, LogicalPlan) (LogicalPlan, error)
	name() string
}

// LogicalOptimize rewrites the plan with every rule enabled in flag, in
// list order. Rules never mutate the tree they are given, so the input
// plan stays valid whatever happens.
func LogicalOptimize(ctx context.Context, flag uint64, logic LogicalPlan) (LogicalPlan, error) {
	start := time.Now()
	defer func() {
		metrics.OptimizeDurationHistogram.Observe(time.Since(start).Seconds())
	}()
	var err error
	for i, rule := range optRuleList {
		// The order of flags is the same as the order of optRule in the list.
		// We use a bitmask to record which opt rules should be used. If the i-th bit is 1, it means we should
		// apply i-th optimizing rule.
		if flag&(1<<uint(i)) == 0 {
			continue
		}
		logic, err = rule.optimize(ctx, logic)
		if err != nil {
			return nil, errors.Trace(err)
		}
		metrics.LogicalRuleCounter.WithLabelValues(rule.name()).Inc()
		logutil.Logger(ctx).Debug("logical rewrite applied", zap.String("rule", rule.name()))
	}
	return logic, err
}
