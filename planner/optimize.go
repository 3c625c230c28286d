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

package planner

import (
	"context"

	"github.com/hopgraph/hop/config"
	plannercore "github.com/hopgraph/hop/planner/core"
	"github.com/pingcap/errors"
)

// Optimize applies every logical rewrite rule enabled by configuration to
// plan and returns the rewritten plan. It sits between plan building and
// physical planning in the pipeline.
func Optimize(ctx context.Context, plan plannercore.LogicalPlan) (plannercore.LogicalPlan, error) {
	conf := config.GetGlobalConfig()
	if depth := planDepth(plan); depth > int(conf.Planner.MaxPlanDepth) {
		return nil, errors.Errorf("plan nesting depth %d exceeds the configured limit %d", depth, conf.Planner.MaxPlanDepth)
	}
	var flag uint64
	if conf.Planner.DepthOrderingElimination {
		flag |= plannercore.FlagEliminateDepthOrdering
	}
	return plannercore.LogicalOptimize(ctx, flag, plan)
}

func planDepth(p plannercore.LogicalPlan) int {
	depth := 0
	for _, child := range p.Children() {
		if d := planDepth(child); d > depth {
			depth = d
		}
	}
	return depth + 1
}
