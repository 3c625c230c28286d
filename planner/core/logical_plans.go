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
	"fmt"
	"strings"

	"github.com/hopgraph/hop/expression"
	"github.com/hopgraph/hop/planner/util"
)

// LogicalBFSExpand is a bounded breadth-first pruning expansion. For each
// row of its child it explores the neighborhood of the From node level by
// level, up to MaxHops, emitting one row per discovered node with the
// discovery depth bound to DepthVar. Because levels are visited in order,
// the emitted rows are in non-decreasing DepthVar order by construction.
type LogicalBFSExpand struct {
	baseLogicalPlan

	From     string
	To       string
	DepthVar string
	MinHops  uint64
	MaxHops  uint64
}

// Init initializes LogicalBFSExpand.
func (p LogicalBFSExpand) Init(ctx *PlanContext) *LogicalBFSExpand {
	p.baseLogicalPlan = newBaseLogicalPlan(ctx, TypeBFSExpand)
	return &p
}

// Clone implements LogicalPlan interface.
func (p *LogicalBFSExpand) Clone() LogicalPlan {
	np := *p
	np.baseLogicalPlan = p.cloneBase()
	return &np
}

// ExplainInfo implements Plan interface.
func (p *LogicalBFSExpand) ExplainInfo() string {
	return fmt.Sprintf("%s->%s, depth:%s, hops:[%d,%d]", p.From, p.To, p.DepthVar, p.MinHops, p.MaxHops)
}

// LogicalSort stands for the order by plan.
type LogicalSort struct {
	baseLogicalPlan

	ByItems []*util.ByItems
}

// Init initializes LogicalSort.
func (p LogicalSort) Init(ctx *PlanContext) *LogicalSort {
	p.baseLogicalPlan = newBaseLogicalPlan(ctx, TypeSort)
	return &p
}

// Clone implements LogicalPlan interface.
func (p *LogicalSort) Clone() LogicalPlan {
	np := *p
	np.baseLogicalPlan = p.cloneBase()
	return &np
}

// ExplainInfo implements Plan interface.
func (p *LogicalSort) ExplainInfo() string {
	return explainByItems(p.ByItems)
}

// LogicalTopN represents a top-n plan: a full sort of which only the first
// Count rows after Offset survive.
type LogicalTopN struct {
	baseLogicalPlan

	ByItems []*util.ByItems
	Offset  uint64
	Count   uint64
}

// Init initializes LogicalTopN.
func (p LogicalTopN) Init(ctx *PlanContext) *LogicalTopN {
	p.baseLogicalPlan = newBaseLogicalPlan(ctx, TypeTopN)
	return &p
}

// Clone implements LogicalPlan interface.
func (p *LogicalTopN) Clone() LogicalPlan {
	np := *p
	np.baseLogicalPlan = p.cloneBase()
	return &np
}

// ExplainInfo implements Plan interface.
func (p *LogicalTopN) ExplainInfo() string {
	return fmt.Sprintf("%s, offset:%d, count:%d", explainByItems(p.ByItems), p.Offset, p.Count)
}

// LogicalPartialSort is a sort that relies on its input already being
// ordered by AlreadySorted: it only sorts by ToSort inside runs that share
// equal values of the prefix, so it never buffers the whole input.
type LogicalPartialSort struct {
	baseLogicalPlan

	AlreadySorted []*util.ByItems
	ToSort        []*util.ByItems
}

// Init initializes LogicalPartialSort.
func (p LogicalPartialSort) Init(ctx *PlanContext) *LogicalPartialSort {
	p.baseLogicalPlan = newBaseLogicalPlan(ctx, TypePartialSort)
	return &p
}

// Clone implements LogicalPlan interface.
func (p *LogicalPartialSort) Clone() LogicalPlan {
	np := *p
	np.baseLogicalPlan = p.cloneBase()
	return &np
}

// ExplainInfo implements Plan interface.
func (p *LogicalPartialSort) ExplainInfo() string {
	return explainByItems(p.AlreadySorted) + "|" + explainByItems(p.ToSort)
}

// LogicalPartialTopN is the bounded variant of LogicalPartialSort.
type LogicalPartialTopN struct {
	baseLogicalPlan

	AlreadySorted []*util.ByItems
	ToSort        []*util.ByItems
	Offset        uint64
	Count         uint64
}

// Init initializes LogicalPartialTopN.
func (p LogicalPartialTopN) Init(ctx *PlanContext) *LogicalPartialTopN {
	p.baseLogicalPlan = newBaseLogicalPlan(ctx, TypePartialTopN)
	return &p
}

// Clone implements LogicalPlan interface.
func (p *LogicalPartialTopN) Clone() LogicalPlan {
	np := *p
	np.baseLogicalPlan = p.cloneBase()
	return &np
}

// ExplainInfo implements Plan interface.
func (p *LogicalPartialTopN) ExplainInfo() string {
	return fmt.Sprintf("%s|%s, offset:%d, count:%d",
		explainByItems(p.AlreadySorted), explainByItems(p.ToSort), p.Offset, p.Count)
}

// LogicalLimit represents offset and limit plan.
type LogicalLimit struct {
	baseLogicalPlan

	Offset uint64
	Count  uint64
}

// Init initializes LogicalLimit.
func (p LogicalLimit) Init(ctx *PlanContext) *LogicalLimit {
	p.baseLogicalPlan = newBaseLogicalPlan(ctx, TypeLimit)
	return &p
}

// Clone implements LogicalPlan interface.
func (p *LogicalLimit) Clone() LogicalPlan {
	np := *p
	np.baseLogicalPlan = p.cloneBase()
	return &np
}

// ExplainInfo implements Plan interface.
func (p *LogicalLimit) ExplainInfo() string {
	return fmt.Sprintf("offset:%d, count:%d", p.Offset, p.Count)
}

// LogicalProjection represents a select fields plan. Exprs and OutputNames
// are parallel: row i binds OutputNames[i] to the value of Exprs[i].
// Variables of the input row that are not mentioned pass through untouched.
type LogicalProjection struct {
	baseLogicalPlan

	Exprs       []expression.Expression
	OutputNames []string
}

// Init initializes LogicalProjection.
func (p LogicalProjection) Init(ctx *PlanContext) *LogicalProjection {
	p.baseLogicalPlan = newBaseLogicalPlan(ctx, TypeProj)
	return &p
}

// Clone implements LogicalPlan interface.
func (p *LogicalProjection) Clone() LogicalPlan {
	np := *p
	np.baseLogicalPlan = p.cloneBase()
	return &np
}

// ExplainInfo implements Plan interface.
func (p *LogicalProjection) ExplainInfo() string {
	buf := make([]string, 0, len(p.Exprs))
	for i, expr := range p.Exprs {
		buf = append(buf, expr.String()+"->"+p.OutputNames[i])
	}
	return strings.Join(buf, ",")
}

// LogicalDistinct removes duplicated rows. Its output order is
// unspecified, so any order established below it is lost.
type LogicalDistinct struct {
	baseLogicalPlan
}

// Init initializes LogicalDistinct.
func (p LogicalDistinct) Init(ctx *PlanContext) *LogicalDistinct {
	p.baseLogicalPlan = newBaseLogicalPlan(ctx, TypeDistinct)
	return &p
}

// Clone implements LogicalPlan interface.
func (p *LogicalDistinct) Clone() LogicalPlan {
	np := *p
	np.baseLogicalPlan = p.cloneBase()
	return &np
}

// LogicalAggregation represents an aggregate plan.
type LogicalAggregation struct {
	baseLogicalPlan

	GroupByItems []expression.Expression
	AggFuncs     []*expression.ScalarFunction
}

// Init initializes LogicalAggregation.
func (p LogicalAggregation) Init(ctx *PlanContext) *LogicalAggregation {
	p.baseLogicalPlan = newBaseLogicalPlan(ctx, TypeAgg)
	return &p
}

// Clone implements LogicalPlan interface.
func (p *LogicalAggregation) Clone() LogicalPlan {
	np := *p
	np.baseLogicalPlan = p.cloneBase()
	return &np
}

// ExplainInfo implements Plan interface.
func (p *LogicalAggregation) ExplainInfo() string {
	buf := make([]string, 0, len(p.GroupByItems))
	for _, item := range p.GroupByItems {
		buf = append(buf, item.String())
	}
	return "group by:" + strings.Join(buf, ",")
}

// LogicalSelection means a filter.
type LogicalSelection struct {
	baseLogicalPlan

	Conditions []expression.Expression
}

// Init initializes LogicalSelection.
func (p LogicalSelection) Init(ctx *PlanContext) *LogicalSelection {
	p.baseLogicalPlan = newBaseLogicalPlan(ctx, TypeSel)
	return &p
}

// Clone implements LogicalPlan interface.
func (p *LogicalSelection) Clone() LogicalPlan {
	np := *p
	np.baseLogicalPlan = p.cloneBase()
	return &np
}

// ExplainInfo implements Plan interface.
func (p *LogicalSelection) ExplainInfo() string {
	buf := make([]string, 0, len(p.Conditions))
	for _, cond := range p.Conditions {
		buf = append(buf, cond.String())
	}
	return strings.Join(buf, ",")
}

// LogicalArgument is the boundary of a sub-plan: it stands for the row the
// enclosing plan feeds in. It is always a leaf.
type LogicalArgument struct {
	baseLogicalPlan
}

// Init initializes LogicalArgument.
func (p LogicalArgument) Init(ctx *PlanContext) *LogicalArgument {
	p.baseLogicalPlan = newBaseLogicalPlan(ctx, TypeArgument)
	return &p
}

// Clone implements LogicalPlan interface.
func (p *LogicalArgument) Clone() LogicalPlan {
	np := *p
	np.baseLogicalPlan = p.cloneBase()
	return &np
}

// LogicalNodeScan scans all nodes carrying the given labels and binds each
// to Var, one row per node.
type LogicalNodeScan struct {
	baseLogicalPlan

	Var    string
	Labels []string
}

// Init initializes LogicalNodeScan.
func (p LogicalNodeScan) Init(ctx *PlanContext) *LogicalNodeScan {
	p.baseLogicalPlan = newBaseLogicalPlan(ctx, TypeNodeScan)
	return &p
}

// Clone implements LogicalPlan interface.
func (p *LogicalNodeScan) Clone() LogicalPlan {
	np := *p
	np.baseLogicalPlan = p.cloneBase()
	return &np
}

// ExplainInfo implements Plan interface.
func (p *LogicalNodeScan) ExplainInfo() string {
	if len(p.Labels) == 0 {
		return p.Var
	}
	return p.Var + ":" + strings.Join(p.Labels, ":")
}

func explainByItems(byItems []*util.ByItems) string {
	buf := make([]string, 0, len(byItems))
	for _, item := range byItems {
		buf = append(buf, item.String())
	}
	return strings.Join(buf, ",")
}
