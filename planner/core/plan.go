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
	"slices"
)

// Plan type names.
const (
	TypeBFSExpand   = "BFSExpand"
	TypeSort        = "Sort"
	TypeTopN        = "TopN"
	TypePartialSort = "PartialSort"
	TypePartialTopN = "PartialTopN"
	TypeLimit       = "Limit"
	TypeProj        = "Projection"
	TypeDistinct    = "Distinct"
	TypeAgg         = "Aggregation"
	TypeSel         = "Selection"
	TypeArgument    = "Argument"
	TypeNodeScan    = "NodeScan"
)

// Plan is the description of an execution flow.
// It is created by the plan builder, then rewritten by the logical
// optimizer rule by rule before physical planning picks it up.
type Plan interface {
	// Get the ID.
	ID() int

	// TP gets the plan type.
	TP() string

	// ExplainID gets the ID in explain statement.
	ExplainID() string

	// ExplainInfo returns operator information to be explained.
	ExplainInfo() string

	// Context gets the planning context the plan was built under.
	Context() *PlanContext
}

// LogicalPlan is a tree of logical operators. Nodes are never mutated once
// constructed; a rewrite that needs a different node builds a new one and
// leaves the original tree intact.
type LogicalPlan interface {
	Plan

	// Children gets all the children.
	Children() []LogicalPlan

	// SetChildren sets the children for the plan.
	SetChildren(...LogicalPlan)

	// Clone makes a shallow copy of the operator carrying the same
	// attributes and child references under a fresh plan ID, so a rewrite
	// can re-point children without touching the original node.
	Clone() LogicalPlan
}

// PlanContext carries the state shared by every node of one plan tree,
// currently just the plan ID allocator.
type PlanContext struct {
	planID int
}

// NewPlanContext creates a PlanContext.
func NewPlanContext() *PlanContext {
	return &PlanContext{}
}

// AllocPlanID allocates the next plan ID.
func (ctx *PlanContext) AllocPlanID() int {
	ctx.planID++
	return ctx.planID
}

type basePlan struct {
	tp  string
	id  int
	ctx *PlanContext
}

func newBasePlan(ctx *PlanContext, tp string) basePlan {
	return basePlan{tp: tp, id: ctx.AllocPlanID(), ctx: ctx}
}

// ID implements Plan ID interface.
func (p *basePlan) ID() int {
	return p.id
}

// TP implements Plan TP interface.
func (p *basePlan) TP() string {
	return p.tp
}

// ExplainID implements Plan ExplainID interface.
func (p *basePlan) ExplainID() string {
	return fmt.Sprintf("%s_%d", p.tp, p.id)
}

// ExplainInfo implements Plan interface.
func (p *basePlan) ExplainInfo() string {
	return "N/A"
}

// Context implements Plan Context interface.
func (p *basePlan) Context() *PlanContext {
	return p.ctx
}

type baseLogicalPlan struct {
	basePlan

	children []LogicalPlan
}

func newBaseLogicalPlan(ctx *PlanContext, tp string) baseLogicalPlan {
	return baseLogicalPlan{basePlan: newBasePlan(ctx, tp)}
}

// Children implements LogicalPlan Children interface.
func (p *baseLogicalPlan) Children() []LogicalPlan {
	return p.children
}

// SetChildren implements LogicalPlan SetChildren interface.
func (p *baseLogicalPlan) SetChildren(children ...LogicalPlan) {
	p.children = children
}

// cloneBase copies the embedded base under a fresh plan ID together with
// the current child references.
func (p *baseLogicalPlan) cloneBase() baseLogicalPlan {
	np := newBaseLogicalPlan(p.ctx, p.tp)
	np.children = slices.Clone(p.children)
	return np
}
