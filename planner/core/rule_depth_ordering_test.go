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
	"testing"

	"github.com/hopgraph/hop/expression"
	"github.com/hopgraph/hop/planner/util"
	"github.com/stretchr/testify/require"
)

func asc(name string) *util.ByItems {
	return &util.ByItems{Expr: expression.NewColumn(name)}
}

func desc(name string) *util.ByItems {
	return &util.ByItems{Expr: expression.NewColumn(name), Desc: true}
}

func bfsExpand(ctx *PlanContext, depthVar string) *LogicalBFSExpand {
	return LogicalBFSExpand{From: "n", To: "m", DepthVar: depthVar, MinHops: 1, MaxHops: 3}.Init(ctx)
}

func rename(ctx *PlanContext, from, to string) *LogicalProjection {
	return LogicalProjection{
		Exprs:       []expression.Expression{expression.NewColumn(from)},
		OutputNames: []string{to},
	}.Init(ctx)
}

// chain links plans parent-first and returns the root.
func chain(plans ...LogicalPlan) LogicalPlan {
	for i := 0; i+1 < len(plans); i++ {
		plans[i].SetChildren(plans[i+1])
	}
	return plans[0]
}

func applyDepthOrdering(t *testing.T, p LogicalPlan) LogicalPlan {
	t.Helper()
	s := &depthOrderingEliminator{}
	np, err := s.optimize(context.Background(), p)
	require.NoError(t, err)
	return np
}

func TestEliminateSortOverExpand(t *testing.T) {
	ctx := NewPlanContext()
	p := chain(
		LogicalSort{ByItems: []*util.ByItems{asc("d")}}.Init(ctx),
		bfsExpand(ctx, "d"),
		LogicalArgument{}.Init(ctx),
	)
	np := applyDepthOrdering(t, p)
	require.Equal(t, "Argument->BFSExpand(n->m, depth:d, hops:[1,3])", ToString(np))
	// The surviving subtree is reused, not rebuilt.
	require.Same(t, p.Children()[0], np)
}

func TestTopNBecomesLimit(t *testing.T) {
	ctx := NewPlanContext()
	p := chain(
		LogicalTopN{ByItems: []*util.ByItems{asc("d")}, Count: 42}.Init(ctx),
		bfsExpand(ctx, "d"),
		LogicalArgument{}.Init(ctx),
	)
	np := applyDepthOrdering(t, p)
	require.Equal(t, "Argument->BFSExpand(n->m, depth:d, hops:[1,3])->Limit(offset:0, count:42)", ToString(np))
}

func TestMultiColumnSortSplits(t *testing.T) {
	ctx := NewPlanContext()
	p := chain(
		LogicalSort{ByItems: []*util.ByItems{asc("d"), asc("x")}}.Init(ctx),
		bfsExpand(ctx, "d"),
		LogicalArgument{}.Init(ctx),
	)
	np := applyDepthOrdering(t, p)
	require.Equal(t, "Argument->BFSExpand(n->m, depth:d, hops:[1,3])->PartialSort(d|x)", ToString(np))
}

func TestMultiColumnTopNSplits(t *testing.T) {
	ctx := NewPlanContext()
	p := chain(
		LogicalTopN{ByItems: []*util.ByItems{asc("d"), desc("x")}, Offset: 5, Count: 42}.Init(ctx),
		bfsExpand(ctx, "d"),
		LogicalArgument{}.Init(ctx),
	)
	np := applyDepthOrdering(t, p)
	require.Equal(t,
		"Argument->BFSExpand(n->m, depth:d, hops:[1,3])->PartialTopN(d|x true, offset:5, count:42)",
		ToString(np))
}

func TestNonMatchingSortsUntouched(t *testing.T) {
	ctx := NewPlanContext()
	computed := &util.ByItems{Expr: expression.NewFunction("abs", expression.NewColumn("d"))}
	tests := []struct {
		name    string
		byItems []*util.ByItems
	}{
		{"descending depth", []*util.ByItems{desc("d")}},
		{"depth not leading", []*util.ByItems{asc("x"), asc("d")}},
		{"computed leading item", []*util.ByItems{computed}},
		{"unrelated column", []*util.ByItems{asc("y")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := chain(
				LogicalSort{ByItems: tt.byItems}.Init(ctx),
				bfsExpand(ctx, "d"),
				LogicalArgument{}.Init(ctx),
			)
			np := applyDepthOrdering(t, p)
			require.Same(t, p, np)
		})
	}
}

func TestNoExpandNoRewrite(t *testing.T) {
	ctx := NewPlanContext()
	p := chain(
		LogicalSort{ByItems: []*util.ByItems{asc("d")}}.Init(ctx),
		LogicalNodeScan{Var: "n"}.Init(ctx),
	)
	np := applyDepthOrdering(t, p)
	require.Same(t, p, np)
}

func TestNestedExpandsDeepestWins(t *testing.T) {
	ctx := NewPlanContext()
	build := func(byItems ...*util.ByItems) LogicalPlan {
		return chain(
			LogicalSort{ByItems: byItems}.Init(ctx),
			LogicalBFSExpand{From: "m", To: "o", DepthVar: "d2", MinHops: 1, MaxHops: 3}.Init(ctx),
			bfsExpand(ctx, "d1"),
			LogicalArgument{}.Init(ctx),
		)
	}

	// The deepest expansion's depth column is still globally ordered.
	np := applyDepthOrdering(t, build(asc("d1"), asc("x")))
	require.Equal(t,
		"Argument->BFSExpand(n->m, depth:d1, hops:[1,3])->BFSExpand(m->o, depth:d2, hops:[1,3])->PartialSort(d1|x)",
		ToString(np))

	// The shallower expansion's depth groups are interleaved by the one
	// below it, so sorting by d2 must stay.
	p := build(asc("d2"), asc("x"))
	require.Same(t, p, applyDepthOrdering(t, p))
}

func TestRenameChainFollowed(t *testing.T) {
	ctx := NewPlanContext()
	p := chain(
		LogicalSort{ByItems: []*util.ByItems{asc("depth2")}}.Init(ctx),
		rename(ctx, "depth1", "depth2"),
		rename(ctx, "d", "depth1"),
		bfsExpand(ctx, "d"),
		LogicalArgument{}.Init(ctx),
	)
	np := applyDepthOrdering(t, p)
	require.Equal(t,
		"Argument->BFSExpand(n->m, depth:d, hops:[1,3])->Projection(d->depth1)->Projection(depth1->depth2)",
		ToString(np))
}

func TestComputedAliasBlocksRewrite(t *testing.T) {
	ctx := NewPlanContext()
	proj := LogicalProjection{
		Exprs:       []expression.Expression{expression.NewFunction("plus", expression.NewColumn("d"), &expression.Constant{Value: 1})},
		OutputNames: []string{"depth1"},
	}.Init(ctx)
	p := chain(
		LogicalSort{ByItems: []*util.ByItems{asc("depth1")}}.Init(ctx),
		proj,
		bfsExpand(ctx, "d"),
		LogicalArgument{}.Init(ctx),
	)
	np := applyDepthOrdering(t, p)
	require.Same(t, p, np)
}

func TestUnrelatedProjectionIsTransparent(t *testing.T) {
	ctx := NewPlanContext()
	p := chain(
		LogicalSort{ByItems: []*util.ByItems{asc("d")}}.Init(ctx),
		rename(ctx, "m", "end"),
		bfsExpand(ctx, "d"),
		LogicalArgument{}.Init(ctx),
	)
	np := applyDepthOrdering(t, p)
	require.Equal(t,
		"Argument->BFSExpand(n->m, depth:d, hops:[1,3])->Projection(m->end)",
		ToString(np))
}

func TestBlockingOperators(t *testing.T) {
	ctx := NewPlanContext()
	blockers := []LogicalPlan{
		LogicalDistinct{}.Init(ctx),
		LogicalAggregation{GroupByItems: []expression.Expression{expression.NewColumn("m")}}.Init(ctx),
		LogicalSort{ByItems: []*util.ByItems{asc("x")}}.Init(ctx),
		LogicalTopN{ByItems: []*util.ByItems{asc("x")}, Count: 7}.Init(ctx),
		LogicalPartialSort{AlreadySorted: []*util.ByItems{asc("x")}, ToSort: []*util.ByItems{asc("y")}}.Init(ctx),
		LogicalLimit{Count: 7}.Init(ctx),
		LogicalSelection{Conditions: []expression.Expression{expression.NewColumn("ok")}}.Init(ctx),
	}
	for _, blocker := range blockers {
		t.Run(blocker.TP(), func(t *testing.T) {
			p := chain(
				LogicalSort{ByItems: []*util.ByItems{asc("d")}}.Init(ctx),
				blocker,
				bfsExpand(ctx, "d"),
				LogicalArgument{}.Init(ctx),
			)
			np := applyDepthOrdering(t, p)
			require.Same(t, p, np)
		})
	}
}

func TestAnchorAboveBlockerIsFinal(t *testing.T) {
	ctx := NewPlanContext()
	// The expansion sits above the Distinct, so its guarantee holds at the
	// sort even though the descent cannot go further down.
	p := chain(
		LogicalSort{ByItems: []*util.ByItems{asc("d")}}.Init(ctx),
		bfsExpand(ctx, "d"),
		LogicalDistinct{}.Init(ctx),
		LogicalNodeScan{Var: "n"}.Init(ctx),
	)
	np := applyDepthOrdering(t, p)
	require.Equal(t, "NodeScan(n)->Distinct->BFSExpand(n->m, depth:d, hops:[1,3])", ToString(np))
}

func TestRewriteIsPure(t *testing.T) {
	ctx := NewPlanContext()
	sort := LogicalSort{ByItems: []*util.ByItems{asc("d"), asc("x")}}.Init(ctx)
	p := chain(
		sort,
		bfsExpand(ctx, "d"),
		LogicalArgument{}.Init(ctx),
	)
	before := ToString(p)
	applyDepthOrdering(t, p)
	require.Equal(t, before, ToString(p))
	require.Len(t, sort.ByItems, 2)
}

func TestRewriteIsIdempotent(t *testing.T) {
	ctx := NewPlanContext()
	p := chain(
		LogicalSort{ByItems: []*util.ByItems{asc("d"), asc("x")}}.Init(ctx),
		bfsExpand(ctx, "d"),
		LogicalArgument{}.Init(ctx),
	)
	np := applyDepthOrdering(t, p)
	np2 := applyDepthOrdering(t, np)
	require.Same(t, np, np2)
}

func TestNestedSortsBothEliminated(t *testing.T) {
	ctx := NewPlanContext()
	// Children are rewritten first, which exposes the expansion to the
	// outer sort once the inner one is gone.
	p := chain(
		LogicalSort{ByItems: []*util.ByItems{asc("d")}}.Init(ctx),
		LogicalSort{ByItems: []*util.ByItems{asc("d")}}.Init(ctx),
		bfsExpand(ctx, "d"),
		LogicalArgument{}.Init(ctx),
	)
	np := applyDepthOrdering(t, p)
	require.Equal(t, "Argument->BFSExpand(n->m, depth:d, hops:[1,3])", ToString(np))
}
