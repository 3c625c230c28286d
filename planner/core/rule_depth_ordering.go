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

	"github.com/hopgraph/hop/expression"
	"github.com/hopgraph/hop/planner/util"
)

// depthOrderingEliminator removes or weakens Sort/TopN operators whose
// leading sort column is the depth column of a breadth-first expansion
// below them. BFSExpand emits rows in non-decreasing depth order, so a
// later ascending sort on that column is partially or fully redundant:
//
//	Sort(d)           over BFSExpand(depth:d)  =>  BFSExpand(depth:d)
//	TopN(d, count:n)  over BFSExpand(depth:d)  =>  Limit(count:n)
//	Sort(d, x)        over BFSExpand(depth:d)  =>  PartialSort(d|x)
//	TopN(d, x, n)     over BFSExpand(depth:d)  =>  PartialTopN(d|x, n)
//
// Renaming projections between the sort and the expansion are followed
// through; anything else that could disturb row order blocks the rewrite.
// The rule is deliberately conservative: whenever a shape is not provably
// safe, the plan is left alone.
type depthOrderingEliminator struct {
}

// optimize implements the logicalOptRule interface.
func (s *depthOrderingEliminator) optimize(_ context.Context, p LogicalPlan) (LogicalPlan, error) {
	return s.eliminate(p), nil
}

// eliminate rewrites every qualifying Sort/TopN in the tree, children
// first. It never mutates its input: a node whose children changed is
// cloned before being re-pointed, everything else is reused as is.
func (s *depthOrderingEliminator) eliminate(p LogicalPlan) LogicalPlan {
	children := p.Children()
	newChildren := make([]LogicalPlan, len(children))
	changed := false
	for i, child := range children {
		newChildren[i] = s.eliminate(child)
		if newChildren[i] != child {
			changed = true
		}
	}
	if changed {
		p = p.Clone()
		p.SetChildren(newChildren...)
	}

	switch x := p.(type) {
	case *LogicalSort:
		return s.eliminateSort(x)
	case *LogicalTopN:
		return s.eliminateTopN(x)
	}
	return p
}

func (s *depthOrderingEliminator) eliminateSort(sort *LogicalSort) LogicalPlan {
	child := sort.Children()[0]
	if !depthOrderSatisfied(child, sort.ByItems) {
		return sort
	}
	if len(sort.ByItems) == 1 {
		// The expansion already emits rows in the requested order.
		return child
	}
	partial := LogicalPartialSort{
		AlreadySorted: sort.ByItems[:1],
		ToSort:        sort.ByItems[1:],
	}.Init(sort.Context())
	partial.SetChildren(child)
	return partial
}

func (s *depthOrderingEliminator) eliminateTopN(topn *LogicalTopN) LogicalPlan {
	child := topn.Children()[0]
	if !depthOrderSatisfied(child, topn.ByItems) {
		return topn
	}
	if len(topn.ByItems) == 1 {
		// Ordering work is redundant but the row selection is not.
		limit := LogicalLimit{Offset: topn.Offset, Count: topn.Count}.Init(topn.Context())
		limit.SetChildren(child)
		return limit
	}
	partial := LogicalPartialTopN{
		AlreadySorted: topn.ByItems[:1],
		ToSort:        topn.ByItems[1:],
		Offset:        topn.Offset,
		Count:         topn.Count,
	}.Init(topn.Context())
	partial.SetChildren(child)
	return partial
}

// depthOrderSatisfied reports whether the leading sort item is already
// satisfied by a breadth-first expansion in child. Only the first item can
// ever be subsumed: it alone determines the provable prefix order of the
// input, and only ascending matches the expansion's non-decreasing
// guarantee.
func depthOrderSatisfied(child LogicalPlan, byItems []*util.ByItems) bool {
	if len(byItems) == 0 {
		return false
	}
	lead := byItems[0]
	if lead.Desc {
		return false
	}
	col, ok := lead.Expr.(*expression.Column)
	if !ok {
		return false
	}
	anchor := findDepthAnchor(child, col.Name)
	return anchor != nil && anchor.expand.DepthVar == anchor.col
}

// depthAnchor ties a sort column to the expansion that could prove its
// order: expand is the deepest reachable BFSExpand and col is the name the
// sort column has at that point, after undoing any renames on the way.
type depthAnchor struct {
	expand *LogicalBFSExpand
	col    string
}

// findDepthAnchor descends from the child of a Sort/TopN one child at a
// time, looking for the deepest BFSExpand reachable through renaming
// projections and other expansions.
//
// Only the deepest expansion qualifies: stacking another expansion on top
// of one interleaves its depth groups, so a shallower expansion's variable
// stops being globally ordered once a deeper expansion sits beneath it.
// Recording every expansion and letting the last one win makes the caller
// reject exactly those cases, because the tracked column no longer equals
// the final expansion's depth variable.
//
// Distinct, Aggregation, nested sorts, Limit and any operator this rule
// does not understand may reorder rows, so they end the descent: whatever
// candidate was recorded above them is final, and nothing below them is
// considered.
func findDepthAnchor(p LogicalPlan, col string) *depthAnchor {
	var anchor *depthAnchor
	for {
		switch x := p.(type) {
		case *LogicalProjection:
			resolved, ok := resolveColumnAlias(x, col)
			if !ok {
				// The column is computed, its provenance is unknowable.
				return nil
			}
			col = resolved
		case *LogicalBFSExpand:
			anchor = &depthAnchor{expand: x, col: col}
		default:
			return anchor
		}
		if len(p.Children()) == 0 {
			return anchor
		}
		p = p.Children()[0]
	}
}

// resolveColumnAlias maps col through proj, returning the name the value
// had below the projection. Only a bare column reference is a transparent
// rename; any other expression hides where the value came from. A
// projection that does not mention col passes the name through unchanged.
func resolveColumnAlias(proj *LogicalProjection, col string) (string, bool) {
	for i, name := range proj.OutputNames {
		if name != col {
			continue
		}
		if ref, ok := proj.Exprs[i].(*expression.Column); ok {
			return ref.Name, true
		}
		return "", false
	}
	return col, true
}

// name implements the logicalOptRule interface.
func (*depthOrderingEliminator) name() string {
	return "depth_ordering_eliminate"
}
