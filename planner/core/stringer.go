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
	"strings"
)

// ToString explains a Plan, returns description string.
// Children come first, so the string reads in execution order,
// e.g. "NodeScan(n)->BFSExpand(n->m, depth:d, hops:[1,3])->Sort(d)".
func ToString(p Plan) string {
	strs := toString(p, nil)
	return strings.Join(strs, "->")
}

func toString(in Plan, strs []string) []string {
	if lp, ok := in.(LogicalPlan); ok {
		for _, c := range lp.Children() {
			strs = toString(c, strs)
		}
	}

	var str string
	switch x := in.(type) {
	case *LogicalDistinct, *LogicalArgument:
		str = x.TP()
	default:
		str = in.TP() + "(" + in.ExplainInfo() + ")"
	}
	return append(strs, str)
}
