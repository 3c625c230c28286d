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

package expression

import (
	"fmt"
	"strings"
)

// Expression is a value computed per row by an operator. The planner only
// inspects the structure of expressions, it never evaluates them.
type Expression interface {
	fmt.Stringer

	// Clone copies an expression totally.
	Clone() Expression
}

// Column is a reference to a variable bound earlier in the plan, by name.
type Column struct {
	Name string
}

// NewColumn creates a reference to the variable with the given name.
func NewColumn(name string) *Column {
	return &Column{Name: name}
}

// String implements fmt.Stringer interface.
func (c *Column) String() string {
	return c.Name
}

// Clone implements Expression interface.
func (c *Column) Clone() Expression {
	nc := *c
	return &nc
}

// Constant is a literal value.
type Constant struct {
	Value any
}

// String implements fmt.Stringer interface.
func (c *Constant) String() string {
	return fmt.Sprintf("%v", c.Value)
}

// Clone implements Expression interface.
func (c *Constant) Clone() Expression {
	nc := *c
	return &nc
}

// ScalarFunction is an applied function such as `size(p)` or `n.age + 1`.
type ScalarFunction struct {
	FuncName string
	Args     []Expression
}

// NewFunction creates a ScalarFunction applying name to args.
func NewFunction(name string, args ...Expression) *ScalarFunction {
	return &ScalarFunction{FuncName: name, Args: args}
}

// String implements fmt.Stringer interface.
func (sf *ScalarFunction) String() string {
	args := make([]string, 0, len(sf.Args))
	for _, arg := range sf.Args {
		args = append(args, arg.String())
	}
	return fmt.Sprintf("%s(%s)", sf.FuncName, strings.Join(args, ", "))
}

// Clone implements Expression interface.
func (sf *ScalarFunction) Clone() Expression {
	nf := &ScalarFunction{FuncName: sf.FuncName, Args: make([]Expression, 0, len(sf.Args))}
	for _, arg := range sf.Args {
		nf.Args = append(nf.Args, arg.Clone())
	}
	return nf
}
