// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ArgumentType is the type of one argument of an operator, as far as dispatch is concerned.
type ArgumentType int

const (
	OtherArg ArgumentType = iota
	TensorArg
	OptionalTensorArg
	TensorListArg
	OptionalTensorListArg
	ScalarArg
	IntArg
	FloatArg
	BoolArg
	StringArg
)

var argumentTypeNames = map[ArgumentType]string{
	OtherArg:              "Any",
	TensorArg:             "Tensor",
	OptionalTensorArg:     "Tensor?",
	TensorListArg:         "Tensor[]",
	OptionalTensorListArg: "Tensor?[]",
	ScalarArg:             "Scalar",
	IntArg:                "int",
	FloatArg:              "float",
	BoolArg:               "bool",
	StringArg:             "str",
}

// String implements fmt.Stringer.
func (t ArgumentType) String() string {
	if name, found := argumentTypeNames[t]; found {
		return name
	}
	return fmt.Sprintf("ArgumentType(%d)", int(t))
}

// IsDispatchRelevant returns whether arguments of this type carry dispatch keys.
func (t ArgumentType) IsDispatchRelevant() bool {
	switch t {
	case TensorArg, OptionalTensorArg, TensorListArg, OptionalTensorListArg:
		return true
	default:
		return false
	}
}

// Argument of a FunctionSchema.
type Argument struct {
	Name string
	Type ArgumentType

	// TypeName is the type as written in the schema, e.g. "Tensor(a!)" or "int[2]". Informative only.
	TypeName string

	// Default value as written in the schema, if any.
	Default string

	// KeywordOnly is set for arguments after the "*" marker.
	KeywordOnly bool
}

// String implements fmt.Stringer.
func (a Argument) String() string {
	typeName := a.TypeName
	if typeName == "" {
		typeName = a.Type.String()
	}
	s := typeName + " " + a.Name
	if a.Default != "" {
		s += "=" + a.Default
	}
	return s
}

// OperatorName identifies an operator: a name and an overload name (which may be empty).
type OperatorName struct {
	Name, OverloadName string
}

// String implements fmt.Stringer. E.g.: "aten::add.Tensor".
func (n OperatorName) String() string {
	if n.OverloadName == "" {
		return n.Name
	}
	return n.Name + "." + n.OverloadName
}

// ParseOperatorName splits "name.overload" into an OperatorName.
func ParseOperatorName(s string) OperatorName {
	s = strings.TrimSpace(s)
	if idx := strings.LastIndex(s, "."); idx > strings.LastIndex(s, ":") {
		return OperatorName{Name: s[:idx], OverloadName: s[idx+1:]}
	}
	return OperatorName{Name: s}
}

// FunctionSchema describes the arguments of an operator.
// It is immutable once an operator is registered with it.
type FunctionSchema struct {
	OperatorName
	Arguments []Argument

	// Returns is the return type(s) as written in the schema. Informative only.
	Returns string
}

// NumArguments returns the number of arguments.
func (s *FunctionSchema) NumArguments() int {
	return len(s.Arguments)
}

// String implements fmt.Stringer, using the same format accepted by ParseSchema.
func (s *FunctionSchema) String() string {
	var parts []string
	keywordOnly := false
	for _, arg := range s.Arguments {
		if arg.KeywordOnly && !keywordOnly {
			parts = append(parts, "*")
			keywordOnly = true
		}
		parts = append(parts, arg.String())
	}
	out := s.OperatorName.String() + "(" + strings.Join(parts, ", ") + ")"
	if s.Returns != "" {
		out += " -> " + s.Returns
	}
	return out
}

// ParseSchema parses a schema in the usual textual format:
//
//	ns::name.overload(Tensor self, Tensor? weight, Tensor[] others, *, Scalar alpha=1) -> Tensor
//
// Only the structure needed for dispatch is interpreted: argument names, whether they are tensors, optional
// tensors or tensor lists, defaults and the keyword-only marker.
func ParseSchema(schema string) (*FunctionSchema, error) {
	schema = strings.TrimSpace(schema)
	open := strings.Index(schema, "(")
	if open <= 0 {
		return nil, errors.Errorf("schema %q: missing operator name or argument list", schema)
	}
	closeIdx := matchingParen(schema, open)
	if closeIdx < 0 {
		return nil, errors.Errorf("schema %q: unbalanced parenthesis", schema)
	}
	s := &FunctionSchema{OperatorName: ParseOperatorName(schema[:open])}
	if s.Name == "" {
		return nil, errors.Errorf("schema %q: empty operator name", schema)
	}
	rest := strings.TrimSpace(schema[closeIdx+1:])
	if rest != "" {
		if !strings.HasPrefix(rest, "->") {
			return nil, errors.Errorf("schema %q: unexpected %q after arguments", schema, rest)
		}
		s.Returns = strings.TrimSpace(rest[2:])
	}

	keywordOnly := false
	for _, field := range splitTopLevel(schema[open+1 : closeIdx]) {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if field == "*" {
			keywordOnly = true
			continue
		}
		arg, err := parseArgument(field)
		if err != nil {
			return nil, errors.WithMessagef(err, "schema %q", schema)
		}
		arg.KeywordOnly = keywordOnly
		s.Arguments = append(s.Arguments, arg)
	}
	return s, nil
}

// MustParseSchema is like ParseSchema, but panics on error. Meant for static schemas.
func MustParseSchema(schema string) *FunctionSchema {
	s, err := ParseSchema(schema)
	if err != nil {
		panic(err)
	}
	return s
}

func parseArgument(field string) (Argument, error) {
	var arg Argument
	if idx := strings.Index(field, "="); idx >= 0 {
		arg.Default = strings.TrimSpace(field[idx+1:])
		field = strings.TrimSpace(field[:idx])
	}
	idx := strings.LastIndexAny(field, " \t")
	if idx < 0 {
		return arg, errors.Errorf("argument %q: expected \"<type> <name>\"", field)
	}
	arg.TypeName = strings.TrimSpace(field[:idx])
	arg.Name = strings.TrimSpace(field[idx+1:])
	arg.Type = classifyType(arg.TypeName)
	return arg, nil
}

// classifyType maps a schema type to an ArgumentType, ignoring alias annotations like "Tensor(a!)".
func classifyType(typeName string) ArgumentType {
	base := typeName
	if idx := strings.Index(base, "("); idx >= 0 {
		if closeIdx := strings.Index(base, ")"); closeIdx > idx {
			base = base[:idx] + base[closeIdx+1:]
		}
	}
	switch base {
	case "Tensor":
		return TensorArg
	case "Tensor?":
		return OptionalTensorArg
	case "Tensor[]":
		return TensorListArg
	case "Tensor?[]":
		return OptionalTensorListArg
	case "Scalar", "Scalar?":
		return ScalarArg
	case "int", "SymInt", "int?":
		return IntArg
	case "float", "float?":
		return FloatArg
	case "bool", "bool?":
		return BoolArg
	case "str", "str?":
		return StringArg
	default:
		return OtherArg
	}
}

// matchingParen returns the position of the parenthesis closing the one at open, or -1.
func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits s on commas not nested in (), [] or {}.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
