// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchema(t *testing.T) {
	s, err := ParseSchema("aten::add.Tensor(Tensor self, Tensor other, *, Scalar alpha=1) -> Tensor")
	require.NoError(t, err)
	assert.Equal(t, OperatorName{Name: "aten::add", OverloadName: "Tensor"}, s.OperatorName)
	assert.Equal(t, "aten::add.Tensor", s.OperatorName.String())
	require.Equal(t, 3, s.NumArguments())
	assert.Equal(t, TensorArg, s.Arguments[0].Type)
	assert.Equal(t, "self", s.Arguments[0].Name)
	assert.Equal(t, ScalarArg, s.Arguments[2].Type)
	assert.Equal(t, "1", s.Arguments[2].Default)
	assert.True(t, s.Arguments[2].KeywordOnly)
	assert.False(t, s.Arguments[1].KeywordOnly)
	assert.Equal(t, "Tensor", s.Returns)
	assert.Equal(t, "aten::add.Tensor(Tensor self, Tensor other, *, Scalar alpha=1) -> Tensor", s.String())

	s, err = ParseSchema("aten::cat(Tensor[] tensors, int dim=0) -> Tensor")
	require.NoError(t, err)
	assert.Equal(t, "", s.OverloadName)
	assert.Equal(t, TensorListArg, s.Arguments[0].Type)
	assert.Equal(t, IntArg, s.Arguments[1].Type)

	// Alias annotations and nested brackets.
	s, err = ParseSchema("aten::add_.Tensor(Tensor(a!) self, Tensor? other, Tensor?[] indices, int[2] size=[1, 1]) -> Tensor(a!)")
	require.NoError(t, err)
	require.Equal(t, 4, s.NumArguments())
	assert.Equal(t, TensorArg, s.Arguments[0].Type)
	assert.Equal(t, "Tensor(a!)", s.Arguments[0].TypeName)
	assert.Equal(t, OptionalTensorArg, s.Arguments[1].Type)
	assert.Equal(t, OptionalTensorListArg, s.Arguments[2].Type)
	assert.Equal(t, OtherArg, s.Arguments[3].Type)
	assert.Equal(t, "[1, 1]", s.Arguments[3].Default)

	s, err = ParseSchema("test::noargs()")
	require.NoError(t, err)
	assert.Equal(t, 0, s.NumArguments())
	assert.Equal(t, "", s.Returns)
}

func TestParseSchemaErrors(t *testing.T) {
	for _, schema := range []string{
		"",
		"(Tensor x)",
		"test::f(Tensor x",
		"test::f(Tensor) -> Tensor",
		"test::f(Tensor x) Tensor",
	} {
		_, err := ParseSchema(schema)
		assert.Error(t, err, "ParseSchema(%q)", schema)
	}
	require.Panics(t, func() { MustParseSchema("bad") })
}

func TestMakeBitsetForDispatchArgs(t *testing.T) {
	s := MustParseSchema("test::f(Tensor a, int n, Tensor? b, Tensor[] list, Tensor?[] opt) -> Tensor")
	bitset := MakeBitsetForDispatchArgs(s)
	// Argument i of 5 sets bit 4-i: a->4, b->2, list->1, opt->0.
	assert.Equal(t, "10111", bitset.String())
	assert.Equal(t, 4, bitset.Count())
	assert.True(t, bitset.Get(4))
	assert.False(t, bitset.Get(3))

	var reversed []int
	bitset.ForEachReversed(func(idx int) { reversed = append(reversed, idx) })
	assert.Equal(t, []int{0, 1, 2, 4}, reversed)

	assert.Equal(t, "0", MakeBitsetForDispatchArgs(MustParseSchema("test::g(int x, float y)")).String())

	// Exactly MaxArguments is fine, one more panics.
	args := make([]string, MaxArguments+1)
	for i := range args {
		args[i] = fmt.Sprintf("Tensor x%d", i)
	}
	wide := MustParseSchema("test::wide(" + strings.Join(args[:MaxArguments], ", ") + ")")
	assert.Equal(t, MaxArguments, MakeBitsetForDispatchArgs(wide).Count())
	tooWide := MustParseSchema("test::wide(" + strings.Join(args, ", ") + ")")
	require.Panics(t, func() { MakeBitsetForDispatchArgs(tooWide) })
}
