// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
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

package asm_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type C = []vm.Cell

var asmTests = [...]struct {
	name string
	src  string
	want C
}{
	{"empty", "( nothing here )", C{}},
	{"halt", "halt", C{99}},
	{"alias", "hlt jt #1 #0 jf 3 4", C{99, 1105, 1, 0, 6, 3, 4}},
	{"modes", "add 1 #2 rb+3", C{21001, 1, 2, 3}},
	{"relative", "arb #100 in rb+2 out rb-1 out rb halt",
		C{109, 100, 203, 2, 204, -1, 204, 0, 99}},
	{"labels", `
	.equ TEN 10
:start	in n
	add n #TEN n
	out n
	jnz #1 #start
:n	.dat 0`,
		C{3, 11, 1001, 11, 10, 11, 4, 11, 1105, 1, 0, 0}},
	{"org", "out #'A' .org 4 .dat 0x10 .dat -1 halt", C{104, 65, 0, 0, 16, -1, 99}},
	{"raw data", "1 2 3 '\\n' .equ K 7 K .dat K", C{1, 2, 3, 10, 7, 7}},
}

func TestAssemble(t *testing.T) {
	for _, test := range asmTests {
		t.Run(test.name, func(t *testing.T) {
			img, err := asm.Assemble(test.name, strings.NewReader(test.src))
			require.NoError(t, err)
			assert.Equal(t, test.want, img)
		})
	}
}

func TestAssemble_run(t *testing.T) {
	src := `
	( add the input to ten and output the result )
	.equ TEN 10
	in n
	add n #TEN n
	out n
	halt
:n	.dat 0
`
	img, err := asm.Assemble("run", strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, C{3, 9, 1001, 9, 10, 9, 4, 9, 99, 0}, img)

	i, err := vm.New(img, vm.Input(5))
	require.NoError(t, err)
	require.NoError(t, i.Run())
	v, ok := i.NextOutput()
	assert.True(t, ok)
	assert.Equal(t, vm.Cell(15), v)
}

var errTests = [...]struct {
	src string
	msg string
}{
	{"foo", "test:1:1: Unknown instruction foo"},
	{"in #3", "test:1:4: Immediate mode destination operand #3"},
	{"jnz #1 #nowhere", "test:1:8: Undefined label nowhere"},
	{"add 1 2", "Missing operand for add"},
	{"add 1 :x", "test:1:7: Missing operand for add before :x"},
	{":1x", `test:1:1: Invalid label name "1x"`},
	{":a\n:a", "test:2:1: Label redefinition: a"},
	{".equ a 1 :a", "Label redefinition: a, previously defined as a constant"},
	{"out a .equ a 1", "test:1:12: .equ: redefinition of a"},
	{".org 5 .org 2", "test:1:13: .org: cannot move backwards to 2"},
	{".org x", ".org: expected integer or constant, got x"},
	{".foo", "test:1:1: Unknown directive: .foo"},
	{"out rb+zz", "test:1:5: Invalid relative offset rb+zz"},
	{".equ 1 2", ".equ: expected identifier, got 1"},
	{".equ x y", ".equ: expected integer or constant, got y"},
	{"out 'ab'", "Invalid character literal 'ab'"},
	{"out a+b", "Invalid value a+b"},
	{"1 2 K .equ K 3", "test:1:5: Unknown instruction K"},
	{"out #1 #2", "test:1:8: Unknown instruction #2"},
}

func TestAssemble_errors(t *testing.T) {
	for _, test := range errTests {
		_, err := asm.Assemble("test", strings.NewReader(test.src))
		var e asm.ErrAsm
		if assert.ErrorAs(t, err, &e, test.src) {
			assert.ErrorContains(t, err, test.msg, test.src)
		}
	}
}

// errors are reported in source order and capped
func TestAssemble_manyErrors(t *testing.T) {
	src := strings.Repeat("foo\n", 20)
	_, err := asm.Assemble("test", strings.NewReader(src))
	var e asm.ErrAsm
	require.ErrorAs(t, err, &e)
	require.Len(t, e, 10)
	for n := range e {
		assert.Equal(t, n+1, e[n].Pos.Line)
	}

	_, err = asm.Assemble("test", strings.NewReader("jnz #1 #b\nfoo\njz #0 #a"))
	require.ErrorAs(t, err, &e)
	require.Len(t, e, 3)
	assert.Equal(t, "test:1:8: Undefined label b\ntest:2:1: Unknown instruction foo\ntest:3:7: Undefined label a", e.Error())
}

func TestDisassembleAll(t *testing.T) {
	var buf bytes.Buffer
	err := asm.DisassembleAll(C{1002, 4, 3, 4, 33, 109, -3, 22201, 0, -1, 2, 99, 103, 1, 2}, 100, &buf)
	require.NoError(t, err)
	assert.Equal(t, `       100	mul 4 #3 4
       104	.dat 33
       105	arb #-3
       107	add rb rb-1 rb+2
       111	halt
       112	.dat 103
       113	.dat 1
       114	.dat 2
`, buf.String())
}

func disassemble(t *testing.T, m C) string {
	t.Helper()
	var buf bytes.Buffer
	for pc := 0; pc < len(m); {
		var err error
		pc, err = asm.Disassemble(m, pc, &buf)
		require.NoError(t, err)
		buf.WriteByte('\n')
	}
	return buf.String()
}

func TestDisassemble_roundTrip(t *testing.T) {
	progs := []C{
		{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99},
		{3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26,
			27, 4, 27, 1001, 28, -1, 28, 1005, 28, 6, 99, 0, 0, 5},
		{1099, 3, 103, 1, 2, 3, -5, 0, 21101, 1, 2, 3, 204, -7, 9, 100000, 1, 2},
		{100001, 0, 0, 0, 204, math.MinInt64, 209, math.MaxInt64, 99},
		{},
	}
	for _, p := range progs {
		src := disassemble(t, p)
		img, err := asm.Assemble("roundtrip", strings.NewReader(src))
		require.NoError(t, err, src)
		assert.Equal(t, p, img, src)
	}
}

func TestDisassemble_minOffset(t *testing.T) {
	assert.Equal(t, "out rb-9223372036854775808\narb rb-1\n", disassemble(t, C{204, math.MinInt64, 209, -1}))
	img, err := asm.Assemble("min", strings.NewReader("out rb-9223372036854775808 out rb-0x10"))
	require.NoError(t, err)
	assert.Equal(t, C{204, math.MinInt64, 204, -16}, img)
}

func TestDisassemble_writeError(t *testing.T) {
	w := &failWriter{}
	_, err := asm.Disassemble(C{99}, 0, w)
	assert.ErrorContains(t, err, "write failed")
	assert.Error(t, asm.DisassembleAll(C{99}, 0, w))
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, assert.AnError
}
