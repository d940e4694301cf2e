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

package vm

import "strings"

// Opcode is the operation part of an instruction: the two least significant
// decimal digits of the instruction word.
type Opcode Cell

// Intcode opcodes.
const (
	OpAdd         Opcode = 1
	OpMul         Opcode = 2
	OpIn          Opcode = 3
	OpOut         Opcode = 4
	OpJumpIfTrue  Opcode = 5
	OpJumpIfFalse Opcode = 6
	OpLessThan    Opcode = 7
	OpEquals      Opcode = 8
	OpAdjustBase  Opcode = 9
	OpHalt        Opcode = 99
)

type opInfo struct {
	name   string
	arity  int
	writes int // index of the write parameter, -1 if none
}

var opcodes = map[Opcode]opInfo{
	OpAdd:         {"add", 3, 2},
	OpMul:         {"mul", 3, 2},
	OpIn:          {"in", 1, 0},
	OpOut:         {"out", 1, -1},
	OpJumpIfTrue:  {"jnz", 2, -1},
	OpJumpIfFalse: {"jz", 2, -1},
	OpLessThan:    {"lt", 3, 2},
	OpEquals:      {"eq", 3, 2},
	OpAdjustBase:  {"arb", 1, -1},
	OpHalt:        {"halt", 0, -1},
}

// Valid reports whether op is a known opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Arity returns the number of parameters op consumes.
func (op Opcode) Arity() int {
	return opcodes[op].arity
}

// Writes returns the index of the parameter op writes to, or -1 if op does
// not write to memory.
func (op Opcode) Writes() int {
	if info, ok := opcodes[op]; ok {
		return info.writes
	}
	return -1
}

func (op Opcode) String() string {
	if info, ok := opcodes[op]; ok {
		return info.name
	}
	return "op(" + Cell(op).String() + ")"
}

// Mode is a parameter mode.
type Mode uint8

// Parameter modes.
const (
	ModePosition  Mode = iota // parameter is an address
	ModeImmediate             // parameter is the value
	ModeRelative              // parameter is an offset from the relative base
)

var modeNames = [...]string{"pos", "imm", "rel"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "mode(" + Cell(m).String() + ")"
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Opcode
	Modes [3]Mode
}

// Params returns the modes of the parameters actually consumed by the
// instruction.
func (ins Instruction) Params() []Mode {
	return ins.Modes[:ins.Op.Arity()]
}

// Size returns the number of cells taken by the instruction, including the
// instruction word itself.
func (ins Instruction) Size() int {
	return 1 + ins.Op.Arity()
}

func (ins Instruction) String() string {
	var b strings.Builder
	b.WriteString(ins.Op.String())
	for i, m := range ins.Params() {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteByte(',')
		}
		b.WriteString(m.String())
	}
	return b.String()
}

// Decode decodes an instruction word. The opcode is taken from the two least
// significant decimal digits, the modes of parameters 1, 2 and 3 from the
// hundreds, thousands and ten thousands digits. Missing digits default to
// ModePosition. Digits above the ten thousands are ignored.
func Decode(word Cell) (Instruction, error) {
	var ins Instruction
	if word < 0 {
		return ins, &DecodeError{word, "negative instruction word"}
	}
	ins.Op = Opcode(word % 100)
	if !ins.Op.Valid() {
		return ins, &DecodeError{word, "unknown opcode " + Cell(ins.Op).String()}
	}
	m := word / 100
	for i := range ins.Modes {
		d := Mode(m % 10)
		if d > ModeRelative {
			return ins, &DecodeError{word, "invalid mode " + Cell(d).String() + " for parameter " + Cell(i+1).String()}
		}
		ins.Modes[i] = d
		m /= 10
	}
	return ins, nil
}

// Encode returns the instruction word for op with the given parameter modes.
// Missing modes default to ModePosition.
func Encode(op Opcode, modes ...Mode) Cell {
	w := Cell(op)
	f := Cell(100)
	for _, m := range modes {
		w += Cell(m) * f
		f *= 10
	}
	return w
}
