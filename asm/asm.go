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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

// mnemonics and their aliases. The first entry is used by the disassembler.
var mnemonics = map[vm.Opcode][]string{
	vm.OpAdd:         {"add"},
	vm.OpMul:         {"mul"},
	vm.OpIn:          {"in"},
	vm.OpOut:         {"out"},
	vm.OpJumpIfTrue:  {"jnz", "jt"},
	vm.OpJumpIfFalse: {"jz", "jf"},
	vm.OpLessThan:    {"lt"},
	vm.OpEquals:      {"eq"},
	vm.OpAdjustBase:  {"arb"},
	vm.OpHalt:        {"halt", "hlt"},
}

var opcodeIndex = make(map[string]vm.Opcode)

func init() {
	for op, names := range mnemonics {
		for _, n := range names {
			opcodeIndex[n] = op
		}
	}
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting program and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (prog []vm.Cell, err error) {
	p := newParser()
	prog, err = p.Parse(name, r)
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// decode returns the instruction at pc if it can be assembled back to the
// exact same cells.
func decode(m []vm.Cell, pc int) (vm.Instruction, bool) {
	ins, err := vm.Decode(m[pc])
	if err != nil || pc+ins.Size() > len(m) {
		return ins, false
	}
	// mode digits on unused parameters or past the third cannot be expressed
	if vm.Encode(ins.Op, ins.Params()...) != m[pc] {
		return ins, false
	}
	if w := ins.Op.Writes(); w >= 0 && ins.Modes[w] == vm.ModeImmediate {
		return ins, false
	}
	return ins, true
}

func writeOperand(w *ici.ErrWriter, mode vm.Mode, v vm.Cell) {
	switch mode {
	case vm.ModeImmediate:
		w.Write([]byte{'#'})
	case vm.ModeRelative:
		switch {
		case v == 0:
			io.WriteString(w, "rb")
			return
		case v > 0:
			io.WriteString(w, "rb+")
		default:
			io.WriteString(w, "rb-")
			io.WriteString(w, strconv.FormatUint(-uint64(v), 10))
			return
		}
	}
	io.WriteString(w, strconv.FormatInt(int64(v), 10))
}

// Disassemble writes a disassembly of the instruction at position pc in the
// given slice to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Cells that do not hold a valid instruction, or an instruction whose operands
// run past the end of the slice, are written as a .dat directive.
func Disassemble(m []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew := ici.NewErrWriter(w)

	ins, ok := decode(m, pc)
	if !ok {
		io.WriteString(ew, ".dat ")
		io.WriteString(ew, strconv.FormatInt(int64(m[pc]), 10))
		return pc + 1, ew.Err
	}
	io.WriteString(ew, mnemonics[ins.Op][0])
	for n := range ins.Op.Arity() {
		ew.Write([]byte{' '})
		writeOperand(ew, ins.Modes[n], m[pc+1+n])
	}
	return pc + ins.Size(), ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (m[0]). It will return any write error.
func DisassembleAll(m []vm.Cell, base int, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	for pc := 0; pc < len(m); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(m, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
