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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	opcode	asm		operands	description
//	------	---------	--------	------------------------------------------------
//	1	add		a b dst		dst = a + b
//	2	mul		a b dst		dst = a * b
//	3	in		dst		dst = next input value
//	4	out		a		output a
//	5	jnz, jt		a target	jump to target if a != 0
//	6	jz, jf		a target	jump to target if a == 0
//	7	lt		a b dst		dst = 1 if a < b, else 0
//	8	eq		a b dst		dst = 1 if a == b, else 0
//	9	arb		a		add a to the relative base
//	99	halt, hlt			stop the machine
//
// Operands:
//
// The addressing mode of each operand is given by its syntax:
//
//	42	position mode: the value at address 42
//	#42	immediate mode: the value 42
//	rb+3	relative mode: the value at address relative base + 3
//	rb-3	relative mode with a negative offset
//	rb	same as rb+0
//
// In position and immediate modes, the value can be an integer literal
// (anything accepted by strconv.ParseInt with base 0), a character literal, a
// constant or a label. Relative offsets only accept integer literals and
// constants. Destination operands cannot use immediate mode.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	( this is a
//	  multiline comment )
//	(this is not a comment )
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and evaluate to the
// address of the next cell. They can be used before their definition.
//
//	:loop	in  n
//		out n
//		jnz #1 #loop
//	:n	.dat 0
//
// Note that a label named rb cannot be referenced since the token would be
// parsed as a relative operand.
//
// Raw data:
//
// Where the parser is expecting an instruction, integer literals, character
// literals and constants are written as-is to the output.
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named constant
// or character literal.
//
//	.org <value>
//
// Will place the next instruction at the address specified by the given integer
// literal or named constant. Skipped cells are set to 0.
//
//	.dat <value>
//
// Will write the specified integer value, named constant, character literal or
// label address as-is.
//
// Disassembly:
//
// The output of Disassemble is valid assembler input: cells that cannot be
// disassembled to an instruction are written as .dat directives, so that
// assembling a disassembly yields the original cells.
package asm
