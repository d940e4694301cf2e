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
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

func isName(s string) bool {
	for i, r := range s {
		if !(r == '_' || unicode.IsLetter(r) || i > 0 && unicode.IsDigit(r)) {
			return false
		}
	}
	return len(s) > 0
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

// parser states
const (
	stStatement = iota // accept anything
	stOperand          // need instruction operands
	stOrg              // accept integer or const (for .org directive)
	stEqu              // accept integer or const (for .equ value)
	stDat              // accept integer, const or label (for .dat)
)

type parser struct {
	i      []vm.Cell
	pc     int
	size   int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]labelSite
	errs   ErrAsm
	state  int

	// instruction being assembled
	op    vm.Opcode
	opPC  int
	modes []vm.Mode

	cstName string
	cstPos  scanner.Position
}

func newParser() *parser {
	p := new(parser)
	p.i = make([]vm.Cell, 0, 256)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]labelSite)
	return p
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, 256)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.size {
		p.size = p.pc
	}
}

func (p *parser) error(msg string) {
	pos := p.s.Position
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	p.errorAt(pos, msg)
}

func (p *parser) errorAt(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, ErrPos{pos, msg})
	}
}

func (p *parser) useLabel(name string) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{
			// use current position as valid temp position
			labelSite{p.s.Position, -1},
			nil,
		}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{p.s.Position, p.pc})
}

// number parses integer and character literals as well as constants.
func (p *parser) number(s string) (vm.Cell, bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			p.error("Invalid character literal " + s)
			return 0, true
		}
		return vm.Cell(r), true
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), true
	}
	return 0, false
}

// value writes a number or a label reference.
func (p *parser) value(s string) {
	if v, ok := p.number(s); ok {
		p.write(v)
		return
	}
	if !isName(s) {
		p.error("Invalid value " + s)
		p.write(0)
		return
	}
	p.useLabel(s)
	p.write(0)
}

func (p *parser) operand(s string) {
	n := len(p.modes)
	switch {
	case strings.HasPrefix(s, "#"):
		p.modes = append(p.modes, vm.ModeImmediate)
		if n == p.op.Writes() {
			p.error("Immediate mode destination operand " + s)
		}
		p.value(s[1:])
	case s == "rb":
		p.modes = append(p.modes, vm.ModeRelative)
		p.write(0)
	case strings.HasPrefix(s, "rb+"), strings.HasPrefix(s, "rb-"):
		p.modes = append(p.modes, vm.ModeRelative)
		// rb-N as a whole negative literal so that the minimum value parses
		if n, err := strconv.ParseInt(s[2:], 0, 64); err == nil && s[2] == '-' {
			p.write(vm.Cell(n))
			break
		}
		v, ok := p.number(s[3:])
		if !ok {
			p.error("Invalid relative offset " + s)
		}
		if s[2] == '-' {
			v = -v
		}
		p.write(v)
	default:
		p.modes = append(p.modes, vm.ModePosition)
		p.value(s)
	}
	if len(p.modes) == p.op.Arity() {
		p.endInstruction()
	}
}

func (p *parser) startInstruction(op vm.Opcode) {
	p.op = op
	p.opPC = p.pc
	p.modes = p.modes[:0]
	p.write(vm.Encode(op))
	if op.Arity() == 0 {
		return
	}
	p.state = stOperand
}

func (p *parser) endInstruction() {
	p.i[p.opPC] = vm.Encode(p.op, p.modes...)
	p.state = stStatement
}

func (p *parser) statement(s string) {
	switch s[0] {
	case ':':
		n := s[1:]
		if !isName(n) {
			p.error("Invalid label name " + strconv.Quote(n))
			return
		}
		if cst, ok := p.consts[n]; ok {
			p.error("Label redefinition: " + n + ", previously defined as a constant here: " + cst.pos.String())
			return
		}
		if l, ok := p.labels[n]; ok {
			if l.address != -1 {
				p.error("Label redefinition: " + n + ", previous definition here: " + l.pos.String())
				return
			}
			l.address = p.pc
			l.pos = p.s.Position
		} else {
			p.labels[n] = &label{
				labelSite{p.s.Position, p.pc},
				nil,
			}
		}
	case '.':
		switch s {
		case ".org":
			p.state = stOrg
		case ".dat":
			p.state = stDat
		case ".equ":
			if p.s.Scan() == scanner.EOF || !isName(p.s.TokenText()) {
				p.error(".equ: expected identifier, got " + p.s.TokenText())
				return
			}
			p.cstName = p.s.TokenText()
			if l, ok := p.labels[p.cstName]; ok {
				p.error(".equ: redefinition of " + p.cstName + ", previously defined/used as a label here: " + l.pos.String())
				return
			}
			p.cstPos = p.s.Position
			p.state = stEqu
		default:
			p.error("Unknown directive: " + s)
		}
	default:
		if op, ok := opcodeIndex[s]; ok {
			p.startInstruction(op)
			return
		}
		// raw data
		if v, ok := p.number(s); ok {
			p.write(v)
			return
		}
		p.error("Unknown instruction " + s)
	}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) ([]vm.Cell, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.errorAt(s.Pos(), msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF && len(p.errs) < maxErrors; tok = p.s.Scan() {
		s := p.s.TokenText()
		if tok != scanner.Ident {
			p.error("Unexpected character " + strconv.QuoteRune(tok))
			continue
		}
		if s == "(" {
			// skip comments
			for tok = p.s.Scan(); tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")"); tok = p.s.Scan() {
			}
			continue
		}

		switch p.state {
		case stOperand:
			if s[0] == ':' || s[0] == '.' {
				p.error("Missing operand for " + p.op.String() + " before " + s)
				p.state = stStatement
				p.statement(s)
				break
			}
			p.operand(s)
		case stOrg:
			v, ok := p.number(s)
			switch {
			case !ok:
				p.error(".org: expected integer or constant, got " + s)
			case int(v) < p.pc:
				p.error(".org: cannot move backwards to " + s)
			default:
				p.pc = int(v)
			}
			p.state = stStatement
		case stEqu:
			if v, ok := p.number(s); ok {
				p.consts[p.cstName] = labelSite{p.cstPos, int(v)}
			} else {
				p.error(".equ: expected integer or constant, got " + s)
			}
			p.state = stStatement
		case stDat:
			p.value(s)
			p.state = stStatement
		default:
			p.statement(s)
		}
	}
	if p.state == stOperand {
		p.error("Missing operand for " + p.op.String())
	}

	// write labels
	for n, l := range p.labels {
		if l.address == -1 {
			p.errorAt(l.uses[0].pos, "Undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		p.errs.sort()
		return nil, p.errs
	}
	return p.i[:p.size:p.size], nil
}
