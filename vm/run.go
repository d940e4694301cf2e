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

import (
	"log/slog"

	"github.com/pkg/errors"
)

// addr resolves parameter n (0 based) of the current instruction to a memory
// address.
func (i *Instance) addr(ins Instruction, n int) int {
	p := int(i.mem.Load(i.pc + 1 + n))
	switch ins.Modes[n] {
	case ModeRelative:
		p += i.rb
	case ModeImmediate:
		panic(&WriteModeError{ins})
	}
	if p < 0 {
		panic(&AddressError{Addr: p})
	}
	return p
}

// arg returns the value of parameter n (0 based) of the current instruction.
func (i *Instance) arg(ins Instruction, n int) Cell {
	v := i.mem.Load(i.pc + 1 + n)
	switch ins.Modes[n] {
	case ModeImmediate:
		return v
	case ModeRelative:
		return i.mem.Load(int(v) + i.rb)
	default:
		return i.mem.Load(int(v))
	}
}

func (i *Instance) jump(target Cell) {
	if target < 0 {
		panic(&AddressError{Addr: int(target)})
	}
	i.pc = int(target)
}

func b2c(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

func (i *Instance) setStatus(s HaltStatus) {
	if i.status != s {
		i.log.Debug("status change", slog.String("machine", i.id), slog.String("status", s.String()),
			slog.Int("pc", i.pc), slog.Int64("count", i.insCount))
	}
	i.status = s
}

// Run starts or resumes execution of the machine until it either executes a
// halt instruction, in which case the status will be Terminated, or reaches
// an input instruction with an empty input queue. In the latter case, the
// status is set to WaitingForInput and the instruction pointer is left on the
// input instruction, so that calling Run again once input has been pushed
// resumes execution where it stopped.
//
// Run on a Terminated machine or on a machine with an empty memory is a no-op.
//
// If an error occurs, the PC will point to the instruction that triggered
// the error. Errors are fatal: the cause of the returned error is one of
// *DecodeError, *WriteModeError or *AddressError, and every subsequent call
// to Run will return the same error.
func (i *Instance) Run() (err error) {
	if i.err != nil {
		return i.err
	}
	if i.status == Terminated || i.mem.Len() == 0 {
		return nil
	}
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = errors.Wrapf(e, "fault @pc=%d rb=%d", i.pc, i.rb)
				i.err = err
				i.log.Debug("fault", slog.String("machine", i.id), slog.Any("error", e))
			default:
				panic(e)
			}
		}
	}()
	for {
		word := i.mem.Load(i.pc)
		ins, derr := Decode(word)
		if derr != nil {
			panic(derr)
		}
		if ins.Op == OpIn && len(i.in) == 0 {
			i.setStatus(WaitingForInput)
			return nil
		}
		if i.status != Running {
			i.setStatus(Running)
		}
		if i.tracer != nil {
			i.trace(word, ins)
		}
		switch ins.Op {
		case OpAdd:
			i.mem.Store(i.addr(ins, 2), i.arg(ins, 0)+i.arg(ins, 1))
			i.pc += 4
		case OpMul:
			i.mem.Store(i.addr(ins, 2), i.arg(ins, 0)*i.arg(ins, 1))
			i.pc += 4
		case OpIn:
			dst := i.addr(ins, 0)
			v := i.in[0]
			i.in = i.in[1:]
			i.mem.Store(dst, v)
			i.pc += 2
		case OpOut:
			i.out = append(i.out, i.arg(ins, 0))
			i.pc += 2
		case OpJumpIfTrue:
			if i.arg(ins, 0) != 0 {
				i.jump(i.arg(ins, 1))
			} else {
				i.pc += 3
			}
		case OpJumpIfFalse:
			if i.arg(ins, 0) == 0 {
				i.jump(i.arg(ins, 1))
			} else {
				i.pc += 3
			}
		case OpLessThan:
			i.mem.Store(i.addr(ins, 2), b2c(i.arg(ins, 0) < i.arg(ins, 1)))
			i.pc += 4
		case OpEquals:
			i.mem.Store(i.addr(ins, 2), b2c(i.arg(ins, 0) == i.arg(ins, 1)))
			i.pc += 4
		case OpAdjustBase:
			i.rb += int(i.arg(ins, 0))
			i.pc += 2
		case OpHalt:
			i.insCount++
			i.setStatus(Terminated)
			return nil
		}
		i.insCount++
	}
}
