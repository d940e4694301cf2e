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

// Step describes an instruction about to be executed.
type Step struct {
	Machine      string // ID of the Instance
	Count        int64  // number of instructions executed before this one
	PC           int
	RelativeBase int
	Word         Cell
	Ins          Instruction
	Args         [3]Cell // raw parameters, only the first Ins.Op.Arity() are meaningful
}

// Tracer is implemented by types that want to observe execution. Trace is
// called synchronously from Run, before each instruction is executed. An
// input instruction that suspends the machine is not traced.
type Tracer interface {
	Trace(s Step)
}

func (i *Instance) trace(word Cell, ins Instruction) {
	s := Step{
		Machine:      i.id,
		Count:        i.insCount,
		PC:           i.pc,
		RelativeBase: i.rb,
		Word:         word,
		Ins:          ins,
	}
	for n := 0; n < ins.Op.Arity(); n++ {
		s.Args[n] = i.mem.Load(i.pc + 1 + n)
	}
	i.tracer.Trace(s)
}
