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

// Package vm implements an Intcode virtual machine.
//
// An Instance owns a sparse, zero initialized memory, an instruction pointer,
// a relative base register and two FIFO queues for input and output. Programs
// are lists of integers loaded at address 0; see Parse and Load for the
// comma separated text form.
//
// Instructions are decoded from the decimal digits of a memory cell: the two
// least significant digits give the opcode, the next three give the modes of
// up to three parameters (position, immediate or relative). Decode exposes
// the decoder on its own.
//
// There is no concurrency in the VM. Run executes instructions until the
// program halts or until it needs input that has not been pushed yet. In the
// latter case Run returns with the status set to WaitingForInput and can be
// called again once the host has pushed more input. This lets a host
// interleave several machines, for example in a feedback loop where each
// machine's output is the next one's input, without goroutines.
//
// Machines never share state. Use Clone to fork execution from a given state.
//
// For all intents and purposes, the instruction pointer is not incremented in
// a single place, rather each opcode deals with it as needed. This should be of
// no concern to users since faults always leave it on the offending
// instruction.
package vm
