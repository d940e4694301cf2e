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
	"io"
	"log/slog"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
	"github.com/rs/xid"
)

// Cell is the raw type stored in a memory location.
type Cell int64

func (c Cell) String() string {
	return strconv.FormatInt(int64(c), 10)
}

// HaltStatus tells why Run returned.
type HaltStatus int

// Halt status values.
const (
	Running         HaltStatus = iota // never run, or running
	WaitingForInput                   // suspended on an input instruction with an empty input queue
	Terminated                        // a halt instruction has been executed
)

var statusNames = [...]string{"running", "waiting for input", "terminated"}

func (s HaltStatus) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "status(" + strconv.Itoa(int(s)) + ")"
}

// Instance represents an Intcode machine.
type Instance struct {
	mem      Memory
	pc       int
	rb       int
	in       []Cell
	out      []Cell
	status   HaltStatus
	err      error
	insCount int64
	id       string
	log      *slog.Logger
	tracer   Tracer
}

// Option interface
type Option func(*Instance) error

// Input queues the given values as input for the machine.
func Input(v ...Cell) Option {
	return func(i *Instance) error { i.PushInput(v...); return nil }
}

// Logger sets the logger used to report status changes and faults. All
// records are emitted at debug level. The default is to discard them.
func Logger(l *slog.Logger) Option {
	return func(i *Instance) error {
		if l == nil {
			l = discard
		}
		i.log = l
		return nil
	}
}

// Trace configures a Tracer that will be called before the execution of every
// instruction.
func Trace(t Tracer) Option {
	return func(i *Instance) error { i.tracer = t; return nil }
}

// Patch writes the value v at address addr before the program runs.
func Patch(addr int, v Cell) Option {
	return func(i *Instance) error { return i.WriteCell(addr, v) }
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

var discard = slog.New(slog.DiscardHandler)

// New creates a new Intcode machine with a copy of program loaded at
// addresses 0 to len(program)-1.
//
// Options will be set by calling SetOptions.
func New(program []Cell, opts ...Option) (*Instance, error) {
	i := &Instance{
		mem: NewMemory(program),
		id:  xid.New().String(),
		log: discard,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// ID returns a unique identifier for this instance, used to tell machines
// apart in logs and traces.
func (i *Instance) ID() string {
	return i.id
}

// PC returns the instruction pointer.
func (i *Instance) PC() int {
	return i.pc
}

// RelativeBase returns the current value of the relative base register.
func (i *Instance) RelativeBase() int {
	return i.rb
}

// Status returns the halt status from the last call to Run.
func (i *Instance) Status() HaltStatus {
	return i.status
}

// Terminated reports whether the machine has executed a halt instruction.
func (i *Instance) Terminated() bool {
	return i.status == Terminated
}

// Waiting reports whether the machine is suspended on an input instruction.
func (i *Instance) Waiting() bool {
	return i.status == WaitingForInput
}

// Err returns the fault that stopped the machine, if any. A faulted machine
// cannot be resumed.
func (i *Instance) Err() error {
	return i.err
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Memory returns a copy of the contiguous memory block starting at address 0.
// It holds the program and any cell written near it. Cells written far past
// the end of the block, usually through relative addressing, are not included
// in the returned slice; use ReadCell to inspect them.
func (i *Instance) Memory() []Cell {
	return i.mem.Cells()
}

// ReadCell returns the value at address addr.
func (i *Instance) ReadCell(addr int) (Cell, error) {
	if addr < 0 {
		return 0, &AddressError{Addr: addr}
	}
	return i.mem.Load(addr), nil
}

// WriteCell stores v at address addr. It is typically used to patch a program
// before running it.
func (i *Instance) WriteCell(addr int, v Cell) error {
	if addr < 0 {
		return &AddressError{Addr: addr}
	}
	i.mem.Store(addr, v)
	return nil
}

// Clone returns a deep copy of the machine. The copy gets a new ID, shares the
// logger and tracer of i, and nothing else.
func (i *Instance) Clone() *Instance {
	c := *i
	c.mem = i.mem.Clone()
	c.in = append([]Cell(nil), i.in...)
	c.out = append([]Cell(nil), i.out...)
	c.id = xid.New().String()
	return &c
}

// Dump writes the machine registers, queues and memory to the specified
// io.Writer. Cells outside of the contiguous memory block are written on a
// separate line as addr:value pairs sorted by address.
func (i *Instance) Dump(w io.Writer) error {
	ew := ici.NewErrWriter(w)
	io.WriteString(ew, "id: "+i.id+"\nstatus: "+i.status.String()+
		"\npc: "+strconv.Itoa(i.pc)+"\nrb: "+strconv.Itoa(i.rb)+"\ninput: ")
	ici.WriteCells(ew, i.in, ' ')
	io.WriteString(ew, "\noutput: ")
	ici.WriteCells(ew, i.out, ' ')
	io.WriteString(ew, "\nmemory: ")
	ici.WriteCells(ew, i.mem.Cells(), ',')
	if as := i.mem.Sparse(); len(as) > 0 {
		io.WriteString(ew, "\nsparse:")
		for _, a := range as {
			io.WriteString(ew, " "+strconv.Itoa(a)+":"+i.mem.Load(a).String())
		}
	}
	_, err := ew.Write([]byte{'\n'})
	return err
}
