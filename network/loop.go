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

package network

import (
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Loop is a chain of machines running the same program, where each machine
// feeds its output to the next one.
type Loop struct {
	ms     []*vm.Instance
	cfg    *config
	result vm.Cell
	done   bool
}

// NewLoop creates one machine per phase value, each running its own copy of
// program and primed with its phase value as first input.
func NewLoop(program []vm.Cell, phases []vm.Cell, opts ...Option) (*Loop, error) {
	if len(phases) == 0 {
		return nil, errors.New("no phase values")
	}
	if len(program) == 0 {
		return nil, errors.New("empty program")
	}
	l := &Loop{cfg: newConfig(opts)}
	for n, p := range phases {
		m, err := vm.New(program, append(l.cfg.mOpts, vm.Input(p))...)
		if err != nil {
			return nil, errors.Wrapf(err, "machine %d", n)
		}
		l.ms = append(l.ms, m)
	}
	return l, nil
}

// Machines returns the machines in the loop, in order.
func (l *Loop) Machines() []*vm.Instance {
	return l.ms
}

// Run pushes seed to the first machine and runs all machines in turn until
// the last one terminates. It returns the last value output by the last
// machine.
//
// Calling Run again once the loop completed returns the same result without
// doing anything.
func (l *Loop) Run(seed vm.Cell) (vm.Cell, error) {
	if l.done {
		return l.result, nil
	}
	var (
		first = l.ms[0]
		last  = l.ms[len(l.ms)-1]
		out   bool
		log   = l.cfg.log
	)
	first.PushInput(seed)
	for round := 1; !last.Terminated(); round++ {
		progress := false
		for n, m := range l.ms {
			if m.Terminated() {
				continue
			}
			count := m.InstructionCount()
			if err := m.Run(); err != nil {
				return 0, errors.Wrapf(err, "machine %d (%s)", n, m.ID())
			}
			if m.InstructionCount() != count {
				progress = true
			}
			if m != last {
				Transfer(l.ms[n+1], m)
				continue
			}
			vs := m.Outputs()
			if len(vs) > 0 {
				l.result, out = vs[len(vs)-1], true
				if l.cfg.feedback {
					first.PushInput(vs...)
				}
			}
		}
		log.Debug("loop round", "round", round, "progress", progress, "last", last.Status())
		if !progress {
			return 0, ErrDeadlock
		}
	}
	if !out {
		return 0, ErrNoOutput
	}
	l.done = true
	log.Info("loop terminated", "machines", len(l.ms), "result", int64(l.result))
	return l.result, nil
}
