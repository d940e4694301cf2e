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

// Controller reacts to the output of a machine.
//
// Step is called every time the machine stops, with its status and the values
// it output since the previous call. The returned values are pushed to the
// machine's input queue before it is resumed.
type Controller interface {
	Step(status vm.HaltStatus, out []vm.Cell) ([]vm.Cell, error)
}

// ControllerFunc adapts a function to the Controller interface.
type ControllerFunc func(status vm.HaltStatus, out []vm.Cell) ([]vm.Cell, error)

// Step calls f(status, out).
func (f ControllerFunc) Step(status vm.HaltStatus, out []vm.Cell) ([]vm.Cell, error) {
	return f(status, out)
}

// Session runs a single machine under the control of a Controller.
type Session struct {
	m   *vm.Instance
	c   Controller
	cfg *config
}

// NewSession returns a new Session. Only the Logger option applies to
// sessions.
func NewSession(m *vm.Instance, c Controller, opts ...Option) *Session {
	return &Session{m: m, c: c, cfg: newConfig(opts)}
}

// Run alternates between running the machine and calling the controller
// until the machine terminates.
//
// It returns nil once the controller has seen the machine terminate, or when
// the controller returns ErrStop. It returns ErrStalled if the machine waits
// for input and the controller returned none.
func (s *Session) Run() error {
	log := s.cfg.log
	for {
		if err := s.m.Run(); err != nil {
			return err
		}
		status := s.m.Status()
		out := s.m.Outputs()
		log.Debug("session step", "machine", s.m.ID(), "status", status, "outputs", len(out))
		in, err := s.c.Step(status, out)
		if err != nil {
			if errors.Is(err, ErrStop) {
				log.Debug("session stopped", "machine", s.m.ID())
				return nil
			}
			return err
		}
		if status != vm.WaitingForInput {
			return nil
		}
		if len(in) == 0 {
			return ErrStalled
		}
		s.m.PushInput(in...)
	}
}
