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

// Package network drives one or more Intcode machines from the host side.
//
// Machines never run concurrently: a driver runs a machine until it
// terminates or needs input, then moves its output wherever it has to go. A
// Loop chains machines, each one feeding the next; a Session pairs a single
// machine with a Controller that reacts to its output.
package network

import (
	"log/slog"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

var (
	// ErrDeadlock is returned by Loop.Run when no machine can make progress.
	ErrDeadlock = errors.New("deadlock: all machines waiting for input")
	// ErrNoOutput is returned by Loop.Run when the last machine terminated
	// without producing any output.
	ErrNoOutput = errors.New("last machine terminated without output")
	// ErrStalled is returned by Session.Run when the machine waits for input
	// and the controller did not provide any.
	ErrStalled = errors.New("machine waiting for input, none provided")
	// ErrStop can be returned by a Controller to stop a Session cleanly.
	ErrStop = errors.New("stop")
)

// Transfer moves all pending output values of src to the input queue of dst,
// in order, and returns the number of values moved.
func Transfer(dst, src *vm.Instance) int {
	out := src.Outputs()
	dst.PushInput(out...)
	return len(out)
}

type config struct {
	feedback bool
	log      *slog.Logger
	mOpts    []vm.Option
}

var discard = slog.New(slog.DiscardHandler)

func newConfig(opts []Option) *config {
	c := &config{feedback: true, log: discard}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Option configures a Loop or a Session.
type Option func(*config)

// Feedback sets whether the output of the last machine of a Loop is fed back
// to the first machine (the default), or if the machines form an open
// pipeline.
func Feedback(on bool) Option {
	return func(c *config) {
		c.feedback = on
	}
}

// Logger sets the logger used by the driver. Machines keep their own logger,
// see MachineOptions.
func Logger(l *slog.Logger) Option {
	return func(c *config) {
		if l == nil {
			l = discard
		}
		c.log = l
	}
}

// MachineOptions sets options applied to every machine created by NewLoop.
func MachineOptions(opts ...vm.Option) Option {
	return func(c *config) {
		c.mOpts = append(c.mOpts, opts...)
	}
}
