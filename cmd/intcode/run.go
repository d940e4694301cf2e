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

package main

import (
	"bufio"
	"os"
	"strconv"

	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type runFlags struct {
	input       []int64
	set         map[string]int64
	ascii       bool
	interactive bool
	keys        bool
	dump        bool
	last        bool
}

func newRunCmd(a *app) *cobra.Command {
	var rf runFlags
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run an Intcode program",
		Long: `Run loads the comma separated Intcode program in FILE and runs it.

By default, the program gets its input from --input and its output values are
printed one per line. It is an error for the program to wait for more input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0], &rf)
		},
	}
	f := cmd.Flags()
	f.Int64SliceVarP(&rf.input, "input", "i", nil, "comma separated input `values`")
	f.StringToInt64Var(&rf.set, "set", nil, "set memory cells before running, as `addr=value` pairs")
	f.BoolVar(&rf.ascii, "ascii", false, "ASCII mode: feed stdin lines as character codes, print outputs as text")
	f.BoolVar(&rf.interactive, "interactive", false, "prompt for input values when the program waits for input")
	f.BoolVar(&rf.keys, "keys", false, "feed keystrokes mapped through the [keys] configuration, raw terminal")
	f.BoolVar(&rf.dump, "dump", false, "dump the machine state upon exit")
	f.BoolVar(&rf.last, "last", false, "only print the last output value")
	cmd.MarkFlagsMutuallyExclusive("ascii", "interactive", "keys")
	cmd.MarkFlagsMutuallyExclusive("last", "ascii")
	cmd.MarkFlagsMutuallyExclusive("last", "keys")
	return cmd
}

func patches(set map[string]int64) ([]vm.Option, error) {
	var opts []vm.Option
	for k, v := range set {
		addr, err := strconv.Atoi(k)
		if err != nil {
			return nil, errors.Wrapf(err, "--set %s=%d: bad address", k, v)
		}
		opts = append(opts, vm.Patch(addr, vm.Cell(v)))
	}
	return opts, nil
}

func (a *app) run(cmd *cobra.Command, fileName string, rf *runFlags) (err error) {
	prog, err := loadProgram(fileName)
	if err != nil {
		return err
	}
	opts := a.machineOptions()
	ps, err := patches(rf.set)
	if err != nil {
		return err
	}
	opts = append(opts, ps...)
	for _, v := range rf.input {
		opts = append(opts, vm.Input(vm.Cell(v)))
	}
	i, err := vm.New(prog, opts...)
	if err != nil {
		return err
	}
	a.machine = i

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer func() {
		if err == nil && rf.dump {
			err = i.Dump(out)
		}
		if ferr := out.Flush(); err == nil && ferr != nil {
			err = errors.Wrap(ferr, "write failed")
		}
	}()

	var c network.Controller
	switch {
	case rf.ascii:
		c = newASCIIController(cmd.InOrStdin(), out)
	case rf.interactive:
		c = newPromptController(cmd.InOrStdin(), out, cmd.ErrOrStderr())
	case rf.keys:
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			restore, err := setRawIO(f.Fd())
			if err != nil {
				a.log.Warn("cannot switch terminal to raw mode", "error", err)
			} else {
				defer restore()
			}
		}
		c = newKeyController(in, out, a.cfg.Keys)
	default:
		c = newBatchController(out, rf.last)
	}

	err = network.NewSession(i, c, network.Logger(a.log)).Run()
	if errors.Is(err, network.ErrStalled) {
		return errors.Wrap(err, "program needs more input")
	}
	if err != nil {
		return err
	}
	a.log.Debug("machine stopped", "status", i.Status(), "instructions", i.InstructionCount())
	return nil
}
