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
	"fmt"

	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
	"github.com/spf13/cobra"
)

type loopFlags struct {
	phases     []int64
	seed       int64
	noFeedback bool
}

func newLoopCmd(a *app) *cobra.Command {
	var lf loopFlags
	cmd := &cobra.Command{
		Use:   "loop FILE",
		Short: "Run chained copies of an Intcode program",
		Long: `Loop runs one copy of the program in FILE per phase value. Each machine gets
its phase value as first input, then the output of the previous machine. The
first machine gets the seed value, then the output of the last machine unless
--no-feedback is set. The last output of the last machine is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.loop(cmd, args[0], &lf)
		},
	}
	f := cmd.Flags()
	f.Int64SliceVar(&lf.phases, "phases", []int64{0, 1, 2, 3, 4}, "comma separated phase `values`, one per machine")
	f.Int64Var(&lf.seed, "seed", 0, "first input `value` of the first machine")
	f.BoolVar(&lf.noFeedback, "no-feedback", false, "do not feed the last machine's output back to the first machine")
	return cmd
}

func (a *app) loop(cmd *cobra.Command, fileName string, lf *loopFlags) error {
	prog, err := loadProgram(fileName)
	if err != nil {
		return err
	}
	phases := make([]vm.Cell, len(lf.phases))
	for n, p := range lf.phases {
		phases[n] = vm.Cell(p)
	}
	l, err := network.NewLoop(prog, phases,
		network.Feedback(!lf.noFeedback),
		network.Logger(a.log),
		network.MachineOptions(a.machineOptions()...))
	if err != nil {
		return err
	}
	v, err := l.Run(vm.Cell(lf.seed))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
	return err
}
