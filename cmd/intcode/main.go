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
	"io"
	"log/slog"
	"os"

	"github.com/db47h/intcode/internal/config"
	"github.com/db47h/intcode/internal/logging"
	"github.com/db47h/intcode/trace"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// app holds the state shared by all commands.
type app struct {
	cfgPath   string
	logLevel  string
	traceKind string
	tracePath string
	debug     bool

	cfg     *config.Config
	log     *slog.Logger
	tracer  trace.Writer
	closers []func() error

	// last machine run, for post mortem dumps
	machine *vm.Instance
}

func newRootCmd() (*cobra.Command, *app) {
	a := new(app)
	root := &cobra.Command{
		Use:   "intcode",
		Short: "Run, assemble and disassemble Intcode programs.",
		Long: `intcode runs Intcode programs, standalone or as chained machines, and
provides an assembler and disassembler for Intcode.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}
	f := root.PersistentFlags()
	f.StringVar(&a.cfgPath, "config", "", "configuration `file` (default: first intcode.toml found from the current directory up)")
	f.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	f.StringVar(&a.traceKind, "trace", "", "trace execution: log, csv or sqlite")
	f.StringVar(&a.tracePath, "trace-path", "", "trace `file` name (default: unique name in the current directory)")
	f.BoolVar(&a.debug, "debug", false, "enable debug diagnostics")

	root.AddCommand(
		newRunCmd(a),
		newLoopCmd(a),
		newAsmCmd(a),
		newDisasmCmd(a),
	)
	return root, a
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Resolve(a.cfgPath)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if f.Changed("trace") {
		cfg.Trace.Kind = a.traceKind
	}
	if f.Changed("trace-path") {
		cfg.Trace.Path = a.tracePath
	}
	if a.debug {
		cfg.Log.Level = "debug"
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	l, closer, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.log = l
	a.closers = append(a.closers, closer)
	if cfg.Path != "" {
		l.Debug("configuration loaded", "path", cfg.Path)
	}

	if cfg.Trace.Kind != "" {
		t, err := trace.Open(cfg.Trace.Kind, cfg.Trace.Path, l)
		if err != nil {
			return err
		}
		a.tracer = t
		a.closers = append(a.closers, t.Close)
	}
	return nil
}

// teardown releases resources in reverse order of acquisition. It is safe to
// call more than once.
func (a *app) teardown() error {
	var err error
	for n := len(a.closers) - 1; n >= 0; n-- {
		if e := a.closers[n](); e != nil && err == nil {
			err = e
		}
	}
	a.closers = nil
	return err
}

// machineOptions returns the vm options common to all commands.
func (a *app) machineOptions() []vm.Option {
	opts := []vm.Option{vm.Logger(a.log)}
	if a.tracer != nil {
		opts = append(opts, vm.Trace(a.tracer))
	}
	return opts
}

func loadProgram(fileName string) ([]vm.Cell, error) {
	prog, err := vm.Load(fileName)
	if err != nil {
		return nil, err
	}
	if len(prog) == 0 {
		return nil, errors.Errorf("%s: empty program", fileName)
	}
	return prog, nil
}

func atExit(a *app, err error, w io.Writer) int {
	if err == nil {
		return 0
	}
	if !a.debug {
		fmt.Fprintf(w, "\n%v\n", err)
		return 1
	}
	fmt.Fprintf(w, "\n%+v\n", err)
	if a.machine != nil {
		a.machine.Dump(w)
	}
	return 1
}

func main() {
	root, a := newRootCmd()
	err := root.Execute()
	if e := a.teardown(); err == nil {
		err = e
	}
	atexit.Exit(atExit(a, err, os.Stderr))
}
