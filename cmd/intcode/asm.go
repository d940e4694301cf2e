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

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newAsmCmd(a *app) *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "asm FILE",
		Short: "Assemble an Intcode assembly source file",
		Long: `Asm assembles the source in FILE and writes the resulting program as comma
separated values to stdout, or to the file given with -o.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			prog, err := asm.Assemble(args[0], bufio.NewReader(f))
			if err != nil {
				return err
			}
			a.log.Debug("assembled", "file", args[0], "cells", len(prog))
			if outFile == "" {
				return vm.Format(cmd.OutOrStdout(), prog)
			}
			out, err := os.Create(outFile)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := out.Close(); err == nil && cerr != nil {
					err = errors.Wrap(cerr, "close failed")
				}
			}()
			return vm.Format(out, prog)
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output `file`")
	return cmd
}

func newDisasmCmd(a *app) *cobra.Command {
	var base int
	cmd := &cobra.Command{
		Use:   "disasm FILE",
		Short: "Disassemble an Intcode program",
		Long: `Disasm writes a listing of the comma separated Intcode program in FILE to
stdout. Each line holds the address of an instruction and its disassembly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := vm.Load(args[0])
			if err != nil {
				return err
			}
			if base < 0 || base > len(prog) {
				return errors.Errorf("start address %d out of range", base)
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			if err = asm.DisassembleAll(prog[base:], base, w); err != nil {
				return err
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&base, "start", 0, "start `address`")
	return cmd
}
