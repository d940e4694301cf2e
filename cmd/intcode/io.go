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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// ctrlD is the raw mode end of transmission character.
const ctrlD = 4

// batchController prints outputs one per line. It never provides input.
type batchController struct {
	w    *bufio.Writer
	last bool
	lv   vm.Cell
	seen bool
}

func newBatchController(w *bufio.Writer, last bool) *batchController {
	return &batchController{w: w, last: last}
}

func (c *batchController) Step(status vm.HaltStatus, out []vm.Cell) ([]vm.Cell, error) {
	if c.last {
		if len(out) > 0 {
			c.lv, c.seen = out[len(out)-1], true
		}
		if status == vm.Terminated && c.seen {
			io.WriteString(c.w, c.lv.String()+"\n")
		}
		return nil, nil
	}
	for _, v := range out {
		io.WriteString(c.w, v.String()+"\n")
	}
	return nil, nil
}

// writeASCII writes printable ASCII values as text and any other value as a
// decimal number on its own line.
func writeASCII(w *bufio.Writer, out []vm.Cell) error {
	for _, v := range out {
		if v >= 0 && v < 128 {
			w.WriteByte(byte(v))
			continue
		}
		fmt.Fprintf(w, "\n%d\n", v)
	}
	return w.Flush()
}

func toASCII(s string) []vm.Cell {
	in := make([]vm.Cell, 0, len(s)+1)
	for _, r := range s {
		in = append(in, vm.Cell(r))
	}
	return in
}

// asciiController feeds lines of text to the machine.
type asciiController struct {
	r *bufio.Reader
	w *bufio.Writer
}

func newASCIIController(r io.Reader, w *bufio.Writer) *asciiController {
	return &asciiController{bufio.NewReader(r), w}
}

func (c *asciiController) Step(status vm.HaltStatus, out []vm.Cell) ([]vm.Cell, error) {
	if err := writeASCII(c.w, out); err != nil {
		return nil, err
	}
	if status != vm.WaitingForInput {
		return nil, nil
	}
	line, err := c.r.ReadString('\n')
	switch {
	case err == io.EOF && line == "":
		return nil, network.ErrStop
	case err != nil && err != io.EOF:
		return nil, errors.Wrap(err, "read failed")
	}
	return toASCII(strings.TrimSuffix(line, "\n") + "\n"), nil
}

// promptController asks the user for one integer whenever the machine waits
// for input.
type promptController struct {
	r      *bufio.Scanner
	w      *bufio.Writer
	prompt io.Writer
}

func newPromptController(r io.Reader, w *bufio.Writer, prompt io.Writer) *promptController {
	return &promptController{bufio.NewScanner(r), w, prompt}
}

func (c *promptController) Step(status vm.HaltStatus, out []vm.Cell) ([]vm.Cell, error) {
	for _, v := range out {
		c.w.WriteString(v.String() + "\n")
	}
	if err := c.w.Flush(); err != nil {
		return nil, err
	}
	if status != vm.WaitingForInput {
		return nil, nil
	}
	for {
		io.WriteString(c.prompt, "> ")
		if !c.r.Scan() {
			if err := c.r.Err(); err != nil {
				return nil, errors.Wrap(err, "read failed")
			}
			return nil, network.ErrStop
		}
		v, err := strconv.ParseInt(strings.TrimSpace(c.r.Text()), 0, 64)
		if err != nil {
			fmt.Fprintf(c.prompt, "not an integer: %q\n", c.r.Text())
			continue
		}
		return []vm.Cell{vm.Cell(v)}, nil
	}
}

// keyController reads single keystrokes and maps them to input values.
type keyController struct {
	r    *bufio.Reader
	w    *bufio.Writer
	keys map[string]int64
}

func newKeyController(r io.Reader, w *bufio.Writer, keys map[string]int64) *keyController {
	return &keyController{bufio.NewReader(r), w, keys}
}

func (c *keyController) Step(status vm.HaltStatus, out []vm.Cell) ([]vm.Cell, error) {
	if err := writeASCII(c.w, out); err != nil {
		return nil, err
	}
	if status != vm.WaitingForInput {
		return nil, nil
	}
	for {
		r, _, err := c.r.ReadRune()
		if err == io.EOF || err == nil && r == ctrlD {
			return nil, network.ErrStop
		}
		if err != nil {
			return nil, errors.Wrap(err, "read failed")
		}
		if v, ok := c.keys[string(r)]; ok {
			return []vm.Cell{vm.Cell(v)}, nil
		}
	}
}
