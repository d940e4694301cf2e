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
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
)

func scanCommas(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if i := bytes.IndexByte(data, ','); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Parse reads a program in text form: integers separated by commas. White
// space around values is ignored, as is a trailing comma.
func Parse(r io.Reader) ([]Cell, error) {
	var (
		prog []Cell
		s    = bufio.NewScanner(r)
		n    int
	)
	s.Buffer(nil, 1<<20)
	s.Split(scanCommas)
	for s.Scan() {
		t := bytes.TrimSpace(s.Bytes())
		if len(t) == 0 {
			// only the last field may be empty
			if !s.Scan() && s.Err() == nil {
				break
			}
			return nil, errors.Errorf("empty value at index %d", n)
		}
		v, err := strconv.ParseInt(string(t), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad value at index %d", n)
		}
		prog = append(prog, Cell(v))
		n++
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return prog, nil
}

// Load loads a program in text form from file fileName.
func Load(fileName string) ([]Cell, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	prog, err := Parse(f)
	if err != nil {
		return nil, errors.Wrap(err, fileName)
	}
	return prog, nil
}

// Format writes cells to w in the format accepted by Parse.
func Format(w io.Writer, cells []Cell) error {
	ew := ici.NewErrWriter(w)
	ici.WriteCells(ew, cells, ',')
	_, err := ew.Write([]byte{'\n'})
	return err
}
