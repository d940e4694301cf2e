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

package trace

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tebeka/atexit"
)

var csvHeader = []string{"machine", "count", "pc", "rb", "word", "ins", "a0", "a1", "a2"}

// CSVTraceWriter writes steps to a CSV file.
type CSVTraceWriter struct {
	path string
	file *os.File
	w    *csv.Writer

	steps      []vm.Step
	bufferSize int
	err        error
	closed     bool
}

// NewCSVTraceWriter creates the CSV file and writes the header line. The
// ".csv" extension is added to path if missing. If path is empty, a unique
// file name is used. It is an error if the file already exists.
func NewCSVTraceWriter(path string) (*CSVTraceWriter, error) {
	path, err := fileName(path, ".csv")
	if err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create trace file")
	}
	t := &CSVTraceWriter{
		path:       path,
		file:       f,
		w:          csv.NewWriter(f),
		bufferSize: 1000,
	}
	if err = t.w.Write(csvHeader); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "write trace file")
	}

	atexit.Register(func() { t.Close() })

	return t, nil
}

// Path returns the name of the CSV file.
func (t *CSVTraceWriter) Path() string {
	return t.path
}

// Trace implements vm.Tracer.
func (t *CSVTraceWriter) Trace(s vm.Step) {
	if t.closed || t.err != nil {
		return
	}
	t.steps = append(t.steps, s)
	if len(t.steps) >= t.bufferSize {
		t.Flush()
	}
}

// Flush writes buffered steps to the file. Write errors are sticky.
func (t *CSVTraceWriter) Flush() error {
	if t.err != nil || t.closed {
		return t.err
	}
	rec := make([]string, len(csvHeader))
	for i := range t.steps {
		s := &t.steps[i]
		rec[0] = s.Machine
		rec[1] = strconv.FormatInt(s.Count, 10)
		rec[2] = strconv.Itoa(s.PC)
		rec[3] = strconv.Itoa(s.RelativeBase)
		rec[4] = s.Word.String()
		rec[5] = s.Ins.String()
		for n := range 3 {
			rec[6+n] = ""
		}
		for n, a := range args(s) {
			rec[6+n] = a.String()
		}
		if err := t.w.Write(rec); err != nil {
			t.err = errors.Wrap(err, "write trace file")
			return t.err
		}
	}
	t.steps = t.steps[:0]
	t.w.Flush()
	if err := t.w.Error(); err != nil {
		t.err = errors.Wrap(err, "write trace file")
	}
	return t.err
}

// Close flushes buffered steps and closes the file. Subsequent steps are
// ignored.
func (t *CSVTraceWriter) Close() error {
	if t.closed {
		return t.err
	}
	err := t.Flush()
	t.closed = true
	if cerr := t.file.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "close trace file")
		t.err = err
	}
	return err
}
