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

// Package trace provides vm.Tracer implementations that record every
// instruction executed by a machine to a log, a CSV file or a SQLite
// database.
//
// File based writers buffer steps in memory and write them in batches. They
// register with github.com/tebeka/atexit so that buffered steps are not lost
// if the process exits through atexit.Exit.
package trace

import (
	"log/slog"
	"os"
	"strings"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

// Writer is a vm.Tracer that buffers its output.
type Writer interface {
	vm.Tracer
	// Flush writes buffered steps.
	Flush() error
	// Close flushes buffered steps and releases any resources.
	Close() error
}

// Supported kinds of trace writers.
const (
	KindLog    = "log"
	KindCSV    = "csv"
	KindSQLite = "sqlite"
)

// Open returns a new Writer of the given kind. Path is ignored for the log
// kind. For file based writers, an empty path selects a unique file name in
// the current directory.
func Open(kind, path string, log *slog.Logger) (Writer, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	switch kind {
	case KindLog:
		return NewLogTracer(log), nil
	case KindCSV:
		w, err := NewCSVTraceWriter(path)
		if err != nil {
			return nil, err
		}
		log.Info("tracing to CSV file", "path", w.Path())
		return w, nil
	case KindSQLite:
		w, err := NewSQLiteTraceWriter(path)
		if err != nil {
			return nil, err
		}
		log.Info("tracing to SQLite database", "path", w.Path())
		return w, nil
	}
	return nil, errors.Errorf("unknown trace kind %q", kind)
}

// fileName returns the name of a new trace file. The file must not exist.
func fileName(path, ext string) (string, error) {
	if path == "" {
		path = "intcode_trace_" + xid.New().String()
	}
	if !strings.HasSuffix(path, ext) {
		path += ext
	}
	if _, err := os.Stat(path); err == nil {
		return "", errors.Errorf("file %s already exists", path)
	}
	return path, nil
}

// args returns the meaningful parameters of s.
func args(s *vm.Step) []vm.Cell {
	return s.Args[:s.Ins.Op.Arity()]
}
