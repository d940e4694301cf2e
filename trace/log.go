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
	"context"
	"log/slog"

	"github.com/db47h/intcode/vm"
)

// LogTracer logs every step as a Debug record.
type LogTracer struct {
	log *slog.Logger
}

// NewLogTracer returns a new LogTracer.
func NewLogTracer(log *slog.Logger) *LogTracer {
	return &LogTracer{log}
}

// Trace implements vm.Tracer.
func (t *LogTracer) Trace(s vm.Step) {
	if !t.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	t.log.Debug("step",
		slog.String("machine", s.Machine),
		slog.Int64("count", s.Count),
		slog.Int("pc", s.PC),
		slog.Int("rb", s.RelativeBase),
		slog.String("ins", s.Ins.String()),
		slog.Any("args", args(&s)))
}

// Flush is a no-op.
func (t *LogTracer) Flush() error { return nil }

// Close is a no-op.
func (t *LogTracer) Close() error { return nil }
