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

package asm

import (
	"sort"
	"strings"
	"text/scanner"
)

// ErrPos is an assembly error at a given position in the source.
type ErrPos struct {
	Pos scanner.Position
	Msg string
}

func (e *ErrPos) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm lists the errors found while assembling a source file, in source
// order.
type ErrAsm []ErrPos

func (e ErrAsm) Error() string {
	var b strings.Builder
	for i := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e[i].Error())
	}
	return b.String()
}

func (e ErrAsm) sort() {
	sort.SliceStable(e, func(i, j int) bool {
		return e[i].Pos.Offset < e[j].Pos.Offset
	})
}
