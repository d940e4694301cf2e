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

// PushInput appends the given values to the input queue. It can be called at
// any time, including before the first call to Run. Values are consumed in
// the order they were pushed.
func (i *Instance) PushInput(v ...Cell) {
	i.in = append(i.in, v...)
}

// NextOutput pops the oldest value from the output queue. The boolean result
// is false if the queue is empty.
func (i *Instance) NextOutput() (Cell, bool) {
	if len(i.out) == 0 {
		return 0, false
	}
	v := i.out[0]
	i.out = i.out[1:]
	return v, true
}

// LastOutput pops the newest value from the output queue. This is mostly
// useful for programs that output a single answer after some diagnostic
// values.
func (i *Instance) LastOutput() (Cell, bool) {
	l := len(i.out) - 1
	if l < 0 {
		return 0, false
	}
	v := i.out[l]
	i.out = i.out[:l]
	return v, true
}

// Outputs drains the output queue and returns its contents, oldest first.
func (i *Instance) Outputs() []Cell {
	out := i.out
	i.out = nil
	return out
}

// PendingInput returns the number of values in the input queue.
func (i *Instance) PendingInput() int {
	return len(i.in)
}

// PendingOutput returns the number of values in the output queue.
func (i *Instance) PendingOutput() int {
	return len(i.out)
}
