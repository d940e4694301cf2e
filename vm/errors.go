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

import "strconv"

// DecodeError is returned when a memory cell does not hold a valid
// instruction: unknown opcode or bad parameter mode.
type DecodeError struct {
	Word   Cell
	Reason string
}

func (e *DecodeError) Error() string {
	return "cannot decode " + strconv.FormatInt(int64(e.Word), 10) + ": " + e.Reason
}

// WriteModeError is returned when the destination parameter of an instruction
// is in immediate mode.
type WriteModeError struct {
	Ins Instruction
}

func (e *WriteModeError) Error() string {
	return "immediate mode write destination: " + e.Ins.String()
}

// AddressError is returned on any attempt to access a negative memory
// address.
type AddressError struct {
	Addr int
}

func (e *AddressError) Error() string {
	return "negative address " + strconv.Itoa(e.Addr)
}
