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

package vm_test

import (
	"fmt"
	"strings"

	"github.com/db47h/intcode/vm"
)

// Shows the simplest use case: load a program, feed it some input, run it
// to completion and read its output.
func ExampleInstance_Run() {
	prog, err := vm.Parse(strings.NewReader("3,9,8,9,10,9,4,9,99,-1,8"))
	if err != nil {
		panic(err)
	}
	i, err := vm.New(prog, vm.Input(8))
	if err != nil {
		panic(err)
	}
	if err = i.Run(); err != nil {
		panic(err)
	}
	v, _ := i.NextOutput()
	fmt.Println(i.Status(), v)

	// Output:
	// terminated 1
}

// Programs that need more input than available suspend themselves. The host
// pushes more input and calls Run again to resume where it stopped.
func ExampleInstance_Run_resume() {
	// read a value, output its double, forever
	i, err := vm.New([]vm.Cell{3, 11, 1002, 11, 2, 11, 4, 11, 1105, 1, 0, 0})
	if err != nil {
		panic(err)
	}
	for _, v := range []vm.Cell{1, 2, 21} {
		i.PushInput(v)
		if err = i.Run(); err != nil {
			panic(err)
		}
		out, _ := i.NextOutput()
		fmt.Println(i.Status(), out)
	}

	// Output:
	// waiting for input 2
	// waiting for input 4
	// waiting for input 42
}

// Several machines can be chained in a feedback loop without any goroutine:
// the host runs each machine in turn until it needs input, and moves its
// output to the next machine.
func ExampleInstance_Run_feedback() {
	prog := []vm.Cell{3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26,
		27, 4, 27, 1001, 28, -1, 28, 1005, 28, 6, 99, 0, 0, 5}
	var amps []*vm.Instance
	for _, phase := range []vm.Cell{9, 8, 7, 6, 5} {
		i, err := vm.New(prog, vm.Input(phase))
		if err != nil {
			panic(err)
		}
		amps = append(amps, i)
	}
	amps[0].PushInput(0)
	last := amps[len(amps)-1]
	var signal vm.Cell
	for !last.Terminated() {
		for n, i := range amps {
			if err := i.Run(); err != nil {
				panic(err)
			}
			for _, v := range i.Outputs() {
				amps[(n+1)%len(amps)].PushInput(v)
				signal = v
			}
		}
	}
	fmt.Println(signal)

	// Output:
	// 139629729
}

// Machines can be forked at any point with Clone. Here we search for the
// noun and verb that make a program leave 1969 at address 0, restarting every
// attempt from the original program.
func ExampleInstance_Clone() {
	// mem[9] = noun * 100; mem[0] = mem[9] + verb
	orig, err := vm.New([]vm.Cell{1102, 0, 100, 9, 1001, 9, 0, 0, 99, 0})
	if err != nil {
		panic(err)
	}
	for noun := vm.Cell(0); noun < 100; noun++ {
		for verb := vm.Cell(0); verb < 100; verb++ {
			i := orig.Clone()
			i.WriteCell(1, noun)
			i.WriteCell(6, verb)
			if err := i.Run(); err != nil {
				panic(err)
			}
			if v, _ := i.ReadCell(0); v == 1969 {
				fmt.Println("found", noun, verb)
			}
		}
	}
	v, _ := orig.ReadCell(0)
	fmt.Println("original", v)

	// Output:
	// found 19 69
	// original 1102
}
