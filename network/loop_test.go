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

package network_test

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
)

var (
	pipeline1 = []vm.Cell{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0}
	pipeline2 = []vm.Cell{3, 23, 3, 24, 1002, 24, 10, 24, 1002, 23, -1, 23, 101, 5, 23, 23, 1, 24, 23, 23, 4, 23, 99,
		0, 0}
	pipeline3 = []vm.Cell{3, 31, 3, 32, 1002, 32, 10, 32, 1001, 31, -2, 31, 1007, 31, 0, 33, 1002, 33, 7, 33, 1, 33,
		31, 31, 1, 32, 31, 31, 4, 31, 99, 0, 0, 0}
	feedback1 = []vm.Cell{3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26, 27, 4, 27, 1001, 28, -1, 28,
		1005, 28, 6, 99, 0, 0, 5}
	feedback2 = []vm.Cell{3, 52, 1001, 52, -5, 52, 3, 53, 1, 52, 56, 54, 1007, 54, 5, 55, 1005, 55, 26, 1001, 54, -5,
		54, 1105, 1, 12, 1, 53, 54, 53, 1008, 54, 0, 55, 1001, 55, 1, 55, 2, 53, 55, 53, 4, 53,
		1001, 56, -1, 56, 1005, 56, 6, 99, 0, 0, 0, 0, 10}
)

type stepCounter struct {
	n int
}

func (c *stepCounter) Trace(vm.Step) {
	c.n++
}

var _ = Describe("Transfer", func() {
	It("should move all outputs in order", func() {
		src, err := vm.New([]vm.Cell{104, 1, 104, 2, 104, 3, 99})
		Expect(err).ToNot(HaveOccurred())
		dst, err := vm.New([]vm.Cell{3, 0, 3, 0, 3, 0, 99})
		Expect(err).ToNot(HaveOccurred())
		Expect(src.Run()).To(Succeed())

		Expect(network.Transfer(dst, src)).To(Equal(3))
		Expect(src.PendingOutput()).To(BeZero())
		Expect(dst.PendingInput()).To(Equal(3))
		Expect(network.Transfer(dst, src)).To(BeZero())

		Expect(dst.Run()).To(Succeed())
		Expect(dst.Terminated()).To(BeTrue())
		v, err := dst.ReadCell(0)
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(vm.Cell(3)))
	})
})

var _ = Describe("Loop", func() {
	DescribeTable("open pipelines",
		func(prog []vm.Cell, phases []vm.Cell, want vm.Cell) {
			l, err := network.NewLoop(prog, phases, network.Feedback(false))
			Expect(err).ToNot(HaveOccurred())
			Expect(l.Run(0)).To(Equal(want))
		},
		Entry("43210", pipeline1, []vm.Cell{4, 3, 2, 1, 0}, vm.Cell(43210)),
		Entry("54321", pipeline2, []vm.Cell{0, 1, 2, 3, 4}, vm.Cell(54321)),
		Entry("65210", pipeline3, []vm.Cell{1, 0, 4, 3, 2}, vm.Cell(65210)),
	)

	DescribeTable("feedback loops",
		func(prog []vm.Cell, phases []vm.Cell, want vm.Cell) {
			l, err := network.NewLoop(prog, phases)
			Expect(err).ToNot(HaveOccurred())
			Expect(l.Run(0)).To(Equal(want))
		},
		Entry("139629729", feedback1, []vm.Cell{9, 8, 7, 6, 5}, vm.Cell(139629729)),
		Entry("18216", feedback2, []vm.Cell{9, 7, 8, 5, 6}, vm.Cell(18216)),
		Entry("single pass program", pipeline1, []vm.Cell{4, 3, 2, 1, 0}, vm.Cell(43210)),
	)

	It("should be deterministic", func() {
		var results []vm.Cell
		for range 3 {
			l, err := network.NewLoop(feedback2, []vm.Cell{9, 7, 8, 5, 6})
			Expect(err).ToNot(HaveOccurred())
			r, err := l.Run(0)
			Expect(err).ToNot(HaveOccurred())
			results = append(results, r)
		}
		Expect(results).To(HaveEach(vm.Cell(18216)))
	})

	It("should not share memory between machines", func() {
		prog := slices.Clone(feedback1)
		l, err := network.NewLoop(prog, []vm.Cell{9, 8, 7, 6, 5})
		Expect(err).ToNot(HaveOccurred())
		_, err = l.Run(0)
		Expect(err).ToNot(HaveOccurred())
		Expect(prog).To(Equal(feedback1))

		ms := l.Machines()
		Expect(ms).To(HaveLen(5))
		Expect(ms[0].Memory()).ToNot(Equal(ms[1].Memory()))
		Expect(ms[0].ID()).ToNot(Equal(ms[1].ID()))
		for _, m := range ms {
			Expect(m.Terminated()).To(BeTrue())
		}
	})

	It("should return the same result when run again", func() {
		l, err := network.NewLoop(feedback1, []vm.Cell{9, 8, 7, 6, 5})
		Expect(err).ToNot(HaveOccurred())
		Expect(l.Run(0)).To(Equal(vm.Cell(139629729)))
		Expect(l.Run(42)).To(Equal(vm.Cell(139629729)))
	})

	It("should detect deadlocks", func() {
		l, err := network.NewLoop([]vm.Cell{3, 0, 3, 0, 3, 0, 99}, []vm.Cell{1})
		Expect(err).ToNot(HaveOccurred())
		_, err = l.Run(0)
		Expect(err).To(MatchError(network.ErrDeadlock))
	})

	It("should fail when the last machine has no output", func() {
		l, err := network.NewLoop([]vm.Cell{3, 0, 3, 0, 99}, []vm.Cell{1}, network.Feedback(false))
		Expect(err).ToNot(HaveOccurred())
		_, err = l.Run(0)
		Expect(err).To(MatchError(network.ErrNoOutput))
	})

	It("should report machine faults", func() {
		l, err := network.NewLoop([]vm.Cell{3, 0, 98}, []vm.Cell{0})
		Expect(err).ToNot(HaveOccurred())
		_, err = l.Run(0)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("machine 0"))
		var de *vm.DecodeError
		Expect(errors.As(err, &de)).To(BeTrue())
		Expect(de.Word).To(Equal(vm.Cell(98)))
	})

	It("should reject bad arguments", func() {
		_, err := network.NewLoop(feedback1, nil)
		Expect(err).To(HaveOccurred())
		_, err = network.NewLoop(nil, []vm.Cell{0})
		Expect(err).To(HaveOccurred())
	})

	It("should apply options", func() {
		var c stepCounter
		buf := gbytes.NewBuffer()
		l, err := network.NewLoop(pipeline1, []vm.Cell{4, 3, 2, 1, 0},
			network.MachineOptions(vm.Trace(&c)),
			network.Logger(slog.New(slog.NewTextHandler(buf, nil))))
		Expect(err).ToNot(HaveOccurred())
		Expect(l.Run(0)).To(Equal(vm.Cell(43210)))
		// 2 inputs, 2 arithmetic ops, 1 output and halt per machine
		Expect(c.n).To(Equal(5 * 6))
		Eventually(buf).Should(gbytes.Say("loop terminated"))
	})
})
