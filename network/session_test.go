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

	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

// reads a value, outputs its double, forever
var doubler = []vm.Cell{3, 11, 1002, 11, 2, 11, 4, 11, 1105, 1, 0, 0}

var _ = Describe("Session", func() {
	var (
		mockCtrl *gomock.Controller
		ctrl     *MockController
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		ctrl = NewMockController(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	newMachine := func(prog []vm.Cell) *vm.Instance {
		m, err := vm.New(prog)
		Expect(err).ToNot(HaveOccurred())
		return m
	}

	It("should feed the controller's answers to the machine", func() {
		m := newMachine(doubler)
		gomock.InOrder(
			ctrl.EXPECT().Step(vm.WaitingForInput, gomock.Len(0)).Return([]vm.Cell{1}, nil),
			ctrl.EXPECT().Step(vm.WaitingForInput, []vm.Cell{2}).Return([]vm.Cell{5, 6}, nil),
			ctrl.EXPECT().Step(vm.WaitingForInput, []vm.Cell{10, 12}).Return(nil, network.ErrStop),
		)
		Expect(network.NewSession(m, ctrl).Run()).To(Succeed())
		Expect(m.Waiting()).To(BeTrue())
	})

	It("should stop once the machine terminated", func() {
		m := newMachine([]vm.Cell{104, 7, 99})
		ctrl.EXPECT().Step(vm.Terminated, []vm.Cell{7}).Return(nil, nil)
		Expect(network.NewSession(m, ctrl).Run()).To(Succeed())
		Expect(m.Terminated()).To(BeTrue())
	})

	It("should detect stalls", func() {
		m := newMachine(doubler)
		ctrl.EXPECT().Step(vm.WaitingForInput, gomock.Len(0)).Return(nil, nil)
		Expect(network.NewSession(m, ctrl).Run()).To(MatchError(network.ErrStalled))
	})

	It("should forward controller errors", func() {
		boom := errors.New("boom")
		m := newMachine(doubler)
		ctrl.EXPECT().Step(gomock.Any(), gomock.Any()).Return([]vm.Cell{1}, nil)
		ctrl.EXPECT().Step(gomock.Any(), gomock.Any()).Return(nil, boom)
		Expect(network.NewSession(m, ctrl).Run()).To(MatchError(boom))
	})

	It("should return machine faults without calling the controller", func() {
		m := newMachine([]vm.Cell{98})
		err := network.NewSession(m, ctrl).Run()
		var de *vm.DecodeError
		Expect(errors.As(err, &de)).To(BeTrue())
	})

	It("should accept plain functions", func() {
		m := newMachine(doubler)
		var got []vm.Cell
		n := vm.Cell(0)
		c := network.ControllerFunc(func(status vm.HaltStatus, out []vm.Cell) ([]vm.Cell, error) {
			got = append(got, out...)
			if n == 3 {
				return nil, network.ErrStop
			}
			n++
			return []vm.Cell{n}, nil
		})
		Expect(network.NewSession(m, c).Run()).To(Succeed())
		Expect(got).To(Equal([]vm.Cell{2, 4, 6}))
	})
})
