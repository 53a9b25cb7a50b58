package proctree

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("stat parsing", func() {
	It("reads the parent pid", func() {
		ppid, err := parseStatPpid("4242 (dlv) S 4200 4242 4200 0 -1 4194560")
		Expect(err).NotTo(HaveOccurred())
		Expect(ppid).To(Equal(4200))
	})

	It("copes with parentheses and spaces in the command name", func() {
		ppid, err := parseStatPpid("77 (my (odd) cmd) R 12 77 12 0")
		Expect(err).NotTo(HaveOccurred())
		Expect(ppid).To(Equal(12))
	})

	It("rejects garbage", func() {
		_, err := parseStatPpid("garbage")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("tree walking", func() {
	It("returns every generation and ignores unrelated processes", func() {
		children := map[int][]int{
			1:  {10, 20},
			10: {11},
			11: {12},
			30: {31},
		}
		Expect(walk(1, children)).To(Equal([]int{10, 20, 11, 12}))
		Expect(walk(99, children)).To(BeEmpty())
	})
})
