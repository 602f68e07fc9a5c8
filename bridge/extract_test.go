package bridge

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExtractName", func() {
	It("extracts the remainder after the phrase, lowercased", func() {
		name, ok := ExtractName("Hi, my name is Alice")
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("alice"))
	})

	It("matches the phrase case-insensitively", func() {
		name, ok := ExtractName("MY NAME IS Bob")
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("bob"))
	})

	It("keeps everything after the phrase, including multiple words", func() {
		name, ok := ExtractName("my name is alice and i like go")
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("alice and i like go"))
	})

	It("trims surrounding whitespace from the name", func() {
		name, ok := ExtractName("my name is   carol   ")
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("carol"))
	})

	It("reports no introduction when the phrase is absent", func() {
		_, ok := ExtractName("hello there")
		Expect(ok).To(BeFalse())
	})

	It("reports no introduction when nothing follows the phrase", func() {
		_, ok := ExtractName("my name is")
		Expect(ok).To(BeFalse())

		_, ok = ExtractName("my name is   ")
		Expect(ok).To(BeFalse())
	})
})
