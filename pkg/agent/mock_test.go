package agent

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("MockCaller", func() {
	var (
		caller *MockCaller
		ctx    context.Context
	)

	BeforeEach(func() {
		caller = &MockCaller{}
		ctx = context.Background()
	})

	call := func(message string) *Response {
		resp, err := caller.Call(ctx, &Request{UserID: "alice", Message: message})
		Expect(err).NotTo(HaveOccurred())
		return resp
	}

	It("greets on hello", func() {
		Expect(call("Hello there").Response).To(ContainSubstring("How can I help you"))
	})

	It("asks for project details on quote requests", func() {
		Expect(call("Can I get a quote?").Response).To(ContainSubstring("quote"))
	})

	It("answers pricing questions", func() {
		Expect(call("what does it cost").Response).To(ContainSubstring("Pricing"))
	})

	It("offers contractor matching", func() {
		Expect(call("I need a contractor").Response).To(ContainSubstring("contractor"))
	})

	It("acknowledges thanks", func() {
		Expect(call("thank you!").Response).To(Equal("You're welcome! Is there anything else I can help you with?"))
	})

	It("echoes unrecognized messages back", func() {
		Expect(call("something unusual").Response).To(ContainSubstring(`"something unusual"`))
	})

	It("tags every reply as neutral", func() {
		Expect(call("hello").Sentiment).To(Equal("neutral"))
	})

	It("honors context cancellation during the simulated delay", func() {
		caller.Delay = time.Minute

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := caller.Call(cancelled, &Request{UserID: "alice", Message: "hello"})
		Expect(err).To(MatchError(context.Canceled))
	})
})
