package chat_test

import (
	"strings"

	"github.com/voxtraditionis/vox/pkg/chat"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Sessions", func() {
	Describe("NewSession", func() {
		It("should keep a short first message as the full title", func() {
			s := chat.NewSession("What is the capital of Peru?", "en")

			Expect(s.Title).To(Equal("What is the capital of Peru?"))
			Expect(s.Language).To(Equal("en"))
			Expect(s.Messages).To(BeEmpty())
			Expect(s.ID).NotTo(BeEmpty())
		})

		It("should truncate a long first message with an ellipsis marker", func() {
			long := strings.Repeat("a", 40)
			s := chat.NewSession(long, "en")

			Expect(s.Title).To(Equal(strings.Repeat("a", 30) + "..."))
		})

		It("should truncate rune-wise, not byte-wise", func() {
			long := strings.Repeat("é", 40)
			s := chat.NewSession(long, "fr")

			Expect(s.Title).To(Equal(strings.Repeat("é", 30) + "..."))
		})
	})

	Describe("AppendMessage", func() {
		It("should append without mutating the input session", func() {
			s := chat.NewSession("hello", "en")
			s2 := chat.AppendMessage(s, chat.NewUserMessage("hello"))

			Expect(s.Messages).To(BeEmpty())
			Expect(s2.Messages).To(HaveLen(1))
		})

		It("should preserve insertion order", func() {
			s := chat.NewSession("hello", "en")
			s = chat.AppendMessage(s, chat.NewUserMessage("one"))
			s = chat.AppendMessage(s, chat.NewModelMessage("two"))
			s = chat.AppendMessage(s, chat.NewUserMessage("three"))

			Expect(s.Messages[0].Content).To(Equal("one"))
			Expect(s.Messages[1].Content).To(Equal("two"))
			Expect(s.Messages[2].Content).To(Equal("three"))
		})
	})

	Describe("UpdateStreamingContent", func() {
		var s chat.Session
		var streaming chat.Message

		BeforeEach(func() {
			streaming = chat.NewStreamingMessage()
			s = chat.NewSession("hello", "en")
			s = chat.AppendMessage(s, chat.NewUserMessage("hello"))
			s = chat.AppendMessage(s, streaming)
		})

		It("should replace the streaming message content", func() {
			s2 := chat.UpdateStreamingContent(s, streaming.ID, "partial answ")

			Expect(s2.Messages[1].Content).To(Equal("partial answ"))
			Expect(s2.Messages[1].IsStreaming).To(BeTrue())
			Expect(s.Messages[1].Content).To(BeEmpty())
		})

		It("should be a no-op for an unknown message id", func() {
			s2 := chat.UpdateStreamingContent(s, "no-such-id", "text")

			Expect(s2).To(Equal(s))
		})

		It("should be a no-op for a finalized message", func() {
			s2 := chat.FinalizeStreaming(s, streaming.ID)
			s3 := chat.UpdateStreamingContent(s2, streaming.ID, "text")

			Expect(s3).To(Equal(s2))
		})
	})

	Describe("FinalizeStreaming", func() {
		It("should clear the streaming flag and keep content", func() {
			streaming := chat.NewStreamingMessage()
			s := chat.NewSession("hello", "en")
			s = chat.AppendMessage(s, streaming)
			s = chat.UpdateStreamingContent(s, streaming.ID, "done")
			s = chat.FinalizeStreaming(s, streaming.ID)

			Expect(s.Messages[0].IsStreaming).To(BeFalse())
			Expect(s.Messages[0].Content).To(Equal("done"))
			Expect(chat.HasStreamingMessage(s)).To(BeFalse())
		})
	})

	Describe("ReplaceStreamingWithError", func() {
		It("should remove the streaming message and append the error at the end", func() {
			streaming := chat.NewStreamingMessage()
			s := chat.NewSession("hello", "en")
			s = chat.AppendMessage(s, chat.NewUserMessage("hello"))
			s = chat.AppendMessage(s, streaming)

			errMsg := chat.NewModelMessage("Mea culpa. Please try again.")
			s = chat.ReplaceStreamingWithError(s, streaming.ID, errMsg)

			Expect(s.Messages).To(HaveLen(2))
			last, ok := chat.LastMessage(s)
			Expect(ok).To(BeTrue())
			Expect(last.ID).To(Equal(errMsg.ID))
			Expect(last.IsStreaming).To(BeFalse())
			Expect(chat.HasStreamingMessage(s)).To(BeFalse())
		})
	})

	Describe("streaming invariant", func() {
		It("should keep at most one streaming message, always last", func() {
			s := chat.NewSession("hello", "en")
			s = chat.AppendMessage(s, chat.NewUserMessage("hello"))
			streaming := chat.NewStreamingMessage()
			s = chat.AppendMessage(s, streaming)
			s = chat.UpdateStreamingContent(s, streaming.ID, "a")
			s = chat.UpdateStreamingContent(s, streaming.ID, "ab")

			count := 0
			for i, m := range s.Messages {
				if m.IsStreaming {
					count++
					Expect(i).To(Equal(len(s.Messages) - 1))
				}
			}
			Expect(count).To(Equal(1))
		})
	})
})
