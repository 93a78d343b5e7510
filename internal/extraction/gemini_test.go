package extraction

import (
	"github.com/google/generative-ai-go/genai"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("toGenaiSchema", func() {
	When("mapping the note receipt schema", func() {
		var result *genai.Schema

		BeforeEach(func() {
			result = toGenaiSchema(noteReceiptSchema)
		})

		It("maps the object type", func() {
			Expect(result.Type).To(Equal(genai.TypeObject))
		})

		It("keeps the required fields", func() {
			Expect(result.Required).To(Equal([]string{"vendor_name", "receipt_date", "total_amount", "line_items"}))
		})

		It("maps property types", func() {
			Expect(result.Properties["vendor_name"].Type).To(Equal(genai.TypeString))
		})

		It("maps array item schemas", func() {
			items := result.Properties["line_items"].Items
			Expect(items.Type).To(Equal(genai.TypeObject))
			Expect(items.Properties["quantity"].Type).To(Equal(genai.TypeInteger))
		})

		It("keeps field descriptions", func() {
			Expect(result.Properties["receipt_date"].Description).To(ContainSubstring("YYYY-MM-DD"))
		})
	})

	When("mapping nil", func() {
		It("returns nil", func() {
			Expect(toGenaiSchema(nil)).To(BeNil())
		})
	})
})

var _ = Describe("NewGemini", func() {
	When("the api key is empty", func() {
		It("returns the error", func() {
			_, err := NewGemini("", "gemini-2.5-pro")
			Expect(err).To(HaveOccurred())
		})
	})
})
