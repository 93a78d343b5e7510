package extraction

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Enricher", func() {
	var (
		generator *mockGenerator
		enricher  *Enricher
		rec       *Receipt
		insights  Insights
		err       error
	)

	BeforeEach(func() {
		generator = newMockGenerator(`{"category": "Food & Dining", "memo": "Groceries from SM Supermarket."}`)
		enricher = NewEnricher(generator)
		rec = &Receipt{
			VendorName:  "SM Supermarket",
			ReceiptDate: "2024-03-01",
			TotalAmount: "90",
		}
	})

	JustBeforeEach(func() {
		insights, err = enricher.Enrich(context.Background(), rec)
	})

	When("enrichment succeeds", func() {
		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return the category", func() {
			Expect(insights.Category).To(Equal("Food & Dining"))
		})

		It("should return the memo", func() {
			Expect(insights.Memo).To(Equal("Groceries from SM Supermarket."))
		})

		It("should not constrain the response with a schema", func() {
			Expect(generator.lastReq.Schema).To(BeNil())
		})

		It("should embed the serialized receipt in the prompt", func() {
			Expect(generator.lastReq.Prompt).To(ContainSubstring(`"vendor_name": "SM Supermarket"`))
		})

		It("should name the category vocabulary in the prompt", func() {
			Expect(generator.lastReq.Prompt).To(ContainSubstring("Food & Dining, Travel, Office Supplies, Transportation, Utilities, or Other"))
		})
	})

	When("the response is wrapped in markdown code blocks", func() {
		BeforeEach(func() {
			generator.response = "```json\n{\"category\": \"Utilities\", \"memo\": \"Monthly electric bill.\"}\n```"
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should parse the category", func() {
			Expect(insights.Category).To(Equal("Utilities"))
		})
	})

	When("the response wraps the object in prose", func() {
		BeforeEach(func() {
			generator.response = `Sure! Here is the requested JSON: {"category": "Travel", "memo": "Taxi ride to the airport."} Hope that helps.`
		})

		It("still parses the object", func() {
			Expect(insights.Category).To(Equal("Travel"))
		})
	})

	When("the category is outside the known set", func() {
		BeforeEach(func() {
			generator.response = `{"category": "Groceries", "memo": "Weekly shop."}`
		})

		It("coerces the category to Other", func() {
			Expect(insights.Category).To(Equal("Other"))
		})
	})

	When("the category differs only in case", func() {
		BeforeEach(func() {
			generator.response = `{"category": "food & dining", "memo": "Team lunch."}`
		})

		It("canonicalizes the category", func() {
			Expect(insights.Category).To(Equal("Food & Dining"))
		})
	})

	When("the generator fails", func() {
		var setupErr error

		BeforeEach(func() {
			setupErr = errors.New("transport error")
			generator.err = setupErr
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(setupErr))
		})
	})

	When("the response contains no JSON", func() {
		BeforeEach(func() {
			generator.response = "I could not categorize this expense."
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
		})
	})
})
