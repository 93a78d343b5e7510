package expense

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vhictorlhanceatendido123-sudo/ocr-telegram-bot/internal/extraction"
)

var _ = Describe("formatSummary", func() {
	When("every field is present", func() {
		It("renders the markdown template", func() {
			record := Merge(&extraction.Receipt{
				VendorName:  "SM Supermarket",
				ReceiptDate: "2024-03-01",
				TotalAmount: "90",
			}, extraction.Insights{
				Category: "Food & Dining",
				Memo:     "Groceries.",
			})

			Expect(formatSummary(record)).To(Equal("🧾 *New Receipt Processed!*\n\n" +
				"*Vendor:* SM Supermarket\n" +
				"*Date:* 2024-03-01\n" +
				"*Total:* 90\n" +
				"*Category:* Food & Dining\n\n" +
				"*Memo:* _Groceries._"))
		})
	})

	When("fields are missing", func() {
		It("substitutes N/A", func() {
			record := Merge(&extraction.Receipt{VendorName: "SM Supermarket"}, extraction.Insights{})

			summary := formatSummary(record)
			Expect(summary).To(ContainSubstring("*Date:* N/A"))
			Expect(summary).To(ContainSubstring("*Total:* N/A"))
			Expect(summary).To(ContainSubstring("*Memo:* _N/A_"))
		})
	})
})

var _ = Describe("Record", func() {
	Describe("RowValues", func() {
		It("orders columns date, vendor, total, category, memo", func() {
			record := Merge(&extraction.Receipt{
				VendorName:  "Shell",
				ReceiptDate: "2024-04-02",
				TotalAmount: "1500",
			}, extraction.Insights{
				Category: "Transportation",
				Memo:     "Fuel for the delivery run.",
			})

			Expect(record.RowValues()).To(Equal([]string{"2024-04-02", "Shell", "1500", "Transportation", "Fuel for the delivery run."}))
		})
	})
})
