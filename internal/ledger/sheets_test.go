package ledger

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NewSheets", func() {
	When("the spreadsheet id is empty", func() {
		It("returns the error", func() {
			_, err := NewSheets(context.Background(), "credentials.json", "", "Sheet1")
			Expect(err).To(HaveOccurred())
		})
	})

	When("the credentials file is missing", func() {
		It("returns the error", func() {
			missing := filepath.Join(GinkgoT().TempDir(), "credentials.json")
			_, err := NewSheets(context.Background(), missing, "sheet-id", "Sheet1")
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("Postgres", func() {
	Describe("AppendRow", func() {
		When("the row has the wrong number of columns", func() {
			It("returns the error", func() {
				p := &Postgres{}
				err := p.AppendRow(context.Background(), []string{"2024-03-01", "SM Supermarket", "90"})
				Expect(err).To(HaveOccurred())
			})
		})
	})
})
