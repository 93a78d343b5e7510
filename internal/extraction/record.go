package extraction

import "fmt"

// Receipt contains the structured form of a purchase, extracted from a photo
// or a free-text shopping note
type Receipt struct {
	VendorName  string     `json:"vendor_name"`
	ReceiptDate string     `json:"receipt_date"` // ISO 8601 format
	TotalAmount string     `json:"total_amount"` // kept as text, never parsed into a numeric
	LineItems   []LineItem `json:"line_items,omitempty"`
}

// LineItem is a single purchased item on a receipt
type LineItem struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Quantity    int    `json:"quantity,omitempty"` // note path only, defaults to 1
}

// Insights carries the category and memo derived from a receipt
type Insights struct {
	Category string `json:"category"`
	Memo     string `json:"memo"`
}

const (
	// CategoryOther absorbs expenses that fit none of the named categories
	CategoryOther = "Other"
	// CategoryUncategorized marks records whose enrichment failed entirely
	CategoryUncategorized = "Uncategorized"
)

// Categories is the closed set of categories enrichment may assign
var Categories = []string{
	"Food & Dining",
	"Travel",
	"Office Supplies",
	"Transportation",
	"Utilities",
	CategoryOther,
}

// FallbackInsights returns the fixed values used when enrichment fails
func FallbackInsights() Insights {
	return Insights{
		Category: CategoryUncategorized,
		Memo:     "Could not generate memo.",
	}
}

// Error reports a failed extraction attempt. Op names the input kind,
// "image" or "note".
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extracting receipt from %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
