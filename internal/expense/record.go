package expense

import "github.com/vhictorlhanceatendido123-sudo/ocr-telegram-bot/internal/extraction"

// Record is the final form of a processed expense: the extracted receipt
// merged with its insights. The two halves carry disjoint JSON keys, so the
// serialized form stays flat.
type Record struct {
	extraction.Receipt
	extraction.Insights
}

// Merge combines an extracted receipt with its insights into one record
func Merge(rec *extraction.Receipt, insights extraction.Insights) Record {
	return Record{Receipt: *rec, Insights: insights}
}

// RowValues returns the record in ledger column order:
// date, vendor, total, category, memo
func (r Record) RowValues() []string {
	return []string{r.ReceiptDate, r.VendorName, r.TotalAmount, r.Category, r.Memo}
}
