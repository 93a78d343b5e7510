// Package ledger persists finished expense records to an append-only log.
package ledger

import "context"

// Header is the fixed column order every backend writes:
// date, vendor, total, category, memo.
var Header = []string{"Date", "Vendor", "Total", "Category", "Memo"}

// Appender defines the interface for expense log backends
type Appender interface {
	// AppendRow appends one expense row in Header order
	AppendRow(ctx context.Context, values []string) error
	// Close closes the backend and releases resources
	Close() error
}
