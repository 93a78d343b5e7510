package expense

import "fmt"

// Format selects how the transport should render an outgoing message
type Format string

const (
	FormatPlain    Format = "plain"
	FormatMarkdown Format = "markdown"
)

// WelcomeMessage greets a user who starts a chat with the bot
const WelcomeMessage = "Hello! I'm your multi-function Expense Bot.\n\n" +
	"➡️ Send me a photo of a receipt to process it.\n" +
	"➡️ Send me a text note of your purchases to convert it into a receipt."

// PhotoFailureReply and NoteFailureReply are the generic apologies sent when
// extraction fails. Neither carries error detail.
const (
	PhotoFailureReply = "Sorry, I couldn't process that receipt photo. Please try again."
	NoteFailureReply  = "Sorry, I couldn't understand that note. Please try formatting it a bit more clearly."
)

const (
	photoAck = "Receipt photo received! Processing..."
	noteAck  = "Note received! Converting to receipt format..."
)

const summaryFmt = "🧾 *New Receipt Processed!*\n\n" +
	"*Vendor:* %s\n" +
	"*Date:* %s\n" +
	"*Total:* %s\n" +
	"*Category:* %s\n\n" +
	"*Memo:* _%s_"

// formatSummary renders the Markdown reply for a finished record
func formatSummary(record Record) string {
	return fmt.Sprintf(summaryFmt,
		valueOrNA(record.VendorName),
		valueOrNA(record.ReceiptDate),
		valueOrNA(record.TotalAmount),
		valueOrNA(record.Category),
		valueOrNA(record.Memo),
	)
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
