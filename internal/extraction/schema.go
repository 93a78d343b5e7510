package extraction

// SchemaType is the JSON type of a schema node
type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeArray   SchemaType = "array"
	TypeString  SchemaType = "string"
	TypeInteger SchemaType = "integer"
)

// Schema describes the shape of a constrained generation response. It is
// provider-neutral: the Gemini backend maps it onto the SDK's schema type and
// the Ollama backend sends it verbatim as the chat format field.
type Schema struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// imageReceiptSchema is the contract for receipts read from photos. Line
// items are optional here since photographed receipts are often partly
// unreadable.
var imageReceiptSchema = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"vendor_name": {
			Type:        TypeString,
			Description: "The name of the store or vendor.",
		},
		"receipt_date": {
			Type:        TypeString,
			Description: "The date on the receipt (e.g., YYYY-MM-DD).",
		},
		"total_amount": {
			Type:        TypeString,
			Description: "The final total amount paid.",
		},
		"line_items": {
			Type: TypeArray,
			Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"description": {
						Type:        TypeString,
						Description: "Description of the purchased item.",
					},
					"amount": {
						Type:        TypeString,
						Description: "Price of the individual item.",
					},
				},
				Required: []string{"description", "amount"},
			},
		},
	},
	Required: []string{"vendor_name", "receipt_date", "total_amount"},
}

// noteReceiptSchema is the stricter contract for receipts converted from
// shopping notes. Every field is required and items carry a quantity; the
// descriptions double as inference instructions for the model.
var noteReceiptSchema = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"vendor_name": {
			Type:        TypeString,
			Description: "The name of the supermarket or store. Infer this from the note if possible, otherwise use 'General Store'.",
		},
		"receipt_date": {
			Type:        TypeString,
			Description: "The date of the purchase. If not mentioned, use today's date in YYYY-MM-DD format.",
		},
		"total_amount": {
			Type:        TypeString,
			Description: "The final total amount paid. Calculate this by summing all line items if not explicitly mentioned.",
		},
		"line_items": {
			Type: TypeArray,
			Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"description": {
						Type:        TypeString,
						Description: "Description of the purchased item.",
					},
					"quantity": {
						Type:        TypeInteger,
						Description: "The quantity of the item purchased, default to 1 if not specified.",
					},
					"amount": {
						Type:        TypeString,
						Description: "Price of the individual item or total for the quantity.",
					},
				},
				Required: []string{"description", "quantity", "amount"},
			},
		},
	},
	Required: []string{"vendor_name", "receipt_date", "total_amount", "line_items"},
}
