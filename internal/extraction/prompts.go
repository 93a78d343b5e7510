package extraction

// imageExtractionPrompt instructs the model to read a receipt photo. The
// structural requirements live in imageReceiptSchema, not the prompt.
const imageExtractionPrompt = `Analyze this receipt image and extract the vendor name, date, line items, and the final total amount. Format the output according to the provided JSON schema.`

// noteExtractionPromptFmt wraps a free-text shopping note. The first format
// argument is the reference date (used when the note names no date), the
// second the note itself.
const noteExtractionPromptFmt = `You are an expert data entry assistant. Analyze the following unstructured shopping note and convert it into a structured receipt format based on the provided JSON schema.

- Today's date is %s. Use this if no other date is mentioned.
- The user is in the Philippines, so prices are in PHP.
- Infer the vendor if possible (e.g., 'SM' means 'SM Supermarket').
- Calculate the total by summing the item amounts if it's not stated.
- Assume a quantity of 1 for items unless specified otherwise.

Here is the note:
---
%s
---`

// insightsPromptFmt takes the extracted receipt as indented JSON. The
// response is free-form text expected to contain a category/memo object.
const insightsPromptFmt = `Based on the following receipt data, please perform two tasks:
1. Categorize this expense into one of the following common business categories: Food & Dining, Travel, Office Supplies, Transportation, Utilities, or Other.
2. Write a concise, one-sentence expense memo describing the purchase.

Receipt Data:
%s

Provide the output as a JSON object with two keys: "category" and "memo".`
