package billimport

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bill-center/backend/internal/domain/entity"
)

// BillSummary is the part of a row sent to the completion service.
type BillSummary struct {
	Remark    string
	Amount    decimal.Decimal
	Direction entity.Direction
}

// buildPrompt asks for one suggestion per bill, addressed by the bill's position in bills.
func buildPrompt(catalog *Catalog, bills []BillSummary) string {
	var sb strings.Builder

	sb.WriteString(`You are a personal bookkeeping assistant. Recommend the most suitable category and tags for each bill below.

AVAILABLE CATEGORIES:
`)
	if len(catalog.Categories) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, cat := range catalog.Categories {
		sb.WriteString(fmt.Sprintf("- %s (id: %s, type: %s)\n", cat.Name, cat.ID, cat.Direction))
	}

	sb.WriteString("\nAVAILABLE TAGS:\n")
	if len(catalog.Tags) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, tag := range catalog.Tags {
		sb.WriteString(fmt.Sprintf("- %s (id: %s)\n", tag.Name, tag.ID))
	}

	sb.WriteString("\nBILLS TO ANALYZE:\n")
	for i, bill := range bills {
		sb.WriteString(fmt.Sprintf("%d. remark: %q, amount: %s, type: %s\n", i, bill.Remark, bill.Amount.String(), bill.Direction))
	}

	sb.WriteString(`
Return a JSON array with one element per bill, using the number before each bill as its index (starting at 0):
[
  {
    "index": 0,
    "categoryId": "recommended category id",
    "categoryName": "category name",
    "tagIds": ["recommended tag ids"],
    "tagNames": ["tag names"],
    "confidence": 0.9,
    "reason": "why"
  }
]

RULES:
1. The category type (INCOME/EXPENSE) must match the bill type.
2. When nothing fits, return null or an empty array for that field.
3. confidence is a number between 0 and 1.
4. Return only the JSON array, without explanations or markdown.
`)

	return sb.String()
}
