package model

import "fmt"

// systemPrompt pins the model to the fixed four-column CSV contract that the
// parser expects.
const systemPrompt = "You are a helpful assistant that extracts and categorizes rep firm line sheet information. " +
	"Always return data in CSV format with exactly 4 columns: Rep Firm Name, Brand Carried, Product Covered, Product Space. " +
	"Each individual product should be on its own row, even if multiple products are mentioned together."

const promptTemplate = `Please extract information with the following columns:
- Rep Firm Name (must be the official, properly capitalized name of the rep firm, not an abbreviation, domain, or placeholder)
- Brand Carried (must be the official, properly capitalized brand/manufacturer name, not a filename, abbreviation, or unclear string)
- Product Covered (extract the exact products listed or mentioned on the page; be as specific as possible)
- Product Space (use broad water/wastewater treatment process steps, e.g., Flow Control, Clarification, Disinfection, Aeration, Filtration, Chemical Feed, etc. Do NOT use specific model names or chemicals. If you cannot be specific, use 'Water Treatment' or 'Wastewater Treatment' as a catch-all, but only as a last resort)

Rep Firm Name: %s

Website content:
%s

Please analyze this content carefully and extract any information about:
1. Manufacturers or brands the rep firm represents (official, properly capitalized names only)
2. Equipment categories or product types they offer (exact products listed; be as specific as possible)
3. Water/wastewater treatment process steps they cover (broad categories only; be as specific as possible)

IMPORTANT: Each individual product should be on its own row. If a brand carries multiple products, create separate rows for each product. For example:
- If you see "Brand A carries pumps, valves, and filters", create 3 separate rows
- If you see "Brand B offers Surface Aerators and Submersible Mixers", create 2 separate rows
- Do not combine multiple products into a single cell

Format the output as CSV with exactly these 4 columns: Rep Firm Name, Brand Carried, Product Covered, Product Space
Include the header row. Do not include any other text, comments, or formatting.`

// BuildPrompt composes the user message for one categorization call. Page
// text longer than limit runes is truncated so the request stays inside the
// model's token budget.
func BuildPrompt(pageText, repFirmName string, limit int) string {
	if repFirmName == "" {
		repFirmName = "Extract from content"
	}
	return fmt.Sprintf(promptTemplate, repFirmName, TruncateText(pageText, limit))
}

// TruncateText caps s at limit runes, marking the cut with an ellipsis.
// A limit of zero or less means no truncation.
func TruncateText(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
