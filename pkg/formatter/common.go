package formatter

import (
	"fmt"
)

// MAX_NAME_WIDTH defines the maximum width for Name column
const MAX_NAME_WIDTH = 20

// MAX_DESCRIPTION_WIDTH defines the maximum width for Description column
const MAX_DESCRIPTION_WIDTH = 40

// FormatMonthlyCost renders an estimated monthly cost, or N/A when no
// pricing data was available
func FormatMonthlyCost(cost float64, source string) string {
	if source == "N/A" {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", cost)
}

// displayName normalizes a resource name for the NAME column: empty
// names become N/A, long names are truncated and CJK-aware padded
func displayName(name string) string {
	if name == "" {
		name = "N/A"
	}
	return PadToWidth(TruncateToWidth(name, MAX_NAME_WIDTH), MAX_NAME_WIDTH)
}
