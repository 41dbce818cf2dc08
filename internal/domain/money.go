package domain

import "fmt"

// FormatPrice renders cents as a dollar amount, e.g. 2550 -> "$25.50".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
