package cli

import (
	"fmt"

	"github.com/fatih/color"

	"assetctl/internal/assets"
)

// FormatPrice renders an optional price, dimming the placeholder when no
// price is set.
func FormatPrice(p assets.Price) string {
	if !p.Valid {
		return color.New(color.Faint).Sprint("-")
	}
	return fmt.Sprintf("%.4f", p.Value)
}

// FormatPercent formats a percentage with an explicit sign, green for gains
// and red for losses.
func FormatPercent(value float64) string {
	s := fmt.Sprintf("%+.2f%%", value)
	switch {
	case value > 0:
		return color.GreenString(s)
	case value < 0:
		return color.RedString(s)
	}
	return s
}

// FormatSigned formats a signed amount, green when positive and red when
// negative.
func FormatSigned(value float64) string {
	s := fmt.Sprintf("%+.2f", value)
	switch {
	case value > 0:
		return color.GreenString(s)
	case value < 0:
		return color.RedString(s)
	}
	return s
}
