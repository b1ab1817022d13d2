package dashboard

import (
	"math"

	"golang.org/x/text/message"
)

// Formatter renders counters and amounts with locale-aware digit grouping.
type Formatter struct {
	printer *message.Printer
}

var defaultFormatter = FormatterFor("en")

// Count renders an integer with thousands separators.
func (f Formatter) Count(n int64) string {
	return f.printer.Sprintf("%d", n)
}

// Currency renders a dollar amount rounded to whole units.
func (f Formatter) Currency(amount float64) string {
	return f.printer.Sprintf("$%d", int64(math.Round(amount)))
}

// Litres renders a volume in litres.
func (f Formatter) Litres(n int64) string {
	return f.Count(n) + " L"
}

// Percent renders a signed trend as an absolute percentage.
func (f Formatter) Percent(trend float64) string {
	return f.printer.Sprintf("%.1f%%", math.Abs(trend))
}

// FormatCount renders an integer in English grouping.
func FormatCount(n int64) string { return defaultFormatter.Count(n) }

// FormatCurrency renders a whole-dollar amount in English grouping.
func FormatCurrency(amount float64) string { return defaultFormatter.Currency(amount) }

// FormatLitres renders a volume in English grouping.
func FormatLitres(n int64) string { return defaultFormatter.Litres(n) }

// FormatPercent renders an absolute trend percentage.
func FormatPercent(trend float64) string { return defaultFormatter.Percent(trend) }
