package domain

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultImageBaseURL is the public image CDN.
const DefaultImageBaseURL = "https://images.paintx.art"

// PriceOnRequest is shown when a painting has no positive price.
const PriceOnRequest = "Price on request"

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// FormatPrice renders amount as a whole-unit price, e.g. "$12,500" or
// "RUB 90,000". Legacy "RUR" is reported as RUB.
func FormatPrice(amount float64, code string) string {
	if amount <= 0 || math.IsNaN(amount) {
		return PriceOnRequest
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	switch code {
	case "":
		code = "USD"
	case "RUR":
		code = "RUB"
	}

	whole := int64(math.Round(amount))
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%d %s", whole, code)
	}

	digits := pricePrinter.Sprintf("%d", whole)
	if sym, ok := currencySymbols[unit.String()]; ok {
		return sym + digits
	}
	return unit.String() + " " + digits
}

// PricePosition returns where current sits between min and max as a
// percentage in [0, 100]. ok is false when no range can be drawn: fewer
// than two works, or a degenerate range.
func PricePosition(min, max, current float64, count int) (percent float64, ok bool) {
	if count <= 1 {
		return 0, false
	}
	if !(min >= 0 && max > min && current >= 0) {
		return 0, false
	}
	clamped := math.Min(max, math.Max(min, current))
	return (clamped - min) / (max - min) * 100, true
}

// ImageURLs builds CDN URLs for painting images.
type ImageURLs struct {
	Base string
}

// NewImageURLs returns an ImageURLs rooted at base, or the public CDN
// when base is empty.
func NewImageURLs(base string) ImageURLs {
	if base == "" {
		base = DefaultImageBaseURL
	}
	return ImageURLs{Base: strings.TrimRight(base, "/")}
}

func (u ImageURLs) build(dir, file string) string {
	if file == "" {
		return ""
	}
	return u.Base + "/" + dir + "/" + file
}

// Thumb returns the thumbnail URL, or "" for an empty filename.
func (u ImageURLs) Thumb(file string) string { return u.build("thumb", file) }

// Mid returns the mid resolution URL.
func (u ImageURLs) Mid(file string) string { return u.build("mid", file) }

// Full returns the full resolution URL.
func (u ImageURLs) Full(file string) string { return u.build("img", file) }

// CanvasSize renders "H × W cm", or "" when unknown.
func CanvasSize(height, width float64) string {
	if height <= 0 || width <= 0 {
		return ""
	}
	return fmt.Sprintf("%g × %g cm", height, width)
}
