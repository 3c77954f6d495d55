package crypto

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gitlab.com/tinyland/lab/browserhome/pkg/collectors"
)

// Block categories, derived from the 24h change only.
const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
)

// Error texts shown in the crypto container.
const (
	ErrorHeading  = "Unable to load cryptocurrency data"
	DetailPolicy  = "Request blocked by browser security policy (CORS)"
	DetailPayment = "API requires payment (402)"
	DetailNetwork = "Network error - check your connection"
	DetailGeneric = "API unavailable"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders a dollar amount with thousands separators and exactly
// two decimals, e.g. $1,234.57.
func FormatPrice(v float64) string {
	if v < 0 {
		return "-" + printer.Sprintf("$%.2f", -v)
	}
	return printer.Sprintf("$%.2f", v)
}

// FormatChange renders a percent change with two decimals. Values that are
// zero or positive after rounding get a leading "+", so 0 renders "+0.00%".
func FormatChange(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		s = "0.00"
	}
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s + "%"
}

// Category classifies a 24h change as displayed, i.e. rounded to two
// decimals, so a change that renders as 0.00% is neutral.
func Category(change24h float64) string {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(change24h, 'f', 2, 64), 64)
	switch {
	case rounded > 0:
		return Positive
	case rounded < 0:
		return Negative
	}
	return Neutral
}

// ClassifyError turns the first failure into the detail line shown under
// ErrorHeading.
func ClassifyError(err error) string {
	if err == nil {
		return DetailGeneric
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "CORS") || strings.Contains(msg, "blocked"):
		return DetailPolicy
	case strings.Contains(msg, "402") || strings.Contains(msg, "Payment"):
		return DetailPayment
	case errors.Is(err, collectors.ErrNetwork) || strings.Contains(msg, "Network"):
		return DetailNetwork
	}
	return msg
}
