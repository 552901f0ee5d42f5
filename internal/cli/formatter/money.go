package formatter

import (
	"fmt"

	"github.com/alexanderramin/cotizador/internal/pricing"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Money formats amounts in the configured currency, localized for a
// language, optionally followed by the amount converted to a display
// currency.
type Money struct {
	printer *message.Printer
	base    currency.Unit
	display *currency.Unit
	rate    float64
}

// NewMoney validates locale and ISO currency codes. An empty display code
// disables conversion.
func NewMoney(locale, code, displayCode string, rate float64) (*Money, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	base, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", code, err)
	}
	m := &Money{printer: message.NewPrinter(tag), base: base}
	if displayCode != "" {
		unit, err := currency.ParseISO(displayCode)
		if err != nil {
			return nil, fmt.Errorf("invalid display currency %q: %w", displayCode, err)
		}
		if _, err := pricing.Convert(0, rate); err != nil {
			return nil, err
		}
		m.display = &unit
		m.rate = rate
	}
	return m, nil
}

// Format renders amount such as "1,234.50 EUR", plus "(≈ 1,358.00 USD)"
// when a display currency is set.
func (m *Money) Format(amount float64) string {
	out := m.amount(amount, m.base)
	if m.display == nil {
		return out
	}
	converted, err := pricing.Convert(amount, m.rate)
	if err != nil {
		return out
	}
	return fmt.Sprintf("%s (≈ %s)", out, m.amount(converted, *m.display))
}

// Plain renders amount in the base currency only.
func (m *Money) Plain(amount float64) string {
	return m.amount(amount, m.base)
}

func (m *Money) amount(v float64, unit currency.Unit) string {
	scale, _ := currency.Standard.Rounding(unit)
	return m.printer.Sprintf("%v %s", number.Decimal(v, number.Scale(scale)), unit)
}
