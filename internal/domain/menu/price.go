package menu

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tindahan/tindahan/internal/domain"
)

// Price is a non-negative fixed-point amount with two fraction digits,
// stored as an integer count of cents. The JSON representation is a
// decimal string ("149.50"), matching the wire shape of the column it is
// persisted to (NUMERIC(8,2)).
type Price int64

// maxPriceCents caps a price at 8 significant digits (999999.99).
const maxPriceCents = 99999999

// ParsePrice converts a decimal string into a Price. At most two fraction
// digits are accepted; negative amounts are rejected.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: price is required", domain.ErrValidation)
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}

	whole, frac := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		whole, frac = s[:dot], s[dot+1:]
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: price has more than 2 decimal places", domain.ErrValidation)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if whole == "" {
		whole = "0"
	}

	// ParseUint rejects sign characters, so "5.-1" cannot sneak a
	// negative fraction past the leading-minus check above.
	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid price %q", domain.ErrValidation, s)
	}
	if w > maxPriceCents/100 {
		return 0, fmt.Errorf("%w: price exceeds maximum", domain.ErrValidation)
	}
	f, err := strconv.ParseUint(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid price %q", domain.ErrValidation, s)
	}

	return Price(w*100 + f), nil
}

// String formats the price as a decimal with two fraction digits.
func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", int64(p)/100, int64(p)%100)
}

// MarshalJSON encodes the price as a decimal string.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts either a decimal string ("12.34") or a bare JSON
// number (12.34).
func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		s = unquoted
	}
	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
