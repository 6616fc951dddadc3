// Package phone formats customer phone numbers for display.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Normalizer parses numbers written without a country code as belonging to
// its default region.
type Normalizer struct {
	region string
}

// NewNormalizer creates a Normalizer for an ISO 3166 region such as "DO".
func NewNormalizer(region string) *Normalizer {
	return &Normalizer{region: strings.ToUpper(region)}
}

// E164 formats input as E.164. It reports false when input is not a valid number.
func (n *Normalizer) E164(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	number, err := phonenumbers.Parse(trimmed, n.region)
	if err != nil {
		return "", false
	}

	if !phonenumbers.IsValidNumber(number) {
		return "", false
	}

	return phonenumbers.Format(number, phonenumbers.E164), true
}
