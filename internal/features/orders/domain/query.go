package domain

import "unicode/utf8"

const (
	// TokenMinLength is the length above which a query is treated as a tracking token.
	TokenMinLength = 20
	// OrderIDMaxLength is the exclusive upper bound on the length of a numeric order id.
	OrderIDMaxLength = 8
)

// QueryKind names the store predicate a Query resolves to.
type QueryKind string

const (
	// QueryKindExactID matches the order identifier.
	QueryKindExactID QueryKind = "EXACT_ID"
	// QueryKindToken matches the public tracking token.
	QueryKindToken QueryKind = "TOKEN"
	// QueryKindOwnerFields matches the owner's national id or phone.
	QueryKindOwnerFields QueryKind = "OWNER_FIELDS"
)

// Query is the descriptor produced by Classify. It is implemented only by
// ByExactID, ByToken and ByOwnerFields.
type Query interface {
	// Kind reports which variant the descriptor is.
	Kind() QueryKind
	// SingleResult reports whether the store is expected to return at most one record.
	SingleResult() bool
	sealed()
}

// ByExactID looks an order up by its identifier.
type ByExactID struct {
	ID string `json:"id"`
}

// ByToken looks an order up by its opaque tracking token.
type ByToken struct {
	Token string `json:"token"`
}

// ByOwnerFields matches orders whose owner has exactly this national id or
// whose phone contains PhoneFragment, ignoring case.
type ByOwnerFields struct {
	IDCard        string `json:"id_card"`
	PhoneFragment string `json:"phone_fragment"`
}

func (ByExactID) Kind() QueryKind     { return QueryKindExactID }
func (ByToken) Kind() QueryKind       { return QueryKindToken }
func (ByOwnerFields) Kind() QueryKind { return QueryKindOwnerFields }

func (ByExactID) SingleResult() bool     { return true }
func (ByToken) SingleResult() bool       { return true }
func (ByOwnerFields) SingleResult() bool { return false }

func (ByExactID) sealed()     {}
func (ByToken) sealed()       {}
func (ByOwnerFields) sealed() {}

// Classify decides which store predicate a search string identifies.
// raw must already be trimmed and non-empty; the rules are applied in order:
//
//   - longer than TokenMinLength characters: ByToken
//   - only ASCII digits and shorter than OrderIDMaxLength: ByExactID
//   - anything else: ByOwnerFields with both fields set to raw
//
// An 8-digit string is therefore an owner lookup, not an order id.
func Classify(raw string) Query {
	n := utf8.RuneCountInString(raw)

	if n > TokenMinLength {
		return ByToken{Token: raw}
	}

	if n < OrderIDMaxLength && isDigits(raw) {
		return ByExactID{ID: raw}
	}

	return ByOwnerFields{IDCard: raw, PhoneFragment: raw}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
