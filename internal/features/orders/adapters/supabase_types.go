package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"repair-tracker/internal/core/logger"

	"go.uber.org/zap"
)

// internal structs for mapping

// supabaseOrder is one row of the orders table. Nested objects were written by
// different front-ends, some as JSON columns and some as JSON-encoded text.
type supabaseOrder struct {
	// ID is the order id, numeric or text depending on the table.
	ID flexString `json:"id"`
	// PublicTrackingID is the opaque token printed on the receipt QR code.
	PublicTrackingID string `json:"public_tracking_id"`
	// Status is the label chosen by the shop.
	Status string `json:"status"`
	// UserID is the shop account that owns the order.
	UserID flexString `json:"user_id"`
	// CreatedAtCamel is the reception timestamp as written by the shop app.
	CreatedAtCamel storeTime `json:"createdAt"`
	// CreatedAtSnake is the Supabase default column.
	CreatedAtSnake storeTime `json:"created_at"`
	// ProblemDescription is the reported fault.
	ProblemDescription string `json:"problemDescription"`

	Customer    embedded[sbCustomer]     `json:"customer"`
	Device      embedded[sbDevice]       `json:"device"`
	Finance     embedded[sbFinance]      `json:"finance"`
	Accessories embedded[map[string]any] `json:"accessories"`
	Photos      photoList                `json:"photos"`
}

func (o supabaseOrder) createdAt() time.Time {
	if !time.Time(o.CreatedAtCamel).IsZero() {
		return time.Time(o.CreatedAtCamel)
	}
	return time.Time(o.CreatedAtSnake)
}

// sbCustomer holds the owner's details.
type sbCustomer struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	IDCard    flexString `json:"idCard"`
	Phone     flexString `json:"phone"`
	Address   string     `json:"address"`
}

// sbDevice describes the device.
type sbDevice struct {
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Color    string `json:"color"`
	Password string `json:"password"`
}

// sbFinance holds the quote; amounts may be numbers or numeric strings.
type sbFinance struct {
	RepairCost     flexNumber `json:"repairCost"`
	Deposit        flexNumber `json:"deposit"`
	PendingBalance flexNumber `json:"pendingBalance"`
}

var jsonNull = []byte("null")

// embedded decodes a nested object stored either natively or as a
// JSON-encoded string. Set is false for null and empty strings.
type embedded[T any] struct {
	Value T
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *embedded[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, jsonNull) {
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var encoded string
		if err := json.Unmarshal(b, &encoded); err != nil {
			return err
		}
		encoded = strings.TrimSpace(encoded)
		if encoded == "" || encoded == "null" {
			return nil
		}
		b = []byte(encoded)
	}

	if err := json.Unmarshal(b, &e.Value); err != nil {
		return fmt.Errorf("invalid embedded object: %w", err)
	}
	e.Set = true
	return nil
}

// flexString accepts a JSON string or number.
type flexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, jsonNull) {
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*s = flexString(n.String())
	return nil
}

// flexNumber accepts a JSON number or a numeric string. Unparsable strings
// decode as absent.
type flexNumber struct {
	value float64
	set   bool
}

func (n flexNumber) ptr() *float64 {
	if !n.set {
		return nil
	}
	v := n.value
	return &v
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, jsonNull) {
		return nil
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logger.Get().Warn("Failed to parse amount", zap.String("amount", raw), zap.Error(err))
		return nil
	}

	n.value, n.set = v, true
	return nil
}

// photoList accepts a comma-separated string or an array of URLs.
type photoList []string

// UnmarshalJSON implements json.Unmarshaler.
func (p *photoList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, jsonNull) {
		return nil
	}

	var urls []string
	if len(b) > 0 && b[0] == '"' {
		var joined string
		if err := json.Unmarshal(b, &joined); err != nil {
			return err
		}
		urls = strings.Split(joined, ",")
	} else if err := json.Unmarshal(b, &urls); err != nil {
		return fmt.Errorf("invalid photos: %w", err)
	}

	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	*p = out
	return nil
}

// storeTime parses the timestamp formats Supabase and the shop app produce.
type storeTime time.Time

var storeTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler. Unknown formats decode as the zero time.
func (t *storeTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		*t = storeTime(time.Time{})
		return nil
	}

	for _, layout := range storeTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = storeTime(parsed)
			return nil
		}
	}

	logger.Get().Warn("Failed to parse date", zap.String("date", s))
	return nil
}
