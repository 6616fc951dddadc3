package domain

import (
	"time"
)

// Order represents a repair job as shown to the customer.
type Order struct {
	// ID is the shop's order identifier.
	ID string `json:"order_id" validate:"required"`
	// TrackingToken is the opaque public tracking id, if the order has one.
	TrackingToken string `json:"tracking_token,omitempty"`
	// Status is the free-text status label entered by the shop.
	Status string `json:"status"`
	// OwnerID references the shop account that registered the order.
	OwnerID string `json:"-"`
	// CreatedAt is when the device was received.
	CreatedAt time.Time `json:"created_at"`
	// ProblemDescription is the fault reported by the customer.
	ProblemDescription string `json:"problem_description,omitempty"`
	// Customer holds the device owner's contact details.
	Customer Customer `json:"customer"`
	// Device describes the device under repair.
	Device Device `json:"device"`
	// Finance holds the repair quote, nil when the shop has not recorded one.
	Finance *Finance `json:"finance,omitempty"`
	// Accessories lists what was handed in with the device.
	Accessories map[string]any `json:"accessories,omitempty"`
	// Photos are URLs of intake photos.
	Photos []string `json:"photos"`
}

// Customer is the owner of the device.
type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	// IDCard is the national id (cédula).
	IDCard string `json:"id_card"`
	Phone  string `json:"phone"`
	// PhoneE164 is Phone in E.164 form, empty when it cannot be parsed.
	PhoneE164 string `json:"phone_e164,omitempty"`
	Address   string `json:"address,omitempty"`
}

// FullName joins first and last name.
func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// Device is the equipment left for repair.
type Device struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Color string `json:"color,omitempty"`
	// UnlockCode is the PIN or pattern given to the technician. Never sent to clients.
	UnlockCode string `json:"-"`
}

// Finance is the money side of an order. Nil fields were not recorded.
type Finance struct {
	RepairCost     *float64 `json:"repair_cost,omitempty"`
	Deposit        *float64 `json:"deposit,omitempty"`
	PendingBalance *float64 `json:"pending_balance,omitempty"`
}
