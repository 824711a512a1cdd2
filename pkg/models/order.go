package models

import (
	"time"
)

// Order is the persisted record for one submitted order. The storage adapter
// maps it to and from the positional spreadsheet row, so nothing outside
// internal/sheets depends on column order.
type Order struct {
	SubmittedAt     time.Time
	CustomerName    string
	CustomerPhone   string
	PickupDate      string // YYYY-MM-DD
	PickupTime      string // display form, e.g. "4:20 PM"
	CustomerEmail   string
	ReferralCode    string
	Items           []LineItem
	Total           float64
	Status          string
	SpecialRequests string
	PaymentMethod   string
	PaymentStatus   string
	PaymentID       string
}

type LineItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// StoredOrder is an order together with its 1-indexed sheet row number
// (row 1 is the header), which maintenance jobs need for deletion.
type StoredOrder struct {
	RowNumber int
	Order
}

// ArchivedOrder is an order copied into the append-only archive.
type ArchivedOrder struct {
	Order
	ArchivedAt time.Time
}

// TimeSlot is one bookable pickup time, recomputed per request.
type TimeSlot struct {
	Value   string `json:"value"`   // 24-hour, e.g. "16:20"
	Display string `json:"display"` // e.g. "4:20 PM"
}
