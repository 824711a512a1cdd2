package models

// CustomerInfo is the customer block of an order submission, matching the
// order form field names.
type CustomerInfo struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	ReferralCode    string `json:"referralCode"`
	OrderDate       string `json:"orderDate"` // pickup date, YYYY-MM-DD
	PickupTime      string `json:"pickupTime"`
	SpecialRequests string `json:"specialRequests"`
}

// PaymentInfo describes how the order will be paid. Card orders carry the
// id of an already-completed charge; this service never charges inline.
type PaymentInfo struct {
	Type      string `json:"type"` // "cash" or "card"
	PaymentID string `json:"paymentId,omitempty"`
	CardLast4 string `json:"cardLast4,omitempty"`
	CardBrand string `json:"cardBrand,omitempty"`
}

// CartItem is one line of the client-side cart as submitted.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderRequest is the JSON payload accepted by POST /orders.
type OrderRequest struct {
	Customer    *CustomerInfo `json:"customer"`
	Items       []CartItem    `json:"items"`
	Total       float64       `json:"total"`
	PaymentInfo PaymentInfo   `json:"paymentInfo"`
	OrderTime   string        `json:"orderTime,omitempty"`
}
