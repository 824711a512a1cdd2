package payments

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Charger is satisfied by *Client and by test fakes.
type Charger interface {
	Charge(sourceID string, amount float64, customerName, customerEmail string) (*ChargeResult, error)
}

type Handler struct {
	charger Charger
	logger  *logrus.Logger
}

func NewHandler(charger Charger, logger *logrus.Logger) *Handler {
	return &Handler{charger: charger, logger: logger}
}

type paymentRequest struct {
	SourceID     string  `json:"sourceId"`
	Amount       float64 `json:"amount"`
	CustomerInfo *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"customerInfo"`
}

// ProcessPayment handles POST /payment.
func (h *Handler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Error("Failed to decode payment request")
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.SourceID == "" || req.Amount <= 0 {
		respondWithError(w, http.StatusBadRequest, "Missing required payment information")
		return
	}

	if h.charger == nil {
		h.logger.Error("Payment client not configured")
		respondWithError(w, http.StatusInternalServerError, "Payment configuration error")
		return
	}

	var name, email string
	if req.CustomerInfo != nil {
		name = req.CustomerInfo.Name
		email = req.CustomerInfo.Email
	}

	result, err := h.charger.Charge(req.SourceID, req.Amount, name, email)
	if err != nil {
		h.logger.WithError(err).Error("Payment failed")
		respondWithError(w, http.StatusBadRequest, "Payment failed")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"paymentId": result.PaymentID,
		"status":    result.Status,
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
