package sms

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/yoshispizza/storefront/pkg/models"
)

// Sender is satisfied by *Client and by test fakes.
type Sender interface {
	Send(body string) (string, error)
}

type Handler struct {
	sender Sender
	logger *logrus.Logger
}

func NewHandler(sender Sender, logger *logrus.Logger) *Handler {
	return &Handler{sender: sender, logger: logger}
}

type alertRequest struct {
	OrderDetails *struct {
		Items []models.CartItem `json:"items"`
		Total float64           `json:"total"`
	} `json:"orderDetails"`
	CustomerInfo *models.CustomerInfo `json:"customerInfo"`
}

// SendOrderAlert handles POST /notifications/sms.
func (h *Handler) SendOrderAlert(w http.ResponseWriter, r *http.Request) {
	if h.sender == nil {
		h.logger.Error("SMS sender not configured")
		respondWithError(w, http.StatusInternalServerError, "SMS service not configured")
		return
	}

	var req alertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Error("Failed to decode SMS request")
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OrderDetails == nil || req.CustomerInfo == nil {
		respondWithError(w, http.StatusBadRequest, "orderDetails and customerInfo are required")
		return
	}

	body := OrderAlert(req.CustomerInfo.Name, req.CustomerInfo.Phone, req.CustomerInfo.OrderDate, req.OrderDetails.Total)
	sid, err := h.sender.Send(body)
	if err != nil {
		h.logger.WithError(err).Error("Failed to send SMS")
		respondWithError(w, http.StatusInternalServerError, "Failed to send SMS")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"messageId": sid,
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
