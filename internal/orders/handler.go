package orders

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/yoshispizza/storefront/pkg/models"
)

type Handler struct {
	service *Service
	logger  *logrus.Logger
}

func NewHandler(service *Service, logger *logrus.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// SubmitOrder handles POST /orders.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Error("Failed to decode order request")
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if h.service == nil {
		h.logger.Error("Order store not configured")
		respondWithError(w, http.StatusInternalServerError, "Server configuration error")
		return
	}

	order, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			respondWithError(w, http.StatusBadRequest, vErr.Reason)
		case errors.Is(err, ErrDuplicateOrder):
			respondWithError(w, http.StatusConflict, "Duplicate order detected. Please wait a moment before trying again.")
		default:
			h.logger.WithError(err).Error("Failed to submit order")
			respondWithError(w, http.StatusInternalServerError, "Failed to submit order")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"message":    "Order submitted successfully",
		"pickupDate": order.PickupDate,
		"pickupTime": order.PickupTime,
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
