package slots

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
	logger  *logrus.Logger
}

func NewHandler(service *Service, logger *logrus.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// AvailableTimes handles GET /available-times?date=YYYY-MM-DD.
func (h *Handler) AvailableTimes(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		respondWithError(w, http.StatusBadRequest, "Date parameter is required")
		return
	}

	if h.service == nil {
		h.logger.Error("Order store not configured")
		respondWithError(w, http.StatusInternalServerError, "Server configuration error")
		return
	}

	available, err := h.service.AvailableSlots(r.Context(), date)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			respondWithError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
			return
		}
		h.logger.WithError(err).Error("Failed to fetch available times")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch available times")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":            true,
		"date":               date,
		"availableTimeSlots": available,
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
