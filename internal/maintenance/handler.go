package maintenance

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type Handler struct {
	service       *Service
	summaryClient *SummaryClient
	cronSecret    string
	logger        *logrus.Logger
	now           func() time.Time
}

func NewHandler(service *Service, summaryClient *SummaryClient, cronSecret string, logger *logrus.Logger) *Handler {
	return &Handler{
		service:       service,
		summaryClient: summaryClient,
		cronSecret:    cronSecret,
		logger:        logger,
		now:           time.Now,
	}
}

// authorized checks the optional shared secret. With no secret configured
// the jobs run unauthenticated.
func (h *Handler) authorized(r *http.Request) bool {
	if h.cronSecret == "" {
		return true
	}
	return r.Header.Get("Authorization") == "Bearer "+h.cronSecret
}

// CleanupOrders handles GET/POST /cron/cleanup-orders.
func (h *Handler) CleanupOrders(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if h.service == nil {
		h.logger.Error("Order store not configured")
		respondWithError(w, http.StatusInternalServerError, "Server configuration error")
		return
	}

	report, err := h.service.Cleanup(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Order cleanup failed")
		respondWithError(w, http.StatusInternalServerError, "Failed to clean up orders")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      "Order cleanup completed successfully",
		"deletedCount": report.DeletedCount,
		"cutoffDate":   report.CutoffDate,
		"rows":         report.Rows,
		"timestamp":    h.now().Format(time.RFC3339),
	})
}

// ArchiveOrders handles GET/POST /cron/archive-orders.
func (h *Handler) ArchiveOrders(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if h.service == nil {
		h.logger.Error("Order store not configured")
		respondWithError(w, http.StatusInternalServerError, "Server configuration error")
		return
	}

	report, err := h.service.Archive(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Order archiving failed")
		respondWithError(w, http.StatusInternalServerError, "Failed to archive orders")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"message":       "Order archiving completed successfully",
		"archivedCount": report.ArchivedCount,
		"cutoffDate":    report.CutoffDate,
		"rows":          report.Rows,
		"timestamp":     h.now().Format(time.RFC3339),
	})
}

// DailySummary handles POST /daily-summary.
func (h *Handler) DailySummary(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if r.Body != nil {
		// An empty body means "today"; a malformed one is rejected.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	if req.Date != "" && !datePattern.MatchString(req.Date) {
		respondWithError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	if h.service == nil {
		h.logger.Error("Order store not configured")
		respondWithError(w, http.StatusInternalServerError, "Server configuration error")
		return
	}

	report, err := h.service.DailySummary(r.Context(), req.Date)
	if err != nil {
		h.logger.WithError(err).Error("Daily summary failed")
		respondWithError(w, http.StatusInternalServerError, "Failed to generate daily summary")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      "Daily summary sent successfully",
		"date":         report.Date,
		"orderCount":   report.OrderCount,
		"totalRevenue": report.TotalRevenue,
		"cashOrders":   report.CashOrders,
		"cardOrders":   report.CardOrders,
	})
}

// CronDailySummary handles GET/POST /cron/daily-summary. It re-enters the
// service through the public daily-summary endpoint so scheduled and manual
// triggers share one code path.
func (h *Handler) CronDailySummary(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if h.summaryClient == nil {
		h.logger.Error("Summary client not configured")
		respondWithError(w, http.StatusInternalServerError, "Server configuration error")
		return
	}

	report, err := h.summaryClient.Trigger(h.now().Format("2006-01-02"))
	if err != nil {
		h.logger.WithError(err).Error("Scheduled daily summary failed")
		respondWithError(w, http.StatusInternalServerError, "Failed to send daily summary")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Daily summary sent successfully",
		"data":      report,
		"timestamp": h.now().Format(time.RFC3339),
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
