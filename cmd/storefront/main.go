package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/yoshispizza/storefront/internal/cart"
	"github.com/yoshispizza/storefront/internal/config"
	"github.com/yoshispizza/storefront/internal/maintenance"
	"github.com/yoshispizza/storefront/internal/orders"
	"github.com/yoshispizza/storefront/internal/payments"
	"github.com/yoshispizza/storefront/internal/sheets"
	"github.com/yoshispizza/storefront/internal/slots"
	"github.com/yoshispizza/storefront/internal/sms"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	ctx := context.Background()

	// External collaborators are constructed once at startup. A missing
	// credential degrades the affected endpoints to configuration errors
	// instead of killing the process.
	var orderStore *sheets.OrderStore
	if sheetsClient, err := sheets.NewClient(ctx, cfg, logger); err != nil {
		logger.WithError(err).Warn("Order store unavailable")
	} else {
		orderStore = sheets.NewOrderStore(sheetsClient, cfg.OrdersSheetID, logger)
	}

	var smsClient *sms.Client
	if client, err := sms.NewClient(cfg, logger); err != nil {
		logger.WithError(err).Warn("SMS sender unavailable")
	} else {
		smsClient = client
	}

	var squareClient *payments.Client
	if client, err := payments.NewClient(cfg, logger); err != nil {
		logger.WithError(err).Warn("Payment client unavailable")
	} else {
		squareClient = client
	}

	var intakeService *orders.Service
	var slotService *slots.Service
	var maintService *maintenance.Service
	if orderStore != nil {
		var sender orders.Sender
		if smsClient != nil {
			sender = smsClient
		}
		intakeService = orders.NewService(orderStore, sender, cfg.ReferralAllowList(), logger)
		slotService = slots.NewService(orderStore, logger)

		var maintSender maintenance.Sender
		if smsClient != nil {
			maintSender = smsClient
		}
		maintService = maintenance.NewService(orderStore, maintSender, logger)
	}

	var charger payments.Charger
	if squareClient != nil {
		charger = squareClient
	}
	var smsSender sms.Sender
	if smsClient != nil {
		smsSender = smsClient
	}

	orderHandler := orders.NewHandler(intakeService, logger)
	slotHandler := slots.NewHandler(slotService, logger)
	paymentHandler := payments.NewHandler(charger, logger)
	smsHandler := sms.NewHandler(smsSender, logger)
	maintHandler := maintenance.NewHandler(
		maintService,
		maintenance.NewSummaryClient(cfg.PublicBaseURL, logger),
		cfg.CronSecret,
		logger,
	)

	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.HandleFunc("/menu", cart.MenuHandler).Methods("GET")
	router.HandleFunc("/available-times", slotHandler.AvailableTimes).Methods("GET")
	router.HandleFunc("/orders", orderHandler.SubmitOrder).Methods("POST")
	router.HandleFunc("/payment", paymentHandler.ProcessPayment).Methods("POST")
	router.HandleFunc("/notifications/sms", smsHandler.SendOrderAlert).Methods("POST")
	router.HandleFunc("/daily-summary", maintHandler.DailySummary).Methods("POST")
	router.HandleFunc("/cron/cleanup-orders", maintHandler.CleanupOrders).Methods("GET", "POST")
	router.HandleFunc("/cron/archive-orders", maintHandler.ArchiveOrders).Methods("GET", "POST")
	router.HandleFunc("/cron/daily-summary", maintHandler.CronDailySummary).Methods("GET", "POST")

	router.Use(loggingMiddleware(logger))

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("address", cfg.Address).Info("Starting storefront service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server gracefully stopped")
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"storefront"}`))
}

func loggingMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"remote":   r.RemoteAddr,
				"duration": time.Since(start).Milliseconds(),
			}).Info("Request completed")
		})
	}
}
