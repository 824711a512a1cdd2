package payments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yoshispizza/storefront/internal/config"
)

const (
	sandboxBaseURL    = "https://connect.squareupsandbox.com"
	productionBaseURL = "https://connect.squareup.com"

	squareVersion = "2024-01-18"
)

// Client charges tokenized cards through the Square Payments API.
type Client struct {
	baseURL     string
	accessToken string
	locationID  string
	httpClient  *http.Client
	logger      *logrus.Logger
}

func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if err := cfg.SquareConfigured(); err != nil {
		return nil, err
	}

	baseURL := sandboxBaseURL
	if cfg.SquareEnvironment == "production" {
		baseURL = productionBaseURL
	}

	return &Client{
		baseURL:     baseURL,
		accessToken: cfg.SquareAccessToken,
		locationID:  cfg.SquareLocationID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}, nil
}

type ChargeResult struct {
	PaymentID string
	Status    string
}

type chargeRequest struct {
	SourceID          string `json:"source_id"`
	AmountMoney       money  `json:"amount_money"`
	LocationID        string `json:"location_id,omitempty"`
	IdempotencyKey    string `json:"idempotency_key"`
	Note              string `json:"note"`
	BuyerEmailAddress string `json:"buyer_email_address,omitempty"`
}

type money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type chargeResponse struct {
	Payment *struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"payment"`
	Errors []struct {
		Category string `json:"category"`
		Code     string `json:"code"`
		Detail   string `json:"detail"`
	} `json:"errors"`
}

// Charge converts the dollar amount to cents and submits the payment.
func (c *Client) Charge(sourceID string, amount float64, customerName, customerEmail string) (*ChargeResult, error) {
	if customerName == "" {
		customerName = "Customer"
	}

	payload := chargeRequest{
		SourceID: sourceID,
		AmountMoney: money{
			Amount:   int64(math.Round(amount * 100)),
			Currency: "USD",
		},
		LocationID:        c.locationID,
		IdempotencyKey:    uuid.New().String(),
		Note:              fmt.Sprintf("Pizza order for %s", customerName),
		BuyerEmailAddress: customerEmail,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/v2/payments", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Square-Version", squareVersion)

	c.logger.WithFields(logrus.Fields{
		"amount_cents": payload.AmountMoney.Amount,
		"currency":     payload.AmountMoney.Currency,
	}).Info("Processing payment with Square")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Square: %w", err)
	}
	defer resp.Body.Close()

	var result chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode Square response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || result.Payment == nil {
		if len(result.Errors) > 0 {
			return nil, fmt.Errorf("payment declined: %s (%s)", result.Errors[0].Detail, result.Errors[0].Code)
		}
		return nil, fmt.Errorf("Square returned error status: %d", resp.StatusCode)
	}

	c.logger.WithFields(logrus.Fields{
		"payment_id": result.Payment.ID,
		"status":     result.Payment.Status,
	}).Info("Payment successful")

	return &ChargeResult{
		PaymentID: result.Payment.ID,
		Status:    result.Payment.Status,
	}, nil
}
