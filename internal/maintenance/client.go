package maintenance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// SummaryClient triggers the daily-summary endpoint over HTTP, the way the
// external scheduler would. The cron handler uses it so the compute+send
// path stays identical whether the trigger is internal or external.
type SummaryClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewSummaryClient(baseURL string, logger *logrus.Logger) *SummaryClient {
	return &SummaryClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

func (c *SummaryClient) Trigger(date string) (*SummaryReport, error) {
	jsonData, err := json.Marshal(map[string]string{"date": date})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal summary request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/daily-summary", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call daily-summary: %w", err)
	}
	defer resp.Body.Close()

	var response struct {
		Success      bool    `json:"success"`
		Message      string  `json:"message"`
		Date         string  `json:"date"`
		OrderCount   int     `json:"orderCount"`
		TotalRevenue float64 `json:"totalRevenue"`
		CashOrders   int     `json:"cashOrders"`
		CardOrders   int     `json:"cardOrders"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode daily-summary response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !response.Success {
		return nil, fmt.Errorf("daily-summary returned error status: %d", resp.StatusCode)
	}

	c.logger.WithFields(logrus.Fields{
		"date":   response.Date,
		"orders": response.OrderCount,
	}).Info("Daily summary triggered")

	return &SummaryReport{
		Date:         response.Date,
		OrderCount:   response.OrderCount,
		TotalRevenue: response.TotalRevenue,
		CashOrders:   response.CashOrders,
		CardOrders:   response.CardOrders,
	}, nil
}
