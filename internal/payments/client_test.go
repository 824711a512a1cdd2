package payments

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func newTestClient(baseURL string) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: "test-token",
		locationID:  "LOC123",
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		logger:      testLogger(),
	}
}

func TestChargeConvertsDollarsToCents(t *testing.T) {
	var got chargeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/payments", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("Square-Version"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"payment": map[string]string{"id": "pay_123", "status": "COMPLETED"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	result, err := client.Charge("tok_abc", 45.50, "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)

	assert.Equal(t, "pay_123", result.PaymentID)
	assert.Equal(t, "COMPLETED", result.Status)

	assert.Equal(t, "tok_abc", got.SourceID)
	assert.Equal(t, int64(4550), got.AmountMoney.Amount)
	assert.Equal(t, "USD", got.AmountMoney.Currency)
	assert.Equal(t, "LOC123", got.LocationID)
	assert.NotEmpty(t, got.IdempotencyKey)
	assert.Equal(t, "Pizza order for Ada Lovelace", got.Note)
}

func TestChargeUniqueIdempotencyKeys(t *testing.T) {
	var keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chargeRequest
		json.NewDecoder(r.Body).Decode(&req)
		keys = append(keys, req.IdempotencyKey)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"payment": map[string]string{"id": "pay_123", "status": "COMPLETED"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Charge("tok_abc", 20, "", "")
	require.NoError(t, err)
	_, err = client.Charge("tok_abc", 20, "", "")
	require.NoError(t, err)

	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
}

func TestChargeDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": []map[string]string{
				{"category": "PAYMENT_METHOD_ERROR", "code": "CARD_DECLINED", "detail": "Card declined"},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Charge("tok_abc", 20, "Ada", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CARD_DECLINED")
}

func TestChargeDefaultsCustomerName(t *testing.T) {
	var got chargeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"payment": map[string]string{"id": "pay_123", "status": "COMPLETED"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Charge("tok_abc", 20, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Pizza order for Customer", got.Note)
}

func TestProcessPaymentHandlerMissingFields(t *testing.T) {
	handler := NewHandler(nil, testLogger())

	req := httptest.NewRequest("POST", "/payment", strings.NewReader(`{"amount": 20}`))
	rec := httptest.NewRecorder()
	handler.ProcessPayment(rec, req)
	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing required payment information")
}
