package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoshispizza/storefront/pkg/models"
)

func postOrder(t *testing.T, handler *Handler, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.SubmitOrder(rec, req)
	return rec
}

func TestSubmitOrderHandlerCreated(t *testing.T) {
	svc := newTestService(&mockStore{}, &mockSender{}, nil)
	handler := NewHandler(svc, testLogger())

	rec := postOrder(t, handler, validRequest())
	assert.Equal(t, 201, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
}

func TestSubmitOrderHandlerValidationError(t *testing.T) {
	svc := newTestService(&mockStore{}, &mockSender{}, nil)
	handler := NewHandler(svc, testLogger())

	req := validRequest()
	req.Total = 0
	rec := postOrder(t, handler, req)

	assert.Equal(t, 400, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Order total must be greater than zero", resp["message"])
}

func TestSubmitOrderHandlerConflict(t *testing.T) {
	store := &mockStore{
		recentOrdersFn: func(ctx context.Context, n int) ([]models.StoredOrder, error) {
			return []models.StoredOrder{
				recentOrder("5551234567", "2024-03-15", 40, testNow.Add(-time.Minute)),
			}, nil
		},
	}
	svc := newTestService(store, &mockSender{}, nil)
	handler := NewHandler(svc, testLogger())

	rec := postOrder(t, handler, validRequest())
	assert.Equal(t, 409, rec.Code)
}

func TestSubmitOrderHandlerInvalidBody(t *testing.T) {
	handler := NewHandler(nil, testLogger())

	req := httptest.NewRequest("POST", "/orders", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.SubmitOrder(rec, req)

	assert.Equal(t, 400, rec.Code)
}

func TestSubmitOrderHandlerNoStore(t *testing.T) {
	handler := NewHandler(nil, testLogger())

	rec := postOrder(t, handler, validRequest())
	assert.Equal(t, 500, rec.Code)
}
