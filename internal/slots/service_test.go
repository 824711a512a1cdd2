package slots

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoshispizza/storefront/pkg/models"
)

type mockStore struct {
	listOrdersFn func(ctx context.Context) ([]models.StoredOrder, error)
}

func (m *mockStore) ListOrders(ctx context.Context) ([]models.StoredOrder, error) {
	return m.listOrdersFn(ctx)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel) // Reduce noise in tests
	return logger
}

func booking(date, displayTime string) models.StoredOrder {
	return models.StoredOrder{
		RowNumber: 2,
		Order: models.Order{
			SubmittedAt: time.Now(),
			PickupDate:  date,
			PickupTime:  displayTime,
		},
	}
}

func TestAllTimeSlotsGrid(t *testing.T) {
	slots := AllTimeSlots()
	require.Len(t, slots, 13)

	assert.Equal(t, "16:00", slots[0].Value)
	assert.Equal(t, "4:00 PM", slots[0].Display)
	assert.Equal(t, "20:00", slots[12].Value)
	assert.Equal(t, "8:00 PM", slots[12].Display)

	// Ascending, unique, 20-minute steps with no 8:20/8:40.
	seen := map[string]bool{}
	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1].Value, slots[i].Value)
	}
	for _, slot := range slots {
		assert.False(t, seen[slot.Value])
		seen[slot.Value] = true
	}
	assert.NotContains(t, seen, "20:20")
	assert.NotContains(t, seen, "20:40")
}

func TestAvailableSlotsNoBookings(t *testing.T) {
	store := &mockStore{
		listOrdersFn: func(ctx context.Context) ([]models.StoredOrder, error) {
			return nil, nil
		},
	}
	svc := NewService(store, testLogger())

	available, err := svc.AvailableSlots(context.Background(), "2024-03-15")
	require.NoError(t, err)
	assert.Len(t, available, 13)
}

func TestAvailableSlotsRemovesBookedTime(t *testing.T) {
	store := &mockStore{
		listOrdersFn: func(ctx context.Context) ([]models.StoredOrder, error) {
			return []models.StoredOrder{booking("2024-03-15", "4:00 PM")}, nil
		},
	}
	svc := NewService(store, testLogger())

	available, err := svc.AvailableSlots(context.Background(), "2024-03-15")
	require.NoError(t, err)
	require.Len(t, available, 12)
	assert.Equal(t, "4:20 PM", available[0].Display)
}

func TestAvailableSlotsIgnoresOtherDates(t *testing.T) {
	store := &mockStore{
		listOrdersFn: func(ctx context.Context) ([]models.StoredOrder, error) {
			return []models.StoredOrder{booking("2024-03-16", "4:00 PM")}, nil
		},
	}
	svc := NewService(store, testLogger())

	available, err := svc.AvailableSlots(context.Background(), "2024-03-15")
	require.NoError(t, err)
	assert.Len(t, available, 13)
}

func TestAvailableSlotsUnparsableTimeFailsOpen(t *testing.T) {
	store := &mockStore{
		listOrdersFn: func(ctx context.Context) ([]models.StoredOrder, error) {
			return []models.StoredOrder{
				booking("2024-03-15", "whenever works"),
				booking("2024-03-15", "5:00 PM"),
			}, nil
		},
	}
	svc := NewService(store, testLogger())

	available, err := svc.AvailableSlots(context.Background(), "2024-03-15")
	require.NoError(t, err)
	// Only the parseable booking reduces availability.
	assert.Len(t, available, 12)
	for _, slot := range available {
		assert.NotEqual(t, "17:00", slot.Value)
	}
}

func TestAvailableSlotsInvalidDate(t *testing.T) {
	svc := NewService(&mockStore{}, testLogger())

	_, err := svc.AvailableSlots(context.Background(), "03/15/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestAvailableSlotsStoreError(t *testing.T) {
	store := &mockStore{
		listOrdersFn: func(ctx context.Context) ([]models.StoredOrder, error) {
			return nil, errors.New("read failed")
		},
	}
	svc := NewService(store, testLogger())

	_, err := svc.AvailableSlots(context.Background(), "2024-03-15")
	assert.Error(t, err)
}

func TestAvailableTimesHandlerMissingDate(t *testing.T) {
	handler := NewHandler(nil, testLogger())

	req := httptest.NewRequest("GET", "/available-times", nil)
	rec := httptest.NewRecorder()
	handler.AvailableTimes(rec, req)

	assert.Equal(t, 400, rec.Code)
}

func TestAvailableTimesHandlerNoStore(t *testing.T) {
	handler := NewHandler(nil, testLogger())

	req := httptest.NewRequest("GET", "/available-times?date=2024-03-15", nil)
	rec := httptest.NewRecorder()
	handler.AvailableTimes(rec, req)

	assert.Equal(t, 500, rec.Code)
}

func TestAvailableTimesHandlerBadDate(t *testing.T) {
	store := &mockStore{
		listOrdersFn: func(ctx context.Context) ([]models.StoredOrder, error) {
			return nil, nil
		},
	}
	handler := NewHandler(NewService(store, testLogger()), testLogger())

	req := httptest.NewRequest("GET", "/available-times?date=tomorrow", nil)
	rec := httptest.NewRecorder()
	handler.AvailableTimes(rec, req)

	assert.Equal(t, 400, rec.Code)
}
