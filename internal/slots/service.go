package slots

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoshispizza/storefront/pkg/models"
)

// The pickup grid is fixed: 4 PM through 8 PM at 20-minute steps, with the
// final hour contributing only its on-the-hour slot. 13 slots total.
const (
	gridStartHour = 16
	gridEndHour   = 20
	gridStepMin   = 20
)

var ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// OrderLister is the slice of the order store this service reads.
type OrderLister interface {
	ListOrders(ctx context.Context) ([]models.StoredOrder, error)
}

type Service struct {
	store  OrderLister
	logger *logrus.Logger
}

func NewService(store OrderLister, logger *logrus.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// AllTimeSlots returns the full daily grid in ascending order.
func AllTimeSlots() []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, 13)
	for hour := gridStartHour; hour <= gridEndHour; hour++ {
		for min := 0; min < 60; min += gridStepMin {
			if hour == gridEndHour && min > 0 {
				break
			}
			t := time.Date(2000, time.January, 1, hour, min, 0, 0, time.UTC)
			slots = append(slots, models.TimeSlot{
				Value:   t.Format("15:04"),
				Display: t.Format("3:04 PM"),
			})
		}
	}
	return slots
}

// AvailableSlots subtracts the times already booked for the date from the
// grid. A pickup time that fails to parse is logged and treated as not
// booked, so a bad row never shrinks availability.
func (s *Service) AvailableSlots(ctx context.Context, date string) ([]models.TimeSlot, error) {
	if !datePattern.MatchString(date) {
		return nil, ErrInvalidDate
	}

	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read booked times: %w", err)
	}

	booked := make(map[string]bool)
	for _, o := range orders {
		if o.PickupDate != date || o.PickupTime == "" {
			continue
		}
		t, err := time.Parse("3:04 PM", strings.TrimSpace(o.PickupTime))
		if err != nil {
			s.logger.WithField("pickup_time", o.PickupTime).Warn("Could not parse pickup time")
			continue
		}
		booked[t.Format("15:04")] = true
	}

	available := make([]models.TimeSlot, 0, 13)
	for _, slot := range AllTimeSlots() {
		if !booked[slot.Value] {
			available = append(available, slot)
		}
	}
	return available, nil
}
