package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoshispizza/storefront/internal/sms"
	"github.com/yoshispizza/storefront/pkg/models"
)

const (
	duplicateWindow    = 5 * time.Minute
	duplicateScanDepth = 10
	maxSpecialRequests = 500
	minPhoneDigits     = 10
)

// ErrDuplicateOrder signals the conflict outcome: a matching order was
// appended within the duplicate window. Callers should retry later.
var ErrDuplicateOrder = errors.New("duplicate order detected")

// ValidationError carries the human-readable reason a submission was
// rejected. Nothing is persisted when one is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// OrderStore is the slice of the row store the intake service needs.
type OrderStore interface {
	AppendOrder(ctx context.Context, o *models.Order) error
	RecentOrders(ctx context.Context, n int) ([]models.StoredOrder, error)
}

// Sender delivers the advisory new-order text message.
type Sender interface {
	Send(body string) (string, error)
}

type Service struct {
	store  OrderStore
	sender Sender

	// Lowercased referral codes accepted for cash orders. Empty means no
	// allow-list is configured and any non-empty code passes.
	referralCodes []string

	logger *logrus.Logger
	now    func() time.Time
}

func NewService(store OrderStore, sender Sender, referralCodes []string, logger *logrus.Logger) *Service {
	return &Service{
		store:         store,
		sender:        sender,
		referralCodes: referralCodes,
		logger:        logger,
		now:           time.Now,
	}
}

// Submit validates the payload, runs the duplicate guard, persists one row
// and fires the advisory notification. The order is durably appended before
// the notification attempt; a failed send never fails the submission.
func (s *Service) Submit(ctx context.Context, req *models.OrderRequest) (*models.Order, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(ctx, req); err != nil {
		return nil, err
	}

	order := s.buildOrder(req)
	if err := s.store.AppendOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to append order: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"customer":    order.CustomerName,
		"pickup_date": order.PickupDate,
		"pickup_time": order.PickupTime,
		"total":       order.Total,
	}).Info("Order submitted")

	s.notify(order)
	return order, nil
}

// validate applies the intake rules in order; the first failing check wins.
func (s *Service) validate(req *models.OrderRequest) error {
	if req.Customer == nil {
		return &ValidationError{Reason: "Customer information is required"}
	}
	c := req.Customer

	if strings.EqualFold(req.PaymentInfo.Type, "cash") {
		code := strings.TrimSpace(c.ReferralCode)
		if code == "" {
			return &ValidationError{Reason: "A referral code is required for cash orders"}
		}
		if len(s.referralCodes) > 0 && !containsCode(s.referralCodes, code) {
			return &ValidationError{Reason: "Referral code is not recognized"}
		}
	}

	if len(strings.TrimSpace(c.Name)) < 2 {
		return &ValidationError{Reason: "Name must be at least 2 characters"}
	}
	if len(sms.DigitsOnly(c.Phone)) < minPhoneDigits {
		return &ValidationError{Reason: "Please enter a valid 10-digit phone number"}
	}
	if !strings.Contains(c.Email, "@") {
		return &ValidationError{Reason: "Please enter a valid email address"}
	}
	if len(req.Items) == 0 {
		return &ValidationError{Reason: "Order must contain at least one item"}
	}
	if req.Total <= 0 {
		return &ValidationError{Reason: "Order total must be greater than zero"}
	}

	pickup, err := time.Parse("2006-01-02", c.OrderDate)
	if err != nil {
		return &ValidationError{Reason: "Pickup date must be in YYYY-MM-DD format"}
	}
	now := s.now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	if pickup.Before(tomorrow) {
		return &ValidationError{Reason: "Pickup date must be at least 1 day in advance"}
	}
	if pickup.Weekday() == time.Sunday {
		return &ValidationError{Reason: "We are closed on Sundays. Please pick a date Monday-Saturday"}
	}

	if c.PickupTime == "" {
		return &ValidationError{Reason: "Please select a pickup time"}
	}
	if len(c.SpecialRequests) > maxSpecialRequests {
		return &ValidationError{Reason: "Special requests must be 500 characters or fewer"}
	}

	switch strings.ToLower(req.PaymentInfo.Type) {
	case "cash":
	case "card":
		if req.PaymentInfo.PaymentID == "" {
			return &ValidationError{Reason: "Card orders require a completed payment"}
		}
	default:
		return &ValidationError{Reason: "Payment type must be cash or card"}
	}

	return nil
}

// checkDuplicate scans a bounded window of recent rows for a matching
// submission. A read failure does not block the order.
func (s *Service) checkDuplicate(ctx context.Context, req *models.OrderRequest) error {
	recent, err := s.store.RecentOrders(ctx, duplicateScanDepth)
	if err != nil {
		s.logger.WithError(err).Warn("Duplicate check failed, proceeding with submission")
		return nil
	}

	phone := sms.DigitsOnly(req.Customer.Phone)
	cutoff := s.now().Add(-duplicateWindow)

	for _, o := range recent {
		if sms.DigitsOnly(o.CustomerPhone) != phone {
			continue
		}
		if o.PickupDate != req.Customer.OrderDate {
			continue
		}
		if o.Total != req.Total {
			continue
		}
		if o.SubmittedAt.Before(cutoff) {
			continue
		}

		s.logger.WithFields(logrus.Fields{
			"phone":       phone,
			"pickup_date": o.PickupDate,
		}).Warn("Duplicate order detected")
		return ErrDuplicateOrder
	}
	return nil
}

func (s *Service) buildOrder(req *models.OrderRequest) *models.Order {
	items := make([]models.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.LineItem{Name: item.Name, Quantity: item.Quantity})
	}

	method, status := paymentDisplay(req.PaymentInfo)

	return &models.Order{
		SubmittedAt:     s.now(),
		CustomerName:    strings.TrimSpace(req.Customer.Name),
		CustomerPhone:   req.Customer.Phone,
		PickupDate:      req.Customer.OrderDate,
		PickupTime:      displayTime(req.Customer.PickupTime),
		CustomerEmail:   req.Customer.Email,
		ReferralCode:    req.Customer.ReferralCode,
		Items:           items,
		Total:           req.Total,
		Status:          "Pending",
		SpecialRequests: req.Customer.SpecialRequests,
		PaymentMethod:   method,
		PaymentStatus:   status,
		PaymentID:       req.PaymentInfo.PaymentID,
	}
}

func (s *Service) notify(o *models.Order) {
	if s.sender == nil {
		s.logger.Warn("SMS sender not configured, skipping order notification")
		return
	}
	body := sms.OrderAlert(o.CustomerName, o.CustomerPhone, o.PickupDate, o.Total)
	if _, err := s.sender.Send(body); err != nil {
		s.logger.WithError(err).Error("Failed to send order notification")
	}
}

// displayTime converts a 24-hour grid value like "16:20" to "4:20 PM".
// Values that do not parse pass through unchanged.
func displayTime(value string) string {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return value
	}
	return t.Format("3:04 PM")
}

func paymentDisplay(p models.PaymentInfo) (method, status string) {
	if strings.EqualFold(p.Type, "card") {
		return "Credit Card", "Paid"
	}
	return "Cash", "Pay at pickup"
}

func containsCode(codes []string, code string) bool {
	code = strings.ToLower(code)
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
