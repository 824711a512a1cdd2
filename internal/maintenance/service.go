package maintenance

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoshispizza/storefront/pkg/models"
)

// Orders are kept in the primary sheet for two days past their pickup date.
const retentionDays = 2

// Store is the slice of the row store the maintenance jobs need.
type Store interface {
	ListOrders(ctx context.Context) ([]models.StoredOrder, error)
	DeleteOrderRow(ctx context.Context, rowNumber int) error
	EnsureArchiveHeader(ctx context.Context) error
	AppendArchived(ctx context.Context, orders []models.ArchivedOrder) error
}

type Sender interface {
	Send(body string) (string, error)
}

// RowResult is the per-row outcome of a delete pass. One failed delete
// never aborts the batch.
type RowResult struct {
	RowNumber int    `json:"rowNumber"`
	Deleted   bool   `json:"deleted"`
	Error     string `json:"error,omitempty"`
}

type CleanupReport struct {
	DeletedCount int         `json:"deletedCount"`
	CutoffDate   string      `json:"cutoffDate"`
	Rows         []RowResult `json:"rows,omitempty"`
}

type ArchiveReport struct {
	ArchivedCount int         `json:"archivedCount"`
	CutoffDate    string      `json:"cutoffDate"`
	Rows          []RowResult `json:"rows,omitempty"`
}

type SummaryReport struct {
	Date         string  `json:"date"`
	OrderCount   int     `json:"orderCount"`
	TotalRevenue float64 `json:"totalRevenue"`
	CashOrders   int     `json:"cashOrders"`
	CardOrders   int     `json:"cardOrders"`
}

type Service struct {
	store  Store
	sender Sender
	logger *logrus.Logger
	now    func() time.Time
}

func NewService(store Store, sender Sender, logger *logrus.Logger) *Service {
	return &Service{
		store:  store,
		sender: sender,
		logger: logger,
		now:    time.Now,
	}
}

// Cleanup deletes every order whose pickup date is older than the cutoff.
// Rows are deleted bottom-up so earlier deletes cannot shift the indexes of
// later ones.
func (s *Service) Cleanup(ctx context.Context) (*CleanupReport, error) {
	stale, cutoff, err := s.staleOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"cutoff": cutoff,
		"stale":  len(stale),
	}).Info("Running order cleanup")

	report := &CleanupReport{CutoffDate: cutoff}
	report.Rows, report.DeletedCount = s.deleteRows(ctx, stale)
	return report, nil
}

// Archive copies stale orders to the archive sheet and only then deletes
// them from the primary sheet. If the archive append fails the job aborts
// before any deletion, so partial completion leaves rows in the primary
// sheet, never in neither place.
func (s *Service) Archive(ctx context.Context) (*ArchiveReport, error) {
	stale, cutoff, err := s.staleOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	report := &ArchiveReport{CutoffDate: cutoff}
	if len(stale) == 0 {
		s.logger.Info("No old orders found to archive")
		return report, nil
	}

	if err := s.store.EnsureArchiveHeader(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare archive sheet: %w", err)
	}

	archivedAt := s.now()
	archived := make([]models.ArchivedOrder, 0, len(stale))
	for _, o := range stale {
		archived = append(archived, models.ArchivedOrder{Order: o.Order, ArchivedAt: archivedAt})
	}

	if err := s.store.AppendArchived(ctx, archived); err != nil {
		return nil, fmt.Errorf("failed to append to archive: %w", err)
	}

	s.logger.WithField("count", len(archived)).Info("Archived orders")

	report.ArchivedCount = len(archived)
	report.Rows, _ = s.deleteRows(ctx, stale)
	return report, nil
}

// DailySummary aggregates one day's orders and sends exactly one text
// message, including when the day had no orders.
func (s *Service) DailySummary(ctx context.Context, date string) (*SummaryReport, error) {
	if date == "" {
		date = s.now().Format("2006-01-02")
	}

	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	report := &SummaryReport{Date: date}
	for _, o := range orders {
		if o.PickupDate != date {
			continue
		}
		report.OrderCount++
		report.TotalRevenue += o.Total
		if strings.EqualFold(o.PaymentMethod, "cash") {
			report.CashOrders++
		} else {
			report.CardOrders++
		}
	}

	if s.sender == nil {
		return nil, fmt.Errorf("SMS sender not configured")
	}
	if _, err := s.sender.Send(summaryMessage(report)); err != nil {
		return nil, fmt.Errorf("failed to send daily summary: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"date":    report.Date,
		"orders":  report.OrderCount,
		"revenue": report.TotalRevenue,
	}).Info("Daily summary sent")

	return report, nil
}

func (s *Service) cutoffDate() string {
	return s.now().AddDate(0, 0, -retentionDays).Format("2006-01-02")
}

func (s *Service) staleOrders(ctx context.Context) ([]models.StoredOrder, string, error) {
	cutoff := s.cutoffDate()
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, cutoff, err
	}

	var stale []models.StoredOrder
	for _, o := range orders {
		// Rows without a pickup date are kept to be safe.
		if o.PickupDate != "" && o.PickupDate < cutoff {
			stale = append(stale, o)
		}
	}
	return stale, cutoff, nil
}

func (s *Service) deleteRows(ctx context.Context, stale []models.StoredOrder) ([]RowResult, int) {
	rowNumbers := make([]int, 0, len(stale))
	for _, o := range stale {
		rowNumbers = append(rowNumbers, o.RowNumber)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(rowNumbers)))

	var results []RowResult
	deleted := 0
	for _, rowNumber := range rowNumbers {
		if err := s.store.DeleteOrderRow(ctx, rowNumber); err != nil {
			s.logger.WithError(err).WithField("row", rowNumber).Error("Failed to delete order row")
			results = append(results, RowResult{RowNumber: rowNumber, Error: err.Error()})
			continue
		}
		deleted++
		results = append(results, RowResult{RowNumber: rowNumber, Deleted: true})
	}
	return results, deleted
}

func summaryMessage(r *SummaryReport) string {
	day, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		// Fall back to the raw string rather than dropping the message.
		if r.OrderCount == 0 {
			return fmt.Sprintf("📊 %s: No orders today 🌟", r.Date)
		}
		return fmt.Sprintf("📊 %s\n🍕 Orders: %d\n💰 Revenue: $%.2f\n💳 Cash: %d | Card: %d",
			r.Date, r.OrderCount, r.TotalRevenue, r.CashOrders, r.CardOrders)
	}

	if r.OrderCount == 0 {
		return fmt.Sprintf("📊 %s: No orders today 🌟", day.Format("1/2/2006"))
	}
	return fmt.Sprintf("📊 %s\n🍕 Orders: %d\n💰 Revenue: $%.2f\n💳 Cash: %d | Card: %d",
		day.Format("Monday, January 2, 2006"), r.OrderCount, r.TotalRevenue, r.CashOrders, r.CardOrders)
}
