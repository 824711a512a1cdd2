package sheets

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoshispizza/storefront/pkg/models"
)

// OrderStore is the named-field view of the order sheet that the services
// program against.
type OrderStore struct {
	client  *Client
	sheetID int64 // tab id of the Orders sheet
	logger  *logrus.Logger
}

func NewOrderStore(client *Client, ordersSheetID int64, logger *logrus.Logger) *OrderStore {
	return &OrderStore{
		client:  client,
		sheetID: ordersSheetID,
		logger:  logger,
	}
}

func (s *OrderStore) AppendOrder(ctx context.Context, o *models.Order) error {
	return s.client.Append(ctx, OrdersRange, [][]interface{}{orderToRow(o)})
}

// ListOrders returns every data row with its sheet row number. The header
// row is skipped.
func (s *OrderStore) ListOrders(ctx context.Context) ([]models.StoredOrder, error) {
	rows, err := s.client.ReadAll(ctx, OrdersRange)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	orders := make([]models.StoredOrder, 0, len(rows)-1)
	for i, row := range rows[1:] {
		orders = append(orders, models.StoredOrder{
			RowNumber: i + 2, // 1-indexed, after the header
			Order:     rowToOrder(row),
		})
	}
	return orders, nil
}

// RecentOrders returns at most n of the most recently appended orders.
func (s *OrderStore) RecentOrders(ctx context.Context, n int) ([]models.StoredOrder, error) {
	orders, err := s.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	if len(orders) > n {
		orders = orders[len(orders)-n:]
	}
	return orders, nil
}

func (s *OrderStore) DeleteOrderRow(ctx context.Context, rowNumber int) error {
	return s.client.DeleteRow(ctx, s.sheetID, rowNumber)
}

// EnsureArchiveHeader writes the archive header row if the tab is empty.
func (s *OrderStore) EnsureArchiveHeader(ctx context.Context) error {
	rows, err := s.client.ReadAll(ctx, ArchiveRange)
	if err != nil {
		return err
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		return nil
	}
	return s.client.Update(ctx, archiveHeaderCell, [][]interface{}{archiveHeader})
}

func (s *OrderStore) AppendArchived(ctx context.Context, orders []models.ArchivedOrder) error {
	rows := make([][]interface{}, 0, len(orders))
	for i := range orders {
		row := orderToRow(&orders[i].Order)
		rows = append(rows, append(row, orders[i].ArchivedAt.Format(time.RFC3339)))
	}
	return s.client.Append(ctx, ArchiveRange, rows)
}
