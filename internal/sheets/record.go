package sheets

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yoshispizza/storefront/pkg/models"
)

// The order sheet layout is positional: reordering columns breaks every job.
// This file is the only place that knows the column order; everything else
// works with the named fields on models.Order.
const (
	OrdersRange  = "Orders!A:N"
	ArchiveRange = "Archive!A:O"

	archiveHeaderCell = "Archive!A1"
)

var archiveHeader = []interface{}{
	"Timestamp", "Name", "Phone", "Order Date", "Pickup Time", "Email",
	"Referral Code", "Items", "Total", "Order Status", "Special Requests",
	"Payment Method", "Payment Status", "Payment ID", "Archived Date",
}

func orderToRow(o *models.Order) []interface{} {
	return []interface{}{
		o.SubmittedAt.Format(time.RFC3339),
		o.CustomerName,
		o.CustomerPhone,
		o.PickupDate,
		o.PickupTime,
		o.CustomerEmail,
		o.ReferralCode,
		formatItems(o.Items),
		fmt.Sprintf("$%.2f", o.Total),
		o.Status,
		o.SpecialRequests,
		o.PaymentMethod,
		o.PaymentStatus,
		o.PaymentID,
	}
}

func rowToOrder(row []interface{}) models.Order {
	cell := func(i int) string {
		if i < len(row) {
			if s, ok := row[i].(string); ok {
				return s
			}
		}
		return ""
	}

	submittedAt, _ := time.Parse(time.RFC3339, cell(0))
	return models.Order{
		SubmittedAt:     submittedAt,
		CustomerName:    cell(1),
		CustomerPhone:   cell(2),
		PickupDate:      cell(3),
		PickupTime:      cell(4),
		CustomerEmail:   cell(5),
		ReferralCode:    cell(6),
		Items:           parseItems(cell(7)),
		Total:           parseMoney(cell(8)),
		Status:          cell(9),
		SpecialRequests: cell(10),
		PaymentMethod:   cell(11),
		PaymentStatus:   cell(12),
		PaymentID:       cell(13),
	}
}

// formatItems renders line items the way the sheet displays them,
// e.g. "Classic Margherita (2), Yoshi's Weekly Special (1)".
func formatItems(items []models.LineItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (%d)", item.Name, item.Quantity))
	}
	return strings.Join(parts, ", ")
}

var itemPattern = regexp.MustCompile(`^(.+) \((\d+)\)$`)

func parseItems(s string) []models.LineItem {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var items []models.LineItem
	for _, part := range strings.Split(s, ", ") {
		if m := itemPattern.FindStringSubmatch(part); m != nil {
			qty, _ := strconv.Atoi(m[2])
			items = append(items, models.LineItem{Name: m[1], Quantity: qty})
		} else {
			items = append(items, models.LineItem{Name: part, Quantity: 1})
		}
	}
	return items
}

// parseMoney strips a leading currency symbol; unparsable totals read as 0.
func parseMoney(s string) float64 {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	s = strings.ReplaceAll(s, ",", "")
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return amount
}
