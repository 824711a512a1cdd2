package cart

import (
	"errors"

	"github.com/yoshispizza/storefront/pkg/models"
)

// MaxItems is the hard per-order cap on pizzas.
const MaxItems = 2

var ErrCartFull = errors.New("cart is limited to 2 pizzas per order")
var ErrUnknownItem = errors.New("item is not on the menu")

// Item is one menu entry, doubling as a cart line once it has a quantity.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
}

// Menu is the fixed storefront menu.
var Menu = []Item{
	{
		ID:          "margherita",
		Name:        "Classic Margherita",
		Price:       20,
		Description: "A simple pizza with fresh mozzarella, and our signature organic tomato sauce",
	},
	{
		ID:          "yoshi",
		Name:        "Yoshi's Weekly Special",
		Price:       25,
		Description: "Flavorful pepperoni with melted cheese, basil, and Italian seasoning",
	},
}

// MenuItem looks up a menu entry by id.
func MenuItem(id string) (Item, bool) {
	for _, item := range Menu {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Cart is the transient order-form cart. It lives for one browsing session
// and only its aggregation into an order survives submission.
type Cart struct {
	items []Item
}

func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Add puts one more of the given menu item in the cart, merging with an
// existing line. Adding past the cap fails.
func (c *Cart) Add(id string) error {
	menuItem, ok := MenuItem(id)
	if !ok {
		return ErrUnknownItem
	}
	if c.TotalQuantity() >= MaxItems {
		return ErrCartFull
	}

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity++
			return nil
		}
	}
	menuItem.Quantity = 1
	c.items = append(c.items, menuItem)
	return nil
}

// UpdateQuantity sets a line's quantity directly. Negative values clamp to
// zero; an update that would push the cart past the cap is ignored with an
// error. Setting a line that is not yet in the cart adds it.
func (c *Cart) UpdateQuantity(id string, quantity int) error {
	if quantity < 0 {
		quantity = 0
	}

	current := 0
	for _, item := range c.items {
		if item.ID == id {
			current = item.Quantity
		}
	}
	if c.TotalQuantity()-current+quantity > MaxItems {
		return ErrCartFull
	}

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			return nil
		}
	}

	menuItem, ok := MenuItem(id)
	if !ok {
		return ErrUnknownItem
	}
	menuItem.Quantity = quantity
	c.items = append(c.items, menuItem)
	return nil
}

func (c *Cart) Remove(id string) {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Items() []Item {
	return c.items
}

func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// LineItems is the aggregation that goes into the order payload.
func (c *Cart) LineItems() []models.LineItem {
	items := make([]models.LineItem, 0, len(c.items))
	for _, item := range c.items {
		if item.Quantity == 0 {
			continue
		}
		items = append(items, models.LineItem{Name: item.Name, Quantity: item.Quantity})
	}
	return items
}
