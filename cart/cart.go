package cart

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Item is a menu item as offered to the cart. Price is kept raw because menu
// payloads do not guarantee a number.
type Item struct {
	MenuID         int    `json:"menuId"`
	ItemName       string `json:"itemName"`
	Price          any    `json:"price"`
	RestaurantID   int    `json:"restaurantId"`
	RestaurantName string `json:"restaurantName"`
	ImageURL       string `json:"imageUrl,omitempty"`
	Description    string `json:"description,omitempty"`
}

type Line struct {
	MenuID         int             `json:"menuId"`
	ItemName       string          `json:"itemName"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	RestaurantID   int             `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	Description    string          `json:"description,omitempty"`
}

// LineTotal is price times quantity.
func (l Line) LineTotal() decimal.Decimal {
	return SafePrice(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// State is a snapshot of the cart. Total equals Subtotal; the delivery fee
// joins the amount only through OrderTotal.
type State struct {
	Lines          []Line          `json:"items"`
	RestaurantID   *int            `json:"restaurantId"`
	RestaurantName *string         `json:"restaurantName"`
	TotalItems     int             `json:"totalItems"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryFee    decimal.Decimal `json:"deliveryFee"`
	Total          decimal.Decimal `json:"total"`
}

// CheckoutTotal is the state's subtotal plus the given delivery fee.
func (s State) CheckoutTotal(deliveryFee decimal.Decimal) decimal.Decimal {
	return OrderTotal(s.Subtotal, deliveryFee)
}

func (s State) IsEmpty() bool {
	return len(s.Lines) == 0
}

// Cart aggregates lines for a single restaurant. It is not safe for
// concurrent use; wrap it when sharing across goroutines.
type Cart struct {
	lines          []Line
	restaurantID   *int
	restaurantName *string
	totalItems     int
	subtotal       decimal.Decimal
	deliveryFee    decimal.Decimal
	total          decimal.Decimal
}

func New() *Cart {
	return &Cart{}
}

// AddItem adds one unit of item. Adding from another restaurant drops every
// existing line first; the returned warning is non-empty in that case.
func (c *Cart) AddItem(item Item) string {
	price := SafePrice(item.Price)

	var warning string
	if len(c.lines) > 0 && c.restaurantID != nil && *c.restaurantID != item.RestaurantID {
		previous := ""
		if c.restaurantName != nil {
			previous = *c.restaurantName
		}
		warning = fmt.Sprintf("Your cart had items from %s. It was cleared to add items from %s.",
			nameOr(previous, "another restaurant"), nameOr(item.RestaurantName, "this restaurant"))
		c.lines = nil
	}

	if i := c.indexOf(item.MenuID); i >= 0 {
		c.lines[i].Quantity++
	} else {
		c.lines = append(c.lines, Line{
			MenuID:         item.MenuID,
			ItemName:       item.ItemName,
			Price:          price,
			Quantity:       1,
			RestaurantID:   item.RestaurantID,
			RestaurantName: item.RestaurantName,
			ImageURL:       item.ImageURL,
			Description:    item.Description,
		})
	}

	restaurantID := item.RestaurantID
	restaurantName := item.RestaurantName
	c.restaurantID = &restaurantID
	c.restaurantName = &restaurantName

	c.recompute()
	return warning
}

func (c *Cart) RemoveItem(menuID int) {
	if i := c.indexOf(menuID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
	if len(c.lines) == 0 {
		c.lines = nil
		c.restaurantID = nil
		c.restaurantName = nil
	}
	c.recompute()
}

// UpdateQuantity sets the quantity of a line. Non-positive quantities remove it.
func (c *Cart) UpdateQuantity(menuID, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(menuID)
		return
	}
	if i := c.indexOf(menuID); i >= 0 {
		c.lines[i].Quantity = quantity
	}
	c.recompute()
}

// Clear empties the cart but keeps the delivery fee.
func (c *Cart) Clear() {
	fee := c.deliveryFee
	*c = Cart{deliveryFee: fee}
	c.recompute()
}

func (c *Cart) SetDeliveryFee(fee decimal.Decimal) {
	c.deliveryFee = SafePrice(fee)
	c.recompute()
}

func (c *Cart) State() State {
	s := State{
		Lines:       make([]Line, len(c.lines)),
		TotalItems:  c.totalItems,
		Subtotal:    c.subtotal,
		DeliveryFee: c.deliveryFee,
		Total:       c.total,
	}
	copy(s.Lines, c.lines)
	if c.restaurantID != nil {
		id := *c.restaurantID
		s.RestaurantID = &id
	}
	if c.restaurantName != nil {
		name := *c.restaurantName
		s.RestaurantName = &name
	}
	return s
}

func (c *Cart) indexOf(menuID int) int {
	for i, l := range c.lines {
		if l.MenuID == menuID {
			return i
		}
	}
	return -1
}

func (c *Cart) recompute() {
	items := 0
	subtotal := decimal.Zero
	for _, l := range c.lines {
		items += l.Quantity
		subtotal = subtotal.Add(l.LineTotal())
	}
	c.totalItems = items
	c.subtotal = subtotal
	c.total = subtotal
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
