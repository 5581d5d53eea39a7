package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const OrderStatusConfirmed = "Confirmed"

// ShippingDetails is what the shopper enters on the checkout form.
type ShippingDetails struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Zip        string `json:"zip"`
	CardNumber string `json:"cardNumber"`
}

func (s ShippingDetails) Validate() error {
	switch {
	case strings.TrimSpace(s.Name) == "":
		return fmt.Errorf("%w: name required", ErrInvalidInput)
	case strings.TrimSpace(s.Email) == "":
		return fmt.Errorf("%w: email required", ErrInvalidInput)
	case strings.TrimSpace(s.Address) == "":
		return fmt.Errorf("%w: address required", ErrInvalidInput)
	case len(strings.TrimSpace(s.CardNumber)) < 4:
		return fmt.Errorf("%w: card number required", ErrInvalidInput)
	}
	return nil
}

// CardLast4 returns the last four characters of the card number.
func (s ShippingDetails) CardLast4() string {
	card := strings.TrimSpace(s.CardNumber)
	if len(card) <= 4 {
		return card
	}
	return card[len(card)-4:]
}

// Order is immutable once stored. Items is a snapshot of the cart at checkout.
type Order struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	UserName  string          `json:"userName"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	City      string          `json:"city"`
	State     string          `json:"state"`
	Zip       string          `json:"zip"`
	Items     []CartItem      `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Delivery  decimal.Decimal `json:"delivery"`
	Total     decimal.Decimal `json:"total"`
	OrderDate time.Time       `json:"orderDate"`
	Status    string          `json:"status"`
	CardLast4 string          `json:"cardLast4"`
}

// NewOrder builds a confirmed order from a cart snapshot.
func NewOrder(id int64, user Identity, ship ShippingDetails, items []CartItem, at time.Time) Order {
	t := CheckoutTotals(items)
	return Order{
		ID:        id,
		UserID:    user.ID,
		UserName:  ship.Name,
		Email:     ship.Email,
		Phone:     ship.Phone,
		Address:   ship.Address,
		City:      ship.City,
		State:     ship.State,
		Zip:       ship.Zip,
		Items:     SnapshotItems(items),
		Subtotal:  t.Subtotal,
		Tax:       t.Tax,
		Delivery:  t.Delivery,
		Total:     t.Total,
		OrderDate: at,
		Status:    OrderStatusConfirmed,
		CardLast4: ship.CardLast4(),
	}
}
