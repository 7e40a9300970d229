// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancel     OrderStatus = "cancel"
)

// OrderStatuses lists the statuses offered by the orders filter.
var OrderStatuses = []OrderStatus{
	OrderStatusDelivered, OrderStatusPending, OrderStatusProcessing, OrderStatusCancel,
}

// Order is a customer purchase as returned by the orders endpoint.
type Order struct {
	ID            ID          `json:"_id"`
	Invoice       ID          `json:"invoice"`
	User          *OrderUser  `json:"user,omitempty"`
	Cart          []CartItem  `json:"cart"`
	Status        OrderStatus `json:"status"`
	PaymentMethod string      `json:"paymentMethod"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// OrderUser is the customer expanded on an order.
type OrderUser struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageURL"`
}

// CartItem is one purchased line.
type CartItem struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// Total sums the cart prices.
func (o *Order) Total() float64 {
	var sum float64
	for _, item := range o.Cart {
		sum += item.Price
	}
	return sum
}

// MatchesStatus compares statuses case-insensitively. An empty filter
// matches everything.
func (o *Order) MatchesStatus(status string) bool {
	return status == "" || strings.EqualFold(string(o.Status), status)
}
