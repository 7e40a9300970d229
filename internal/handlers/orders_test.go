// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"courseadmin/internal/models"
)

func sampleOrders(n int) []models.Order {
	statuses := []models.OrderStatus{models.OrderStatusPending, models.OrderStatusDelivered}
	orders := make([]models.Order, n)
	for i := range orders {
		orders[i] = models.Order{
			ID:      models.ID(fmt.Sprintf("o%d", i)),
			Invoice: models.ID(fmt.Sprintf("%d", 1000+i)),
			Status:  statuses[i%2],
			Cart:    []models.CartItem{{Title: "Course", Price: 49.5}},
		}
	}
	return orders
}

func TestFilterOrders(t *testing.T) {
	orders := sampleOrders(12)

	tests := []struct {
		name   string
		search string
		status string
		want   int
	}{
		{"no criteria", "", "", 12},
		{"status only", "", "pending", 6},
		{"status is case-insensitive", "", "DELIVERED", 6},
		{"invoice substring", "100", "", 10},
		{"invoice and status", "1011", "delivered", 1},
		{"invoice and status mismatch", "1011", "pending", 0},
		{"no match", "9999", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filterOrders(orders, tt.search, tt.status); len(got) != tt.want {
				t.Errorf("got %d orders, want %d", len(got), tt.want)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		total, page          int
		wantPage, wantPages int
	}{
		{0, 1, 1, 1},
		{10, 1, 1, 1},
		{11, 2, 2, 2},
		{25, 0, 1, 3},
		{25, 9, 3, 3},
		{25, -4, 1, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("total=%d page=%d", tt.total, tt.page), func(t *testing.T) {
			page, pages := paginate(tt.total, ordersPerPage, tt.page)
			if page != tt.wantPage || pages != tt.wantPages {
				t.Errorf("paginate = (%d, %d), want (%d, %d)", page, pages, tt.wantPage, tt.wantPages)
			}
		})
	}
}

func TestOrdersListSecondPage(t *testing.T) {
	a, fa, _ := testAdmin(t)
	fa.envelope("GET /api/order/orders", sampleOrders(25), "")

	req := httptest.NewRequest(http.MethodGet, "/admin/orders?page=3", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	a.OrdersList(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "Page 3 of 3") {
		t.Errorf("pager missing: %s", body)
	}
	if !strings.Contains(body, "#1024") || strings.Contains(body, "#1019") {
		t.Error("third page should hold orders 1020-1024 only")
	}
	if !strings.Contains(body, "49.50") {
		t.Error("order total not rendered")
	}
}

func TestOrdersListAPIFailureShowsNotice(t *testing.T) {
	a, fa, _ := testAdmin(t)
	fa.handle("GET /api/order/orders", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"success":false,"message":"orders offline"}`, http.StatusBadGateway)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	rec := httptest.NewRecorder()
	a.OrdersList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "orders offline") {
		t.Error("upstream message not shown")
	}
	if !strings.Contains(body, "No orders match.") {
		t.Error("empty table not rendered")
	}
}
