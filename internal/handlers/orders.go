// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"courseadmin/internal/models"
	"courseadmin/internal/render"
)

// ordersPerPage is the page size of the orders table.
const ordersPerPage = 10

// OrdersList renders the read-only orders table, filtered by an invoice
// substring (?search=) and a status (?status=), ten per page (?page=).
func (a *Admin) OrdersList(w http.ResponseWriter, r *http.Request) {
	pd := &render.PageData{Title: "Orders", Section: "orders"}
	q := r.URL.Query()
	search := strings.TrimSpace(q.Get("search"))
	status := q.Get("status")

	orders, err := a.api.Orders(r.Context())
	if err != nil {
		loadFailed(pd, err, "Failed to fetch orders.")
	}

	filtered := filterOrders(orders, search, status)
	page, pages := paginate(len(filtered), ordersPerPage, atoiDefault(q.Get("page"), 1))
	start := (page - 1) * ordersPerPage
	end := min(start+ordersPerPage, len(filtered))

	pd.Data = map[string]any{
		"Items":    filtered[start:end],
		"Total":    len(filtered),
		"Search":   search,
		"Status":   status,
		"Statuses": models.OrderStatuses,
		"Page":     page,
		"Pages":    pages,
		"PrevURL":  ordersPageURL(search, status, page-1),
		"NextURL":  ordersPageURL(search, status, page+1),
	}
	a.page(w, r, "orders", pd)
}

// filterOrders keeps orders whose invoice contains search and whose
// status matches. Empty criteria match everything.
func filterOrders(orders []models.Order, search, status string) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if search != "" && !strings.Contains(strings.ToLower(o.Invoice.String()), strings.ToLower(search)) {
			continue
		}
		if !o.MatchesStatus(status) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// paginate clamps page into [1, pages] for total items. An empty list
// still has one (empty) page.
func paginate(total, perPage, page int) (int, int) {
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	return page, pages
}

func ordersPageURL(search, status string, page int) string {
	v := url.Values{}
	if search != "" {
		v.Set("search", search)
	}
	if status != "" {
		v.Set("status", status)
	}
	v.Set("page", strconv.Itoa(page))
	return "/admin/orders?" + v.Encode()
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
