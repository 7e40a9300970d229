// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"courseadmin/internal/models"
)

func TestCategoryTypesCreateDropsBlankRows(t *testing.T) {
	a, fa, _ := testAdmin(t)
	fa.envelope("POST /api/category-types/add-all", nil, "Category types added")

	req := formRequest(http.MethodPost, "/admin/category-types", url.Values{
		"name": {"Engineering", "  ", "", " Design "},
	})
	rec := httptest.NewRecorder()
	a.CategoryTypesCreate(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != categoryTypesPath {
		t.Errorf("Location = %q, want %q", loc, categoryTypesPath)
	}

	var sent struct {
		Types []string `json:"types"`
	}
	if err := json.Unmarshal(fa.body("POST /api/category-types/add-all"), &sent); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	if want := []string{"Engineering", "Design"}; !reflect.DeepEqual(sent.Types, want) {
		t.Errorf("sent %v, want %v", sent.Types, want)
	}
}

func TestCategoryTypesCreateAllBlankSkipsAPI(t *testing.T) {
	a, fa, _ := testAdmin(t)

	req := formRequest(http.MethodPost, "/admin/category-types", url.Values{"name": {"", " "}})
	rec := httptest.NewRecorder()
	a.CategoryTypesCreate(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if len(fa.calls) != 0 {
		t.Errorf("API called for an all-blank form: %v", fa.calls)
	}
}

func TestCategoryTypesListRendersRows(t *testing.T) {
	a, fa, _ := testAdmin(t)
	fa.envelope("GET /api/category-types", []models.CategoryType{{ID: "1", Name: "Engineering"}}, "")

	req := httptest.NewRequest(http.MethodGet, "/admin/category-types", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	a.CategoryTypesList(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "Engineering") {
		t.Error("category type missing from table")
	}
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Error("HTMX request should receive only the content block")
	}
}

func TestCategoryTypeUpdateValidation(t *testing.T) {
	a, fa, _ := testAdmin(t)

	req := withParam(formRequest(http.MethodPut, "/admin/category-types/7", url.Values{"name": {" "}}), "id", "7")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	a.CategoryTypeUpdate(rec, req)

	if !strings.Contains(rec.Body.String(), "Category type name is required.") {
		t.Errorf("validation message missing: %s", rec.Body.String())
	}
	if len(fa.calls) != 0 {
		t.Errorf("API called for an invalid form: %v", fa.calls)
	}
}

func TestCategoryTypeDeleteHTMXRedirect(t *testing.T) {
	a, fa, _ := testAdmin(t)
	fa.envelope("DELETE /api/category-types/7", nil, "")

	req := withParam(httptest.NewRequest(http.MethodDelete, "/admin/category-types/7", nil), "id", "7")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	a.CategoryTypeDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("HX-Redirect"); got != categoryTypesPath {
		t.Errorf("HX-Redirect = %q, want %q", got, categoryTypesPath)
	}
	if !fa.called("DELETE /api/category-types/7") {
		t.Error("delete not forwarded to the API")
	}
}

func TestBulkCategories(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		typeIDs []string
		want    []models.CategoryInput
		wantMsg string
	}{
		{
			name:    "drops blank rows",
			names:   []string{"Go", "", "Rust"},
			typeIDs: []string{"1", "", "2"},
			want: []models.CategoryInput{
				{Name: "Go", CategoryTypeID: "1"},
				{Name: "Rust", CategoryTypeID: "2"},
			},
		},
		{
			name:    "all blank",
			names:   []string{"", " "},
			typeIDs: []string{"1", ""},
			wantMsg: "Please fill in all fields before submitting.",
		},
		{
			name:    "named row without type",
			names:   []string{"Go", "Rust"},
			typeIDs: []string{"1", ""},
			wantMsg: "Row 2: Please select a category type.",
		},
		{
			name:    "fewer type columns than names",
			names:   []string{"Go"},
			typeIDs: nil,
			wantMsg: "Row 1: Please select a category type.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := bulkCategories(tt.names, tt.typeIDs)
			if msg != tt.wantMsg {
				t.Fatalf("msg = %q, want %q", msg, tt.wantMsg)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCategoryOptions(t *testing.T) {
	a, fa, _ := testAdmin(t)
	fa.envelope("GET /api/categories/category-by-type/3", []models.Category{
		{ID: "10", Name: "Backend", CategoryTypeID: "3"},
		{ID: "11", Name: "Frontend", CategoryTypeID: "3"},
	}, "")

	rec := httptest.NewRecorder()
	a.CategoryOptions(rec, httptest.NewRequest(http.MethodGet, "/admin/options/categories?categoryTypeId=3", nil))

	body := rec.Body.String()
	for _, want := range []string{`<option value="">Select category</option>`, `value="10"`, "Backend", "Frontend"} {
		if !strings.Contains(body, want) {
			t.Errorf("options missing %q in %s", want, body)
		}
	}
}

func TestCategoryOptionsWithoutTypeIsPlaceholderOnly(t *testing.T) {
	a, fa, _ := testAdmin(t)

	rec := httptest.NewRecorder()
	a.CategoryOptions(rec, httptest.NewRequest(http.MethodGet, "/admin/options/categories", nil))

	if n := strings.Count(rec.Body.String(), "<option"); n != 1 {
		t.Errorf("got %d options, want only the placeholder", n)
	}
	if len(fa.calls) != 0 {
		t.Errorf("API called without a category type: %v", fa.calls)
	}
}
