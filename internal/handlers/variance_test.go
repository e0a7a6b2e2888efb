package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mise/internal/variance"
	"mise/models"
)

func TestVarianceReportHandlerJSON(t *testing.T) {
	db := withTestDatabase(t)
	fixture := seedCostingFixture(t, db)

	menuItem := models.MenuItem{Name: "Margherita", RecipeID: fixture.Pizza.ID, Price: 14.5}
	if err := db.Create(&menuItem).Error; err != nil {
		t.Fatalf("seed menu item: %v", err)
	}

	periodStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	rows := []interface{}{
		&models.SalesRecord{MenuItemID: menuItem.ID, QtySold: 40, OccurredAt: periodStart.AddDate(0, 0, 10)},
		&models.InventoryCount{InventoryItemID: fixture.Flour.ID, Quantity: 150, CountedAt: periodStart},
		&models.InventoryCount{InventoryItemID: fixture.Flour.ID, Quantity: 120, CountedAt: periodEnd},
		&models.Receipt{
			SupplierName: "Harbor Provisions",
			ReceivedAt:   periodStart.AddDate(0, 0, 12),
			Lines:        []models.ReceiptLine{{InventoryItemID: fixture.Flour.ID, Qty: 10, UnitCost: 1.95}},
		},
	}
	for _, row := range rows {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed variance row: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/app/reports/variance?start=2025-06-01&end=2025-07-01&format=json", nil)
	rec := httptest.NewRecorder()
	VarianceReport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var lines []variance.Line
	if err := json.Unmarshal(rec.Body.Bytes(), &lines); err != nil {
		t.Fatalf("decode variance lines: %v", err)
	}
	if len(lines) == 0 {
		t.Fatal("expected at least one variance line")
	}

	var flourLine *variance.Line
	for i := range lines {
		if lines[i].ItemID == fixture.Flour.ID {
			flourLine = &lines[i]
		}
	}
	if flourLine == nil {
		t.Fatalf("expected a flour line, got %+v", lines)
	}
	// Actual: 150 + 10 - 120 = 40 lb in base grams.
	wantActual := 40 * 453.592
	if diff := flourLine.Actual - wantActual; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("expected actual %.2f g, got %.2f", wantActual, flourLine.Actual)
	}
	// Theoretical: 40 pizzas, each drawing 0.5/20 of a 12 lb flour batch.
	wantTheo := 40 * 0.5 / 20.0 * 12.0 * 453.592
	if diff := flourLine.Theoretical - wantTheo; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("expected theoretical %.2f g, got %.2f", wantTheo, flourLine.Theoretical)
	}
}

func TestVarianceReportHandlerHTML(t *testing.T) {
	db := withTestDatabase(t)
	fixture := seedCostingFixture(t, db)

	menuItem := models.MenuItem{Name: "Margherita", RecipeID: fixture.Pizza.ID, Price: 14.5}
	if err := db.Create(&menuItem).Error; err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
	sale := models.SalesRecord{MenuItemID: menuItem.ID, QtySold: 5, OccurredAt: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)}
	if err := db.Create(&sale).Error; err != nil {
		t.Fatalf("seed sale: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/app/reports/variance?start=2025-06-01&end=2025-07-01", nil)
	rec := httptest.NewRecorder()
	VarianceReport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Usage variance") {
		t.Fatalf("expected report heading, got: %s", body)
	}
	// No counts exist, so flour's actual usage is unknown.
	if !strings.Contains(body, "unknown") {
		t.Fatalf("expected unknown actuals to be marked, got: %s", body)
	}
}

func TestVarianceReportHandlerValidatesPeriod(t *testing.T) {
	withTestDatabase(t)

	req := httptest.NewRequest(http.MethodGet, "/app/reports/variance?start=notadate&end=2025-07-01", nil)
	rec := httptest.NewRecorder()
	VarianceReport(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed start, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/app/reports/variance?start=2025-07-01&end=2025-06-01", nil)
	rec = httptest.NewRecorder()
	VarianceReport(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted period, got %d", rec.Code)
	}
}
