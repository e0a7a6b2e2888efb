package variance

import (
	"errors"
	"math"
	"testing"
	"time"

	"mise/internal/costing"
	"mise/models"
)

var (
	periodStart = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)
)

// eachSnapshot builds a count-kind world with a one-to-one base ratio so the
// numbers in assertions read directly.
func eachSnapshot() (*costing.Snapshot, []models.MenuItem) {
	each := models.Unit{Name: "each", Kind: models.UnitKindCount, ToBaseRatio: 1}
	each.ID = 1

	patty := models.InventoryItem{Name: "Beef Patty", UnitID: each.ID, PricePerUnit: 1.25, YieldPercent: 100}
	patty.ID = 1

	burger := models.Recipe{Name: "Burger", YieldQty: 1, YieldUnitID: each.ID}
	burger.ID = 1

	pattyID := patty.ID
	component := models.RecipeComponent{RecipeID: burger.ID, Qty: 1, UnitID: each.ID, InventoryItemID: &pattyID}
	component.ID = 1

	snapshot := costing.NewSnapshot(
		[]models.Unit{each},
		[]models.InventoryItem{patty},
		[]models.Recipe{burger},
		[]models.RecipeComponent{component},
	)

	menuItem := models.MenuItem{Name: "Classic Burger", RecipeID: burger.ID}
	menuItem.ID = 1

	return snapshot, []models.MenuItem{menuItem}
}

func count(itemID uint, qty float64, at time.Time) models.InventoryCount {
	return models.InventoryCount{InventoryItemID: itemID, Quantity: qty, CountedAt: at}
}

func receipt(at time.Time, itemID uint, qty float64) models.Receipt {
	return models.Receipt{
		ReceivedAt: at,
		Lines:      []models.ReceiptLine{{InventoryItemID: itemID, Qty: qty}},
	}
}

func sale(menuItemID uint, qty float64, at time.Time) models.SalesRecord {
	return models.SalesRecord{MenuItemID: menuItemID, QtySold: qty, OccurredAt: at}
}

func TestComputeReconcilesCountsReceiptsAndSales(t *testing.T) {
	t.Parallel()

	snapshot, menuItems := eachSnapshot()

	counts := []models.InventoryCount{
		count(1, 100, periodStart),
		count(1, 30, periodEnd),
	}
	receipts := []models.Receipt{
		receipt(periodStart.AddDate(0, 0, 10), 1, 50),
	}
	sales := []models.SalesRecord{
		sale(1, 110, periodStart.AddDate(0, 0, 15)),
	}

	lines, err := Compute(snapshot, menuItems, sales, counts, receipts, periodStart, periodEnd)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 variance line, got %d", len(lines))
	}

	line := lines[0]
	if line.ItemName != "Beef Patty" {
		t.Fatalf("unexpected item %q", line.ItemName)
	}
	if line.ActualUnknown {
		t.Fatal("expected actual usage to be known")
	}
	// actual = 100 + 50 - 30 = 120 against 110 sold.
	if math.Abs(line.Actual-120) > 1e-9 {
		t.Fatalf("expected actual 120, got %.4f", line.Actual)
	}
	if math.Abs(line.Theoretical-110) > 1e-9 {
		t.Fatalf("expected theoretical 110, got %.4f", line.Theoretical)
	}
	if math.Abs(line.VarianceUnits-10) > 1e-9 {
		t.Fatalf("expected variance of 10 units, got %.4f", line.VarianceUnits)
	}
	if math.Abs(line.VarianceCost-12.5) > 1e-9 {
		t.Fatalf("expected cost variance 12.50, got %.4f", line.VarianceCost)
	}
	if math.Abs(line.VariancePercent-9.0909) > 0.001 {
		t.Fatalf("expected variance percent ~9.09, got %.4f", line.VariancePercent)
	}
}

func TestComputeFlagsUnknownActualWithSingleCount(t *testing.T) {
	t.Parallel()

	snapshot, menuItems := eachSnapshot()

	counts := []models.InventoryCount{
		count(1, 100, periodStart),
	}
	sales := []models.SalesRecord{
		sale(1, 40, periodStart.AddDate(0, 0, 5)),
	}

	lines, err := Compute(snapshot, menuItems, sales, counts, nil, periodStart, periodEnd)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}

	line := lines[0]
	if !line.ActualUnknown {
		t.Fatal("expected the line to be flagged as actual-unknown")
	}
	if line.Actual != 0 {
		t.Fatalf("expected actual reported as zero, got %.4f", line.Actual)
	}
	if math.Abs(line.Theoretical-40) > 1e-9 {
		t.Fatalf("expected theoretical 40, got %.4f", line.Theoretical)
	}
	if line.VariancePercent >= 0 {
		t.Fatalf("expected a negative variance percent, got %.4f", line.VariancePercent)
	}
}

func TestComputeFlagsUnknownActualWithoutAnyCounts(t *testing.T) {
	t.Parallel()

	snapshot, menuItems := eachSnapshot()

	sales := []models.SalesRecord{
		sale(1, 25, periodStart.AddDate(0, 0, 3)),
	}

	lines, err := Compute(snapshot, menuItems, sales, nil, nil, periodStart, periodEnd)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if !lines[0].ActualUnknown {
		t.Fatal("expected an uncounted item to be flagged as actual-unknown")
	}
}

func TestComputeIgnoresActivityOutsidePeriod(t *testing.T) {
	t.Parallel()

	snapshot, menuItems := eachSnapshot()

	counts := []models.InventoryCount{
		count(1, 100, periodStart),
		count(1, 80, periodEnd),
	}
	receipts := []models.Receipt{
		receipt(periodStart.AddDate(0, 0, -3), 1, 500),
		receipt(periodEnd.AddDate(0, 0, 2), 1, 500),
	}
	sales := []models.SalesRecord{
		sale(1, 20, periodStart.AddDate(0, 0, 1)),
		sale(1, 999, periodEnd.AddDate(0, 0, 7)),
	}

	lines, err := Compute(snapshot, menuItems, sales, counts, receipts, periodStart, periodEnd)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}

	line := lines[0]
	if math.Abs(line.Actual-20) > 1e-9 {
		t.Fatalf("expected actual 20 (out-of-period receipts ignored), got %.4f", line.Actual)
	}
	if math.Abs(line.Theoretical-20) > 1e-9 {
		t.Fatalf("expected theoretical 20 (out-of-period sales ignored), got %.4f", line.Theoretical)
	}
	if math.Abs(line.VarianceUnits) > 1e-9 {
		t.Fatalf("expected no variance, got %.4f", line.VarianceUnits)
	}
}

func TestComputeDropsIdleItems(t *testing.T) {
	t.Parallel()

	snapshot, menuItems := eachSnapshot()

	// Counts exist but nothing moved and nothing sold.
	counts := []models.InventoryCount{
		count(1, 75, periodStart),
		count(1, 75, periodEnd),
	}

	lines, err := Compute(snapshot, menuItems, nil, counts, nil, periodStart, periodEnd)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected idle item to be filtered out, got %d lines", len(lines))
	}
}

func TestComputeRejectsInvertedPeriod(t *testing.T) {
	t.Parallel()

	snapshot, menuItems := eachSnapshot()
	if _, err := Compute(snapshot, menuItems, nil, nil, nil, periodEnd, periodStart); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestTheoreticalUsageSurfacesMissingMenuItem(t *testing.T) {
	t.Parallel()

	snapshot, _ := eachSnapshot()
	sales := []models.SalesRecord{sale(42, 3, periodStart.AddDate(0, 0, 1))}

	if _, err := TheoreticalUsage(snapshot, nil, sales, periodStart, periodEnd); !errors.Is(err, costing.ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference, got %v", err)
	}
}

func TestActualUsageConvertsItemUnitsToBase(t *testing.T) {
	t.Parallel()

	kg := models.Unit{Name: "kg", Kind: models.UnitKindWeight, ToBaseRatio: 1000}
	kg.ID = 1
	flour := models.InventoryItem{Name: "Flour", UnitID: kg.ID, PricePerUnit: 1.1, YieldPercent: 100}
	flour.ID = 1

	snapshot := costing.NewSnapshot([]models.Unit{kg}, []models.InventoryItem{flour}, nil, nil)

	counts := []models.InventoryCount{
		count(1, 20, periodStart),
		count(1, 5, periodEnd),
	}
	receipts := []models.Receipt{receipt(periodStart.AddDate(0, 0, 2), 1, 10)}

	actual, unknown, err := ActualUsage(snapshot, counts, receipts, periodStart, periodEnd)
	if err != nil {
		t.Fatalf("ActualUsage returned error: %v", err)
	}
	if unknown[1] {
		t.Fatal("expected actual usage to be known")
	}
	// 20 + 10 - 5 = 25 kg, expressed as 25000 g.
	if math.Abs(actual[1]-25000) > 1e-6 {
		t.Fatalf("expected 25000 g, got %.4f", actual[1])
	}
}

func TestComputeOrdersByCostImpact(t *testing.T) {
	t.Parallel()

	each := models.Unit{Name: "each", Kind: models.UnitKindCount, ToBaseRatio: 1}
	each.ID = 1

	cheap := models.InventoryItem{Name: "Napkin", UnitID: each.ID, PricePerUnit: 0.02, YieldPercent: 100}
	cheap.ID = 1
	dear := models.InventoryItem{Name: "Ribeye", UnitID: each.ID, PricePerUnit: 18, YieldPercent: 100}
	dear.ID = 2

	snapshot := costing.NewSnapshot([]models.Unit{each}, []models.InventoryItem{cheap, dear}, nil, nil)

	counts := []models.InventoryCount{
		count(1, 500, periodStart), count(1, 480, periodEnd),
		count(2, 40, periodStart), count(2, 30, periodEnd),
	}

	lines, err := Compute(snapshot, nil, nil, counts, nil, periodStart, periodEnd)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].ItemName != "Ribeye" {
		t.Fatalf("expected Ribeye first by cost impact, got %q", lines[0].ItemName)
	}
}
