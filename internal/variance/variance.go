package variance

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"mise/internal/costing"
	"mise/internal/units"
	"mise/models"
)

var (
	// ErrInvalidPeriod indicates a reporting window whose end precedes its start.
	ErrInvalidPeriod = errors.New("variance: period end precedes start")
)

// Line is the reconciliation result for one inventory item. Quantities are in
// the base unit of the item's kind; VarianceCost uses the item's
// price-per-base-unit. ActualUnknown marks items whose period was not bounded
// by two count snapshots, where the reported actual of zero means "no data"
// rather than "no movement".
type Line struct {
	ItemID          uint    `json:"item_id"`
	ItemName        string  `json:"item_name"`
	Theoretical     float64 `json:"theoretical_usage"`
	Actual          float64 `json:"actual_usage"`
	VarianceUnits   float64 `json:"variance_units"`
	VarianceCost    float64 `json:"variance_cost"`
	VariancePercent float64 `json:"variance_percent"`
	ActualUnknown   bool    `json:"actual_unknown,omitempty"`
}

// Compute reconciles theoretical usage (sales exploded through recipe trees)
// against actual usage (count snapshots plus receipts) over the period. Lines
// with zero theoretical and zero actual usage are dropped.
func Compute(
	snapshot *costing.Snapshot,
	menuItems []models.MenuItem,
	sales []models.SalesRecord,
	counts []models.InventoryCount,
	receipts []models.Receipt,
	periodStart, periodEnd time.Time,
) ([]Line, error) {
	if periodEnd.Before(periodStart) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidPeriod, periodStart.Format(time.RFC3339), periodEnd.Format(time.RFC3339))
	}

	theoretical, err := TheoreticalUsage(snapshot, menuItems, sales, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	actual, unknown, err := ActualUsage(snapshot, counts, receipts, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	itemIDs := make(map[uint]bool, len(theoretical)+len(actual))
	for id := range theoretical {
		itemIDs[id] = true
	}
	for id := range actual {
		itemIDs[id] = true
	}

	lines := make([]Line, 0, len(itemIDs))
	for id := range itemIDs {
		theo := theoretical[id]
		act, hasActual := actual[id]
		if theo == 0 && act == 0 {
			continue
		}

		item, ok := snapshot.Items[id]
		if !ok {
			return nil, fmt.Errorf("%w: inventory item %d", costing.ErrMissingReference, id)
		}
		itemUnit, err := snapshot.Units.Lookup(item.UnitID)
		if err != nil {
			return nil, fmt.Errorf("%w: unit %d for item %q", costing.ErrMissingReference, item.UnitID, item.Name)
		}

		diff := act - theo
		line := Line{
			ItemID:        id,
			ItemName:      item.Name,
			Theoretical:   theo,
			Actual:        act,
			VarianceUnits: diff,
			VarianceCost:  diff * item.PricePerUnit / itemUnit.ToBaseRatio,
			// An item consumed on paper but never counted has no usable
			// actual, same as a period bounded by a single count.
			ActualUnknown: unknown[id] || !hasActual,
		}
		if theo > 0 {
			line.VariancePercent = diff / theo * 100
		}
		lines = append(lines, line)
	}

	sortLines(lines)
	return lines, nil
}

// TheoreticalUsage explodes every sale in the window through its menu item's
// recipe and sums the resulting base-unit quantities per inventory item.
func TheoreticalUsage(
	snapshot *costing.Snapshot,
	menuItems []models.MenuItem,
	sales []models.SalesRecord,
	periodStart, periodEnd time.Time,
) (map[uint]float64, error) {
	recipeByMenuItem := make(map[uint]uint, len(menuItems))
	for _, menuItem := range menuItems {
		recipeByMenuItem[menuItem.ID] = menuItem.RecipeID
	}

	usage := make(map[uint]float64)
	for _, sale := range sales {
		if sale.OccurredAt.Before(periodStart) || sale.OccurredAt.After(periodEnd) {
			continue
		}
		if sale.QtySold == 0 {
			continue
		}
		recipeID, ok := recipeByMenuItem[sale.MenuItemID]
		if !ok {
			return nil, fmt.Errorf("%w: menu item %d on sale %d", costing.ErrMissingReference, sale.MenuItemID, sale.ID)
		}
		if err := costing.AccumulateUsage(snapshot, recipeID, sale.QtySold, usage); err != nil {
			return nil, err
		}
	}
	return usage, nil
}

// ActualUsage derives per-item consumption from the ledger:
//
//	actual = startingOnHand + receiptsInPeriod - endingOnHand
//
// The starting count is the snapshot nearest at-or-before periodStart and the
// ending count the snapshot nearest at-or-before periodEnd. Items without two
// distinct bounding counts are reported as zero and flagged in the second
// return value. Quantities are converted from the item's own unit into base
// units so they compare directly with theoretical usage.
func ActualUsage(
	snapshot *costing.Snapshot,
	counts []models.InventoryCount,
	receipts []models.Receipt,
	periodStart, periodEnd time.Time,
) (map[uint]float64, map[uint]bool, error) {
	type bound struct {
		qty   float64
		at    time.Time
		found bool
	}

	starting := make(map[uint]bound)
	ending := make(map[uint]bound)

	for _, count := range counts {
		if count.CountedAt.After(periodEnd) {
			continue
		}
		if !count.CountedAt.After(periodStart) {
			prev := starting[count.InventoryItemID]
			if !prev.found || count.CountedAt.After(prev.at) {
				starting[count.InventoryItemID] = bound{qty: count.Quantity, at: count.CountedAt, found: true}
			}
		}
		prev := ending[count.InventoryItemID]
		if !prev.found || count.CountedAt.After(prev.at) {
			ending[count.InventoryItemID] = bound{qty: count.Quantity, at: count.CountedAt, found: true}
		}
	}

	received := make(map[uint]float64)
	for _, receipt := range receipts {
		if receipt.ReceivedAt.Before(periodStart) || receipt.ReceivedAt.After(periodEnd) {
			continue
		}
		for _, line := range receipt.Lines {
			received[line.InventoryItemID] += line.Qty
		}
	}

	itemIDs := make(map[uint]bool, len(ending)+len(received))
	for id := range ending {
		itemIDs[id] = true
	}
	for id := range received {
		itemIDs[id] = true
	}

	actual := make(map[uint]float64, len(itemIDs))
	unknown := make(map[uint]bool)
	for id := range itemIDs {
		start, end := starting[id], ending[id]
		if !start.found || !end.found || !end.at.After(start.at) {
			// The period is not bounded by two snapshots; a known
			// reporting limitation, not an engine error.
			unknown[id] = true
			actual[id] = 0
			continue
		}

		item, ok := snapshot.Items[id]
		if !ok {
			return nil, nil, fmt.Errorf("%w: inventory item %d", costing.ErrMissingReference, id)
		}
		itemUnit, err := snapshot.Units.Lookup(item.UnitID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: unit %d for item %q", costing.ErrMissingReference, item.UnitID, item.Name)
		}

		inItemUnits := start.qty + received[id] - end.qty
		actual[id] = units.BaseQuantity(inItemUnits, itemUnit)
	}

	return actual, unknown, nil
}

func sortLines(lines []Line) {
	sort.SliceStable(lines, func(i, j int) bool {
		ci := math.Abs(lines[i].VarianceCost)
		cj := math.Abs(lines[j].VarianceCost)
		if ci != cj {
			return ci > cj
		}
		return strings.ToLower(lines[i].ItemName) < strings.ToLower(lines[j].ItemName)
	})
}
