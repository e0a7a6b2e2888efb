package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"mise/internal/costing"
	applog "mise/internal/log"
	"mise/internal/variance"
	"mise/internal/views/pages"
)

const variancePeriodLayout = "2006-01-02"

// VarianceReport reconciles theoretical against actual usage for the requested
// period. HTML by default; append format=json for the raw lines.
func VarianceReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	periodStart, err := time.Parse(variancePeriodLayout, strings.TrimSpace(query.Get("start")))
	if err != nil {
		http.Error(w, "Provide the period start as start=YYYY-MM-DD.", http.StatusBadRequest)
		return
	}
	periodEnd, err := time.Parse(variancePeriodLayout, strings.TrimSpace(query.Get("end")))
	if err != nil {
		http.Error(w, "Provide the period end as end=YYYY-MM-DD.", http.StatusBadRequest)
		return
	}

	snapshot, lines, err := buildVarianceReport(r.Context(), periodStart, periodEnd)
	if err != nil {
		switch {
		case errors.Is(err, variance.ErrInvalidPeriod):
			http.Error(w, "The period end must not precede its start.", http.StatusBadRequest)
		default:
			writeCostingError(w, r, err, 0)
		}
		return
	}

	if query.Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lines); err != nil {
			applog.Error(r.Context(), "failed to encode variance response", "error", err)
		}
		return
	}

	data := varianceReportData(snapshot, lines, periodStart, periodEnd)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.VarianceReport(data).Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render variance report", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func buildVarianceReport(ctx context.Context, periodStart, periodEnd time.Time) (*costing.Snapshot, []variance.Line, error) {
	snapshot, err := loadCostingSnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	inputs, err := loadVarianceInputs(ctx)
	if err != nil {
		return nil, nil, err
	}

	lines, err := variance.Compute(snapshot, inputs.MenuItems, inputs.Sales, inputs.Counts, inputs.Receipts, periodStart, periodEnd)
	if err != nil {
		return nil, nil, err
	}
	return snapshot, lines, nil
}

// varianceReportData converts engine lines, which carry base-unit quantities,
// into the item's own purchase unit for display.
func varianceReportData(snapshot *costing.Snapshot, lines []variance.Line, periodStart, periodEnd time.Time) pages.VarianceReportData {
	data := pages.VarianceReportData{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Lines:       make([]pages.VarianceReportLine, 0, len(lines)),
	}

	for _, line := range lines {
		unitName := ""
		ratio := 1.0
		if item, ok := snapshot.Items[line.ItemID]; ok {
			if itemUnit, err := snapshot.Units.Lookup(item.UnitID); err == nil {
				unitName = itemUnit.Name
				ratio = itemUnit.ToBaseRatio
			}
		}
		data.Lines = append(data.Lines, pages.VarianceReportLine{
			ItemName:        line.ItemName,
			Unit:            unitName,
			Theoretical:     line.Theoretical / ratio,
			Actual:          line.Actual / ratio,
			VarianceUnits:   line.VarianceUnits / ratio,
			VarianceCost:    line.VarianceCost,
			VariancePercent: line.VariancePercent,
			ActualUnknown:   line.ActualUnknown,
		})
	}
	return data
}
