package pages

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"mise/internal/views/layout"
)

// VarianceReportLine is one inventory item's theoretical-versus-actual row.
type VarianceReportLine struct {
	ItemName        string
	Unit            string
	Theoretical     float64
	Actual          float64
	VarianceUnits   float64
	VarianceCost    float64
	VariancePercent float64
	ActualUnknown   bool
}

// VarianceReportData aggregates the reconciliation period and its lines.
type VarianceReportData struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Lines       []VarianceReportLine
}

// VarianceReport renders the usage reconciliation report, worst offenders
// first.
func VarianceReport(data VarianceReportData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<section class="report"><h1>Usage variance</h1><p class="period">%s – %s</p>`,
			FormatReportDate(data.PeriodStart), FormatReportDate(data.PeriodEnd),
		); err != nil {
			return err
		}
		if len(data.Lines) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No usage recorded for this period.</p></section>`)
			return err
		}
		if _, err := io.WriteString(w, `<table class="variance"><thead><tr><th>Item</th><th>Theoretical</th><th>Actual</th><th>Variance</th><th>Cost impact</th><th>%</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, line := range data.Lines {
			actual := FormatReportQuantity(line.Actual, line.Unit)
			variance := FormatReportQuantity(line.VarianceUnits, line.Unit)
			percent := FormatPercent(line.VariancePercent)
			if line.ActualUnknown {
				actual, variance, percent = "unknown", "—", "—"
			}
			if _, err := fmt.Fprintf(w,
				`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				templ.EscapeString(line.ItemName),
				FormatReportQuantity(line.Theoretical, line.Unit),
				actual, variance, FormatMoney(line.VarianceCost), percent,
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table></section>`)
		return err
	})
	return layout.Page("Usage variance", true, body)
}
