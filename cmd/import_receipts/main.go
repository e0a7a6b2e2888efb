package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"gorm.io/gorm"

	"mise/internal/config"
	"mise/internal/db"
	"mise/models"
)

var (
	invoicePattern = regexp.MustCompile(`(?i)invoice\s*(?:no\.?|number|#)?\s*[:#]?\s*([A-Z0-9][A-Z0-9-]+)`)
	linePattern    = regexp.MustCompile(`^(.+?)\s+(\d+(?:\.\d+)?)\s*(?:x|@)\s*\$?(\d+(?:\.\d+)?)\s*$`)
	datePattern    = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|\d{2} [A-Za-z]{3} \d{4}`)
)

type parsedLine struct {
	Item     string
	Qty      float64
	UnitCost float64
}

type parsedReceipt struct {
	Supplier   string
	Reference  string
	ReceivedAt time.Time
	Lines      []parsedLine
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: import_receipts <receipts.csv|invoice.pdf>")
		os.Exit(2)
	}

	if err := run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("input path must not be empty")
	}

	receipts, err := parseFile(path)
	if err != nil {
		return err
	}
	if len(receipts) == 0 {
		return fmt.Errorf("no receipt lines found in %s", filepath.Base(path))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	imported, err := importReceipts(database, receipts)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported %d receipts from %s\n", imported, filepath.Base(path))
	return nil
}

func parseFile(path string) ([]parsedReceipt, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open csv: %w", err)
		}
		defer file.Close()
		return parseReceiptCSV(file)
	case ".pdf":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read pdf: %w", err)
		}
		text, err := extractTextFromPDF(data)
		if err != nil {
			return nil, fmt.Errorf("extract pdf text: %w", err)
		}
		receipt, err := parseReceiptText(text)
		if err != nil {
			return nil, err
		}
		return []parsedReceipt{receipt}, nil
	default:
		return nil, fmt.Errorf("unsupported input %q, expected .csv or .pdf", filepath.Base(path))
	}
}

// parseReceiptCSV reads rows of supplier,reference,received_at,item,qty,unit_cost
// and groups consecutive rows sharing a supplier and reference into one receipt.
func parseReceiptCSV(r io.Reader) ([]parsedReceipt, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.New("csv has no data rows")
	}

	index := make(map[string]int, len(rows[0]))
	for idx, key := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(key))] = idx
	}
	for _, required := range []string{"supplier", "item", "qty", "unit_cost"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("csv is missing the %q column", required)
		}
	}

	cell := func(row []string, key string) string {
		idx, ok := index[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var receipts []parsedReceipt
	byKey := make(map[string]int)
	for i, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		qty, err := strconv.ParseFloat(cell(row, "qty"), 64)
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("row %d: invalid qty %q", i+2, cell(row, "qty"))
		}
		unitCost, err := strconv.ParseFloat(cell(row, "unit_cost"), 64)
		if err != nil || unitCost < 0 {
			return nil, fmt.Errorf("row %d: invalid unit_cost %q", i+2, cell(row, "unit_cost"))
		}
		item := cell(row, "item")
		if item == "" {
			return nil, fmt.Errorf("row %d: missing item name", i+2)
		}

		supplier := cell(row, "supplier")
		reference := cell(row, "reference")
		key := strings.ToLower(supplier) + "\x00" + strings.ToLower(reference)
		idx, ok := byKey[key]
		if !ok {
			receivedAt, err := parseReceiptDate(cell(row, "received_at"))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+2, err)
			}
			receipts = append(receipts, parsedReceipt{
				Supplier:   supplier,
				Reference:  reference,
				ReceivedAt: receivedAt,
			})
			idx = len(receipts) - 1
			byKey[key] = idx
		}
		receipts[idx].Lines = append(receipts[idx].Lines, parsedLine{Item: item, Qty: qty, UnitCost: unitCost})
	}

	return receipts, nil
}

// parseReceiptText pulls one receipt out of a scanned invoice: the first
// invoice-number-looking token, the first date, and every "item qty x $cost"
// line.
func parseReceiptText(text string) (parsedReceipt, error) {
	receipt := parsedReceipt{ReceivedAt: time.Now().UTC()}

	if match := invoicePattern.FindStringSubmatch(text); match != nil {
		receipt.Reference = match[1]
	}
	if match := datePattern.FindString(text); match != "" {
		if at, err := parseReceiptDate(match); err == nil {
			receipt.ReceivedAt = at
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		match := linePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		qty, err := strconv.ParseFloat(match[2], 64)
		if err != nil || qty <= 0 {
			continue
		}
		unitCost, err := strconv.ParseFloat(match[3], 64)
		if err != nil {
			continue
		}
		receipt.Lines = append(receipt.Lines, parsedLine{
			Item:     strings.TrimSpace(match[1]),
			Qty:      qty,
			UnitCost: unitCost,
		})
	}

	if len(receipt.Lines) == 0 {
		return parsedReceipt{}, errors.New("no item lines recognized in pdf text")
	}
	return receipt, nil
}

func parseReceiptDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now().UTC(), nil
	}
	for _, layout := range []string{"2006-01-02", "02 Jan 2006", time.RFC3339} {
		if at, err := time.Parse(layout, value); err == nil {
			return at.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func importReceipts(database *gorm.DB, receipts []parsedReceipt) (int, error) {
	imported := 0
	for idx, parsed := range receipts {
		if err := database.Transaction(func(tx *gorm.DB) error {
			record := models.Receipt{
				SupplierName: parsed.Supplier,
				Reference:    parsed.Reference,
				ReceivedAt:   parsed.ReceivedAt,
			}

			for _, line := range parsed.Lines {
				var item models.InventoryItem
				err := tx.Where("lower(name) = ?", strings.ToLower(line.Item)).First(&item).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("unknown inventory item %q", line.Item)
				}
				if err != nil {
					return fmt.Errorf("find inventory item %q: %w", line.Item, err)
				}
				record.Lines = append(record.Lines, models.ReceiptLine{
					InventoryItemID: item.ID,
					Qty:             line.Qty,
					UnitCost:        line.UnitCost,
				})
			}

			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("create receipt: %w", err)
			}
			return nil
		}); err != nil {
			return imported, fmt.Errorf("receipt %d (%s %s): %w", idx+1, parsed.Supplier, parsed.Reference, err)
		}
		imported++
	}
	return imported, nil
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}
