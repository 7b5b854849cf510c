// Command seedtds converts a TDS rate history Excel file into a SQL seed
// file. The sheet carries one row per dated rate: effective date in column A
// (DD-MM-YYYY or an Excel date), percentage in column B.
// Usage: go run ./cmd/seedtds <rates.xlsx>
// Output: db/seeds/tds_rates.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type rateEntry struct {
	effectiveDate time.Time
	percentage    float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: seedtds <rates.xlsx>")
	}
	xlsxPath := os.Args[1]
	outPath := "db/seeds/tds_rates.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parseRateSheet(f)
	if err != nil {
		return fmt.Errorf("parse rate sheet: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no rate rows found in %s", xlsxPath)
	}
	log.Printf("parsed %d dated rates", len(entries))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	var b strings.Builder
	b.WriteString("-- TDS rate history seed data generated from Excel.\n")
	fmt.Fprintf(&b, "-- %d dated rates. Run: make seed-tds\n", len(entries))
	b.WriteString("BEGIN;\n\n")
	b.WriteString("INSERT INTO tds_rates (id, effective_date, percentage, created_by, created_at) VALUES\n")

	for i := range entries {
		e := &entries[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  (gen_random_uuid(), '%s', %.2f, '00000000-0000-0000-0000-000000000000', NOW())",
			e.effectiveDate.Format("2006-01-02"), e.percentage)
	}

	b.WriteString("\nON CONFLICT DO NOTHING;\n\nCOMMIT;\n")

	if _, err := out.WriteString(b.String()); err != nil {
		return fmt.Errorf("write seed file: %w", err)
	}

	log.Printf("generated %d entries in %s", len(entries), outPath)
	return nil
}

// parseRateSheet reads the first sheet. Row 0 is the header; columns are
// A=effective date, B=percentage.
func parseRateSheet(f *excelize.File) ([]rateEntry, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var entries []rateEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 2 {
			continue
		}

		dateStr := strings.TrimSpace(row[0])
		rateStr := strings.TrimSpace(strings.TrimSuffix(row[1], "%"))
		if dateStr == "" || rateStr == "" {
			continue
		}

		date, err := parseDate(dateStr)
		if err != nil {
			log.Printf("row %d: skipping, bad date %q: %v", i+1, dateStr, err)
			continue
		}

		var pct float64
		if _, err := fmt.Sscanf(rateStr, "%f", &pct); err != nil {
			log.Printf("row %d: skipping, bad percentage %q", i+1, rateStr)
			continue
		}
		if pct < 0 || pct > 100 {
			log.Printf("row %d: skipping, percentage %.2f out of range", i+1, pct)
			continue
		}

		entries = append(entries, rateEntry{effectiveDate: date, percentage: pct})
	}
	return entries, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"02-01-2006", "2006-01-02", "01-02-06", "2-Jan-06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}
