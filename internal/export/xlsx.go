// Package export writes report pages to Excel workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"laporan/internal/report"
)

// SheetName is the worksheet holding the report.
const SheetName = "Laporan"

// RupiahFormat renders whole Rupiah with a thousands separator.
const RupiahFormat = `"Rp"#,##0;-"Rp"#,##0`

const (
	titleRow  = 1
	headerRow = 3
	firstRow  = 4
)

var headers = []string{"Tanggal", "Judul", "Kategori", "Tipe", "Jumlah"}

// Title returns the workbook heading for a page.
func Title(p report.Page) string {
	if p.SelectedName == "" {
		return "Laporan Bulanan"
	}
	return "Laporan Bulanan " + p.SelectedName
}

// WriteXLSX writes p as a single-sheet workbook to w.
func WriteXLSX(w io.Writer, p report.Page) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetDocProps(&excelize.DocProperties{
		Creator: "laporan",
		Title:   Title(p),
	})

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("title style: %w", err)
	}
	cell, _ := excelize.CoordinatesToCellName(1, titleRow)
	f.SetCellValue(SheetName, cell, Title(p))
	f.SetCellStyle(SheetName, cell, cell, titleStyle)

	if p.Empty || len(p.Rows) == 0 {
		msg := p.EmptyMessage
		if msg == "" {
			msg = "Tidak ada transaksi untuk pilihan ini"
		}
		cell, _ := excelize.CoordinatesToCellName(1, headerRow)
		f.SetCellValue(SheetName, cell, msg)
		f.SetColWidth(SheetName, "A", "A", 50)
		return write(f, w)
	}

	if err := writeTable(f, p); err != nil {
		return err
	}
	return write(f, w)
}

func writeTable(f *excelize.File, p report.Page) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	numFmt := RupiahFormat
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("amount style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return fmt.Errorf("total style: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(SheetName, cell, h)
	}
	f.SetCellStyle(SheetName, "A3", "E3", headerStyle)

	for i, r := range p.Rows {
		row := firstRow + i
		values := []any{r.Date, r.Title, r.Category, r.TypeLabel, r.Amount}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(SheetName, cell, v)
		}
	}
	lastRow := firstRow + len(p.Rows) - 1
	f.SetCellStyle(SheetName, fmt.Sprintf("E%d", firstRow), fmt.Sprintf("E%d", lastRow), amountStyle)

	totals := []struct {
		label string
		value float64
	}{
		{"Total Pemasukan", p.Totals.Income},
		{"Total Pengeluaran", p.Totals.Expense},
		{"Saldo", p.Totals.Balance},
	}
	for i, t := range totals {
		row := lastRow + 2 + i
		f.SetCellValue(SheetName, fmt.Sprintf("D%d", row), t.label)
		f.SetCellValue(SheetName, fmt.Sprintf("E%d", row), t.value)
		f.SetCellStyle(SheetName, fmt.Sprintf("D%d", row), fmt.Sprintf("E%d", row), totalStyle)
	}

	f.SetColWidth(SheetName, "A", "A", 12)
	f.SetColWidth(SheetName, "B", "B", 40)
	f.SetColWidth(SheetName, "C", "C", 20)
	f.SetColWidth(SheetName, "D", "D", 18)
	f.SetColWidth(SheetName, "E", "E", 18)

	f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: fmt.Sprintf("A%d", firstRow),
		ActivePane:  "bottomLeft",
	})
	if err := f.AutoFilter(SheetName, fmt.Sprintf("A%d:E%d", headerRow, lastRow), nil); err != nil {
		return fmt.Errorf("auto filter: %w", err)
	}
	return nil
}

func write(f *excelize.File, w io.Writer) error {
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
