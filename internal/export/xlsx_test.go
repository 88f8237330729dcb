package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"laporan/internal/core"
	"laporan/internal/report"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func openWorkbook(t *testing.T, p report.Page) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, p); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, axis string) string {
	t.Helper()
	v, err := f.GetCellValue(SheetName, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetCellValue(%s): %v", axis, err)
	}
	return v
}

func TestWriteXLSXRows(t *testing.T) {
	v := report.NewView([]core.Transaction{
		{ID: "1", Date: day(2024, 1, 15), Title: "Salary", Category: "Kerja", Type: core.Income, Amount: 5000000},
		{ID: "2", Date: day(2024, 1, 20), Title: "Groceries", Category: "Makan", Type: core.Expense, Amount: 750000},
	})
	f := openWorkbook(t, v.Render())

	if got := cell(t, f, "A1"); got != "Laporan Bulanan Januari 2024" {
		t.Fatalf("title = %q", got)
	}
	if got := cell(t, f, "E3"); got != "Jumlah" {
		t.Fatalf("header = %q", got)
	}
	// newest first
	if got := cell(t, f, "B4"); got != "Groceries" {
		t.Fatalf("first row title = %q", got)
	}
	if got := cell(t, f, "A4"); got != "20/1/2024" {
		t.Fatalf("first row date = %q", got)
	}
	if got := cell(t, f, "D5"); got != "Pemasukan" {
		t.Fatalf("second row type = %q", got)
	}
	if got := cell(t, f, "E5"); got != "5000000" {
		t.Fatalf("second row amount = %q", got)
	}
	if got := cell(t, f, "D9"); got != "Saldo" {
		t.Fatalf("balance label = %q", got)
	}
	if got := cell(t, f, "E9"); got != "4250000" {
		t.Fatalf("balance = %q", got)
	}
}

func TestWriteXLSXEmpty(t *testing.T) {
	f := openWorkbook(t, report.NewView(nil).Render())
	if got := cell(t, f, "A1"); got != "Laporan Bulanan" {
		t.Fatalf("title = %q", got)
	}
	if got := cell(t, f, "A3"); got != report.EmptyMessage {
		t.Fatalf("message = %q", got)
	}
}

func TestWriteXLSXNoMatches(t *testing.T) {
	v := report.NewView([]core.Transaction{
		{ID: "1", Date: day(2024, 1, 15), Title: "Salary", Type: core.Income, Amount: 1},
	})
	v.SetSearch("tidak ada")
	f := openWorkbook(t, v.Render())
	if got := cell(t, f, "A3"); got == "" || got == "Tanggal" {
		t.Fatalf("expected no-match message, got %q", got)
	}
}
