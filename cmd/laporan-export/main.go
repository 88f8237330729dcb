// Command laporan-export writes the monthly report to an Excel file, or
// prints it as a table when no output file is given.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"
	_ "time/tzdata"

	"laporan/internal/backend"
	"laporan/internal/cli"
	"laporan/internal/config"
	"laporan/internal/core"
	"laporan/internal/export"
	"laporan/internal/log"
	"laporan/internal/report"
)

func main() {
	month := flag.String("month", "", "month to report as YYYY-MM (default: most recent)")
	typ := flag.String("type", "all", "transaction type: all, income or expense")
	search := flag.String("q", "", "case-insensitive title or category search")
	out := flag.String("out", "", "write an .xlsx file instead of printing a table")
	flag.Parse()

	cli.LoadEnvFile()
	// stdout carries the table, so logs go to stderr
	logger := log.New(log.Config{Level: slog.LevelInfo, Component: log.ComponentExport, Output: os.Stderr})
	cfg := cli.LoadAndValidateConfig(logger)
	logger = log.New(log.Config{Level: cfg.Level(), Component: log.ComponentExport, Output: os.Stderr})

	if err := run(context.Background(), cfg, *month, *typ, *search, *out, logger); err != nil {
		logger.Error("Export failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, month, typ, search, out string, logger *log.Logger) error {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	res, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return err
	}
	defer res.Close()

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	txs, err := res.Reader.ListTransactions(fetchCtx)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	v := report.NewView(txs)
	if month != "" {
		k, err := core.ParseMonthKey(month)
		if err != nil {
			return err
		}
		v.SelectMonth(k)
	}
	v.SetFilterType(report.ParseFilterType(typ))
	v.SetSearch(search)
	page := v.Render()

	log.NewStructuredLogger(logger).LogReportRendered(ctx, log.OpExport,
		page.Selected, string(page.FilterType), page.Search,
		len(page.Rows), len(page.Months), false)

	if out == "" {
		return printTable(os.Stdout, page)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := export.WriteXLSX(f, page); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}
	logger.Info("Report written", "path", out, log.FieldBackend, cfg.DataBackend)
	return nil
}

func printTable(w io.Writer, p report.Page) error {
	fmt.Fprintln(w, export.Title(p))
	if p.Empty {
		fmt.Fprintln(w, p.EmptyMessage)
		return nil
	}
	if len(p.Rows) == 0 {
		fmt.Fprintln(w, "Tidak ada transaksi untuk pilihan ini")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Tanggal\tJudul\tKategori\tTipe\tJumlah\t")
	for _, r := range p.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", r.Date, r.Title, r.Category, r.TypeLabel, r.Formatted)
	}
	fmt.Fprintf(tw, "\t\t\tTotal Pemasukan\t%s\t\n", p.Totals.IncomeFormatted)
	fmt.Fprintf(tw, "\t\t\tTotal Pengeluaran\t%s\t\n", p.Totals.ExpenseFormatted)
	fmt.Fprintf(tw, "\t\t\tSaldo\t%s\t\n", p.Totals.BalanceFormatted)
	return tw.Flush()
}
