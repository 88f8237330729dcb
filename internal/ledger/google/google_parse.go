package google

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"laporan/internal/core"
)

const (
	colDate = iota
	colTitle
	colCategory
	colType
	colAmount
	colID
)

// parseRows converts sheet values into transactions. Rows with an unknown
// type or amount are skipped and counted. A bad date is kept as the zero time
// so the report can exclude it.
func parseRows(values [][]interface{}, loc *time.Location) ([]core.Transaction, int) {
	out := make([]core.Transaction, 0, len(values))
	skipped := 0
	for i, row := range values {
		cols := toStrings(row)
		if isBlank(cols) {
			continue
		}
		typ, err := core.ParseTransactionType(safeGet(cols, colType))
		if err != nil {
			skipped++
			continue
		}
		amount, err := core.ParseAmount(safeGet(cols, colAmount))
		if err != nil {
			skipped++
			continue
		}
		date, _ := core.ParseDate(safeGet(cols, colDate), loc)
		tx := core.Transaction{
			ID:       strings.TrimSpace(safeGet(cols, colID)),
			Date:     date,
			Title:    strings.TrimSpace(safeGet(cols, colTitle)),
			Category: strings.TrimSpace(safeGet(cols, colCategory)),
			Type:     typ,
			Amount:   amount,
		}
		if tx.ID == "" {
			// row 1 is the header
			tx.ID = "row:" + strconv.Itoa(i+2)
		}
		out = append(out, tx)
	}
	return out, skipped
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		switch x := v.(type) {
		case float64:
			out[i] = strconv.FormatFloat(x, 'f', -1, 64)
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}

func safeGet(arr []string, idx int) string {
	if idx >= 0 && idx < len(arr) {
		return arr[idx]
	}
	return ""
}

func isBlank(cols []string) bool {
	for _, c := range cols {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
