package http

import (
	"fmt"
	"net/url"
	"strings"

	"laporan/internal/core"
	"laporan/internal/report"
)

// maxSearchLen bounds the search box input.
const maxSearchLen = 200

// ReportQuery is the user's selection as carried in the URL.
type ReportQuery struct {
	// MonthSet is true when the month parameter is present. An empty value
	// means the user cleared the selection.
	MonthSet bool
	Month    core.MonthKey
	Type     report.FilterType
	Search   string
}

// ParseReportQuery reads month, type and q. Only a malformed month is an
// error; an unknown type falls back to all.
func ParseReportQuery(q url.Values) (ReportQuery, error) {
	rq := ReportQuery{
		Type:   report.ParseFilterType(q.Get("type")),
		Search: sanitizeInput(q.Get("q")),
	}
	if r := []rune(rq.Search); len(r) > maxSearchLen {
		rq.Search = string(r[:maxSearchLen])
	}

	if _, ok := q["month"]; ok {
		rq.MonthSet = true
		if v := strings.TrimSpace(q.Get("month")); v != "" {
			k, err := core.ParseMonthKey(v)
			if err != nil {
				return ReportQuery{}, fmt.Errorf("month %q: %w", v, err)
			}
			rq.Month = k
		}
	}
	return rq, nil
}

// Apply builds a view over txs with this selection.
func (rq ReportQuery) Apply(txs []core.Transaction) *report.View {
	v := report.NewView(txs)
	if rq.MonthSet {
		if rq.Month.IsZero() {
			v.ClearMonth()
		} else {
			v.SelectMonth(rq.Month)
		}
	}
	v.SetFilterType(rq.Type)
	v.SetSearch(rq.Search)
	return v
}

// Encode renders the selection back into query parameters.
func (rq ReportQuery) Encode() string {
	q := url.Values{}
	if rq.MonthSet {
		if rq.Month.IsZero() {
			q.Set("month", "")
		} else {
			q.Set("month", rq.Month.String())
		}
	}
	if rq.Type != "" && rq.Type != report.FilterAll {
		q.Set("type", string(rq.Type))
	}
	if rq.Search != "" {
		q.Set("q", rq.Search)
	}
	return q.Encode()
}
