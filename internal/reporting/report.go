// Package reporting records gateway calls and summarizes them.
package reporting

import "time"

// settlingActions move money to the merchant when they succeed.
var settlingActions = map[string]bool{
	"capture":  true,
	"purchase": true,
}

// Report summarizes a set of journal entries.
type Report struct {
	TotalRequests      int              `json:"totalRequests"`
	Successful         int              `json:"successful"`
	Declined           int              `json:"declined"`
	Errored            int              `json:"errored"`
	SettledByCurrency  map[string]int64 `json:"settledByCurrency"`
	RefundedByCurrency map[string]int64 `json:"refundedByCurrency"`
	FailureMessages    map[string]int   `json:"failureMessages"`
	ActionUsage        map[string]int   `json:"actionUsage"`
	DateFrom           time.Time        `json:"dateFrom"`
	DateTo             time.Time        `json:"dateTo"`
	Window             time.Duration    `json:"window"`
}

// Reporter generates reports from journal entries.
type Reporter struct{}

// NewReporter creates a new Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Generate analyzes entries and produces a Report.
func (r *Reporter) Generate(entries []Entry) *Report {
	report := &Report{
		SettledByCurrency:  make(map[string]int64),
		RefundedByCurrency: make(map[string]int64),
		FailureMessages:    make(map[string]int),
		ActionUsage:        make(map[string]int),
	}

	for i, e := range entries {
		report.TotalRequests++
		if i == 0 || e.Timestamp.Before(report.DateFrom) {
			report.DateFrom = e.Timestamp
		}
		if i == 0 || e.Timestamp.After(report.DateTo) {
			report.DateTo = e.Timestamp
		}
		if e.Action != "" {
			report.ActionUsage[e.Action]++
		}

		switch {
		case e.Error != "":
			report.Errored++
			report.FailureMessages[e.Error]++
		case e.Success:
			report.Successful++
			if settlingActions[e.Action] {
				report.SettledByCurrency[e.Currency] += e.Amount
			}
			if e.Action == "refund" {
				report.RefundedByCurrency[e.Currency] += e.Amount
			}
		default:
			report.Declined++
			if e.Message != "" {
				report.FailureMessages[e.Message]++
			}
		}
	}

	report.Window = report.DateTo.Sub(report.DateFrom)
	return report
}
