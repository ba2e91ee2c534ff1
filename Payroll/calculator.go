package Payroll

import (
	"strings"
	"time"

	"MaidManager/AbstractFunctions"
	"MaidManager/Models"
)

// DeductionEntry is one task's missed-day deduction inside a report.
type DeductionEntry struct {
	TaskName        string  `json:"task_name"`
	MissedDays      int     `json:"missed_days"`
	DeductionAmount float64 `json:"deduction_amount"`
}

// BillingCycle is the computed month, both bounds inclusive for display.
type BillingCycle struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Report is the monthly payroll summary for one maid. It always satisfies
// PayableAmount = TotalSalary - TotalDeductions and TotalDeductions equals
// the sum over DeductionsBreakdown.
type Report struct {
	TotalSalary         float64          `json:"total_salary"`
	TotalDeductions     float64          `json:"total_deductions"`
	PayableAmount       float64          `json:"payable_amount"`
	DeductionsBreakdown []DeductionEntry `json:"deductions_breakdown"`
	BillingCycle        BillingCycle     `json:"billing_cycle"`
}

// ComputeReport builds the payroll summary for the UTC calendar month
// containing referenceDate. Pure over its inputs: no I/O, safe to run
// concurrently on independent snapshots.
//
// TotalSalary is the sum of task prices regardless of attendance. Each task
// is expected on ExpectedWorkDays days; days actually worked are Present
// records for that exact task name inside the month. Missed days deduct at
// price/expected per day. Tasks with more Present records than expected
// (duplicates) simply produce no deduction, never a credit.
func ComputeReport(tasks []Models.Task, attendance []Models.AttendanceRecord, referenceDate time.Time) Report {
	ref := referenceDate.UTC()
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0) // exclusive bound for filtering
	lastDay := end.AddDate(0, 0, -1)
	daysInMonth := lastDay.Day()

	report := Report{
		DeductionsBreakdown: []DeductionEntry{},
		BillingCycle: BillingCycle{
			Start: AbstractFunctions.FormatDate(start),
			End:   AbstractFunctions.FormatDate(lastDay),
		},
	}

	for _, task := range tasks {
		report.TotalSalary += task.Price

		expected := ExpectedWorkDays(task.Frequency, daysInMonth)
		var costPerDay float64
		if expected > 0 {
			costPerDay = task.Price / float64(expected)
		}

		worked := 0
		for _, record := range attendance {
			if record.TaskName != task.Name || record.Status != Models.StatusPresent {
				continue
			}
			day, err := AbstractFunctions.ParseDate(record.Date)
			if err != nil {
				continue
			}
			if !day.Before(start) && day.Before(end) {
				worked++
			}
		}

		missed := expected - worked
		if missed <= 0 {
			continue
		}

		deduction := float64(missed) * costPerDay
		report.TotalDeductions += deduction
		report.DeductionsBreakdown = append(report.DeductionsBreakdown, DeductionEntry{
			TaskName:        task.Name,
			MissedDays:      missed,
			DeductionAmount: deduction,
		})
	}

	report.PayableAmount = report.TotalSalary - report.TotalDeductions
	return report
}

// ExpectedWorkDays maps a task frequency to the number of days it should be
// performed in a month of daysInMonth days. Matching is case-insensitive;
// any value containing "alternate" counts as every other day. Unrecognized
// or empty frequencies bill as daily so a bad stored value can only deduct,
// never abort the report.
func ExpectedWorkDays(frequency string, daysInMonth int) int {
	normalized := strings.ToLower(strings.TrimSpace(frequency))
	switch {
	case strings.Contains(normalized, "alternate"):
		return (daysInMonth + 1) / 2
	case normalized == "weekly":
		return 4
	case normalized == "bi-weekly" || normalized == "biweekly":
		return 2
	case normalized == "monthly":
		return 1
	default: // daily, unrecognized or empty
		return daysInMonth
	}
}

// CycleFor returns the half-open month window used for filtering, exposed
// for callers that persist closed cycles.
func CycleFor(referenceDate time.Time) (start, end time.Time) {
	ref := referenceDate.UTC()
	start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
