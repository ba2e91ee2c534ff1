package Payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MaidManager/Models"
)

// June 2025 has 30 days; mid-month reference date.
var june = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func presentEvery(taskName string, from, to time.Time) []Models.AttendanceRecord {
	var records []Models.AttendanceRecord
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		records = append(records, Models.AttendanceRecord{
			Date:     day.Format("2006-01-02"),
			TaskName: taskName,
			Status:   Models.StatusPresent,
		})
	}
	return records
}

func TestExpectedWorkDays(t *testing.T) {
	cases := []struct {
		frequency string
		days      int
		want      int
	}{
		{"Daily", 30, 30},
		{"daily", 31, 31},
		{"Alternate", 30, 15},
		{"alternate days", 31, 16},
		{"ALTERNATE", 28, 14},
		{"Weekly", 30, 4},
		{"BiWeekly", 30, 2},
		{"bi-weekly", 30, 2},
		{"Monthly", 30, 1},
		{"", 30, 30},
		{"fortnightly", 30, 30}, // unrecognized bills as daily
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExpectedWorkDays(tc.frequency, tc.days),
			"frequency %q over %d days", tc.frequency, tc.days)
	}
}

func TestComputeReport_EmptyLedger(t *testing.T) {
	report := ComputeReport(nil, nil, june)

	assert.Zero(t, report.TotalSalary)
	assert.Zero(t, report.TotalDeductions)
	assert.Zero(t, report.PayableAmount)
	assert.Empty(t, report.DeductionsBreakdown)
	assert.Equal(t, "2025-06-01", report.BillingCycle.Start)
	assert.Equal(t, "2025-06-30", report.BillingCycle.End)
}

func TestComputeReport_SalaryIndependentOfAttendance(t *testing.T) {
	tasks := []Models.Task{
		{Name: "Cleaning", Price: 3000, Frequency: "Daily"},
		{Name: "Cooking", Price: 800, Frequency: "Weekly"},
		{Name: "Laundry", Price: 500, Frequency: "Monthly"},
	}

	empty := ComputeReport(tasks, nil, june)
	full := ComputeReport(tasks, presentEvery("Cleaning",
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)), june)

	assert.Equal(t, 4300.0, empty.TotalSalary)
	assert.Equal(t, 4300.0, full.TotalSalary)
}

func TestComputeReport_PayableInvariant(t *testing.T) {
	tasks := []Models.Task{
		{Name: "Cleaning", Price: 3000, Frequency: "Daily"},
		{Name: "Cooking", Price: 800, Frequency: "Weekly"},
	}
	attendance := []Models.AttendanceRecord{
		{Date: "2025-06-03", TaskName: "Cleaning", Status: Models.StatusPresent},
		{Date: "2025-06-04", TaskName: "Cooking", Status: Models.StatusPresent},
	}

	report := ComputeReport(tasks, attendance, june)

	assert.InDelta(t, report.TotalSalary-report.TotalDeductions, report.PayableAmount, 1e-9)

	sum := 0.0
	for _, entry := range report.DeductionsBreakdown {
		sum += entry.DeductionAmount
	}
	assert.InDelta(t, sum, report.TotalDeductions, 1e-9)
}

func TestComputeReport_PerfectAttendanceNoDeduction(t *testing.T) {
	tasks := []Models.Task{{Name: "Cleaning", Price: 3000, Frequency: "Daily"}}
	attendance := presentEvery("Cleaning",
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, attendance, 30)

	report := ComputeReport(tasks, attendance, june)

	assert.Zero(t, report.TotalDeductions)
	assert.Empty(t, report.DeductionsBreakdown)
	assert.Equal(t, 3000.0, report.PayableAmount)
}

func TestComputeReport_ZeroAttendanceFullDeduction(t *testing.T) {
	tasks := []Models.Task{{Name: "Cooking", Price: 800, Frequency: "Weekly"}}

	report := ComputeReport(tasks, nil, june)

	require.Len(t, report.DeductionsBreakdown, 1)
	entry := report.DeductionsBreakdown[0]
	assert.Equal(t, "Cooking", entry.TaskName)
	assert.Equal(t, 4, entry.MissedDays)
	assert.InDelta(t, 800.0, entry.DeductionAmount, 1e-9) // 4 * 200
	assert.InDelta(t, 0.0, report.PayableAmount, 1e-9)
}

func TestComputeReport_DailyScenario(t *testing.T) {
	// Daily task, price 3000, 30-day month, 25 Present days:
	// costPerDay = 100, missed = 5, deduction = 500.
	tasks := []Models.Task{{Name: "Cleaning", Price: 3000, Frequency: "Daily"}}
	attendance := presentEvery("Cleaning",
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 26, 0, 0, 0, 0, time.UTC))
	require.Len(t, attendance, 25)

	report := ComputeReport(tasks, attendance, june)

	require.Len(t, report.DeductionsBreakdown, 1)
	assert.Equal(t, 5, report.DeductionsBreakdown[0].MissedDays)
	assert.InDelta(t, 500.0, report.DeductionsBreakdown[0].DeductionAmount, 1e-9)
	assert.InDelta(t, 2500.0, report.PayableAmount, 1e-9)
}

func TestComputeReport_CycleBoundaries(t *testing.T) {
	tasks := []Models.Task{{Name: "Cooking", Price: 800, Frequency: "Weekly"}}
	attendance := []Models.AttendanceRecord{
		// Inside: the 1st counts.
		{Date: "2025-06-01", TaskName: "Cooking", Status: Models.StatusPresent},
		// Outside: the 1st of the next month must not count.
		{Date: "2025-07-01", TaskName: "Cooking", Status: Models.StatusPresent},
		// Outside: previous month.
		{Date: "2025-05-31", TaskName: "Cooking", Status: Models.StatusPresent},
	}

	report := ComputeReport(tasks, attendance, june)

	require.Len(t, report.DeductionsBreakdown, 1)
	assert.Equal(t, 3, report.DeductionsBreakdown[0].MissedDays) // only 2025-06-01 counted
}

func TestComputeReport_AbsentNeverCounts(t *testing.T) {
	tasks := []Models.Task{{Name: "Cooking", Price: 800, Frequency: "Weekly"}}
	attendance := []Models.AttendanceRecord{
		{Date: "2025-06-02", TaskName: "Cooking", Status: Models.StatusAbsent},
		{Date: "2025-06-09", TaskName: "Cooking", Status: Models.StatusAbsent},
	}

	report := ComputeReport(tasks, attendance, june)

	require.Len(t, report.DeductionsBreakdown, 1)
	assert.Equal(t, 4, report.DeductionsBreakdown[0].MissedDays)
	assert.InDelta(t, 800.0, report.DeductionsBreakdown[0].DeductionAmount, 1e-9)
}

func TestComputeReport_TaskNameMustMatchExactly(t *testing.T) {
	tasks := []Models.Task{{Name: "Cooking", Price: 800, Frequency: "Weekly"}}
	attendance := []Models.AttendanceRecord{
		{Date: "2025-06-02", TaskName: "cooking", Status: Models.StatusPresent},
		{Date: "2025-06-09", TaskName: "Cooking ", Status: Models.StatusPresent},
	}

	report := ComputeReport(tasks, attendance, june)

	require.Len(t, report.DeductionsBreakdown, 1)
	assert.Equal(t, 4, report.DeductionsBreakdown[0].MissedDays)
}

func TestComputeReport_DuplicatesNeverCredit(t *testing.T) {
	// 3 Present records for a Monthly task (expected 1): missed goes
	// negative, which must be dropped from the breakdown, not refunded.
	tasks := []Models.Task{{Name: "Laundry", Price: 500, Frequency: "Monthly"}}
	attendance := []Models.AttendanceRecord{
		{Date: "2025-06-02", TaskName: "Laundry", Status: Models.StatusPresent},
		{Date: "2025-06-02", TaskName: "Laundry", Status: Models.StatusPresent},
		{Date: "2025-06-03", TaskName: "Laundry", Status: Models.StatusPresent},
	}

	report := ComputeReport(tasks, attendance, june)

	assert.Empty(t, report.DeductionsBreakdown)
	assert.Zero(t, report.TotalDeductions)
	assert.Equal(t, 500.0, report.PayableAmount)
}

func TestComputeReport_ZeroPriceTask(t *testing.T) {
	tasks := []Models.Task{{Name: "Watering", Price: 0, Frequency: "Daily"}}

	report := ComputeReport(tasks, nil, june)

	assert.Zero(t, report.TotalSalary)
	assert.Zero(t, report.PayableAmount)
	// Missed days are still reported, at zero cost.
	require.Len(t, report.DeductionsBreakdown, 1)
	assert.Zero(t, report.DeductionsBreakdown[0].DeductionAmount)
}

func TestComputeReport_UnrecognizedFrequencyFallsBackToDaily(t *testing.T) {
	tasks := []Models.Task{{Name: "Cleaning", Price: 3000, Frequency: "whenever"}}

	report := ComputeReport(tasks, nil, june)

	require.Len(t, report.DeductionsBreakdown, 1)
	assert.Equal(t, 30, report.DeductionsBreakdown[0].MissedDays)
	assert.InDelta(t, 3000.0, report.DeductionsBreakdown[0].DeductionAmount, 1e-9)
}

func TestComputeReport_AlternateCeiling(t *testing.T) {
	// July 2025 has 31 days: alternate expects ceil(31/2) = 16.
	july := time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)
	tasks := []Models.Task{{Name: "Ironing", Price: 1600, Frequency: "Alternate"}}

	report := ComputeReport(tasks, nil, july)

	require.Len(t, report.DeductionsBreakdown, 1)
	assert.Equal(t, 16, report.DeductionsBreakdown[0].MissedDays)
	assert.InDelta(t, 1600.0, report.DeductionsBreakdown[0].DeductionAmount, 1e-9)
}

func TestComputeReport_MalformedStoredDateIgnored(t *testing.T) {
	tasks := []Models.Task{{Name: "Cooking", Price: 800, Frequency: "Weekly"}}
	attendance := []Models.AttendanceRecord{
		{Date: "not-a-date", TaskName: "Cooking", Status: Models.StatusPresent},
		{Date: "2025-06-02", TaskName: "Cooking", Status: Models.StatusPresent},
	}

	report := ComputeReport(tasks, attendance, june)

	require.Len(t, report.DeductionsBreakdown, 1)
	assert.Equal(t, 3, report.DeductionsBreakdown[0].MissedDays)
}

func TestComputeReport_February(t *testing.T) {
	// Non-leap February keeps the cycle at 28 days.
	feb := time.Date(2025, time.February, 14, 0, 0, 0, 0, time.UTC)
	report := ComputeReport([]Models.Task{{Name: "Cleaning", Price: 2800, Frequency: "Daily"}}, nil, feb)

	assert.Equal(t, "2025-02-01", report.BillingCycle.Start)
	assert.Equal(t, "2025-02-28", report.BillingCycle.End)
	require.Len(t, report.DeductionsBreakdown, 1)
	assert.Equal(t, 28, report.DeductionsBreakdown[0].MissedDays)
}
